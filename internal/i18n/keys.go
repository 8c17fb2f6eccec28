// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeySuccess           = "success"
	KeyInternalError     = "error.internal"
	KeyValidationInvalid = "validation.invalid"
	KeyRateLimited       = "error.rate_limited"
	KeyAccessDenied      = "error.access_denied"
	KeyRouteNotFound     = "error.route_not_found"

	// Authentication
	KeyAuthRequired     = "auth.required"
	KeyAuthInvalidToken = "auth.invalid_token"
	KeyAuthTokenExpired = "auth.token_expired"

	// Subscription
	KeySubscriptionInactive = "subscription.inactive"

	// Content
	KeyContentNotFound      = "content.not_found"
	KeyContentSaved         = "content.saved"
	KeyContentUpdated       = "content.updated"
	KeyContentDeleted       = "content.deleted"
	KeyContentConflict      = "content.conflict"
	KeyContentFeedbackSaved = "content.feedback_saved"
	KeyContentTextRequired  = "content.text_required"
	KeyContentNameRequired  = "content.name_required"
	KeyContentNoVersions    = "content.no_versions"
	KeyContentInvalidRating = "content.invalid_rating"
	KeyContentBadVersion    = "content.bad_version"

	// Generation
	KeyGenerationFailed          = "generation.failed"
	KeyGenerationNotConfigured   = "generation.not_configured"
	KeyGenerationFeedbackEmpty   = "generation.feedback_required"
	KeyGenerationOriginalMissing = "generation.original_required"

	// Brand voices
	KeyBrandVoiceNotFound = "brand_voice.not_found"
	KeyBrandVoiceDeleted  = "brand_voice.deleted"

	// Campaigns
	KeyCampaignNotFound = "campaign.not_found"
	KeyCampaignDeleted  = "campaign.deleted"

	// Profiles
	KeyProfileNotFound    = "profile.not_found"
	KeyProfileUpdated     = "profile.updated"
	KeyProfileInvalidRole = "profile.invalid_role"

	// Uploads
	KeyUploadInvalid = "upload.invalid"

	// Billing
	KeyBillingInvalidSignature = "billing.invalid_signature"
)
