// internal/utils/validator.go
package utils

import (
	"errors"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/saileshbalu94/ecommerce-ai/internal/ai"
	"github.com/saileshbalu94/ecommerce-ai/internal/models"
)

var validate *validator.Validate

var contentTypePattern = regexp.MustCompile(`^[a-z][a-z0-9]*(-[a-z0-9]+)*$`)

func init() {
	validate = validator.New()
	validate.RegisterValidation("content_status", validateContentStatus)
	validate.RegisterValidation("content_type", validateContentType)
	validate.RegisterValidation("campaign_status", validateCampaignStatus)
	validate.RegisterValidation("tone", oneOf(ai.Tones))
	validate.RegisterValidation("style", oneOf(ai.Styles))
	validate.RegisterValidation("length", oneOf(ai.Lengths))
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validateContentStatus(fl validator.FieldLevel) bool {
	return models.ContentStatus(fl.Field().String()).Valid()
}

// Content types are an open set of kebab-case names.
func validateContentType(fl validator.FieldLevel) bool {
	v := fl.Field().String()
	return len(v) <= 50 && contentTypePattern.MatchString(v)
}

func validateCampaignStatus(fl validator.FieldLevel) bool {
	switch models.CampaignStatus(fl.Field().String()) {
	case models.CampaignStatusDraft, models.CampaignStatusActive, models.CampaignStatusCompleted:
		return true
	}
	return false
}

func oneOf(allowed []string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		v := fl.Field().String()
		for _, a := range allowed {
			if v == a {
				return true
			}
		}
		return false
	}
}

// Validation tags for common fields
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

func GetValidationErrors(err error) []ValidationError {
	var validationErrors []ValidationError

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		for _, e := range validationErrs {
			validationErrors = append(validationErrors, ValidationError{
				Field:   strings.ToLower(e.Field()),
				Tag:     e.Tag(),
				Message: getValidationMessage(e),
			})
		}
	}

	return validationErrors
}

func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "email":
		return "Invalid email format"
	case "url":
		return e.Field() + " must be a valid URL"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "oneof":
		return e.Field() + " must be one of: " + e.Param()
	case "content_status":
		return "Status must be one of: draft, published, archived"
	case "content_type":
		return "Content type must be a lowercase, hyphenated name"
	case "campaign_status":
		return "Status must be one of: draft, active, completed"
	case "tone":
		return "Tone must be one of: " + strings.Join(ai.Tones, ", ")
	case "style":
		return "Style must be one of: " + strings.Join(ai.Styles, ", ")
	case "length":
		return "Length must be one of: " + strings.Join(ai.Lengths, ", ")
	default:
		return e.Field() + " is invalid"
	}
}
