// internal/models/content.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GeneratedContentSchemaVersion is written into every generated_content
// document. Documents with a lower (or missing) version are upgraded on read.
const GeneratedContentSchemaVersion = 2

var (
	ErrInvalidRating      = errors.New("rating must be between 1 and 5")
	ErrNoVersions         = errors.New("content has no versions")
	ErrVersionOutOfRange  = errors.New("version index out of range")
	ErrEmptyGeneratedText = errors.New("generated content text is required")
)

// ProductAttributes is the structured product input captured at generation
// time. It is stored verbatim as original_input and never changes afterwards.
type ProductAttributes struct {
	ProductName     string   `json:"productName,omitempty"`
	ProductCategory string   `json:"productCategory,omitempty"`
	ProductFeatures []string `json:"productFeatures,omitempty"`
	TargetAudience  string   `json:"targetAudience,omitempty"`
	Keywords        []string `json:"keywords,omitempty"`
	AdditionalInfo  string   `json:"additionalInfo,omitempty"`
	ProductImage    string   `json:"productImage,omitempty"`
}

func (p ProductAttributes) Value() (driver.Value, error) {
	return json.Marshal(p)
}

func (p *ProductAttributes) Scan(value interface{}) error {
	return scanJSON(value, p)
}

type GenerationParameters struct {
	Tone         string `json:"tone,omitempty"`
	Style        string `json:"style,omitempty"`
	Length       string `json:"length,omitempty"`
	BrandVoiceID string `json:"brandVoiceId,omitempty"`
}

func (g GenerationParameters) Value() (driver.Value, error) {
	return json.Marshal(g)
}

func (g *GenerationParameters) Scan(value interface{}) error {
	return scanJSON(value, g)
}

// GenerationMetadata describes one provider call. GenerationTime is in
// milliseconds, EstimatedCost in USD.
type GenerationMetadata struct {
	ModelUsed            string  `json:"modelUsed"`
	TokensUsed           int64   `json:"tokensUsed"`
	PromptTokens         int64   `json:"promptTokens"`
	CompletionTokens     int64   `json:"completionTokens"`
	GenerationTime       int64   `json:"generationTime"`
	EstimatedCost        float64 `json:"estimatedCost"`
	ImageFallback        bool    `json:"imageFallback,omitempty"`
	ImageProcessingError string  `json:"imageProcessingError,omitempty"`
}

func (m GenerationMetadata) Value() (driver.Value, error) {
	return json.Marshal(m)
}

func (m *GenerationMetadata) Scan(value interface{}) error {
	return scanJSON(value, m)
}

type Feedback struct {
	Rating    int       `json:"rating"`
	Comments  string    `json:"comments,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// UnmarshalJSON also accepts the older {rating, comment, timestamp} shape.
func (f *Feedback) UnmarshalJSON(data []byte) error {
	var aux struct {
		Rating    int        `json:"rating"`
		Comments  string     `json:"comments"`
		Comment   string     `json:"comment"`
		CreatedAt *time.Time `json:"createdAt"`
		Timestamp *time.Time `json:"timestamp"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	f.Rating = aux.Rating
	f.Comments = aux.Comments
	if f.Comments == "" {
		f.Comments = aux.Comment
	}
	switch {
	case aux.CreatedAt != nil:
		f.CreatedAt = *aux.CreatedAt
	case aux.Timestamp != nil:
		f.CreatedAt = *aux.Timestamp
	}
	return nil
}

// Version is one entry of the append-only revision history. Seq starts at 1
// and increases by one per append; the zero-based position is Seq-1.
type Version struct {
	Seq       int           `json:"seq"`
	Text      string        `json:"text"`
	Source    VersionSource `json:"source"`
	CreatedAt time.Time     `json:"createdAt"`
	Feedback  *Feedback     `json:"feedback,omitempty"`
}

// UnmarshalJSON also accepts the older snake_case created_at key.
func (v *Version) UnmarshalJSON(data []byte) error {
	type plain Version
	aux := struct {
		*plain
		LegacyCreatedAt *time.Time `json:"created_at"`
	}{plain: (*plain)(v)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if v.CreatedAt.IsZero() && aux.LegacyCreatedAt != nil {
		v.CreatedAt = *aux.LegacyCreatedAt
	}
	return nil
}

// GeneratedContent is the mutable half of a content record.
//
// Text mirrors the newest version, except right after AcceptVersion where it
// holds the accepted version's text. The next append moves it back to the
// newest version while AcceptedVersionIndex keeps pointing at the choice.
type GeneratedContent struct {
	SchemaVersion        int        `json:"schemaVersion"`
	Text                 string     `json:"text"`
	Versions             []Version  `json:"versions"`
	Alternatives         []string   `json:"alternatives,omitempty"`
	AcceptedVersionIndex *int       `json:"acceptedVersionIndex,omitempty"`
	AcceptedAt           *time.Time `json:"acceptedAt,omitempty"`
}

func (g GeneratedContent) Value() (driver.Value, error) {
	return json.Marshal(g)
}

func (g *GeneratedContent) Scan(value interface{}) error {
	if err := scanJSON(value, g); err != nil {
		return err
	}
	g.Upgrade()
	return nil
}

// Upgrade migrates documents written before sequence numbers and schema
// versions existed. It is idempotent.
func (g *GeneratedContent) Upgrade() {
	if g.SchemaVersion >= GeneratedContentSchemaVersion {
		return
	}

	for i := range g.Versions {
		if g.Versions[i].Seq == 0 {
			g.Versions[i].Seq = i + 1
		}
		if g.Versions[i].Source == "" {
			if i == 0 {
				g.Versions[i].Source = VersionSourceInitial
			} else {
				g.Versions[i].Source = VersionSourceEdit
			}
		}
	}

	// Old documents could carry text without any versions.
	if len(g.Versions) == 0 && strings.TrimSpace(g.Text) != "" {
		g.Versions = []Version{{Seq: 1, Text: g.Text, Source: VersionSourceInitial}}
	}
	if g.Text == "" && len(g.Versions) > 0 {
		g.Text = g.Versions[len(g.Versions)-1].Text
	}

	g.SchemaVersion = GeneratedContentSchemaVersion
}

type Turn struct {
	Role       TurnRole            `json:"role"`
	Text       string              `json:"text"`
	Metadata   *GenerationMetadata `json:"metadata,omitempty"`
	VersionSeq int                 `json:"versionSeq,omitempty"`
	CreatedAt  time.Time           `json:"createdAt"`
}

// Conversation is the dialogue view of a record: system turns carry generated
// text, user turns carry the feedback that asked for a revision.
type Conversation []Turn

func (c Conversation) Value() (driver.Value, error) {
	if c == nil {
		return json.Marshal([]Turn{})
	}
	return json.Marshal([]Turn(c))
}

func (c *Conversation) Scan(value interface{}) error {
	return scanJSON(value, (*[]Turn)(c))
}

type Content struct {
	BaseModel
	UserID               uuid.UUID            `json:"userId" gorm:"type:uuid;not null;index"`
	Title                string               `json:"title" gorm:"size:255;not null"`
	ContentType          ContentType          `json:"contentType" gorm:"type:varchar(50);not null;index"`
	OriginalInput        ProductAttributes    `json:"originalInput" gorm:"type:jsonb"`
	GenerationParameters GenerationParameters `json:"generationParameters" gorm:"type:jsonb"`
	GeneratedContent     GeneratedContent     `json:"generatedContent" gorm:"type:jsonb;not null"`
	Conversation         Conversation         `json:"conversation" gorm:"type:jsonb"`
	Status               ContentStatus        `json:"status" gorm:"type:varchar(20);default:'draft';index"`
	Metadata             GenerationMetadata   `json:"metadata" gorm:"type:jsonb"`
	RowVersion           int64                `json:"rowVersion" gorm:"not null;default:1"`
}

func (Content) TableName() string {
	return "content"
}

// NewContent builds a draft record seeded with its first version and the
// matching system turn.
func NewContent(owner uuid.UUID, title string, contentType ContentType, input ProductAttributes,
	params GenerationParameters, text string, meta GenerationMetadata, now time.Time) (*Content, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyGeneratedText
	}

	c := &Content{
		UserID:               owner,
		Title:                title,
		ContentType:          contentType,
		OriginalInput:        input,
		GenerationParameters: params,
		GeneratedContent: GeneratedContent{
			SchemaVersion: GeneratedContentSchemaVersion,
			Text:          text,
			Versions: []Version{{
				Seq:       1,
				Text:      text,
				Source:    VersionSourceInitial,
				CreatedAt: now,
			}},
		},
		Status:     ContentStatusDraft,
		Metadata:   meta,
		RowVersion: 1,
	}
	c.Conversation = Conversation{{
		Role:       TurnRoleSystem,
		Text:       text,
		Metadata:   metadataPtr(meta),
		VersionSeq: 1,
		CreatedAt:  now,
	}}
	c.CreatedAt = now
	c.UpdatedAt = now
	return c, nil
}

// CanonicalText is the text a revision starts from.
func (c *Content) CanonicalText() string {
	if c.GeneratedContent.Text != "" {
		return c.GeneratedContent.Text
	}
	for i := len(c.Conversation) - 1; i >= 0; i-- {
		if c.Conversation[i].Role == TurnRoleSystem && c.Conversation[i].Text != "" {
			return c.Conversation[i].Text
		}
	}
	if n := len(c.GeneratedContent.Versions); n > 0 {
		return c.GeneratedContent.Versions[n-1].Text
	}
	return ""
}

// LatestVersion returns nil when the history is empty.
func (c *Content) LatestVersion() *Version {
	n := len(c.GeneratedContent.Versions)
	if n == 0 {
		return nil
	}
	return &c.GeneratedContent.Versions[n-1]
}

// AppendVersion adds text to the end of the history and makes it current.
func (c *Content) AppendVersion(text string, source VersionSource, now time.Time) Version {
	seq := 1
	if last := c.LatestVersion(); last != nil {
		seq = last.Seq + 1
	}

	v := Version{Seq: seq, Text: text, Source: source, CreatedAt: now}
	c.GeneratedContent.Versions = append(c.GeneratedContent.Versions, v)
	c.GeneratedContent.Text = text
	c.GeneratedContent.SchemaVersion = GeneratedContentSchemaVersion
	c.UpdatedAt = now
	return v
}

// AppendAlternative records one feedback-driven revision: the feedback as a
// user turn, the new text as a system turn, a new version, and an entry in
// the flat alternatives list.
func (c *Content) AppendAlternative(feedback, text string, meta GenerationMetadata, now time.Time) Version {
	v := c.AppendVersion(text, VersionSourceAlternative, now)
	c.GeneratedContent.Alternatives = append(c.GeneratedContent.Alternatives, text)

	c.Conversation = append(c.Conversation,
		Turn{Role: TurnRoleUser, Text: feedback, CreatedAt: now},
		Turn{Role: TurnRoleSystem, Text: text, Metadata: metadataPtr(meta), VersionSeq: v.Seq, CreatedAt: now},
	)
	c.Metadata = meta
	return v
}

// AcceptVersion marks versions[index] as final. It reports false when that
// index was already accepted, in which case nothing changes.
func (c *Content) AcceptVersion(index int, now time.Time) (bool, error) {
	if index < 0 || index >= len(c.GeneratedContent.Versions) {
		return false, ErrVersionOutOfRange
	}
	if current := c.GeneratedContent.AcceptedVersionIndex; current != nil && *current == index {
		return false, nil
	}

	idx := index
	c.GeneratedContent.AcceptedVersionIndex = &idx
	c.GeneratedContent.AcceptedAt = &now
	c.GeneratedContent.Text = c.GeneratedContent.Versions[index].Text
	c.UpdatedAt = now
	return true, nil
}

// AcceptedVersion returns the accepted version, if any.
func (c *Content) AcceptedVersion() *Version {
	idx := c.GeneratedContent.AcceptedVersionIndex
	if idx == nil || *idx < 0 || *idx >= len(c.GeneratedContent.Versions) {
		return nil
	}
	return &c.GeneratedContent.Versions[*idx]
}

// AttachFeedback sets feedback on the most recent version only.
func (c *Content) AttachFeedback(rating int, comments string, now time.Time) error {
	if rating < 1 || rating > 5 {
		return ErrInvalidRating
	}
	last := c.LatestVersion()
	if last == nil {
		return ErrNoVersions
	}

	last.Feedback = &Feedback{Rating: rating, Comments: comments, CreatedAt: now}
	c.UpdatedAt = now
	return nil
}

func metadataPtr(m GenerationMetadata) *GenerationMetadata {
	if m == (GenerationMetadata{}) {
		return nil
	}
	return &m
}

func scanJSON(value interface{}, dest interface{}) error {
	if value == nil {
		return nil
	}
	bytes, err := jsonBytes(value)
	if err != nil {
		return err
	}
	if len(bytes) == 0 {
		return nil
	}
	return json.Unmarshal(bytes, dest)
}
