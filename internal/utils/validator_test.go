package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Status      string `validate:"omitempty,content_status"`
	ContentType string `validate:"required,content_type"`
	Rating      int    `validate:"required,min=1,max=5"`
}

func TestCustomValidators(t *testing.T) {
	assert.NoError(t, ValidateStruct(sampleRequest{Status: "published", ContentType: "product-description", Rating: 5}))
	assert.NoError(t, ValidateStruct(sampleRequest{ContentType: "email", Rating: 1}))

	err := ValidateStruct(sampleRequest{Status: "deleted", ContentType: "Product Description", Rating: 9})
	require.Error(t, err)

	fields := map[string]string{}
	for _, e := range GetValidationErrors(err) {
		fields[e.Field] = e.Tag
	}
	assert.Equal(t, "content_status", fields["status"])
	assert.Equal(t, "content_type", fields["contenttype"])
	assert.Equal(t, "max", fields["rating"])
}

type styleRequest struct {
	Tone   string `validate:"omitempty,tone"`
	Style  string `validate:"omitempty,style"`
	Length string `validate:"omitempty,length"`
}

func TestStyleValidators(t *testing.T) {
	assert.NoError(t, ValidateStruct(styleRequest{}))
	assert.NoError(t, ValidateStruct(styleRequest{Tone: "luxury", Style: "minimalist", Length: "very-long"}))

	err := ValidateStruct(styleRequest{Tone: "angry", Length: "epic"})
	require.Error(t, err)

	errs := GetValidationErrors(err)
	require.Len(t, errs, 2)
	assert.Equal(t, "tone", errs[0].Field)
	assert.Contains(t, errs[0].Message, "professional")
	assert.Equal(t, "length", errs[1].Field)
}
