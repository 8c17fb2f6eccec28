// internal/ai/tables.go
package ai

const (
	DefaultTone   = "professional"
	DefaultStyle  = "balanced"
	DefaultLength = "medium"
)

// Tones, styles and lengths accepted by the request validators.
var (
	Tones   = []string{"professional", "friendly", "luxury", "technical", "casual", "persuasive"}
	Styles  = []string{"balanced", "benefit-focused", "feature-focused", "emotional", "minimalist"}
	Lengths = []string{"short", "medium", "long", "very-long"}
)

var toneTemperature = map[string]float64{
	"professional": 0.6,
	"friendly":     0.7,
	"luxury":       0.5,
	"technical":    0.4,
	"casual":       0.8,
	"persuasive":   0.7,
}

var lengthMaxTokens = map[string]int{
	"short":     150,
	"medium":    300,
	"long":      500,
	"very-long": 800,
}

// TemperatureForTone maps a tone to a sampling temperature. Unknown tones get
// the professional value.
func TemperatureForTone(tone string) float64 {
	if t, ok := toneTemperature[tone]; ok {
		return t
	}
	return toneTemperature[DefaultTone]
}

// MaxTokensForLength maps a length preference to an output budget. Unknown
// lengths get the medium budget.
func MaxTokensForLength(length string) int {
	if n, ok := lengthMaxTokens[length]; ok {
		return n
	}
	return lengthMaxTokens[DefaultLength]
}
