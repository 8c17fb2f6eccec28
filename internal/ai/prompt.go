// internal/ai/prompt.go
package ai

import (
	"fmt"
	"strings"

	"github.com/saileshbalu94/ecommerce-ai/internal/models"
)

const (
	descriptionSystemPrompt = "You are a professional product description writer. Create compelling, accurate, and engaging product descriptions."
	visionSystemPrompt      = "You are a professional product description writer with expertise in visual analysis. Create compelling, accurate, and engaging product descriptions based on both textual information and product images."
	titleSystemPrompt       = "You are an expert in creating compelling, SEO-friendly product titles for e-commerce. Create titles that are attention-grabbing, include important keywords, and are optimized for both conversion and search engines. Keep titles under 70 characters."
	revisionSystemPrompt    = "You are an expert e-commerce copywriter who specializes in optimizing content for better conversion and engagement."

	imageNote       = "\nA product image has been provided and will be analyzed. Please describe the visual aspects of the product in the description.\n"
	imageFailedNote = "\n\nNote: There was a product image provided but it could not be analyzed."

	TitleCandidateCount = 3
)

// Style is the effective set of writing knobs after defaults and brand-voice
// overrides are applied.
type Style struct {
	Tone           string
	Style          string
	Length         string
	BrandVoiceName string
	KeyPhrases     []string
	PowerWords     []string
	AvoidWords     []string
}

// ResolveStyle fills defaults and applies a brand voice. The voice's tone and
// style replace the caller's; its vocabulary is carried as extra constraints.
func ResolveStyle(opts StyleOptions, voice *models.BrandVoice) Style {
	s := Style{
		Tone:   orDefault(opts.Tone, DefaultTone),
		Style:  orDefault(opts.Style, DefaultStyle),
		Length: orDefault(opts.Length, DefaultLength),
	}
	if voice == nil {
		return s
	}

	if t := strings.TrimSpace(voice.Tone.Primary); t != "" {
		s.Tone = t
	}
	if st := strings.TrimSpace(voice.Style.Type); st != "" {
		s.Style = st
	}
	s.BrandVoiceName = voice.Name
	s.KeyPhrases = compact(voice.Vocabulary.KeyPhrases)
	s.PowerWords = compact(voice.Vocabulary.PowerWords)
	s.AvoidWords = compact(voice.Vocabulary.AvoidWords)
	return s
}

// DescriptionPrompt renders the product attributes that are present, always
// in the same order.
func DescriptionPrompt(p models.ProductAttributes, s Style) string {
	var b strings.Builder

	b.WriteString("Write a compelling product description for the following product:\n\n")
	writeLine(&b, "Product", p.ProductName)
	writeLine(&b, "Category", p.ProductCategory)
	if features := compact(p.ProductFeatures); len(features) > 0 {
		b.WriteString("Key Features:\n")
		for _, f := range features {
			fmt.Fprintf(&b, "- %s\n", f)
		}
	}
	writeLine(&b, "Target Audience", p.TargetAudience)
	writeList(&b, "Keywords to include", p.Keywords)
	writeLine(&b, "Additional Information", p.AdditionalInfo)

	writeVocabulary(&b, s)

	fmt.Fprintf(&b, "\nTone: %s\n", s.Tone)
	fmt.Fprintf(&b, "Style: %s\n", s.Style)
	if s.BrandVoiceName != "" {
		fmt.Fprintf(&b, "\nBrand Voice: %s\n", s.BrandVoiceName)
	}

	b.WriteString("\nPlease write a compelling, SEO-friendly product description that highlights the key benefits and features.")
	if p.ProductImage != "" {
		b.WriteString(imageNote)
	}
	return b.String()
}

// TitlePrompt asks for TitleCandidateCount numbered options in one reply.
func TitlePrompt(p models.ProductAttributes, s Style) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Create %d compelling product title options for the following product:\n\n", TitleCandidateCount)
	writeLine(&b, "Product Name", orDefault(p.ProductName, "Product"))
	writeLine(&b, "Product Category", p.ProductCategory)
	if features := compact(p.ProductFeatures); len(features) > 0 {
		if len(features) > 3 {
			features = features[:3]
		}
		writeList(&b, "Key Features", features)
	}
	writeList(&b, "Keywords to Include", p.Keywords)

	writeVocabulary(&b, s)

	fmt.Fprintf(&b, "\nTitle Style: %s\n", s.Style)
	fmt.Fprintf(&b, "Tone: %s\n", s.Tone)
	if s.BrandVoiceName != "" {
		fmt.Fprintf(&b, "Brand Voice: %s\n", s.BrandVoiceName)
	}

	fmt.Fprintf(&b, "\nFormat your response as a numbered list with %d title options.\n", TitleCandidateCount)
	b.WriteString("Each title should be unique in approach but all should be compelling and SEO-friendly.")
	return b.String()
}

// RevisionPrompt treats the feedback as an edit instruction against existing
// text rather than as new product input.
func RevisionPrompt(text, instructions string) string {
	var b strings.Builder

	b.WriteString("I have the following e-commerce content:\n\n")
	fmt.Fprintf(&b, "\"%s\"\n\n", strings.TrimSpace(text))
	b.WriteString("Rewrite it once, following these instructions:\n")
	b.WriteString(strings.TrimSpace(instructions))
	b.WriteString("\n\nReturn only the revised content, without a heading, numbering or explanation.")
	return b.String()
}

func writeVocabulary(b *strings.Builder, s Style) {
	if len(s.KeyPhrases) > 0 {
		fmt.Fprintf(b, "\nKey Phrases to Include: %s\n", strings.Join(s.KeyPhrases, ", "))
	}
	if len(s.PowerWords) > 0 {
		fmt.Fprintf(b, "\nPower Words to Include: %s\n", strings.Join(s.PowerWords, ", "))
	}
	if len(s.AvoidWords) > 0 {
		fmt.Fprintf(b, "\nWords to Avoid: %s\n", strings.Join(s.AvoidWords, ", "))
	}
}

func writeLine(b *strings.Builder, label, value string) {
	if v := strings.TrimSpace(value); v != "" {
		fmt.Fprintf(b, "%s: %s\n", label, v)
	}
}

func writeList(b *strings.Builder, label string, values []string) {
	if vs := compact(values); len(vs) > 0 {
		fmt.Fprintf(b, "%s: %s\n", label, strings.Join(vs, ", "))
	}
}

func compact(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func orDefault(v, def string) string {
	if v = strings.TrimSpace(v); v != "" {
		return v
	}
	return def
}
