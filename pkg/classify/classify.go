// Package classify turns raw query text into a taxonomy classification,
// detecting the query language and translating to English on the way.
// When the model API is unavailable it degrades to keyword matching; a
// classification call never fails the enclosing request.
package classify

import (
	"context"
	"fmt"
	"strings"

	"triagedesk/pkg/llm"
	"triagedesk/pkg/logger"
	"triagedesk/pkg/models"
	"triagedesk/pkg/taxonomy"
)

// Classifier drives language detection, translation and taxonomy
// classification through an llm.Client.
type Classifier struct {
	llm *llm.Client
}

// New returns a Classifier backed by c. A nil or disabled client is
// allowed; every call then takes the local fallback path.
func New(c *llm.Client) *Classifier {
	return &Classifier{llm: c}
}

// Defaults returns the default classification with the given language.
func Defaults(lang string) models.Classification {
	return models.Classification{
		Department:       taxonomy.DefaultDepartment,
		ServiceType:      taxonomy.DefaultServiceType,
		RequestCategory:  taxonomy.DefaultRequestCategory,
		DetectedLanguage: lang,
	}
}

// Classify classifies queryText. Empty text gets the default
// classification. Never returns an error; model failures degrade to the
// keyword fallback and language "unknown" where applicable.
func (c *Classifier) Classify(ctx context.Context, queryText string) models.Classification {
	if strings.TrimSpace(queryText) == "" {
		return Defaults("en")
	}

	lang := c.detectLanguage(ctx, queryText)

	translated := ""
	textToClassify := queryText
	if lang != "en" && lang != "unknown" {
		translated = c.translate(ctx, queryText, lang)
		if translated != "" {
			textToClassify = translated
		}
	}

	cls := c.classifyText(ctx, textToClassify)
	cls.TranslatedQuery = translated
	cls.DetectedLanguage = lang
	return cls
}

// detectLanguage returns the ISO 639-1 code for text, or "unknown".
func (c *Classifier) detectLanguage(ctx context.Context, text string) string {
	if !c.llm.Enabled() {
		return "unknown"
	}
	prompt := fmt.Sprintf("Detect the language of the following text and return only the ISO 639-1 language code (e.g., 'en' for English, 'hi' for Hindi):\n\nText: %s\n\nLanguage code:", text)
	out, err := c.llm.Chat(ctx, "You are a language detection assistant. Respond with only the ISO 639-1 language code.", prompt, 10)
	if err != nil {
		logger.Error("language_detect_failed", "error", err)
		return "unknown"
	}
	code := strings.ToLower(strings.TrimSpace(out))
	// models sometimes wrap the code in quotes or punctuation
	code = strings.Trim(code, "\"'.` ")
	if len(code) != 2 {
		return "unknown"
	}
	return code
}

// translate renders text into English; returns "" when translation was
// not possible so callers keep classifying the original text.
func (c *Classifier) translate(ctx context.Context, text, sourceLang string) string {
	if !c.llm.Enabled() {
		return ""
	}
	prompt := fmt.Sprintf("Translate the following text from %s to English. Return only a concise 2-3 sentence translation:\n\nOriginal text: %s\n\nEnglish translation:", sourceLang, text)
	out, err := c.llm.Chat(ctx, "You are a translation assistant. Translate the given text to English and provide a concise summary in 2-3 sentences.", prompt, 1000)
	if err != nil {
		logger.Error("translate_failed", "language", sourceLang, "error", err)
		return ""
	}
	return out
}

// classifyText asks the model for a taxonomy triple and falls back to
// keyword matching when the model is unavailable or unparseable.
func (c *Classifier) classifyText(ctx context.Context, text string) models.Classification {
	if !c.llm.Enabled() {
		return Fallback(text)
	}
	prompt := fmt.Sprintf(`Given the following categories: %s

And the following text: %q

Classify this text into the most appropriate department, service_type and request_category. Return the result as three lines:
department: [department]
service_type: [service_type]
request_category: [request_category or 'none']

Use snake_case for all names.`, taxonomy.PromptJSON(), text)

	out, err := c.llm.Chat(ctx, "You are a helpful assistant that accurately classifies banking-related queries. Always use snake_case (lowercase with underscores) for all names.", prompt, 0)
	if err != nil {
		logger.Error("classification_api_failed", "error", err)
		return Fallback(text)
	}

	cls := parseClassification(out)
	if !taxonomy.HasDepartment(cls.Department) {
		logger.Warn("classification_unknown_department", "department", cls.Department)
		return Fallback(text)
	}
	return cls
}

// parseClassification picks "key: value" lines out of a model response.
func parseClassification(out string) models.Classification {
	fields := map[string]string{}
	for _, line := range strings.Split(out, "\n") {
		k, v, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(k))
		val := strings.TrimSpace(v)
		val = strings.ToLower(strings.ReplaceAll(val, " ", "_"))
		fields[key] = strings.Trim(val, "[]")
	}
	cls := models.Classification{
		Department:      fields["department"],
		ServiceType:     fields["service_type"],
		RequestCategory: fields["request_category"],
	}
	if cls.Department == "" {
		cls.Department = taxonomy.DefaultDepartment
	}
	if cls.ServiceType == "" {
		cls.ServiceType = taxonomy.DefaultServiceType
	}
	if cls.RequestCategory == "" || cls.RequestCategory == "none" {
		cls.RequestCategory = taxonomy.DefaultRequestCategory
	}
	return cls
}
