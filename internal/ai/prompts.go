package ai

import (
	"fmt"
	"strings"
)

const blogPromptTmpl = `Create a blog post about: %s

Length: %s

Respond in JSON format:
{"title": "...", "content": "<h2>...</h2><p>...</p>", "excerpt": "...", "category": "..."}`

const enhancePromptTmpl = `Enhance this content to be more %s:

%s

Respond in JSON format:
{"enhanced_content": "...", "improvements": ["...", "..."], "readability_score": {"original_score": 7, "enhanced_score": 9}}`

const translatePromptTmpl = `Translate to %s:

%s

Respond in JSON format:
{"translated_content": "...", "language": "%s", "translation_notes": "..."}`

const imagesPromptTmpl = `Suggest images for blog titled '%s':

%s

Respond in JSON format:
{"search_queries": ["...", "..."], "image_suggestions": ["...", "..."], "unsplash_keywords": ["..."], "pexels_keywords": ["..."]}`

// lengthGuide maps the length tier to the word-count descriptor embedded in
// the blog prompt. Unrecognized tiers fall back to defaultLengthGuide.
var lengthGuide = map[string]string{
	"short":  "500 words",
	"medium": "1000 words",
	"long":   "2000 words",
}

const defaultLengthGuide = "1000 words"

// defaultStyle is used when the enhancement request omits the style tag.
const defaultStyle = "professional"

// maxImageContextChars is how much of the post content the image suggestion
// prompt includes.
const maxImageContextChars = 500

// BlogPrompt builds the prompt for the blog-from-idea task. The length tier
// is one of "short", "medium", "long"; anything else gets the default
// 1000-word guide.
func BlogPrompt(idea, length string) (string, error) {
	if strings.TrimSpace(idea) == "" {
		return "", &ConfigError{Param: "idea"}
	}

	guide, ok := lengthGuide[length]
	if !ok {
		guide = defaultLengthGuide
	}

	return fmt.Sprintf(blogPromptTmpl, idea, guide), nil
}

// EnhancePrompt builds the prompt for the content-enhancement task. Style is
// a free-form tag (professional/funny/casual/academic/engaging); empty style
// defaults to professional.
func EnhancePrompt(content, style string) (string, error) {
	if strings.TrimSpace(content) == "" {
		return "", &ConfigError{Param: "content"}
	}
	if style == "" {
		style = defaultStyle
	}

	return fmt.Sprintf(enhancePromptTmpl, style, content), nil
}

// TranslatePrompt builds the prompt for the translation task. The target
// language is a free-text language name.
func TranslatePrompt(content, targetLanguage string) (string, error) {
	if strings.TrimSpace(content) == "" {
		return "", &ConfigError{Param: "content"}
	}
	if strings.TrimSpace(targetLanguage) == "" {
		return "", &ConfigError{Param: "language"}
	}

	return fmt.Sprintf(translatePromptTmpl, targetLanguage, content, targetLanguage), nil
}

// ImagesPrompt builds the prompt for the image-keyword-suggestion task. Only
// the first 500 characters of content are included as context.
func ImagesPrompt(title, content string) (string, error) {
	if strings.TrimSpace(title) == "" {
		return "", &ConfigError{Param: "title"}
	}

	return fmt.Sprintf(imagesPromptTmpl, title, truncateChars(content, maxImageContextChars)), nil
}

// truncateChars returns the first max characters of s, respecting rune
// boundaries.
func truncateChars(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
