package ai

// ProviderConfig holds the configuration needed to create a text generator.
type ProviderConfig struct {
	Provider string // "gemini" | "openai"
	APIKey   string
	Model    string
}

// BlogDraft is the structured payload produced by the blog-from-idea task.
type BlogDraft struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Excerpt  string `json:"excerpt"`
	Category string `json:"category"`
}

// ReadabilityScore compares content readability before and after enhancement.
type ReadabilityScore struct {
	OriginalScore float64 `json:"original_score"`
	EnhancedScore float64 `json:"enhanced_score"`
}

// Enhancement is the structured payload produced by the content-enhancement
// task.
type Enhancement struct {
	EnhancedContent string           `json:"enhanced_content"`
	Improvements    []string         `json:"improvements"`
	Readability     ReadabilityScore `json:"readability_score"`
}

// Translation is the structured payload produced by the translation task.
type Translation struct {
	TranslatedContent string `json:"translated_content"`
	Language          string `json:"language"`
	TranslationNotes  string `json:"translation_notes"`
}

// ImageSuggestions is the structured payload produced by the
// image-keyword-suggestion task.
type ImageSuggestions struct {
	SearchQueries    []string `json:"search_queries"`
	ImageIdeas       []string `json:"image_suggestions"`
	UnsplashKeywords []string `json:"unsplash_keywords"`
	PexelsKeywords   []string `json:"pexels_keywords"`
}
