package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
)

// Service orchestrates the generative-content pipeline: it builds prompts,
// sends them through the configured provider, and extracts structured JSON
// results from the free-form model output. Every call returns exactly one of
// a structured result or a typed error, never both and never a partial
// result.
//
// There is no automatic retry; a failed call surfaces the failure and retry
// policy belongs to the caller.
type Service struct {
	provider TextGenerator
	enabled  bool
}

// NewService creates a Service. The provider may be nil when no credential
// is configured; calls then fail with ErrUnavailable.
func NewService(provider TextGenerator, enabled bool) *Service {
	return &Service{provider: provider, enabled: enabled}
}

// Available reports whether generation can be attempted: the feature is
// enabled by configuration and a provider (credential plus transport) is
// configured.
func (s *Service) Available() bool {
	return s.enabled && s.provider != nil
}

// GenerateBlog generates a complete blog draft from a raw idea. Length is
// one of "short", "medium", "long".
func (s *Service) GenerateBlog(ctx context.Context, idea, length string) (*BlogDraft, error) {
	prompt, err := BlogPrompt(idea, length)
	if err != nil {
		return nil, err
	}

	var draft BlogDraft
	if err := s.execute(ctx, prompt, &draft); err != nil {
		return nil, err
	}
	return &draft, nil
}

// EnhanceContent rewrites existing content in the given style and reports
// the improvements made.
func (s *Service) EnhanceContent(ctx context.Context, content, style string) (*Enhancement, error) {
	prompt, err := EnhancePrompt(content, style)
	if err != nil {
		return nil, err
	}

	var enhancement Enhancement
	if err := s.execute(ctx, prompt, &enhancement); err != nil {
		return nil, err
	}
	return &enhancement, nil
}

// TranslateContent translates content to the named target language.
func (s *Service) TranslateContent(ctx context.Context, content, targetLanguage string) (*Translation, error) {
	prompt, err := TranslatePrompt(content, targetLanguage)
	if err != nil {
		return nil, err
	}

	var translation Translation
	if err := s.execute(ctx, prompt, &translation); err != nil {
		return nil, err
	}
	return &translation, nil
}

// SuggestImages suggests image search keywords for a post title and content.
func (s *Service) SuggestImages(ctx context.Context, title, content string) (*ImageSuggestions, error) {
	prompt, err := ImagesPrompt(title, content)
	if err != nil {
		return nil, err
	}

	var suggestions ImageSuggestions
	if err := s.execute(ctx, prompt, &suggestions); err != nil {
		return nil, err
	}
	return &suggestions, nil
}

// execute runs one generation call: availability check, a single provider
// request, fenced-JSON extraction, and decoding into out. A panic anywhere
// below is converted to an InternalError rather than propagated.
func (s *Service) execute(ctx context.Context, prompt string, out any) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			slog.Error("generation panicked", "panic", rec)
			err = &InternalError{fmt.Errorf("generation panicked: %v", rec)}
		}
	}()

	if !s.Available() {
		return ErrUnavailable
	}

	text, err := s.provider.Generate(ctx, prompt)
	if err != nil {
		return err
	}

	cleaned := extractJSON(text)
	if err := json.Unmarshal([]byte(cleaned), out); err != nil {
		return &ParseError{err}
	}

	return nil
}
