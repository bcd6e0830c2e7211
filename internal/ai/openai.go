package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
)

// Compile-time interface check.
var _ TextGenerator = (*OpenAIProvider)(nil)

const defaultOpenAIBaseURL = "https://api.openai.com/v1/chat/completions"

// OpenAIProvider implements TextGenerator using the OpenAI Chat Completions
// API. It is the fallback for deployments without Gemini access.
type OpenAIProvider struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// NewOpenAIProvider creates an OpenAIProvider with a 30-second timeout HTTP
// client.
func NewOpenAIProvider(apiKey, model string) *OpenAIProvider {
	return &OpenAIProvider{
		apiKey:  apiKey,
		model:   model,
		baseURL: defaultOpenAIBaseURL,
		client: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

// openaiRequest is the request body for the OpenAI Chat Completions API.
type openaiRequest struct {
	Model    string          `json:"model"`
	Messages []openaiMessage `json:"messages"`
}

// openaiMessage is a single message in the OpenAI request.
type openaiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// openaiResponse is the response envelope from the OpenAI Chat Completions API.
type openaiResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Generate sends the prompt as a single user message and returns the content
// of the first choice.
func (p *OpenAIProvider) Generate(ctx context.Context, prompt string) (string, error) {
	reqBody := openaiRequest{
		Model: p.model,
		Messages: []openaiMessage{
			{Role: "user", Content: prompt},
		},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", &InternalError{fmt.Errorf("marshaling request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL, bytes.NewReader(body))
	if err != nil {
		return "", &InternalError{fmt.Errorf("creating request: %w", err)}
	}

	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	req.Header.Set("Content-Type", "application/json")

	slog.Debug("calling OpenAI API", "model", p.model)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", &TransportError{fmt.Errorf("sending request: %w", err)}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &TransportError{fmt.Errorf("reading response body: %w", err)}
	}

	var apiResp openaiResponse

	// Any non-2xx status is a transport failure regardless of the body. The
	// body may be a JSON error envelope or an HTML gateway page; pull out the
	// API message when there is one.
	if resp.StatusCode != http.StatusOK {
		if json.Unmarshal(respBody, &apiResp) == nil && apiResp.Error != nil {
			return "", &TransportError{fmt.Errorf("API error (status %d): %s", resp.StatusCode, apiResp.Error.Message)}
		}
		return "", &TransportError{fmt.Errorf("unexpected status code: %d", resp.StatusCode)}
	}

	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return "", &ParseError{fmt.Errorf("decoding response envelope: %w", err)}
	}

	if apiResp.Error != nil {
		return "", &TransportError{fmt.Errorf("API error: %s", apiResp.Error.Message)}
	}

	if len(apiResp.Choices) == 0 || apiResp.Choices[0].Message.Content == "" {
		return "", ErrEmptyResponse
	}

	return apiResp.Choices[0].Message.Content, nil
}
