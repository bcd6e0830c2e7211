package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// Compile-time interface check.
var _ TextGenerator = (*GeminiProvider)(nil)

const defaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"

// requestTimeout bounds every generation call. There is no retry and no
// mid-flight cancellation beyond this timeout.
const requestTimeout = 30 * time.Second

// GeminiProvider implements TextGenerator using the Gemini generateContent
// REST API. The API key is passed as a query parameter, per the API's
// convention.
type GeminiProvider struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// NewGeminiProvider creates a GeminiProvider with a 30-second timeout HTTP
// client.
func NewGeminiProvider(apiKey, model string) *GeminiProvider {
	return &GeminiProvider{
		apiKey:  apiKey,
		model:   model,
		baseURL: defaultGeminiBaseURL,
		client: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

// geminiRequest is the request body for the generateContent endpoint.
type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

// geminiContent is a single content block in the Gemini request.
type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

// geminiPart is a single text part in a Gemini content block.
type geminiPart struct {
	Text string `json:"text"`
}

// geminiResponse is the response envelope from the generateContent endpoint.
type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Generate sends the prompt to the Gemini generateContent endpoint and
// returns the text of the first candidate's first part.
func (p *GeminiProvider) Generate(ctx context.Context, prompt string) (string, error) {
	reqBody := geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: prompt}}},
		},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", &InternalError{fmt.Errorf("marshaling request: %w", err)}
	}

	endpoint := fmt.Sprintf("%s/%s:generateContent?key=%s",
		p.baseURL, p.model, url.QueryEscape(p.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", &InternalError{fmt.Errorf("creating request: %w", err)}
	}

	req.Header.Set("Content-Type", "application/json")

	slog.Debug("calling Gemini API", "model", p.model)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", &TransportError{fmt.Errorf("sending request: %w", err)}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &TransportError{fmt.Errorf("reading response body: %w", err)}
	}

	var apiResp geminiResponse

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

	if len(apiResp.Candidates) == 0 || len(apiResp.Candidates[0].Content.Parts) == 0 {
		return "", ErrEmptyResponse
	}

	text := apiResp.Candidates[0].Content.Parts[0].Text
	if text == "" {
		return "", ErrEmptyResponse
	}

	return text, nil
}
