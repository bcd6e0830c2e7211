package ai

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// newTestGemini creates a GeminiProvider pointed at a test server.
func newTestGemini(t *testing.T, handler http.HandlerFunc) *GeminiProvider {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	provider := NewGeminiProvider("test-key", "gemini-test")
	provider.baseURL = server.URL
	return provider
}

func geminiEnvelope(text string) string {
	return `{"candidates":[{"content":{"parts":[{"text":` + mustJSONString(text) + `}]}}]}`
}

func mustJSONString(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

func TestGeminiGenerate(t *testing.T) {
	t.Run("returns first candidate text", func(t *testing.T) {
		provider := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, geminiEnvelope("generated text"))
		})

		got, err := provider.Generate(context.Background(), "a prompt")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "generated text" {
			t.Errorf("Generate() = %q, want \"generated text\"", got)
		}
	})

	t.Run("sends prompt in contents/parts and key as query param", func(t *testing.T) {
		var gotKey, gotPath string
		var gotBody geminiRequest

		provider := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
			gotKey = r.URL.Query().Get("key")
			gotPath = r.URL.Path
			_ = json.NewDecoder(r.Body).Decode(&gotBody)
			io.WriteString(w, geminiEnvelope("ok"))
		})

		if _, err := provider.Generate(context.Background(), "the prompt"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if gotKey != "test-key" {
			t.Errorf("key query param = %q, want \"test-key\"", gotKey)
		}
		if !strings.HasSuffix(gotPath, "/gemini-test:generateContent") {
			t.Errorf("request path = %q, want .../gemini-test:generateContent", gotPath)
		}
		if len(gotBody.Contents) != 1 || len(gotBody.Contents[0].Parts) != 1 {
			t.Fatalf("request body = %+v, want one content with one part", gotBody)
		}
		if gotBody.Contents[0].Parts[0].Text != "the prompt" {
			t.Errorf("part text = %q, want \"the prompt\"", gotBody.Contents[0].Parts[0].Text)
		}
	})

	t.Run("non-2xx status is a transport error", func(t *testing.T) {
		provider := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			io.WriteString(w, `{}`)
		})

		_, err := provider.Generate(context.Background(), "a prompt")
		var transportErr *TransportError
		if !errors.As(err, &transportErr) {
			t.Fatalf("expected *TransportError, got %v", err)
		}
	})

	t.Run("non-2xx with html body is a transport error", func(t *testing.T) {
		provider := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			io.WriteString(w, "<html>502 Bad Gateway</html>")
		})

		_, err := provider.Generate(context.Background(), "a prompt")
		var transportErr *TransportError
		if !errors.As(err, &transportErr) {
			t.Fatalf("expected *TransportError, got %v", err)
		}
		if !strings.Contains(err.Error(), "502") {
			t.Errorf("error %q should carry the status code", err)
		}
	})

	t.Run("api error message is a transport error", func(t *testing.T) {
		provider := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			io.WriteString(w, `{"error":{"message":"API key not valid"}}`)
		})

		_, err := provider.Generate(context.Background(), "a prompt")
		var transportErr *TransportError
		if !errors.As(err, &transportErr) {
			t.Fatalf("expected *TransportError, got %v", err)
		}
		if !strings.Contains(err.Error(), "API key not valid") {
			t.Errorf("error %q should carry the provider message", err)
		}
	})

	t.Run("missing candidates is an empty response", func(t *testing.T) {
		provider := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, `{"candidates":[]}`)
		})

		_, err := provider.Generate(context.Background(), "a prompt")
		if !errors.Is(err, ErrEmptyResponse) {
			t.Fatalf("expected ErrEmptyResponse, got %v", err)
		}
	})

	t.Run("undecodable envelope is a parse error", func(t *testing.T) {
		provider := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, "<html>gateway error</html>")
		})

		_, err := provider.Generate(context.Background(), "a prompt")
		var parseErr *ParseError
		if !errors.As(err, &parseErr) {
			t.Fatalf("expected *ParseError, got %v", err)
		}
	})

	t.Run("connection failure is a transport error", func(t *testing.T) {
		provider := NewGeminiProvider("test-key", "gemini-test")
		provider.baseURL = "http://127.0.0.1:1" // nothing listens here

		_, err := provider.Generate(context.Background(), "a prompt")
		var transportErr *TransportError
		if !errors.As(err, &transportErr) {
			t.Fatalf("expected *TransportError, got %v", err)
		}
	})
}

func TestNewProvider(t *testing.T) {
	tests := []struct {
		name     string
		cfg      ProviderConfig
		wantErr  bool
		wantType string
	}{
		{
			name:     "gemini provider",
			cfg:      ProviderConfig{Provider: "gemini", APIKey: "k", Model: "gemini-1.5-flash"},
			wantType: "gemini",
		},
		{
			name:     "openai provider",
			cfg:      ProviderConfig{Provider: "openai", APIKey: "k", Model: "gpt-4o-mini"},
			wantType: "openai",
		},
		{
			name:    "unsupported provider",
			cfg:     ProviderConfig{Provider: "invalid"},
			wantErr: true,
		},
		{
			name:    "empty provider",
			cfg:     ProviderConfig{Provider: ""},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider, err := NewProvider(tt.cfg)

			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			switch tt.wantType {
			case "gemini":
				if _, ok := provider.(*GeminiProvider); !ok {
					t.Errorf("expected *GeminiProvider, got %T", provider)
				}
			case "openai":
				if _, ok := provider.(*OpenAIProvider); !ok {
					t.Errorf("expected *OpenAIProvider, got %T", provider)
				}
			}
		})
	}
}
