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

	"vetscribe-server/internal/config"
	"vetscribe-server/internal/models"
)

func newTestClient(baseURL string) *Client {
	return NewClient(config.OpenAIConfig{
		APIKey:          "test-key",
		BaseURL:         baseURL,
		ChatModel:       "gpt-4",
		TranscribeModel: "whisper-1",
	})
}

func chatReply(t *testing.T, w http.ResponseWriter, content string) {
	t.Helper()
	resp := map[string]any{
		"choices": []map[string]any{
			{"message": map[string]string{"role": "assistant", "content": content}},
		},
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		t.Fatalf("encode reply: %v", err)
	}
}

func TestGenerateSOAP(t *testing.T) {
	var captured chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		chatReply(t, w, "SUBJECTIVE: Lethargic 3 days")
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	out, err := client.GenerateSOAP(context.Background(), "Patient: Buddy\nLethargic 3 days")
	if err != nil {
		t.Fatalf("GenerateSOAP: %v", err)
	}
	if out != "SUBJECTIVE: Lethargic 3 days" {
		t.Errorf("out = %q", out)
	}

	if captured.Model != "gpt-4" {
		t.Errorf("model = %q", captured.Model)
	}
	if captured.Temperature != 0 {
		t.Errorf("clinical temperature = %v, want 0", captured.Temperature)
	}
	if captured.MaxTokens != 1200 {
		t.Errorf("max_tokens = %d, want 1200", captured.MaxTokens)
	}
	if len(captured.Messages) != 2 || captured.Messages[0].Role != "system" {
		t.Fatalf("unexpected messages: %+v", captured.Messages)
	}
	if !strings.Contains(captured.Messages[1].Content, "Lethargic 3 days") {
		t.Errorf("case text missing from prompt: %q", captured.Messages[1].Content)
	}
	if !strings.Contains(captured.Messages[1].Content, "Not documented") {
		t.Errorf("prompt must instruct the model against inventing findings")
	}
}

func TestGenerateClientEmailTemperature(t *testing.T) {
	var captured chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		chatReply(t, w, "Dear J. Smith, ...")
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	appt := models.Appointment{
		PatientName:   "Buddy",
		ClientName:    "J. Smith",
		Species:       "Dog",
		OriginalNotes: "Lethargic 3 days",
	}
	if _, err := client.GenerateClientEmail(context.Background(), appt); err != nil {
		t.Fatalf("GenerateClientEmail: %v", err)
	}

	if captured.Temperature != 0.1 {
		t.Errorf("email temperature = %v, want 0.1", captured.Temperature)
	}
	prompt := captured.Messages[1].Content
	for _, want := range []string{"J. Smith", "Buddy", "Dog"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestCompleteAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		io.WriteString(w, `{"error": {"message": "Rate limit reached", "type": "rate_limit_error"}}`)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.GenerateClientSummary(context.Background(), "notes")
	if err == nil {
		t.Fatal("expected error")
	}
	var gerr *models.GenerationError
	if !errors.As(err, &gerr) {
		t.Fatalf("expected GenerationError, got %T: %v", err, err)
	}
	if !strings.Contains(err.Error(), "Rate limit reached") {
		t.Errorf("upstream message not surfaced: %v", err)
	}
}

func TestCompleteNoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		io.WriteString(w, `{"choices": []}`)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	if _, err := client.GenerateSOAP(context.Background(), "notes"); err == nil {
		t.Fatal("expected error for empty choices")
	}
}

func TestTranscribe(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/audio/transcriptions" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		if got := r.FormValue("model"); got != "whisper-1" {
			t.Errorf("model = %q", got)
		}
		if got := r.FormValue("response_format"); got != "text" {
			t.Errorf("response_format = %q", got)
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("form file: %v", err)
		}
		defer file.Close()
		if header.Filename != "consult.mp3" {
			t.Errorf("filename = %q", header.Filename)
		}
		payload, _ := io.ReadAll(file)
		if string(payload) != "fake-audio-bytes" {
			t.Errorf("payload = %q", payload)
		}

		io.WriteString(w, "The patient presented with lethargy.")
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	text, err := client.Transcribe(context.Background(), []byte("fake-audio-bytes"), "consult.mp3")
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if text != "The patient presented with lethargy." {
		t.Errorf("text = %q", text)
	}
}

func TestTranscribeUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"error": {"message": "Unsupported file format"}}`)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.Transcribe(context.Background(), []byte("xx"), "notes.txt")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "Unsupported file format") {
		t.Errorf("upstream message not surfaced: %v", err)
	}
}

func TestBuildCaseText(t *testing.T) {
	appt := models.Appointment{
		PatientName: "Buddy",
		Species:     "Dog",
		Breed:       "Labrador",
		Age:         "5 years",
		Sex:         "Male Neutered",
		Weight:      "30 kg",
	}
	got := BuildCaseText(appt, "Lethargic 3 days")

	for _, want := range []string{"Patient: Buddy", "Species: Dog", "Breed: Labrador", "Appointment Notes:", "Lethargic 3 days"} {
		if !strings.Contains(got, want) {
			t.Errorf("case text missing %q:\n%s", want, got)
		}
	}
}
