// Package ai wraps the OpenAI chat-completion and Whisper transcription
// endpoints behind the small set of generation calls the rest of the app
// needs. The clinical prompts run at temperature 0.0 with a bounded output
// length so the model compresses instead of inventing.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"vetscribe-server/internal/config"
	"vetscribe-server/internal/models"
)

const (
	clinicalTemperature = 0.0
	emailTemperature    = 0.1
	clinicalMaxTokens   = 1200
)

type Client struct {
	cfg        config.OpenAIConfig
	httpClient *http.Client
}

func NewClient(cfg config.OpenAIConfig) *Client {
	timeout := cfg.RequestTimeout
	if timeout == 0 {
		timeout = 90 * time.Second
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// GenerateSOAP produces the SOAP-formatted note for a composed case text.
func (c *Client) GenerateSOAP(ctx context.Context, caseText string) (string, error) {
	out, err := c.complete(ctx, transcriptionSystemPrompt,
		fmt.Sprintf(soapTemplate, caseText), clinicalTemperature, clinicalMaxTokens)
	if err != nil {
		return "", &models.GenerationError{Stage: "soap", Err: err}
	}
	return out, nil
}

// GenerateClientSummary produces the client-friendly summary for a case text.
func (c *Client) GenerateClientSummary(ctx context.Context, caseText string) (string, error) {
	out, err := c.complete(ctx, transcriptionSystemPrompt,
		fmt.Sprintf(clientSummaryTemplate, caseText), clinicalTemperature, clinicalMaxTokens)
	if err != nil {
		return "", &models.GenerationError{Stage: "client_summary", Err: err}
	}
	return out, nil
}

// GenerateClientEmail drafts the follow-up email for an appointment. Runs at
// a slightly higher temperature than the clinical notes but stays
// deterministic-leaning.
func (c *Client) GenerateClientEmail(ctx context.Context, appt models.Appointment) (string, error) {
	prompt := fmt.Sprintf(emailTemplate,
		appt.ClientName, appt.PatientName, appt.PatientName, appt.Species, appt.OriginalNotes)
	out, err := c.complete(ctx, emailSystemPrompt, prompt, emailTemperature, 0)
	if err != nil {
		return "", &models.GenerationError{Stage: "client_email", Err: err}
	}
	return out, nil
}

// ExtractDentalFindings asks for the strict key/value findings structure and
// returns the raw model output; parsing and validation live in the dental
// package.
func (c *Client) ExtractDentalFindings(ctx context.Context, notes string) (string, error) {
	out, err := c.complete(ctx, dentalSystemPrompt,
		fmt.Sprintf(dentalTemplate, notes), clinicalTemperature, 0)
	if err != nil {
		return "", &models.GenerationError{Stage: "dental", Err: err}
	}
	return out, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float32       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *apiError `json:"error"`
}

type apiError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

func (c *Client) complete(ctx context.Context, system, user string, temperature float32, maxTokens int) (string, error) {
	reqBody := chatRequest{
		Model: c.cfg.ChatModel,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.cfg.BaseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", decodeAPIError(resp)
	}

	var result chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("completion API returned no choices")
	}
	return result.Choices[0].Message.Content, nil
}

// Transcribe submits raw audio to the transcription endpoint. The audio is
// staged through a transient file that is removed on every path, success or
// failure.
func (c *Client) Transcribe(ctx context.Context, audio []byte, filename string) (string, error) {
	if filename == "" {
		filename = "audio.wav"
	}

	tmp, err := os.CreateTemp("", "vetscribe-audio-*"+filepath.Ext(filename))
	if err != nil {
		return "", &models.GenerationError{Stage: "transcription", Err: err}
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(audio); err != nil {
		tmp.Close()
		return "", &models.GenerationError{Stage: "transcription", Err: err}
	}
	if err := tmp.Close(); err != nil {
		return "", &models.GenerationError{Stage: "transcription", Err: err}
	}

	text, err := c.uploadForTranscription(ctx, tmpPath, filename)
	if err != nil {
		return "", &models.GenerationError{Stage: "transcription", Err: err}
	}
	return text, nil
}

func (c *Client) uploadForTranscription(ctx context.Context, path, filename string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", err
	}
	if err := writer.WriteField("model", c.cfg.TranscribeModel); err != nil {
		return "", err
	}
	if err := writer.WriteField("response_format", "text"); err != nil {
		return "", err
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.cfg.BaseURL+"/audio/transcriptions", body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", decodeAPIError(resp)
	}

	// response_format=text returns the transcript as a plain body
	text, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(text), nil
}

func decodeAPIError(resp *http.Response) error {
	raw, _ := io.ReadAll(resp.Body)
	var wrapped struct {
		Error *apiError `json:"error"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.Error != nil {
		return fmt.Errorf("OpenAI API error: %s - %s", resp.Status, wrapped.Error.Message)
	}
	return fmt.Errorf("OpenAI API error: %s - %s", resp.Status, string(raw))
}
