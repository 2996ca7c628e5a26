package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// InferenceError wraps any failure of the recommendation round trip.
// Callers report it inline and keep their previous result.
type InferenceError struct {
	Msg string
	Err error
}

func (e *InferenceError) Error() string {
	if e.Err != nil {
		return "inference: " + e.Msg + ": " + e.Err.Error()
	}
	return "inference: " + e.Msg
}

func (e *InferenceError) Unwrap() error { return e.Err }

// Client talks to an OpenAI-compatible chat completions endpoint. One
// blocking request per call, no retries; any timeout comes from the
// caller's context.
type Client struct {
	APIKey  string
	Model   string
	BaseURL string
	HTTP    *http.Client
}

func New(apiKey, model string) *Client {
	return &Client{
		APIKey:  apiKey,
		Model:   model,
		BaseURL: "https://api.openai.com/v1",
		HTTP:    http.DefaultClient,
	}
}

func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	body := map[string]any{
		"model": c.Model,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return "", &InferenceError{Msg: "encode request", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.BaseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", &InferenceError{Msg: "build request", Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := c.HTTP.Do(req)
	if err != nil {
		return "", &InferenceError{Msg: "request failed", Err: err}
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return "", &InferenceError{Msg: "read response", Err: err}
	}
	if res.StatusCode != http.StatusOK {
		return "", &InferenceError{Msg: fmt.Sprintf("status %d: %s", res.StatusCode, truncate(raw, 200))}
	}

	var parsed struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", &InferenceError{Msg: "decode response", Err: err}
	}
	if len(parsed.Choices) == 0 {
		return "", &InferenceError{Msg: "no completion returned"}
	}

	return parsed.Choices[0].Message.Content, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
