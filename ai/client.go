// backend/ai/client.go
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

// AllModelsFailedMessage is returned by Complete when every model in
// the fallback list has failed. It is a user-visible sentinel, not an
// error: total AI failure must never interrupt the caller's flow.
const AllModelsFailedMessage = "❌ All AI models failed. Please try again later."

// Client issues chat-completion calls against an OpenAI-compatible
// endpoint, falling back through an ordered model list until one
// produces a non-empty response.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewClient(baseURL, apiKey string, callTimeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: callTimeout},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete sends the prompt to each model in order and returns the
// first non-empty completion. An empty response body counts as a
// failure, the same as a transport error. When the list is exhausted
// the fixed sentinel message is returned; Complete never fails the
// caller.
func (c *Client) Complete(ctx context.Context, prompt string, modelList []string) string {
	for i, model := range modelList {
		if i > 0 {
			log.Printf("WARN AI: model %s failed, falling back to %s", modelList[i-1], model)
		}
		content, err := c.completeOne(ctx, prompt, model)
		if err != nil {
			log.Printf("WARN AI: model %s failed: %v", model, err)
			continue
		}
		return content
	}
	log.Printf("ERROR AI: all %d models failed", len(modelList))
	return AllModelsFailedMessage
}

func (c *Client) completeOne(ctx context.Context, prompt, model string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model:    model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build completion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("completion call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("completion call returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode completion response: %w", err)
	}
	if len(parsed.Choices) == 0 || strings.TrimSpace(parsed.Choices[0].Message.Content) == "" {
		return "", fmt.Errorf("model returned an empty response")
	}
	return parsed.Choices[0].Message.Content, nil
}
