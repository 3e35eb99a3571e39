package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

type Request struct {
	Inputs string `json:"inputs"`
}

// Client calls a Hugging Face style text-generation endpoint.
type Client struct {
	token  string
	url    string
	client *http.Client
}

func NewClient(token, url string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &Client{
		token: token,
		url:   url,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *Client) Generate(ctx context.Context, question string) Result {
	body, err := json.Marshal(Request{Inputs: question})
	if err != nil {
		return TransportError{Err: fmt.Errorf("failed to marshal request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return TransportError{Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return TransportError{Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return TransportError{Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if resp.StatusCode != http.StatusOK {
		log.Printf("Text generation failed with status %d after %v: %s", resp.StatusCode, time.Since(start), truncate(string(respBody), 200))
		return APIError{StatusCode: resp.StatusCode}
	}

	log.Printf("Text generation succeeded in %v", time.Since(start))
	return ParseGenerated(respBody)
}

// ParseGenerated reads generated_text out of either a list of objects (first
// element wins) or a single object. Only a missing field on a single object is
// tolerated; any other deviation is a MalformedResponse.
func ParseGenerated(body []byte) Result {
	var raw interface{}
	if err := json.Unmarshal(body, &raw); err != nil {
		return MalformedResponse{Detail: fmt.Sprintf("invalid JSON: %v", err)}
	}

	switch v := raw.(type) {
	case []interface{}:
		if len(v) == 0 {
			return MalformedResponse{Detail: "empty result list"}
		}
		first, ok := v[0].(map[string]interface{})
		if !ok {
			return MalformedResponse{Detail: fmt.Sprintf("result list element is %T, not an object", v[0])}
		}
		field, ok := first["generated_text"]
		if !ok {
			return MalformedResponse{Detail: "generated_text missing from first result"}
		}
		text, ok := field.(string)
		if !ok {
			return MalformedResponse{Detail: fmt.Sprintf("generated_text is %T, not a string", field)}
		}
		return Answer{Text: text}

	case map[string]interface{}:
		field, ok := v["generated_text"]
		if !ok {
			return Answer{Text: NoAnswer}
		}
		text, ok := field.(string)
		if !ok {
			return MalformedResponse{Detail: fmt.Sprintf("generated_text is %T, not a string", field)}
		}
		return Answer{Text: text}

	default:
		return MalformedResponse{Detail: fmt.Sprintf("unexpected response of type %T", raw)}
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "... (truncated)"
}
