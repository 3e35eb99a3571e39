package inference

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
)

// ChatClient sends the question as a single user message to an
// OpenAI-compatible chat completions endpoint, such as the Hugging Face router.
type ChatClient struct {
	client openai.Client
	model  string
}

func NewChatClient(token, baseURL, model string, timeout time.Duration) *ChatClient {
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	client := openai.NewClient(
		option.WithBaseURL(baseURL),
		option.WithAPIKey(token),
		option.WithHTTPClient(&http.Client{Timeout: timeout}),
		option.WithMaxRetries(0),
	)
	return &ChatClient{client: client, model: model}
}

func (c *ChatClient) Generate(ctx context.Context, question string) Result {
	params := openai.ChatCompletionNewParams{
		Model: shared.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(question),
		},
	}

	start := time.Now()
	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			log.Printf("Chat completion failed with status %d after %v", apiErr.StatusCode, time.Since(start))
			return APIError{StatusCode: apiErr.StatusCode}
		}
		return TransportError{Err: err}
	}

	if resp == nil || len(resp.Choices) == 0 {
		return MalformedResponse{Detail: "no choices in completion"}
	}

	log.Printf("Chat completion with %s succeeded in %v", c.model, time.Since(start))
	return Answer{Text: resp.Choices[0].Message.Content}
}
