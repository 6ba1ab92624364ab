package ports

import "context"

// ChatClient is the minimal surface of an LLM chat-completion provider
type ChatClient interface {
	ChatCompletion(ctx context.Context, systemMessage, prompt string) (string, error)
}
