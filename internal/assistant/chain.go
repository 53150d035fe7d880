package assistant

import (
	"context"
	"fmt"
	"strings"

	"seasalt-bot/internal/knowledge"
)

// Retriever finds the most relevant knowledge chunks for a query
// embedding.
type Retriever interface {
	Search(query []float32, k int) ([]knowledge.Chunk, error)
}

// Completer generates a chat completion from a conversation.
type Completer interface {
	Complete(ctx context.Context, messages []ChatMessage) (string, error)
}

const systemPromptFormat = `You are a helpful and friendly game master for the card game "Sea Salt & Paper". ` +
	`Your primary role is to answer players' questions about the game rules based on the provided CONTEXT. ` +
	`Answer concisely and clearly.

BEHAVIOR RULES:
- If a question is about the game rules, answer from the CONTEXT first.
- If the answer cannot be found in the CONTEXT, say so rather than guessing.
- Always prioritize accuracy and consistency with the official "Sea Salt & Paper" rules.
- If a question is not related to the game, politely state that you can only answer questions about "Sea Salt & Paper".
- Respond naturally to conversational messages like greetings and thanks, without bringing up game rules.

CONTEXT:
%s`

const emptyContextNotice = "No rulebook passages matched this question."

// Chain answers rule questions by retrieving rulebook passages and
// prompting the chat model with the trimmed session history.
type Chain struct {
	retriever Retriever
	embedder  knowledge.Embedder
	chat      Completer
	topK      int
}

// NewChain builds the retrieval-augmented answer chain. topK values
// below one fall back to the original retriever's k=3.
func NewChain(retriever Retriever, embedder knowledge.Embedder, chat Completer, topK int) *Chain {
	if topK < 1 {
		topK = 3
	}
	return &Chain{retriever: retriever, embedder: embedder, chat: chat, topK: topK}
}

// Answer embeds the question, retrieves context, and completes the
// conversation. History is the caller's prior exchange, oldest first.
func (ch *Chain) Answer(ctx context.Context, question string, history []ChatMessage) (string, error) {
	vectors, err := ch.embedder.Embed(ctx, []string{question})
	if err != nil {
		return "", fmt.Errorf("embed question: %w", err)
	}
	if len(vectors) == 0 {
		return "", fmt.Errorf("embed question: no vector returned")
	}

	chunks, err := ch.retriever.Search(vectors[0], ch.topK)
	if err != nil {
		return "", fmt.Errorf("retrieve context: %w", err)
	}

	contextBlock := emptyContextNotice
	if len(chunks) > 0 {
		parts := make([]string, len(chunks))
		for i, c := range chunks {
			parts[i] = c.Content
		}
		contextBlock = strings.Join(parts, "\n\n---\n\n")
	}

	messages := make([]ChatMessage, 0, len(history)+2)
	messages = append(messages, ChatMessage{Role: RoleSystem, Content: fmt.Sprintf(systemPromptFormat, contextBlock)})
	messages = append(messages, history...)
	messages = append(messages, ChatMessage{Role: RoleUser, Content: question})

	answer, err := ch.chat.Complete(ctx, messages)
	if err != nil {
		return "", err
	}
	return answer, nil
}

// TrimHistory keeps only the most recent limit messages so session
// history never grows unbounded.
func TrimHistory(history []ChatMessage, limit int) []ChatMessage {
	if limit <= 0 || len(history) <= limit {
		return history
	}
	return history[len(history)-limit:]
}
