// Package llm turns persisted chat history into model calls and model
// responses back into message parts.
//
// Only model-visible parts cross the boundary: text goes in as prompt
// content and file parts as media. Reasoning, sources and step markers
// are UI artifacts of earlier responses and are not replayed.
package llm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"

	"github.com/scribe-chat/scribe/internal/chat"
	"github.com/scribe-chat/scribe/internal/config"
)

// StreamFunc receives each text delta as the model produces it.
type StreamFunc func(ctx context.Context, text string) error

// Generator calls the configured model through genkit.
type Generator struct {
	g           *genkit.Genkit
	modelName   string
	temperature float32
	maxTokens   int
	logger      *slog.Logger
}

// New creates a Generator bound to an initialized genkit instance.
func New(g *genkit.Genkit, cfg *config.Config, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}

	return &Generator{
		g:           g,
		modelName:   cfg.FullModelName(),
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		logger:      logger,
	}
}

// Generate runs the model over the conversation history. The last history
// entry is the pending user message. If onChunk is non-nil, text deltas
// are streamed to it as they arrive; the full response is returned either
// way, as parts ready for persistence.
func (gen *Generator) Generate(ctx context.Context, history []*chat.Message, onChunk StreamFunc) (chat.Parts, error) {
	messages := MessagesFromHistory(history)
	if len(messages) == 0 {
		return nil, fmt.Errorf("empty conversation history")
	}

	opts := []ai.GenerateOption{
		ai.WithMessages(messages...),
		ai.WithModelName(gen.modelName),
		ai.WithConfig(&ai.GenerationCommonConfig{
			Temperature:     float64(gen.temperature),
			MaxOutputTokens: gen.maxTokens,
		}),
	}
	if onChunk != nil {
		opts = append(opts, ai.WithStreaming(func(ctx context.Context, chunk *ai.ModelResponseChunk) error {
			if chunk == nil {
				return nil
			}
			for _, part := range chunk.Content {
				if part != nil && part.Kind == ai.PartText && part.Text != "" {
					if err := onChunk(ctx, part.Text); err != nil {
						return err
					}
				}
			}
			return nil
		}))
	}

	gen.logger.Debug("generating response",
		"model", gen.modelName, "history", len(messages))

	resp, err := genkit.Generate(ctx, gen.g, opts...)
	if err != nil {
		return nil, fmt.Errorf("generating response: %w", err)
	}

	return PartsFromResponse(resp), nil
}

// TitleMaxRunes bounds chat titles. The placeholder truncation in the API
// layer uses the same bound so the two title paths never diverge.
const TitleMaxRunes = 80

const (
	titleTimeout       = 5 * time.Second
	titleInputMaxRunes = 500
)

const titlePrompt = `Generate a concise title (max 80 characters) for a chat based on this first message.
The title should capture the main topic or intent.
Return ONLY the title text, no quotes, no explanations, no punctuation at the end.

Message: %s

Title:`

// Title generates a short chat title from the user's first message.
// Best effort: returns "" on any failure, callers fall back to truncation.
func (gen *Generator) Title(ctx context.Context, userMessage string) string {
	ctx, cancel := context.WithTimeout(ctx, titleTimeout)
	defer cancel()

	inputRunes := []rune(userMessage)
	if len(inputRunes) > titleInputMaxRunes {
		userMessage = string(inputRunes[:titleInputMaxRunes]) + "..."
	}

	resp, err := genkit.Generate(ctx, gen.g,
		ai.WithPrompt(titlePrompt, userMessage),
		ai.WithModelName(gen.modelName),
	)
	if err != nil {
		gen.logger.Debug("title generation failed", "error", err)
		return ""
	}

	title := strings.TrimSpace(resp.Text())
	titleRunes := []rune(title)
	if len(titleRunes) > TitleMaxRunes {
		title = string(titleRunes[:TitleMaxRunes-3]) + "..."
	}
	return title
}

// MessagesFromHistory converts stored messages to the model wire form.
// Messages whose parts are all UI-only are dropped entirely.
func MessagesFromHistory(history []*chat.Message) []*ai.Message {
	messages := make([]*ai.Message, 0, len(history))
	for _, msg := range history {
		parts := modelParts(msg.Parts)
		if len(parts) == 0 {
			continue
		}
		messages = append(messages, &ai.Message{
			Role:    aiRole(msg.Role),
			Content: parts,
		})
	}
	return messages
}

func aiRole(r chat.Role) ai.Role {
	switch r {
	case chat.RoleAssistant:
		return ai.RoleModel
	case chat.RoleSystem:
		return ai.RoleSystem
	default:
		return ai.RoleUser
	}
}

func modelParts(parts chat.Parts) []*ai.Part {
	out := make([]*ai.Part, 0, len(parts))
	for _, p := range parts {
		switch p := p.(type) {
		case chat.TextPart:
			out = append(out, ai.NewTextPart(p.Text))
		case chat.FilePart:
			out = append(out, ai.NewMediaPart(p.MediaType, p.URL))
		}
	}
	return out
}

// PartsFromResponse converts a model response to persistable parts.
// Reasoning and media survive as their own part types; anything else the
// model emits (tool traffic, custom data) has no stored form and is
// dropped.
func PartsFromResponse(resp *ai.ModelResponse) chat.Parts {
	if resp == nil || resp.Message == nil {
		return nil
	}

	var parts chat.Parts
	for _, p := range resp.Message.Content {
		if p == nil {
			continue
		}
		switch p.Kind {
		case ai.PartText:
			if p.Text != "" {
				parts = append(parts, chat.TextPart{Text: p.Text})
			}
		case ai.PartReasoning:
			if p.Text != "" {
				parts = append(parts, chat.ReasoningPart{Text: p.Text})
			}
		case ai.PartMedia:
			parts = append(parts, chat.FilePart{MediaType: p.ContentType, URL: p.Text})
		}
	}

	// A response with no convertible parts may still carry text.
	if len(parts) == 0 {
		if text := resp.Text(); text != "" {
			parts = chat.Parts{chat.TextPart{Text: text}}
		}
	}
	return parts
}
