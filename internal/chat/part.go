package chat

import (
	"encoding/json"
	"fmt"
)

// PartType discriminates the supported part variants.
type PartType string

const (
	PartTypeText           PartType = "text"
	PartTypeReasoning      PartType = "reasoning"
	PartTypeFile           PartType = "file"
	PartTypeSourceURL      PartType = "source-url"
	PartTypeSourceDocument PartType = "source-document"
	PartTypeStepStart      PartType = "step-start"
)

// Part is one typed content unit of a message.
// Implementations are value types; a Parts slice holds them directly.
type Part interface {
	PartType() PartType
}

// TextPart is plain response or prompt text.
type TextPart struct {
	Text string `json:"text"`
}

func (TextPart) PartType() PartType { return PartTypeText }

// ReasoningPart is model reasoning surfaced alongside the answer.
type ReasoningPart struct {
	Text             string          `json:"text"`
	ProviderMetadata json.RawMessage `json:"providerMetadata,omitempty"`
}

func (ReasoningPart) PartType() PartType { return PartTypeReasoning }

// FilePart references an attached or generated file by URL.
type FilePart struct {
	MediaType string `json:"mediaType"`
	Filename  string `json:"filename,omitempty"`
	URL       string `json:"url"`
}

func (FilePart) PartType() PartType { return PartTypeFile }

// SourceURLPart cites a web source the model consulted.
type SourceURLPart struct {
	SourceID         string          `json:"sourceId"`
	URL              string          `json:"url"`
	Title            string          `json:"title,omitempty"`
	ProviderMetadata json.RawMessage `json:"providerMetadata,omitempty"`
}

func (SourceURLPart) PartType() PartType { return PartTypeSourceURL }

// SourceDocumentPart cites a document source the model consulted.
type SourceDocumentPart struct {
	SourceID         string          `json:"sourceId"`
	MediaType        string          `json:"mediaType"`
	Title            string          `json:"title"`
	Filename         string          `json:"filename,omitempty"`
	ProviderMetadata json.RawMessage `json:"providerMetadata,omitempty"`
}

func (SourceDocumentPart) PartType() PartType { return PartTypeSourceDocument }

// StepStartPart marks a step boundary in a multi-step response.
// It carries no payload.
type StepStartPart struct{}

func (StepStartPart) PartType() PartType { return PartTypeStepStart }

/// Parts is an ordered part list with a discriminated-union JSON encoding:
// each element carries a "type" field alongside its payload, matching the
// message format the UI exchanges with the server.
type Parts []Part

// MarshalJSON implements json.Marshaler.
func (ps Parts) MarshalJSON() ([]byte, error) {
	out := make([]json.RawMessage, len(ps))
	for i, p := range ps {
		b, err := MarshalPart(p)
		if err != nil {
			return nil, fmt.Errorf("part %d: %w", i, err)
		}
		out[i] = b
	}
	return json.Marshal(out)
}

// UnmarshalJSON implements json.Unmarshaler.
func (ps *Parts) UnmarshalJSON(data []byte) error {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return fmt.Errorf("decoding parts array: %w", err)
	}

	parts := make(Parts, len(raws))
	for i, raw := range raws {
		p, err := UnmarshalPart(raw)
		if err != nil {
			return fmt.Errorf("part %d: %w", i, err)
		}
		parts[i] = p
	}
	*ps = parts
	return nil
}

// MarshalPart encodes a single part with its "type" discriminant.
// An unknown dynamic type fails with ErrUnsupportedPartType.
func MarshalPart(p Part) ([]byte, error) {
	switch p := p.(type) {
	case TextPart:
		return json.Marshal(struct {
			Type PartType `json:"type"`
			TextPart
		}{PartTypeText, p})
	case ReasoningPart:
		return json.Marshal(struct {
			Type PartType `json:"type"`
			ReasoningPart
		}{PartTypeReasoning, p})
	case FilePart:
		return json.Marshal(struct {
			Type PartType `json:"type"`
			FilePart
		}{PartTypeFile, p})
	case SourceURLPart:
		return json.Marshal(struct {
			Type PartType `json:"type"`
			SourceURLPart
		}{PartTypeSourceURL, p})
	case SourceDocumentPart:
		return json.Marshal(struct {
			Type PartType `json:"type"`
			SourceDocumentPart
		}{PartTypeSourceDocument, p})
	case StepStartPart:
		return json.Marshal(struct {
			Type PartType `json:"type"`
		}{PartTypeStepStart})
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedPartType, p)
	}
}

// UnmarshalPart decodes a single part by its "type" discriminant.
// An unknown type fails with ErrUnsupportedPartType.
func UnmarshalPart(data []byte) (Part, error) {
	var probe struct {
		Type PartType `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("decoding part discriminant: %w", err)
	}

	switch probe.Type {
	case PartTypeText:
		var p TextPart
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, err
		}
		return p, nil
	case PartTypeReasoning:
		var p ReasoningPart
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, err
		}
		return p, nil
	case PartTypeFile:
		var p FilePart
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, err
		}
		return p, nil
	case PartTypeSourceURL:
		var p SourceURLPart
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, err
		}
		return p, nil
	case PartTypeSourceDocument:
		var p SourceDocumentPart
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, err
		}
		return p, nil
	case PartTypeStepStart:
		return StepStartPart{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedPartType, probe.Type)
	}
}
