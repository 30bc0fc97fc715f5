package chat

import (
	"encoding/json"
	"fmt"

	"github.com/scribe-chat/scribe/internal/sqlc"
)

// rowsFromParts flattens a part list into insert parameters. The slice
// index becomes the row's "order" column, so sibling order survives the
// round trip regardless of insertion timing.
func rowsFromParts(messageID string, parts Parts) ([]sqlc.InsertPartParams, error) {
	rows := make([]sqlc.InsertPartParams, len(parts))
	for i, p := range parts {
		row, err := rowFromPart(p)
		if err != nil {
			return nil, fmt.Errorf("part %d: %w", i, err)
		}
		row.MessageID = messageID
		row.Order = int32(i)
		rows[i] = row
	}
	return rows, nil
}

// rowFromPart maps one part onto the wide row shape. Only the columns
// belonging to the part's type are set; the rest stay NULL. Required
// fields are checked here so that the database constraints never see a
// violating row in normal operation.
func rowFromPart(p Part) (sqlc.InsertPartParams, error) {
	switch p := p.(type) {
	case TextPart:
		if p.Text == "" {
			return sqlc.InsertPartParams{}, fmt.Errorf("%w: text part text", ErrMissingField)
		}
		return sqlc.InsertPartParams{
			Type:     string(PartTypeText),
			TextText: &p.Text,
		}, nil

	case ReasoningPart:
		if p.Text == "" {
			return sqlc.InsertPartParams{}, fmt.Errorf("%w: reasoning part text", ErrMissingField)
		}
		return sqlc.InsertPartParams{
			Type:             string(PartTypeReasoning),
			ReasoningText:    &p.Text,
			ProviderMetadata: metadataBytes(p.ProviderMetadata),
		}, nil

	case FilePart:
		if p.MediaType == "" {
			return sqlc.InsertPartParams{}, fmt.Errorf("%w: file part mediaType", ErrMissingField)
		}
		if p.URL == "" {
			return sqlc.InsertPartParams{}, fmt.Errorf("%w: file part url", ErrMissingField)
		}
		return sqlc.InsertPartParams{
			Type:          string(PartTypeFile),
			FileMediaType: &p.MediaType,
			FileFilename:  optional(p.Filename),
			FileUrl:       &p.URL,
		}, nil

	case SourceURLPart:
		if p.SourceID == "" {
			return sqlc.InsertPartParams{}, fmt.Errorf("%w: source-url part sourceId", ErrMissingField)
		}
		if p.URL == "" {
			return sqlc.InsertPartParams{}, fmt.Errorf("%w: source-url part url", ErrMissingField)
		}
		return sqlc.InsertPartParams{
			Type:              string(PartTypeSourceURL),
			SourceUrlSourceID: &p.SourceID,
			SourceUrlUrl:      &p.URL,
			SourceUrlTitle:    optional(p.Title),
			ProviderMetadata:  metadataBytes(p.ProviderMetadata),
		}, nil

	case SourceDocumentPart:
		if p.SourceID == "" {
			return sqlc.InsertPartParams{}, fmt.Errorf("%w: source-document part sourceId", ErrMissingField)
		}
		if p.MediaType == "" {
			return sqlc.InsertPartParams{}, fmt.Errorf("%w: source-document part mediaType", ErrMissingField)
		}
		if p.Title == "" {
			return sqlc.InsertPartParams{}, fmt.Errorf("%w: source-document part title", ErrMissingField)
		}
		return sqlc.InsertPartParams{
			Type:                    string(PartTypeSourceDocument),
			SourceDocumentSourceID:  &p.SourceID,
			SourceDocumentMediaType: &p.MediaType,
			SourceDocumentTitle:     &p.Title,
			SourceDocumentFilename:  optional(p.Filename),
			ProviderMetadata:        metadataBytes(p.ProviderMetadata),
		}, nil

	case StepStartPart:
		return sqlc.InsertPartParams{
			Type: string(PartTypeStepStart),
		}, nil

	default:
		return sqlc.InsertPartParams{}, fmt.Errorf("%w: %T", ErrUnsupportedPartType, p)
	}
}

// partFromRow rebuilds a part from its stored row. A NULL in a column
// the row's type requires means the constraints were bypassed; that is
// surfaced as ErrDataIntegrity rather than papered over with zero values.
func partFromRow(row sqlc.Part) (Part, error) {
	switch PartType(row.Type) {
	case PartTypeText:
		text, err := required(row.TextText, row, "text_text")
		if err != nil {
			return nil, err
		}
		return TextPart{Text: text}, nil

	case PartTypeReasoning:
		text, err := required(row.ReasoningText, row, "reasoning_text")
		if err != nil {
			return nil, err
		}
		return ReasoningPart{
			Text:             text,
			ProviderMetadata: json.RawMessage(row.ProviderMetadata),
		}, nil

	case PartTypeFile:
		mediaType, err := required(row.FileMediaType, row, "file_media_type")
		if err != nil {
			return nil, err
		}
		u, err := required(row.FileUrl, row, "file_url")
		if err != nil {
			return nil, err
		}
		return FilePart{
			MediaType: mediaType,
			Filename:  deref(row.FileFilename),
			URL:       u,
		}, nil

	case PartTypeSourceURL:
		sourceID, err := required(row.SourceUrlSourceID, row, "source_url_source_id")
		if err != nil {
			return nil, err
		}
		u, err := required(row.SourceUrlUrl, row, "source_url_url")
		if err != nil {
			return nil, err
		}
		return SourceURLPart{
			SourceID:         sourceID,
			URL:              u,
			Title:            deref(row.SourceUrlTitle),
			ProviderMetadata: json.RawMessage(row.ProviderMetadata),
		}, nil

	case PartTypeSourceDocument:
		sourceID, err := required(row.SourceDocumentSourceID, row, "source_document_source_id")
		if err != nil {
			return nil, err
		}
		mediaType, err := required(row.SourceDocumentMediaType, row, "source_document_media_type")
		if err != nil {
			return nil, err
		}
		title, err := required(row.SourceDocumentTitle, row, "source_document_title")
		if err != nil {
			return nil, err
		}
		return SourceDocumentPart{
			SourceID:         sourceID,
			MediaType:        mediaType,
			Title:            title,
			Filename:         deref(row.SourceDocumentFilename),
			ProviderMetadata: json.RawMessage(row.ProviderMetadata),
		}, nil

	case PartTypeStepStart:
		return StepStartPart{}, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedPartType, row.Type)
	}
}

func required(col *string, row sqlc.Part, name string) (string, error) {
	if col == nil {
		return "", fmt.Errorf("%w: part %s type %s has NULL %s",
			ErrDataIntegrity, row.ID, row.Type, name)
	}
	return *col, nil
}

// optional maps the empty string to NULL so absent optional fields do not
// round-trip as empty strings.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func metadataBytes(m json.RawMessage) []byte {
	if len(m) == 0 {
		return nil
	}
	return []byte(m)
}
