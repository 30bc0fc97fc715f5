package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/scribe-chat/scribe/internal/sqlc"
)

// Querier defines the database operations the Store needs.
// The interface lives with the consumer so tests can supply a mock
// without touching the generated code.
type Querier interface {
	// Chat operations
	CreateChat(ctx context.Context, arg sqlc.CreateChatParams) (sqlc.Chat, error)
	GetChat(ctx context.Context, id string) (sqlc.Chat, error)
	ListChats(ctx context.Context) ([]sqlc.Chat, error)
	TouchChat(ctx context.Context, id string) error
	UpdateChatTitle(ctx context.Context, arg sqlc.UpdateChatTitleParams) error
	DeleteChat(ctx context.Context, id string) error

	// Message operations
	UpsertMessage(ctx context.Context, arg sqlc.UpsertMessageParams) error
	GetMessage(ctx context.Context, id string) (sqlc.Message, error)
	ListMessages(ctx context.Context, chatID string) ([]sqlc.Message, error)
	DeleteMessage(ctx context.Context, id string) error
	DeleteMessagesAfter(ctx context.Context, arg sqlc.DeleteMessagesAfterParams) error

	// Part operations
	InsertPart(ctx context.Context, arg sqlc.InsertPartParams) error
	ListParts(ctx context.Context, messageID string) ([]sqlc.Part, error)
	ListPartsByChat(ctx context.Context, chatID string) ([]sqlc.Part, error)
	DeletePartsByMessage(ctx context.Context, messageID string) error
}

// Store persists chats, messages and parts in PostgreSQL.
//
// Store is safe for concurrent use by multiple goroutines.
type Store struct {
	querier Querier
	pool    *pgxpool.Pool // transaction support; nil in mock-querier tests
	logger  *slog.Logger
}

// New creates a Store. pool may be nil when querier is a mock; multi-step
// writes then run without a transaction, which is acceptable only in tests.
func New(querier Querier, pool *pgxpool.Pool, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}

	return &Store{
		querier: querier,
		pool:    pool,
		logger:  logger,
	}
}

// CreateChat creates a chat with a caller-supplied id. An empty title is
// stored as NULL and filled in later from the first user message.
// Returns ErrDuplicateID if the id is already taken.
func (s *Store) CreateChat(ctx context.Context, id, title string) (*Chat, error) {
	row, err := s.querier.CreateChat(ctx, sqlc.CreateChatParams{
		ID:    id,
		Title: optional(title),
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("chat %s: %w", id, ErrDuplicateID)
		}
		return nil, fmt.Errorf("creating chat %s: %w", id, err)
	}

	chat := chatFromRow(row)
	s.logger.Debug("created chat", "id", chat.ID, "title", chat.Title)
	return chat, nil
}

// Chat retrieves a chat by id. Returns ErrNotFound if it does not exist.
func (s *Store) Chat(ctx context.Context, id string) (*Chat, error) {
	row, err := s.querier.GetChat(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("chat %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("getting chat %s: %w", id, err)
	}
	return chatFromRow(row), nil
}

// Chats lists all chats, most recently updated first.
func (s *Store) Chats(ctx context.Context) ([]*Chat, error) {
	rows, err := s.querier.ListChats(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing chats: %w", err)
	}

	chats := make([]*Chat, 0, len(rows))
	for _, row := range rows {
		chats = append(chats, chatFromRow(row))
	}
	return chats, nil
}

// SetChatTitle updates a chat's title and bumps updated_at.
func (s *Store) SetChatTitle(ctx context.Context, id, title string) error {
	if err := s.querier.UpdateChatTitle(ctx, sqlc.UpdateChatTitleParams{
		ID:    id,
		Title: optional(title),
	}); err != nil {
		return fmt.Errorf("updating chat %s title: %w", id, err)
	}
	return nil
}

// DeleteChat removes a chat and, through ON DELETE CASCADE, all of its
// messages and parts.
func (s *Store) DeleteChat(ctx context.Context, id string) error {
	if err := s.querier.DeleteChat(ctx, id); err != nil {
		return fmt.Errorf("deleting chat %s: %w", id, err)
	}

	s.logger.Debug("deleted chat", "id", id)
	return nil
}

// UpsertMessage writes a message and its full part set atomically. An
// existing message with the same id is replaced: the row is updated and
// every stored part is dropped before the new parts go in, so stale
// columns from a previous part set cannot survive. The owning chat's
// updated_at is bumped in the same transaction.
//
// Returns ErrInvalidRole for an unknown role and ErrNotFound when the
// owning chat does not exist.
func (s *Store) UpsertMessage(ctx context.Context, msg *Message) error {
	if !msg.Role.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidRole, msg.Role)
	}

	// Map before touching the database so a bad part costs nothing.
	rows, err := rowsFromParts(msg.ID, msg.Parts)
	if err != nil {
		return fmt.Errorf("message %s: %w", msg.ID, err)
	}

	if s.pool == nil {
		return s.upsertMessageNonTransactional(ctx, msg, rows)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			s.logger.Debug("transaction rollback", "error", err)
		}
	}()

	if err := s.writeMessage(ctx, sqlc.New(tx), msg, rows); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	s.logger.Debug("upserted message",
		"chat_id", msg.ChatID, "message_id", msg.ID, "parts", len(rows))
	return nil
}

// upsertMessageNonTransactional performs the same steps without a
// transaction. Only for unit tests with a mock querier.
func (s *Store) upsertMessageNonTransactional(ctx context.Context, msg *Message, rows []sqlc.InsertPartParams) error {
	return s.writeMessage(ctx, s.querier, msg, rows)
}

func (s *Store) writeMessage(ctx context.Context, q Querier, msg *Message, rows []sqlc.InsertPartParams) error {
	if err := q.UpsertMessage(ctx, sqlc.UpsertMessageParams{
		ID:     msg.ID,
		ChatID: msg.ChatID,
		Role:   string(msg.Role),
	}); err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("chat %s: %w", msg.ChatID, ErrNotFound)
		}
		return fmt.Errorf("upserting message %s: %w", msg.ID, err)
	}

	if err := q.DeletePartsByMessage(ctx, msg.ID); err != nil {
		return fmt.Errorf("clearing parts of message %s: %w", msg.ID, err)
	}

	for i, row := range rows {
		if err := q.InsertPart(ctx, row); err != nil {
			return fmt.Errorf("inserting part %d of message %s: %w", i, msg.ID, err)
		}
	}

	if err := q.TouchChat(ctx, msg.ChatID); err != nil {
		return fmt.Errorf("touching chat %s: %w", msg.ChatID, err)
	}
	return nil
}

// Messages loads a chat's full history, messages in creation order and
// parts in their stored order within each message.
func (s *Store) Messages(ctx context.Context, chatID string) ([]*Message, error) {
	msgRows, err := s.querier.ListMessages(ctx, chatID)
	if err != nil {
		return nil, fmt.Errorf("listing messages of chat %s: %w", chatID, err)
	}

	partRows, err := s.querier.ListPartsByChat(ctx, chatID)
	if err != nil {
		return nil, fmt.Errorf("listing parts of chat %s: %w", chatID, err)
	}

	// Group the pre-sorted part rows by message.
	byMessage := make(map[string]Parts, len(msgRows))
	for _, row := range partRows {
		part, err := partFromRow(row)
		if err != nil {
			return nil, fmt.Errorf("chat %s: %w", chatID, err)
		}
		byMessage[row.MessageID] = append(byMessage[row.MessageID], part)
	}

	messages := make([]*Message, 0, len(msgRows))
	for _, row := range msgRows {
		messages = append(messages, &Message{
			ID:        row.ID,
			ChatID:    row.ChatID,
			Role:      Role(row.Role),
			Parts:     byMessage[row.ID],
			CreatedAt: row.CreatedAt.Time,
		})
	}

	s.logger.Debug("loaded chat history", "chat_id", chatID, "messages", len(messages))
	return messages, nil
}

// Message loads a single message with its parts.
// Returns ErrNotFound if it does not exist.
func (s *Store) Message(ctx context.Context, id string) (*Message, error) {
	row, err := s.querier.GetMessage(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("message %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("getting message %s: %w", id, err)
	}

	partRows, err := s.querier.ListParts(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("listing parts of message %s: %w", id, err)
	}

	parts := make(Parts, 0, len(partRows))
	for _, pr := range partRows {
		part, err := partFromRow(pr)
		if err != nil {
			return nil, fmt.Errorf("message %s: %w", id, err)
		}
		parts = append(parts, part)
	}

	return &Message{
		ID:        row.ID,
		ChatID:    row.ChatID,
		Role:      Role(row.Role),
		Parts:     parts,
		CreatedAt: row.CreatedAt.Time,
	}, nil
}

// DeleteMessage removes a message and every later message in the same
// chat, truncating the conversation at that point. Regenerating from the
// middle of a chat depends on this: the stale tail must not survive.
// Deleting a message that does not exist is a no-op.
func (s *Store) DeleteMessage(ctx context.Context, id string) error {
	target, err := s.querier.GetMessage(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Debug("delete of absent message ignored", "message_id", id)
			return nil
		}
		return fmt.Errorf("getting message %s: %w", id, err)
	}

	if s.pool == nil {
		return s.deleteTail(ctx, s.querier, target)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			s.logger.Debug("transaction rollback", "error", err)
		}
	}()

	if err := s.deleteTail(ctx, sqlc.New(tx), target); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	s.logger.Debug("deleted message tail",
		"chat_id", target.ChatID, "message_id", id)
	return nil
}

func (s *Store) deleteTail(ctx context.Context, q Querier, target sqlc.Message) error {
	// Strictly newer siblings go first, then the target itself. Parts
	// follow their messages through ON DELETE CASCADE.
	if err := q.DeleteMessagesAfter(ctx, sqlc.DeleteMessagesAfterParams{
		ChatID:    target.ChatID,
		CreatedAt: target.CreatedAt,
	}); err != nil {
		return fmt.Errorf("deleting messages after %s: %w", target.ID, err)
	}

	if err := q.DeleteMessage(ctx, target.ID); err != nil {
		return fmt.Errorf("deleting message %s: %w", target.ID, err)
	}

	if err := q.TouchChat(ctx, target.ChatID); err != nil {
		return fmt.Errorf("touching chat %s: %w", target.ChatID, err)
	}
	return nil
}

// chatFromRow converts the generated row type to the application type.
func chatFromRow(row sqlc.Chat) *Chat {
	return &Chat{
		ID:        row.ID,
		Title:     deref(row.Title),
		CreatedAt: row.CreatedAt.Time,
		UpdatedAt: row.UpdatedAt.Time,
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation
}
