package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/scribe-chat/scribe/internal/chat"
	"github.com/scribe-chat/scribe/internal/llm"
)

// ChatStore is the persistence surface the API consumes. *chat.Store
// satisfies it; tests substitute an in-memory fake.
type ChatStore interface {
	CreateChat(ctx context.Context, id, title string) (*chat.Chat, error)
	Chat(ctx context.Context, id string) (*chat.Chat, error)
	Chats(ctx context.Context) ([]*chat.Chat, error)
	SetChatTitle(ctx context.Context, id, title string) error
	DeleteChat(ctx context.Context, id string) error
	UpsertMessage(ctx context.Context, msg *chat.Message) error
	Messages(ctx context.Context, chatID string) ([]*chat.Message, error)
	Message(ctx context.Context, id string) (*chat.Message, error)
	DeleteMessage(ctx context.Context, id string) error
}

// Generator produces model responses. *llm.Generator satisfies it.
type Generator interface {
	Generate(ctx context.Context, history []*chat.Message, onChunk llm.StreamFunc) (chat.Parts, error)
	Title(ctx context.Context, userMessage string) string
}

// ServerConfig contains configuration for creating the API server.
type ServerConfig struct {
	Logger      *slog.Logger
	Store       ChatStore     // Required
	Generator   Generator     // Optional: nil disables POST /api/v1/chat and AI titles
	Pool        *pgxpool.Pool // Optional: nil disables the database check in /ready
	CORSOrigins []string      // Allowed origins for CORS
	TrustProxy  bool          // Trust X-Real-IP/X-Forwarded-For headers (behind reverse proxy)
	RateRPS     float64       // Rate limiter refill per IP (0 = default 10/sec)
	RateBurst   int           // Rate limiter burst size per IP (0 = default 20)
	IsDev       bool          // Disables HSTS (plain HTTP development)
}

// Server is the JSON API HTTP server.
type Server struct {
	mux *http.ServeMux
}

// NewServer creates a new API server with all routes configured.
func NewServer(cfg ServerConfig) (*Server, error) {
	if cfg.Store == nil {
		return nil, errors.New("chat store is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	ch := &chatHandler{
		store:     cfg.Store,
		generator: cfg.Generator,
		logger:    logger,
	}

	mux := http.NewServeMux()

	// Chat CRUD
	mux.HandleFunc("POST /api/v1/chats", ch.createChat)
	mux.HandleFunc("GET /api/v1/chats", ch.listChats)
	mux.HandleFunc("GET /api/v1/chats/{id}", ch.getChat)
	mux.HandleFunc("GET /api/v1/chats/{id}/messages", ch.getChatMessages)
	mux.HandleFunc("DELETE /api/v1/chats/{id}", ch.deleteChat)

	// Message rollback ("regenerate from here")
	mux.HandleFunc("DELETE /api/v1/messages/{id}", ch.deleteMessage)

	// Streaming chat
	mux.HandleFunc("POST /api/v1/chat", ch.stream)

	// Rate limiter: per-IP token bucket
	rps := cfg.RateRPS
	if rps <= 0 {
		rps = 10
	}
	burst := cfg.RateBurst
	if burst <= 0 {
		burst = 20
	}
	rl := newRateLimiter(rps, burst)

	// Build middleware stack (outermost first):
	//   Recovery → RequestID → Logging → CORS → RateLimit → Routes
	// RequestID must be before Logging so request_id is available in log attributes.
	// CORS must be before RateLimit so preflight OPTIONS gets proper CORS headers.
	var handler http.Handler = mux
	handler = rateLimitMiddleware(rl, cfg.TrustProxy, logger)(handler)
	handler = corsMiddleware(cfg.CORSOrigins)(handler)
	handler = loggingMiddleware(logger)(handler)
	handler = requestIDMiddleware()(handler)
	handler = recoveryMiddleware(logger)(handler)

	// Wrap with security headers
	isDev := cfg.IsDev
	final := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		setSecurityHeaders(w, isDev)
		handler.ServeHTTP(w, r)
	})

	// Use a top-level mux to separate health probes from middleware stack
	topMux := http.NewServeMux()
	topMux.HandleFunc("GET /health", health)
	topMux.Handle("GET /ready", readiness(cfg.Pool))
	topMux.Handle("/", final)

	return &Server{mux: topMux}, nil
}

// Handler returns the server as an http.Handler.
func (s *Server) Handler() http.Handler {
	return s.mux
}
