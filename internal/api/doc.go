// Package api provides the JSON REST API server for Scribe.
//
// # Architecture
//
// The API server uses Go 1.22+ routing with a layered middleware stack:
//
//	Recovery → RequestID → Logging → CORS → RateLimit → Routes
//
// Health probes (/health, /ready) bypass the middleware stack via a
// top-level mux, ensuring they remain fast and unauthenticated.
//
// # Endpoints
//
// Health probes (no middleware):
//   - GET /health: returns {"status":"ok"}
//   - GET /ready: pings the database pool
//
// Chat CRUD:
//   - POST   /api/v1/chats               create chat (client-generated id)
//   - GET    /api/v1/chats               list chats, newest first
//   - GET    /api/v1/chats/{id}          get chat by id
//   - GET    /api/v1/chats/{id}/messages full ordered history with parts
//   - DELETE /api/v1/chats/{id}          delete chat and all its messages
//
// Messages:
//   - DELETE /api/v1/messages/{id} deletes the message and everything after
//     it in the same chat ("regenerate from here")
//
// Streaming:
//   - POST /api/v1/chat is the SSE endpoint; it persists the inbound user
//     message, streams the model response, and persists the assistant
//     message on completion
//
// # Error Handling
//
// All responses use an envelope format:
//
//	Success: {"data": <payload>}
//	Error:   {"error": {"code": "...", "message": "..."}}
//
// Errors during chat streaming are sent as SSE events (event: error),
// not HTTP error responses, since SSE headers are already committed.
//
// # SSE Streaming
//
// Chat responses stream via Server-Sent Events with typed events:
//
//   - chunk: incremental text content
//   - done:  final assistant message with its full part list
//   - error: request or stream-level error
//
// If the client disconnects mid-stream the assistant message is never
// persisted; on the next load the history ends at the user's message.
// An assistant-persist failure after a complete stream is logged and the
// delivered response is not retracted, so a reload may show less than the
// client saw.
//
// # Security
//
// The middleware stack enforces:
//   - Per-IP rate limiting (token bucket via golang.org/x/time/rate)
//   - CORS with explicit origin allowlist
//   - Security headers (CSP, HSTS, X-Frame-Options, etc.)
package api
