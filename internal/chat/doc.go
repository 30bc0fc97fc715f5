// Package chat implements conversation persistence: chats own messages,
// messages own an ordered list of typed parts.
//
// The in-memory representation is a tagged variant (one struct per part
// type); storage is a single flat parts table with type-gated nullable
// columns. The mapper in this package is the only place that conversion
// happens; row shapes never leak past the Store.
//
// Store is safe for concurrent use by multiple goroutines. All state lives
// in PostgreSQL; multi-statement writes run in a single transaction.
package chat
