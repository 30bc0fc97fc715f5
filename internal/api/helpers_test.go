package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/scribe-chat/scribe/internal/chat"
	"github.com/scribe-chat/scribe/internal/llm"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// decodeData unmarshals the "data" half of the response envelope into out.
func decodeData(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope: %v\nbody: %s", err, w.Body.String())
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		t.Fatalf("decode data: %v\nbody: %s", err, w.Body.String())
	}
}

// decodeErrorEnvelope unmarshals the "error" half of the response envelope.
func decodeErrorEnvelope(t *testing.T, w *httptest.ResponseRecorder) errorBody {
	t.Helper()

	var envelope struct {
		Error errorBody `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode error envelope: %v\nbody: %s", err, w.Body.String())
	}
	return envelope.Error
}

// fakeStore is an in-memory ChatStore with the real store's error contract.
type fakeStore struct {
	mu       sync.Mutex
	chats    map[string]*chat.Chat
	messages map[string]*chat.Message
	order    []string // message ids in insertion order
	clock    int64
	failOn   map[string]error // method name -> error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		chats:    make(map[string]*chat.Chat),
		messages: make(map[string]*chat.Message),
		failOn:   make(map[string]error),
	}
}

func (f *fakeStore) tick() time.Time {
	f.clock++
	return time.Unix(f.clock, 0).UTC()
}

func (f *fakeStore) CreateChat(_ context.Context, id, title string) (*chat.Chat, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failOn["CreateChat"]; err != nil {
		return nil, err
	}
	if _, ok := f.chats[id]; ok {
		return nil, chat.ErrDuplicateID
	}
	now := f.tick()
	c := &chat.Chat{ID: id, Title: title, CreatedAt: now, UpdatedAt: now}
	f.chats[id] = c
	cp := *c
	return &cp, nil
}

func (f *fakeStore) Chat(_ context.Context, id string) (*chat.Chat, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failOn["Chat"]; err != nil {
		return nil, err
	}
	c, ok := f.chats[id]
	if !ok {
		return nil, chat.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeStore) Chats(_ context.Context) ([]*chat.Chat, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failOn["Chats"]; err != nil {
		return nil, err
	}
	out := make([]*chat.Chat, 0, len(f.chats))
	for _, c := range f.chats {
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

func (f *fakeStore) SetChatTitle(_ context.Context, id, title string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failOn["SetChatTitle"]; err != nil {
		return err
	}
	c, ok := f.chats[id]
	if !ok {
		return chat.ErrNotFound
	}
	c.Title = title
	c.UpdatedAt = f.tick()
	return nil
}

func (f *fakeStore) DeleteChat(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failOn["DeleteChat"]; err != nil {
		return err
	}
	delete(f.chats, id)
	for mid, m := range f.messages {
		if m.ChatID == id {
			delete(f.messages, mid)
		}
	}
	return nil
}

func (f *fakeStore) UpsertMessage(_ context.Context, msg *chat.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failOn["UpsertMessage"]; err != nil {
		return err
	}
	if !msg.Role.Valid() {
		return chat.ErrInvalidRole
	}
	if _, ok := f.chats[msg.ChatID]; !ok {
		return chat.ErrNotFound
	}
	cp := *msg
	if existing, ok := f.messages[msg.ID]; ok {
		cp.CreatedAt = existing.CreatedAt
	} else {
		cp.CreatedAt = f.tick()
		f.order = append(f.order, msg.ID)
	}
	f.messages[msg.ID] = &cp
	return nil
}

func (f *fakeStore) Messages(_ context.Context, chatID string) ([]*chat.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failOn["Messages"]; err != nil {
		return nil, err
	}
	var out []*chat.Message
	for _, id := range f.order {
		m, ok := f.messages[id]
		if !ok || m.ChatID != chatID {
			continue
		}
		cp := *m
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeStore) Message(_ context.Context, id string) (*chat.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failOn["Message"]; err != nil {
		return nil, err
	}
	m, ok := f.messages[id]
	if !ok {
		return nil, chat.ErrNotFound
	}
	cp := *m
	return &cp, nil
}

func (f *fakeStore) DeleteMessage(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failOn["DeleteMessage"]; err != nil {
		return err
	}
	target, ok := f.messages[id]
	if !ok {
		return nil
	}
	for mid, m := range f.messages {
		if m.ChatID == target.ChatID && m.CreatedAt.After(target.CreatedAt) {
			delete(f.messages, mid)
		}
	}
	delete(f.messages, id)
	return nil
}

// fakeGenerator streams configured chunks, then returns configured parts.
type fakeGenerator struct {
	chunks  []string
	parts   chat.Parts
	err     error
	title   string
	history []*chat.Message // last Generate call's history
}

func (g *fakeGenerator) Generate(ctx context.Context, history []*chat.Message, onChunk llm.StreamFunc) (chat.Parts, error) {
	g.history = history
	if g.err != nil {
		return nil, g.err
	}
	for _, c := range g.chunks {
		if onChunk != nil {
			if err := onChunk(ctx, c); err != nil {
				return nil, err
			}
		}
	}
	return g.parts, nil
}

func (g *fakeGenerator) Title(_ context.Context, _ string) string {
	return g.title
}

func newTestChatHandler(store ChatStore, gen Generator) *chatHandler {
	return &chatHandler{
		store:     store,
		generator: gen,
		logger:    discardLogger(),
	}
}
