package chat

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dkadlec/face-lounge/internal/config"
	"github.com/dkadlec/face-lounge/internal/store"
)

var (
	// ErrEmptyName rejects joining with a blank username.
	ErrEmptyName = errors.New("username must not be empty")
	// ErrEmptyMessage rejects sending a blank message.
	ErrEmptyMessage = errors.New("message must not be empty")
	// ErrSendInFlight rejects a send while a previous one is running.
	ErrSendInFlight = errors.New("a message send is already in progress")
	// ErrNotJoined rejects sending before a username is set.
	ErrNotJoined = errors.New("join the chat before sending messages")
)

// Session is a chat room membership. It polls the message store on a
// fixed interval and keeps an in-memory view of the recent history in
// chronological order.
type Session struct {
	messages store.MessageStore
	names    NameStore
	interval time.Duration
	limit    int

	mu       sync.RWMutex
	username string
	history  []store.Message

	refreshing atomic.Bool
	sending    atomic.Bool

	// onUpdate, when set, is called with a snapshot after every
	// successful refresh.
	onUpdate func([]store.Message)
}

// NewSession creates a chat session over a message store. The name
// store may be nil, in which case the username is not persisted.
func NewSession(messages store.MessageStore, names NameStore, cfg config.ChatConfig) *Session {
	interval := time.Duration(cfg.PollInterval) * time.Second
	if interval <= 0 {
		interval = 2 * time.Second
	}
	limit := cfg.HistoryLimit
	if limit <= 0 {
		limit = 100
	}
	return &Session{
		messages: messages,
		names:    names,
		interval: interval,
		limit:    limit,
	}
}

// SetOnUpdate registers a callback invoked after each successful
// refresh. Must be called before Run.
func (s *Session) SetOnUpdate(fn func([]store.Message)) {
	s.onUpdate = fn
}

// ResumeName returns the username persisted by a previous session, or
// "" when none is stored.
func (s *Session) ResumeName() string {
	if s.names == nil {
		return ""
	}
	name, err := s.names.LoadName()
	if err != nil {
		log.Printf("chat: could not load stored username: %v", err)
		return ""
	}
	return name
}

// Join sets the username for this session and persists it for future
// sessions. Leading and trailing whitespace is trimmed.
func (s *Session) Join(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ErrEmptyName
	}

	s.mu.Lock()
	s.username = trimmed
	s.mu.Unlock()

	if s.names != nil {
		if err := s.names.SaveName(trimmed); err != nil {
			// Persistence is a convenience; the session works without it.
			log.Printf("chat: could not persist username: %v", err)
		}
	}
	return nil
}

// Username returns the joined username, or "" before Join.
func (s *Session) Username() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.username
}

// Run polls the message store until the context is canceled. The first
// refresh happens immediately; after that one refresh runs per tick,
// and a tick that fires while a refresh is still in flight is skipped.
func (s *Session) Run(ctx context.Context) {
	s.refresh(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.refresh(ctx)
		}
	}
}

// Refresh fetches the recent history once, outside the polling loop.
func (s *Session) Refresh(ctx context.Context) {
	s.refresh(ctx)
}

// refresh runs one fetch unless another refresh is already outstanding.
// Overlapping ticks are skipped, not queued.
func (s *Session) refresh(ctx context.Context) {
	if !s.refreshing.CompareAndSwap(false, true) {
		return
	}
	defer s.refreshing.Store(false)

	s.fetch(ctx)
}

// fetch retrieves the recent history and replaces the view wholesale.
func (s *Session) fetch(ctx context.Context) {
	recent, err := s.messages.ListMessages(ctx, s.limit)
	if err != nil {
		// A failed poll keeps the previous view; the next tick retries.
		log.Printf("chat: could not refresh messages: %v", err)
		return
	}

	// The store returns newest-first; the room displays oldest-first.
	chronological := make([]store.Message, len(recent))
	for i, m := range recent {
		chronological[len(recent)-1-i] = m
	}

	s.mu.Lock()
	s.history = chronological
	s.mu.Unlock()

	if s.onUpdate != nil {
		s.onUpdate(chronological)
	}
}

// Send posts a message as the joined user and refreshes the history
// right away instead of waiting for the next tick. Only one send may
// be in flight at a time.
func (s *Session) Send(ctx context.Context, text string) error {
	s.mu.RLock()
	sender := s.username
	s.mu.RUnlock()
	if sender == "" {
		return ErrNotJoined
	}

	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return ErrEmptyMessage
	}

	if !s.sending.CompareAndSwap(false, true) {
		return ErrSendInFlight
	}
	defer s.sending.Store(false)

	msg := &store.Message{
		SenderName: sender,
		Message:    trimmed,
		Timestamp:  time.Now().UTC(),
	}
	if err := s.messages.CreateMessage(ctx, msg); err != nil {
		return fmt.Errorf("could not send message: %w", err)
	}

	// Bypass the tick dedup so the sent message shows up even while a
	// background poll is still outstanding. Both paths replace the view
	// wholesale, so the race is harmless.
	s.fetch(ctx)
	return nil
}

// Messages returns a snapshot of the current history, oldest-first.
func (s *Session) Messages() []store.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]store.Message, len(s.history))
	copy(out, s.history)
	return out
}
