package http

import (
	"log/slog"
	"sync"

	"github.com/var1d/folio/internal/logging"
)

// ThemeTopic is the stream key for display mode changes.
const ThemeTopic = "theme"

// StreamManager fans messages out to the subscribers of a topic (a session id
// or ThemeTopic). Slow subscribers lose messages instead of blocking the
// publisher.
type StreamManager struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan<- string]struct{} // Topic -> Set of Channels
	buffer      int
	logger      *slog.Logger
}

// NewStreamManager creates a manager whose subscriber channels hold buffer
// messages.
func NewStreamManager(buffer int, logger *slog.Logger) *StreamManager {
	if buffer <= 0 {
		buffer = 10
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &StreamManager{
		subscribers: make(map[string]map[chan<- string]struct{}),
		buffer:      buffer,
		logger:      logger,
	}
}

// Subscribe registers a channel for topic. The returned function
// unsubscribes and closes the channel.
func (sm *StreamManager) Subscribe(topic string) (<-chan string, func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ch := make(chan string, sm.buffer)
	if _, ok := sm.subscribers[topic]; !ok {
		sm.subscribers[topic] = make(map[chan<- string]struct{})
	}
	sm.subscribers[topic][ch] = struct{}{}

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			sm.mu.Lock()
			defer sm.mu.Unlock()
			if subs, ok := sm.subscribers[topic]; ok {
				delete(subs, ch)
				close(ch)
				if len(subs) == 0 {
					delete(sm.subscribers, topic)
				}
			}
		})
	}
}

// Broadcast sends msg to every subscriber of topic without blocking.
func (sm *StreamManager) Broadcast(topic string, msg string) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	for ch := range sm.subscribers[topic] {
		select {
		case ch <- msg:
		default:
			// Drop message if channel is full (slow client)
			sm.logger.Warn("Stream: client buffer full, dropping message", "topic", topic)
		}
	}
}

// Count returns the number of subscribers of topic.
func (sm *StreamManager) Count(topic string) int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.subscribers[topic])
}
