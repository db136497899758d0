package hub

import (
	"context"
	"sync"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/paperly/paperly/internal/model"
)

const defaultQueueSize = 16

// Subscription represents one live viewer of a paper's comment stream.
// Events arrive on C in publish order; C is closed by Unsubscribe.
type Subscription struct {
	C       chan model.Comment
	paperID string
	closed  bool
}

// CommentHub fans newly created comments out to every subscriber of the same
// paper. It is process-local state: registrations are lost on restart and no
// events are replayed. Each subscriber owns a bounded queue, so one slow or
// dead listener cannot stall the publisher or its peers.
type CommentHub struct {
	mu        sync.RWMutex
	listeners map[string][]*Subscription
	queueSize int
}

func NewCommentHub() *CommentHub {
	return &CommentHub{
		listeners: make(map[string][]*Subscription),
		queueSize: defaultQueueSize,
	}
}

// Subscribe registers a new listener for paperID. Only comments published
// after this call are delivered.
func (h *CommentHub) Subscribe(paperID string) *Subscription {
	sub := &Subscription{
		C:       make(chan model.Comment, h.queueSize),
		paperID: paperID,
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	// copy-on-write so Publish can iterate a snapshot under the read lock
	current := h.listeners[paperID]
	next := make([]*Subscription, 0, len(current)+1)
	next = append(next, current...)
	next = append(next, sub)
	h.listeners[paperID] = next
	return sub
}

// Unsubscribe removes the listener and closes its channel. Safe to call more
// than once; the last removal for a paper drops the registry entry entirely.
func (h *CommentHub) Unsubscribe(sub *Subscription) {
	if sub == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if sub.closed {
		return
	}
	sub.closed = true
	close(sub.C)
	current := h.listeners[sub.paperID]
	next := make([]*Subscription, 0, len(current))
	for _, s := range current {
		if s != sub {
			next = append(next, s)
		}
	}
	if len(next) == 0 {
		delete(h.listeners, sub.paperID)
	} else {
		h.listeners[sub.paperID] = next
	}
}

// Publish delivers comment to every current subscriber of paperID in
// registration order. It never blocks and never reports an error to the
// caller: a subscriber whose queue is full just misses the event.
func (h *CommentHub) Publish(ctx context.Context, paperID string, comment model.Comment) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, sub := range h.listeners[paperID] {
		select {
		case sub.C <- comment:
		default:
			logutil.GetLogger(ctx).Warn("comment listener queue full, event dropped",
				zap.String("paper_id", paperID),
				zap.String("comment_id", comment.ID),
			)
		}
	}
}

// ListenerCount reports the current number of subscribers for paperID.
func (h *CommentHub) ListenerCount(paperID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.listeners[paperID])
}

// PaperCount reports how many papers currently have at least one subscriber.
func (h *CommentHub) PaperCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.listeners)
}
