package hub

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/paperly/paperly/internal/model"
)

func drain(sub *Subscription) []model.Comment {
	var out []model.Comment
	for {
		select {
		case c, ok := <-sub.C:
			if !ok {
				return out
			}
			out = append(out, c)
		default:
			return out
		}
	}
}

func TestPublishFansOutToAllSubscribersOfSamePaper(t *testing.T) {
	h := NewCommentHub()
	a := h.Subscribe("paper-1")
	b := h.Subscribe("paper-1")
	d := h.Subscribe("paper-2")

	comment := model.Comment{ID: "c1", PaperID: "paper-1", Content: "hi"}
	h.Publish(context.Background(), "paper-1", comment)

	gotA := drain(a)
	gotB := drain(b)
	require.Len(t, gotA, 1)
	require.Len(t, gotB, 1)
	require.Equal(t, "c1", gotA[0].ID)
	require.Equal(t, "c1", gotB[0].ID)
	require.Empty(t, drain(d))
}

func TestPublishPreservesOrderPerSubscriber(t *testing.T) {
	h := NewCommentHub()
	sub := h.Subscribe("paper-1")
	for _, id := range []string{"c1", "c2", "c3"} {
		h.Publish(context.Background(), "paper-1", model.Comment{ID: id, PaperID: "paper-1"})
	}
	got := drain(sub)
	require.Len(t, got, 3)
	require.Equal(t, "c1", got[0].ID)
	require.Equal(t, "c2", got[1].ID)
	require.Equal(t, "c3", got[2].ID)
}

func TestUnsubscribeStopsDeliveryAndIsIdempotent(t *testing.T) {
	h := NewCommentHub()
	sub := h.Subscribe("paper-1")
	h.Unsubscribe(sub)
	h.Unsubscribe(sub)

	h.Publish(context.Background(), "paper-1", model.Comment{ID: "c1"})
	_, ok := <-sub.C
	require.False(t, ok, "channel should be closed after unsubscribe")
	require.Equal(t, 0, h.ListenerCount("paper-1"))
}

func TestLastUnsubscribeRemovesRegistryEntry(t *testing.T) {
	h := NewCommentHub()
	for i := 0; i < 100; i++ {
		sub := h.Subscribe("paper-1")
		h.Unsubscribe(sub)
	}
	require.Equal(t, 0, h.PaperCount())

	a := h.Subscribe("paper-1")
	b := h.Subscribe("paper-1")
	h.Unsubscribe(a)
	require.Equal(t, 1, h.ListenerCount("paper-1"))
	require.Equal(t, 1, h.PaperCount())
	h.Unsubscribe(b)
	require.Equal(t, 0, h.PaperCount())
}

func TestPublishWithNoSubscribersIsNoop(t *testing.T) {
	h := NewCommentHub()
	sub := h.Subscribe("paper-1")
	h.Unsubscribe(sub)
	// disconnect before any comment was posted; publish must not panic
	h.Publish(context.Background(), "paper-1", model.Comment{ID: "c1"})
	require.Equal(t, 0, h.PaperCount())
}

func TestFullQueueDropsOnlyThatSubscriber(t *testing.T) {
	h := NewCommentHub()
	slow := h.Subscribe("paper-1")
	fast := h.Subscribe("paper-1")

	// overflow the slow subscriber's queue
	for i := 0; i < defaultQueueSize; i++ {
		h.Publish(context.Background(), "paper-1", model.Comment{ID: "fill"})
	}
	drain(fast)

	h.Publish(context.Background(), "paper-1", model.Comment{ID: "c-final"})
	gotFast := drain(fast)
	require.Len(t, gotFast, 1)
	require.Equal(t, "c-final", gotFast[0].ID)
	require.Len(t, drain(slow), defaultQueueSize)
}

func TestConcurrentSubscribePublishUnsubscribe(t *testing.T) {
	h := NewCommentHub()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				sub := h.Subscribe("paper-1")
				h.Publish(context.Background(), "paper-1", model.Comment{ID: "c"})
				drain(sub)
				h.Unsubscribe(sub)
			}
		}()
	}
	wg.Wait()
	require.Equal(t, 0, h.PaperCount())
}
