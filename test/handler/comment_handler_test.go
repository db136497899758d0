package handler_test

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func openStream(t *testing.T, ctx context.Context, baseURL, token, paperID string) *bufio.Scanner {
	t.Helper()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		baseURL+"/api/v1/papers/"+paperID+"/comments/stream", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, resp.Header.Get("Content-Type"), "text/event-stream")
	t.Cleanup(func() { _ = resp.Body.Close() })

	return bufio.NewScanner(resp.Body)
}

// readEvent scans forward to the next data: line, skipping blank frame
// separators.
func readEvent(t *testing.T, scanner *bufio.Scanner) string {
	t.Helper()
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "data: ") {
			return strings.TrimPrefix(line, "data: ")
		}
	}
	t.Fatalf("stream ended before next event: %v", scanner.Err())
	return ""
}

func TestCommentCreateAndList(t *testing.T) {
	env, cleanup := setupRouter(t)
	defer cleanup()

	token := registerUser(t, env.router)
	paperID := createPaper(t, env.router, token, "streaming paper")

	rec, _ := doJSON(t, env.router, http.MethodPost, "/api/v1/papers/"+paperID+"/comments", token,
		map[string]string{"content": "   "})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec, envelope := doJSON(t, env.router, http.MethodPost, "/api/v1/papers/"+paperID+"/comments", token,
		map[string]string{"content": "first comment"})
	require.Equal(t, http.StatusOK, rec.Code)

	var created struct {
		ID     string `json:"id"`
		Author *struct {
			Email string `json:"email"`
		} `json:"author"`
	}
	require.NoError(t, json.Unmarshal(envelope.Data, &created))
	require.NotEmpty(t, created.ID)
	require.NotNil(t, created.Author)

	rec, envelope = doJSON(t, env.router, http.MethodGet, "/api/v1/papers/"+paperID+"/comments", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var listed []struct {
		Content string `json:"content"`
	}
	require.NoError(t, json.Unmarshal(envelope.Data, &listed))
	require.Len(t, listed, 1)
	require.Equal(t, "first comment", listed[0].Content)
}

func TestCommentStreamDeliversToAllViewers(t *testing.T) {
	env, cleanup := setupRouter(t)
	defer cleanup()

	server := httptest.NewServer(env.router)
	defer server.Close()

	token := registerUser(t, env.router)
	paperID := createPaper(t, env.router, token, "watched paper")
	otherPaperID := createPaper(t, env.router, token, "unrelated paper")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	first := openStream(t, ctx, server.URL, token, paperID)
	second := openStream(t, ctx, server.URL, token, paperID)
	unrelated := openStream(t, ctx, server.URL, token, otherPaperID)

	require.Equal(t, "connected", readEvent(t, first))
	require.Equal(t, "connected", readEvent(t, second))
	require.Equal(t, "connected", readEvent(t, unrelated))

	rec, _ := doJSON(t, env.router, http.MethodPost, "/api/v1/papers/"+paperID+"/comments", token,
		map[string]string{"content": "hello viewers"})
	require.Equal(t, http.StatusOK, rec.Code)

	for _, scanner := range []*bufio.Scanner{first, second} {
		var event struct {
			PaperID string `json:"paper_id"`
			Content string `json:"content"`
			Author  *struct {
				Name string `json:"name"`
			} `json:"author"`
		}
		require.NoError(t, json.Unmarshal([]byte(readEvent(t, scanner)), &event))
		require.Equal(t, paperID, event.PaperID)
		require.Equal(t, "hello viewers", event.Content)
		require.NotNil(t, event.Author)
	}

	// the unrelated stream must stay silent; post on its paper to prove the
	// next frame it sees is its own
	rec, _ = doJSON(t, env.router, http.MethodPost, "/api/v1/papers/"+otherPaperID+"/comments", token,
		map[string]string{"content": "other paper only"})
	require.Equal(t, http.StatusOK, rec.Code)

	var event struct {
		PaperID string `json:"paper_id"`
		Content string `json:"content"`
	}
	require.NoError(t, json.Unmarshal([]byte(readEvent(t, unrelated)), &event))
	require.Equal(t, otherPaperID, event.PaperID)
	require.Equal(t, "other paper only", event.Content)
}
