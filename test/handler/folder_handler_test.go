package handler_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFolderGetByID(t *testing.T) {
	env, cleanup := setupRouter(t)
	defer cleanup()

	token := registerUser(t, env.router)
	folderID := createFolder(t, env.router, token, "single folder")

	paperID := createPaper(t, env.router, token, "counted paper")
	rec, _ := doJSON(t, env.router, http.MethodPut, "/api/v1/papers/"+paperID+"/move", token,
		map[string]string{"folder_id": folderID})
	require.Equal(t, http.StatusOK, rec.Code)

	rec, envelope := doJSON(t, env.router, http.MethodGet, "/api/v1/folders/"+folderID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var folder struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(envelope.Data, &folder))
	require.Equal(t, folderID, folder.ID)
	require.Equal(t, "single folder", folder.Name)

	// other users cannot see it
	stranger := registerUser(t, env.router)
	rec, _ = doJSON(t, env.router, http.MethodGet, "/api/v1/folders/"+folderID, stranger, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestNoteUpdateDeleteUnderPaperPath(t *testing.T) {
	env, cleanup := setupRouter(t)
	defer cleanup()

	token := registerUser(t, env.router)
	paperID := createPaper(t, env.router, token, "noted paper")

	rec, envelope := doJSON(t, env.router, http.MethodPost, "/api/v1/papers/"+paperID+"/notes", token,
		map[string]string{"content": "initial text"})
	require.Equal(t, http.StatusOK, rec.Code)
	var note struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(envelope.Data, &note))
	require.NotEmpty(t, note.ID)

	rec, _ = doJSON(t, env.router, http.MethodPut, "/api/v1/papers/"+paperID+"/notes/"+note.ID, token,
		map[string]string{"content": "revised text"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec, envelope = doJSON(t, env.router, http.MethodGet, "/api/v1/papers/"+paperID+"/notes", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var notes []struct {
		Content string `json:"content"`
	}
	require.NoError(t, json.Unmarshal(envelope.Data, &notes))
	require.Len(t, notes, 1)
	require.Equal(t, "revised text", notes[0].Content)

	rec, _ = doJSON(t, env.router, http.MethodDelete, "/api/v1/papers/"+paperID+"/notes/"+note.ID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, envelope = doJSON(t, env.router, http.MethodGet, "/api/v1/papers/"+paperID+"/notes", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	notes = nil
	require.NoError(t, json.Unmarshal(envelope.Data, &notes))
	require.Empty(t, notes)
}

func TestHighlightCreateWithPaperIDInBody(t *testing.T) {
	env, cleanup := setupRouter(t)
	defer cleanup()

	token := registerUser(t, env.router)
	paperID := createPaper(t, env.router, token, "highlighted paper")

	rec, envelope := doJSON(t, env.router, http.MethodPost, "/api/v1/highlights", token,
		map[string]interface{}{
			"paper_id": paperID,
			"page":     3,
			"content":  "a memorable sentence",
			"color":    "yellow",
		})
	require.Equal(t, http.StatusOK, rec.Code)
	var highlight struct {
		ID      string `json:"id"`
		PaperID string `json:"paper_id"`
		Page    int    `json:"page"`
	}
	require.NoError(t, json.Unmarshal(envelope.Data, &highlight))
	require.Equal(t, paperID, highlight.PaperID)
	require.Equal(t, 3, highlight.Page)

	rec, envelope = doJSON(t, env.router, http.MethodGet, "/api/v1/papers/"+paperID+"/highlights", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var listed []struct {
		Content string `json:"content"`
	}
	require.NoError(t, json.Unmarshal(envelope.Data, &listed))
	require.Len(t, listed, 1)
	require.Equal(t, "a memorable sentence", listed[0].Content)

	// unknown paper in the body is a 404, not a silent create
	rec, _ = doJSON(t, env.router, http.MethodPost, "/api/v1/highlights", token,
		map[string]interface{}{"paper_id": "missing", "content": "x"})
	require.Equal(t, http.StatusNotFound, rec.Code)
}
