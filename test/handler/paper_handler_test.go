package handler_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPaperLifecycle(t *testing.T) {
	env, cleanup := setupRouter(t)
	defer cleanup()

	token := registerUser(t, env.router)

	// title is mandatory
	rec, _ := doJSON(t, env.router, http.MethodPost, "/api/v1/papers", token, map[string]string{"title": " "})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	paperID := createPaper(t, env.router, token, "attention is all you need")

	rec, envelope := doJSON(t, env.router, http.MethodGet, "/api/v1/papers/"+paperID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var paper struct {
		Title   string   `json:"title"`
		Authors []string `json:"authors"`
		Starred int      `json:"starred"`
	}
	require.NoError(t, json.Unmarshal(envelope.Data, &paper))
	require.Equal(t, "attention is all you need", paper.Title)
	require.Equal(t, []string{"A. Author"}, paper.Authors)

	rec, _ = doJSON(t, env.router, http.MethodPut, "/api/v1/papers/"+paperID+"/star", token,
		map[string]bool{"starred": true})
	require.Equal(t, http.StatusOK, rec.Code)

	rec, envelope = doJSON(t, env.router, http.MethodGet, "/api/v1/papers/starred", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var starred []struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(envelope.Data, &starred))
	require.Len(t, starred, 1)
	require.Equal(t, paperID, starred[0].ID)

	// search matches on title substring
	rec, envelope = doJSON(t, env.router, http.MethodGet, "/api/v1/papers?q=attention", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var found []struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(envelope.Data, &found))
	require.Len(t, found, 1)

	rec, envelope = doJSON(t, env.router, http.MethodGet, "/api/v1/papers?q=nomatchxyz", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	found = nil
	require.NoError(t, json.Unmarshal(envelope.Data, &found))
	require.Empty(t, found)

	rec, _ = doJSON(t, env.router, http.MethodDelete, "/api/v1/papers/"+paperID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = doJSON(t, env.router, http.MethodGet, "/api/v1/papers/"+paperID, token, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPapersAreOwnerScoped(t *testing.T) {
	env, cleanup := setupRouter(t)
	defer cleanup()

	owner := registerUser(t, env.router)
	stranger := registerUser(t, env.router)
	paperID := createPaper(t, env.router, owner, "private paper")

	rec, _ := doJSON(t, env.router, http.MethodGet, "/api/v1/papers/"+paperID, stranger, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = doJSON(t, env.router, http.MethodDelete, "/api/v1/papers/"+paperID, stranger, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFolderDeleteMovesPapersToRoot(t *testing.T) {
	env, cleanup := setupRouter(t)
	defer cleanup()

	token := registerUser(t, env.router)
	folderID := createFolder(t, env.router, token, "doomed folder")
	paperID := createPaper(t, env.router, token, "survivor")

	rec, _ := doJSON(t, env.router, http.MethodPut, "/api/v1/papers/"+paperID+"/move", token,
		map[string]string{"folder_id": folderID})
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = doJSON(t, env.router, http.MethodDelete, "/api/v1/folders/"+folderID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, envelope := doJSON(t, env.router, http.MethodGet, "/api/v1/papers/"+paperID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var paper struct {
		FolderID string `json:"folder_id"`
	}
	require.NoError(t, json.Unmarshal(envelope.Data, &paper))
	require.Empty(t, paper.FolderID)
}
