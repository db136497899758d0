package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

type shareLinkData struct {
	ShareLink string `json:"share_link"`
	ShareURL  string `json:"share_url"`
}

func issueShare(t *testing.T, env *testEnv, token, folderID string) shareLinkData {
	t.Helper()
	rec, envelope := doJSON(t, env.router, http.MethodPost, "/api/v1/folders/"+folderID+"/share", token, map[string]string{})
	require.Equal(t, http.StatusOK, rec.Code)

	var data shareLinkData
	require.NoError(t, json.Unmarshal(envelope.Data, &data))
	require.NotEmpty(t, data.ShareLink)
	return data
}

func TestShareLinkIdempotent(t *testing.T) {
	env, cleanup := setupRouter(t)
	defer cleanup()

	token := registerUser(t, env.router)
	folderID := createFolder(t, env.router, token, "reading list")

	paperID := createPaper(t, env.router, token, "snapshot paper")
	rec, _ := doJSON(t, env.router, http.MethodPut, "/api/v1/papers/"+paperID+"/move", token,
		map[string]string{"folder_id": folderID})
	require.Equal(t, http.StatusOK, rec.Code)

	first := issueShare(t, env, token, folderID)
	second := issueShare(t, env, token, folderID)
	require.Equal(t, first.ShareLink, second.ShareLink)
	require.Equal(t, first.ShareURL, second.ShareURL)

	shared, err := env.shareRepo.GetByToken(context.Background(), first.ShareLink)
	require.NoError(t, err)
	count, err := env.shareRepo.CountByOwnerAndName(context.Background(), shared.OwnerID, shared.Name)
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

func TestShareSnapshotFrozenAtCreation(t *testing.T) {
	env, cleanup := setupRouter(t)
	defer cleanup()

	token := registerUser(t, env.router)
	folderID := createFolder(t, env.router, token, "frozen folder")

	paperID := createPaper(t, env.router, token, "original member")
	rec, _ := doJSON(t, env.router, http.MethodPut, "/api/v1/papers/"+paperID+"/move", token,
		map[string]string{"folder_id": folderID})
	require.Equal(t, http.StatusOK, rec.Code)

	share := issueShare(t, env, token, folderID)

	// grow the live folder after sharing
	lateID := createPaper(t, env.router, token, "late arrival")
	rec, _ = doJSON(t, env.router, http.MethodPut, "/api/v1/papers/"+lateID+"/move", token,
		map[string]string{"folder_id": folderID})
	require.Equal(t, http.StatusOK, rec.Code)

	rec, envelope := doJSON(t, env.router, http.MethodGet, "/api/v1/shared/"+share.ShareLink, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var view struct {
		FolderName string `json:"folder_name"`
		Papers     []struct {
			ID string `json:"id"`
		} `json:"papers"`
	}
	require.NoError(t, json.Unmarshal(envelope.Data, &view))
	require.Equal(t, "frozen folder", view.FolderName)
	require.Len(t, view.Papers, 1)
	require.Equal(t, paperID, view.Papers[0].ID)
}

func TestShareEmailRequiresRecipient(t *testing.T) {
	env, cleanup := setupRouter(t)
	defer cleanup()

	token := registerUser(t, env.router)
	folderID := createFolder(t, env.router, token, "mail folder")

	rec, _ := doJSON(t, env.router, http.MethodPost, "/api/v1/folders/"+folderID+"/share/email", token,
		map[string]string{"email": ""})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestShareUnknownTokenIs404(t *testing.T) {
	env, cleanup := setupRouter(t)
	defer cleanup()

	rec, _ := doJSON(t, env.router, http.MethodGet, "/api/v1/shared/nope-token1", "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}
