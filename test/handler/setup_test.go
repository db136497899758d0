package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/xxxsen/common/webapi"

	"github.com/paperly/paperly/internal/config"
	"github.com/paperly/paperly/internal/filestore"
	"github.com/paperly/paperly/internal/handler"
	"github.com/paperly/paperly/internal/hub"
	"github.com/paperly/paperly/internal/middleware"
	"github.com/paperly/paperly/internal/repo"
	"github.com/paperly/paperly/internal/service"
	"github.com/paperly/paperly/test/testutil"
)

type noopSender struct{}

func (noopSender) Send(to, subject, htmlBody string) error {
	return nil
}

type testEnv struct {
	router     http.Handler
	shareRepo  *repo.SharedFolderRepo
	folderRepo *repo.FolderRepo
}

func setupRouter(t *testing.T) (*testEnv, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, cleanup := testutil.OpenTestDB(t)
	userRepo := repo.NewUserRepo(db)
	paperRepo := repo.NewPaperRepo(db)
	folderRepo := repo.NewFolderRepo(db)
	labelRepo := repo.NewLabelRepo(db)
	paperLabelRepo := repo.NewPaperLabelRepo(db)
	noteRepo := repo.NewNoteRepo(db)
	highlightRepo := repo.NewHighlightRepo(db)
	commentRepo := repo.NewCommentRepo(db)
	sharedFolderRepo := repo.NewSharedFolderRepo(db)
	embeddingRepo := repo.NewEmbeddingRepo(db)

	jwtSecret := []byte("test-secret")
	commentHub := hub.NewCommentHub()

	authService := service.NewAuthService(userRepo, jwtSecret, time.Hour)
	paperService := service.NewPaperService(paperRepo, folderRepo, labelRepo, paperLabelRepo, embeddingRepo)
	folderService := service.NewFolderService(folderRepo, paperRepo)
	labelService := service.NewLabelService(labelRepo, paperLabelRepo)
	noteService := service.NewNoteService(noteRepo, paperRepo)
	highlightService := service.NewHighlightService(highlightRepo, paperRepo)
	commentService := service.NewCommentService(commentRepo, commentHub)
	shareService := service.NewShareService(sharedFolderRepo, folderRepo, paperService, noopSender{}, "http://test.local")
	aiService := service.NewAIService(nil, paperRepo, config.AIConfig{MaxInputChars: 1000, TimeoutSeconds: 5})
	relatedService := service.NewRelatedService(embeddingRepo, paperService, aiService)

	tmpDir, err := os.MkdirTemp("", "paperly-upload-*")
	require.NoError(t, err)

	store, err := filestore.New(config.FileStoreConfig{
		Type: "local",
		Data: map[string]interface{}{
			"dir": tmpDir,
		},
	})
	require.NoError(t, err)

	deps := handler.RouterDeps{
		Auth:       handler.NewAuthHandler(authService),
		Papers:     handler.NewPaperHandler(paperService),
		Folders:    handler.NewFolderHandler(folderService),
		Labels:     handler.NewLabelHandler(labelService),
		Notes:      handler.NewNoteHandler(noteService),
		Highlights: handler.NewHighlightHandler(highlightService),
		Comments:   handler.NewCommentHandler(commentService, commentHub),
		Shares:     handler.NewShareHandler(shareService),
		Files:      handler.NewFileHandler(store, "http://test.local"),
		AI:         handler.NewAIHandler(aiService, relatedService),
		JWTSecret:  jwtSecret,
	}

	engine, err := webapi.NewEngine(
		"/api/v1",
		"",
		webapi.WithRegister(func(group *gin.RouterGroup) {
			handler.RegisterRoutes(group, deps)
		}),
		webapi.WithExtraMiddlewares(
			middleware.RequestID(),
			middleware.CORS(nil),
		),
	)
	require.NoError(t, err)

	env := &testEnv{router: engine, shareRepo: sharedFolderRepo, folderRepo: folderRepo}
	return env, func() {
		cleanup()
		_ = os.RemoveAll(tmpDir)
	}
}

var emailSeq atomic.Int64

func uniqueEmail() string {
	return fmt.Sprintf("user%d-%d@test.local", time.Now().UnixNano(), emailSeq.Add(1))
}

type apiEnvelope struct {
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func doJSON(t *testing.T, router http.Handler, method, path, token string, payload interface{}) (*httptest.ResponseRecorder, apiEnvelope) {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var envelope apiEnvelope
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	}
	return rec, envelope
}

func registerUser(t *testing.T, router http.Handler) string {
	t.Helper()
	rec, envelope := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"email":    uniqueEmail(),
		"name":     "Test User",
		"password": "secret-pass",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var data struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(envelope.Data, &data))
	require.NotEmpty(t, data.Token)
	return data.Token
}

func createFolder(t *testing.T, router http.Handler, token, name string) string {
	t.Helper()
	rec, envelope := doJSON(t, router, http.MethodPost, "/api/v1/folders", token, map[string]string{"name": name})
	require.Equal(t, http.StatusOK, rec.Code)

	var folder struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(envelope.Data, &folder))
	require.NotEmpty(t, folder.ID)
	return folder.ID
}

func createPaper(t *testing.T, router http.Handler, token, title string) string {
	t.Helper()
	rec, envelope := doJSON(t, router, http.MethodPost, "/api/v1/papers", token, map[string]interface{}{
		"title":    title,
		"authors":  []string{"A. Author"},
		"abstract": "an abstract",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var paper struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(envelope.Data, &paper))
	require.NotEmpty(t, paper.ID)
	return paper.ID
}
