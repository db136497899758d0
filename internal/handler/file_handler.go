package handler

import (
	"crypto/rand"
	"encoding/hex"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/paperly/paperly/internal/filestore"
	appErr "github.com/paperly/paperly/internal/pkg/errors"
	"github.com/paperly/paperly/internal/pkg/response"
)

type FileHandler struct {
	store      filestore.Store
	appBaseURL string
}

func NewFileHandler(store filestore.Store, appBaseURL string) *FileHandler {
	return &FileHandler{store: store, appBaseURL: strings.TrimRight(appBaseURL, "/")}
}

// newFileKey keeps the original extension but none of the original name, so
// uploaded filenames cannot collide or smuggle path separators.
func newFileKey(filename string) string {
	buf := make([]byte, 16)
	_, _ = rand.Read(buf)
	ext := strings.ToLower(filepath.Ext(filename))
	if len(ext) > 8 || strings.ContainsAny(ext, "/\\") {
		ext = ""
	}
	return hex.EncodeToString(buf) + ext
}

type uploadResponse struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

// Upload stores a multipart PDF and returns the key plus the URL a paper
// record should carry in pdf_url.
func (h *FileHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "bad_request", "missing file field")
		return
	}
	src, err := fileHeader.Open()
	if err != nil {
		handleError(c, err)
		return
	}
	defer src.Close()

	key := newFileKey(fileHeader.Filename)
	if err := h.store.Save(c.Request.Context(), key, src, fileHeader.Size); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, uploadResponse{Key: key, URL: h.store.URL(key, h.appBaseURL)})
}

// Serve streams a stored file back. Public because shared-folder visitors
// need the PDFs without an account.
func (h *FileHandler) Serve(c *gin.Context) {
	key := c.Param("key")
	if strings.Contains(key, "..") || strings.Contains(key, "/") {
		handleError(c, appErr.ErrNotFound)
		return
	}
	reader, err := h.store.Open(c.Request.Context(), key)
	if err != nil {
		handleError(c, appErr.ErrNotFound)
		return
	}
	defer reader.Close()

	contentType := "application/octet-stream"
	if filepath.Ext(key) == ".pdf" {
		contentType = "application/pdf"
	}
	c.Header("Content-Type", contentType)
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, reader)
}
