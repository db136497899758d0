package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/paperly/paperly/internal/hub"
	"github.com/paperly/paperly/internal/pkg/response"
	"github.com/paperly/paperly/internal/service"
)

type CommentHandler struct {
	comments *service.CommentService
	hub      *hub.CommentHub
}

func NewCommentHandler(comments *service.CommentService, commentHub *hub.CommentHub) *CommentHandler {
	return &CommentHandler{comments: comments, hub: commentHub}
}

type commentRequest struct {
	Content string `json:"content"`
}

func (h *CommentHandler) Create(c *gin.Context) {
	var req commentRequest
	if !bindJSON(c, &req) {
		return
	}
	comment, err := h.comments.Create(c.Request.Context(), getUserID(c), c.Param("id"), req.Content)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, comment)
}

func (h *CommentHandler) ListByPaper(c *gin.Context) {
	comments, err := h.comments.ListByPaper(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, comments)
}

// Stream holds the connection open and pushes each new comment on the paper
// as a server-sent event. The first frame is a plain "connected" marker so
// clients can distinguish an established stream from a stalled request.
func (h *CommentHandler) Stream(c *gin.Context) {
	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		response.Error(c, http.StatusInternalServerError, "internal", "streaming unsupported")
		return
	}
	paperID := c.Param("id")

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	// register before the connected frame so a client that has seen the
	// marker is guaranteed to receive every later comment
	sub := h.hub.Subscribe(paperID)
	defer h.hub.Unsubscribe(sub)

	if _, err := c.Writer.WriteString("data: connected\n\n"); err != nil {
		return
	}
	flusher.Flush()

	ctx := c.Request.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case comment, ok := <-sub.C:
			if !ok {
				return
			}
			payload, err := json.Marshal(comment)
			if err != nil {
				continue
			}
			if _, err := c.Writer.WriteString("data: " + string(payload) + "\n\n"); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
