package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/paperly/paperly/internal/middleware"
	"github.com/paperly/paperly/internal/model"
	"github.com/paperly/paperly/internal/pkg/response"
	"github.com/paperly/paperly/internal/service"
)

type ShareHandler struct {
	shares *service.ShareService
}

func NewShareHandler(shares *service.ShareService) *ShareHandler {
	return &ShareHandler{shares: shares}
}

type shareResponse struct {
	ShareLink string `json:"share_link"`
	ShareURL  string `json:"share_url"`
}

func (h *ShareHandler) toResponse(shared *model.SharedFolder) shareResponse {
	return shareResponse{ShareLink: shared.ShareLink, ShareURL: h.shares.ShareURL(shared)}
}

// Create issues the share link for a folder. Repeat calls for the same folder
// name return the original link with its original paper snapshot.
func (h *ShareHandler) Create(c *gin.Context) {
	shared, err := h.shares.IssueShareLink(c.Request.Context(), getUserID(c), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, h.toResponse(shared))
}

type shareEmailRequest struct {
	Email string `json:"email"`
}

func (h *ShareHandler) Email(c *gin.Context) {
	var req shareEmailRequest
	if !bindJSON(c, &req) {
		return
	}
	senderName := c.GetString(middleware.ContextUserEmailKey)
	shared, err := h.shares.ShareByEmail(c.Request.Context(), getUserID(c), c.Param("id"), req.Email, senderName)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, h.toResponse(shared))
}

// PublicGet serves a shared folder to anonymous visitors by token.
func (h *ShareHandler) PublicGet(c *gin.Context) {
	view, err := h.shares.ResolveByToken(c.Request.Context(), c.Param("token"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, view)
}
