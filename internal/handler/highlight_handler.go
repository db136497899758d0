package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/paperly/paperly/internal/pkg/response"
	"github.com/paperly/paperly/internal/service"
)

type HighlightHandler struct {
	highlights *service.HighlightService
}

func NewHighlightHandler(highlights *service.HighlightService) *HighlightHandler {
	return &HighlightHandler{highlights: highlights}
}

type highlightCreateRequest struct {
	PaperID string `json:"paper_id"`
	Page    int    `json:"page"`
	Content string `json:"content"`
	Color   string `json:"color"`
	Comment string `json:"comment"`
}

type highlightUpdateRequest struct {
	Color   string `json:"color"`
	Comment string `json:"comment"`
}

func (h *HighlightHandler) Create(c *gin.Context) {
	var req highlightCreateRequest
	if !bindJSON(c, &req) {
		return
	}
	highlight, err := h.highlights.Create(c.Request.Context(), getUserID(c), service.HighlightCreateInput{
		PaperID: req.PaperID,
		Page:    req.Page,
		Content: req.Content,
		Color:   req.Color,
		Comment: req.Comment,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, highlight)
}

func (h *HighlightHandler) ListByPaper(c *gin.Context) {
	highlights, err := h.highlights.ListByPaper(c.Request.Context(), getUserID(c), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, highlights)
}

func (h *HighlightHandler) Update(c *gin.Context) {
	var req highlightUpdateRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.highlights.Update(c.Request.Context(), getUserID(c), c.Param("id"), req.Color, req.Comment); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, nil)
}

func (h *HighlightHandler) Delete(c *gin.Context) {
	if err := h.highlights.Delete(c.Request.Context(), getUserID(c), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, nil)
}
