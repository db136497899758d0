package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/paperly/paperly/internal/pkg/response"
	"github.com/paperly/paperly/internal/service"
)

type NoteHandler struct {
	notes *service.NoteService
}

func NewNoteHandler(notes *service.NoteService) *NoteHandler {
	return &NoteHandler{notes: notes}
}

type noteRequest struct {
	Content string `json:"content"`
}

func (h *NoteHandler) Create(c *gin.Context) {
	var req noteRequest
	if !bindJSON(c, &req) {
		return
	}
	note, err := h.notes.Create(c.Request.Context(), getUserID(c), c.Param("id"), req.Content)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, note)
}

func (h *NoteHandler) ListByPaper(c *gin.Context) {
	notes, err := h.notes.ListByPaper(c.Request.Context(), getUserID(c), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, notes)
}

func (h *NoteHandler) Update(c *gin.Context) {
	var req noteRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.notes.Update(c.Request.Context(), getUserID(c), c.Param("note_id"), req.Content); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, nil)
}

func (h *NoteHandler) Delete(c *gin.Context) {
	if err := h.notes.Delete(c.Request.Context(), getUserID(c), c.Param("note_id")); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, nil)
}
