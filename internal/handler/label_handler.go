package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/paperly/paperly/internal/pkg/response"
	"github.com/paperly/paperly/internal/service"
)

type LabelHandler struct {
	labels *service.LabelService
}

func NewLabelHandler(labels *service.LabelService) *LabelHandler {
	return &LabelHandler{labels: labels}
}

type labelRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

func (h *LabelHandler) Create(c *gin.Context) {
	var req labelRequest
	if !bindJSON(c, &req) {
		return
	}
	label, err := h.labels.Create(c.Request.Context(), getUserID(c), req.Name, req.Color)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, label)
}

func (h *LabelHandler) List(c *gin.Context) {
	labels, err := h.labels.List(c.Request.Context(), getUserID(c))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, labels)
}

func (h *LabelHandler) Update(c *gin.Context) {
	var req labelRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.labels.Update(c.Request.Context(), getUserID(c), c.Param("id"), req.Name, req.Color); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, nil)
}

func (h *LabelHandler) Delete(c *gin.Context) {
	if err := h.labels.Delete(c.Request.Context(), getUserID(c), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, nil)
}
