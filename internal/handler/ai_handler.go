package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/paperly/paperly/internal/pkg/response"
	"github.com/paperly/paperly/internal/service"
)

type AIHandler struct {
	ai      *service.AIService
	related *service.RelatedService
}

func NewAIHandler(aiSvc *service.AIService, related *service.RelatedService) *AIHandler {
	return &AIHandler{ai: aiSvc, related: related}
}

type analyzeRequest struct {
	Text string `json:"text"`
}

func (h *AIHandler) Analyze(c *gin.Context) {
	var req analyzeRequest
	if !bindJSON(c, &req) {
		return
	}
	paper, err := h.ai.Analyze(c.Request.Context(), getUserID(c), c.Param("id"), req.Text)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, paper)
}

func (h *AIHandler) Related(c *gin.Context) {
	items, err := h.related.ListRelated(c.Request.Context(), getUserID(c), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, items)
}
