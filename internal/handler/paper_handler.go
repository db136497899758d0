package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/paperly/paperly/internal/pkg/response"
	"github.com/paperly/paperly/internal/service"
)

type PaperHandler struct {
	papers *service.PaperService
}

func NewPaperHandler(papers *service.PaperService) *PaperHandler {
	return &PaperHandler{papers: papers}
}

type paperRequest struct {
	Title           string   `json:"title"`
	Authors         []string `json:"authors"`
	Abstract        string   `json:"abstract"`
	PDFURL          string   `json:"pdf_url"`
	SourceURL       string   `json:"source_url"`
	PublicationDate string   `json:"publication_date"`
}

func (h *PaperHandler) Create(c *gin.Context) {
	var req paperRequest
	if !bindJSON(c, &req) {
		return
	}
	paper, err := h.papers.Create(c.Request.Context(), getUserID(c), service.PaperCreateInput{
		Title:           req.Title,
		Authors:         req.Authors,
		Abstract:        req.Abstract,
		PDFURL:          req.PDFURL,
		SourceURL:       req.SourceURL,
		PublicationDate: req.PublicationDate,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, paper)
}

// List doubles as search when the q query param is present.
func (h *PaperHandler) List(c *gin.Context) {
	papers, err := h.papers.Search(c.Request.Context(), getUserID(c), c.Query("q"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, papers)
}

func (h *PaperHandler) ListStarred(c *gin.Context) {
	papers, err := h.papers.ListStarred(c.Request.Context(), getUserID(c))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, papers)
}

func (h *PaperHandler) Get(c *gin.Context) {
	paper, err := h.papers.Get(c.Request.Context(), getUserID(c), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, paper)
}

func (h *PaperHandler) Update(c *gin.Context) {
	var req paperRequest
	if !bindJSON(c, &req) {
		return
	}
	paper, err := h.papers.Update(c.Request.Context(), getUserID(c), c.Param("id"), service.PaperUpdateInput{
		Title:           req.Title,
		Authors:         req.Authors,
		Abstract:        req.Abstract,
		PDFURL:          req.PDFURL,
		SourceURL:       req.SourceURL,
		PublicationDate: req.PublicationDate,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, paper)
}

func (h *PaperHandler) Delete(c *gin.Context) {
	if err := h.papers.Delete(c.Request.Context(), getUserID(c), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, nil)
}

type starRequest struct {
	Starred bool `json:"starred"`
}

func (h *PaperHandler) Star(c *gin.Context) {
	var req starRequest
	if !bindJSON(c, &req) {
		return
	}
	starred := 0
	if req.Starred {
		starred = 1
	}
	if err := h.papers.UpdateStarred(c.Request.Context(), getUserID(c), c.Param("id"), starred); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, nil)
}

type moveRequest struct {
	FolderID string `json:"folder_id"`
}

func (h *PaperHandler) Move(c *gin.Context) {
	var req moveRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.papers.Move(c.Request.Context(), getUserID(c), c.Param("id"), req.FolderID); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, nil)
}

type labelsRequest struct {
	LabelIDs []string `json:"label_ids"`
}

func (h *PaperHandler) ReplaceLabels(c *gin.Context) {
	var req labelsRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.papers.ReplaceLabels(c.Request.Context(), getUserID(c), c.Param("id"), req.LabelIDs); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, nil)
}
