package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/paperly/paperly/internal/pkg/response"
	"github.com/paperly/paperly/internal/service"
)

type FolderHandler struct {
	folders *service.FolderService
}

func NewFolderHandler(folders *service.FolderService) *FolderHandler {
	return &FolderHandler{folders: folders}
}

type folderRequest struct {
	Name string `json:"name"`
}

func (h *FolderHandler) Create(c *gin.Context) {
	var req folderRequest
	if !bindJSON(c, &req) {
		return
	}
	folder, err := h.folders.Create(c.Request.Context(), getUserID(c), req.Name)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, folder)
}

func (h *FolderHandler) Get(c *gin.Context) {
	folder, err := h.folders.Get(c.Request.Context(), getUserID(c), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, folder)
}

func (h *FolderHandler) List(c *gin.Context) {
	folders, err := h.folders.List(c.Request.Context(), getUserID(c))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, folders)
}

func (h *FolderHandler) Rename(c *gin.Context) {
	var req folderRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.folders.Rename(c.Request.Context(), getUserID(c), c.Param("id"), req.Name); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, nil)
}

func (h *FolderHandler) Delete(c *gin.Context) {
	if err := h.folders.Delete(c.Request.Context(), getUserID(c), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, nil)
}

func (h *FolderHandler) ListPapers(c *gin.Context) {
	papers, err := h.folders.ListPapers(c.Request.Context(), getUserID(c), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, papers)
}
