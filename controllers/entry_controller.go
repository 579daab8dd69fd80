package controllers

import (
	"net/http"

	"journify/services"

	"github.com/gin-gonic/gin"
)

type CreateEntryRequest struct {
	Title    string   `json:"title" binding:"required"`
	Content  string   `json:"content" binding:"required"`
	Location *string  `json:"location"`
	Tags     []string `json:"tags"`
}

type EntryController struct {
	entries *services.EntryService
}

func NewEntryController(entries *services.EntryService) *EntryController {
	return &EntryController{entries: entries}
}

func (c *EntryController) ListEntries(ctx *gin.Context) {
	entries, err := c.entries.List(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err, "entry")
		return
	}
	ctx.JSON(http.StatusOK, entries)
}

func (c *EntryController) CreateEntry(ctx *gin.Context) {
	var req CreateEntryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		abortWithError(ctx, http.StatusBadRequest, codeInvalidRequest, "title and content are required")
		return
	}

	id, err := c.entries.Create(ctx.Request.Context(), services.NewEntry{
		Title:    req.Title,
		Content:  req.Content,
		Location: req.Location,
		Tags:     req.Tags,
	})
	if err != nil {
		respondError(ctx, err, "entry")
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"id": id, "message": "Entry created successfully"})
}

func (c *EntryController) GetEntry(ctx *gin.Context) {
	id, ok := paramID(ctx, "id")
	if !ok {
		return
	}
	entry, err := c.entries.Get(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err, "entry")
		return
	}
	ctx.JSON(http.StatusOK, entry)
}

func (c *EntryController) DeleteEntry(ctx *gin.Context) {
	id, ok := paramID(ctx, "id")
	if !ok {
		return
	}
	if err := c.entries.Delete(ctx.Request.Context(), id); err != nil {
		respondError(ctx, err, "entry")
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Entry deleted successfully"})
}
