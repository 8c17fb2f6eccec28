// internal/handlers/content.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/saileshbalu94/ecommerce-ai/internal/i18n"
	"github.com/saileshbalu94/ecommerce-ai/internal/services"
	"github.com/saileshbalu94/ecommerce-ai/internal/utils"
)

const resourceContent = "content"

type ContentHandler struct {
	contentService *services.ContentService
}

func NewContentHandler(contentService *services.ContentService) *ContentHandler {
	return &ContentHandler{contentService: contentService}
}

// GET /content
func (h *ContentHandler) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c, services.DefaultContentPageSize)
	items, total, err := h.contentService.List(c.Request.Context(), userID, services.ContentListParams{
		ContentType:      c.Query("contentType"),
		Status:           c.Query("status"),
		PaginationParams: params,
	})
	if err != nil {
		respondError(c, err, resourceContent)
		return
	}

	result := utils.CreatePaginationResult(gin.H{"content": items}, total, params)
	utils.PaginatedResponseWithCounts(c, result, len(items))
}

// POST /content/save
func (h *ContentHandler) Save(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req services.SaveContentRequest
	if !bindJSON(c, &req) {
		return
	}

	content, err := h.contentService.Save(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err, resourceContent)
		return
	}

	utils.CreatedResponse(c, content)
}

// GET /content/:id
func (h *ContentHandler) Get(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, resourceContent)
	if !ok {
		return
	}

	content, err := h.contentService.Get(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, err, resourceContent)
		return
	}

	utils.SuccessResponse(c, content)
}

// PUT /content/:id
func (h *ContentHandler) Update(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, resourceContent)
	if !ok {
		return
	}

	var req services.UpdateContentRequest
	if !bindJSON(c, &req) {
		return
	}

	content, err := h.contentService.Update(c.Request.Context(), userID, id, &req)
	if err != nil {
		respondError(c, err, resourceContent)
		return
	}

	utils.SuccessResponse(c, content)
}

// DELETE /content/:id
func (h *ContentHandler) Delete(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, resourceContent)
	if !ok {
		return
	}

	if err := h.contentService.Delete(c.Request.Context(), userID, id); err != nil {
		respondError(c, err, resourceContent)
		return
	}

	lang := utils.GetLangFromContext(c)
	utils.SuccessResponse(c, gin.H{"message": i18n.T(lang, i18n.KeyContentDeleted)})
}

// POST /content/:id/feedback
func (h *ContentHandler) Feedback(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, resourceContent)
	if !ok {
		return
	}

	var req services.FeedbackRequest
	if !bindJSON(c, &req) {
		return
	}

	content, err := h.contentService.AddFeedback(c.Request.Context(), userID, id, &req)
	if err != nil {
		respondError(c, err, resourceContent)
		return
	}

	utils.SuccessResponse(c, content)
}

// POST /content/:id/accept
func (h *ContentHandler) Accept(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, resourceContent)
	if !ok {
		return
	}

	var req services.AcceptVersionRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.VersionIndex == nil {
		lang := utils.GetLangFromContext(c)
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyContentBadVersion), nil)
		return
	}

	content, err := h.contentService.AcceptVersion(c.Request.Context(), userID, id, *req.VersionIndex)
	if err != nil {
		respondError(c, err, resourceContent)
		return
	}

	utils.SuccessResponse(c, content)
}

// GET /content/:id/preview
func (h *ContentHandler) Preview(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, resourceContent)
	if !ok {
		return
	}

	html, content, err := h.contentService.Preview(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, err, resourceContent)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"id":    content.ID,
		"title": content.Title,
		"html":  html,
	})
}
