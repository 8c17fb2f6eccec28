// internal/handlers/brand_voice.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/saileshbalu94/ecommerce-ai/internal/i18n"
	"github.com/saileshbalu94/ecommerce-ai/internal/services"
	"github.com/saileshbalu94/ecommerce-ai/internal/utils"
)

const resourceBrandVoice = "brand_voice"

type BrandVoiceHandler struct {
	brandVoiceService *services.BrandVoiceService
}

func NewBrandVoiceHandler(brandVoiceService *services.BrandVoiceService) *BrandVoiceHandler {
	return &BrandVoiceHandler{brandVoiceService: brandVoiceService}
}

// GET /brand-voices
func (h *BrandVoiceHandler) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	voices, err := h.brandVoiceService.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, resourceBrandVoice)
		return
	}

	utils.SuccessResponseWithMeta(c, voices, gin.H{"count": len(voices)})
}

// POST /brand-voices
func (h *BrandVoiceHandler) Create(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req services.BrandVoiceRequest
	if !bindJSON(c, &req) {
		return
	}

	voice, err := h.brandVoiceService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err, resourceBrandVoice)
		return
	}

	utils.CreatedResponse(c, voice)
}

// GET /brand-voices/:id
func (h *BrandVoiceHandler) Get(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, resourceBrandVoice)
	if !ok {
		return
	}

	voice, err := h.brandVoiceService.Get(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, err, resourceBrandVoice)
		return
	}

	utils.SuccessResponse(c, voice)
}

// PUT /brand-voices/:id
func (h *BrandVoiceHandler) Update(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, resourceBrandVoice)
	if !ok {
		return
	}

	var req services.BrandVoiceRequest
	if !bindJSON(c, &req) {
		return
	}

	voice, err := h.brandVoiceService.Update(c.Request.Context(), userID, id, &req)
	if err != nil {
		respondError(c, err, resourceBrandVoice)
		return
	}

	utils.SuccessResponse(c, voice)
}

// DELETE /brand-voices/:id
func (h *BrandVoiceHandler) Delete(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, resourceBrandVoice)
	if !ok {
		return
	}

	if err := h.brandVoiceService.Delete(c.Request.Context(), userID, id); err != nil {
		respondError(c, err, resourceBrandVoice)
		return
	}

	lang := utils.GetLangFromContext(c)
	utils.SuccessResponse(c, gin.H{"message": i18n.T(lang, i18n.KeyBrandVoiceDeleted)})
}

// POST /brand-voices/:id/default
func (h *BrandVoiceHandler) SetDefault(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, resourceBrandVoice)
	if !ok {
		return
	}

	voice, err := h.brandVoiceService.SetDefault(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, err, resourceBrandVoice)
		return
	}

	utils.SuccessResponse(c, voice)
}
