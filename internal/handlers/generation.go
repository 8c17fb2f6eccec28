// internal/handlers/generation.go
package handlers

import (
	"encoding/json"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/saileshbalu94/ecommerce-ai/internal/i18n"
	"github.com/saileshbalu94/ecommerce-ai/internal/services"
	"github.com/saileshbalu94/ecommerce-ai/internal/utils"
)

const productImageField = "productImage"

type GenerationHandler struct {
	generationService *services.GenerationService
	contentService    *services.ContentService
	images            services.ImageStore
}

type alternativesRequest struct {
	ContentID       string `json:"contentId"`
	Feedback        string `json:"feedback"`
	OriginalContent string `json:"originalContent"`
	Instructions    string `json:"instructions"`
}

func NewGenerationHandler(generationService *services.GenerationService, contentService *services.ContentService, images services.ImageStore) *GenerationHandler {
	return &GenerationHandler{
		generationService: generationService,
		contentService:    contentService,
		images:            images,
	}
}

// POST /content/generate/description
//
// Accepts JSON, or multipart with productImage plus productData and options
// as JSON-encoded form fields.
func (h *GenerationHandler) Description(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	req, ok := h.bindGenerateRequest(c)
	if !ok {
		return
	}

	res, err := h.generationService.GenerateDescription(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, resourceContent)
		return
	}

	utils.SuccessResponse(c, res)
}

// POST /content/generate/title
func (h *GenerationHandler) Title(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req services.GenerateRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.generationService.GenerateTitle(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err, resourceContent)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"content":    res.Text,
		"candidates": res.Candidates,
		"metadata":   res.Metadata,
	})
}

// POST /content/generate/alternatives
//
// With contentId the revision is recorded on the saved record. Without it
// originalContent is revised statelessly.
func (h *GenerationHandler) Alternatives(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req alternativesRequest
	if !bindJSON(c, &req) {
		return
	}

	if strings.TrimSpace(req.ContentID) == "" {
		res, err := h.generationService.Revise(c.Request.Context(), userID, &services.ReviseRequest{
			OriginalContent: req.OriginalContent,
			Instructions:    req.Instructions,
		})
		if err != nil {
			respondError(c, err, resourceContent)
			return
		}
		utils.SuccessResponse(c, res)
		return
	}

	contentID, err := uuid.Parse(req.ContentID)
	if err != nil {
		utils.NotFoundResponse(c, resourceContent)
		return
	}

	feedback := req.Feedback
	if strings.TrimSpace(feedback) == "" {
		feedback = req.Instructions
	}

	res, err := h.contentService.GenerateAlternative(c.Request.Context(), userID, contentID, feedback)
	if err != nil {
		respondError(c, err, resourceContent)
		return
	}

	utils.SuccessResponse(c, res)
}

// POST /content/upload-image
func (h *GenerationHandler) UploadImage(c *gin.Context) {
	if _, ok := currentUser(c); !ok {
		return
	}

	file, header, err := c.Request.FormFile(productImageField)
	if err != nil {
		lang := utils.GetLangFromContext(c)
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyUploadInvalid), err.Error())
		return
	}
	defer file.Close()

	res, err := h.images.UploadImage(c.Request.Context(), file, header)
	if err != nil {
		respondError(c, err, resourceContent)
		return
	}

	utils.CreatedResponse(c, res)
}

func (h *GenerationHandler) bindGenerateRequest(c *gin.Context) (*services.GenerateRequest, bool) {
	var req services.GenerateRequest
	if !strings.HasPrefix(c.ContentType(), "multipart/") {
		if !bindJSON(c, &req) {
			return nil, false
		}
		return &req, true
	}

	lang := utils.GetLangFromContext(c)
	for field, dest := range map[string]interface{}{"productData": &req.ProductData, "options": &req.Options} {
		raw := c.PostForm(field)
		if raw == "" {
			continue
		}
		if err := json.Unmarshal([]byte(raw), dest); err != nil {
			utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, field), err.Error())
			return nil, false
		}
	}

	file, header, err := c.Request.FormFile(productImageField)
	if err == nil {
		defer file.Close()
		res, err := h.images.UploadImage(c.Request.Context(), file, header)
		if err != nil {
			respondError(c, err, resourceContent)
			return nil, false
		}
		req.ProductData.ProductImage = absoluteURL(c, res.URL)
	}

	return &req, true
}

// absoluteURL qualifies locally served upload paths so the provider can
// fetch them.
func absoluteURL(c *gin.Context, url string) string {
	if !strings.HasPrefix(url, "/") {
		return url
	}
	scheme := "http"
	if c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return scheme + "://" + c.Request.Host + url
}
