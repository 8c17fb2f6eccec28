// internal/handlers/campaign.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/saileshbalu94/ecommerce-ai/internal/i18n"
	"github.com/saileshbalu94/ecommerce-ai/internal/services"
	"github.com/saileshbalu94/ecommerce-ai/internal/utils"
)

const (
	resourceCampaign        = "campaign"
	defaultCampaignPageSize = 20
)

type CampaignHandler struct {
	campaignService *services.CampaignService
}

func NewCampaignHandler(campaignService *services.CampaignService) *CampaignHandler {
	return &CampaignHandler{campaignService: campaignService}
}

// GET /campaigns
func (h *CampaignHandler) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c, defaultCampaignPageSize)
	campaigns, total, err := h.campaignService.List(c.Request.Context(), userID, services.CampaignListParams{
		ChannelType:      c.Query("channel_type"),
		PaginationParams: params,
	})
	if err != nil {
		respondError(c, err, resourceCampaign)
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(campaigns, total, params))
}

// POST /campaigns
func (h *CampaignHandler) Create(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req services.CampaignRequest
	if !bindJSON(c, &req) {
		return
	}

	campaign, err := h.campaignService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err, resourceCampaign)
		return
	}

	utils.CreatedResponse(c, campaign)
}

// GET /campaigns/:id
func (h *CampaignHandler) Get(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, resourceCampaign)
	if !ok {
		return
	}

	campaign, err := h.campaignService.Get(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, err, resourceCampaign)
		return
	}

	utils.SuccessResponse(c, campaign)
}

// PUT /campaigns/:id
func (h *CampaignHandler) Update(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, resourceCampaign)
	if !ok {
		return
	}

	var req services.CampaignRequest
	if !bindJSON(c, &req) {
		return
	}

	campaign, err := h.campaignService.Update(c.Request.Context(), userID, id, &req)
	if err != nil {
		respondError(c, err, resourceCampaign)
		return
	}

	utils.SuccessResponse(c, campaign)
}

// DELETE /campaigns/:id
func (h *CampaignHandler) Delete(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, resourceCampaign)
	if !ok {
		return
	}

	if err := h.campaignService.Delete(c.Request.Context(), userID, id); err != nil {
		respondError(c, err, resourceCampaign)
		return
	}

	lang := utils.GetLangFromContext(c)
	utils.SuccessResponse(c, gin.H{"message": i18n.T(lang, i18n.KeyCampaignDeleted)})
}
