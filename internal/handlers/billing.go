// internal/handlers/billing.go
package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/saileshbalu94/ecommerce-ai/internal/i18n"
	"github.com/saileshbalu94/ecommerce-ai/internal/services"
	"github.com/saileshbalu94/ecommerce-ai/internal/utils"
)

const maxWebhookBodyBytes = 65536

type BillingHandler struct {
	billingService *services.BillingService
}

func NewBillingHandler(billingService *services.BillingService) *BillingHandler {
	return &BillingHandler{billingService: billingService}
}

// POST /billing/webhook
func (h *BillingHandler) Webhook(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	payload, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxWebhookBodyBytes))
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	res, err := h.billingService.HandleWebhook(c.Request.Context(), payload, c.GetHeader("Stripe-Signature"))
	if errors.Is(err, services.ErrInvalidSignature) {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyBillingInvalidSignature), nil)
		return
	}
	if err != nil {
		respondError(c, err, resourceProfile)
		return
	}

	utils.SuccessResponse(c, res)
}
