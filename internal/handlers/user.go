// internal/handlers/user.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/saileshbalu94/ecommerce-ai/internal/services"
	"github.com/saileshbalu94/ecommerce-ai/internal/utils"
)

const resourceProfile = "profile"

type UserHandler struct {
	profileService *services.ProfileService
}

func NewUserHandler(profileService *services.ProfileService) *UserHandler {
	return &UserHandler{profileService: profileService}
}

// GET /users/profile
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	profile, err := h.profileService.Get(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, resourceProfile)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"profile": profile,
		"usage":   profile.Usage(),
	})
}

// PUT /users/profile
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req services.UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	profile, err := h.profileService.UpdateProfile(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err, resourceProfile)
		return
	}

	utils.SuccessResponse(c, profile)
}

// GET /users/usage
func (h *UserHandler) GetUsage(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	report, err := h.profileService.Usage(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, resourceProfile)
		return
	}

	utils.SuccessResponse(c, report)
}
