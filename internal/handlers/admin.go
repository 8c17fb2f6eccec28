// internal/handlers/admin.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/saileshbalu94/ecommerce-ai/internal/services"
	"github.com/saileshbalu94/ecommerce-ai/internal/utils"
)

const defaultUserPageSize = 20

type AdminHandler struct {
	profileService *services.ProfileService
}

func NewAdminHandler(profileService *services.ProfileService) *AdminHandler {
	return &AdminHandler{profileService: profileService}
}

// GET /users
func (h *AdminHandler) ListUsers(c *gin.Context) {
	params := utils.GetPaginationParams(c, defaultUserPageSize)

	profiles, total, err := h.profileService.List(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, resourceProfile)
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(profiles, total, params))
}

// GET /users/:id
func (h *AdminHandler) GetUser(c *gin.Context) {
	id, ok := pathID(c, resourceProfile)
	if !ok {
		return
	}

	profile, err := h.profileService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, resourceProfile)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"profile": profile,
		"usage":   profile.Usage(),
	})
}

// PUT /users/:id/role
func (h *AdminHandler) UpdateRole(c *gin.Context) {
	actorID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, resourceProfile)
	if !ok {
		return
	}

	var req services.UpdateRoleRequest
	if !bindJSON(c, &req) {
		return
	}

	profile, err := h.profileService.UpdateRole(c.Request.Context(), actorID, id, req.Role)
	if err != nil {
		respondError(c, err, resourceProfile)
		return
	}

	utils.SuccessResponse(c, profile)
}
