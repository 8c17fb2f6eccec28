// internal/handlers/errors.go
package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/saileshbalu94/ecommerce-ai/internal/i18n"
	"github.com/saileshbalu94/ecommerce-ai/internal/services"
	"github.com/saileshbalu94/ecommerce-ai/internal/utils"
)

// respondError maps service errors onto the response envelope. resource
// names the i18n prefix used for 404s.
func respondError(c *gin.Context, err error, resource string) {
	lang := utils.GetLangFromContext(c)

	var ve *services.ValidationError
	var ge *services.GenerationError
	switch {
	case errors.As(err, &ve):
		message := ve.Message
		if ve.Key != i18n.KeyValidationInvalid {
			message = i18n.T(lang, ve.Key)
		}
		utils.ValidationErrorResponse(c, []utils.ValidationError{{
			Field:   ve.Field,
			Tag:     "invalid",
			Message: message,
		}})
	case errors.Is(err, services.ErrNotFound):
		utils.NotFoundResponse(c, resource)
	case errors.Is(err, services.ErrConflict):
		utils.ConflictResponse(c, "")
	case errors.Is(err, services.ErrUnauthorized):
		utils.UnauthorizedResponse(c, "")
	case errors.Is(err, services.ErrForbidden):
		utils.ForbiddenResponse(c, "")
	case errors.As(err, &ge):
		detail := ge.Detail
		if errors.Is(err, services.ErrNotConfigured) {
			detail = i18n.T(lang, i18n.KeyGenerationNotConfigured)
		}
		utils.GenerationFailedResponse(c, detail)
	default:
		logrus.WithError(err).WithField("path", c.FullPath()).Error("Request failed")
		utils.InternalErrorResponse(c, err.Error())
	}
}

// bindJSON decodes the body and runs struct validation, writing the 400
// itself when either fails.
func bindJSON(c *gin.Context, req interface{}) bool {
	lang := utils.GetLangFromContext(c)
	if err := c.ShouldBindJSON(req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return false
	}
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return false
	}
	return true
}

// currentUser returns the authenticated caller's id or writes a 401.
func currentUser(c *gin.Context) (uuid.UUID, bool) {
	session, ok := utils.GetSession(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return uuid.Nil, false
	}
	return session.UserID, true
}

// pathID parses the :id parameter. Malformed ids read as not found so the
// response does not reveal anything about the id space.
func pathID(c *gin.Context, resource string) (uuid.UUID, bool) {
	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		utils.NotFoundResponse(c, resource)
		return uuid.Nil, false
	}
	return id, true
}
