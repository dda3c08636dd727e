package admin

import (
	"github.com/jamolstroy/admin-api/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetMe returns the authenticated admin account.
func (h *Handler) GetMe(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	user, err := h.UserRepo.GetByID(userID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	if user == nil || !user.IsAdmin() {
		respondError(c, response.CodeForbidden, "error.forbidden", nil)
		return
	}

	response.Success(c, user)
}
