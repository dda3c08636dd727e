package admin

import (
	"github.com/jamolstroy/admin-api/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetDashboardStats returns the overview counters shown on the
// dashboard home page.
func (h *Handler) GetDashboardStats(c *gin.Context) {
	stats, err := h.DashboardService.GetStats(c.Request.Context())
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}

	response.Success(c, stats)
}
