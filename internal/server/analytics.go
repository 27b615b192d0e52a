package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// @Summary      Engagement Overview
// @Description  Derived statistics over saved carts and abandonment records
// @Tags         analytics
// @Produce      json
// @Success      200  {object}  analyticsdomain.Overview
// @Router       /analytics/overview [get]
func (s *Server) AnalyticsOverview(c *gin.Context) {
	resp, err := s.analyticsSvc.Overview(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}
