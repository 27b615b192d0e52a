package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/cart"
	"github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/recommend"
)

type recommendationsRequest struct {
	Lines []cart.Line `json:"lines"`
}

// @Summary      Cart Recommendations
// @Description  Rank cross-sell, upsell and bundle suggestions for a cart
// @Tags         recommendations
// @Accept       json
// @Produce      json
// @Param        request body recommendationsRequest true "Cart lines"
// @Success      200  {object}  []recommend.Recommendation
// @Router       /recommendations [post]
func (s *Server) Recommendations(c *gin.Context) {
	var req recommendationsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": recommend.Recommend(req.Lines)})
}
