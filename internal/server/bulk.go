package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	bulkdomain "github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/bulk/domain"
)

// @Summary      Execute Bulk Operation
// @Description  Apply one operation across a set of cart lines as a unit
// @Tags         bulk
// @Accept       json
// @Produce      json
// @Param        request body bulkdomain.ExecuteRequest true "Bulk Request"
// @Success      200  {object}  bulkdomain.Outcome
// @Router       /cart/bulk [post]
func (s *Server) ExecuteBulk(c *gin.Context) {
	var req bulkdomain.ExecuteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.bulkSvc.Execute(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Bulk Operation History
// @Tags         bulk
// @Produce      json
// @Param        limit  query  int  false  "Limit"
// @Success      200  {object}  []bulkdomain.BulkOperation
// @Router       /cart/bulk/history [get]
func (s *Server) BulkHistory(c *gin.Context) {
	var query struct {
		Limit int `form:"limit"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.bulkSvc.History(c.Request.Context(), query.Limit)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}
