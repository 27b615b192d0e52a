package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	pricewatchdomain "github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/pricewatch/domain"
)

// @Summary      Create Price Watch
// @Description  Watch a product against a target price
// @Tags         price-watches
// @Accept       json
// @Produce      json
// @Param        request body pricewatchdomain.CreateRequest true "Create Request"
// @Success      200  {object}  pricewatchdomain.PriceWatch
// @Router       /price-watches [post]
func (s *Server) CreatePriceWatch(c *gin.Context) {
	var req pricewatchdomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.priceWatchSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      List Price Watches
// @Tags         price-watches
// @Produce      json
// @Param        customer_id  query  string  true   "Customer ID"
// @Param        active_only  query  bool    false  "Only active watches"
// @Success      200  {object}  []pricewatchdomain.PriceWatch
// @Router       /price-watches [get]
func (s *Server) ListPriceWatches(c *gin.Context) {
	var query struct {
		CustomerID string `form:"customer_id"`
		ActiveOnly bool   `form:"active_only"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.priceWatchSvc.List(c.Request.Context(), query.CustomerID, query.ActiveOnly)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Update Price Watch
// @Tags         price-watches
// @Accept       json
// @Produce      json
// @Param        id      path  string                          true  "Watch ID"
// @Param        request body  pricewatchdomain.UpdateRequest  true  "Update Request"
// @Success      200  {object}  pricewatchdomain.PriceWatch
// @Router       /price-watches/{id} [patch]
func (s *Server) UpdatePriceWatch(c *gin.Context) {
	var req pricewatchdomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.ID = c.Param("id")

	resp, err := s.priceWatchSvc.Update(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Delete Price Watch
// @Tags         price-watches
// @Produce      json
// @Param        id  path  string  true  "Watch ID"
// @Success      200  {object}  map[string]bool
// @Router       /price-watches/{id} [delete]
func (s *Server) DeletePriceWatch(c *gin.Context) {
	deleted, err := s.priceWatchSvc.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": deleted}})
}
