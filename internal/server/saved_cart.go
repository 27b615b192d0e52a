package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	snapshotdomain "github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/snapshot/domain"
)

// @Summary      Save Cart
// @Description  Persist a named snapshot of the cart
// @Tags         saved-carts
// @Accept       json
// @Produce      json
// @Param        request body snapshotdomain.CreateRequest true "Save Cart Request"
// @Success      200  {object}  snapshotdomain.CartSnapshot
// @Router       /carts/saved [post]
func (s *Server) CreateSavedCart(c *gin.Context) {
	var req snapshotdomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.snapshotSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      List Saved Carts
// @Description  List a customer's saved carts with filtering and sorting
// @Tags         saved-carts
// @Produce      json
// @Param        customer_id  query  string  true   "Customer ID"
// @Param        tags         query  string  false  "Comma-separated tags"
// @Param        occasion     query  string  false  "Occasion"
// @Param        is_public    query  bool    false  "Visibility"
// @Param        sort_by      query  string  false  "name|created|updated|value"
// @Param        order        query  string  false  "asc|desc"
// @Param        limit        query  int     false  "Limit"
// @Success      200  {object}  []snapshotdomain.CartSnapshot
// @Router       /carts/saved [get]
func (s *Server) ListSavedCarts(c *gin.Context) {
	var query struct {
		CustomerID string `form:"customer_id"`
		Tags       string `form:"tags"`
		Occasion   string `form:"occasion"`
		IsPublic   *bool  `form:"is_public"`
		SortBy     string `form:"sort_by"`
		Order      string `form:"order"`
		Limit      int    `form:"limit"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	var tags []string
	if trimmed := strings.TrimSpace(query.Tags); trimmed != "" {
		for _, tag := range strings.Split(trimmed, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				tags = append(tags, tag)
			}
		}
	}

	resp, err := s.snapshotSvc.List(c.Request.Context(), snapshotdomain.ListRequest{
		CustomerID: strings.TrimSpace(query.CustomerID),
		Tags:       tags,
		Occasion:   strings.TrimSpace(query.Occasion),
		IsPublic:   query.IsPublic,
		SortBy:     query.SortBy,
		Order:      query.Order,
		Limit:      query.Limit,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Get Saved Cart
// @Tags         saved-carts
// @Produce      json
// @Param        id   path      string  true  "Snapshot ID"
// @Success      200  {object}  snapshotdomain.CartSnapshot
// @Router       /carts/saved/{id} [get]
func (s *Server) GetSavedCart(c *gin.Context) {
	resp, err := s.snapshotSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Update Saved Cart
// @Tags         saved-carts
// @Accept       json
// @Produce      json
// @Param        id      path  string                       true  "Snapshot ID"
// @Param        request body  snapshotdomain.UpdateRequest true  "Update Request"
// @Success      200  {object}  snapshotdomain.CartSnapshot
// @Router       /carts/saved/{id} [patch]
func (s *Server) UpdateSavedCart(c *gin.Context) {
	var req snapshotdomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.ID = c.Param("id")

	resp, err := s.snapshotSvc.Update(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Delete Saved Cart
// @Tags         saved-carts
// @Produce      json
// @Param        id   path  string  true  "Snapshot ID"
// @Success      200  {object}  map[string]bool
// @Router       /carts/saved/{id} [delete]
func (s *Server) DeleteSavedCart(c *gin.Context) {
	deleted, err := s.snapshotSvc.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": deleted}})
}
