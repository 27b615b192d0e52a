package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	sharedomain "github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/share/domain"
)

// @Summary      Issue Share Grant
// @Description  Mint a shareable access token for a saved cart
// @Tags         shares
// @Accept       json
// @Produce      json
// @Param        request body sharedomain.IssueRequest true "Issue Request"
// @Success      200  {object}  sharedomain.ShareGrant
// @Router       /shares [post]
func (s *Server) IssueShare(c *gin.Context) {
	var req sharedomain.IssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.shareSvc.Issue(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Resolve Share Token
// @Description  Resolve a share token into its grant and snapshot
// @Tags         shares
// @Produce      json
// @Param        token     path   string  true   "Share token"
// @Param        password  query  string  false  "Grant password"
// @Param        caller_id query  string  false  "Caller identity"
// @Success      200  {object}  sharedomain.Resolution
// @Router       /shares/{token} [get]
func (s *Server) ResolveShare(c *gin.Context) {
	resp, err := s.shareSvc.Resolve(c.Request.Context(), sharedomain.ResolveRequest{
		Token:    c.Param("token"),
		Password: c.Query("password"),
		CallerID: strings.TrimSpace(c.Query("caller_id")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      List Share Grants
// @Tags         shares
// @Produce      json
// @Param        issuer_id  query  string  true  "Issuer ID"
// @Success      200  {object}  []sharedomain.ShareGrant
// @Router       /shares [get]
func (s *Server) ListShares(c *gin.Context) {
	resp, err := s.shareSvc.ListByIssuer(c.Request.Context(), c.Query("issuer_id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Revoke Share Grant
// @Tags         shares
// @Produce      json
// @Param        id  path  string  true  "Grant ID"
// @Success      200  {object}  map[string]bool
// @Router       /shares/{id} [delete]
func (s *Server) RevokeShare(c *gin.Context) {
	revoked, err := s.shareSvc.Revoke(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"revoked": revoked}})
}
