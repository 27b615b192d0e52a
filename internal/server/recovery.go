package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	recoverydomain "github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/recovery/domain"
)

// @Summary      Capture Abandonment
// @Description  Record an abandoned cart and schedule the recovery sequence
// @Tags         abandonments
// @Accept       json
// @Produce      json
// @Param        request body recoverydomain.CaptureRequest true "Capture Request"
// @Success      200  {object}  recoverydomain.AbandonmentRecord
// @Router       /abandonments [post]
func (s *Server) CaptureAbandonment(c *gin.Context) {
	var req recoverydomain.CaptureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.recoverySvc.Capture(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Get Abandonment Record
// @Tags         abandonments
// @Produce      json
// @Param        sessionId  path  string  true  "Session ID"
// @Success      200  {object}  recoverydomain.AbandonmentRecord
// @Router       /abandonments/{sessionId} [get]
func (s *Server) GetAbandonment(c *gin.Context) {
	resp, err := s.recoverySvc.GetBySession(c.Request.Context(), c.Param("sessionId"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Mark Cart Recovered
// @Description  Stop the recovery sequence for a session
// @Tags         abandonments
// @Produce      json
// @Param        sessionId  path  string  true  "Session ID"
// @Success      200  {object}  recoverydomain.AbandonmentRecord
// @Router       /abandonments/{sessionId}/recover [post]
func (s *Server) MarkRecovered(c *gin.Context) {
	resp, err := s.recoverySvc.MarkRecovered(c.Request.Context(), c.Param("sessionId"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type trackEngagementRequest struct {
	Stage string `json:"stage"`
	Kind  string `json:"kind"`
}

// @Summary      Track Recovery Engagement
// @Description  Stamp an open or click on a sent recovery notification
// @Tags         abandonments
// @Accept       json
// @Produce      json
// @Param        sessionId  path  string                  true  "Session ID"
// @Param        request    body  trackEngagementRequest  true  "Engagement"
// @Success      200  {object}  map[string]string
// @Router       /abandonments/{sessionId}/engagement [post]
func (s *Server) TrackEngagement(c *gin.Context) {
	var req trackEngagementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	err := s.recoverySvc.TrackEngagement(
		c.Request.Context(),
		c.Param("sessionId"),
		recoverydomain.Stage(req.Stage),
		req.Kind,
	)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// @Summary      Abandonment Analytics
// @Tags         abandonments
// @Produce      json
// @Param        from  query  string  false  "RFC3339 range start"
// @Param        to    query  string  false  "RFC3339 range end"
// @Success      200  {object}  recoverydomain.Analytics
// @Router       /abandonments/analytics [get]
func (s *Server) AbandonmentAnalytics(c *gin.Context) {
	from, err := parseOptionalTime(c.Query("from"))
	if err != nil {
		AbortWithError(c, newValidationError("from", "invalid_from", "invalid from timestamp"))
		return
	}
	to, err := parseOptionalTime(c.Query("to"))
	if err != nil {
		AbortWithError(c, newValidationError("to", "invalid_to", "invalid to timestamp"))
		return
	}

	resp, err := s.recoverySvc.Analytics(c.Request.Context(), from, to)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func parseOptionalTime(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
