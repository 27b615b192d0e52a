package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"

	analyticsdomain "github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/analytics/domain"
	bulkdomain "github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/bulk/domain"
	"github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/config"
	"github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/observability/metrics"
	pricewatchdomain "github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/pricewatch/domain"
	recoverydomain "github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/recovery/domain"
	sharedomain "github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/share/domain"
	snapshotdomain "github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/snapshot/domain"
)

// Server carries the HTTP handlers and their service dependencies.
type Server struct {
	log    *zap.Logger
	engine *gin.Engine

	snapshotSvc   snapshotdomain.Service
	shareSvc      sharedomain.Service
	bulkSvc       bulkdomain.Service
	priceWatchSvc pricewatchdomain.Service
	recoverySvc   recoverydomain.Service
	analyticsSvc  analyticsdomain.Service
}

type ServerParam struct {
	fx.In

	Log    *zap.Logger
	Engine *gin.Engine

	SnapshotSvc   snapshotdomain.Service
	ShareSvc      sharedomain.Service
	BulkSvc       bulkdomain.Service
	PriceWatchSvc pricewatchdomain.Service
	RecoverySvc   recoverydomain.Service
	AnalyticsSvc  analyticsdomain.Service
}

// NewEngine builds the gin engine with recovery and request logging.
func NewEngine(cfg config.Config, log *zap.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(requestLogger(log.Named("http")))
	engine.Use(metrics.GinMiddleware(metrics.HTTPWithConfig(metrics.Config{
		ServiceName: "cartd",
		Environment: cfg.Environment,
	})))
	return engine
}

func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	}
}

func NewServer(p ServerParam) *Server {
	return &Server{
		log:    p.Log.Named("server"),
		engine: p.Engine,

		snapshotSvc:   p.SnapshotSvc,
		shareSvc:      p.ShareSvc,
		bulkSvc:       p.BulkSvc,
		priceWatchSvc: p.PriceWatchSvc,
		recoverySvc:   p.RecoverySvc,
		analyticsSvc:  p.AnalyticsSvc,
	}
}

// RegisterAPIRoutes mounts the operational and API endpoints.
func (s *Server) RegisterAPIRoutes() {
	s.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	s.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := s.engine.Group("/api")

	api.POST("/carts/saved", s.CreateSavedCart)
	api.GET("/carts/saved", s.ListSavedCarts)
	api.GET("/carts/saved/:id", s.GetSavedCart)
	api.PATCH("/carts/saved/:id", s.UpdateSavedCart)
	api.DELETE("/carts/saved/:id", s.DeleteSavedCart)

	api.POST("/shares", s.IssueShare)
	api.GET("/shares", s.ListShares)
	api.GET("/shares/:token", rateLimit(newRateLimiter(30, time.Minute)), s.ResolveShare)
	api.DELETE("/shares/:id", s.RevokeShare)

	api.POST("/cart/bulk", s.ExecuteBulk)
	api.GET("/cart/bulk/history", s.BulkHistory)

	api.POST("/price-watches", s.CreatePriceWatch)
	api.GET("/price-watches", s.ListPriceWatches)
	api.PATCH("/price-watches/:id", s.UpdatePriceWatch)
	api.DELETE("/price-watches/:id", s.DeletePriceWatch)

	api.POST("/abandonments", s.CaptureAbandonment)
	api.GET("/abandonments/analytics", s.AbandonmentAnalytics)
	api.GET("/abandonments/:sessionId", s.GetAbandonment)
	api.POST("/abandonments/:sessionId/recover", s.MarkRecovered)
	api.POST("/abandonments/:sessionId/engagement", s.TrackEngagement)

	api.POST("/recommendations", s.Recommendations)
	api.GET("/analytics/overview", s.AnalyticsOverview)
}

// RunHTTP starts the HTTP listener on the fx lifecycle.
func RunHTTP(lc fx.Lifecycle, cfg config.Config, log *zap.Logger, engine *gin.Engine) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: engine,
	}

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("http server failed", zap.Error(err))
				}
			}()
			log.Info("http server started", zap.String("addr", cfg.HTTPAddr))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}
