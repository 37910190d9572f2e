package api

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"time"

	authUsecase "rentit-backend/internal/auth/usecase"
	productUsecase "rentit-backend/internal/product/usecase"
	"rentit-backend/pkg/config"
	"rentit-backend/pkg/logger"
	"rentit-backend/pkg/metrics"
	"rentit-backend/pkg/token"

	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 10 * time.Second

// PingFunc reports whether a backing service is reachable.
type PingFunc func(ctx context.Context) error

type Handler struct {
	authUsecase    authUsecase.AuthUsecase
	productUsecase productUsecase.ProductUsecase
	tokens         token.Service
	metrics        *metrics.Metrics
	ping           PingFunc
	config         *config.Config
	log            *logger.Logger
}

func NewHandler(authUc authUsecase.AuthUsecase, productUc productUsecase.ProductUsecase, tokens token.Service, m *metrics.Metrics, ping PingFunc, cfg *config.Config, log *logger.Logger) *Handler {
	return &Handler{
		authUsecase:    authUc,
		productUsecase: productUc,
		tokens:         tokens,
		metrics:        m,
		ping:           ping,
		config:         cfg,
		log:            log,
	}
}

// Router builds the gin engine with middleware and every route.
func (h *Handler) Router() *gin.Engine {
	switch h.config.Environment {
	case "development":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(h.log))
	r.Use(corsMiddleware(h.config.CORSOrigins))
	if h.metrics != nil {
		r.Use(h.metrics.Middleware())
		r.GET("/metrics", gin.WrapH(h.metrics.Handler()))
	}

	SetupRoutes(r, h)

	return r
}

// Start serves on addr until ctx is cancelled, then drains in-flight
// requests for up to shutdownTimeout.
func (h *Handler) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		h.log.Info("server starting", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	h.log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	allowAll := slices.Contains(allowedOrigins, "*")

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" && (allowAll || slices.Contains(allowedOrigins, origin)) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, PATCH, OPTIONS")
			c.Writer.Header().Add("Vary", "Origin")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func requestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.InfoContext(c.Request.Context(), "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"client_ip", c.ClientIP(),
		)
	}
}
