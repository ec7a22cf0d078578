package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	apperrors "paygate.io/application/appErrors"
	"paygate.io/infrastructure/env"
	"paygate.io/infrastructure/logger"
	middlewares "paygate.io/infrastructure/middleware"
	ratelimit "paygate.io/infrastructure/ratelimit"
	webRoutev1 "paygate.io/infrastructure/routes/ginRouter/web/v1"
	server_response "paygate.io/infrastructure/serverResponse"
)

const shutdownGracePeriod = 15 * time.Second

type ginServer struct {
	config *env.Config
}

func NewRouter(config *env.Config) *gin.Engine {
	gin.SetMode(config.GinMode)
	server := gin.New()
	server.Use(gin.Recovery())
	if config.GinMode == gin.DebugMode {
		server.Use(gin.Logger())
	}

	corsConfig := cors.Config{
		AllowOrigins:     config.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Device-Id", "X-Request-Id", "User-Agent"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(config.AllowedOrigins) == 0 {
		corsConfig.AllowOrigins = nil
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowCredentials = false
	}
	server.Use(cors.New(corsConfig))
	server.Use(ratelimit.TokenBucketPerIP(ratelimit.DefaultRequestsPerSecond))

	server.GET("/ping", func(ctx *gin.Context) {
		server_response.Responder.Respond(ctx, http.StatusOK, "pong!", nil, nil, nil)
	})

	v1 := server.Group("/api/v1")
	v1.Use(middlewares.RequestContextMiddleware())
	{
		webRoutev1.PaymentRouter(v1)
	}

	server.NoRoute(func(ctx *gin.Context) {
		apperrors.NotFoundError(ctx, fmt.Sprintf("%s %s does not exist", ctx.Request.Method, ctx.Request.URL))
	})
	return server
}

// Start serves until ctx is cancelled, then drains in-flight requests.
func (s *ginServer) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", s.config.Port),
		Handler:           NewRouter(s.config),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info(fmt.Sprintf("Server starting on PORT %s", s.config.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGracePeriod)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
