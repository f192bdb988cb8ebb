package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"creative-radar/cmd/api/router"
	"creative-radar/cmd/api/services"
	"creative-radar/cmd/internal/app"
	"creative-radar/config"
)

// @title           Creative Radar API
// @version         1.0
// @description     Turns a creative brief into ranked content references from several platforms
// @BasePath        /api/v1
func main() {
	config.InitApp()
	cfg := config.GetConfig()
	config.InitLogger(cfg.Logging)
	if cfg.Logging.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, config.GetSecrets(), "api")
	if err != nil {
		config.Logger.Fatalf("failed to initialize: %v", err)
	}
	defer a.Close()

	r := router.New(router.Deps{
		Search:      services.NewSearchService(a.Pipeline, a.Store, a.Publisher, a.Topic),
		Projects:    services.NewProjectService(a.Store),
		Templates:   services.NewTemplateService(a.Store),
		CORSOrigins: cfg.Server.CORSOrigins,
	})

	srv := &http.Server{Addr: cfg.Server.Addr, Handler: r}
	go func() {
		config.Logger.Infof("creative-radar api listening on %s (providers: %v)", cfg.Server.Addr, a.Registry.Names())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			config.Logger.Fatalf("server error: %v", err)
		}
	}()

	<-ctx.Done()
	config.Logger.Info("received shutdown signal, shutting down api server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		config.Logger.Errorf("graceful shutdown failed: %v", err)
	}
}
