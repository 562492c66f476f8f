package main

//	@title			FeeDLooP API
//	@version		1.0
//	@description	Feedback collection API: projects, widget report ingestion, dashboard queries, and exports.
//	@schemes		http https
//	@BasePath		/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Dashboard session token (e.g., "Bearer eyJ...")

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/feedloop/feedloop/internal/bootstrap"
	"github.com/feedloop/feedloop/internal/config"
	"github.com/feedloop/feedloop/internal/modules/handler"
	"github.com/feedloop/feedloop/internal/modules/service"
	"github.com/feedloop/feedloop/internal/pkg/ratelimit"
	"github.com/feedloop/feedloop/internal/router"
	"github.com/gin-gonic/gin"
	"github.com/samber/do"
	"go.uber.org/zap"
)

func main() {
	// build dependency injection container
	inj := bootstrap.BuildContainer()

	cfg := do.MustInvoke[*config.Config](inj)
	log := do.MustInvoke[*zap.Logger](inj)

	// init gin
	gin.SetMode(cfg.App.Env)

	engine := router.NewRouter(router.RouterDeps{
		Log:            log,
		AuthService:    do.MustInvoke[service.AuthService](inj),
		ProjectService: do.MustInvoke[service.ProjectService](inj),
		AuthLimiter:    do.MustInvoke[ratelimit.Limiter](inj),
		AuthHandler:    do.MustInvoke[*handler.AuthHandler](inj),
		ProjectHandler: do.MustInvoke[*handler.ProjectHandler](inj),
		ReportHandler:  do.MustInvoke[*handler.ReportHandler](inj),
		ExportHandler:  do.MustInvoke[*handler.ExportHandler](inj),
		WidgetHandler:  do.MustInvoke[*handler.WidgetHandler](inj),
	})

	addr := fmt.Sprintf("%s:%d", cfg.App.Host, cfg.App.Port)
	srv := &http.Server{Addr: addr, Handler: engine}

	go func() {
		log.Sugar().Infow("starting http server", "addr", addr)
		log.Sugar().Infow("swagger url", "url", addr+"/swagger/index.html")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Sugar().Fatalw("listen error", "err", err)
		}
	}()

	// graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Sugar().Errorw("server shutdown", "err", err)
	}
	log.Sugar().Info("server exited")
}
