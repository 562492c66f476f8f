package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	_ "github.com/feedloop/feedloop/docs"
	"github.com/feedloop/feedloop/internal/middleware"
	"github.com/feedloop/feedloop/internal/modules/handler"
	"github.com/feedloop/feedloop/internal/modules/serializer"
	"github.com/feedloop/feedloop/internal/modules/service"
	"github.com/feedloop/feedloop/internal/pkg/ratelimit"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	Log            *zap.Logger
	AuthService    service.AuthService
	ProjectService service.ProjectService
	AuthLimiter    ratelimit.Limiter
	AuthHandler    *handler.AuthHandler
	ProjectHandler *handler.ProjectHandler
	ReportHandler  *handler.ReportHandler
	ExportHandler  *handler.ExportHandler
	WidgetHandler  *handler.WidgetHandler
}

func NewRouter(d RouterDeps) *gin.Engine {
	// Initialize logger for serializer package
	serializer.SetLogger(d.Log)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.ZapLogger(d.Log))

	// health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// swagger
	r.GET("/swagger", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.Use(middleware.RateLimit(d.AuthLimiter, d.Log))
			auth.POST("/register", d.AuthHandler.Register)
			auth.POST("/login", d.AuthHandler.Login)
		}

		widget := v1.Group("/widget")
		{
			widget.Use(middleware.WidgetAuth(d.ProjectService))
			widget.POST("/reports", d.WidgetHandler.SubmitReport)
		}

		projects := v1.Group("/projects")
		{
			projects.Use(middleware.SessionAuth(d.AuthService))

			projects.GET("", d.ProjectHandler.ListProjects)
			projects.POST("", d.ProjectHandler.CreateProject)

			scoped := projects.Group("/:project_id")
			{
				scoped.Use(middleware.ProjectAccess(d.ProjectService))

				scoped.GET("", d.ProjectHandler.GetProject)
				scoped.DELETE("", d.ProjectHandler.DeleteProject)

				scoped.GET("/members", d.ProjectHandler.ListMembers)
				scoped.POST("/members", d.ProjectHandler.InviteMember)
				scoped.DELETE("/members/:user_id", d.ProjectHandler.RemoveMember)

				scoped.GET("/reports", d.ReportHandler.ListReports)
				scoped.POST("/reports", d.ReportHandler.CreateReport)
				scoped.GET("/reports/:report_id", d.ReportHandler.GetReport)
				scoped.PUT("/reports/:report_id", d.ReportHandler.UpdateReport)

				scoped.POST("/exports", d.ExportHandler.CreateExport)
				scoped.GET("/exports/:export_id", d.ExportHandler.GetExport)
			}
		}
	}
	return r
}
