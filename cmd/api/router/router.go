package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"creative-radar/cmd/api/handlers"
	"creative-radar/cmd/api/middleware"
	"creative-radar/cmd/api/services"
	_ "creative-radar/docs"
)

type Deps struct {
	Search      *services.SearchService
	Projects    *services.ProjectService
	Templates   *services.TemplateService
	CORSOrigins []string
}

func New(deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestTrace(), middleware.CORS(deps.CORSOrigins))

	// Health check
	r.GET("/health", handlers.HealthHandler())

	// Swagger
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// v1 routes
	api := r.Group("/api/v1")
	{
		api.GET("/health", handlers.HealthHandler())

		api.POST("/search", handlers.SearchHandler(deps.Search))
		api.GET("/search", handlers.ListSearchesHandler(deps.Search))
		api.GET("/search/:id", handlers.GetSearchHandler(deps.Search))
		api.DELETE("/search/:id", handlers.DeleteSearchHandler(deps.Search))

		api.GET("/projects", handlers.ListProjectsHandler(deps.Projects))
		api.POST("/projects", handlers.CreateProjectHandler(deps.Projects))
		api.GET("/projects/:id", handlers.GetProjectHandler(deps.Projects))
		api.PUT("/projects/:id", handlers.UpdateProjectHandler(deps.Projects))
		api.DELETE("/projects/:id", handlers.DeleteProjectHandler(deps.Projects))
		api.POST("/projects/:id/items", handlers.AddProjectItemHandler(deps.Projects))
		api.DELETE("/projects/:id/items/:itemId", handlers.RemoveProjectItemHandler(deps.Projects))

		api.GET("/templates", handlers.ListTemplatesHandler(deps.Templates))
		api.POST("/templates", handlers.CreateTemplateHandler(deps.Templates))
		api.DELETE("/templates/:id", handlers.DeleteTemplateHandler(deps.Templates))
	}

	return r
}
