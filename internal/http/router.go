package httpx

import (
	"github.com/gin-gonic/gin"
	"github.com/you/kpaforms/domain"
	"github.com/you/kpaforms/internal/http/handlers"
	"github.com/you/kpaforms/internal/http/middleware"
)

// RouterDeps bundles what BuildRouter wires into the engine
type RouterDeps struct {
	Auth        *handlers.AuthHandlers
	Submissions *handlers.SubmissionHandlers
	Health      *handlers.HealthHandlers
	Resolver    domain.IdentityResolver
	RateLimit   middleware.RateLimitConfig
}

func BuildRouter(d RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger())

	r.GET("/", d.Health.Root)
	r.GET("/health", d.Health.Health)

	api := r.Group("/api", middleware.RateLimit(d.RateLimit))

	auth := api.Group("/auth")
	auth.POST("/register", d.Auth.Register)
	auth.POST("/login", d.Auth.Login)

	forms := api.Group("/forms", middleware.AuthMiddleware(d.Resolver))
	forms.POST("/submit", d.Submissions.Submit)
	forms.GET("/submissions", d.Submissions.List)
	forms.GET("/submissions/:id", d.Submissions.Get)
	forms.PUT("/submissions/:id", d.Submissions.Update)

	return r
}
