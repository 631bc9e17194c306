package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Rashi-Dwivedi1812/SentiLog-AI/internal/container"
	handlers "github.com/Rashi-Dwivedi1812/SentiLog-AI/internal/interface/http"
	"github.com/Rashi-Dwivedi1812/SentiLog-AI/internal/interface/middleware"
	"github.com/Rashi-Dwivedi1812/SentiLog-AI/pkg/helpers"
)

// AuthModule wires the auth handlers into routes.
// Public: POST /api/auth/signup, POST /api/auth/login
// Protected: GET /api/auth/me
type AuthModule struct {
	Handler *handlers.AuthHandler
	JWT     *helpers.JWTManager
}

func NewAuthModule(h *handlers.AuthHandler, jwt *helpers.JWTManager) *AuthModule {
	return &AuthModule{Handler: h, JWT: jwt}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	// Public endpoints with IP-based rate limits
	signupLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), nil)
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.POST("/auth/signup", signupLimiter, m.Handler.Signup)
	rg.POST("/auth/login", loginLimiter, m.Handler.Login)

	// Protected
	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.GET("/auth/me", m.Handler.Me)
	}
}
