package api

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/mockeefy-byte/mockeefy-sub000/internal/account"
	accountHttp "github.com/mockeefy-byte/mockeefy-sub000/internal/account/http"
	"github.com/mockeefy-byte/mockeefy-sub000/internal/auth"
	"github.com/mockeefy-byte/mockeefy-sub000/internal/expert"
	expertHttp "github.com/mockeefy-byte/mockeefy-sub000/internal/expert/http"
	"github.com/mockeefy-byte/mockeefy-sub000/internal/session"
	sessionHttp "github.com/mockeefy-byte/mockeefy-sub000/internal/session/http"
)

// Config holds everything the router needs to assemble the HTTP surface.
type Config struct {
	IsProduction bool
	ProdOrigins  string

	AccountService account.Service
	ExpertService  expert.Service
	SessionService session.Service

	JWTManager *auth.JWTManager
}

// NewRouter initializes the HTTP router engine: global middleware (CORS,
// Logger, Recovery) plus the routes of every module.
func NewRouter(cfg Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction && cfg.ProdOrigins != "" {
		corsConfig.AllowOrigins = strings.Split(cfg.ProdOrigins, ",")
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	authMiddleware := auth.Required(cfg.JWTManager)
	adminMiddleware := auth.RequireRole(string(account.RoleAdmin))

	accountHandler := accountHttp.NewHandler(cfg.AccountService, cfg.JWTManager)
	expertHandler := expertHttp.NewHandler(cfg.ExpertService)
	sessionHandler := sessionHttp.NewHandler(cfg.SessionService, cfg.ExpertService)

	v1 := r.Group("/v1")
	{
		accountHttp.RegisterRoutes(v1, accountHandler, authMiddleware, adminMiddleware)
		expertHttp.RegisterRoutes(v1, expertHandler, authMiddleware)
		sessionHttp.RegisterRoutes(v1, sessionHandler, authMiddleware)
	}

	return r
}
