package app

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/mockeefy-byte/mockeefy-sub000/internal/account"
	"github.com/mockeefy-byte/mockeefy-sub000/internal/api"
	"github.com/mockeefy-byte/mockeefy-sub000/internal/auth"
	"github.com/mockeefy-byte/mockeefy-sub000/internal/availability"
	"github.com/mockeefy-byte/mockeefy-sub000/internal/expert"
	"github.com/mockeefy-byte/mockeefy-sub000/internal/payment"
	"github.com/mockeefy-byte/mockeefy-sub000/internal/pkg/storage"
	"github.com/mockeefy-byte/mockeefy-sub000/internal/session"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	DBPool       *pgxpool.Pool
	JWTSecret    string
	JWTTTL       time.Duration
	BcryptCost   int
	StoragePath  string
	StripeAPIKey string
	Logger       *zap.Logger
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) (*Container, error) {
	// Shared components
	passwordHasher := auth.NewBcryptPasswordHasher(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	store, err := storage.NewLocalStorage(cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}
	images := storage.NewImageProcessor()

	var payments payment.Provider = payment.Disabled{}
	if cfg.StripeAPIKey != "" {
		payments = payment.NewStripeProvider(cfg.StripeAPIKey)
	}

	resolver := availability.New()

	// Account Module
	accountRepo := account.NewPgxRepository(cfg.DBPool)
	accountService := account.NewService(accountRepo, passwordHasher)

	// Expert Module
	expertRepo := expert.NewPgxRepository(cfg.DBPool)
	expertService := expert.NewService(expertRepo, store, images)

	// Session Module
	sessionRepo := session.NewPgxRepository(cfg.DBPool)
	sessionService := session.NewService(sessionRepo, expertService, payments, resolver, cfg.Logger)

	// API Router Config
	routerParams := api.Config{
		IsProduction:   cfg.IsProduction,
		ProdOrigins:    cfg.ProdOrigins,
		AccountService: accountService,
		ExpertService:  expertService,
		SessionService: sessionService,
		JWTManager:     jwtManager,
	}

	return &Container{
		Router:     api.NewRouter(routerParams),
		JWTManager: jwtManager,
	}, nil
}
