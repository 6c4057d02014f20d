package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/you/kpaforms/domain"
	"github.com/you/kpaforms/internal/config"
	httpx "github.com/you/kpaforms/internal/http"
	"github.com/you/kpaforms/internal/http/handlers"
	"github.com/you/kpaforms/internal/http/middleware"
	"github.com/you/kpaforms/internal/infrastructure/audit"
	"github.com/you/kpaforms/internal/infrastructure/auth"
	"github.com/you/kpaforms/internal/infrastructure/database"
	"github.com/you/kpaforms/internal/infrastructure/notifications"
	"github.com/you/kpaforms/internal/infrastructure/repositories"
	"github.com/you/kpaforms/internal/services"
)

// Container holds all dependencies
type Container struct {
	// Config
	Config *config.Config

	// Infrastructure
	DB          *gorm.DB
	RedisClient *redis.Client

	// Repositories
	UserRepo       domain.UserRepository
	SubmissionRepo domain.SubmissionRepository

	// Services
	PasswordSvc     domain.PasswordService
	TokenSvc        domain.TokenService
	NotificationSvc domain.NotificationService
	AuditLogger     domain.AuditLogger
	LoginThrottle   domain.LoginThrottle
	AuthSvc         domain.AuthService
	IdentityRes     domain.IdentityResolver
	SubmissionSvc   domain.SubmissionService
}

// NewContainer creates and initializes all dependencies
func NewContainer(cfg *config.Config) (*Container, error) {
	container := &Container{Config: cfg}

	// Initialize infrastructure
	if err := container.initDatabase(); err != nil {
		return nil, err
	}
	if err := container.initRedis(); err != nil {
		container.Close()
		return nil, err
	}

	// Initialize repositories
	container.initRepositories()

	// Initialize services
	container.initServices()

	return container, nil
}

func (c *Container) initDatabase() error {
	db, err := database.Open(c.Config.Database.Driver, c.Config.Database.DSN, c.Config.App.GinMode == gin.DebugMode)
	if err != nil {
		return err
	}

	// Auto-migrate
	if err := database.AutoMigrate(db); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}

	c.DB = db
	return nil
}

// initRedis connects the login throttle store. Without an address the
// throttle is disabled and no client is created.
func (c *Container) initRedis() error {
	if c.Config.Redis.Addr == "" {
		log.Printf("REDIS_DISABLED: login throttling off")
		return nil
	}

	rdb := database.NewRedis(c.Config.Redis.Addr, c.Config.Redis.Password, c.Config.Redis.DB)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx); err != nil {
		rdb.Close()
		return fmt.Errorf("redis ping %s: %w", c.Config.Redis.Addr, err)
	}

	c.RedisClient = rdb.Client
	return nil
}

func (c *Container) initRepositories() {
	c.UserRepo = repositories.NewUserRepository(c.DB)
	c.SubmissionRepo = repositories.NewSubmissionRepository(c.DB)
}

func (c *Container) initServices() {
	// Initialize basic services
	c.PasswordSvc = auth.NewPasswordService()
	c.TokenSvc = auth.NewJWTService(
		c.Config.JWT.Secret,
		c.Config.JWT.Issuer,
		c.Config.JWT.AccessTTL,
	)
	c.NotificationSvc = notifications.NewTwilioService(
		c.Config.Twilio.AccountSID,
		c.Config.Twilio.AuthToken,
		c.Config.Twilio.FromNumber,
	)
	c.AuditLogger = audit.NewLogAuditLogger(nil)
	c.LoginThrottle = services.NewLoginThrottle(c.RedisClient, services.LoginThrottleConfig{
		MaxAttempts:   c.Config.Login.MaxAttempts,
		LockoutWindow: c.Config.Login.LockoutWindow,
	})

	c.AuthSvc = services.NewAuthService(
		c.UserRepo,
		c.PasswordSvc,
		c.TokenSvc,
		c.LoginThrottle,
		c.AuditLogger,
	)
	c.IdentityRes = services.NewIdentityResolver(c.TokenSvc, c.UserRepo)
	c.SubmissionSvc = services.NewSubmissionService(
		c.SubmissionRepo,
		c.NotificationSvc,
		c.AuditLogger,
		c.Config.Pagination.MaxLimit,
	)
}

// Router builds the HTTP engine over the container's services
func (c *Container) Router() *gin.Engine {
	return httpx.BuildRouter(httpx.RouterDeps{
		Auth:        handlers.NewAuthHandlers(c.AuthSvc),
		Submissions: handlers.NewSubmissionHandlers(c.SubmissionSvc),
		Health:      handlers.NewHealthHandlers(),
		Resolver:    c.IdentityRes,
		RateLimit: middleware.RateLimitConfig{
			RPS:   c.Config.RateLimit.RPS,
			Burst: c.Config.RateLimit.Burst,
		},
	})
}

// Close closes all connections
func (c *Container) Close() error {
	if c.RedisClient != nil {
		c.RedisClient.Close()
	}

	if c.DB != nil {
		sqlDB, err := c.DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}

	return nil
}
