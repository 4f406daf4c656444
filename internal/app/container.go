package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/talentnest247/Talentnest-sub001/domain"
	"github.com/talentnest247/Talentnest-sub001/internal/config"
	httpx "github.com/talentnest247/Talentnest-sub001/internal/http"
	"github.com/talentnest247/Talentnest-sub001/internal/http/handlers"
	"github.com/talentnest247/Talentnest-sub001/internal/http/middleware"
	"github.com/talentnest247/Talentnest-sub001/internal/infrastructure/auth"
	"github.com/talentnest247/Talentnest-sub001/internal/infrastructure/database"
	"github.com/talentnest247/Talentnest-sub001/internal/infrastructure/events"
	"github.com/talentnest247/Talentnest-sub001/internal/infrastructure/locks"
	"github.com/talentnest247/Talentnest-sub001/internal/infrastructure/notifications"
	"github.com/talentnest247/Talentnest-sub001/internal/infrastructure/repositories"
	"github.com/talentnest247/Talentnest-sub001/internal/infrastructure/storage"
	"github.com/talentnest247/Talentnest-sub001/internal/services"
)

// Container holds all dependencies
type Container struct {
	// Config
	Config *config.Config
	Log    logrus.FieldLogger

	// Infrastructure
	DB          *gorm.DB
	RedisClient *redis.Client
	Casbin      *auth.CasbinService
	Store       domain.DocumentStore
	Locker      domain.ProfileLocker
	Publisher   domain.EventPublisher

	// Repositories
	UserRepo    domain.UserRepository
	SessionRepo domain.SessionRepository
	ProfileRepo domain.ProfileRepository
	AuditRepo   *repositories.AuditRepository

	// Services
	PasswordSvc     domain.PasswordService
	TokenSvc        domain.TokenService
	NotificationSvc domain.NotificationService
	AuthSvc         domain.AuthService
	PolicySvc       domain.PolicyService
	VerificationSvc domain.VerificationService
	ListingSvc      domain.ListingService
	UploadSvc       domain.UploadService
	ProfileSvc      domain.ProfileService

	closers []func() error
}

// NewContainer opens Postgres and Redis from cfg and initializes all dependencies
func NewContainer(cfg *config.Config, log logrus.FieldLogger) (*Container, error) {
	db, err := database.Open(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	rdb := database.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	return connect(cfg, log, db, rdb)
}

// connect migrates and pings freshly opened connections. Both are closed on failure.
func connect(cfg *config.Config, log logrus.FieldLogger, db *gorm.DB, rdb *database.RedisClient) (*Container, error) {
	fail := func(err error) (*Container, error) {
		(&Container{Log: log, DB: db, RedisClient: rdb.Client}).Close()
		return nil, err
	}

	if err := database.AutoMigrate(db); err != nil {
		return fail(err)
	}
	if err := rdb.Ping(context.Background()); err != nil {
		return fail(fmt.Errorf("redis ping: %w", err))
	}

	return NewContainerWith(cfg, log, db, rdb.Client)
}

// NewContainerWith initializes all dependencies on already opened connections.
// The database must be migrated.
func NewContainerWith(cfg *config.Config, log logrus.FieldLogger, db *gorm.DB, rdb *redis.Client) (*Container, error) {
	c := &Container{Config: cfg, Log: log, DB: db, RedisClient: rdb}

	if err := c.initInfrastructure(); err != nil {
		c.Close()
		return nil, err
	}
	c.initRepositories()
	c.initServices()
	return c, nil
}

func (c *Container) initInfrastructure() error {
	cas, err := auth.NewCasbinService(c.DB, c.Config.CasbinModelPath)
	if err != nil {
		return err
	}
	c.Casbin = cas

	switch c.Config.Storage.Driver {
	case "cloudinary":
		cld := c.Config.Storage.Cloudinary
		store, err := storage.NewCloudinaryStore(cld.CloudName, cld.APIKey, cld.APISecret, cld.Folder)
		if err != nil {
			return err
		}
		c.Store = store
	case "memory":
		c.Store = storage.NewMemoryStore()
	default:
		return fmt.Errorf("unknown storage driver %q", c.Config.Storage.Driver)
	}

	if c.Config.NATSURL != "" {
		publisher, err := events.NewNATSPublisher(c.Config.NATSURL, c.Log.WithField("component", "nats"))
		if err != nil {
			return err
		}
		c.Publisher = publisher
		c.closers = append(c.closers, publisher.Close)
	} else {
		c.Publisher = events.NewNoopPublisher(c.Log)
	}

	c.Locker = locks.NewRedisLocker(c.RedisClient, c.Config.DecisionLockTTL)
	return nil
}

func (c *Container) initRepositories() {
	c.UserRepo = repositories.NewUserRepository(c.DB)
	c.SessionRepo = repositories.NewSessionRepository(c.RedisClient, c.Config.RefreshTTL)
	c.ProfileRepo = repositories.NewProfileRepository(c.DB)
	c.AuditRepo = repositories.NewAuditRepository(c.DB)
}

func (c *Container) initServices() {
	c.PasswordSvc = auth.NewPasswordService()
	c.TokenSvc = auth.NewJWTService(
		c.Config.JWTSecret,
		c.Config.JWTIssuer,
		c.Config.AccessTTL,
		c.Config.RefreshTTL,
	)
	c.NotificationSvc = notifications.NewTwilioService(
		c.Config.TwilioSID,
		c.Config.TwilioToken,
		c.Config.TwilioFrom,
		c.Log.WithField("component", "twilio"),
	)

	c.PolicySvc = services.NewPolicyService(c.Casbin.E, c.Log)
	c.AuthSvc = services.NewAuthService(
		c.UserRepo,
		c.SessionRepo,
		c.ProfileRepo,
		c.PasswordSvc,
		c.TokenSvc,
		c.AuditRepo,
		services.AuthSettings{AccessTTL: c.Config.AccessTTL, SessionTTL: c.Config.RefreshTTL},
		c.Log,
	)
	c.VerificationSvc = services.NewVerificationService(
		c.UserRepo,
		c.ProfileRepo,
		c.Locker,
		c.AuditRepo,
		c.Publisher,
		c.NotificationSvc,
		c.Log,
	)
	c.ListingSvc = services.NewListingService(c.ProfileRepo, c.Log)
	c.UploadSvc = services.NewUploadService(c.Store, services.UploadPolicy{
		MaxBytes:     c.Config.MaxUploadBytes,
		AllowedTypes: c.Config.AllowedTypes,
	}, c.Log)
	c.ProfileSvc = services.NewProfileService(c.UserRepo, c.ProfileRepo, c.Store, c.AuditRepo, c.Log)
}

// SeedPolicies installs the default casbin policies on an empty policy table
func (c *Container) SeedPolicies() error {
	seeded, err := c.Casbin.SeedDefaultPolicies()
	if err != nil {
		return err
	}
	if seeded {
		c.Log.WithField("count", len(auth.DefaultPolicies)).Info("casbin: seeded default policies")
	}
	return nil
}

// Router builds the HTTP router over the container's services
func (c *Container) Router() *gin.Engine {
	h := httpx.Handlers{
		Auth:         handlers.NewAuthHandlers(c.AuthSvc, c.Log),
		Policy:       handlers.NewPolicyHandlers(c.PolicySvc, c.Log),
		Verification: handlers.NewVerificationHandlers(c.VerificationSvc, c.Log),
		Listing:      handlers.NewListingHandlers(c.ListingSvc, c.Log),
		Upload:       handlers.NewUploadHandlers(c.UploadSvc, c.Config.MaxUploadBytes, c.Log),
		Profile:      handlers.NewProfileHandlers(c.ProfileSvc, c.Log),
	}
	jwtMW := middleware.NewAuthMW(c.TokenSvc, c.SessionRepo)
	casbinMW := middleware.NewCasbinMW(c.Casbin.E, c.Config.OwnershipRules, c.Log)
	return httpx.BuildRouter(h, jwtMW, casbinMW, c.Log)
}

// Close closes all connections
func (c *Container) Close() error {
	for _, closeFn := range c.closers {
		if err := closeFn(); err != nil {
			c.Log.WithError(err).Warn("close failed")
		}
	}
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
