package container

import (
	"context"
	"sync"
	"time"

	"sk-barangay-service/internal/domain/services"
	"sk-barangay-service/internal/infrastructure/cache"
	"sk-barangay-service/internal/infrastructure/config"
	"sk-barangay-service/internal/infrastructure/mail"
	"sk-barangay-service/internal/infrastructure/storage"
	Logger "sk-barangay-service/pkg/logger"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// Dependencies are the infrastructure handles the services are built from
type Dependencies struct {
	DB      *gorm.DB
	Config  *config.Config
	Redis   *redis.Client
	OTP     cache.InterfaceOTPStore
	Mailer  mail.Mailer
	Storage storage.Store
}

// ServiceContainer owns every domain service
type ServiceContainer struct {
	db      *gorm.DB
	config  *config.Config
	redis   *redis.Client
	otp     cache.InterfaceOTPStore
	mailer  mail.Mailer
	storage storage.Store

	// base services
	jwtService     services.InterfaceJWTService
	historyService services.InterfaceHistoryService

	// registries
	residentService  services.InterfaceResidentService
	householdService services.InterfaceHouseholdService
	incidentService  services.InterfaceIncidentService
	communityService services.InterfaceCommunityService

	// accounts
	authService    services.InterfaceAuthService
	userService    services.InterfaceUserService
	timeLogService services.InterfaceTimeLogService

	// branding
	personalisationService services.InterfacePersonalisationService
	carouselService        services.InterfaceCarouselService

	mu sync.RWMutex
}

// NewServiceContainer builds all services. Missing OTP store or mailer fall
// back to the in-process store and the log mailer.
func NewServiceContainer(deps Dependencies) *ServiceContainer {
	if deps.DB == nil {
		panic("database connection is nil")
	}
	if deps.Config == nil {
		panic("config is nil")
	}
	if deps.Storage == nil {
		panic("upload storage is nil")
	}

	if deps.Redis != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := deps.Redis.Ping(ctx).Err(); err != nil {
			Logger.Warning("redis ping failed: %v", err)
		}
	}
	if deps.OTP == nil {
		deps.OTP = cache.NewOTPStore(deps.Config, deps.Redis)
	}
	if deps.Mailer == nil {
		deps.Mailer = mail.NewMailer(deps.Config)
	}

	container := &ServiceContainer{
		db:      deps.DB,
		config:  deps.Config,
		redis:   deps.Redis,
		otp:     deps.OTP,
		mailer:  deps.Mailer,
		storage: deps.Storage,
	}
	container.initializeServices()
	return container
}

// initializeServices wires the services together
func (c *ServiceContainer) initializeServices() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.jwtService = services.NewJWTService(c.config)
	c.historyService = services.NewHistoryService(c.db, c.config)

	c.residentService = services.NewResidentService(c.db, c.config, c.historyService)
	c.householdService = services.NewHouseholdService(c.db, c.config, c.historyService)
	c.incidentService = services.NewIncidentService(c.db, c.config, c.historyService)
	c.communityService = services.NewCommunityService(c.db, c.config, c.historyService)

	c.authService = services.NewAuthService(c.db, c.config, c.otp, c.mailer, c.jwtService)
	c.userService = services.NewUserService(c.db, c.config, c.mailer, c.storage)
	c.timeLogService = services.NewTimeLogService(c.db, c.config)

	c.personalisationService = services.NewPersonalisationService(c.db, c.config, c.storage)
	c.carouselService = services.NewCarouselService(c.db, c.config, c.storage)
}

// GetService returns the service registered under name, or nil
func (c *ServiceContainer) GetService(name string) interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	switch name {
	case "config":
		return c.config
	case "db":
		return c.db
	case "redis":
		return c.redis
	case "otp":
		return c.otp
	case "mailer":
		return c.mailer
	case "storage":
		return c.storage
	case "jwt":
		return c.jwtService
	case "history":
		return c.historyService
	case "resident":
		return c.residentService
	case "household":
		return c.householdService
	case "incident":
		return c.incidentService
	case "service":
		return c.communityService
	case "auth":
		return c.authService
	case "user":
		return c.userService
	case "time_log":
		return c.timeLogService
	case "personalisation":
		return c.personalisationService
	case "carousel":
		return c.carouselService
	default:
		return nil
	}
}
