package routes

import (
	"time"

	"sk-barangay-service/internal/app/controllers"
	"sk-barangay-service/internal/app/middleware"
	"sk-barangay-service/internal/domain/services"
	"sk-barangay-service/internal/domain/services/container"
	"sk-barangay-service/internal/error/code"
	"sk-barangay-service/internal/error/response"
	"sk-barangay-service/internal/infrastructure/config"
	"sk-barangay-service/internal/validation"

	"github.com/gin-gonic/gin"
)

// SetupRouter builds the engine with all middleware and routes
func SetupRouter(serviceContainer *container.ServiceContainer, metrics *middleware.Metrics) *gin.Engine {
	cfg := serviceContainer.GetService("config").(*config.Config)
	validation.RegisterGin()

	r := gin.New()
	r.MaxMultipartMemory = 8 << 20
	r.Use(
		middleware.Recovery(),
		middleware.RequestLogger(),
		metrics.Middleware(),
		middleware.CORS(cfg.CORSAllowedOrigin),
	)

	if cfg.StorageDriver == "" || cfg.StorageDriver == "local" {
		r.Static("/uploads", cfg.UploadDir)
	}
	r.GET("/metrics", metrics.Handler())
	r.NoRoute(func(c *gin.Context) {
		response.Fail(c, code.ErrRouteNotFound)
	})

	registerRoutes(r, serviceContainer)
	return r
}

// registerRoutes configures all API routes
func registerRoutes(r *gin.Engine, container *container.ServiceContainer) {
	api := r.Group("/api")
	branding := middleware.NewResponseCache(5 * time.Minute)

	registerPublicRoutes(api, container, branding)
	registerAuthenticatedRoutes(api, container, branding)
}

// registerPublicRoutes registers routes that need no token
func registerPublicRoutes(api *gin.RouterGroup, container *container.ServiceContainer, branding *middleware.ResponseCache) {
	api.GET("/health", controllers.HandleHealthFunc(container, "ping"))
	api.GET("/health/status", controllers.HandleHealthFunc(container, "status"))

	auth := api.Group("/auth", middleware.CombinedRateLimiter(1, 10))
	auth.POST("/login", controllers.HandleAuthFunc(container, "login"))
	auth.POST("/verify-otp", controllers.HandleAuthFunc(container, "verifyOTP"))
	auth.POST("/resend-otp", controllers.HandleAuthFunc(container, "resendOTP"))
	auth.POST("/request-password-reset", controllers.HandleAuthFunc(container, "requestPasswordReset"))
	auth.POST("/confirm-password-reset", controllers.HandleAuthFunc(container, "confirmPasswordReset"))

	api.GET("/personalisation", branding.Cache(), controllers.HandlePersonalisationFunc(container, "getPersonalisation"))
	api.GET("/carousel", branding.Cache(), controllers.HandlePersonalisationFunc(container, "getCarousel"))
}

// registerAuthenticatedRoutes registers routes behind the bearer token
func registerAuthenticatedRoutes(api *gin.RouterGroup, container *container.ServiceContainer, branding *middleware.ResponseCache) {
	jwtService := container.GetService("jwt").(services.InterfaceJWTService)
	accounts := container.GetService("user").(services.InterfaceUserService)
	secured := api.Group("", middleware.Authentication(jwtService, accounts))
	admin := middleware.RequireAdmin()
	selfOrAdmin := middleware.RequireSelfOrAdmin()

	users := secured.Group("/users")
	{
		users.GET("", admin, controllers.HandleUserFunc(container, "getUsers"))
		users.POST("/create-account", admin, controllers.HandleUserFunc(container, "createAccount"))
		users.GET("/:id", selfOrAdmin, controllers.HandleUserFunc(container, "getUser"))
		users.PUT("/:id", selfOrAdmin, controllers.HandleUserFunc(container, "updateUser"))
		users.DELETE("/:id", admin, controllers.HandleUserFunc(container, "deleteUser"))
		users.PUT("/:id/reset-password", admin, controllers.HandleUserFunc(container, "resetPassword"))
		users.PUT("/:id/change-password", controllers.HandleUserFunc(container, "changePassword"))
		users.POST("/:id/profile-picture", selfOrAdmin, controllers.HandleUserFunc(container, "uploadProfilePicture"))
		users.DELETE("/:id/profile-picture", selfOrAdmin, controllers.HandleUserFunc(container, "deleteProfilePicture"))
	}

	residents := secured.Group("/residents")
	{
		residents.GET("", controllers.HandleResidentFunc(container, "getResidents"))
		residents.GET("/count", controllers.HandleResidentFunc(container, "countResidents"))
		residents.GET("/:id", controllers.HandleResidentFunc(container, "getResident"))
		residents.POST("", controllers.HandleResidentFunc(container, "createResident"))
		residents.PUT("/:id", controllers.HandleResidentFunc(container, "updateResident"))
		residents.DELETE("/:id", controllers.HandleResidentFunc(container, "deleteResident"))
	}

	households := secured.Group("/households")
	{
		households.GET("", controllers.HandleHouseholdFunc(container, "getHouseholds"))
		households.GET("/count", controllers.HandleHouseholdFunc(container, "countHouseholds"))
		households.GET("/:id", controllers.HandleHouseholdFunc(container, "getHousehold"))
		households.POST("", controllers.HandleHouseholdFunc(container, "createHousehold"))
		households.PUT("/:id", controllers.HandleHouseholdFunc(container, "updateHousehold"))
		households.DELETE("/:id", controllers.HandleHouseholdFunc(container, "deleteHousehold"))
	}

	incidents := secured.Group("/incidents")
	{
		incidents.GET("", controllers.HandleIncidentFunc(container, "getIncidents"))
		incidents.GET("/count", controllers.HandleIncidentFunc(container, "countIncidents"))
		incidents.POST("/next-reference", controllers.HandleIncidentFunc(container, "nextReference"))
		incidents.GET("/:id", controllers.HandleIncidentFunc(container, "getIncident"))
		incidents.POST("", controllers.HandleIncidentFunc(container, "createIncident"))
		incidents.PUT("/:id", controllers.HandleIncidentFunc(container, "updateIncident"))
		incidents.DELETE("/:id", controllers.HandleIncidentFunc(container, "deleteIncident"))
	}

	communityServices := secured.Group("/services")
	{
		communityServices.GET("", controllers.HandleServiceFunc(container, "getServices"))
		communityServices.GET("/count", controllers.HandleServiceFunc(container, "countServices"))
		communityServices.GET("/:id", controllers.HandleServiceFunc(container, "getService"))
		communityServices.POST("", controllers.HandleServiceFunc(container, "createService"))
		communityServices.PUT("/:id", controllers.HandleServiceFunc(container, "updateService"))
		communityServices.DELETE("/:id", controllers.HandleServiceFunc(container, "deleteService"))
		communityServices.GET("/:id/beneficiaries", controllers.HandleServiceFunc(container, "getBeneficiaries"))
		communityServices.POST("/:id/beneficiaries", controllers.HandleServiceFunc(container, "addBeneficiary"))
		communityServices.DELETE("/:id/beneficiaries/:beneficiaryId", controllers.HandleServiceFunc(container, "removeBeneficiary"))
	}

	secured.GET("/history", controllers.HandleHistoryFunc(container, "getHistory"))

	timeLogs := secured.Group("/time-logs")
	{
		timeLogs.GET("", controllers.HandleTimeLogFunc(container, "getTimeLogs"))
		timeLogs.GET("/:id", controllers.HandleTimeLogFunc(container, "getTimeLog"))
		timeLogs.POST("", controllers.HandleTimeLogFunc(container, "createTimeLog"))
		timeLogs.PUT("/:id", controllers.HandleTimeLogFunc(container, "updateTimeLog"))
	}

	purge := branding.Invalidate()
	secured.PUT("/personalisation", admin, purge, controllers.HandlePersonalisationFunc(container, "updatePersonalisation"))
	secured.POST("/personalisation/logo", admin, purge, controllers.HandlePersonalisationFunc(container, "uploadLogo"))
	secured.POST("/personalisation/main-bg", admin, purge, controllers.HandlePersonalisationFunc(container, "uploadMainBg"))

	carousel := secured.Group("/carousel", admin, purge)
	{
		carousel.POST("", controllers.HandlePersonalisationFunc(container, "addCarouselImage"))
		carousel.PUT("/:id/position", controllers.HandlePersonalisationFunc(container, "updateCarouselPosition"))
		carousel.DELETE("/:id", controllers.HandlePersonalisationFunc(container, "deleteCarouselImage"))
	}
}
