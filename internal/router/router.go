package router

import (
	"log"

	"vigil/config"
	"vigil/internal/domain"
	"vigil/internal/handler"
	"vigil/internal/middleware"
	"vigil/internal/repository"
	"vigil/internal/service"
	"vigil/internal/ws"
	"vigil/pkg/cloudinary"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Setup wires repositories, services, and handlers into the gin engine and
// returns it together with the live hub (the caller runs its broadcast loop)
// and the shift reminder sweeper.
func Setup(cfg *config.Config, db *gorm.DB, cloud cloudinary.Client) (*gin.Engine, *ws.LiveHub, *service.ReminderSweeper) {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.CORS())

	// Mounted after auth in each group so authenticated traffic is limited
	// per user; the anonymous auth endpoints fall back to client IP.
	rateMw := middleware.RateLimit(middleware.NewRateLimiter(&cfg.RateLimit))

	// Repositories
	userRepo := repository.NewUserRepository(db)
	guardRepo := repository.NewGuardRepository(db)
	clientRepo := repository.NewClientRepository(db)
	siteRepo := repository.NewSiteRepository(db)
	shiftRepo := repository.NewShiftRepository(db)
	locRepo := repository.NewLocationRepository(db)
	eventRepo := repository.NewGeofenceRepository(db)
	incidentRepo := repository.NewIncidentRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	tokenRepo := repository.NewDeviceTokenRepository(db)

	// Services
	authSvc := service.NewAuthService(cfg, db, userRepo, guardRepo, clientRepo)
	fcmSvc := service.NewFCMService(cfg.Firebase.ServiceAccountPath)
	if fcmSvc != nil {
		log.Printf("[FCM] Push notifications enabled")
	} else {
		log.Printf("[FCM] Push notifications disabled: set FIREBASE_SERVICE_ACCOUNT_PATH to enable")
	}
	notifSvc := service.NewNotificationService(notificationRepo, tokenRepo, userRepo, fcmSvc)
	geofenceSvc := service.NewGeofenceService(eventRepo, notifSvc)
	sweeper := service.NewReminderSweeper(shiftRepo, notifSvc, cfg.Tracking.ReminderWindow, cfg.Tracking.ReminderSweep)

	liveHub := ws.NewLiveHub(func(companyID uint) ([]repository.LiveLocation, error) {
		return locRepo.LatestPerActiveGuard(companyID, cfg.Tracking.StaleAfter)
	}, cfg.Tracking.BroadcastInterval)

	// Handlers
	authHandler := handler.NewAuthHandler(authSvc)
	trackingHandler := handler.NewTrackingHandler(cfg, guardRepo, shiftRepo, locRepo, siteRepo, eventRepo, userRepo, geofenceSvc, notifSvc)
	siteHandler := handler.NewSiteHandler(siteRepo, clientRepo)
	shiftHandler := handler.NewShiftHandler(shiftRepo, guardRepo, siteRepo)
	incidentHandler := handler.NewIncidentHandler(incidentRepo, guardRepo, siteRepo, notifSvc, cloud)
	notificationHandler := handler.NewNotificationHandler(notificationRepo, tokenRepo)

	authMw := middleware.AuthRequired(&cfg.JWT)
	adminMw := middleware.RequireRole(domain.RoleAdmin)
	viewerMw := middleware.RequireRole(domain.RoleAdmin, domain.RoleClient)
	guardMw := middleware.RequireRole(domain.RoleGuard, domain.RoleAdmin)

	api := r.Group("/api")
	{
		authGroup := api.Group("/auth")
		authGroup.Use(rateMw)
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/refresh", authHandler.Refresh)
			authGroup.PATCH("/change-password", authMw, authHandler.ChangePassword)
			authGroup.POST("/users", authMw, adminMw, authHandler.CreateUser)
		}

		tracking := api.Group("/tracking")
		tracking.Use(authMw, rateMw)
		{
			tracking.POST("/location", guardMw, trackingHandler.IngestLocation)
			tracking.GET("/live-locations", viewerMw, trackingHandler.LiveLocations)
			tracking.POST("/geofence-event", adminMw, trackingHandler.RecordGeofenceEvent)
			tracking.GET("/geofence-events/:guardId", trackingHandler.ListGeofenceEvents)
			tracking.POST("/check-geofences/:guardId", adminMw, trackingHandler.CheckGeofences)
			tracking.POST("/emergency", middleware.RequireRole(domain.RoleGuard), trackingHandler.Emergency)
		}

		sites := api.Group("/sites")
		sites.Use(authMw, rateMw, viewerMw)
		{
			sites.POST("", siteHandler.Create)
			sites.GET("", siteHandler.List)
			sites.GET("/:id", siteHandler.Get)
			sites.PUT("/:id", siteHandler.Update)
			sites.DELETE("/:id", siteHandler.Delete)
		}

		shifts := api.Group("/shifts")
		shifts.Use(authMw, rateMw)
		{
			shifts.POST("", adminMw, shiftHandler.Create)
			shifts.GET("", shiftHandler.List)
			shifts.POST("/:id/clock-in", middleware.RequireRole(domain.RoleGuard), shiftHandler.ClockIn)
			shifts.POST("/:id/clock-out", middleware.RequireRole(domain.RoleGuard), shiftHandler.ClockOut)
			shifts.POST("/:id/cancel", adminMw, shiftHandler.Cancel)
		}

		incidents := api.Group("/incidents")
		incidents.Use(authMw, rateMw)
		{
			incidents.POST("", middleware.RequireRole(domain.RoleGuard), incidentHandler.Create)
			incidents.POST("/photo", middleware.RequireRole(domain.RoleGuard), incidentHandler.UploadPhoto)
			incidents.GET("", incidentHandler.List)
			incidents.GET("/:id", incidentHandler.Get)
			incidents.POST("/:id/reports", incidentHandler.AddReport)
			incidents.PATCH("/:id/status", adminMw, incidentHandler.UpdateStatus)
		}

		notifications := api.Group("/notifications")
		notifications.Use(authMw, rateMw)
		{
			notifications.GET("", notificationHandler.List)
			notifications.PUT("/:id/read", notificationHandler.MarkRead)
			notifications.POST("/register-device", notificationHandler.RegisterDevice)
			notifications.POST("/unregister-device", notificationHandler.UnregisterDevice)
		}
	}

	r.GET("/ws/live", ws.UpgradeLiveWS(&cfg.JWT, liveHub))

	return r, liveHub, sweeper
}
