package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/SalahTracker/controllers"
	"github.com/SalahTracker/initializers"
	"github.com/SalahTracker/middlewares"
	"github.com/SalahTracker/models"
	"github.com/SalahTracker/repositories"
	"github.com/SalahTracker/services"
)

type backend interface {
	repositories.Store
	repositories.UserStore
}

func openStore() backend {
	switch initializers.Config.StoreBackend {
	case initializers.StorePostgres:
		return repositories.NewPostgresStore(initializers.DB)
	case initializers.StoreFirebase:
		if initializers.RealtimeDB == nil {
			log.Fatal().Msg("Firebase realtime database not available")
		}
		return repositories.NewFirebaseStore(initializers.RealtimeDB)
	default:
		log.Warn().Msg("Using in-memory store, data is lost on restart")
		return repositories.NewMemoryStore()
	}
}

func init() {
	initializers.LoadEnv()
	if initializers.Config.StoreBackend == initializers.StorePostgres {
		initializers.ConnectDB()
	}
	if initializers.Config.NeedsFirebase() {
		initializers.InitFirebase()
	}
	initializers.ConnectRedis()
	initializers.ConnectMQTT()

	cfg := initializers.Config
	loc := cfg.Location()
	store := openStore()

	services.InitTrackerService(store, loc)
	services.InitGoodDeedService(store)
	services.InitQuranService(store, services.GetTrackerService())

	var cache services.ScheduleCache = services.NewMemoryScheduleCache()
	if initializers.Redis != nil {
		cache = services.NewRedisScheduleCache(initializers.Redis)
	}
	services.InitScheduleService(
		services.NewAladhanClient(cfg.PrayerTimesBaseURL, cfg.PrayerTimesMethod),
		cache,
		cfg.ScheduleCacheTTL,
		models.Coordinates{Latitude: cfg.DefaultLatitude, Longitude: cfg.DefaultLongitude},
		loc,
	)

	services.InitPushNotificationService(initializers.FirebaseApp, store)
	services.InitEmailService(cfg.ResendAPIKey, cfg.ResendFromEmail)

	var verifier services.IDTokenVerifier
	if initializers.FirebaseAuth != nil {
		verifier = initializers.FirebaseAuth
	}
	services.InitAccountService(store, cfg.Secret, verifier, services.GetEmailService())

	notifier := services.NewLevelUpNotifier(store, services.GetPushNotificationService(), services.GetEmailService())
	services.GetTrackerService().OnLevelUp(notifier.Listener())

	services.InitReminderService(store, services.GetScheduleService(), services.GetPushNotificationService(), loc)
	if err := services.GetReminderService().Start(); err != nil {
		log.Fatal().Err(err).Msg("Failed to start reminder scheduler")
	}

	var publisher services.CountdownPublisher
	if initializers.MQTT != nil {
		publisher = services.NewMQTTCountdownPublisher(initializers.MQTT, cfg.MQTTTopicPrefix)
	}
	services.InitSessionManager(services.SessionConfig{
		TickInterval:          cfg.TickInterval,
		StatusRefreshInterval: cfg.StatusRefreshInterval,
		AudioSaveInterval:     cfg.AudioSaveInterval,
		Location:              loc,
	}, services.GetTrackerService(), services.GetQuranService(), publisher)
}

func main() {
	cfg := initializers.Config
	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOriginFunc:  func(origin string) bool { return true },
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
	}))

	limit := rate.Limit(cfg.RateLimitRPS)
	burst := cfg.RateLimitBurst

	router.POST("/login", middlewares.RateLimitMiddleware(2, 2, middlewares.ClientIPKey), controllers.UserLogin)
	router.POST("/signup", middlewares.RateLimitMiddleware(2, 2, middlewares.ClientIPKey), controllers.UserSignup)
	router.GET("/ping", middlewares.RateLimitMiddleware(2, 2, middlewares.ClientIPKey), controllers.Ping)

	// schedule routes
	router.GET("/schedule", middlewares.RateLimitMiddleware(limit, burst, middlewares.ClientIPKey), controllers.GetSchedule)
	router.GET("/countdown", middlewares.RateLimitMiddleware(limit, burst, middlewares.ClientIPKey), controllers.GetCountdown)

	auth := router.Group("/")
	auth.Use(middlewares.CheckAuth)
	auth.Use(middlewares.RateLimitMiddleware(limit, burst, middlewares.UserKey))
	{
		// user routes
		auth.GET("/users/me", controllers.GetUserProfile)
		auth.POST("/users/reminders", controllers.SubscribeReminders)

		// tracker routes
		auth.POST("/logs/:prayer_name", controllers.MarkPrayer)
		auth.GET("/tracker", controllers.GetTracker)
		auth.GET("/progress", controllers.GetProgress)

		// good deed routes
		auth.GET("/good-deeds/current", controllers.GetCurrentGoodDeed)
		auth.POST("/good-deeds/:deed_index/complete", controllers.CompleteGoodDeed)
		auth.PUT("/good-deeds/:deed_index/reflection", controllers.SaveGoodDeedReflection)

		// quran routes
		auth.GET("/quran/tracks", controllers.GetQuranTracks)
		auth.GET("/quran/tracks/:track_key/progress", controllers.GetQuranProgress)

		// session routes
		auth.POST("/sessions", controllers.StartSession)
		auth.DELETE("/sessions/:client_id", controllers.StopSession)
		auth.GET("/sessions/:client_id/status", controllers.GetSessionStatus)
		auth.GET("/sessions/:client_id/stream", controllers.StreamSession)
		auth.POST("/sessions/:client_id/audio", controllers.RecordSessionAudio)

		//admin only routes
		admin := auth.Group("/")
		admin.Use(middlewares.CheckAdmin)
		{
			// push notification routes
			admin.POST("/notifications/send", controllers.SendPushNotification)
		}
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("Listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info().Str("signal", sig.String()).Msg("Shutting down")

	services.GetSessionManager().Shutdown()
	services.GetReminderService().Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server shutdown failed")
	}

	initializers.DisconnectMQTT()
	if initializers.Redis != nil {
		_ = initializers.Redis.Close()
	}
}
