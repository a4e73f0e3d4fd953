package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"flatguide/internal/analytics"
	"flatguide/internal/clock"
	"flatguide/internal/config"
	"flatguide/internal/database"
	"flatguide/internal/guestconfig"
	"flatguide/internal/middleware"
	"flatguide/internal/modules/admin"
	"flatguide/internal/modules/chat"
	"flatguide/internal/modules/guide"
	jwtsvc "flatguide/internal/pkg/jwt"
	"flatguide/internal/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := guestconfig.AutoMigrate(db); err != nil {
		log.Fatal(err)
	}

	var kv store.KV
	if rdb := store.NewRedisClient(); rdb != nil {
		kv = store.NewRedisStore(rdb)
	} else {
		log.Println("redis unavailable, falling back to in-memory client state")
		kv = store.NewMemoryStore()
	}

	clk := clock.NewAuthoritative(cfg.TimeURL, clock.WithTimeout(cfg.TimeFetchTimeout))
	events := analytics.NewPublisher(cfg.AMQPURL)
	repo := guestconfig.NewRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)

	guideService := guide.NewService(repo, clk, kv, events, cfg.GlobalAlertText)
	guideHandler := guide.NewHandler(guideService)

	adminService := admin.NewService(repo, j, cfg.AdminUsername, cfg.AdminPasswordHash)
	adminHandler := admin.NewHandler(adminService)

	chatHandler := chat.NewHandler(chat.NewHub(), repo)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	api := r.Group("/api")
	{
		// public
		guideHandler.RegisterRoutes(api)
		chatHandler.RegisterRoutes(api)
		adminHandler.RegisterPublicRoutes(api)

		// protected (operator endpoints)
		protected := api.Group("/")
		protected.Use(middleware.JWTAuth(j))
		{
			adminHandler.RegisterProtectedRoutes(protected)
		}
	}

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
