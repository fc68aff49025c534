package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"collablearn/internal/auth"
	"collablearn/internal/config"
	"collablearn/internal/db"
	"collablearn/internal/handlers"
	"collablearn/internal/middleware"
	"collablearn/internal/observability"
	"collablearn/internal/rabbitmq"
	"collablearn/internal/repositories"
	"collablearn/internal/storage"
	"collablearn/internal/telemetry"
	"collablearn/internal/ws"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	database, err := db.Connect(cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("failed to connect to db: %v", err)
	}
	defer database.Close()

	shutdownTracing := observability.InitTracing(ctx, cfg.OTLPEndpoint, cfg.Environment)
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			log.Printf("tracer shutdown: %v", err)
		}
	}()

	auditPublisher := rabbitmq.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange)
	defer auditPublisher.Close()
	audit := telemetry.NewAuditEmitter(auditPublisher, "audit.collablearn", "collablearn", cfg.Environment)

	if cfg.AMQPURL != "" {
		eventPublisher, err := observability.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			log.Printf("amqp event publisher disabled: %v", err)
		} else {
			observability.SetPublisher(eventPublisher)
			defer eventPublisher.Close()
		}
	}

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer rdb.Close()
	}

	var files storage.FileStore
	if cfg.S3Bucket != "" {
		files, err = storage.NewS3Store(ctx, storage.S3Options{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
		if err != nil {
			log.Fatalf("failed to init s3 store: %v", err)
		}
	} else {
		files, err = storage.NewLocalStore(cfg.UploadDir)
		if err != nil {
			log.Fatalf("failed to init upload dir: %v", err)
		}
	}

	tokens := auth.NewManager(cfg.JWTSecret)
	dev := cfg.IsDevelopment()

	userRepo := repositories.NewUserRepo(database)
	skillRepo := repositories.NewSkillRepo(database)
	postRepo := repositories.NewPostRepo(database)
	messageRepo := repositories.NewMessageRepo(database)
	bookingRepo := repositories.NewBookingRepo(database)
	settingsRepo := repositories.NewSettingsRepo(database)

	hub := ws.NewHub()
	gateway := ws.NewGateway(hub, messageRepo, tokens)

	authHandler := handlers.NewAuthHandler(userRepo, settingsRepo, tokens, audit, dev)
	usersHandler := handlers.NewUsersHandler(userRepo, dev)
	skillsHandler := handlers.NewSkillsHandler(skillRepo, dev)
	postsHandler := handlers.NewPostsHandler(postRepo, audit, dev)
	messagesHandler := handlers.NewMessagesHandler(messageRepo, dev)
	bookingsHandler := handlers.NewBookingsHandler(bookingRepo, audit, dev)
	documentsHandler := handlers.NewDocumentsHandler(bookingRepo, settingsRepo, files, dev)
	adminHandler := handlers.NewAdminHandler(userRepo, postRepo, skillRepo, bookingRepo, settingsRepo, audit, dev)

	if !dev {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware("collablearn"))
	router.Use(observability.HTTPMetricsMiddleware())

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	loginLimiter := middleware.NewLoginRateLimiter(rdb, 10, time.Minute)
	router.POST("/auth/register", loginLimiter.Handler(), authHandler.Register)
	router.POST("/auth/login", loginLimiter.Handler(), authHandler.Login)

	authed := router.Group("/")
	authed.Use(middleware.AuthMiddleware(tokens))
	authed.Use(middleware.MaintenanceGate(settingsRepo))

	authed.GET("/users", usersHandler.ListUsers)
	authed.GET("/users/:id", usersHandler.GetUser)
	authed.PUT("/users/me", usersHandler.UpdateMe)

	authed.POST("/skills", skillsHandler.CreateSkill)
	authed.GET("/skills", skillsHandler.ListSkills)
	authed.GET("/skills/:id", skillsHandler.GetSkill)
	authed.DELETE("/skills/:id", skillsHandler.DeleteSkill)

	authed.POST("/posts", postsHandler.CreatePost)
	authed.GET("/posts", postsHandler.ListPosts)
	authed.GET("/posts/:id", postsHandler.GetPost)
	authed.DELETE("/posts/:id", postsHandler.DeletePost)

	authed.GET("/chats", messagesHandler.ListChats)
	authed.GET("/chats/:chat_id/messages", messagesHandler.GetChatMessages)

	authed.POST("/booking", bookingsHandler.CreateBooking)
	authed.GET("/bookings", bookingsHandler.ListMyBookings)
	authed.GET("/booking/:id", bookingsHandler.GetBooking)
	authed.PATCH("/booking/:id", bookingsHandler.UpdateStatus)
	authed.POST("/booking/:id/complete", bookingsHandler.Complete)
	authed.POST("/booking/:id/complete-session", bookingsHandler.CompleteSession)
	authed.POST("/booking/complete-course", bookingsHandler.CompleteCourse)
	authed.POST("/booking/:id/upload-document", documentsHandler.Upload)
	authed.GET("/booking/:id/documents", documentsHandler.List)
	authed.DELETE("/booking/:id/delete-document/:doc_id", documentsHandler.Delete)

	admin := router.Group("/admin")
	admin.Use(middleware.AuthMiddleware(tokens), middleware.AdminOnly())
	admin.GET("/dashboard", adminHandler.Dashboard)
	admin.GET("/users", adminHandler.ListUsers)
	admin.DELETE("/users/:id", adminHandler.DeleteUser)
	admin.DELETE("/posts/:id", adminHandler.DeletePost)
	admin.GET("/settings", adminHandler.GetSettings)
	admin.PUT("/settings", adminHandler.UpdateSettings)

	router.GET("/ws", gateway.Handle)

	handlers.RegisterDebugRoutes(router, audit, cfg.DebugRoutes)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("listening on :%s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
}
