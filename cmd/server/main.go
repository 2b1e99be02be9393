package main

import (
	"context"
	"log"
	"net/http"

	_ "campusnotes/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"campusnotes/internal/auth"
	"campusnotes/internal/cache"
	"campusnotes/internal/config"
	"campusnotes/internal/db"
	"campusnotes/internal/handler"
	"campusnotes/internal/mailer"
	"campusnotes/internal/model"
	"campusnotes/internal/repository"
	"campusnotes/internal/router"
	"campusnotes/internal/service"
	"campusnotes/internal/storage"
)

// @title CampusNotes API
// @version 1.0
// @description Student resource-sharing API: notes and previous-year papers behind OTP-verified college accounts.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Trade{},
		&model.Subject{},
		&model.Note{},
		&model.PYQ{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	tradeRepo := repository.NewTradeRepository(gormDB)
	subjectRepo := repository.NewSubjectRepository(gormDB)
	noteRepo := repository.NewNoteRepository(gormDB)
	pyqRepo := repository.NewPYQRepository(gormDB)

	// Initialize auth components. The revocation list and session store are
	// built here and injected, never reached for as globals.
	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.TokenTTL)
	sessions := auth.NewMemorySessionStore(cfg.SessionTTL)

	var revocations auth.RevocationList
	switch cfg.RevocationBackend {
	case "redis":
		revocations = auth.NewRedisRevocationList(cacheClient, cfg.TokenTTL)
	default:
		// In-memory: unbounded until restart, and a restart un-revokes
		// logged-out tokens for their remaining lifetime. Documented
		// limitation of the single-instance deployment.
		revocations = auth.NewMemoryRevocationList()
	}

	mail := mailer.NewBrevoMailer(cfg.BrevoAPIURL, cfg.BrevoAPIKey, cfg.MailFrom, cfg.MailFromName)

	blobs, err := storage.NewS3Store(context.Background(), storage.Options{
		Endpoint:  cfg.S3Endpoint,
		Region:    cfg.S3Region,
		Bucket:    cfg.S3Bucket,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
		PublicURL: cfg.S3PublicURL,
	})
	if err != nil {
		log.Fatalf("blob storage init: %v", err)
	}

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, revocations, sessions, mail, cfg.OTPTTL)
	tradeService := service.NewTradeService(tradeRepo, cacheClient)
	subjectService := service.NewSubjectService(subjectRepo, tradeRepo, cacheClient)
	noteService := service.NewNoteService(noteRepo, tradeRepo, subjectRepo, blobs, cfg.AdminDeleteCode)
	pyqService := service.NewPYQService(pyqRepo, tradeRepo, subjectRepo, blobs, cfg.AdminDeleteCode)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, cfg.SessionSecret, cfg.SessionTTL)
	tradeHandler := handler.NewTradeHandler(tradeService)
	subjectHandler := handler.NewSubjectHandler(subjectService)
	noteHandler := handler.NewNoteHandler(noteService)
	pyqHandler := handler.NewPYQHandler(pyqService)

	// Register routes
	router.Register(
		e,
		cfg,
		sessions,
		jwtService,
		revocations,
		authHandler,
		tradeHandler,
		subjectHandler,
		noteHandler,
		pyqHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
