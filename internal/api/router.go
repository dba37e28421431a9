package api

import (
	"time"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/echoprometheus"
	echosession "github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shortnote/note-system/internal/api/handler"
	"github.com/shortnote/note-system/internal/api/middleware"
	"github.com/shortnote/note-system/internal/core/service"
	"github.com/shortnote/note-system/internal/infrastructure/config"
	mongodb "github.com/shortnote/note-system/internal/infrastructure/db/mongo"
	redisdb "github.com/shortnote/note-system/internal/infrastructure/db/redis"
	appsession "github.com/shortnote/note-system/internal/session"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Renderer = handler.NewRenderer()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("noteapp"))
	e.Use(echosession.Middleware(sessions.NewCookieStore([]byte(cfg.SessionSecret))))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	noteRepo := mongodb.NewNoteRepository(db)
	userService := service.NewUserService(userRepo, service.NewCredentials(), log)
	noteService := service.NewNoteService(noteRepo, userRepo, log)
	sessionManager := appsession.NewManager(redisdb.NewSessionStore(rdb), cfg.SessionTTL)

	authHandler := handler.NewAuthHandler(userService, sessionManager)
	noteHandler := handler.NewNoteHandler(noteService, sessionManager)
	apiHandler := handler.NewAPIHandler(userService, noteService, cfg.JWTSecret, 24*time.Hour)

	// --- Browser surface ---
	e.GET("/", authHandler.Home)
	e.GET("/register", authHandler.ShowRegister)
	e.POST("/register", authHandler.Register)
	e.GET("/login", authHandler.ShowLogin)
	e.POST("/login", authHandler.Login)
	e.GET("/logout", authHandler.Logout)

	notes := e.Group("/note", middleware.RequireUser(sessionManager))
	notes.GET("/new", noteHandler.ShowNewNote)
	notes.POST("/new", noteHandler.CreateNote)
	notes.GET("/content/:id", noteHandler.NoteContent)
	notes.GET("/:box", noteHandler.ListBox)

	// --- JSON API ---
	e.POST("/api/login", apiHandler.Login)

	apiNotes := e.Group("/api/notes", middleware.BearerAuth(cfg.JWTSecret))
	apiNotes.POST("", apiHandler.SendNote)
	apiNotes.GET("/content/:id", apiHandler.NoteContent)
	apiNotes.GET("/:box", apiHandler.ListBox)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
