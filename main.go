package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"main/handler"
	"main/middleware"
	"main/repository"
	"main/services"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/joho/godotenv"
)

func init() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil && os.Getenv("GO_ENV") != "test" {
		log.Printf("No .env file loaded: %v", err)
	}

	// Check required environment variables
	requiredEnvVars := []string{
		"MONGO_URI",
		"MONGO_DB",
		"JWT_SECRET_KEY",
		"JWT_EXPIRATION_TIME",
		"PORT",
	}

	for _, envVar := range requiredEnvVars {
		if os.Getenv(envVar) == "" && os.Getenv("GO_ENV") != "test" {
			log.Fatalf("Required environment variable %s is not set", envVar)
		}
	}

	utils.InitValidator()
	utils.InitJWT()
	if os.Getenv("GO_ENV") != "test" {
		utils.InitMongoClient()
	}
}

func setupRouter(registry *services.PresenceRegistry, presenceCache *services.PresenceCache) *gin.Engine {
	router := gin.Default()

	// Initialize repositories
	notesRepo := repository.GetNotesRepo(utils.MongoClient)
	todosRepo := repository.GetTodosRepo(utils.MongoClient)

	// Initialize services
	notifier := services.NewPushNotifier(registry)
	notesService := &usecase.NotesService{
		NotesRepo: notesRepo,
		Notifier:  notifier,
	}
	todoService := &usecase.TodoService{
		TodosRepo: todosRepo,
	}

	// Initialize handlers
	notesHandler := handler.NewNoteHandler(notesService)
	todosHandler := handler.NewTodoHandler(todoService)
	wsHandler := handler.NewWSHandler(registry, presenceCache)
	presenceHandler := handler.NewPresenceHandler(registry, presenceCache)
	statsHandler := handler.NewStatsHandler(registry)

	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.MetricsMiddleware())

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Protected routes (authentication required)
	protected := router.Group("/api")
	protected.Use(middleware.AuthMiddleware())
	{
		notes := protected.Group("/notes")
		{
			notes.GET("/:friendId", notesHandler.GetPairNotes)
			notes.POST("/:friendId", notesHandler.CreateNote)
			notes.PATCH("/:noteId", notesHandler.UpdateNote)
			notes.DELETE("/:noteId", notesHandler.DeleteNote)
		}

		todos := protected.Group("/todos")
		{
			todos.GET("", todosHandler.GetUserTodos)
			todos.POST("", todosHandler.CreateTodo)
			todos.PATCH("/:id", todosHandler.UpdateTodo)
			todos.PATCH("/:id/toggle", todosHandler.ToggleTodo)
			todos.DELETE("/:id", todosHandler.DeleteTodo)
		}

		protected.GET("/ws", wsHandler.Connect)
		protected.GET("/presence/:userId", presenceHandler.GetPresence)
		protected.GET("/stats", middleware.CacheControlMiddleware("5"), statsHandler.GetSystemStats)
	}

	return router
}

func main() {
	// Set up database indexes
	if err := repository.SetupIndexes(utils.MongoClient.Database(os.Getenv("MONGO_DB"))); err != nil {
		log.Fatalf("Failed to setup indexes: %v", err)
	}

	// Presence registry owned by the process, injected where needed
	registry := services.NewPresenceRegistry()

	var presenceCache *services.PresenceCache
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		cache, err := services.NewPresenceCache(redisURL)
		if err != nil {
			log.Fatalf("Failed to initialize presence cache: %v", err)
		}
		presenceCache = cache
	} else {
		log.Println("REDIS_URL not set, presence snapshots disabled")
	}

	router := setupRouter(registry, presenceCache)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", port),
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)
	sig := <-signalChan
	log.Printf("Caught signal %s, shutting down", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	if err := utils.MongoClient.Disconnect(ctx); err != nil {
		log.Printf("MongoDB disconnect error: %v", err)
	}

	log.Println("Server shutdown complete")
}
