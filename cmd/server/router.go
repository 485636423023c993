package main

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/lunarhall/taskdeck-api/internal/api"
	apiMiddleware "github.com/lunarhall/taskdeck-api/internal/api/middleware"
	"github.com/lunarhall/taskdeck-api/static"
)

// setupRouter creates and configures the application router with all
// routes and middleware. It accepts the application dependencies to
// create handlers and register routes. Returns the configured router.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))

	taskHandler := api.NewTaskHandler(app.taskService, app.logger)

	// Register API routes. CORS applies to the API only; the bundled UI
	// is same-origin.
	r.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: app.config.Server.CORSAllowedOrigins,
			AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))

		r.Get("/tasks", taskHandler.ListTasks)
		r.Post("/tasks", taskHandler.CreateTask)
		r.Get("/tasks/{id}", taskHandler.GetTask)
		r.Put("/tasks/{id}", taskHandler.UpdateTaskStatus)
		r.Delete("/tasks/{id}", taskHandler.DeleteTask)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	// Serve the embedded browser UI at the root.
	r.Handle("/*", http.FileServer(http.FS(app.staticFS())))

	return r
}

// staticFS returns the embedded UI filesystem.
func (app *application) staticFS() fs.FS {
	return static.EmbeddedFS()
}
