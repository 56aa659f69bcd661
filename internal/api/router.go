package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/isdelr/taskdesk-be/internal/api/handlers"
	"github.com/isdelr/taskdesk-be/internal/logger"
	"github.com/isdelr/taskdesk-be/internal/services"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(
	userService services.UserServiceProvider,
	taskService services.TaskServiceProvider,
	accessLog *logger.AccessLog,
	allowedOrigins []string,
) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger)
	r.Use(Recoverer)
	r.Use(accessLog.Handler)

	// Any origin by default; no cookies are issued so credentials stay off
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "HEAD", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader},
		MaxAge:         300,
	}))

	// Initialize handlers
	userHandler := handlers.NewUserHandler(userService)
	taskHandler := handlers.NewTaskHandler(taskService)

	r.Route("/api", func(r chi.Router) {
		r.Post("/signup", userHandler.SignUp)
		r.Post("/signin", userHandler.SignIn)

		r.Get("/tasks", taskHandler.GetAll)
		r.Post("/tasks", taskHandler.Create)
		r.Put("/tasks/{id}", taskHandler.Update)
		r.Delete("/tasks/{id}", taskHandler.Delete)
	})

	return r
}
