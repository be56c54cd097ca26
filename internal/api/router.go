package api

import (
	"net/http"
	"time"

	"taskdeck/internal/api/handler"
	apiMiddleware "taskdeck/internal/api/middleware"
	"taskdeck/internal/app/service"
	"taskdeck/internal/common"
	"taskdeck/internal/common/security"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	tokenAuth *security.TokenAuth,
	authService *service.AuthService,
	taskService *service.TaskService,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(apiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	// Verifies the bearer token from "Authorization: Bearer <token>" and puts
	// claims in context; enforcement happens in the Authenticator below.
	r.Use(jwtauth.Verifier(tokenAuth.JWTAuth()))

	// Liveness check
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Task API is up and running"))
	})

	// Auth routes (public)
	authHandler := handler.NewAuthHandler(authService)
	authHandler.RegisterRoutes(r)

	// Task routes (authenticated)
	taskHandler := handler.NewTaskHandler(taskService)
	r.Route("/tasks", func(tr chi.Router) {
		tr.Use(apiMiddleware.Authenticator)
		taskHandler.RegisterRoutes(tr)
	})

	// Anything unmatched, including a wrong method on a known path, answers
	// the same JSON 404.
	notFound := func(w http.ResponseWriter, r *http.Request) {
		common.RespondWithError(w, http.StatusNotFound, "Route not found")
	}
	r.NotFound(notFound)
	r.MethodNotAllowed(notFound)

	return r
}
