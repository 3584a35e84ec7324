package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/lp-esports/sports-day-system/handlers"
	"github.com/lp-esports/sports-day-system/middleware"
)

type Handlers struct {
	Auth        *handlers.AuthHandler
	Class       *handlers.ClassHandler
	Sport       *handlers.SportHandler
	Student     *handlers.StudentHandler
	Result      *handlers.ResultHandler
	Leaderboard *handlers.LeaderboardHandler
	Import      *handlers.ImportHandler
	WebSocket   *handlers.WebSocketHandler
}

// SetupRoutes wires the full route table. Read endpoints and score
// submission are public; everything that mutates the roster or corrects
// results requires an admin token. uploadDir is served statically when
// non-empty (local storage backend only).
func SetupRoutes(router *chi.Mux, h Handlers, jwtSecret, uploadDir string) {
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	requireAdmin := middleware.RequireAdmin(jwtSecret)

	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("sports day results API\n"))
	})

	router.Post("/api/admin/login", h.Auth.Login)

	router.Route("/api/classes", func(r chi.Router) {
		r.Get("/", h.Class.GetAllClasses)

		r.Group(func(r chi.Router) {
			r.Use(requireAdmin)
			r.Post("/", h.Class.CreateClass)
			r.Put("/{classID}", h.Class.UpdateClass)
			r.Delete("/{classID}", h.Class.DeleteClass)
		})
	})

	router.Route("/api/sports", func(r chi.Router) {
		r.Get("/", h.Sport.GetAllSports)

		r.Group(func(r chi.Router) {
			r.Use(requireAdmin)
			r.Post("/", h.Sport.CreateSport)
			r.Put("/{sportID}", h.Sport.UpdateSport)
			r.Delete("/{sportID}", h.Sport.DeleteSport)
		})
	})

	router.Route("/api/students", func(r chi.Router) {
		r.Get("/", h.Student.ListStudents)
		r.Get("/search", h.Student.SearchStudent)

		r.Group(func(r chi.Router) {
			r.Use(requireAdmin)
			r.Post("/", h.Student.CreateStudent)
			r.Post("/bulk-import", h.Import.BulkImportStudents)
			r.Put("/{studentID}", h.Student.UpdateStudent)
			r.Delete("/{studentID}", h.Student.DeleteStudent)
		})
	})

	router.Route("/api/results", func(r chi.Router) {
		// Score submission stays open: times are entered at the finish
		// line by volunteers without accounts.
		r.Post("/", h.Result.SubmitResult)

		r.Group(func(r chi.Router) {
			r.Use(requireAdmin)
			r.Put("/{resultID}", h.Result.UpdateResult)
			r.Delete("/{resultID}", h.Result.DeleteResult)
		})
	})

	router.Get("/api/leaderboard", h.Leaderboard.GetLeaderboard)
	router.Get("/api/leaderboard/export", h.Leaderboard.ExportLeaderboard)
	router.Get("/api/showcase", h.Leaderboard.GetShowcase)

	router.Get("/ws/showcase", h.WebSocket.ServeShowcase)

	if uploadDir != "" {
		fileServer := http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadDir)))
		router.Get("/uploads/*", fileServer.ServeHTTP)
	}
}
