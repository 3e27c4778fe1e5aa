package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/stafftrack/stafftrack-backend-go/internal/config"
)

func NewRouter(
	appConfig config.AppConfig,
	companyHandler CompanyHandler,
	employeeHandler EmployeeHandler,
	attendanceHandler AttendanceHandler,
) *chi.Mux {
	r := chi.NewRouter()

	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "stafftrack"),
		slog.String("version", "v1.0.0"),
		slog.String("env", appConfig.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/companies", func(r chi.Router) {
			r.Get("/", companyHandler.List)
			r.Post("/", companyHandler.Create)

			r.Route("/{companyID}", func(r chi.Router) {
				r.Get("/", companyHandler.GetByID)
				r.Put("/", companyHandler.Update)
				r.Delete("/", companyHandler.Delete)

				r.Route("/employees", func(r chi.Router) {
					r.Get("/", employeeHandler.ListByCompany)
					r.Post("/", employeeHandler.Create)
				})
			})
		})

		r.Route("/employees/{employeeID}", func(r chi.Router) {
			r.Get("/", employeeHandler.GetByID)
			r.Put("/", employeeHandler.Update)
			r.Delete("/", employeeHandler.Delete)

			r.Route("/attendance", func(r chi.Router) {
				r.Get("/", attendanceHandler.ListByEmployee)
				r.Post("/", attendanceHandler.Create)
				r.Post("/check-in", attendanceHandler.CheckIn)
			})
		})

		r.Route("/attendance", func(r chi.Router) {
			r.Get("/company/{companyID}", attendanceHandler.ListByCompany)

			r.Route("/{attendanceID}", func(r chi.Router) {
				r.Get("/", attendanceHandler.GetByID)
				r.Put("/", attendanceHandler.Update)
				r.Delete("/", attendanceHandler.Delete)
				r.Put("/checkout", attendanceHandler.CheckOut)
			})
		})
	})

	return r
}
