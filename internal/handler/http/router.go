package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/pickprod/pickprod-backend-go/internal/handler/http/middleware"
)

type RouterDeps struct {
	JWTAuth    *jwtauth.JWTAuth
	Production ProductionHandler
	Closing    ClosingHandler
	Rules      RulesHandler
	Valuation  ValuationHandler
	Discount   DiscountHandler
	Branch     BranchHandler
	Employee   EmployeeHandler

	FrontendURL string
	Env         string
}

func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "pickprod"),
		slog.String("version", "v1.0.0"),
		slog.String("env", deps.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{deps.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(deps.JWTAuth))
			r.Use(middleware.AuthRequired(deps.JWTAuth))

			r.Route("/production", func(r chi.Router) {
				r.Post("/uploads", deps.Production.Upload)
				r.Get("/collections", deps.Production.CollectionMetrics)
				r.Get("/employees", deps.Production.EmployeeProduction)
				r.Route("/lines", func(r chi.Router) {
					r.Get("/", deps.Production.ListLines)
					r.Patch("/{id}/errors", deps.Production.UpdateLineErrors)
					r.Patch("/{id}/assignee", deps.Production.AssignEmployee)
				})
			})

			r.Route("/closings", func(r chi.Router) {
				r.Post("/run", deps.Closing.Run)
				r.Get("/", deps.Closing.ListRecords)
				r.Get("/report", deps.Closing.Report)
				r.Get("/{id}", deps.Closing.GetRecord)
			})

			r.Route("/rules", func(r chi.Router) {
				r.Get("/", deps.Rules.GetRules)
				r.Put("/rates", deps.Rules.UpdateRateTiers)
				r.Put("/weights", deps.Rules.UpdateMetricWeights)
				r.Put("/discounts", deps.Rules.UpdateDiscountRules)
				r.Put("/thresholds", deps.Rules.UpdateThresholdRules)
				r.Put("/targets", deps.Rules.UpdateTargets)
				r.Put("/pallet", deps.Rules.UpdatePalletRule)
			})

			r.Post("/valuations/preview", deps.Valuation.Preview)

			r.Route("/discounts", func(r chi.Router) {
				r.Post("/", deps.Discount.Create)
				r.Get("/", deps.Discount.List)
				r.Post("/preview", deps.Discount.Preview)
				r.Get("/{id}", deps.Discount.GetByID)
				r.Put("/{id}", deps.Discount.Update)
				r.Delete("/{id}", deps.Discount.Delete)
			})

			r.Route("/branches", func(r chi.Router) {
				r.Post("/", deps.Branch.Create)
				r.Get("/", deps.Branch.List)
				r.Get("/{id}", deps.Branch.GetByID)
				r.Put("/{id}", deps.Branch.Update)
				r.Delete("/{id}", deps.Branch.Delete)
			})

			r.Route("/employees", func(r chi.Router) {
				r.Post("/", deps.Employee.Create)
				r.Get("/", deps.Employee.List)
				r.Get("/{id}", deps.Employee.GetByID)
				r.Put("/{id}", deps.Employee.Update)
				r.Delete("/{id}", deps.Employee.Delete)
			})
		})
	})
	return r
}
