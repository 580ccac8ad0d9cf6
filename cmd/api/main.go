package main

import (
	"fmt"
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/pickprod/pickprod-backend-go/internal/config"
	appHTTP "github.com/pickprod/pickprod-backend-go/internal/handler/http"
	"github.com/pickprod/pickprod-backend-go/internal/pkg/database"
	"github.com/pickprod/pickprod-backend-go/internal/repository/postgresql"
	closingService "github.com/pickprod/pickprod-backend-go/internal/service/closing"
	discountService "github.com/pickprod/pickprod-backend-go/internal/service/discount"
	ingestService "github.com/pickprod/pickprod-backend-go/internal/service/ingest"
	"github.com/pickprod/pickprod-backend-go/internal/service/master"
	metricsService "github.com/pickprod/pickprod-backend-go/internal/service/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	branchRepo := postgresql.NewBranchRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	productionRepo := postgresql.NewProductionRepository(db)
	rulesRepo := postgresql.NewRulesRepository(db)
	discountRepo := postgresql.NewDiscountRepository(db)
	closingRepo := postgresql.NewClosingRepository(db)

	rulesSvc := master.NewRulesService(rulesRepo)
	branchSvc := master.NewBranchService(branchRepo)
	employeeSvc := master.NewEmployeeService(employeeRepo, branchRepo)
	ingestSvc := ingestService.NewIngestService(productionRepo, branchRepo)
	metricsSvc := metricsService.NewMetricsService(productionRepo, employeeRepo, rulesSvc)
	discountSvc := discountService.NewDiscountService(discountRepo, employeeRepo, rulesSvc)
	closingSvc := closingService.NewClosingService(closingRepo, discountRepo, employeeRepo, metricsSvc, rulesSvc)

	tokenAuth := jwtauth.New("HS256", []byte(cfg.JWT.Secret), nil)

	router := appHTTP.NewRouter(appHTTP.RouterDeps{
		JWTAuth:    tokenAuth,
		Production: appHTTP.NewProductionHandler(ingestSvc, metricsSvc),
		Closing:    appHTTP.NewClosingHandler(closingSvc),
		Rules:      appHTTP.NewRulesHandler(rulesSvc),
		Valuation:  appHTTP.NewValuationHandler(rulesSvc),
		Discount:   appHTTP.NewDiscountHandler(discountSvc),
		Branch:     appHTTP.NewBranchHandler(branchSvc),
		Employee:   appHTTP.NewEmployeeHandler(employeeSvc),

		FrontendURL: cfg.App.FrontendURL,
		Env:         cfg.App.Env,
	})

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
