// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/lotto-hub/cliparse"
	"github.com/danielhkuo/lotto-hub/handlers"
	"github.com/danielhkuo/lotto-hub/hub"
	"github.com/danielhkuo/lotto-hub/middleware"
	"github.com/danielhkuo/lotto-hub/models"
)

func NewRouter(svc *hub.Service, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	catalogHandler := handlers.NewCatalogHandler(svc, cfg)
	salesHandler := handlers.NewSalesHandler(svc, cfg)
	verifyHandler := handlers.NewVerifyHandler(svc, cfg)
	resultsHandler := handlers.NewResultsHandler(svc, cfg)
	winnersHandler := handlers.NewWinnersHandler(svc, cfg)
	customizationHandler := handlers.NewCustomizationHandler(svc, cfg)

	admin := middleware.RequireRole(cfg.TokenSecret, models.RoleAdmin)
	staff := middleware.RequireRole(cfg.TokenSecret, models.RoleAdmin, models.RoleSeller)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Verification (public lookup, recording needs a seller)
	mux.HandleFunc("GET /verify", middleware.WithLogging(verifyHandler.Verify))
	mux.HandleFunc("POST /verify/sales", middleware.WithLogging(staff(verifyHandler.RecordSale)))

	// Catalog
	mux.HandleFunc("GET /lotteries", middleware.WithLogging(catalogHandler.ListLotteries))
	mux.HandleFunc("GET /lotteries/{id}", middleware.WithLogging(catalogHandler.GetLottery))
	mux.HandleFunc("POST /lotteries", middleware.WithLogging(admin(catalogHandler.CreateLottery)))
	mux.HandleFunc("PUT /lotteries/{id}", middleware.WithLogging(admin(catalogHandler.UpdateLottery)))
	mux.HandleFunc("DELETE /lotteries/{id}", middleware.WithLogging(admin(catalogHandler.DeleteLottery)))

	mux.HandleFunc("GET /special-plays", middleware.WithLogging(catalogHandler.ListSpecialPlays))
	mux.HandleFunc("GET /special-plays/{id}", middleware.WithLogging(catalogHandler.GetSpecialPlay))
	mux.HandleFunc("POST /special-plays", middleware.WithLogging(admin(catalogHandler.CreateSpecialPlay)))
	mux.HandleFunc("PUT /special-plays/{id}", middleware.WithLogging(admin(catalogHandler.UpdateSpecialPlay)))
	mux.HandleFunc("DELETE /special-plays/{id}", middleware.WithLogging(admin(catalogHandler.DeleteSpecialPlay)))

	// Sales ledger
	mux.HandleFunc("POST /sales", middleware.WithLogging(staff(salesHandler.CreateSale)))
	mux.HandleFunc("GET /sales", middleware.WithLogging(staff(salesHandler.ListSales)))
	mux.HandleFunc("GET /sales/{id}", middleware.WithLogging(staff(salesHandler.GetSale)))
	mux.HandleFunc("GET /sales/{id}/receipt", middleware.WithLogging(staff(salesHandler.GetReceipt)))

	// Results register
	mux.HandleFunc("GET /results", middleware.WithLogging(resultsHandler.ListResults))
	mux.HandleFunc("POST /results", middleware.WithLogging(admin(resultsHandler.AddResult)))
	mux.HandleFunc("PUT /results/{date}/{lottery_id}/{draw_time}", middleware.WithLogging(admin(resultsHandler.UpdateResult)))
	mux.HandleFunc("DELETE /results/{date}/{lottery_id}/{draw_time}", middleware.WithLogging(admin(resultsHandler.DeleteResult)))

	// Winners
	mux.HandleFunc("GET /winners", middleware.WithLogging(staff(winnersHandler.ListWinners)))
	mux.HandleFunc("POST /winners/{id}/pay", middleware.WithLogging(admin(winnersHandler.MarkPaid)))

	// App customization
	mux.HandleFunc("GET /customization", middleware.WithLogging(customizationHandler.GetCustomization))
	mux.HandleFunc("PUT /customization", middleware.WithLogging(admin(customizationHandler.UpdateCustomization)))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("lotto-hub API v1"))
	})

	return mux
}
