package http

import (
	"github.com/gorilla/mux"

	"memberclub-backend/internal/config"
	"memberclub-backend/internal/system"
)

// NewRouter builds the /api/v1 router for a running system
func NewRouter(sys *system.ClubSystem, cfg config.APIConfig) *mux.Router {
	router := mux.NewRouter()
	RegisterRoutes(router, sys, cfg)
	return router
}

// RegisterRoutes registers the club HTTP endpoints
func RegisterRoutes(router *mux.Router, sys *system.ClubSystem, cfg config.APIConfig) {
	api := router.PathPrefix("/api/v1").Subrouter()

	rentals := NewRentalHandler(sys.Ledger, sys.Inventory, sys.Revenue)
	api.HandleFunc("/rentals", rentals.HandleCreate).Methods("POST")
	api.HandleFunc("/rentals", rentals.HandleList).Methods("GET")
	api.HandleFunc("/rentals/late", rentals.HandleLate).Methods("GET")
	api.HandleFunc("/rentals/{id}", rentals.HandleGet).Methods("GET")
	api.HandleFunc("/rentals/{id}/return", rentals.HandleReturn).Methods("POST")
	api.HandleFunc("/rentals/{id}/cancel", rentals.HandleCancel).Methods("POST")
	api.HandleFunc("/revenue", rentals.HandleRevenue).Methods("GET")

	club := NewClubHandler(sys.Inventory, sys.Members)
	api.HandleFunc("/items", club.HandleListItems).Methods("GET")
	api.HandleFunc("/items/{id}", club.HandleGetItem).Methods("GET")
	api.HandleFunc("/members", club.HandleListMembers).Methods("GET")
	api.HandleFunc("/members", club.HandleCreateMember).Methods("POST")
	api.HandleFunc("/members/{id}", club.HandleGetMember).Methods("GET")

	admin := NewAdminHandler(sys, cfg.ReloadPerMinute, cfg.ReloadBurst)
	api.HandleFunc("/admin/save", admin.HandleSave).Methods("POST")
	api.HandleFunc("/admin/reload", admin.HandleReload).Methods("POST")
	api.HandleFunc("/status", admin.HandleStatus).Methods("GET")
}
