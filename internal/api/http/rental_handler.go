package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"memberclub-backend/internal/domain"
	"memberclub-backend/internal/service"
	"memberclub-backend/internal/storage"
)

// RentalHandler serves the rental ledger
type RentalHandler struct {
	ledger  service.RentalLedger
	items   service.InventoryService
	revenue service.RevenueService
}

func NewRentalHandler(ledger service.RentalLedger, items service.InventoryService, revenue service.RevenueService) *RentalHandler {
	return &RentalHandler{ledger: ledger, items: items, revenue: revenue}
}

type createRentalRequest struct {
	MemberID int    `json:"member_id"`
	ItemID   string `json:"item_id"`
	Duration int    `json:"duration"`
	Period   string `json:"period"`
}

type rentalResponse struct {
	RentalID           string              `json:"rental_id"`
	MemberID           int                 `json:"member_id"`
	ItemID             string              `json:"item_id"`
	StartDate          string              `json:"start_date"`
	ExpectedReturnDate *string             `json:"expected_return_date"`
	EndDate            *string             `json:"end_date"`
	TotalCost          string              `json:"total_cost"`
	Status             domain.RentalStatus `json:"status"`
	Late               bool                `json:"late"`
	HoursLate          int64               `json:"hours_late"`
	PenaltyFee         string              `json:"penalty_fee"`
	DurationDays       *int64              `json:"duration_days,omitempty"`
}

func (h *RentalHandler) toResponse(r *domain.Rental, now time.Time) rentalResponse {
	resp := rentalResponse{
		RentalID:   r.ID,
		MemberID:   r.MemberID,
		ItemID:     r.ItemID,
		StartDate:  storage.FormatTime(r.StartDate),
		TotalCost:  r.TotalCost.StringFixed(2),
		Status:     r.Status,
		Late:       r.IsLate(now),
		HoursLate:  r.HoursLate(now),
		PenaltyFee: "0.00",
	}
	if r.ExpectedReturnDate != nil {
		s := storage.FormatTime(*r.ExpectedReturnDate)
		resp.ExpectedReturnDate = &s
	}
	if r.EndDate != nil {
		s := storage.FormatTime(*r.EndDate)
		resp.EndDate = &s
		days := r.DurationInDays()
		resp.DurationDays = &days
	}
	if resp.Late {
		item, _ := h.items.GetItem(r.ItemID)
		resp.PenaltyFee = r.PenaltyFee(item, now).StringFixed(2)
	}
	return resp
}

// HandleCreate rents an item to a member
func (h *RentalHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRentalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body: "+err.Error())
		return
	}
	period, ok := domain.ParseRentalPeriod(req.Period)
	if !ok {
		badRequest(w, "period must be HOURLY or DAILY")
		return
	}

	rental, err := h.ledger.RentItem(r.Context(), req.MemberID, req.ItemID, req.Duration, period)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, h.toResponse(rental, h.ledger.Now()))
}

// HandleReturn completes an active rental
func (h *RentalHandler) HandleReturn(w http.ResponseWriter, r *http.Request) {
	h.close(w, r, h.ledger.ReturnItem)
}

// HandleCancel cancels an active rental
func (h *RentalHandler) HandleCancel(w http.ResponseWriter, r *http.Request) {
	h.close(w, r, h.ledger.CancelRental)
}

func (h *RentalHandler) close(w http.ResponseWriter, r *http.Request, op func(context.Context, string) error) {
	id := mux.Vars(r)["id"]
	if err := op(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	rental, err := h.ledger.GetRental(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.toResponse(rental, h.ledger.Now()))
}

// HandleGet returns one rental
func (h *RentalHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	rental, err := h.ledger.GetRental(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.toResponse(rental, h.ledger.Now()))
}

// HandleList returns all rentals, or a filtered subset with ?status= or
// ?member_id=
func (h *RentalHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	var rentals []*domain.Rental
	switch status := strings.ToUpper(r.URL.Query().Get("status")); status {
	case "":
		rentals = h.ledger.AllRentals()
	case string(domain.RentalStatusActive):
		rentals = h.ledger.ActiveRentals()
	case string(domain.RentalStatusCompleted), string(domain.RentalStatusCancelled):
		for _, rental := range h.ledger.AllRentals() {
			if string(rental.Status) == status {
				rentals = append(rentals, rental)
			}
		}
	default:
		badRequest(w, "unknown status filter")
		return
	}

	now := h.ledger.Now()
	out := make([]rentalResponse, 0, len(rentals))
	for _, rental := range rentals {
		out = append(out, h.toResponse(rental, now))
	}
	writeJSON(w, http.StatusOK, out)
}

// HandleLate returns active rentals past their expected return
func (h *RentalHandler) HandleLate(w http.ResponseWriter, r *http.Request) {
	now := h.ledger.Now()
	late := h.ledger.LateRentals(now)
	out := make([]rentalResponse, 0, len(late))
	for _, lr := range late {
		out = append(out, h.toResponse(lr.Rental, now))
	}
	writeJSON(w, http.StatusOK, out)
}

// HandleRevenue returns the revenue summary
func (h *RentalHandler) HandleRevenue(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.revenue.Summary(h.ledger.Now()))
}
