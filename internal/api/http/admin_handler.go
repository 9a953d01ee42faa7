package http

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"memberclub-backend/internal/storage"
	"memberclub-backend/internal/system"
)

// Admin is the maintenance surface of the running system
type Admin interface {
	SaveAll(ctx context.Context) storage.SaveReport
	Reload(ctx context.Context) (system.LoadReport, error)
	Status() system.Status
}

// AdminHandler serves save, reload and status
type AdminHandler struct {
	admin         Admin
	reloadLimiter *rate.Limiter
}

// NewAdminHandler allows perMinute reloads with the given burst
func NewAdminHandler(admin Admin, perMinute, burst int) *AdminHandler {
	if perMinute <= 0 {
		perMinute = 1
	}
	return &AdminHandler{
		admin:         admin,
		reloadLimiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), burst),
	}
}

type saveResultResponse struct {
	Collection storage.Collection `json:"collection"`
	Records    int                `json:"records"`
	Error      string             `json:"error,omitempty"`
}

type saveResponse struct {
	BatchID    string               `json:"batch_id"`
	OK         bool                 `json:"ok"`
	DurationMS int64                `json:"duration_ms"`
	Results    []saveResultResponse `json:"results"`
}

// HandleSave runs a full save. Failed collections are reported in the body.
func (h *AdminHandler) HandleSave(w http.ResponseWriter, r *http.Request) {
	report := h.admin.SaveAll(r.Context())

	resp := saveResponse{
		BatchID:    report.BatchID,
		OK:         report.OK(),
		DurationMS: report.Duration.Milliseconds(),
		Results:    make([]saveResultResponse, 0, len(report.Results)),
	}
	for _, res := range report.Results {
		out := saveResultResponse{Collection: res.Collection, Records: res.Records}
		if res.Err != nil {
			out.Error = res.Err.Error()
		}
		resp.Results = append(resp.Results, out)
	}
	writeJSON(w, http.StatusOK, resp)
}

type reloadResponse struct {
	Accounts     int                  `json:"accounts"`
	Items        int                  `json:"items"`
	Members      int                  `json:"members"`
	Rentals      int                  `json:"rentals"`
	Duplicates   []string             `json:"duplicate_rentals,omitempty"`
	MalformedIDs []string             `json:"malformed_rental_ids,omitempty"`
	NextRentalID string               `json:"next_rental_id"`
	Seeded       []storage.Collection `json:"seeded,omitempty"`
}

// HandleReload discards in-memory state and loads it from storage
func (h *AdminHandler) HandleReload(w http.ResponseWriter, r *http.Request) {
	if !h.reloadLimiter.Allow() {
		writeJSON(w, http.StatusTooManyRequests, map[string]string{"error": "reload rate limit exceeded"})
		return
	}

	report, err := h.admin.Reload(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reloadResponse{
		Accounts:     report.Accounts,
		Items:        report.Items,
		Members:      report.Members,
		Rentals:      report.Rentals.Loaded,
		Duplicates:   report.Rentals.Duplicates,
		MalformedIDs: report.Rentals.MalformedIDs,
		NextRentalID: report.Rentals.NextRentalID,
		Seeded:       report.Seeded,
	})
}

func (h *AdminHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.admin.Status())
}
