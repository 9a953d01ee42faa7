package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"memberclub-backend/internal/domain"
	"memberclub-backend/internal/service"
	"memberclub-backend/internal/storage"
)

// ClubHandler serves the inventory and member roster
type ClubHandler struct {
	inventory service.InventoryService
	members   service.MembershipService
}

func NewClubHandler(inventory service.InventoryService, members service.MembershipService) *ClubHandler {
	return &ClubHandler{inventory: inventory, members: members}
}

// HandleListItems returns the inventory; ?available=true keeps only
// rentable items
func (h *ClubHandler) HandleListItems(w http.ResponseWriter, r *http.Request) {
	items := h.inventory.ListItems()
	if available, _ := strconv.ParseBool(r.URL.Query().Get("available")); available {
		items = h.inventory.ListAvailable()
	}

	out := make([]json.RawMessage, 0, len(items))
	for _, item := range items {
		raw, err := storage.EncodeItem(item)
		if err != nil {
			writeError(w, err)
			return
		}
		out = append(out, raw)
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *ClubHandler) HandleGetItem(w http.ResponseWriter, r *http.Request) {
	item, err := h.inventory.GetItem(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	raw, err := storage.EncodeItem(item)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, raw)
}

// HandleListMembers returns the roster; ?q= filters by first name
func (h *ClubHandler) HandleListMembers(w http.ResponseWriter, r *http.Request) {
	var members []*domain.Member
	if q := r.URL.Query().Get("q"); q != "" {
		members = h.members.SearchByFirstName(q)
	} else {
		members = h.members.ListMembers()
	}
	if members == nil {
		members = []*domain.Member{}
	}
	writeJSON(w, http.StatusOK, members)
}

func (h *ClubHandler) HandleGetMember(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		badRequest(w, "member id must be an integer")
		return
	}
	member, err := h.members.GetMember(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, member)
}

type createMemberRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Tier      string `json:"membership_level"`
}

func (h *ClubHandler) HandleCreateMember(w http.ResponseWriter, r *http.Request) {
	var req createMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body: "+err.Error())
		return
	}
	tier, _ := domain.ParseMembershipTier(req.Tier)
	member, err := h.members.AddMember(r.Context(), service.MemberInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Email:     strings.TrimSpace(req.Email),
		Tier:      tier,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, member)
}
