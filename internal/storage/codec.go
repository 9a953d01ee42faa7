package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"memberclub-backend/internal/domain"
)

// TimeLayout is the persisted timestamp form: ISO-8601 local date-time with
// second precision. Values carry no offset and are read in the host's zone,
// so the data directory belongs to hosts sharing one time zone. A time in the
// repeated hour of a DST fall-back may read back one hour off.
const TimeLayout = "2006-01-02T15:04:05"

const typeField = "type"

func FormatTime(t time.Time) string {
	return t.In(time.Local).Format(TimeLayout)
}

func ParseTime(s string) (time.Time, error) {
	return time.ParseInLocation(TimeLayout, s, time.Local)
}

// EncodeItem writes an item with its "type" discriminator.
func EncodeItem(item domain.Item) (json.RawMessage, error) {
	body, err := json.Marshal(item)
	if err != nil {
		return nil, err
	}
	fields := make(map[string]json.RawMessage)
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, err
	}
	tag, err := json.Marshal(item.Kind())
	if err != nil {
		return nil, err
	}
	fields[typeField] = tag
	return json.Marshal(fields)
}

// DecodeItem reconstructs the concrete item named by the record's
// discriminator.
func DecodeItem(raw json.RawMessage) (domain.Item, error) {
	var head struct {
		Type domain.ItemKind `json:"type"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return nil, err
	}
	if head.Type == "" {
		return nil, fmt.Errorf("item record has no %q field", typeField)
	}
	item, err := domain.NewItem(head.Type)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, item); err != nil {
		return nil, err
	}
	if item.Base().ID == "" {
		return nil, fmt.Errorf("%s record has no id", head.Type)
	}
	if item.Base().Status == "" {
		item.Base().Status = domain.ItemStatusAvailable
	}
	return item, nil
}

type rentalRecord struct {
	RentalID           string              `json:"rentalId"`
	MemberID           int                 `json:"memberId"`
	ItemID             string              `json:"itemId"`
	StartDate          string              `json:"startDate"`
	ExpectedReturnDate *string             `json:"expectedReturnDate"`
	EndDate            *string             `json:"endDate"`
	TotalCost          decimal.Decimal     `json:"totalCost"`
	Status             domain.RentalStatus `json:"status"`
}

func EncodeRental(r *domain.Rental) (json.RawMessage, error) {
	rec := rentalRecord{
		RentalID:  r.ID,
		MemberID:  r.MemberID,
		ItemID:    r.ItemID,
		StartDate: FormatTime(r.StartDate),
		TotalCost: r.TotalCost,
		Status:    r.Status,
	}
	if r.ExpectedReturnDate != nil {
		s := FormatTime(*r.ExpectedReturnDate)
		rec.ExpectedReturnDate = &s
	}
	if r.EndDate != nil {
		s := FormatTime(*r.EndDate)
		rec.EndDate = &s
	}
	return json.Marshal(rec)
}

func DecodeRental(raw json.RawMessage) (*domain.Rental, error) {
	var rec rentalRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, err
	}
	if rec.RentalID == "" {
		return nil, fmt.Errorf("rental record has no rentalId")
	}
	start, err := ParseTime(rec.StartDate)
	if err != nil {
		return nil, fmt.Errorf("rental %s: bad startDate: %w", rec.RentalID, err)
	}
	r := &domain.Rental{
		ID:        rec.RentalID,
		MemberID:  rec.MemberID,
		ItemID:    rec.ItemID,
		StartDate: start,
		TotalCost: rec.TotalCost,
		Status:    rec.Status,
	}
	if r.Status == "" {
		r.Status = domain.RentalStatusActive
	}
	if rec.ExpectedReturnDate != nil {
		t, err := ParseTime(*rec.ExpectedReturnDate)
		if err != nil {
			return nil, fmt.Errorf("rental %s: bad expectedReturnDate: %w", rec.RentalID, err)
		}
		r.ExpectedReturnDate = &t
	}
	if rec.EndDate != nil {
		t, err := ParseTime(*rec.EndDate)
		if err != nil {
			return nil, fmt.Errorf("rental %s: bad endDate: %w", rec.RentalID, err)
		}
		r.EndDate = &t
	}
	return r, nil
}

func EncodeMember(m *domain.Member) (json.RawMessage, error) {
	c := m.Clone()
	if c.RentalHistory == nil {
		c.RentalHistory = []string{}
	}
	return json.Marshal(c)
}

func DecodeMember(raw json.RawMessage) (*domain.Member, error) {
	var m domain.Member
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	if m.ID <= 0 {
		return nil, fmt.Errorf("member record has invalid id %d", m.ID)
	}
	return &m, nil
}

func EncodeAccount(a *domain.Account) (json.RawMessage, error) {
	return json.Marshal(a)
}

func DecodeAccount(raw json.RawMessage) (*domain.Account, error) {
	var a domain.Account
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, err
	}
	if a.Username == "" {
		return nil, fmt.Errorf("account record has no username")
	}
	return &a, nil
}
