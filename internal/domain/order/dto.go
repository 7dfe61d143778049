package order

import (
	"time"

	"github.com/uchiyama0208/nightbase-sub009/internal/pkg/validator"
)

// ========== SESSION DTOs ==========

type SessionResponse struct {
	ID           string  `json:"id"`
	TableNumber  string  `json:"table_number"`
	GuestCount   int     `json:"guest_count"`
	BusinessDate string  `json:"business_date"`
	StartedAt    string  `json:"started_at"`
	ClosedAt     *string `json:"closed_at,omitempty"`
	Open         bool    `json:"open"`
}

func NewSessionResponse(s Session, businessDate string) SessionResponse {
	resp := SessionResponse{
		ID:           s.ID,
		TableNumber:  s.TableNumber,
		GuestCount:   s.GuestCount,
		BusinessDate: businessDate,
		StartedAt:    s.StartedAt.Format(time.RFC3339),
		Open:         s.IsOpen(),
	}
	if s.ClosedAt != nil {
		str := s.ClosedAt.Format(time.RFC3339)
		resp.ClosedAt = &str
	}
	return resp
}

type OpenSessionRequest struct {
	TableNumber string `json:"table_number"`
	GuestCount  int    `json:"guest_count"`
}

func (r *OpenSessionRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidTableNumber(r.TableNumber) {
		errs = append(errs, validator.ValidationError{Field: "table_number", Message: "must be a valid table number"})
	}
	if r.GuestCount < 1 {
		errs = append(errs, validator.ValidationError{Field: "guest_count", Message: "must be at least 1"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CloseSessionResponse struct {
	Session SessionResponse    `json:"session"`
	Items   []LineItemResponse `json:"items"`
	Total   int64              `json:"total"`
}

// ========== LINE ITEM DTOs ==========

type LineItemResponse struct {
	ID         string  `json:"id"`
	SessionID  string  `json:"session_id"`
	MenuItemID *string `json:"menu_item_id,omitempty"`
	Name       string  `json:"name"`
	UnitPrice  int64   `json:"unit_price"`
	Quantity   int     `json:"quantity"`
	Amount     int64   `json:"amount"`
	StaffID    *string `json:"staff_id,omitempty"`
	OrderedAt  string  `json:"ordered_at"`
}

func NewLineItemResponse(l LineItem) LineItemResponse {
	name := ""
	if l.MenuName != nil {
		name = *l.MenuName
	} else if l.Name != nil {
		name = *l.Name
	}
	return LineItemResponse{
		ID:         l.ID,
		SessionID:  l.SessionID,
		MenuItemID: l.MenuItemID,
		Name:       name,
		UnitPrice:  l.UnitPrice,
		Quantity:   l.Quantity,
		Amount:     l.Amount(),
		StaffID:    l.StaffID,
		OrderedAt:  l.OrderedAt.Format(time.RFC3339),
	}
}

type AddLineItemRequest struct {
	SessionID  string
	MenuItemID *string `json:"menu_item_id,omitempty"`
	Name       *string `json:"name,omitempty"`
	UnitPrice  *int64  `json:"unit_price,omitempty"`
	Quantity   int     `json:"quantity"`
	StaffID    *string `json:"staff_id,omitempty"`
}

func (r *AddLineItemRequest) Validate() error {
	var errs validator.ValidationErrors

	// Either a catalog reference or a free-text name must be present.
	if r.MenuItemID == nil && (r.Name == nil || validator.IsEmpty(*r.Name)) {
		errs = append(errs, validator.ValidationError{Field: "menu_item_id", Message: "menu_item_id or name is required"})
	}
	if r.MenuItemID == nil && r.UnitPrice == nil {
		errs = append(errs, validator.ValidationError{Field: "unit_price", Message: "is required for uncatalogued items"})
	}
	if r.UnitPrice != nil && *r.UnitPrice < 0 {
		errs = append(errs, validator.ValidationError{Field: "unit_price", Message: "must be non-negative"})
	}
	if r.Quantity < 1 {
		errs = append(errs, validator.ValidationError{Field: "quantity", Message: "must be at least 1"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========== MENU DTOs ==========

type MenuItemResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Category      string `json:"category"`
	Price         int64  `json:"price"`
	DefaultPayout int64  `json:"default_payout"`
	IsActive      bool   `json:"is_active"`
}

func NewMenuItemResponse(m MenuItem) MenuItemResponse {
	return MenuItemResponse{
		ID:            m.ID,
		Name:          m.Name,
		Category:      m.Category,
		Price:         m.Price,
		DefaultPayout: m.DefaultPayout,
		IsActive:      m.IsActive,
	}
}

type CreateMenuItemRequest struct {
	Name          string `json:"name"`
	Category      string `json:"category"`
	Price         int64  `json:"price"`
	DefaultPayout int64  `json:"default_payout"`
}

func (r *CreateMenuItemRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}
	if r.Price < 0 {
		errs = append(errs, validator.ValidationError{Field: "price", Message: "must be non-negative"})
	}
	if r.DefaultPayout < 0 {
		errs = append(errs, validator.ValidationError{Field: "default_payout", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateMenuItemRequest struct {
	ID            string
	Name          *string `json:"name,omitempty"`
	Category      *string `json:"category,omitempty"`
	Price         *int64  `json:"price,omitempty"`
	DefaultPayout *int64  `json:"default_payout,omitempty"`
	IsActive      *bool   `json:"is_active,omitempty"`
}

func (r *UpdateMenuItemRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "must not be empty"})
	}
	if r.Price != nil && *r.Price < 0 {
		errs = append(errs, validator.ValidationError{Field: "price", Message: "must be non-negative"})
	}
	if r.DefaultPayout != nil && *r.DefaultPayout < 0 {
		errs = append(errs, validator.ValidationError{Field: "default_payout", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
