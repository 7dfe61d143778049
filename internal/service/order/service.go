package order

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/uchiyama0208/nightbase-sub009/internal/domain/order"
	"github.com/uchiyama0208/nightbase-sub009/internal/domain/venue"
	"github.com/uchiyama0208/nightbase-sub009/internal/pkg/database"
)

type OrderServiceImpl struct {
	db           *database.DB
	sessionRepo  order.SessionRepository
	lineItemRepo order.LineItemRepository
	menuRepo     order.MenuRepository
	venueRepo    venue.VenueRepository
}

func NewOrderService(
	db *database.DB,
	sessionRepo order.SessionRepository,
	lineItemRepo order.LineItemRepository,
	menuRepo order.MenuRepository,
	venueRepo venue.VenueRepository,
) order.OrderService {
	return &OrderServiceImpl{
		db:           db,
		sessionRepo:  sessionRepo,
		lineItemRepo: lineItemRepo,
		menuRepo:     menuRepo,
		venueRepo:    venueRepo,
	}
}

func getClaimsFromContext(ctx context.Context) (venueID, staffID string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	venueID, ok := claims["venue_id"].(string)
	if !ok || venueID == "" {
		return "", "", fmt.Errorf("venue_id claim is missing or invalid")
	}

	staffID, ok = claims["staff_id"].(string)
	if !ok || staffID == "" {
		return "", "", fmt.Errorf("staff_id claim is missing or invalid")
	}

	return venueID, staffID, nil
}

func (o *OrderServiceImpl) sessionResponse(ctx context.Context, venueID string, s order.Session) (order.SessionResponse, error) {
	v, err := o.venueRepo.GetByID(ctx, venueID)
	if err != nil {
		return order.SessionResponse{}, err
	}
	return order.NewSessionResponse(s, v.DayConfig().Resolve(s.StartedAt)), nil
}

// OpenSession implements order.OrderService.
func (o *OrderServiceImpl) OpenSession(ctx context.Context, req order.OpenSessionRequest) (order.SessionResponse, error) {
	if err := req.Validate(); err != nil {
		return order.SessionResponse{}, err
	}

	venueID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return order.SessionResponse{}, err
	}

	tableNumber := strings.ToUpper(strings.TrimSpace(req.TableNumber))

	open, err := o.sessionRepo.GetOpenByTable(ctx, tableNumber, venueID)
	if err != nil {
		return order.SessionResponse{}, fmt.Errorf("failed to check table: %w", err)
	}
	if open != nil {
		return order.SessionResponse{}, order.ErrTableOccupied
	}

	session, err := o.sessionRepo.Create(ctx, order.Session{
		ID:          uuid.NewString(),
		VenueID:     venueID,
		TableNumber: tableNumber,
		GuestCount:  req.GuestCount,
		StartedAt:   time.Now(),
	})
	if err != nil {
		return order.SessionResponse{}, fmt.Errorf("failed to open session: %w", err)
	}

	return o.sessionResponse(ctx, venueID, session)
}

// CloseSession implements order.OrderService.
func (o *OrderServiceImpl) CloseSession(ctx context.Context, sessionID string) (order.CloseSessionResponse, error) {
	venueID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return order.CloseSessionResponse{}, err
	}

	session, err := o.sessionRepo.GetByID(ctx, sessionID, venueID)
	if err != nil {
		return order.CloseSessionResponse{}, err
	}
	if !session.IsOpen() {
		return order.CloseSessionResponse{}, order.ErrSessionAlreadyClosed
	}

	closed, err := o.sessionRepo.Close(ctx, sessionID, venueID, time.Now())
	if err != nil {
		return order.CloseSessionResponse{}, fmt.Errorf("failed to close session: %w", err)
	}

	items, err := o.lineItemRepo.ListBySession(ctx, sessionID, venueID)
	if err != nil {
		return order.CloseSessionResponse{}, fmt.Errorf("failed to list session items: %w", err)
	}

	sessionResp, err := o.sessionResponse(ctx, venueID, closed)
	if err != nil {
		return order.CloseSessionResponse{}, err
	}

	resp := order.CloseSessionResponse{
		Session: sessionResp,
		Items:   make([]order.LineItemResponse, 0, len(items)),
	}
	for _, item := range items {
		resp.Items = append(resp.Items, order.NewLineItemResponse(item))
		resp.Total += item.Amount()
	}
	return resp, nil
}

// ListOpenSessions implements order.OrderService.
func (o *OrderServiceImpl) ListOpenSessions(ctx context.Context) ([]order.SessionResponse, error) {
	venueID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	sessions, err := o.sessionRepo.ListOpen(ctx, venueID)
	if err != nil {
		return nil, fmt.Errorf("failed to list open sessions: %w", err)
	}

	v, err := o.venueRepo.GetByID(ctx, venueID)
	if err != nil {
		return nil, err
	}
	day := v.DayConfig()

	resp := make([]order.SessionResponse, 0, len(sessions))
	for _, s := range sessions {
		resp = append(resp, order.NewSessionResponse(s, day.Resolve(s.StartedAt)))
	}
	return resp, nil
}

// AddLineItem implements order.OrderService.
func (o *OrderServiceImpl) AddLineItem(ctx context.Context, req order.AddLineItemRequest) (order.LineItemResponse, error) {
	if err := req.Validate(); err != nil {
		return order.LineItemResponse{}, err
	}

	venueID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return order.LineItemResponse{}, err
	}

	session, err := o.sessionRepo.GetByID(ctx, req.SessionID, venueID)
	if err != nil {
		return order.LineItemResponse{}, err
	}
	if !session.IsOpen() {
		return order.LineItemResponse{}, order.ErrSessionAlreadyClosed
	}

	item := order.LineItem{
		ID:        uuid.NewString(),
		SessionID: session.ID,
		Quantity:  req.Quantity,
		StaffID:   req.StaffID,
		OrderedAt: time.Now(),
	}

	if req.MenuItemID != nil {
		menuItem, err := o.menuRepo.GetByID(ctx, *req.MenuItemID, venueID)
		if err != nil {
			return order.LineItemResponse{}, err
		}
		item.MenuItemID = &menuItem.ID
		item.UnitPrice = menuItem.Price
		if req.UnitPrice != nil {
			item.UnitPrice = *req.UnitPrice
		}
		item.MenuName = &menuItem.Name
		item.MenuCategory = &menuItem.Category
		item.MenuPayout = &menuItem.DefaultPayout
	} else {
		item.Name = req.Name
		item.UnitPrice = *req.UnitPrice
	}

	created, err := o.lineItemRepo.Create(ctx, item)
	if err != nil {
		return order.LineItemResponse{}, fmt.Errorf("failed to add line item: %w", err)
	}
	// Creation returns only the stored columns; carry the joins over.
	created.MenuName = item.MenuName
	created.MenuCategory = item.MenuCategory
	created.MenuPayout = item.MenuPayout

	return order.NewLineItemResponse(created), nil
}

// ListSessionItems implements order.OrderService.
func (o *OrderServiceImpl) ListSessionItems(ctx context.Context, sessionID string) ([]order.LineItemResponse, error) {
	venueID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	if _, err := o.sessionRepo.GetByID(ctx, sessionID, venueID); err != nil {
		return nil, err
	}

	items, err := o.lineItemRepo.ListBySession(ctx, sessionID, venueID)
	if err != nil {
		return nil, fmt.Errorf("failed to list session items: %w", err)
	}

	resp := make([]order.LineItemResponse, 0, len(items))
	for _, item := range items {
		resp = append(resp, order.NewLineItemResponse(item))
	}
	return resp, nil
}

// VoidLineItem implements order.OrderService.
func (o *OrderServiceImpl) VoidLineItem(ctx context.Context, id string) error {
	venueID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return err
	}

	return o.lineItemRepo.Delete(ctx, id, venueID)
}

// ========== MENU ==========

// CreateMenuItem implements order.OrderService.
func (o *OrderServiceImpl) CreateMenuItem(ctx context.Context, req order.CreateMenuItemRequest) (order.MenuItemResponse, error) {
	if err := req.Validate(); err != nil {
		return order.MenuItemResponse{}, err
	}

	venueID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return order.MenuItemResponse{}, err
	}

	item, err := o.menuRepo.Create(ctx, order.MenuItem{
		ID:            uuid.NewString(),
		VenueID:       venueID,
		Name:          req.Name,
		Category:      req.Category,
		Price:         req.Price,
		DefaultPayout: req.DefaultPayout,
		IsActive:      true,
	})
	if err != nil {
		return order.MenuItemResponse{}, fmt.Errorf("failed to create menu item: %w", err)
	}

	return order.NewMenuItemResponse(item), nil
}

// UpdateMenuItem implements order.OrderService.
func (o *OrderServiceImpl) UpdateMenuItem(ctx context.Context, req order.UpdateMenuItemRequest) (order.MenuItemResponse, error) {
	if err := req.Validate(); err != nil {
		return order.MenuItemResponse{}, err
	}

	venueID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return order.MenuItemResponse{}, err
	}

	item, err := o.menuRepo.GetByID(ctx, req.ID, venueID)
	if err != nil {
		return order.MenuItemResponse{}, err
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Category != nil {
		item.Category = *req.Category
	}
	if req.Price != nil {
		item.Price = *req.Price
	}
	if req.DefaultPayout != nil {
		item.DefaultPayout = *req.DefaultPayout
	}
	if req.IsActive != nil {
		item.IsActive = *req.IsActive
	}

	updated, err := o.menuRepo.Update(ctx, item)
	if err != nil {
		return order.MenuItemResponse{}, fmt.Errorf("failed to update menu item: %w", err)
	}

	return order.NewMenuItemResponse(updated), nil
}

// ListMenu implements order.OrderService.
func (o *OrderServiceImpl) ListMenu(ctx context.Context, activeOnly bool) ([]order.MenuItemResponse, error) {
	venueID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	items, err := o.menuRepo.ListByVenueID(ctx, venueID, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list menu: %w", err)
	}

	resp := make([]order.MenuItemResponse, 0, len(items))
	for _, item := range items {
		resp = append(resp, order.NewMenuItemResponse(item))
	}
	return resp, nil
}
