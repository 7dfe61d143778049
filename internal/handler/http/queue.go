package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/uchiyama0208/nightbase-sub009/internal/domain/queue"
	"github.com/uchiyama0208/nightbase-sub009/internal/handler/http/response"
	"github.com/uchiyama0208/nightbase-sub009/internal/pkg/jwt"
	"github.com/uchiyama0208/nightbase-sub009/internal/pkg/sse"
)

type QueueHandler interface {
	IssueTicket(w http.ResponseWriter, r *http.Request)
	CallTicket(w http.ResponseWriter, r *http.Request)
	SeatTicket(w http.ResponseWriter, r *http.Request)
	CancelTicket(w http.ResponseWriter, r *http.Request)
	Board(w http.ResponseWriter, r *http.Request)
	StreamToken(w http.ResponseWriter, r *http.Request)
	Stream(w http.ResponseWriter, r *http.Request)
}

type QueueHandlerImpl struct {
	queueService queue.QueueService
	jwtService   jwt.Service
	hub          *sse.Hub
}

// IssueTicket implements QueueHandler.
func (q *QueueHandlerImpl) IssueTicket(w http.ResponseWriter, r *http.Request) {
	var req queue.IssueTicketRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("IssueTicket decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	ticket, err := q.queueService.IssueTicket(r.Context(), req)
	if err != nil {
		slog.Error("IssueTicket service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Ticket issued successfully", ticket)
}

// CallTicket implements QueueHandler.
func (q *QueueHandlerImpl) CallTicket(w http.ResponseWriter, r *http.Request) {
	ticket, err := q.queueService.CallTicket(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		slog.Error("CallTicket service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Ticket called", ticket)
}

// SeatTicket implements QueueHandler.
func (q *QueueHandlerImpl) SeatTicket(w http.ResponseWriter, r *http.Request) {
	ticket, err := q.queueService.SeatTicket(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		slog.Error("SeatTicket service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Ticket seated", ticket)
}

// CancelTicket implements QueueHandler.
func (q *QueueHandlerImpl) CancelTicket(w http.ResponseWriter, r *http.Request) {
	ticket, err := q.queueService.CancelTicket(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		slog.Error("CancelTicket service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Ticket cancelled", ticket)
}

// Board implements QueueHandler.
func (q *QueueHandlerImpl) Board(w http.ResponseWriter, r *http.Request) {
	board, err := q.queueService.Board(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, board)
}

// StreamToken issues a short-lived token for the board stream.
func (q *QueueHandlerImpl) StreamToken(w http.ResponseWriter, r *http.Request) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	venueID, ok := claims["venue_id"].(string)
	if !ok || venueID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	token, expiresIn, err := q.jwtService.GenerateStreamToken(venueID)
	if err != nil {
		response.InternalServerError(w, "Failed to generate stream token")
		return
	}

	response.Success(w, queue.StreamTokenResponse{
		Token:     token,
		ExpiresIn: expiresIn,
	})
}

// Stream handles the SSE connection for real-time board updates
func (q *QueueHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	// Get token from query parameter (SSE doesn't support custom headers)
	tokenStr := r.URL.Query().Get("token")
	if tokenStr == "" {
		http.Error(w, "Missing token", http.StatusUnauthorized)
		return
	}

	venueID, err := q.jwtService.ValidateStreamToken(tokenStr)
	if err != nil {
		http.Error(w, "Invalid token", http.StatusUnauthorized)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	events, cleanup := q.hub.Subscribe(venueID)
	defer cleanup()

	// Send the current board immediately so displays do not start blank
	if board, err := q.queueService.BoardForVenue(r.Context(), venueID); err == nil {
		if data, err := json.Marshal(board); err == nil {
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", sse.EventQueueUpdated, data)
			flusher.Flush()
		}
	}

	keepalive := time.NewTicker(30 * time.Second)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(event.Data)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Event, data)
			flusher.Flush()

		case <-keepalive.C:
			fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}

func NewQueueHandler(queueService queue.QueueService, jwtService jwt.Service, hub *sse.Hub) QueueHandler {
	return &QueueHandlerImpl{
		queueService: queueService,
		jwtService:   jwtService,
		hub:          hub,
	}
}
