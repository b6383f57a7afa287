package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/3b3zeem/le-souk-offers-service/internal/app/offers/queries/list_events"
	"github.com/3b3zeem/le-souk-offers-service/internal/models/m_outbox"
)

// EventsHandler exposes the outbox for operational inspection.
type EventsHandler struct {
	listEvents *list_events.Query
}

// NewEventsHandler creates a new events handler.
func NewEventsHandler(listEvents *list_events.Query) *EventsHandler {
	return &EventsHandler{listEvents: listEvents}
}

type eventResponse struct {
	EventID     string          `json:"event_id"`
	EventType   string          `json:"event_type"`
	AggregateID string          `json:"aggregate_id"`
	Payload     json.RawMessage `json:"payload,omitempty"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	ProcessedAt *time.Time      `json:"processed_at,omitempty"`
	RetryCount  int64           `json:"retry_count"`
}

// List handles GET /api/v1/events with optional event_type, aggregate_id,
// status, and limit query parameters.
func (h *EventsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	req := &list_events.Request{}
	if v := q.Get("event_type"); v != "" {
		req.EventType = &v
	}
	if v := q.Get("aggregate_id"); v != "" {
		req.AggregateID = &v
	}
	if v := q.Get("status"); v != "" {
		req.Status = &v
	}
	if v := q.Get("limit"); v != "" {
		if limit, err := strconv.Atoi(v); err == nil {
			req.Limit = limit
		}
	}

	events, err := h.listEvents.Execute(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := make([]eventResponse, 0, len(events))
	for _, e := range events {
		resp = append(resp, toEventResponse(e))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"events": resp})
}

func toEventResponse(e *m_outbox.Data) eventResponse {
	resp := eventResponse{
		EventID:     e.EventID,
		EventType:   e.EventType,
		AggregateID: e.AggregateID,
		Status:      e.Status,
		CreatedAt:   e.CreatedAt,
		RetryCount:  e.RetryCount,
	}
	if e.Payload.Valid {
		resp.Payload = json.RawMessage(e.Payload.String())
	}
	if e.ProcessedAt.Valid {
		t := e.ProcessedAt.Time
		resp.ProcessedAt = &t
	}
	return resp
}
