package http

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/3b3zeem/le-souk-offers-service/internal/app/offers/contracts"
	"github.com/3b3zeem/le-souk-offers-service/internal/app/offers/domain"
	"github.com/3b3zeem/le-souk-offers-service/internal/app/offers/queries/get_item"
)

// ItemsHandler serves single-item price and countdown endpoints.
type ItemsHandler struct {
	getItem   *get_item.Query
	readModel contracts.ReadModel
}

// NewItemsHandler creates a new items handler.
func NewItemsHandler(getItem *get_item.Query, readModel contracts.ReadModel) *ItemsHandler {
	return &ItemsHandler{
		getItem:   getItem,
		readModel: readModel,
	}
}

type itemPriceResponse struct {
	offerResponse
	Remaining *remainingResponse `json:"remaining,omitempty"`
}

// Price handles GET /api/v1/items/{itemID}/price.
func (h *ItemsHandler) Price(w http.ResponseWriter, r *http.Request) {
	result, err := h.getItem.Execute(r.Context(), &get_item.Request{
		ItemID: chi.URLParam(r, "itemID"),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	resp := itemPriceResponse{offerResponse: toOfferResponse(result.Offer)}
	if result.Remaining != nil {
		rr := toRemainingResponse(*result.Remaining)
		resp.Remaining = &rr
	}
	writeJSON(w, http.StatusOK, resp)
}

// Countdown handles GET /api/v1/items/{itemID}/countdown: a single snapshot
// of the time left until the item's sale window closes.
func (h *ItemsHandler) Countdown(w http.ResponseWriter, r *http.Request) {
	result, err := h.getItem.Execute(r.Context(), &get_item.Request{
		ItemID: chi.URLParam(r, "itemID"),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	if result.Offer.SaleEndsAt == nil {
		writeError(w, domain.ErrItemNoSaleEnd)
		return
	}

	var rem remainingResponse
	if result.Remaining != nil {
		rem = toRemainingResponse(*result.Remaining)
	}
	writeJSON(w, http.StatusOK, rem)
}

// CountdownStream handles GET /api/v1/items/{itemID}/countdown/stream,
// pushing one server-sent event per second until the sale window closes or
// the client disconnects. The final event is all zeros.
func (h *ItemsHandler) CountdownStream(w http.ResponseWriter, r *http.Request) {
	item, err := h.readModel.GetItemByID(r.Context(), chi.URLParam(r, "itemID"))
	if err != nil {
		writeError(w, err)
		return
	}
	if item.SaleEndsAt == nil {
		writeError(w, domain.ErrItemNoSaleEnd)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "streaming unsupported"})
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	// Buffered so the synchronous first tick lands before we start reading.
	// A slow client drops intermediate ticks rather than stalling the timer.
	ticks := make(chan domain.Remaining, 4)
	cd := domain.StartCountdown(*item.SaleEndsAt, func(rem domain.Remaining) {
		select {
		case ticks <- rem:
		default:
		}
	})
	defer cd.Cancel()

	for {
		select {
		case <-r.Context().Done():
			return
		case rem := <-ticks:
			fmt.Fprintf(w, "data: {\"days\":%d,\"hours\":%d,\"minutes\":%d,\"seconds\":%d}\n\n",
				rem.Days, rem.Hours, rem.Minutes, rem.Seconds)
			flusher.Flush()
			if rem.IsZero() {
				return
			}
		case <-cd.Done():
			// Drain any tick emitted before the channel closed.
			select {
			case rem := <-ticks:
				fmt.Fprintf(w, "data: {\"days\":%d,\"hours\":%d,\"minutes\":%d,\"seconds\":%d}\n\n",
					rem.Days, rem.Hours, rem.Minutes, rem.Seconds)
				flusher.Flush()
			default:
			}
			return
		}
	}
}
