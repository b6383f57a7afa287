package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/3b3zeem/le-souk-offers-service/internal/app/offers/contracts"
	"github.com/3b3zeem/le-souk-offers-service/internal/app/offers/domain"
)

// offerResponse is the wire shape of one evaluated item. Prices travel as
// fixed two-decimal strings so clients never re-round.
type offerResponse struct {
	ItemID        string   `json:"item_id"`
	Name          string   `json:"name"`
	Image         string   `json:"image,omitempty"`
	Kind          string   `json:"kind"`
	IsDiscounted  bool     `json:"is_discounted"`
	DisplayPrice  string   `json:"display_price"`
	OriginalPrice *string  `json:"original_price,omitempty"`
	PercentOff    *float64 `json:"percent_off,omitempty"`
	SaleEndsAt    *string  `json:"sale_ends_at,omitempty"`
}

func toOfferResponse(o contracts.Offer) offerResponse {
	resp := offerResponse{
		ItemID:       o.ItemID,
		Name:         o.Name,
		Image:        o.Image,
		Kind:         string(o.Kind),
		IsDiscounted: o.Evaluation.IsDiscounted,
		PercentOff:   o.Evaluation.PercentOff,
	}
	if o.Evaluation.DisplayPrice != nil {
		resp.DisplayPrice = o.Evaluation.DisplayPrice.String()
	}
	if o.Evaluation.OriginalPrice != nil {
		s := o.Evaluation.OriginalPrice.String()
		resp.OriginalPrice = &s
	}
	if o.SaleEndsAt != nil {
		s := o.SaleEndsAt.UTC().Format(time.RFC3339)
		resp.SaleEndsAt = &s
	}
	return resp
}

func toOfferResponses(offers []contracts.Offer) []offerResponse {
	out := make([]offerResponse, 0, len(offers))
	for _, o := range offers {
		out = append(out, toOfferResponse(o))
	}
	return out
}

// remainingResponse mirrors domain.Remaining on the wire.
type remainingResponse struct {
	Days    int64 `json:"days"`
	Hours   int64 `json:"hours"`
	Minutes int64 `json:"minutes"`
	Seconds int64 `json:"seconds"`
}

func toRemainingResponse(r domain.Remaining) remainingResponse {
	return remainingResponse{
		Days:    r.Days,
		Hours:   r.Hours,
		Minutes: r.Minutes,
		Seconds: r.Seconds,
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
