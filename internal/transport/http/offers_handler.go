package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/3b3zeem/le-souk-offers-service/internal/app/offers/domain"
	"github.com/3b3zeem/le-souk-offers-service/internal/app/offers/queries/list_offers"
	"github.com/3b3zeem/le-souk-offers-service/internal/app/offers/queries/weekly_offers"
)

// OffersHandler serves the offers listing surfaces.
type OffersHandler struct {
	listOffers   *list_offers.Query
	weeklyOffers *weekly_offers.Query
}

// NewOffersHandler creates a new offers handler.
func NewOffersHandler(listOffers *list_offers.Query, weeklyOffers *weekly_offers.Query) *OffersHandler {
	return &OffersHandler{
		listOffers:   listOffers,
		weeklyOffers: weeklyOffers,
	}
}

type tierViewResponse struct {
	Tier       string          `json:"tier"`
	Page       int             `json:"page"`
	TotalPages int             `json:"total_pages"`
	TotalCount int             `json:"total_count"`
	Offers     []offerResponse `json:"offers"`
}

type offersResponse struct {
	HasOffers    bool               `json:"has_offers"`
	SelectedTier string             `json:"selected_tier,omitempty"`
	HighDiscount []offerResponse    `json:"high_discount"`
	Tiers        []tierViewResponse `json:"tiers"`
}

// List handles GET /api/v1/offers.
//
// Query parameters: tier selects the active tab, page_size sets the per-tier
// page size, and page[<tier>] (e.g. page[11-30]=2) sets each tab's page
// independently so switching tabs never resets the others.
func (h *OffersHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	req := &list_offers.Request{
		PreferredTier: q.Get("tier"),
		Pages:         make(map[string]int),
	}
	if raw := q.Get("page_size"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || size < 1 {
			writeError(w, domain.ErrInvalidPageSize)
			return
		}
		req.PageSize = size
	}
	for _, tier := range domain.TierOrder {
		key := fmt.Sprintf("page[%s]", tier)
		if raw := q.Get(key); raw != "" {
			if page, err := strconv.Atoi(raw); err == nil {
				req.Pages[string(tier)] = page
			}
		}
	}

	result, err := h.listOffers.Execute(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := offersResponse{
		HasOffers:    result.HasOffers,
		SelectedTier: string(result.SelectedTier),
		HighDiscount: toOfferResponses(result.HighDiscount),
		Tiers:        make([]tierViewResponse, 0, len(result.Tiers)),
	}
	for _, tv := range result.Tiers {
		resp.Tiers = append(resp.Tiers, tierViewResponse{
			Tier:       string(tv.Tier),
			Page:       tv.Page,
			TotalPages: tv.TotalPages,
			TotalCount: tv.TotalCount,
			Offers:     toOfferResponses(tv.Offers),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

type weeklyOfferResponse struct {
	offerResponse
	Remaining remainingResponse `json:"remaining"`
}

// Weekly handles GET /api/v1/offers/weekly.
func (h *OffersHandler) Weekly(w http.ResponseWriter, r *http.Request) {
	offers, err := h.weeklyOffers.Execute(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	resp := make([]weeklyOfferResponse, 0, len(offers))
	for _, o := range offers {
		resp = append(resp, weeklyOfferResponse{
			offerResponse: toOfferResponse(o.Offer),
			Remaining:     toRemainingResponse(o.Remaining),
		})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"offers": resp})
}
