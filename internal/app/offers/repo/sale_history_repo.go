package repo

import (
	"time"

	"cloud.google.com/go/spanner"

	"github.com/3b3zeem/le-souk-offers-service/internal/app/offers/contracts"
	"github.com/3b3zeem/le-souk-offers-service/internal/models/m_sale_history"
)

// SaleHistoryRepo implements SaleHistoryRepository for Spanner.
type SaleHistoryRepo struct {
	model *m_sale_history.Model
}

// NewSaleHistoryRepo creates a new SaleHistoryRepo.
func NewSaleHistoryRepo() contracts.SaleHistoryRepository {
	return &SaleHistoryRepo{
		model: m_sale_history.NewModel(),
	}
}

// InsertMut creates a mutation recording one observed sale window change.
func (r *SaleHistoryRepo) InsertMut(historyID, itemID string, oldStartsAt, oldEndsAt, newStartsAt, newEndsAt *time.Time) *spanner.Mutation {
	data := &m_sale_history.Data{
		HistoryID:   historyID,
		ItemID:      itemID,
		OldStartsAt: toNullTime(oldStartsAt),
		OldEndsAt:   toNullTime(oldEndsAt),
		NewStartsAt: toNullTime(newStartsAt),
		NewEndsAt:   toNullTime(newEndsAt),
	}
	return r.model.InsertMut(data)
}

func toNullTime(t *time.Time) spanner.NullTime {
	if t == nil {
		return spanner.NullTime{}
	}
	return spanner.NullTime{Time: *t, Valid: true}
}
