package core

import (
	"time"

	"github.com/google/uuid"

	"github.com/Leeroy133/seller-apis/pkg/apiclient"
	"github.com/Leeroy133/seller-apis/pkg/logger"
)

// UpdateResult -- итог серии батчей одного вида (цены либо остатки).
// Отказ позиции внутри принятого батча не валит запуск, а копится здесь.
type UpdateResult struct {
	Updated        int
	Failed         int
	Skipped        int
	SkippedBatches int
	ItemErrors     []*apiclient.ItemError
}

func (r *UpdateResult) Merge(other UpdateResult) {
	r.Updated += other.Updated
	r.Failed += other.Failed
	r.Skipped += other.Skipped
	r.SkippedBatches += other.SkippedBatches
	r.ItemErrors = append(r.ItemErrors, other.ItemErrors...)
}

// Report -- агрегированный итог запуска по одному маркетплейсу.
type Report struct {
	RunID       string
	Marketplace string
	StartedAt   time.Time

	Prices   UpdateResult
	Stocks   UpdateResult
	Unmapped []string
}

func NewReport(marketplace string) *Report {
	return &Report{
		RunID:       uuid.NewString(),
		Marketplace: marketplace,
		StartedAt:   time.Now(),
	}
}

func (r *Report) AddUnmapped(codes []string) {
	r.Unmapped = append(r.Unmapped, codes...)
}

// Log выводит сводку и перечисляет все неблокирующие ошибки.
func (r *Report) Log(l logger.Logger) {
	l.Log("Run %s (%s) finished in %s", r.RunID, r.Marketplace, time.Since(r.StartedAt).Round(time.Millisecond))
	l.Log("Prices: updated=%d failed=%d skipped=%d skipped_batches=%d",
		r.Prices.Updated, r.Prices.Failed, r.Prices.Skipped, r.Prices.SkippedBatches)
	l.Log("Stocks: updated=%d failed=%d skipped=%d skipped_batches=%d",
		r.Stocks.Updated, r.Stocks.Failed, r.Stocks.Skipped, r.Stocks.SkippedBatches)
	l.Log("Unmapped: %d", len(r.Unmapped))

	for _, code := range r.Unmapped {
		l.Log("Unmapped local code: %s", code)
	}
	for _, itemErr := range r.Prices.ItemErrors {
		l.Log("Price update rejected: %s", itemErr)
	}
	for _, itemErr := range r.Stocks.ItemErrors {
		l.Log("Stock update rejected: %s", itemErr)
	}
}
