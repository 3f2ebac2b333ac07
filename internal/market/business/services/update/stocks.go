package update

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Leeroy133/seller-apis/internal/core"
	"github.com/Leeroy133/seller-apis/internal/market/business/models/dto/request"
	"github.com/Leeroy133/seller-apis/internal/market/business/models/dto/response"
	"github.com/Leeroy133/seller-apis/metrics"
	"github.com/Leeroy133/seller-apis/pkg/apiclient"
	"github.com/Leeroy133/seller-apis/pkg/batch"
	"github.com/Leeroy133/seller-apis/pkg/logger"
)

// Маркет принимает остатки с типом FIT: годные к продаже.
const stockType = "FIT"

// StockService загружает остатки кампании на указанный склад.
type StockService struct {
	client      *apiclient.Client
	campaignID  string
	warehouseID string
	batchSize   int
	now         func() time.Time
	log         logger.Logger
}

func NewStockService(client *apiclient.Client, campaignID, warehouseID string, batchSize int, writer io.Writer) *StockService {
	return &StockService{
		client:      client,
		campaignID:  campaignID,
		warehouseID: warehouseID,
		batchSize:   batchSize,
		now:         time.Now,
		log:         logger.NewLogger(writer, "[market stocks]"),
	}
}

// Update шлёт остатки сопоставленных позиций и обнуляет те позиции
// кампании, которых нет в локальной выгрузке.
func (s *StockService) Update(ctx context.Context, matched []core.Matched, missing []core.Offer) (core.UpdateResult, error) {
	var result core.UpdateResult
	updatedAt := s.now().UTC().Truncate(time.Second).Format(time.RFC3339)

	stocks := make([]request.StockSku, 0, len(matched)+len(missing))
	for _, m := range matched {
		count, err := m.Remnant.StockCount()
		if err != nil {
			result.Skipped++
			result.ItemErrors = append(result.ItemErrors, &apiclient.ItemError{
				OfferID: m.Offer.OfferID,
				Code:    "INVALID_QUANTITY",
				Message: err.Error(),
			})
			continue
		}
		stocks = append(stocks, s.stockSku(m.Offer.OfferID, count, updatedAt))
	}
	for _, offer := range missing {
		stocks = append(stocks, s.stockSku(offer.OfferID, 0, updatedAt))
	}

	endpoint := fmt.Sprintf("/campaigns/%s/offers/stocks", s.campaignID)
	for _, part := range batch.Divide(stocks, s.batchSize) {
		var resp response.UpdateStatus
		err := s.client.DoJSON(ctx, http.MethodPut, endpoint, request.UpdateStocks{Skus: part}, &resp)
		if err != nil {
			if fatal(ctx, err) {
				return result, err
			}
			s.log.Log("Stock batch of %d skipped: %s", len(part), err)
			result.SkippedBatches++
			result.Failed += len(part)
			metrics.RecordItems("market", "stock", 0, len(part))
			continue
		}

		updated, failed, itemErrs := collectStatus(resp, len(part))
		result.Updated += updated
		result.Failed += failed
		result.ItemErrors = append(result.ItemErrors, itemErrs...)
		metrics.RecordItems("market", "stock", updated, failed)
	}
	return result, nil
}

func (s *StockService) stockSku(sku string, count int, updatedAt string) request.StockSku {
	return request.StockSku{
		Sku:         sku,
		WarehouseID: s.warehouseID,
		Items: []request.StockItem{
			{
				Count:     count,
				Type:      stockType,
				UpdatedAt: updatedAt,
			},
		},
	}
}

func fatal(ctx context.Context, err error) bool {
	var authErr *apiclient.AuthError
	return errors.As(err, &authErr) || ctx.Err() != nil
}

// collectStatus разбирает ответ Маркета: статус относится ко всему батчу,
// подробности отказов лежат в errors.
func collectStatus(resp response.UpdateStatus, sent int) (updated, failed int, itemErrs []*apiclient.ItemError) {
	if resp.Status == "" || resp.Status == "OK" {
		return sent, 0, nil
	}
	for _, respErr := range resp.Errors {
		itemErrs = append(itemErrs, &apiclient.ItemError{
			Code:    respErr.Code,
			Message: respErr.Message,
		})
	}
	return 0, sent, itemErrs
}
