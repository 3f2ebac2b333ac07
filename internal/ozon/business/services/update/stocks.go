package update

import (
	"context"
	"io"
	"net/http"

	"github.com/Leeroy133/seller-apis/internal/core"
	"github.com/Leeroy133/seller-apis/internal/ozon/business/models/dto/request"
	"github.com/Leeroy133/seller-apis/internal/ozon/business/models/dto/response"
	"github.com/Leeroy133/seller-apis/metrics"
	"github.com/Leeroy133/seller-apis/pkg/apiclient"
	"github.com/Leeroy133/seller-apis/pkg/batch"
	"github.com/Leeroy133/seller-apis/pkg/logger"
)

const updateStocksEndpoint = "/v2/products/stocks"

// StockService загружает остатки. Склад один на запуск: FBS либо DBS
// определяется тем, какой warehouse_id передан в конфиге.
type StockService struct {
	client      *apiclient.Client
	batchSize   int
	warehouseID int64
	log         logger.Logger
}

func NewStockService(client *apiclient.Client, batchSize int, warehouseID int64, writer io.Writer) *StockService {
	return &StockService{
		client:      client,
		batchSize:   batchSize,
		warehouseID: warehouseID,
		log:         logger.NewLogger(writer, "[ozon stocks]"),
	}
}

// Update шлёт остатки по сопоставленным позициям и обнуляет остатки
// позиций каталога, которых нет в локальной выгрузке.
func (s *StockService) Update(ctx context.Context, matched []core.Matched, missing []core.Offer) (core.UpdateResult, error) {
	var result core.UpdateResult

	stocks := make([]request.Stock, 0, len(matched)+len(missing))
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
		stocks = append(stocks, request.Stock{
			OfferID:     m.Offer.OfferID,
			ProductID:   m.Offer.ProductID,
			WarehouseID: s.warehouseID,
			Stock:       count,
		})
	}
	for _, offer := range missing {
		stocks = append(stocks, request.Stock{
			OfferID:     offer.OfferID,
			ProductID:   offer.ProductID,
			WarehouseID: s.warehouseID,
			Stock:       0,
		})
	}

	for _, part := range batch.Divide(stocks, s.batchSize) {
		var resp response.UpdateStocks
		err := s.client.DoJSON(ctx, http.MethodPost, updateStocksEndpoint, request.UpdateStocks{Stocks: part}, &resp)
		if err != nil {
			if fatal(ctx, err) {
				return result, err
			}
			s.log.Log("Stock batch of %d skipped: %s", len(part), err)
			result.SkippedBatches++
			result.Failed += len(part)
			metrics.RecordItems("ozon", "stock", 0, len(part))
			continue
		}

		updated, failed, itemErrs := collectResults(resp.Result, len(part))
		result.Updated += updated
		result.Failed += failed
		result.ItemErrors = append(result.ItemErrors, itemErrs...)
		metrics.RecordItems("ozon", "stock", updated, failed)
	}
	return result, nil
}
