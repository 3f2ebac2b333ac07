package update

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/Leeroy133/seller-apis/internal/core"
	"github.com/Leeroy133/seller-apis/internal/ozon/business/models/dto/request"
	"github.com/Leeroy133/seller-apis/internal/ozon/business/models/dto/response"
	"github.com/Leeroy133/seller-apis/metrics"
	"github.com/Leeroy133/seller-apis/pkg/apiclient"
	"github.com/Leeroy133/seller-apis/pkg/batch"
	"github.com/Leeroy133/seller-apis/pkg/logger"
)

const importPricesEndpoint = "/v1/product/import/prices"

// PriceService загружает цены пачками, не превышающими лимит API.
type PriceService struct {
	client    *apiclient.Client
	batchSize int
	currency  string
	log       logger.Logger
}

func NewPriceService(client *apiclient.Client, batchSize int, currency string, writer io.Writer) *PriceService {
	return &PriceService{
		client:    client,
		batchSize: batchSize,
		currency:  currency,
		log:       logger.NewLogger(writer, "[ozon prices]"),
	}
}

// Update шлёт по одному обновлению цены на каждый сопоставленный остаток.
// Ошибка возвращается только фатальная (auth, отмена контекста); пачка,
// не ушедшая из-за транспорта, пропускается и попадает в отчёт.
func (s *PriceService) Update(ctx context.Context, matched []core.Matched) (core.UpdateResult, error) {
	var result core.UpdateResult

	prices := make([]request.Price, 0, len(matched))
	for _, m := range matched {
		value, err := m.Remnant.PriceValue()
		if err != nil {
			result.Skipped++
			result.ItemErrors = append(result.ItemErrors, &apiclient.ItemError{
				OfferID: m.Offer.OfferID,
				Code:    "INVALID_PRICE",
				Message: err.Error(),
			})
			continue
		}
		prices = append(prices, request.Price{
			OfferID:      m.Offer.OfferID,
			Price:        strconv.FormatInt(value, 10),
			CurrencyCode: s.currency,
		})
	}

	for _, part := range batch.Divide(prices, s.batchSize) {
		var resp response.ImportPrices
		err := s.client.DoJSON(ctx, http.MethodPost, importPricesEndpoint, request.ImportPrices{Prices: part}, &resp)
		if err != nil {
			if fatal(ctx, err) {
				return result, err
			}
			s.log.Log("Price batch of %d skipped: %s", len(part), err)
			result.SkippedBatches++
			result.Failed += len(part)
			metrics.RecordItems("ozon", "price", 0, len(part))
			continue
		}

		updated, failed, itemErrs := collectResults(resp.Result, len(part))
		result.Updated += updated
		result.Failed += failed
		result.ItemErrors = append(result.ItemErrors, itemErrs...)
		metrics.RecordItems("ozon", "price", updated, failed)
	}
	return result, nil
}

// fatal отличает ошибки, прекращающие запуск, от пропускаемых батчей.
func fatal(ctx context.Context, err error) bool {
	var authErr *apiclient.AuthError
	return errors.As(err, &authErr) || ctx.Err() != nil
}

// collectResults разбирает частично успешный ответ API по позициям.
// Пустой result трактуется как полный успех батча.
func collectResults(results []response.ItemResult, sent int) (updated, failed int, itemErrs []*apiclient.ItemError) {
	if len(results) == 0 {
		return sent, 0, nil
	}
	for _, res := range results {
		if res.Updated && len(res.Errors) == 0 {
			updated++
			continue
		}
		failed++
		if len(res.Errors) == 0 {
			itemErrs = append(itemErrs, &apiclient.ItemError{
				OfferID: res.OfferID,
				Code:    "NOT_UPDATED",
				Message: "offer was not updated",
			})
			continue
		}
		for _, resErr := range res.Errors {
			itemErrs = append(itemErrs, &apiclient.ItemError{
				OfferID: res.OfferID,
				Code:    resErr.Code,
				Message: resErr.Message,
			})
		}
	}
	return updated, failed, itemErrs
}
