package update

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/Leeroy133/seller-apis/internal/core"
	"github.com/Leeroy133/seller-apis/internal/market/business/models/dto/request"
	"github.com/Leeroy133/seller-apis/internal/market/business/models/dto/response"
	"github.com/Leeroy133/seller-apis/metrics"
	"github.com/Leeroy133/seller-apis/pkg/apiclient"
	"github.com/Leeroy133/seller-apis/pkg/batch"
	"github.com/Leeroy133/seller-apis/pkg/logger"
)

// PriceService загружает цены кампании.
type PriceService struct {
	client     *apiclient.Client
	campaignID string
	currency   string
	batchSize  int
	log        logger.Logger
}

func NewPriceService(client *apiclient.Client, campaignID, currency string, batchSize int, writer io.Writer) *PriceService {
	return &PriceService{
		client:     client,
		campaignID: campaignID,
		currency:   currency,
		batchSize:  batchSize,
		log:        logger.NewLogger(writer, "[market prices]"),
	}
}

func (s *PriceService) Update(ctx context.Context, matched []core.Matched) (core.UpdateResult, error) {
	var result core.UpdateResult

	offers := make([]request.OfferPrice, 0, len(matched))
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
		offers = append(offers, request.OfferPrice{
			ID: m.Offer.OfferID,
			Price: request.PriceValue{
				Value:      value,
				CurrencyID: s.currency,
			},
		})
	}

	endpoint := fmt.Sprintf("/campaigns/%s/offer-prices/updates", s.campaignID)
	for _, part := range batch.Divide(offers, s.batchSize) {
		var resp response.UpdateStatus
		err := s.client.DoJSON(ctx, http.MethodPost, endpoint, request.UpdatePrices{Offers: part}, &resp)
		if err != nil {
			if fatal(ctx, err) {
				return result, err
			}
			s.log.Log("Price batch of %d skipped: %s", len(part), err)
			result.SkippedBatches++
			result.Failed += len(part)
			metrics.RecordItems("market", "price", 0, len(part))
			continue
		}

		updated, failed, itemErrs := collectStatus(resp, len(part))
		result.Updated += updated
		result.Failed += failed
		result.ItemErrors = append(result.ItemErrors, itemErrs...)
		metrics.RecordItems("market", "price", updated, failed)
	}
	return result, nil
}
