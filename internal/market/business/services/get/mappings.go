package get

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Leeroy133/seller-apis/internal/core"
	"github.com/Leeroy133/seller-apis/internal/market/business/models/dto/response"
	"github.com/Leeroy133/seller-apis/pkg/apiclient"
	"github.com/Leeroy133/seller-apis/pkg/logger"
)

// MappingService обходит связки товаров кампании постранично по page_token.
type MappingService struct {
	client     *apiclient.Client
	campaignID string
	pageLimit  int
	log        logger.Logger
}

func NewMappingService(client *apiclient.Client, campaignID string, pageLimit int, writer io.Writer) *MappingService {
	return &MappingService{
		client:     client,
		campaignID: campaignID,
		pageLimit:  pageLimit,
		log:        logger.NewLogger(writer, "[market mappings]"),
	}
}

// FetchAll собирает shopSku всех товаров кампании.
func (s *MappingService) FetchAll(ctx context.Context) (*core.Catalog, error) {
	var offers []core.Offer
	pageToken := ""

	for {
		page, err := s.fetchPage(ctx, pageToken)
		if err != nil {
			return nil, err
		}
		for _, entry := range page.Result.OfferMappingEntries {
			offers = append(offers, core.Offer{
				OfferID: entry.Offer.ShopSku,
				SKU:     entry.Mapping.MarketSku,
			})
		}
		pageToken = page.Result.Paging.NextPageToken
		if pageToken == "" {
			break
		}
	}

	s.log.Log("Fetched %d offers for campaign %s", len(offers), s.campaignID)
	return core.NewCatalog(offers), nil
}

func (s *MappingService) fetchPage(ctx context.Context, pageToken string) (*response.OfferMappings, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(s.pageLimit))
	if pageToken != "" {
		query.Set("page_token", pageToken)
	}

	endpoint := fmt.Sprintf("/campaigns/%s/offer-mapping-entries?%s", s.campaignID, query.Encode())
	var page response.OfferMappings
	if err := s.client.DoJSON(ctx, http.MethodGet, endpoint, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}
