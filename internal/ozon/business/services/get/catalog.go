package get

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Leeroy133/seller-apis/internal/core"
	"github.com/Leeroy133/seller-apis/internal/ozon/business/models/dto/response"
	"github.com/Leeroy133/seller-apis/pkg/apiclient"
	"github.com/Leeroy133/seller-apis/pkg/logger"
)

const productListEndpoint = "/v2/product/list"

// CatalogService обходит каталог продавца постранично по курсору last_id
// и строит отображение offer_id -> SKU.
type CatalogService struct {
	client    *apiclient.Client
	pageLimit int
	log       logger.Logger
}

func NewCatalogService(client *apiclient.Client, pageLimit int, writer io.Writer) *CatalogService {
	return &CatalogService{
		client:    client,
		pageLimit: pageLimit,
		log:       logger.NewLogger(writer, "[ozon catalog]"),
	}
}

// FetchAll вызывает список товаров до исчерпания страниц.
func (s *CatalogService) FetchAll(ctx context.Context) (*core.Catalog, error) {
	var offers []core.Offer
	lastID := ""

	for {
		page, err := s.fetchPage(ctx, lastID)
		if err != nil {
			return nil, err
		}
		for _, item := range page.Result.Items {
			offers = append(offers, core.Offer{
				OfferID:   item.OfferID,
				SKU:       item.SKU,
				ProductID: item.ProductID,
			})
		}
		if len(page.Result.Items) == 0 || len(page.Result.Items) < s.pageLimit || page.Result.LastID == "" {
			break
		}
		lastID = page.Result.LastID
	}

	s.log.Log("Fetched %d offers from catalog", len(offers))
	return core.NewCatalog(offers), nil
}

func (s *CatalogService) fetchPage(ctx context.Context, lastID string) (*response.ProductList, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(s.pageLimit))
	if lastID != "" {
		query.Set("last_id", lastID)
	}

	var page response.ProductList
	endpoint := productListEndpoint + "?" + query.Encode()
	if err := s.client.DoJSON(ctx, http.MethodGet, endpoint, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}
