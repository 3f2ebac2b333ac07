package get

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Leeroy133/seller-apis/internal/market/business/models/dto/response"
	"github.com/Leeroy133/seller-apis/internal/market/business/services"
	"github.com/Leeroy133/seller-apis/pkg/apiclient"
)

func newTestClient(url string) *apiclient.Client {
	auth := services.NewBearerAuth("market-token")
	return apiclient.NewClient(url, "market", auth, apiclient.Config{
		Timeout:    5 * time.Second,
		RetryDelay: time.Millisecond,
	}, nil)
}

func TestFetchAllFollowsPageToken(t *testing.T) {
	pages := map[string]response.OfferMappings{
		"": {Result: response.OfferMappingsResult{
			OfferMappingEntries: []response.OfferMappingEntry{
				{Offer: response.MappedOffer{ShopSku: "71667"}, Mapping: response.Mapping{MarketSku: 900001}},
				{Offer: response.MappedOffer{ShopSku: "72301"}, Mapping: response.Mapping{MarketSku: 900002}},
			},
			Paging: response.Paging{NextPageToken: "token-1"},
		}},
		"token-1": {Result: response.OfferMappingsResult{
			OfferMappingEntries: []response.OfferMappingEntry{
				{Offer: response.MappedOffer{ShopSku: "73115"}, Mapping: response.Mapping{MarketSku: 900003}},
			},
		}},
	}

	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if r.URL.Path != "/campaigns/12345/offer-mapping-entries" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer market-token" {
			t.Errorf("bearer token missing")
		}
		if r.URL.Query().Get("limit") != "200" {
			t.Errorf("unexpected limit: %s", r.URL.Query().Get("limit"))
		}
		page := pages[r.URL.Query().Get("page_token")]
		json.NewEncoder(w).Encode(page)
	}))
	defer server.Close()

	catalog, err := NewMappingService(newTestClient(server.URL), "12345", 200, nil).FetchAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if catalog.Len() != 3 {
		t.Fatalf("expected 3 offers, got %d", catalog.Len())
	}
	if requests != 2 {
		t.Fatalf("expected 2 page requests, got %d", requests)
	}
	offer, ok := catalog.Resolve("73115")
	if !ok || offer.SKU != 900003 {
		t.Errorf("offer from second page not resolved: %+v", offer)
	}
}
