package update

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Leeroy133/seller-apis/internal/core"
	"github.com/Leeroy133/seller-apis/internal/ozon/business/models/dto/request"
	"github.com/Leeroy133/seller-apis/internal/ozon/business/models/dto/response"
	"github.com/Leeroy133/seller-apis/internal/remnants"
)

func remnantFixture(code, quantity string) remnants.Remnant {
	return remnants.Remnant{Code: code, Quantity: quantity, Price: "1'000.00 руб."}
}

func TestStockUpdateAppliesQuantityRulesAndZeroFill(t *testing.T) {
	var received []request.Stock
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/products/stocks" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		var body request.UpdateStocks
		json.NewDecoder(r.Body).Decode(&body)
		received = append(received, body.Stocks...)
		json.NewEncoder(w).Encode(response.UpdateStocks{})
	}))
	defer server.Close()

	matched := []core.Matched{
		{
			Remnant: remnantFixture("71667", ">10"),
			Offer:   core.Offer{OfferID: "71667", ProductID: 1},
		},
		{
			Remnant: remnantFixture("72301", "1"),
			Offer:   core.Offer{OfferID: "72301", ProductID: 2},
		},
	}
	missing := []core.Offer{{OfferID: "73115", ProductID: 3}}

	service := NewStockService(newTestClient(server.URL, 0), 100, 555, nil)
	result, err := service.Update(context.Background(), matched, missing)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	if len(received) != 3 {
		t.Fatalf("expected 3 stock items, got %d", len(received))
	}
	byOffer := map[string]request.Stock{}
	for _, item := range received {
		byOffer[item.OfferID] = item
		if item.WarehouseID != 555 {
			t.Errorf("offer %s: expected warehouse 555, got %d", item.OfferID, item.WarehouseID)
		}
	}
	if byOffer["71667"].Stock != 100 {
		t.Errorf(`">10" must become 100, got %d`, byOffer["71667"].Stock)
	}
	if byOffer["72301"].Stock != 0 {
		t.Errorf(`"1" must become 0, got %d`, byOffer["72301"].Stock)
	}
	if byOffer["73115"].Stock != 0 {
		t.Errorf("missing offer must be zero-filled, got %d", byOffer["73115"].Stock)
	}
	if result.Updated != 3 {
		t.Errorf("expected 3 updated, got %d", result.Updated)
	}
}

func TestStockUpdateInvalidQuantitySkipped(t *testing.T) {
	var sent int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body request.UpdateStocks
		json.NewDecoder(r.Body).Decode(&body)
		sent += len(body.Stocks)
		json.NewEncoder(w).Encode(response.UpdateStocks{})
	}))
	defer server.Close()

	matched := []core.Matched{
		{Remnant: remnantFixture("71667", "мало"), Offer: core.Offer{OfferID: "71667"}},
		{Remnant: remnantFixture("72301", "4"), Offer: core.Offer{OfferID: "72301"}},
	}

	service := NewStockService(newTestClient(server.URL, 0), 100, 555, nil)
	result, err := service.Update(context.Background(), matched, nil)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if result.Skipped != 1 {
		t.Errorf("expected 1 skipped, got %d", result.Skipped)
	}
	if sent != 1 {
		t.Errorf("expected 1 item sent, got %d", sent)
	}
	if len(result.ItemErrors) != 1 || result.ItemErrors[0].Code != "INVALID_QUANTITY" {
		t.Errorf("expected INVALID_QUANTITY item error, got %v", result.ItemErrors)
	}
}
