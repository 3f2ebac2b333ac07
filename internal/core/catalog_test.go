package core

import (
	"testing"

	"github.com/Leeroy133/seller-apis/internal/remnants"
)

func fixtureCatalog() *Catalog {
	return NewCatalog([]Offer{
		{OfferID: "71667", SKU: 100001, ProductID: 1},
		{OfferID: "72301", SKU: 100002, ProductID: 2},
		{OfferID: "73115", SKU: 100003, ProductID: 3},
	})
}

func TestPartitionResolvesAndReportsUnmapped(t *testing.T) {
	list := []remnants.Remnant{
		{Code: "71667", Quantity: "5", Price: "5'990.00 руб."},
		{Code: "72301", Quantity: ">10", Price: "12'500.00 руб."},
		{Code: "99999", Quantity: "2", Price: "1'000.00 руб."},
	}

	matched, unmapped := Partition(list, fixtureCatalog())

	if len(matched) != 2 {
		t.Fatalf("expected 2 matched, got %d", len(matched))
	}
	if len(unmapped) != 1 || unmapped[0] != "99999" {
		t.Fatalf("expected unmapped [99999], got %v", unmapped)
	}
	if matched[0].Offer.SKU != 100001 {
		t.Errorf("expected SKU 100001, got %d", matched[0].Offer.SKU)
	}
}

func TestMissingReturnsZeroFillCandidates(t *testing.T) {
	catalog := fixtureCatalog()
	list := []remnants.Remnant{{Code: "71667", Quantity: "5", Price: "100"}}

	matched, _ := Partition(list, catalog)
	missing := catalog.Missing(UsedCodes(matched))

	if len(missing) != 2 {
		t.Fatalf("expected 2 missing offers, got %d", len(missing))
	}
	for _, offer := range missing {
		if offer.OfferID == "71667" {
			t.Errorf("matched offer must not be reported missing")
		}
	}
}

func TestPartitionEmptyInput(t *testing.T) {
	matched, unmapped := Partition(nil, fixtureCatalog())
	if len(matched) != 0 || len(unmapped) != 0 {
		t.Fatalf("expected no output for empty input, got %d/%d", len(matched), len(unmapped))
	}
}
