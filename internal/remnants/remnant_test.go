package remnants

import (
	"testing"
)

func TestStockCount(t *testing.T) {
	cases := []struct {
		quantity string
		want     int
		wantErr  bool
	}{
		{">10", 100, false},
		{"1", 0, false},
		{"5", 5, false},
		{"0", 0, false},
		{" 3 ", 3, false},
		{"много", 0, true},
		{"", 0, true},
	}

	for _, tc := range cases {
		r := Remnant{Code: "sku1", Quantity: tc.quantity}
		got, err := r.StockCount()
		if tc.wantErr {
			if err == nil {
				t.Errorf("quantity %q: expected error", tc.quantity)
			}
			continue
		}
		if err != nil {
			t.Errorf("quantity %q: unexpected error: %s", tc.quantity, err)
			continue
		}
		if got != tc.want {
			t.Errorf("quantity %q: expected %d, got %d", tc.quantity, tc.want, got)
		}
	}
}

func TestPriceValue(t *testing.T) {
	cases := []struct {
		price   string
		want    int64
		wantErr bool
	}{
		{"5'990.00 руб.", 5990, false},
		{"1'200'500.00 руб.", 1200500, false},
		{"990", 990, false},
		{"1500,50", 1500, false},
		{"руб.", 0, true},
		{"", 0, true},
	}

	for _, tc := range cases {
		r := Remnant{Code: "sku1", Price: tc.price}
		got, err := r.PriceValue()
		if tc.wantErr {
			if err == nil {
				t.Errorf("price %q: expected error", tc.price)
			}
			continue
		}
		if err != nil {
			t.Errorf("price %q: unexpected error: %s", tc.price, err)
			continue
		}
		if got != tc.want {
			t.Errorf("price %q: expected %d, got %d", tc.price, tc.want, got)
		}
	}
}
