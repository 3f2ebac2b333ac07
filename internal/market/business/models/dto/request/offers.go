package request

// UpdateStocks -- тело PUT /campaigns/{id}/offers/stocks.
type UpdateStocks struct {
	Skus []StockSku `json:"skus"`
}

type StockSku struct {
	Sku         string      `json:"sku"`
	WarehouseID string      `json:"warehouseId"`
	Items       []StockItem `json:"items"`
}

type StockItem struct {
	Count     int    `json:"count"`
	Type      string `json:"type"`
	UpdatedAt string `json:"updatedAt"`
}

// UpdatePrices -- тело POST /campaigns/{id}/offer-prices/updates.
type UpdatePrices struct {
	Offers []OfferPrice `json:"offers"`
}

type OfferPrice struct {
	ID    string     `json:"id"`
	Price PriceValue `json:"price"`
}

type PriceValue struct {
	Value      int64  `json:"value"`
	CurrencyID string `json:"currencyId"`
}
