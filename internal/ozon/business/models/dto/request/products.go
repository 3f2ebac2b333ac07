package request

// ImportPrices -- тело POST /v1/product/import/prices. Не более 1000 позиций.
type ImportPrices struct {
	Prices []Price `json:"prices"`
}

type Price struct {
	OfferID      string `json:"offer_id"`
	Price        string `json:"price"`
	OldPrice     string `json:"old_price,omitempty"`
	CurrencyCode string `json:"currency_code"`
}

// UpdateStocks -- тело POST /v2/products/stocks.
type UpdateStocks struct {
	Stocks []Stock `json:"stocks"`
}

type Stock struct {
	OfferID     string `json:"offer_id"`
	ProductID   int64  `json:"product_id,omitempty"`
	WarehouseID int64  `json:"warehouse_id"`
	Stock       int    `json:"stock"`
}
