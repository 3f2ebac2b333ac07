package response

// ProductList -- страница GET /v2/product/list.
type ProductList struct {
	Result ProductListResult `json:"result"`
}

type ProductListResult struct {
	Items  []ProductListItem `json:"items"`
	Total  int               `json:"total"`
	LastID string            `json:"last_id"`
}

type ProductListItem struct {
	ProductID int64  `json:"product_id"`
	OfferID   string `json:"offer_id"`
	SKU       int64  `json:"sku"`
}

// ImportPrices -- ответ на обновление цен: результат по каждой позиции.
type ImportPrices struct {
	Result []ItemResult `json:"result"`
}

// UpdateStocks -- ответ на обновление остатков.
type UpdateStocks struct {
	Result []ItemResult `json:"result"`
}

type ItemResult struct {
	ProductID   int64       `json:"product_id"`
	OfferID     string      `json:"offer_id"`
	WarehouseID int64       `json:"warehouse_id,omitempty"`
	Updated     bool        `json:"updated"`
	Errors      []ItemError `json:"errors"`
}

type ItemError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
