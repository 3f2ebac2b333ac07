package response

// OfferMappings -- страница GET /campaigns/{id}/offer-mapping-entries.
type OfferMappings struct {
	Result OfferMappingsResult `json:"result"`
}

type OfferMappingsResult struct {
	Paging              Paging              `json:"paging"`
	OfferMappingEntries []OfferMappingEntry `json:"offerMappingEntries"`
}

type Paging struct {
	NextPageToken string `json:"nextPageToken"`
}

type OfferMappingEntry struct {
	Offer   MappedOffer `json:"offer"`
	Mapping Mapping     `json:"mapping"`
}

type MappedOffer struct {
	ShopSku string `json:"shopSku"`
}

type Mapping struct {
	MarketSku int64 `json:"marketSku"`
}

// UpdateStatus -- общий ответ Маркета на запросы обновления.
type UpdateStatus struct {
	Status string     `json:"status"`
	Errors []APIError `json:"errors"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
