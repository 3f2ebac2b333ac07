package services

import (
	"net/http"
)

// ApiKeyAuth подписывает запросы заголовками Client-Id и Api-Key
// по схеме Ozon Seller API.
type ApiKeyAuth struct {
	clientID string
	apiKey   string
}

func (a *ApiKeyAuth) GetApiKey() string {
	return a.apiKey
}

func (a *ApiKeyAuth) SetApiKey(request *http.Request) {
	request.Header.Set("Client-Id", a.clientID)
	request.Header.Set("Api-Key", a.apiKey)
}

func NewApiKeyAuth(clientID, apiKey string) *ApiKeyAuth {
	if clientID == "" || apiKey == "" {
		return nil
	}
	return &ApiKeyAuth{clientID: clientID, apiKey: apiKey}
}
