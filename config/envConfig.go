package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

func init() {
	// .env подхватывается, если лежит рядом; его отсутствие не ошибка.
	_ = godotenv.Load()
}

// ConfigError -- отсутствующий или некорректный параметр конфигурации.
// Фатальна: выявляется до первого сетевого вызова.
type ConfigError struct {
	Field string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: missing required value %s", e.Field)
}

// Credentials -- статические учётные данные маркетплейсов.
// Ротация токенов не поддерживается: значения читаются один раз на запуск.
type Credentials struct {
	OzonClientID    string `envconfig:"OZON_CLIENT_ID"`
	OzonApiKey      string `envconfig:"OZON_API_KEY"`
	OzonWarehouseID int64  `envconfig:"OZON_WAREHOUSE_ID"`

	MarketToken  string `envconfig:"MARKET_TOKEN"`
	CampaignFBS  string `envconfig:"FBS_ID"`
	CampaignDBS  string `envconfig:"DBS_ID"`
	WarehouseFBS string `envconfig:"WAREHOUSE_FBS_ID"`
	WarehouseDBS string `envconfig:"WAREHOUSE_DBS_ID"`
}

// LoadCredentials читает учётные данные из окружения.
func LoadCredentials() (*Credentials, error) {
	var creds Credentials
	if err := envconfig.Process("", &creds); err != nil {
		return nil, fmt.Errorf("failed to load credentials: %w", err)
	}
	return &creds, nil
}

// ValidateOzon проверяет параметры, без которых Ozon-синхронизация невозможна.
func (c *Credentials) ValidateOzon() error {
	if c.OzonClientID == "" {
		return &ConfigError{Field: "OZON_CLIENT_ID"}
	}
	if c.OzonApiKey == "" {
		return &ConfigError{Field: "OZON_API_KEY"}
	}
	if c.OzonWarehouseID == 0 {
		return &ConfigError{Field: "OZON_WAREHOUSE_ID"}
	}
	return nil
}

// ValidateMarket проверяет параметры Яндекс Маркета: токен и обе пары
// кампания/склад (FBS и DBS).
func (c *Credentials) ValidateMarket() error {
	if c.MarketToken == "" {
		return &ConfigError{Field: "MARKET_TOKEN"}
	}
	if c.CampaignFBS == "" {
		return &ConfigError{Field: "FBS_ID"}
	}
	if c.CampaignDBS == "" {
		return &ConfigError{Field: "DBS_ID"}
	}
	if c.WarehouseFBS == "" {
		return &ConfigError{Field: "WAREHOUSE_FBS_ID"}
	}
	if c.WarehouseDBS == "" {
		return &ConfigError{Field: "WAREHOUSE_DBS_ID"}
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
