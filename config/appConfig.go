package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// AppConfig -- все настраиваемые параметры синхронизации.
// Секреты (токены, идентификаторы кампаний) живут в окружении, см. Credentials.
type AppConfig struct {
	Ozon    OzonConfig    `yaml:"ozon"`
	Market  MarketConfig  `yaml:"market"`
	Source  SourceConfig  `yaml:"source"`
	HTTP    HTTPConfig    `yaml:"http"`
	Metrics MetricsConfig `yaml:"metrics"`
}

type OzonConfig struct {
	Endpoint       string `yaml:"endpoint"`
	PageLimit      int    `yaml:"page_limit"`
	PriceBatchSize int    `yaml:"price_batch_size"`
	StockBatchSize int    `yaml:"stock_batch_size"`
	Currency       string `yaml:"currency"`
}

type MarketConfig struct {
	Endpoint       string `yaml:"endpoint"`
	PageLimit      int    `yaml:"page_limit"`
	PriceBatchSize int    `yaml:"price_batch_size"`
	StockBatchSize int    `yaml:"stock_batch_size"`
	Currency       string `yaml:"currency"`
}

// SourceConfig описывает локальный источник остатков.
// type: "csv" либо "postgres".
type SourceConfig struct {
	Type     string         `yaml:"type"`
	Path     string         `yaml:"path"`
	Table    string         `yaml:"table"`
	Postgres PostgresConfig `yaml:"postgres"`
}

type HTTPConfig struct {
	Timeout           time.Duration `yaml:"-"`
	MaxRetries        int           `yaml:"max_retries"`
	RetryDelay        time.Duration `yaml:"-"`
	RequestsPerMinute int           `yaml:"requests_per_minute"`
}

// UnmarshalYAML принимает длительности в виде строк ("30s", "2s").
func (h *HTTPConfig) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		Timeout           string `yaml:"timeout"`
		MaxRetries        int    `yaml:"max_retries"`
		RetryDelay        string `yaml:"retry_delay"`
		RequestsPerMinute int    `yaml:"requests_per_minute"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	h.MaxRetries = raw.MaxRetries
	h.RequestsPerMinute = raw.RequestsPerMinute
	if raw.Timeout != "" {
		timeout, err := time.ParseDuration(raw.Timeout)
		if err != nil {
			return fmt.Errorf("http.timeout: %w", err)
		}
		h.Timeout = timeout
	}
	if raw.RetryDelay != "" {
		delay, err := time.ParseDuration(raw.RetryDelay)
		if err != nil {
			return fmt.Errorf("http.retry_delay: %w", err)
		}
		h.RetryDelay = delay
	}
	return nil
}

type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

// LoadConfig читает yaml-конфиг. Отсутствующий файл не ошибка:
// в этом случае применяются значения по умолчанию.
func LoadConfig(filename string) (*AppConfig, error) {
	config := &AppConfig{}

	file, err := os.Open(filename)
	if err == nil {
		defer file.Close()
		decoder := yaml.NewDecoder(file)
		if err := decoder.Decode(config); err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	config.applyDefaults()
	return config, nil
}

func (c *AppConfig) applyDefaults() {
	if c.Ozon.Endpoint == "" {
		c.Ozon.Endpoint = "https://api-seller.ozon.ru"
	}
	if c.Ozon.PageLimit == 0 {
		c.Ozon.PageLimit = 1000
	}
	if c.Ozon.PriceBatchSize == 0 {
		c.Ozon.PriceBatchSize = 1000
	}
	if c.Ozon.StockBatchSize == 0 {
		c.Ozon.StockBatchSize = 100
	}
	if c.Ozon.Currency == "" {
		c.Ozon.Currency = "RUB"
	}
	if c.Market.Endpoint == "" {
		c.Market.Endpoint = "https://api.partner.market.yandex.ru"
	}
	if c.Market.PageLimit == 0 {
		c.Market.PageLimit = 200
	}
	if c.Market.PriceBatchSize == 0 {
		c.Market.PriceBatchSize = 500
	}
	if c.Market.StockBatchSize == 0 {
		c.Market.StockBatchSize = 2000
	}
	if c.Market.Currency == "" {
		c.Market.Currency = "RUR"
	}
	if c.Source.Type == "" {
		c.Source.Type = "csv"
	}
	if c.Source.Path == "" {
		c.Source.Path = "remnants.csv"
	}
	if c.Source.Table == "" {
		c.Source.Table = "remnants"
	}
	if c.HTTP.Timeout == 0 {
		c.HTTP.Timeout = 30 * time.Second
	}
	if c.HTTP.MaxRetries == 0 {
		c.HTTP.MaxRetries = 3
	}
	if c.HTTP.RetryDelay == 0 {
		c.HTTP.RetryDelay = 2 * time.Second
	}
	if c.HTTP.RequestsPerMinute == 0 {
		c.HTTP.RequestsPerMinute = 60
	}
}
