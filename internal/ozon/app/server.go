package app

import (
	"context"
	"io"

	"github.com/Leeroy133/seller-apis/config"
	"github.com/Leeroy133/seller-apis/internal/core"
	"github.com/Leeroy133/seller-apis/internal/ozon/business/services"
	"github.com/Leeroy133/seller-apis/internal/ozon/business/services/get"
	"github.com/Leeroy133/seller-apis/internal/ozon/business/services/update"
	"github.com/Leeroy133/seller-apis/internal/remnants"
	"github.com/Leeroy133/seller-apis/pkg/apiclient"
	"github.com/Leeroy133/seller-apis/pkg/logger"
)

// OzonServer -- один проход синхронизации Ozon:
// остатки -> каталог -> сопоставление -> цены -> остатки -> отчёт.
type OzonServer struct {
	config *config.AppConfig
	creds  *config.Credentials
	source remnants.Source
	log    logger.Logger
	writer io.Writer
}

func NewOzonServer(cfg *config.AppConfig, creds *config.Credentials, source remnants.Source, writer io.Writer) *OzonServer {
	return &OzonServer{
		config: cfg,
		creds:  creds,
		source: source,
		log:    logger.NewLogger(writer, "[OzonServer]"),
		writer: writer,
	}
}

func (s *OzonServer) Run(ctx context.Context) (*core.Report, error) {
	report := core.NewReport("ozon")

	auth := services.NewApiKeyAuth(s.creds.OzonClientID, s.creds.OzonApiKey)
	client := apiclient.NewClient(s.config.Ozon.Endpoint, "ozon", auth, apiclient.Config{
		Timeout:           s.config.HTTP.Timeout,
		MaxRetries:        s.config.HTTP.MaxRetries,
		RetryDelay:        s.config.HTTP.RetryDelay,
		RequestsPerMinute: s.config.HTTP.RequestsPerMinute,
	}, s.writer)

	list, err := s.source.Load(ctx)
	if err != nil {
		return report, err
	}
	if len(list) == 0 {
		s.log.Log("Remnants source is empty, nothing to update")
		return report, nil
	}

	catalog, err := get.NewCatalogService(client, s.config.Ozon.PageLimit, s.writer).FetchAll(ctx)
	if err != nil {
		return report, err
	}

	matched, unmapped := core.Partition(list, catalog)
	report.AddUnmapped(unmapped)
	s.log.Log("Resolved %d of %d remnants against %d catalog offers", len(matched), len(list), catalog.Len())

	priceService := update.NewPriceService(client, s.config.Ozon.PriceBatchSize, s.config.Ozon.Currency, s.writer)
	report.Prices, err = priceService.Update(ctx, matched)
	if err != nil {
		return report, err
	}

	missing := catalog.Missing(core.UsedCodes(matched))
	stockService := update.NewStockService(client, s.config.Ozon.StockBatchSize, s.creds.OzonWarehouseID, s.writer)
	report.Stocks, err = stockService.Update(ctx, matched, missing)
	if err != nil {
		return report, err
	}

	return report, nil
}
