package app

import (
	"context"
	"io"

	"github.com/Leeroy133/seller-apis/config"
	"github.com/Leeroy133/seller-apis/internal/core"
	"github.com/Leeroy133/seller-apis/internal/market/business/services"
	"github.com/Leeroy133/seller-apis/internal/market/business/services/get"
	"github.com/Leeroy133/seller-apis/internal/market/business/services/update"
	"github.com/Leeroy133/seller-apis/internal/remnants"
	"github.com/Leeroy133/seller-apis/pkg/apiclient"
	"github.com/Leeroy133/seller-apis/pkg/logger"
)

// campaign -- пара кампания/склад. Запуск обходит обе схемы размещения.
type campaign struct {
	name        string
	campaignID  string
	warehouseID string
}

// MarketServer -- проход синхронизации Яндекс Маркета по кампаниям FBS и DBS.
type MarketServer struct {
	config *config.AppConfig
	creds  *config.Credentials
	source remnants.Source
	log    logger.Logger
	writer io.Writer
}

func NewMarketServer(cfg *config.AppConfig, creds *config.Credentials, source remnants.Source, writer io.Writer) *MarketServer {
	return &MarketServer{
		config: cfg,
		creds:  creds,
		source: source,
		log:    logger.NewLogger(writer, "[MarketServer]"),
		writer: writer,
	}
}

// Run синхронизирует обе кампании и возвращает отчёт по каждой.
func (s *MarketServer) Run(ctx context.Context) ([]*core.Report, error) {
	auth := services.NewBearerAuth(s.creds.MarketToken)
	client := apiclient.NewClient(s.config.Market.Endpoint, "market", auth, apiclient.Config{
		Timeout:           s.config.HTTP.Timeout,
		MaxRetries:        s.config.HTTP.MaxRetries,
		RetryDelay:        s.config.HTTP.RetryDelay,
		RequestsPerMinute: s.config.HTTP.RequestsPerMinute,
	}, s.writer)

	list, err := s.source.Load(ctx)
	if err != nil {
		return nil, err
	}

	campaigns := []campaign{
		{name: "market/fbs", campaignID: s.creds.CampaignFBS, warehouseID: s.creds.WarehouseFBS},
		{name: "market/dbs", campaignID: s.creds.CampaignDBS, warehouseID: s.creds.WarehouseDBS},
	}

	var reports []*core.Report
	for _, c := range campaigns {
		report, err := s.runCampaign(ctx, client, c, list)
		reports = append(reports, report)
		if err != nil {
			return reports, err
		}
	}
	return reports, nil
}

func (s *MarketServer) runCampaign(ctx context.Context, client *apiclient.Client, c campaign, list []remnants.Remnant) (*core.Report, error) {
	report := core.NewReport(c.name)

	if len(list) == 0 {
		s.log.Log("Remnants source is empty, campaign %s skipped", c.campaignID)
		return report, nil
	}

	catalog, err := get.NewMappingService(client, c.campaignID, s.config.Market.PageLimit, s.writer).FetchAll(ctx)
	if err != nil {
		return report, err
	}

	matched, unmapped := core.Partition(list, catalog)
	report.AddUnmapped(unmapped)
	s.log.Log("Campaign %s: resolved %d of %d remnants against %d offers",
		c.campaignID, len(matched), len(list), catalog.Len())

	missing := catalog.Missing(core.UsedCodes(matched))
	stockService := update.NewStockService(client, c.campaignID, c.warehouseID, s.config.Market.StockBatchSize, s.writer)
	report.Stocks, err = stockService.Update(ctx, matched, missing)
	if err != nil {
		return report, err
	}

	priceService := update.NewPriceService(client, c.campaignID, s.config.Market.Currency, s.config.Market.PriceBatchSize, s.writer)
	report.Prices, err = priceService.Update(ctx, matched)
	if err != nil {
		return report, err
	}

	return report, nil
}
