package remnants

import (
	"context"
	"io"

	"github.com/Leeroy133/seller-apis/config"
	"github.com/Leeroy133/seller-apis/pkg/dbconnect/postgres"
)

// Source отдаёт полный список остатков. Источник перечитывается на каждом
// запуске, промежуточного хранилища нет.
type Source interface {
	Load(ctx context.Context) ([]Remnant, error)
}

// NewSource выбирает реализацию по конфигу.
func NewSource(cfg config.SourceConfig, writer io.Writer) (Source, error) {
	switch cfg.Type {
	case "csv":
		return NewCSVSource(cfg.Path, writer), nil
	case "postgres":
		pgConfig := cfg.Postgres
		if pgConfig.Host == "" {
			pgConfig = *config.GetPostgresConfig()
		}
		return NewPostgresSource(postgres.NewPgConnector(pgConfig), cfg.Table, writer), nil
	default:
		return nil, &config.ConfigError{Field: "source.type"}
	}
}
