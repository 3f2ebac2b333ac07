package remnants

import (
	"context"
	"fmt"
	"io"

	"github.com/Leeroy133/seller-apis/pkg/dbconnect"
	"github.com/Leeroy133/seller-apis/pkg/logger"
)

// PostgresSource читает остатки из таблицы (code, quantity, price).
// Таблицу наполняет внешний ETL поставщика, здесь она только читается.
type PostgresSource struct {
	connector dbconnect.Database
	table     string
	log       logger.Logger
}

func NewPostgresSource(connector dbconnect.Database, table string, writer io.Writer) *PostgresSource {
	return &PostgresSource{
		connector: connector,
		table:     table,
		log:       logger.NewLogger(writer, "[pg source]"),
	}
}

func (s *PostgresSource) Load(ctx context.Context) ([]Remnant, error) {
	db, err := s.connector.Connect()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to remnants db: %w", err)
	}

	query := fmt.Sprintf(`SELECT code, quantity, price FROM %s`, s.table)
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("remnants query failed: %w", err)
	}
	defer rows.Close()

	var remnants []Remnant
	for rows.Next() {
		var r Remnant
		if err := rows.Scan(&r.Code, &r.Quantity, &r.Price); err != nil {
			return nil, fmt.Errorf("remnants scan failed: %w", err)
		}
		remnants = append(remnants, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("remnants rows error: %w", err)
	}

	s.log.Log("Loaded %d remnants from table %s", len(remnants), s.table)
	return remnants, nil
}
