package remnants

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/Leeroy133/seller-apis/pkg/logger"
)

// Колонки выгрузки поставщика.
const (
	columnCode     = "Код"
	columnQuantity = "Количество"
	columnPrice    = "Цена"
)

// CSVSource читает выгрузку остатков: разделитель ';', кодировка Windows-1251.
type CSVSource struct {
	path string
	log  logger.Logger
}

func NewCSVSource(path string, writer io.Writer) *CSVSource {
	return &CSVSource{
		path: path,
		log:  logger.NewLogger(writer, "[csv source]"),
	}
}

func (s *CSVSource) Load(ctx context.Context) ([]Remnant, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open remnants file: %w", err)
	}
	defer file.Close()

	remnants, err := ParseCSV(file)
	if err != nil {
		return nil, err
	}
	s.log.Log("Loaded %d remnants from %s", len(remnants), s.path)
	return remnants, nil
}

// ParseCSV читает CSV данные из reader, декодируя из Windows-1251.
// Первая строка трактуется как заголовок, если содержит известные колонки,
// иначе колонки берутся позиционно: код, количество, цена.
func ParseCSV(reader io.Reader) ([]Remnant, error) {
	decoder := transform.NewReader(reader, charmap.Windows1251.NewDecoder())
	csvReader := csv.NewReader(decoder)
	csvReader.Comma = ';'
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	allRows, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv read error: %w", err)
	}
	if len(allRows) == 0 {
		return nil, fmt.Errorf("csv data is empty")
	}

	codeIdx, quantityIdx, priceIdx := 0, 1, 2
	data := allRows
	if isHeader(allRows[0]) {
		header := allRows[0]
		data = allRows[1:]
		codeIdx = indexOf(header, columnCode)
		quantityIdx = indexOf(header, columnQuantity)
		priceIdx = indexOf(header, columnPrice)
		if codeIdx < 0 || quantityIdx < 0 || priceIdx < 0 {
			return nil, fmt.Errorf("csv header is missing required columns")
		}
	}

	remnants := make([]Remnant, 0, len(data))
	for _, row := range data {
		remnants = append(remnants, Remnant{
			Code:     cell(row, codeIdx),
			Quantity: cell(row, quantityIdx),
			Price:    cell(row, priceIdx),
		})
	}
	return remnants, nil
}

func isHeader(row []string) bool {
	for _, known := range []string{columnCode, columnQuantity, columnPrice} {
		if indexOf(row, known) >= 0 {
			return true
		}
	}
	return false
}

func indexOf(slice []string, str string) int {
	for i, s := range slice {
		if s == str {
			return i
		}
	}
	return -1
}

func cell(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}
