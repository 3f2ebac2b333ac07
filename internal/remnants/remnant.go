// Package remnants загружает локальный источник остатков -- выгрузку
// поставщика с колонками "Код", "Количество", "Цена".
package remnants

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Remnant -- одна позиция локального прайс-листа. Значения хранятся как в
// выгрузке: количество и цена приводятся к числам только при построении
// запросов.
type Remnant struct {
	Code     string
	Quantity string
	Price    string
}

// StockCount переводит текстовое количество в остаток для маркетплейса.
// Поставщик пишет ">10" вместо точного большого остатка, а "1" означает
// последний выставочный экземпляр, который не продаём.
func (r Remnant) StockCount() (int, error) {
	quantity := strings.TrimSpace(r.Quantity)
	switch quantity {
	case ">10":
		return 100, nil
	case "1":
		return 0, nil
	}
	count, err := strconv.Atoi(quantity)
	if err != nil {
		return 0, fmt.Errorf("invalid quantity %q for code %s", r.Quantity, r.Code)
	}
	return count, nil
}

// PriceValue переводит цену вида "5'990.00 руб." в целые рубли (5990).
func (r Remnant) PriceValue() (int64, error) {
	cleaned := strings.NewReplacer("'", "", " ", "", " ", "").Replace(strings.TrimSpace(r.Price))

	end := 0
	for end < len(cleaned) {
		ch := cleaned[end]
		if (ch < '0' || ch > '9') && ch != '.' && ch != ',' {
			break
		}
		end++
	}
	cleaned = strings.ReplaceAll(cleaned[:end], ",", ".")
	if cleaned == "" {
		return 0, fmt.Errorf("invalid price %q for code %s", r.Price, r.Code)
	}

	value, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0, fmt.Errorf("invalid price %q for code %s: %w", r.Price, r.Code, err)
	}
	return value.IntPart(), nil
}
