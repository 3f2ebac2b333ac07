// Package core -- сопоставление локальных остатков с каталогом маркетплейса
// и агрегирование итогов запуска.
package core

import (
	"github.com/Leeroy133/seller-apis/internal/remnants"
)

// Offer -- позиция удалённого каталога. SKU присваивает маркетплейс,
// OfferID задаёт продавец и он же служит ключом сопоставления с кодом
// локального остатка.
type Offer struct {
	OfferID   string
	SKU       int64
	ProductID int64
}

// Catalog -- отображение offer_id -> Offer, собранное постраничным обходом.
type Catalog struct {
	byOffer map[string]Offer
}

func NewCatalog(offers []Offer) *Catalog {
	byOffer := make(map[string]Offer, len(offers))
	for _, offer := range offers {
		byOffer[offer.OfferID] = offer
	}
	return &Catalog{byOffer: byOffer}
}

func (c *Catalog) Len() int {
	return len(c.byOffer)
}

func (c *Catalog) Resolve(code string) (Offer, bool) {
	offer, ok := c.byOffer[code]
	return offer, ok
}

// Missing возвращает позиции каталога, кодов которых нет среди usedCodes.
// По ним остаток обнуляется, чтобы не продавать то, чего нет в выгрузке.
func (c *Catalog) Missing(usedCodes map[string]struct{}) []Offer {
	var missing []Offer
	for code, offer := range c.byOffer {
		if _, ok := usedCodes[code]; !ok {
			missing = append(missing, offer)
		}
	}
	return missing
}

// Matched -- остаток, разрешённый ровно в одну удалённую позицию.
type Matched struct {
	Remnant remnants.Remnant
	Offer   Offer
}

// Partition делит остатки на сопоставленные и несопоставленные.
// Несопоставленный код не порождает ни одного запроса к API.
func Partition(list []remnants.Remnant, catalog *Catalog) (matched []Matched, unmapped []string) {
	for _, remnant := range list {
		offer, ok := catalog.Resolve(remnant.Code)
		if !ok {
			unmapped = append(unmapped, remnant.Code)
			continue
		}
		matched = append(matched, Matched{Remnant: remnant, Offer: offer})
	}
	return matched, unmapped
}

// UsedCodes собирает множество кодов из сопоставленных остатков.
func UsedCodes(matched []Matched) map[string]struct{} {
	codes := make(map[string]struct{}, len(matched))
	for _, m := range matched {
		codes[m.Remnant.Code] = struct{}{}
	}
	return codes
}
