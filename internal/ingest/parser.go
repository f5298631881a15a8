package ingest

import (
	"regexp"
	"strconv"
	"strings"

	"stockroom-backend/internal/catalog"
	"stockroom-backend/internal/domain"
)

// Sale-notification formats seen in the wild. The upstream webhook embeds the
// fields in free text with optional markdown bold, in one of two layouts:
//
//	Name: **bud_ogkush** ... 3x ... Profit: **$2400**
//	3x bud_ogkush purchased for $2400
var (
	reNameLine  = regexp.MustCompile(`(?i)name:\s*\*{0,2}([a-z0-9_]+)`)
	reInlineBuy = regexp.MustCompile(`(?i)(\d+)x\s+([a-z0-9_]+)\s+purchased`)
	reQuantity  = regexp.MustCompile(`(?i)(\d+)x`)
	reProfit    = regexp.MustCompile(`(?i)profit:\s*\*{0,2}\$?([\d,]+)`)
	rePaid      = regexp.MustCompile(`(?i)purchased\s+for\s+\$?([\d,]+)`)
)

// ParsedSale is the normalized result of parsing one notification.
type ParsedSale struct {
	Item      string `json:"item"`
	Quantity  int    `json:"quantity"`
	UnitPrice int    `json:"unit_price"`
	Total     int    `json:"total"`
}

func parseMoney(s string) (int, bool) {
	n, err := strconv.Atoi(strings.ReplaceAll(s, ",", ""))
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// Parse extracts item, quantity and realized value from a sale notification.
// Quantity defaults to 1 when the text names an item but carries no count.
// The per-unit price is the floor of the total over the quantity.
func Parse(text string) (*ParsedSale, error) {
	if strings.TrimSpace(text) == "" {
		return nil, domain.ErrParseFailure
	}

	var item string
	quantity := 0

	if m := reInlineBuy.FindStringSubmatch(text); m != nil {
		quantity, _ = strconv.Atoi(m[1])
		item = catalog.NormalizeKey(m[2])
	} else if m := reNameLine.FindStringSubmatch(text); m != nil {
		item = catalog.NormalizeKey(m[1])
		if q := reQuantity.FindStringSubmatch(text); q != nil {
			quantity, _ = strconv.Atoi(q[1])
		}
		if quantity == 0 {
			quantity = 1
		}
	}
	if item == "" || quantity <= 0 {
		return nil, domain.ErrParseFailure
	}

	total := 0
	if m := reProfit.FindStringSubmatch(text); m != nil {
		if n, ok := parseMoney(m[1]); ok {
			total = n
		}
	}
	if total == 0 {
		if m := rePaid.FindStringSubmatch(text); m != nil {
			if n, ok := parseMoney(m[1]); ok {
				total = n
			}
		}
	}
	if total == 0 {
		return nil, domain.ErrParseFailure
	}

	unit := total / quantity
	if unit <= 0 {
		return nil, domain.ErrParseFailure
	}

	return &ParsedSale{Item: item, Quantity: quantity, UnitPrice: unit, Total: total}, nil
}
