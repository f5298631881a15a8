package catalog

import (
	"sort"
	"strings"

	"stockroom-backend/internal/domain"
)

// Catalog is the static item registry: canonical unit prices, display labels,
// category membership, and per-category low-stock thresholds. Prices are the
// one mutable part (admin override); everything else ships with the binary.
type Catalog struct {
	prices     map[string]int
	defaults   map[string]int
	labels     map[string]string
	categories map[string][]string
	byItem     map[string]string
	thresholds map[string]int
}

// Item is the read model served by the catalog listing.
type Item struct {
	Key      string `json:"key"`
	Label    string `json:"label"`
	Category string `json:"category"`
	Price    int    `json:"price"`
}

// Default builds the catalog from the built-in tables in defaults.go.
func Default() *Catalog {
	c := &Catalog{
		prices:     make(map[string]int, len(defaultPrices)),
		defaults:   make(map[string]int, len(defaultPrices)),
		labels:     defaultLabels,
		categories: defaultCategories,
		byItem:     make(map[string]string),
		thresholds: defaultThresholds,
	}
	for item, price := range defaultPrices {
		c.prices[item] = price
		c.defaults[item] = price
	}
	for category, items := range defaultCategories {
		for _, item := range items {
			c.byItem[item] = category
		}
	}
	return c
}

// NormalizeKey canonicalizes a user-supplied item name to a catalog key.
func NormalizeKey(item string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(item)), " ", "_")
}

func (c *Catalog) IsKnownItem(item string) bool {
	_, ok := c.prices[item]
	return ok
}

// PriceFor returns the canonical unit price for the item.
func (c *Catalog) PriceFor(item string) (int, bool) {
	price, ok := c.prices[item]
	return price, ok
}

// LabelFor returns the display label, falling back to the key itself.
func (c *Catalog) LabelFor(item string) string {
	if label, ok := c.labels[item]; ok {
		return label
	}
	return item
}

// CategoryFor returns the item's category ("" if unknown).
func (c *Catalog) CategoryFor(item string) string {
	return c.byItem[item]
}

// Categories returns category names in a stable order.
func (c *Catalog) Categories() []string {
	names := make([]string, 0, len(c.categories))
	for name := range c.categories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ItemsIn returns the catalog order of items within a category.
func (c *Catalog) ItemsIn(category string) []string {
	return c.categories[category]
}

// IsLowStock reports whether the quantity is at or below the category
// threshold. Thresholds of zero disable the check.
func (c *Catalog) IsLowStock(item string, quantity int) bool {
	threshold := c.thresholds[c.byItem[item]]
	return threshold > 0 && quantity <= threshold
}

// SetPrice overrides the canonical price. Returns the previous price.
func (c *Catalog) SetPrice(item string, price int) (int, error) {
	old, ok := c.prices[item]
	if !ok {
		return 0, domain.ErrInvalidItem
	}
	if price <= 0 {
		return 0, domain.ErrInvalidPrice
	}
	c.prices[item] = price
	return old, nil
}

// Overrides returns prices that differ from the shipped defaults. Only these
// are persisted, so items added to the static tables later keep their new
// defaults on restore.
func (c *Catalog) Overrides() map[string]int {
	out := make(map[string]int)
	for item, price := range c.prices {
		if price != c.defaults[item] {
			out[item] = price
		}
	}
	return out
}

// ApplyOverrides merges persisted price overrides over the defaults.
// Overrides for items no longer in the catalog are ignored.
func (c *Catalog) ApplyOverrides(overrides map[string]int) {
	for item, price := range overrides {
		if _, ok := c.prices[item]; ok && price > 0 {
			c.prices[item] = price
		}
	}
}

// Items returns the whole catalog as a flat, category-ordered listing.
func (c *Catalog) Items() []Item {
	out := make([]Item, 0, len(c.prices))
	for _, category := range c.Categories() {
		for _, key := range c.categories[category] {
			out = append(out, Item{
				Key:      key,
				Label:    c.LabelFor(key),
				Category: category,
				Price:    c.prices[key],
			})
		}
	}
	return out
}
