package payment

import "os"

const (
	SelectionSubscription = "subscription"
	SelectionCredits      = "credits"
)

// Selection is one purchasable item: a Stripe price plus the credit grant the
// webhook applies once the checkout completes.
type Selection struct {
	PriceID string
	Credits int64
	Mode    string // "payment" or "subscription"
}

// Catalog maps the pricing page's selections to Stripe prices. Price ids come
// from the environment so test and live mode can use different catalogs.
type Catalog struct {
	subscriptions map[string]Selection
	creditPacks   map[string]Selection
}

func LoadCatalog() *Catalog {
	return &Catalog{
		subscriptions: map[string]Selection{
			"starter": {PriceID: envOrDefault("STRIPE_PRICE_STARTER", "price_starter"), Credits: 10, Mode: "subscription"},
			"pro":     {PriceID: envOrDefault("STRIPE_PRICE_PRO", "price_pro"), Credits: 30, Mode: "subscription"},
			"premium": {PriceID: envOrDefault("STRIPE_PRICE_PREMIUM", "price_premium"), Credits: 100, Mode: "subscription"},
		},
		creditPacks: map[string]Selection{
			"5":  {PriceID: envOrDefault("STRIPE_PRICE_CREDITS_5", "price_credits_5"), Credits: 5, Mode: "payment"},
			"15": {PriceID: envOrDefault("STRIPE_PRICE_CREDITS_15", "price_credits_15"), Credits: 15, Mode: "payment"},
			"25": {PriceID: envOrDefault("STRIPE_PRICE_CREDITS_25", "price_credits_25"), Credits: 25, Mode: "payment"},
			"50": {PriceID: envOrDefault("STRIPE_PRICE_CREDITS_50", "price_credits_50"), Credits: 50, Mode: "payment"},
		},
	}
}

// Resolve returns the selection for a checkout request, or false when the
// type/id pair does not name anything purchasable.
func (c *Catalog) Resolve(selectionType, id string) (Selection, bool) {
	switch selectionType {
	case SelectionSubscription:
		sel, ok := c.subscriptions[id]
		return sel, ok
	case SelectionCredits:
		sel, ok := c.creditPacks[id]
		return sel, ok
	}
	return Selection{}, false
}

func envOrDefault(name, def string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return def
}
