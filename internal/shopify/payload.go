package shopify

import "time"

// OrderPayload is the subset of the Shopify REST order resource the
// production pipeline consumes. Everything else in the payload is ignored.
type OrderPayload struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Note        string            `json:"note"`
	Tags        string            `json:"tags"`
	TotalPrice  string            `json:"total_price"`
	Currency    string            `json:"currency"`
	ProcessedAt time.Time         `json:"processed_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
	LineItems   []LineItemPayload `json:"line_items"`
}

// LineItemPayload is one configured screen in a Shopify order.
type LineItemPayload struct {
	ID         int64             `json:"id"`
	Title      string            `json:"title"`
	Quantity   int               `json:"quantity"`
	Properties []PropertyPayload `json:"properties"`
}

// PropertyPayload is a single customization property on a line item. The
// property names are the storefront's own language; the mapper resolves them.
type PropertyPayload struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type ordersEnvelope struct {
	Orders []OrderPayload `json:"orders"`
}

type orderEnvelope struct {
	Order OrderPayload `json:"order"`
}
