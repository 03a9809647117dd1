package domain

import "time"

// Order is the subset of a Shopify REST order the service consumes.
// Money fields arrive as decimal strings (Shopify REST convention).
type Order struct {
	ID                int64      `json:"id"`
	Name              string     `json:"name"`
	OrderNumber       int64      `json:"order_number"`
	CreatedAt         time.Time  `json:"created_at"`
	FulfillmentStatus string     `json:"fulfillment_status"`
	Customer          *Customer  `json:"customer,omitempty"`
	LineItems         []LineItem `json:"line_items"`
}

// Customer is the order-embedded customer record
type Customer struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// LineItem belongs to exactly one order
type LineItem struct {
	Name                string         `json:"name"`
	Price               string         `json:"price"`
	Quantity            int            `json:"quantity"`
	Status              LineItemStatus `json:"status,omitempty"`
	FulfillableQuantity int            `json:"fulfillable_quantity"`
	CurrentQuantity     int            `json:"current_quantity"`
}

// Metafield is one custom (namespace, key) entry on an order.
// Value can be a raw number, a JSON object with an "amount" field, or free
// text with a leading numeric prefix.
type Metafield struct {
	Namespace string `json:"namespace"`
	Key       string `json:"key"`
	Value     string `json:"value"`
	Type      string `json:"type,omitempty"`
}

// Fulfillment is fetched per order via GraphQL; status "SUCCESS" means completed
type Fulfillment struct {
	Status    string                `json:"status"`
	LineItems []FulfillmentLineItem `json:"line_items"`
}

// FulfillmentLineItem carries the fulfilled quantity and its total amount
type FulfillmentLineItem struct {
	Quantity    int     `json:"quantity"`
	TotalAmount float64 `json:"total_amount"`
}

// ReportRow is the per-order output of the report aggregator.
// BillingAmount is always LineSum + AdditionalCharges, never the upstream
// order total.
type ReportRow struct {
	OrderID           int64            `json:"orderId"`
	OrderNumber       string           `json:"orderNumber"`
	Date              time.Time        `json:"date"`
	CustomerID        int64            `json:"customerId,omitempty"`
	CustomerName      string           `json:"customerName,omitempty"`
	CustomerEmail     string           `json:"customerEmail,omitempty"`
	LineSum           float64          `json:"line_sum"`
	AdditionalCharges float64          `json:"additional_charges"`
	BillingAmount     float64          `json:"billing_amount"`
	ActualSpend       float64          `json:"actual_spend"`
	ProfitMargin      float64          `json:"profit_margin"`
	Enrichment        EnrichmentSource `json:"enrichment"`
}

// SummaryGroup aggregates report rows by (customer key, UTC year-month).
// ProfitMargin is recomputed from the group totals, not averaged over rows.
type SummaryGroup struct {
	Customer     string  `json:"customer"`
	Month        string  `json:"month"`
	Orders       int     `json:"orders"`
	Amount       float64 `json:"amount"`
	TotalBilling float64 `json:"total_billing"`
	TotalActual  float64 `json:"total_actual"`
	OrderNumbers string  `json:"order_numbers"`
	ProfitMargin float64 `json:"profit_margin"`
}

// ReportAnalytics summarizes a whole report. AvgProfitMargin is the mean of
// group-level margins (which can differ from a margin recomputed over the
// grand totals).
type ReportAnalytics struct {
	TotalRevenue    float64 `json:"totalRevenue"`
	TotalOrders     int     `json:"totalOrders"`
	UniqueCustomers int     `json:"uniqueCustomers"`
	AvgProfitMargin float64 `json:"avgProfitMargin"`
}
