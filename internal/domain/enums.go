package domain

// ReportMetric selects which per-order figure a report summarizes
type ReportMetric string

const (
	// BILLING - summarize billing_amount (line_sum + additional_charges)
	MetricBilling ReportMetric = "billing"
	// ACTUAL - summarize actual_spend (actual_total_checkout_price metafield)
	MetricActual ReportMetric = "actual"
)

// IsValid checks if the report metric is valid
func (m ReportMetric) IsValid() bool {
	switch m {
	case MetricBilling, MetricActual:
		return true
	default:
		return false
	}
}

// LineItemStatus represents the state of an order line item (Shopify-aligned)
type LineItemStatus string

const (
	LineItemStatusNormal    LineItemStatus = "normal"
	LineItemStatusRemoved   LineItemStatus = "removed"
	LineItemStatusCancelled LineItemStatus = "cancelled"
	LineItemStatusRefunded  LineItemStatus = "refunded"
	LineItemStatusReturned  LineItemStatus = "returned"
)

// IsInactive reports whether the line item no longer counts toward revenue
func (s LineItemStatus) IsInactive() bool {
	switch s {
	case LineItemStatusRemoved, LineItemStatusCancelled, LineItemStatusRefunded, LineItemStatusReturned:
		return true
	default:
		return false
	}
}

// EnrichmentSource tags how a report row's figures were computed, so degraded
// rows are distinguishable from fully enriched ones
type EnrichmentSource string

const (
	// FULL - fulfillment line items and metafields both fetched
	EnrichmentFull EnrichmentSource = "full"
	// LINE_ITEMS - fulfillment fetch failed, line_sum from the order's own line items
	EnrichmentLineItems EnrichmentSource = "line_items"
	// NO_METAFIELDS - metafield fetch failed, charges/actual defaulted to zero
	EnrichmentNoMetafields EnrichmentSource = "no_metafields"
)
