package service

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/jafarshop/revenuereports/internal/domain"
	"github.com/jafarshop/revenuereports/internal/shopify"
)

const (
	metafieldKeyAdditionalCharges = "additional_charges"
	metafieldKeyActualTotal       = "actual_total_checkout_price"
)

// enrichOrder turns one fetched order into a report row. Upstream failures
// never drop the order: a failed fulfillment fetch falls back to the order's
// own line items, and a failed metafield fetch keeps the row with zeroed
// charges and actual spend. The Enrichment tag records which path was taken.
func (s *ReportService) enrichOrder(ctx context.Context, order domain.Order) domain.ReportRow {
	row := domain.ReportRow{
		OrderID:     order.ID,
		OrderNumber: order.Name,
		Date:        order.CreatedAt,
		Enrichment:  domain.EnrichmentFull,
	}
	if order.Customer != nil {
		row.CustomerID = order.Customer.ID
		row.CustomerEmail = order.Customer.Email
	}
	if identity, ok := s.directory.Lookup(row.CustomerID); ok {
		row.CustomerName = identity.Name
		if row.CustomerEmail == "" {
			row.CustomerEmail = identity.Email
		}
	} else if order.Customer != nil {
		row.CustomerName = strings.TrimSpace(order.Customer.FirstName + " " + order.Customer.LastName)
	}

	metafields, err := s.fetchOrderMetafields(ctx, order.ID)
	if err != nil {
		// Outer fallback: keep the order with line-item revenue only
		s.logger.Warn("Metafield fetch failed, including order with degraded figures",
			zap.Int64("order_id", order.ID), zap.Error(err))
		row.Enrichment = domain.EnrichmentNoMetafields
		row.LineSum = lineSumFromLineItems(order.LineItems)
		row.BillingAmount = row.LineSum
		return row
	}

	fulfillments, err := s.fetchOrderFulfillments(ctx, order.ID)
	if err != nil {
		s.logger.Warn("Fulfillment fetch failed, using line-item fallback",
			zap.Int64("order_id", order.ID), zap.Error(err))
		row.Enrichment = domain.EnrichmentLineItems
		row.LineSum = lineSumFromLineItems(order.LineItems)
	} else {
		row.LineSum = lineSumFromFulfillments(fulfillments)
	}

	for _, mf := range metafields {
		switch mf.Key {
		case metafieldKeyAdditionalCharges:
			row.AdditionalCharges = parseMoneyValue(mf.Value)
		case metafieldKeyActualTotal:
			row.ActualSpend = parseMoneyValue(mf.Value)
		}
	}

	row.BillingAmount = row.LineSum + row.AdditionalCharges
	if row.BillingAmount > 0 {
		row.ProfitMargin = (row.BillingAmount - row.ActualSpend) / row.BillingAmount * 100
	}
	return row
}

// lineSumFromFulfillments computes fulfilled revenue from successful
// fulfillments: unit price is derived as total / quantity, and a line only
// counts when both quantity and derived price are positive.
func lineSumFromFulfillments(fulfillments []domain.Fulfillment) float64 {
	var sum float64
	for _, f := range fulfillments {
		if !strings.EqualFold(f.Status, "SUCCESS") {
			continue
		}
		for _, li := range f.LineItems {
			if li.Quantity <= 0 {
				continue
			}
			price := li.TotalAmount / float64(li.Quantity)
			if price <= 0 {
				continue
			}
			sum += price * float64(li.Quantity)
		}
	}
	return sum
}

// lineSumFromLineItems recomputes revenue from the order's own line items:
// removed/cancelled/refunded/returned items are skipped, and only the portion
// already fulfilled (quantity minus fulfillable) counts.
func lineSumFromLineItems(items []domain.LineItem) float64 {
	var sum float64
	for _, item := range items {
		if item.Status.IsInactive() {
			continue
		}
		fulfilled := item.Quantity - item.FulfillableQuantity
		if fulfilled <= 0 {
			continue
		}
		price, err := strconv.ParseFloat(item.Price, 64)
		if err != nil || price <= 0 {
			continue
		}
		sum += price * float64(fulfilled)
	}
	return sum
}

var leadingNumberRe = regexp.MustCompile(`^-?\d+(\.\d+)?`)

// parseMoneyValue extracts a number from a metafield value, which stores
// figures in three shapes: a raw number, a JSON object with an "amount"
// field, or free text starting with a number ("12.50 JOD").
func parseMoneyValue(raw string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	if v, err := strconv.ParseFloat(raw, 64); err == nil {
		return v
	}
	var obj map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &obj); err == nil {
		switch amount := obj["amount"].(type) {
		case float64:
			return amount
		case string:
			if v, err := strconv.ParseFloat(amount, 64); err == nil {
				return v
			}
		}
	}
	if m := leadingNumberRe.FindString(raw); m != "" {
		if v, err := strconv.ParseFloat(m, 64); err == nil {
			return v
		}
	}
	return 0
}

// fetchOrderMetafields fetches the first 10 metafields on an order
func (s *ReportService) fetchOrderMetafields(ctx context.Context, orderID int64) ([]domain.Metafield, error) {
	variables := map[string]interface{}{"id": shopify.OrderGID(orderID)}
	resp, err := s.client.Execute(ctx, shopify.OrderMetafieldsQuery, variables)
	if err != nil {
		return nil, fmt.Errorf("get order metafields: %w", err)
	}

	var result struct {
		Order *struct {
			Metafields struct {
				Edges []struct {
					Node domain.Metafield `json:"node"`
				} `json:"edges"`
			} `json:"metafields"`
		} `json:"order"`
	}
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, fmt.Errorf("parse metafields response: %w", err)
	}
	if result.Order == nil {
		return nil, fmt.Errorf("order not found: %d", orderID)
	}

	metafields := make([]domain.Metafield, 0, len(result.Order.Metafields.Edges))
	for _, edge := range result.Order.Metafields.Edges {
		metafields = append(metafields, edge.Node)
	}
	return metafields, nil
}

// fetchOrderFulfillments fetches an order's fulfillments with line items
func (s *ReportService) fetchOrderFulfillments(ctx context.Context, orderID int64) ([]domain.Fulfillment, error) {
	variables := map[string]interface{}{"id": shopify.OrderGID(orderID)}
	resp, err := s.client.Execute(ctx, shopify.OrderFulfillmentsQuery, variables)
	if err != nil {
		return nil, fmt.Errorf("get order fulfillments: %w", err)
	}

	var result struct {
		Order *struct {
			Fulfillments []struct {
				Status               string `json:"status"`
				FulfillmentLineItems struct {
					Edges []struct {
						Node struct {
							Quantity         int `json:"quantity"`
							OriginalTotalSet struct {
								ShopMoney struct {
									Amount string `json:"amount"`
								} `json:"shopMoney"`
							} `json:"originalTotalSet"`
						} `json:"node"`
					} `json:"edges"`
				} `json:"fulfillmentLineItems"`
			} `json:"fulfillments"`
		} `json:"order"`
	}
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, fmt.Errorf("parse fulfillments response: %w", err)
	}
	if result.Order == nil {
		return nil, fmt.Errorf("order not found: %d", orderID)
	}

	fulfillments := make([]domain.Fulfillment, 0, len(result.Order.Fulfillments))
	for _, f := range result.Order.Fulfillments {
		out := domain.Fulfillment{Status: f.Status}
		for _, edge := range f.FulfillmentLineItems.Edges {
			amount, _ := strconv.ParseFloat(edge.Node.OriginalTotalSet.ShopMoney.Amount, 64)
			out.LineItems = append(out.LineItems, domain.FulfillmentLineItem{
				Quantity:    edge.Node.Quantity,
				TotalAmount: amount,
			})
		}
		fulfillments = append(fulfillments, out)
	}
	return fulfillments, nil
}
