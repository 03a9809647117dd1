package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/jafarshop/revenuereports/internal/config"
	"github.com/jafarshop/revenuereports/internal/shopify"
)

// Seeds sample billing metafields (custom.additional_charges and
// custom.actual_total_checkout_price) on fulfilled orders in a date range,
// so reports can be exercised against a development shop.
func main() {
	if len(os.Args) < 3 {
		fmt.Println("Usage: go run cmd/seed-metafields/main.go <start> <end> [charges] [actual_pct]")
		fmt.Println("Example: go run cmd/seed-metafields/main.go 2024-01-01T00:00:00Z 2024-02-01T00:00:00Z 10 85")
		fmt.Println("  charges: additional_charges value per order (default 10)")
		fmt.Println("  actual_pct: actual_total_checkout_price as % of line total (default 85)")
		os.Exit(1)
	}

	start, err := time.Parse(time.RFC3339, os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid start: %v\n", err)
		os.Exit(1)
	}
	end, err := time.Parse(time.RFC3339, os.Args[2])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid end: %v\n", err)
		os.Exit(1)
	}

	charges := 10.0
	if len(os.Args) > 3 {
		if charges, err = strconv.ParseFloat(os.Args[3], 64); err != nil {
			fmt.Fprintf(os.Stderr, "Invalid charges: %v\n", err)
			os.Exit(1)
		}
	}
	actualPct := 85.0
	if len(os.Args) > 4 {
		if actualPct, err = strconv.ParseFloat(os.Args[4], 64); err != nil {
			fmt.Fprintf(os.Stderr, "Invalid actual_pct: %v\n", err)
			os.Exit(1)
		}
	}

	_ = godotenv.Load(".env")
	_ = godotenv.Load("../.env")

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	client := shopify.NewClient(cfg.Shopify, cfg.RateLimit, logger)
	ctx := context.Background()

	fmt.Printf("🔍 Fetching fulfilled orders from %s to %s\n\n", start.Format(time.RFC3339), end.Format(time.RFC3339))

	var sinceID int64
	seeded := 0
	for {
		page, err := client.ListOrders(ctx, shopify.OrderListParams{
			CreatedAtMin: start,
			CreatedAtMax: end,
			SinceID:      sinceID,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "❌ Failed to list orders: %v\n", err)
			os.Exit(1)
		}
		if len(page) == 0 {
			break
		}

		for _, order := range page {
			// Line total from the order's own items; actual spend is seeded
			// as a fixed percentage of it
			var lineTotal float64
			for _, item := range order.LineItems {
				price, _ := strconv.ParseFloat(item.Price, 64)
				lineTotal += price * float64(item.Quantity)
			}
			actual := lineTotal * actualPct / 100

			if err := setBillingMetafields(ctx, client, order.ID, charges, actual); err != nil {
				fmt.Fprintf(os.Stderr, "❌ Order %s: %v\n", order.Name, err)
				continue
			}
			seeded++
			fmt.Printf("✅ Order %s: additional_charges=%.2f actual_total_checkout_price=%.2f\n", order.Name, charges, actual)
		}

		if len(page) < shopify.PageSize {
			break
		}
		sinceID = page[len(page)-1].ID
	}

	fmt.Printf("\nDone: seeded %d orders\n", seeded)
}

func setBillingMetafields(ctx context.Context, client *shopify.Client, orderID int64, charges, actual float64) error {
	metafields := []shopify.MetafieldsSetInput{
		{
			OwnerID:   shopify.OrderGID(orderID),
			Namespace: "custom",
			Key:       "additional_charges",
			Type:      "number_decimal",
			Value:     fmt.Sprintf("%.2f", charges),
		},
		{
			OwnerID:   shopify.OrderGID(orderID),
			Namespace: "custom",
			Key:       "actual_total_checkout_price",
			Type:      "number_decimal",
			Value:     fmt.Sprintf("%.2f", actual),
		},
	}
	variables := map[string]interface{}{
		"metafields": metafields,
	}

	resp, err := client.Execute(ctx, shopify.MetafieldsSetMutation, variables)
	if err != nil {
		return fmt.Errorf("metafieldsSet: %w", err)
	}

	var result struct {
		MetafieldsSet struct {
			UserErrors []struct {
				Field   []string `json:"field"`
				Message string   `json:"message"`
				Code    string   `json:"code"`
			} `json:"userErrors"`
		} `json:"metafieldsSet"`
	}
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return fmt.Errorf("parse metafieldsSet response: %w", err)
	}
	if len(result.MetafieldsSet.UserErrors) > 0 {
		return fmt.Errorf("metafieldsSet userErrors: %v", result.MetafieldsSet.UserErrors)
	}
	return nil
}
