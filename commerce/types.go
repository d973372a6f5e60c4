/*
Package commerce implements the e-commerce analytics domain on top of the
generic tabular machinery.

PURPOSE:
  Turns the five raw record sets (orders, order items, products,
  customers, reviews) into a single analysis-ready table and computes the
  business KPIs over it: revenue, year-over-year and month-over-month
  growth, order counts, average order value, and the grouped summary
  tables the visualization layer binds to.

KEY CONCEPTS IN THIS FILE (types.go):
  - Record: One analysis row per line item of a qualifying order
  - Analysis: The immutable analysis table, one per pipeline run
  - DeliveryBucket: Categorical delivery-speed grouping
  - Obs: A keyed price observation, the row shape of enrichment joins

DESIGN PRINCIPLES:
  1. Immutability: an Analysis is built once and never mutated; every
     transformation returns a new table
  2. Precision: decimal.Decimal for all prices and derived money values
  3. Determinism: the same inputs always produce the same table, bit for
     bit - no clock reads, no map-order leakage

SEE ALSO:
  - preparer.go: Builds Analysis tables from raw tables
  - metrics.go: Computes KPIs over them
  - errors.go: The error taxonomy both use
*/
package commerce

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// SOURCE COLUMNS - Names the raw tables are expected to carry
// =============================================================================

const (
	ColOrderID       = "order_id"
	ColOrderItemID   = "order_item_id"
	ColProductID     = "product_id"
	ColCustomerID    = "customer_id"
	ColPrice         = "price"
	ColOrderStatus   = "order_status"
	ColPurchasedAt   = "order_purchase_timestamp"
	ColDeliveredAt   = "order_delivered_customer_date"
	ColCategoryName  = "product_category_name"
	ColCustomerState = "customer_state"
	ColReviewScore   = "review_score"
)

// StatusDelivered is the default status filter for Prepare.
const StatusDelivered = "delivered"

// =============================================================================
// ANALYSIS RECORD - One row per line item of a qualifying order
// =============================================================================

// Record is one analysis row. Month and Year are derived exclusively from
// the purchase timestamp. DeliveryDays and Bucket stay unset until
// AddDeliveryMetrics runs, and remain unset for undelivered orders.
type Record struct {
	OrderID    string
	LineItemID string
	ProductID  string
	Price      decimal.Decimal
	Status     string

	PurchasedAt time.Time
	DeliveredAt *time.Time // nil when the order has no delivered date

	Month time.Month
	Year  int

	DeliveryDays *int           // floor whole days, nil when undelivered
	Bucket       DeliveryBucket // BucketNone when undelivered
}

// Analysis is the analysis-ready table: the Records of one pipeline run.
// It is immutable once built; operations that derive new columns return a
// fresh Analysis.
type Analysis struct {
	Records []Record
}

// Len returns the number of analysis rows.
func (a *Analysis) Len() int { return len(a.Records) }

// clone returns a deep-enough copy: the record slice is fresh, so
// appending or rewriting records in the copy cannot touch the original.
func (a *Analysis) clone() *Analysis {
	records := make([]Record, len(a.Records))
	copy(records, a.Records)
	return &Analysis{Records: records}
}

// =============================================================================
// DELIVERY BUCKETS
// =============================================================================

// DeliveryBucket is the categorical delivery-speed grouping.
type DeliveryBucket string

const (
	BucketNone     DeliveryBucket = ""         // undelivered, excluded from delivery groupings
	BucketFast     DeliveryBucket = "1-3 days"
	BucketStandard DeliveryBucket = "4-7 days"
	BucketSlow     DeliveryBucket = "8+ days"
)

// DeliveryBucketOrder is the intrinsic display order of the buckets.
// It is not the lexical order, so grouped results must be emitted
// explicitly in this sequence.
func DeliveryBucketOrder() []DeliveryBucket {
	return []DeliveryBucket{BucketFast, BucketStandard, BucketSlow}
}

// CategorizeDelivery maps a whole-day delivery duration to its bucket.
// Negative days mean the order was delivered before it was purchased,
// which is a data fault, not a bucket.
func CategorizeDelivery(days int) (DeliveryBucket, error) {
	if days < 0 {
		return BucketNone, &InvalidArgumentError{
			Field:  "delivery_days",
			Reason: "negative delivery duration",
			Value:  days,
		}
	}
	switch {
	case days <= 3:
		return BucketFast, nil
	case days <= 7:
		return BucketStandard, nil
	default:
		return BucketSlow, nil
	}
}

// =============================================================================
// ENRICHMENT ROW SHAPES
// =============================================================================

// Obs is a keyed price observation: the working row of dimension joins
// and grouped-revenue aggregation. The key starts as a foreign key and is
// rewritten to a dimension label (category, state, ...) by JoinDimension.
type Obs struct {
	Key   string
	Price decimal.Decimal
}

// BucketScore pairs an order's delivery bucket with one of its review
// scores, the input of the delivery-speed/review-score relationship.
type BucketScore struct {
	Bucket DeliveryBucket
	Score  decimal.Decimal
}
