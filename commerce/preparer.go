/*
preparer.go - Data preparation: raw tables to analysis table

PURPOSE:
  Joins the raw order and line-item tables into the analysis table,
  filters by order status, derives the temporal features (purchase month
  and year), derives the delivery-speed features, and attaches dimension
  columns (category, state) through a generic inner-join enrichment.

PIPELINE:
  Prepare(orders, items, status)          -> *Analysis
  AddDeliveryMetrics(analysis)            -> *Analysis (new table)
  JoinDimension(obs, dim, on, keep)       -> enriched observations
  DeliveryReviewPairs(analysis, reviews)  -> bucket/score relationship

FAILURE MODEL:
  Preparation has no partial-success mode. A missing column, a dangling
  foreign key, an unparseable timestamp, or a negative price aborts the
  whole run with a structured error from errors.go. Orphan keys are
  counted and sampled in the error, never silently dropped.

OUTPUT INDEPENDENCE:
  Every operation returns a table built from fresh slices. Nothing
  downstream can corrupt the caller's inputs through aliasing.

SEE ALSO:
  - types.go: Record/Analysis/Obs shapes
  - metrics.go: KPI computation over the prepared table
*/
package commerce

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/meridian/commerce-insights/dataset"
)

// orphanSampleSize bounds the orphan-key sample carried by
// JoinIntegrityError.
const orphanSampleSize = 5

// StatusAny disables the status filter in Prepare. Used for the
// revenue-by-status breakdown, which needs every status retained.
const StatusAny = "*"

// timestampLayouts are the ISO-8601-compatible forms accepted for order
// timestamps. The source CSVs use the space-separated form.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Preparer builds analysis tables from raw tables. It is stateless; the
// status filter and all inputs arrive as explicit arguments.
type Preparer struct{}

// NewPreparer creates a Preparer.
func NewPreparer() *Preparer { return &Preparer{} }

// =============================================================================
// PREPARE - Join, filter, temporal features
// =============================================================================

// Prepare inner-joins line items to orders on order_id, retains rows
// whose order status equals statusFilter (StatusDelivered when empty,
// StatusAny to retain all), and derives purchase month and year.
//
// Errors: SchemaError for absent columns, JoinIntegrityError for line
// items referencing a non-existent order, TimestampParseError for an
// unparseable timestamp, InvalidArgumentError for a negative or
// unparseable price.
func (p *Preparer) Prepare(orders, items *dataset.Table, statusFilter string) (*Analysis, error) {
	if statusFilter == "" {
		statusFilter = StatusDelivered
	}

	if missing := orders.Missing(ColOrderID, ColOrderStatus, ColPurchasedAt, ColDeliveredAt); len(missing) > 0 {
		return nil, &SchemaError{Table: orders.Name, Missing: missing}
	}
	if missing := items.Missing(ColOrderID, ColOrderItemID, ColProductID, ColPrice); len(missing) > 0 {
		return nil, &SchemaError{Table: items.Name, Missing: missing}
	}

	oID := orders.Index(ColOrderID)
	oStatus := orders.Index(ColOrderStatus)
	oPurchased := orders.Index(ColPurchasedAt)
	oDelivered := orders.Index(ColDeliveredAt)

	orderRows := make(map[string][]string, len(orders.Rows))
	for _, row := range orders.Rows {
		orderRows[row[oID]] = row
	}

	iOrder := items.Index(ColOrderID)
	iItem := items.Index(ColOrderItemID)
	iProduct := items.Index(ColProductID)
	iPrice := items.Index(ColPrice)

	// Integrity first: every line item must reference a known order,
	// whatever its status. Orphans abort the run with count and sample.
	var orphanCount int
	var orphanSample []string
	for _, row := range items.Rows {
		if _, ok := orderRows[row[iOrder]]; !ok {
			orphanCount++
			if len(orphanSample) < orphanSampleSize {
				orphanSample = append(orphanSample, row[iOrder])
			}
		}
	}
	if orphanCount > 0 {
		return nil, &JoinIntegrityError{
			Table:  items.Name,
			Column: ColOrderID,
			Count:  orphanCount,
			Sample: orphanSample,
		}
	}

	var records []Record
	for _, row := range items.Rows {
		order := orderRows[row[iOrder]]
		status := order[oStatus]
		if statusFilter != StatusAny && status != statusFilter {
			continue
		}

		price, err := decimal.NewFromString(row[iPrice])
		if err != nil {
			return nil, &InvalidArgumentError{
				Field:  ColPrice,
				Reason: "unparseable price",
				ID:     row[iOrder],
				Value:  row[iPrice],
			}
		}
		if price.IsNegative() {
			return nil, &InvalidArgumentError{
				Field:  ColPrice,
				Reason: "negative price",
				ID:     row[iOrder],
				Value:  row[iPrice],
			}
		}

		purchasedAt, err := parseTimestamp(order[oPurchased])
		if err != nil {
			return nil, &TimestampParseError{
				Column:  ColPurchasedAt,
				OrderID: row[iOrder],
				Value:   order[oPurchased],
			}
		}

		var deliveredAt *time.Time
		if raw := order[oDelivered]; raw != "" {
			t, err := parseTimestamp(raw)
			if err != nil {
				return nil, &TimestampParseError{
					Column:  ColDeliveredAt,
					OrderID: row[iOrder],
					Value:   raw,
				}
			}
			deliveredAt = &t
		}

		records = append(records, Record{
			OrderID:     row[iOrder],
			LineItemID:  row[iItem],
			ProductID:   row[iProduct],
			Price:       price,
			Status:      status,
			PurchasedAt: purchasedAt,
			DeliveredAt: deliveredAt,
			Month:       purchasedAt.Month(),
			Year:        purchasedAt.Year(),
		})
	}

	return &Analysis{Records: records}, nil
}

func parseTimestamp(value string) (time.Time, error) {
	var err error
	for _, layout := range timestampLayouts {
		var t time.Time
		if t, err = time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, err
}

// =============================================================================
// DELIVERY METRICS
// =============================================================================

// AddDeliveryMetrics returns a new analysis table with delivery duration
// and bucket attached to every delivered record. Duration is the floor
// whole-day difference between delivery and purchase: partial days are
// discarded, matching calendar-day semantics. Undelivered records keep
// nil days and BucketNone, which excludes them from delivery groupings.
//
// A record delivered before it was purchased is an InvalidArgumentError.
// The caller's table is never modified.
func (p *Preparer) AddDeliveryMetrics(a *Analysis) (*Analysis, error) {
	out := a.clone()
	for i := range out.Records {
		rec := &out.Records[i]
		if rec.DeliveredAt == nil {
			continue
		}

		days := int(math.Floor(rec.DeliveredAt.Sub(rec.PurchasedAt).Hours() / 24))
		if days < 0 {
			return nil, &InvalidArgumentError{
				Field:  "delivery_days",
				Reason: "delivered before purchased",
				ID:     rec.OrderID,
				Value:  days,
			}
		}

		bucket, err := CategorizeDelivery(days)
		if err != nil {
			return nil, err
		}

		d := days
		rec.DeliveryDays = &d
		rec.Bucket = bucket
	}
	return out, nil
}

// =============================================================================
// OBSERVATIONS AND DIMENSION JOINS
// =============================================================================

// Key selectors for Obs extraction.
func ByOrderID(r Record) string   { return r.OrderID }
func ByProductID(r Record) string { return r.ProductID }
func ByStatus(r Record) string    { return r.Status }

// YearIs filters records by purchase year.
func YearIs(year int) func(Record) bool {
	return func(r Record) bool { return r.Year == year }
}

// Obs extracts keyed price observations from the table, one per record
// passing the filter. A nil filter keeps every record.
func (a *Analysis) Obs(key func(Record) string, filter func(Record) bool) []Obs {
	var obs []Obs
	for _, r := range a.Records {
		if filter != nil && !filter(r) {
			continue
		}
		obs = append(obs, Obs{Key: key(r), Price: r.Price})
	}
	return obs
}

// JoinDimension rewrites each observation key through a dimension table:
// an inner join on the `on` column keeping the `keep` column as the new
// key. A key with no match in the dimension table is an integrity fault,
// reported with count and sample under the same policy as Prepare.
func (p *Preparer) JoinDimension(obs []Obs, dim *dataset.Table, on, keep string) ([]Obs, error) {
	if missing := dim.Missing(on, keep); len(missing) > 0 {
		return nil, &SchemaError{Table: dim.Name, Missing: missing}
	}

	onIdx := dim.Index(on)
	keepIdx := dim.Index(keep)
	lookup := make(map[string]string, len(dim.Rows))
	for _, row := range dim.Rows {
		if _, ok := lookup[row[onIdx]]; !ok {
			lookup[row[onIdx]] = row[keepIdx]
		}
	}

	var orphanCount int
	var orphanSample []string
	out := make([]Obs, 0, len(obs))
	for _, o := range obs {
		label, ok := lookup[o.Key]
		if !ok {
			orphanCount++
			if len(orphanSample) < orphanSampleSize {
				orphanSample = append(orphanSample, o.Key)
			}
			continue
		}
		out = append(out, Obs{Key: label, Price: o.Price})
	}
	if orphanCount > 0 {
		return nil, &JoinIntegrityError{
			Table:  "analysis",
			Column: on,
			Count:  orphanCount,
			Sample: orphanSample,
		}
	}
	return out, nil
}

// CategoryObservations attaches the product category to every analysis
// row: one observation per line item, keyed by category name.
func (p *Preparer) CategoryObservations(a *Analysis, products *dataset.Table) ([]Obs, error) {
	return p.JoinDimension(a.Obs(ByProductID, nil), products, ColProductID, ColCategoryName)
}

// StateObservations attaches the customer state to every analysis row,
// going through orders (order -> customer) and customers (customer ->
// state), keyed by state code.
func (p *Preparer) StateObservations(a *Analysis, orders, customers *dataset.Table) ([]Obs, error) {
	byCustomer, err := p.JoinDimension(a.Obs(ByOrderID, nil), orders, ColOrderID, ColCustomerID)
	if err != nil {
		return nil, err
	}
	return p.JoinDimension(byCustomer, customers, ColCustomerID, ColCustomerState)
}

// =============================================================================
// DELIVERY / REVIEW RELATIONSHIP
// =============================================================================

// DeliveryReviewPairs intersects per-order delivery buckets with review
// scores: one pair per review whose order appears in the analysis table
// with a delivery bucket. Reviews of excluded orders and orders without
// a review are absent by construction; that intersection is not an
// integrity fault, unlike the dimension joins above.
func (p *Preparer) DeliveryReviewPairs(a *Analysis, reviews *dataset.Table) ([]BucketScore, error) {
	if missing := reviews.Missing(ColOrderID, ColReviewScore); len(missing) > 0 {
		return nil, &SchemaError{Table: reviews.Name, Missing: missing}
	}

	buckets := make(map[string]DeliveryBucket)
	for _, r := range a.Records {
		if r.Bucket != BucketNone {
			buckets[r.OrderID] = r.Bucket
		}
	}

	rOrder := reviews.Index(ColOrderID)
	rScore := reviews.Index(ColReviewScore)

	var pairs []BucketScore
	for _, row := range reviews.Rows {
		bucket, ok := buckets[row[rOrder]]
		if !ok {
			continue
		}
		score, err := decimal.NewFromString(row[rScore])
		if err != nil {
			return nil, &InvalidArgumentError{
				Field:  ColReviewScore,
				Reason: "unparseable review score",
				ID:     row[rOrder],
				Value:  row[rScore],
			}
		}
		pairs = append(pairs, BucketScore{Bucket: bucket, Score: score})
	}
	return pairs, nil
}
