/*
demo.go - Built-in demo dataset

PURPOSE:

	Provides a small deterministic sample of the five raw tables for demos
	and tests. The server falls back to this set when started without a
	data source, so the API can be explored without downloading the real
	dataset.

SHAPE OF THE DATA:

	Two years of orders (2022 and 2023) across three product categories,
	four US states, a mix of delivery speeds spanning all three buckets,
	one canceled order (excluded by the default status filter), one order
	still in transit (no delivered date), and reviews for most delivered
	orders.

DETERMINISM:

	The set is written out literally, no randomness and no clock reads, so
	every metric computed from it is stable across runs and usable in
	test expectations.

SEE ALSO:
  - csv.go, sqlite.go: The real sources with the same contract
  - api/handlers_test.go: Exercises the API against this set
*/
package dataset

// Demo returns the built-in sample Set.
func Demo() *Set {
	orders := &Table{
		Name: "orders",
		Columns: []string{
			"order_id", "customer_id", "order_status",
			"order_purchase_timestamp", "order_delivered_customer_date",
		},
		Rows: [][]string{
			// 2022 baseline year.
			{"ord-2201", "cust-01", "delivered", "2022-01-10 09:15:00", "2022-01-12 16:00:00"},
			{"ord-2202", "cust-02", "delivered", "2022-03-04 11:30:00", "2022-03-09 10:00:00"},
			{"ord-2203", "cust-03", "delivered", "2022-06-18 14:45:00", "2022-06-30 09:30:00"},
			{"ord-2204", "cust-04", "delivered", "2022-09-02 08:00:00", "2022-09-05 18:20:00"},
			{"ord-2205", "cust-01", "delivered", "2022-11-21 19:10:00", "2022-11-27 12:00:00"},
			// 2023 analysis year.
			{"ord-2301", "cust-02", "delivered", "2023-01-05 10:00:00", "2023-01-07 15:30:00"},
			{"ord-2302", "cust-03", "delivered", "2023-01-22 13:20:00", "2023-01-31 11:00:00"},
			{"ord-2303", "cust-01", "delivered", "2023-02-14 16:40:00", "2023-02-20 09:00:00"},
			{"ord-2304", "cust-04", "delivered", "2023-02-27 09:05:00", "2023-03-02 14:10:00"},
			{"ord-2305", "cust-02", "delivered", "2023-03-09 12:00:00", "2023-03-12 17:45:00"},
			{"ord-2306", "cust-03", "delivered", "2023-03-28 18:30:00", "2023-04-08 10:15:00"},
			{"ord-2307", "cust-01", "delivered", "2023-04-11 07:50:00", "2023-04-15 13:00:00"},
			{"ord-2308", "cust-04", "shipped", "2023-04-19 15:25:00", ""},
			{"ord-2309", "cust-02", "canceled", "2023-05-03 11:11:00", ""},
			{"ord-2310", "cust-03", "delivered", "2023-05-16 20:00:00", "2023-05-19 08:40:00"},
		},
	}

	items := &Table{
		Name:    "order_items",
		Columns: []string{"order_id", "order_item_id", "product_id", "price"},
		Rows: [][]string{
			{"ord-2201", "1", "prod-elec-1", "120.00"},
			{"ord-2202", "1", "prod-home-1", "45.50"},
			{"ord-2202", "2", "prod-home-2", "22.00"},
			{"ord-2203", "1", "prod-toys-1", "60.00"},
			{"ord-2204", "1", "prod-elec-2", "310.00"},
			{"ord-2205", "1", "prod-home-1", "45.50"},
			{"ord-2301", "1", "prod-elec-1", "129.99"},
			{"ord-2301", "2", "prod-toys-1", "64.00"},
			{"ord-2302", "1", "prod-home-2", "25.00"},
			{"ord-2303", "1", "prod-elec-2", "299.00"},
			{"ord-2304", "1", "prod-home-1", "48.75"},
			{"ord-2305", "1", "prod-toys-2", "18.90"},
			{"ord-2305", "2", "prod-toys-1", "64.00"},
			{"ord-2306", "1", "prod-elec-1", "134.50"},
			{"ord-2307", "1", "prod-home-2", "27.30"},
			{"ord-2308", "1", "prod-elec-2", "289.00"},
			{"ord-2309", "1", "prod-toys-2", "18.90"},
			{"ord-2310", "1", "prod-home-1", "51.20"},
		},
	}

	products := &Table{
		Name:    "products",
		Columns: []string{"product_id", "product_category_name"},
		Rows: [][]string{
			{"prod-elec-1", "electronics"},
			{"prod-elec-2", "electronics"},
			{"prod-home-1", "housewares"},
			{"prod-home-2", "housewares"},
			{"prod-toys-1", "toys"},
			{"prod-toys-2", "toys"},
		},
	}

	customers := &Table{
		Name:    "customers",
		Columns: []string{"customer_id", "customer_state"},
		Rows: [][]string{
			{"cust-01", "CA"},
			{"cust-02", "NY"},
			{"cust-03", "TX"},
			{"cust-04", "WA"},
		},
	}

	reviews := &Table{
		Name:    "reviews",
		Columns: []string{"order_id", "review_score"},
		Rows: [][]string{
			{"ord-2201", "5"},
			{"ord-2202", "4"},
			{"ord-2203", "2"},
			{"ord-2204", "5"},
			{"ord-2205", "3"},
			{"ord-2301", "5"},
			{"ord-2302", "2"},
			{"ord-2303", "4"},
			{"ord-2304", "5"},
			{"ord-2305", "4"},
			{"ord-2306", "1"},
			{"ord-2307", "4"},
			{"ord-2310", "5"},
		},
	}

	return &Set{
		Orders:     orders,
		OrderItems: items,
		Products:   products,
		Customers:  customers,
		Reviews:    reviews,
	}
}
