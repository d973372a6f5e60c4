package tabular

import (
	"cmp"
	"sort"

	"github.com/shopspring/decimal"
)

// =============================================================================
// GROUPING AND SUMMATION
// =============================================================================

// SumBy groups rows by key and sums the extracted value per group.
func SumBy[T any, K comparable](rows []T, key func(T) K, value func(T) decimal.Decimal) map[K]decimal.Decimal {
	totals := make(map[K]decimal.Decimal)
	for _, r := range rows {
		k := key(r)
		totals[k] = totals[k].Add(value(r))
	}
	return totals
}

// CountBy groups rows by key and counts the rows per group.
func CountBy[T any, K comparable](rows []T, key func(T) K) map[K]int {
	counts := make(map[K]int)
	for _, r := range rows {
		counts[key(r)]++
	}
	return counts
}

// CountDistinctBy returns the number of distinct keys across rows.
func CountDistinctBy[T any, K comparable](rows []T, key func(T) K) int {
	seen := make(map[K]struct{})
	for _, r := range rows {
		seen[key(r)] = struct{}{}
	}
	return len(seen)
}

// SortedKeys returns the keys of a map in ascending order.
// All ordered output in this package funnels through here so that
// identical inputs always produce identical sequences.
func SortedKeys[K cmp.Ordered, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return compareKeys(keys[i], keys[j]) < 0 })
	return keys
}

// =============================================================================
// RANKING
// =============================================================================

// RankDesc orders totals descending by value, ties broken by ascending
// key, and truncates to topN when topN > 0.
func RankDesc[K cmp.Ordered](totals map[K]decimal.Decimal, topN int) []Entry[K] {
	entries := make([]Entry[K], 0, len(totals))
	for _, k := range SortedKeys(totals) {
		entries = append(entries, Entry[K]{Key: k, Value: totals[k]})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Value.GreaterThan(entries[j].Value)
	})
	if topN > 0 && len(entries) > topN {
		entries = entries[:topN]
	}
	return entries
}

// ByKeyAsc orders totals by ascending key.
func ByKeyAsc[K cmp.Ordered](totals map[K]decimal.Decimal) []Entry[K] {
	entries := make([]Entry[K], 0, len(totals))
	for _, k := range SortedKeys(totals) {
		entries = append(entries, Entry[K]{Key: k, Value: totals[k]})
	}
	return entries
}

// =============================================================================
// MEANS
// =============================================================================

// MeanOf averages the values of a totals map. Undefined on empty input.
func MeanOf[K comparable](totals map[K]decimal.Decimal) Maybe[decimal.Decimal] {
	if len(totals) == 0 {
		return None[decimal.Decimal]()
	}
	sum := decimal.Zero
	for _, v := range totals {
		sum = sum.Add(v)
	}
	return Some(sum.Div(decimal.NewFromInt(int64(len(totals)))))
}

// MeanSeq averages a sequence of decimals. Undefined on empty input.
func MeanSeq(values []decimal.Decimal) Maybe[decimal.Decimal] {
	if len(values) == 0 {
		return None[decimal.Decimal]()
	}
	sum := decimal.Zero
	for _, v := range values {
		sum = sum.Add(v)
	}
	return Some(sum.Div(decimal.NewFromInt(int64(len(values)))))
}

// MeanBy averages pair values per key and emits one entry per bucket in
// the caller-supplied order. Buckets with no observations are omitted, not
// emitted as zero. The explicit order exists because buckets like delivery
// speed have an intrinsic, non-lexical order.
func MeanBy[K comparable](pairs []Pair[K], bucketOrder []K) []Entry[K] {
	sums := make(map[K]decimal.Decimal)
	counts := make(map[K]int)
	for _, p := range pairs {
		sums[p.Key] = sums[p.Key].Add(p.Value)
		counts[p.Key]++
	}

	entries := make([]Entry[K], 0, len(bucketOrder))
	for _, bucket := range bucketOrder {
		n, ok := counts[bucket]
		if !ok {
			continue
		}
		entries = append(entries, Entry[K]{
			Key:   bucket,
			Value: sums[bucket].Div(decimal.NewFromInt(int64(n))),
		})
	}
	return entries
}

// =============================================================================
// DISTRIBUTIONS
// =============================================================================

var hundred = decimal.NewFromInt(100)

// Distribution computes the normalized frequency distribution of values
// as percentages summing to 100 (subject to decimal rounding), ordered by
// the value's natural order. Empty input yields an empty sequence.
func Distribution[K cmp.Ordered](values []K) []Share[K] {
	if len(values) == 0 {
		return nil
	}
	counts := make(map[K]int)
	for _, v := range values {
		counts[v]++
	}

	total := decimal.NewFromInt(int64(len(values)))
	shares := make([]Share[K], 0, len(counts))
	for _, k := range SortedKeys(counts) {
		pct := decimal.NewFromInt(int64(counts[k])).Mul(hundred).Div(total)
		shares = append(shares, Share[K]{Value: k, Percent: pct})
	}
	return shares
}
