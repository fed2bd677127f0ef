package summary

import (
	"sort"
	"strings"

	"ci-computer-dashboard/models"
)

// YearPrefixes are the provisioning year codes an asset tag starts with
var YearPrefixes = []string{"21H", "22H", "23H", "24H", "25H"}

// CountPrefixes returns one count per prefix, in prefix order.
// Matching is a case-sensitive HasPrefix on each identifier.
func CountPrefixes(ids []string, prefixes []string) []models.PrefixCount {
	counts := make([]models.PrefixCount, len(prefixes))
	for i, prefix := range prefixes {
		counts[i].Prefix = prefix
		for _, id := range ids {
			if strings.HasPrefix(id, prefix) {
				counts[i].Count++
			}
		}
	}
	return counts
}

// AssetTags returns the string-coerced asset tag of every record
func AssetTags(records []models.AssetRecord) []string {
	tags := make([]string, len(records))
	for i, r := range records {
		tags[i] = r.AssetTag()
	}
	return tags
}

// Summarize builds the year-prefix summary of a dataset
func Summarize(table *models.AssetTable) models.AssetSummary {
	if table == nil {
		table = &models.AssetTable{}
	}

	counts := CountPrefixes(AssetTags(table.Records), YearPrefixes)
	matched := 0
	for _, c := range counts {
		matched += c.Count
	}

	return models.AssetSummary{
		TotalRecords: table.Len(),
		PrefixCounts: counts,
		Matched:      matched,
		Unmatched:    table.Len() - matched,
	}
}

// CountValues counts the present values of a column, most frequent first.
// Missing cells are skipped; ties are ordered by value.
func CountValues(records []models.AssetRecord, column string) []models.ValueCount {
	byValue := make(map[string]int)
	for _, r := range records {
		v, ok := r.Get(column)
		if !ok {
			continue
		}
		byValue[v]++
	}

	counts := make([]models.ValueCount, 0, len(byValue))
	for v, n := range byValue {
		counts = append(counts, models.ValueCount{Value: v, Count: n})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Value < counts[j].Value
	})
	return counts
}

// DistinctValues returns the sorted present values of a column
func DistinctValues(records []models.AssetRecord, column string) []string {
	seen := make(map[string]bool)
	var values []string
	for _, r := range records {
		v, ok := r.Get(column)
		if !ok || seen[v] {
			continue
		}
		seen[v] = true
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}

// FirstValue returns the first present value of a column in file order
func FirstValue(records []models.AssetRecord, column string) (string, bool) {
	for _, r := range records {
		if v, ok := r.Get(column); ok {
			return v, true
		}
	}
	return "", false
}
