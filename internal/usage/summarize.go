package usage

import (
	"encoding/json"
	"strconv"

	"github.com/p-reiter/usagewatch/internal/models"
	"github.com/p-reiter/usagewatch/internal/pricing"
)

// Field alias lists, in priority order. The first alias present in a record
// wins, even if its value is zero; later aliases are only consulted when an
// earlier one is absent entirely.
var (
	inputAliases   = []string{"input_tokens", "n_input_tokens"}
	outputAliases  = []string{"output_tokens", "n_output_tokens"}
	cachedAliases  = []string{"cached_input_tokens", "n_cached_input_tokens"}
	requestAliases = []string{"num_model_requests", "n_requests", "n_model_requests"}
	modelAliases   = []string{"model", "group"}
)

// Summarize aggregates raw usage records into per-model rows plus grand
// totals. Records for the same model (which can appear in several pages or
// buckets) are merged into a single row, preserving first-seen order. Cost
// is estimated per merged row; rows whose model is missing from the price
// table carry a nil Cost and contribute nothing to the cost total, but
// their tokens and requests still count.
func Summarize(records []Record, tier string, table pricing.Table) models.Summary {
	var order []string
	rows := make(map[string]*models.UsageRow)

	for _, rec := range records {
		model := extractModel(rec)

		row, ok := rows[model]
		if !ok {
			row = &models.UsageRow{Model: model}
			rows[model] = row
			order = append(order, model)
		}

		row.InputTokens += extractInt(rec, inputAliases)
		row.OutputTokens += extractInt(rec, outputAliases)
		row.CachedTokens += extractInt(rec, cachedAliases)
		row.Requests += extractInt(rec, requestAliases)
	}

	summary := models.Summary{Rows: make([]models.UsageRow, 0, len(order))}
	for _, model := range order {
		row := rows[model]

		if cost, ok := pricing.Estimate(table, tier, model, row.InputTokens, row.CachedTokens, row.OutputTokens); ok {
			c := cost
			row.Cost = &c
			summary.Totals.Cost += cost
		}

		summary.Totals.Input += row.InputTokens
		summary.Totals.Output += row.OutputTokens
		summary.Totals.CachedInput += row.CachedTokens
		summary.Totals.Requests += row.Requests
		summary.Rows = append(summary.Rows, *row)
	}

	return summary
}

// extractModel returns the record's model name, skipping aliases whose value
// is absent or an empty string.
func extractModel(rec Record) string {
	for _, key := range modelAliases {
		if v, ok := rec[key]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
		}
	}
	return "unknown"
}

// extractInt returns the value of the first alias present in the record,
// coerced to int64. Absent fields and unrecognized value types yield zero.
func extractInt(rec Record, aliases []string) int64 {
	for _, key := range aliases {
		v, ok := rec[key]
		if !ok {
			continue
		}
		switch n := v.(type) {
		case float64:
			return int64(n)
		case int64:
			return n
		case int:
			return int64(n)
		case json.Number:
			if i, err := n.Int64(); err == nil {
				return i
			}
			if f, err := n.Float64(); err == nil {
				return int64(f)
			}
		case string:
			if i, err := strconv.ParseInt(n, 10, 64); err == nil {
				return i
			}
		}
		return 0
	}
	return 0
}
