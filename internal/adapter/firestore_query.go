package adapter

import (
	"fmt"

	"github.com/MKhiriev/mini-capstone/internal/backend"
	"github.com/MKhiriev/mini-capstone/models"
)

var operators = map[models.Operator]string{
	models.OpEqual:          "EQUAL",
	models.OpNotEqual:       "NOT_EQUAL",
	models.OpLess:           "LESS_THAN",
	models.OpLessOrEqual:    "LESS_THAN_OR_EQUAL",
	models.OpGreater:        "GREATER_THAN",
	models.OpGreaterOrEqual: "GREATER_THAN_OR_EQUAL",
}

// buildStructuredQuery translates q into the runQuery structuredQuery form.
// Several filters become a compositeFilter with operator AND.
func buildStructuredQuery(q models.Query) (map[string]any, error) {
	if q.Collection == "" {
		return nil, fmt.Errorf("%w: empty collection", backend.ErrInvalidQuery)
	}
	if q.Limit < 0 {
		return nil, fmt.Errorf("%w: negative limit", backend.ErrInvalidQuery)
	}

	structured := map[string]any{
		"from": []map[string]any{{"collectionId": q.Collection}},
	}

	filters := make([]map[string]any, 0, len(q.Filters))
	for _, f := range q.Filters {
		op, ok := operators[f.Op]
		if !ok || f.Field == "" {
			return nil, fmt.Errorf("%w: filter %q %q", backend.ErrInvalidQuery, f.Field, f.Op)
		}
		value, err := models.EncodeValue(f.Value)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", backend.ErrInvalidQuery, err)
		}
		filters = append(filters, map[string]any{
			"fieldFilter": map[string]any{
				"field": map[string]string{"fieldPath": f.Field},
				"op":    op,
				"value": value,
			},
		})
	}

	switch len(filters) {
	case 0:
	case 1:
		structured["where"] = filters[0]
	default:
		structured["where"] = map[string]any{
			"compositeFilter": map[string]any{
				"op":      "AND",
				"filters": filters,
			},
		}
	}

	if len(q.Orders) > 0 {
		orders := make([]map[string]any, 0, len(q.Orders))
		for _, o := range q.Orders {
			if o.Field == "" {
				return nil, fmt.Errorf("%w: empty order field", backend.ErrInvalidQuery)
			}
			direction := "ASCENDING"
			if o.Direction == models.Descending {
				direction = "DESCENDING"
			}
			orders = append(orders, map[string]any{
				"field":     map[string]string{"fieldPath": o.Field},
				"direction": direction,
			})
		}
		structured["orderBy"] = orders
	}

	if q.Limit > 0 {
		structured["limit"] = q.Limit
	}

	return structured, nil
}
