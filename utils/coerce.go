package utils

import "strings"

// TextPlaceholder replaces empty optional item fields so the backend
// validation never rejects a submitted gate pass over a blank column.
const TextPlaceholder = "N/A"

// CoerceBool maps the loosely typed boolean values the backend emits
// (0/1, "0"/"1", true/false, nil) onto a plain bool. Only nil, 0 and "0"
// count as false; anything else is truthy, missing values take the default.
func CoerceBool(value interface{}, defaultValue bool) bool {
	switch v := value.(type) {
	case nil:
		return defaultValue
	case bool:
		return v
	case int:
		return v != 0
	case int64:
		return v != 0
	case float64:
		return v != 0
	case string:
		return v != "0"
	default:
		return true
	}
}

// NormalizeText trims the value and substitutes the placeholder when
// nothing remains.
func NormalizeText(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return TextPlaceholder
	}
	return value
}

// NormalizeQty floors the quantity at one.
func NormalizeQty(qty int) int {
	if qty < 1 {
		return 1
	}
	return qty
}
