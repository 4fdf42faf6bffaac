package validation

import (
	"strings"

	"sprintsense/internal/domain"
)

// CheckCompleteness returns the labels of required fields that are missing
// on the item, in rule order. A field is missing when it is absent, an
// empty string, the literal string "null", or numeric zero for fields
// where zero is not a meaningful value. An item without a field map is
// treated as all fields missing.
func CheckCompleteness(item *domain.WorkItem, rules []Rule) []string {
	var missing []string
	for _, r := range rules {
		if fieldMissing(item, r) {
			missing = append(missing, r.Label)
		}
	}
	return missing
}

func fieldMissing(item *domain.WorkItem, r Rule) bool {
	if item == nil || item.Fields == nil {
		return true
	}
	v, ok := item.Fields[r.FieldRef]
	if !ok || v == nil {
		return true
	}
	switch t := v.(type) {
	case string:
		s := strings.TrimSpace(t)
		return s == "" || s == "null"
	case float64:
		return t == 0 && !zeroValidLabels[r.Label]
	case int:
		return t == 0 && !zeroValidLabels[r.Label]
	}
	return false
}
