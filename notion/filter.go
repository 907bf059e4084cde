package notion

// Filter is a database query filter expression. The constructors cover the
// predicates this tool queries with; they marshal directly to the Notion
// filter JSON.
type Filter map[string]any

// And combines filters conjunctively.
func And(filters ...Filter) Filter {
	parts := make([]any, 0, len(filters))
	for _, f := range filters {
		parts = append(parts, f)
	}
	return Filter{"and": parts}
}

// TextEquals matches a rich_text property equal to v.
func TextEquals(prop, v string) Filter {
	return Filter{"property": prop, "rich_text": map[string]any{"equals": v}}
}

// TextNotEmpty matches a non-empty rich_text property.
func TextNotEmpty(prop string) Filter {
	return Filter{"property": prop, "rich_text": map[string]any{"is_not_empty": true}}
}

// RelationEmpty matches pages whose relation property references nothing.
func RelationEmpty(prop string) Filter {
	return Filter{"property": prop, "relation": map[string]any{"is_empty": true}}
}

// RelationNotEmpty matches pages whose relation property references something.
func RelationNotEmpty(prop string) Filter {
	return Filter{"property": prop, "relation": map[string]any{"is_not_empty": true}}
}

// NumberGreaterThan matches a number property strictly greater than v.
func NumberGreaterThan(prop string, v float64) Filter {
	return Filter{"property": prop, "number": map[string]any{"greater_than": v}}
}

// CreatedOnOrAfter matches pages created on or after the given ISO date.
func CreatedOnOrAfter(date string) Filter {
	return Filter{"timestamp": "created_time", "created_time": map[string]any{"on_or_after": date}}
}
