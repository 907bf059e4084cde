package notion

// Value is an encoded property value ready to be sent in a create or patch
// payload. Constructors below produce the exact wire shape per kind; there
// is one constructor per kind this tool writes.
type Value map[string]any

func textSpans(s string) []any {
	return []any{map[string]any{"text": map[string]any{"content": s}}}
}

// Title encodes a title value.
func Title(s string) Value { return Value{"title": textSpans(s)} }

// Text encodes a rich_text value.
func Text(s string) Value { return Value{"rich_text": textSpans(s)} }

// Number encodes a number value.
func Number(v float64) Value { return Value{"number": v} }

// NumberPtr encodes a number value, writing an explicit null when v is nil
// so stale numbers are cleared rather than left behind.
func NumberPtr(v *float64) Value {
	if v == nil {
		return Value{"number": nil}
	}
	return Value{"number": *v}
}

// Select encodes a select value by option name.
func Select(name string) Value {
	return Value{"select": map[string]any{"name": name}}
}

// Date encodes a date value from an ISO-8601 date or date-time string.
func Date(iso string) Value {
	return Value{"date": map[string]any{"start": iso}}
}

// Relation encodes a relation value referencing the given page ids.
func Relation(ids ...string) Value {
	refs := make([]any, 0, len(ids))
	for _, id := range ids {
		refs = append(refs, map[string]any{"id": id})
	}
	return Value{"relation": refs}
}
