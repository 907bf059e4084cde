package notion

import (
	"strconv"
	"strings"
)

// Kind enumerates the property kinds this tool can decode. Anything else
// decodes as KindOther and yields zero values from the accessors.
type Kind int

const (
	KindOther Kind = iota
	KindText
	KindTitle
	KindNumber
	KindFormula
	KindRollup
	KindRelation
	KindSelect
	KindDate
)

func kindOf(tag string) Kind {
	switch tag {
	case "rich_text":
		return KindText
	case "title":
		return KindTitle
	case "number":
		return KindNumber
	case "formula":
		return KindFormula
	case "rollup":
		return KindRollup
	case "relation":
		return KindRelation
	case "select":
		return KindSelect
	case "date":
		return KindDate
	default:
		return KindOther
	}
}

// richText is one span of a title or rich_text value.
type richText struct {
	PlainText string `json:"plain_text"`
}

type formulaValue struct {
	Type   string   `json:"type"`
	Number *float64 `json:"number"`
}

type rollupValue struct {
	Type   string   `json:"type"`
	Number *float64 `json:"number"`
}

type pageRef struct {
	ID string `json:"id"`
}

type selectValue struct {
	Name string `json:"name"`
}

type dateValue struct {
	Start string `json:"start"`
}

// Property is the decoded wire shape of one page property. The Type tag
// determines which of the value fields is meaningful.
type Property struct {
	Type     string        `json:"type"`
	RichText []richText    `json:"rich_text,omitempty"`
	Title    []richText    `json:"title,omitempty"`
	NumberV  *float64      `json:"number,omitempty"`
	Formula  *formulaValue `json:"formula,omitempty"`
	Rollup   *rollupValue  `json:"rollup,omitempty"`
	RelRefs  []pageRef     `json:"relation,omitempty"`
	Select   *selectValue  `json:"select,omitempty"`
	Date     *dateValue    `json:"date,omitempty"`
}

// Kind returns the decoded property kind.
func (p Property) Kind() Kind { return kindOf(p.Type) }

// Text returns the plain-text content of a text-bearing property. Numbers
// render as their decimal representation so codes stored in number columns
// remain parseable. Other kinds yield "".
func (p Property) Text() string {
	switch p.Kind() {
	case KindText:
		return joinPlain(p.RichText)
	case KindTitle:
		return joinPlain(p.Title)
	case KindNumber:
		if p.NumberV == nil {
			return ""
		}
		return trimFloat(*p.NumberV)
	case KindFormula, KindRollup, KindRelation, KindSelect, KindDate, KindOther:
		return ""
	}
	return ""
}

// Number unwraps a numeric value from a plain number, a formula-derived
// number or a rollup-derived number. ok is false for any other kind or when
// the value is absent.
func (p Property) Number() (v float64, ok bool) {
	switch p.Kind() {
	case KindNumber:
		if p.NumberV != nil {
			return *p.NumberV, true
		}
	case KindFormula:
		if p.Formula != nil && p.Formula.Type == "number" && p.Formula.Number != nil {
			return *p.Formula.Number, true
		}
	case KindRollup:
		if p.Rollup != nil && p.Rollup.Type == "number" && p.Rollup.Number != nil {
			return *p.Rollup.Number, true
		}
	case KindText, KindTitle, KindRelation, KindSelect, KindDate, KindOther:
	}
	return 0, false
}

// Relation returns the ids referenced by a relation property.
func (p Property) Relation() []string {
	if p.Kind() != KindRelation {
		return nil
	}
	ids := make([]string, 0, len(p.RelRefs))
	for _, r := range p.RelRefs {
		ids = append(ids, r.ID)
	}
	return ids
}

// HasRelation reports whether a relation property references at least one page.
func (p Property) HasRelation() bool {
	return p.Kind() == KindRelation && len(p.RelRefs) > 0
}

func trimFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func joinPlain(spans []richText) string {
	var b strings.Builder
	for _, s := range spans {
		b.WriteString(s.PlainText)
	}
	return strings.TrimSpace(b.String())
}

// Icon is a page icon; only emoji icons are meaningful to this tool.
type Icon struct {
	Type  string `json:"type"`
	Emoji string `json:"emoji,omitempty"`
}

// Page is a Notion page with its decoded properties.
type Page struct {
	ID          string              `json:"id"`
	CreatedTime string              `json:"created_time"`
	Icon        *Icon               `json:"icon"`
	Properties  map[string]Property `json:"properties"`
}

// Prop returns the named property, or a zero Property of KindOther.
func (p Page) Prop(name string) Property { return p.Properties[name] }
