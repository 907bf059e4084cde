package eastmoney

import (
	"encoding/json"
	"fmt"

	"github.com/PaesslerAG/jsonpath"

	"github.com/hyliu/fundsync"
)

// The F10 lsjz endpoint returns pages of settled end-of-day records; only
// the most recent one is requested and used.

// f10Headers: the API refuses requests that do not look like the fund site.
var f10Headers = map[string]string{
	"Referer":    "https://fund.eastmoney.com",
	"Accept":     "*/*",
	"Connection": "keep-alive",
}

// fetchSettled resolves the most recent settled NAV from the secondary
// feed. The settled value fills both the unit and the estimated fields: a
// closed day has no separate estimate.
func (r *Resolver) fetchSettled(code string) (fundsync.Quote, bool) {
	raw, err := r.get(fmt.Sprintf(r.f10, code), f10Headers)
	if err != nil {
		return fundsync.Quote{}, false
	}

	var jobj any
	if err := json.Unmarshal(raw, &jobj); err != nil {
		return fundsync.Quote{}, false
	}
	// the rows sit deep in the envelope, jsonpath keeps the digging tolerant
	jval, err := jsonpath.Get("$.Data.LSJZList", jobj)
	if err != nil {
		return fundsync.Quote{}, false
	}
	rows, ok := jval.([]any)
	if !ok || len(rows) == 0 {
		return fundsync.Quote{}, false
	}
	row, ok := rows[0].(map[string]any)
	if !ok {
		return fundsync.Quote{}, false
	}

	settled := parseNull(stringAt(row, "DWJZ"))
	quote := fundsync.Quote{
		UnitNAV:   settled,
		EstNAV:    settled,
		ChangePct: parseNull(stringAt(row, "JZZZL")),
		Source:    fundsync.SourceF10,
	}
	if t := stringAt(row, "FSRQ"); fundsync.IsISOLike(t) {
		quote.Time = t
	}
	return quote, quote.Usable()
}

func stringAt(row map[string]any, key string) string {
	switch v := row[key].(type) {
	case string:
		return v
	case float64:
		// the API switches between strings and numbers for these fields
		return fundsync.NormalizeNum(fmt.Sprintf("%v", v))
	default:
		return ""
	}
}
