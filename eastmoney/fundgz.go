package eastmoney

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hyliu/fundsync"
)

// The fundgz endpoint answers a JS variable assignment wrapping a JSON
// object, e.g.:
//
//	jsonpgz({"fundcode":"161725","name":"招商中证白酒","dwjz":"1.1808",
//	         "gsz":"1.1826","gszzl":"0.15","gztime":"2021-03-15 14:00"});
//
// so the object must be cut out of the wrapper before parsing.

const retryDelay = 300 * time.Millisecond

// gzPayload is the JSON object embedded in a fundgz response. All fields
// arrive as strings.
type gzPayload struct {
	Name   string `json:"name"`
	Dwjz   string `json:"dwjz"`   // settled unit net value
	Gsz    string `json:"gsz"`    // estimated net value
	Gszzl  string `json:"gszzl"`  // estimated change percent
	Gztime string `json:"gztime"` // valuation time
}

// fetchEstimate resolves the intraday estimate from the primary feed.
func (r *Resolver) fetchEstimate(code string) (fundsync.Quote, bool) {
	payload, ok := r.fetchPayload(code)
	if !ok {
		return fundsync.Quote{}, false
	}
	quote := fundsync.Quote{
		Name:      strings.TrimSpace(payload.Name),
		UnitNAV:   parseNull(payload.Dwjz),
		EstNAV:    parseNull(payload.Gsz),
		ChangePct: parseNull(payload.Gszzl),
		Source:    fundsync.SourceFundgz,
	}
	if t := strings.TrimSpace(payload.Gztime); fundsync.IsISOLike(t) {
		quote.Time = t
	}
	return quote, true
}

// fetchPayload tries each base URL in turn, pausing briefly after a failed
// attempt. Any transport or parse failure just means "no result from this
// base".
func (r *Resolver) fetchPayload(code string) (gzPayload, bool) {
	for i, base := range r.bases {
		if i > 0 {
			r.sleep(retryDelay)
		}
		addr := fmt.Sprintf("%s/js/%s.js?rt=%d", base, code, r.now().Unix())
		raw, err := r.get(addr, nil)
		if err != nil {
			continue
		}
		obj := extractObject(string(raw))
		if obj == "" {
			continue
		}
		return parsePayload(obj), true
	}
	return gzPayload{}, false
}

// extractObject cuts the first embedded JSON object out of a JS wrapper by
// scanning for the outermost balanced braces, ignoring braces inside string
// literals. A truncated payload returns the unbalanced tail so the regex
// fallback still gets a chance at the fields.
func extractObject(s string) string {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return ""
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return s[start:]
}

// parsePayload decodes the extracted object, falling back to per-field
// regex extraction when the JSON is malformed. The feed occasionally serves
// truncated or otherwise broken payloads whose fields are still salvageable.
func parsePayload(obj string) gzPayload {
	var p gzPayload
	if err := json.Unmarshal([]byte(obj), &p); err == nil {
		return p
	}
	p.Name = gzField(obj, "name")
	p.Dwjz = gzField(obj, "dwjz")
	p.Gsz = gzField(obj, "gsz")
	p.Gszzl = gzField(obj, "gszzl")
	p.Gztime = gzField(obj, "gztime")
	return p
}

func gzField(obj, key string) string {
	re := regexp.MustCompile(`"` + key + `"\s*:\s*"([^"]*)"`)
	if m := re.FindStringSubmatch(obj); m != nil {
		return m[1]
	}
	return ""
}

func parseNull(s string) decimal.NullDecimal {
	if d, ok := fundsync.ParseDecimal(s); ok {
		return decimal.NullDecimal{Decimal: d, Valid: true}
	}
	return decimal.NullDecimal{}
}

// get performs one GET with the browser-ish headers the feeds expect.
func (r *Resolver) get(addr string, headers map[string]string) ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, addr, nil)
	if err != nil {
		return nil, fmt.Errorf("cannot create request %q: %w", addr, err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cannot GET %q: %w", addr, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %q: %s", addr, resp.Status)
	}
	return io.ReadAll(resp.Body)
}
