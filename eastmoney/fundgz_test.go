package eastmoney

import "testing"

func TestExtractObject(t *testing.T) {
	tests := []struct {
		name, in, want string
	}{
		{
			"wrapped",
			`jsonpgz({"name":"x"});`,
			`{"name":"x"}`,
		},
		{
			"brace inside string",
			`jsonpgz({"name":"a{b}c","dwjz":"1.0"});`,
			`{"name":"a{b}c","dwjz":"1.0"}`,
		},
		{
			"escaped quote inside string",
			`jsonpgz({"name":"a\"}b"});`,
			`{"name":"a\"}b"}`,
		},
		{
			"truncated payload keeps the tail",
			`jsonpgz({"name":"x","dwjz":"1.0`,
			`{"name":"x","dwjz":"1.0`,
		},
		{
			"no object",
			`jsonpgz();`,
			``,
		},
	}
	for _, test := range tests {
		if got := extractObject(test.in); got != test.want {
			t.Errorf("%s: extractObject(%q)=%q, want %q", test.name, test.in, got, test.want)
		}
	}
}

func TestParsePayload(t *testing.T) {
	p := parsePayload(`{"name":"招商中证白酒","dwjz":"1.1808","gsz":"1.1826","gszzl":"0.15","gztime":"2021-03-15 14:00"}`)
	if p.Name != "招商中证白酒" || p.Dwjz != "1.1808" || p.Gsz != "1.1826" || p.Gszzl != "0.15" || p.Gztime != "2021-03-15 14:00" {
		t.Errorf("parsed payload=%+v", p)
	}
}

func TestParsePayloadRegexFallback(t *testing.T) {
	// a truncated object is not valid JSON; the intact fields are still there
	p := parsePayload(`{"name":"招商中证白酒","dwjz":"1.1808","gsz":"1.18`)
	if p.Name != "招商中证白酒" {
		t.Errorf("name=%q", p.Name)
	}
	if p.Dwjz != "1.1808" {
		t.Errorf("dwjz=%q", p.Dwjz)
	}
	if p.Gsz != "" {
		t.Errorf("gsz=%q, want the truncated field dropped", p.Gsz)
	}
}

func TestParseNull(t *testing.T) {
	if d := parseNull("1.1808"); !d.Valid || d.Decimal.String() != "1.1808" {
		t.Errorf("parseNull(number)=%v", d)
	}
	if d := parseNull(""); d.Valid {
		t.Errorf("parseNull(empty)=%v", d)
	}
	if d := parseNull("--"); d.Valid {
		t.Errorf("parseNull(placeholder)=%v", d)
	}
}
