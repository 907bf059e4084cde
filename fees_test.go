package fundsync

import "testing"

func TestSellFeeRate(t *testing.T) {
	tests := []struct {
		days float64
		want string
	}{
		{-1, "0"},
		{0, "0.015"},
		{6.9, "0.015"},
		{7, "0.005"},
		{29.99, "0.005"},
		{30, "0"},
		{365, "0"},
	}
	for _, test := range tests {
		if got := SellFeeRate(test.days).String(); got != test.want {
			t.Errorf("SellFeeRate(%v)=%s, want %s", test.days, got, test.want)
		}
	}
}
