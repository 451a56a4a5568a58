package stock

import "testing"

func TestDetermineStockStatus(t *testing.T) {
	cases := []struct {
		quantity int
		want     string
	}{
		{150, StatusHigh},
		{100, StatusHigh},
		{99, StatusAverage},
		{50, StatusAverage},
		{49, StatusLow},
		{1, StatusLow},
		{0, StatusOut},
		{-5, StatusOut},
	}
	for _, c := range cases {
		if got := DetermineStockStatus(c.quantity); got != c.want {
			t.Errorf("DetermineStockStatus(%d) = %q, want %q", c.quantity, got, c.want)
		}
	}
}
