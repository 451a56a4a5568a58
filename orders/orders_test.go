package orders

import (
	"testing"

	"vendora/models"
)

func TestCanCancel(t *testing.T) {
	cases := []struct {
		status string
		want   bool
	}{
		{models.OrderPending, true},
		{models.OrderShipped, false},
		{models.OrderDelivered, false},
		{models.OrderCancelled, false},
		{"", false},
	}
	for _, c := range cases {
		if got := CanCancel(c.status); got != c.want {
			t.Errorf("CanCancel(%q) = %v, want %v", c.status, got, c.want)
		}
	}
}

func TestHasRole(t *testing.T) {
	if !hasRole([]string{"user", "admin"}, "admin") {
		t.Error("expected admin role to match")
	}
	if hasRole([]string{"user"}, "admin") {
		t.Error("did not expect admin role to match")
	}
	if hasRole(nil, "admin") {
		t.Error("nil roles should never match")
	}
}
