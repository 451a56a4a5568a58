package promos

import (
	"testing"
	"time"

	"vendora/models"
)

func TestComputeDiscountPercentage(t *testing.T) {
	promo := models.PromoCode{DiscountType: models.DiscountPercentage, DiscountValue: 10}
	if got := ComputeDiscount(promo, 200); got != 20 {
		t.Errorf("percentage 10 on 200 = %v, want 20", got)
	}
	if got := ComputeDiscount(promo, 0); got != 0 {
		t.Errorf("percentage on empty total = %v, want 0", got)
	}
}

func TestComputeDiscountFixed(t *testing.T) {
	promo := models.PromoCode{DiscountType: models.DiscountFixed, DiscountValue: 50}
	if got := ComputeDiscount(promo, 200); got != 50 {
		t.Errorf("fixed 50 on 200 = %v, want 50", got)
	}
	// fixed discount never exceeds the total
	if got := ComputeDiscount(promo, 30); got != 30 {
		t.Errorf("fixed 50 on 30 = %v, want 30", got)
	}
}

func TestComputeDiscountUnknownType(t *testing.T) {
	promo := models.PromoCode{DiscountType: "bogus", DiscountValue: 50}
	if got := ComputeDiscount(promo, 200); got != 0 {
		t.Errorf("unknown type = %v, want 0", got)
	}
}

func TestCheckUsable(t *testing.T) {
	now := time.Now()

	active := models.PromoCode{Active: true, ExpirationDate: now.Add(24 * time.Hour)}
	if err := CheckUsable(active, now); err != nil {
		t.Errorf("active unexpired code: %v", err)
	}

	inactive := models.PromoCode{Active: false, ExpirationDate: now.Add(24 * time.Hour)}
	if err := CheckUsable(inactive, now); err != ErrInactive {
		t.Errorf("inactive code: got %v, want ErrInactive", err)
	}

	expired := models.PromoCode{Active: true, ExpirationDate: now.Add(-time.Hour)}
	if err := CheckUsable(expired, now); err != ErrExpired {
		t.Errorf("expired code: got %v, want ErrExpired", err)
	}
}
