package offers

import (
	"testing"
	"time"

	"swaadha/models"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestWithinWindow(t *testing.T) {
	offer := models.Offer{StartDate: "2026-03-01", EndDate: "2026-03-10"}

	cases := []struct {
		day  string
		want bool
	}{
		{"2026-02-28", false},
		{"2026-03-01", true}, // start day counts
		{"2026-03-05", true},
		{"2026-03-10", true}, // end day counts
		{"2026-03-11", false},
	}
	for _, c := range cases {
		if got := WithinWindow(offer, day(c.day)); got != c.want {
			t.Errorf("WithinWindow(%s) = %v, want %v", c.day, got, c.want)
		}
	}
}

func TestWithinWindowOpenEnded(t *testing.T) {
	offer := models.Offer{StartDate: "2026-03-01"}
	if !WithinWindow(offer, day("2030-01-01")) {
		t.Error("offer with no end date should never expire")
	}
	if WithinWindow(offer, day("2026-02-01")) {
		t.Error("offer should not apply before its start date")
	}

	blank := models.Offer{}
	if !WithinWindow(blank, day("2026-03-05")) {
		t.Error("offer with no dates should always be in window")
	}
}

func TestValidateOffer(t *testing.T) {
	valid := models.Offer{
		Title:         "Summer sale",
		DiscountType:  "percentage",
		DiscountValue: 15,
		AppliesTo:     "all",
		StartDate:     "2026-06-01",
		EndDate:       "2026-06-30",
	}
	if err := validateOffer(&valid); err != nil {
		t.Fatalf("valid offer rejected: %v", err)
	}

	bad := valid
	bad.DiscountValue = 150
	if err := validateOffer(&bad); err == nil {
		t.Error("percentage over 100 should be rejected")
	}

	bad = valid
	bad.AppliesTo = "category"
	if err := validateOffer(&bad); err == nil {
		t.Error("category offer without a category should be rejected")
	}

	bad = valid
	bad.EndDate = "2026-05-01"
	if err := validateOffer(&bad); err == nil {
		t.Error("end date before start date should be rejected")
	}

	scoped := valid
	scoped.CategoryID = "cat123"
	if err := validateOffer(&scoped); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if scoped.CategoryID != "" {
		t.Error("applies_to all should clear the category scope")
	}
}
