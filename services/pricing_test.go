package services

import "testing"

func TestPriceStay(t *testing.T) {
	q := PriceStay(10000, 2000, day("2024-02-01"), day("2024-02-04"), 0)

	if q.Nights != 3 {
		t.Fatalf("nights = %d, want 3", q.Nights)
	}
	if q.Subtotal != 36000 {
		t.Fatalf("subtotal = %v, want 36000", q.Subtotal)
	}
	if q.Taxes != 6480 {
		t.Fatalf("taxes = %v, want 6480", q.Taxes)
	}
	if q.TotalAmount != 42480 {
		t.Fatalf("total = %v, want 42480", q.TotalAmount)
	}
	if q.RemainingAmount != 42480 {
		t.Fatalf("remaining without advance = %v, want total", q.RemainingAmount)
	}
}

func TestPriceStaySameDayCountsOneNight(t *testing.T) {
	q := PriceStay(15000, 0, day("2024-02-01"), day("2024-02-01"), 5000)
	if q.Nights != 1 {
		t.Fatalf("nights = %d, want 1", q.Nights)
	}
	if q.TotalAmount != 17700 {
		t.Fatalf("total = %v, want 17700", q.TotalAmount)
	}
	if q.RemainingAmount != 12700 {
		t.Fatalf("remaining = %v, want 12700", q.RemainingAmount)
	}
}

func TestPriceStayRoundsTaxes(t *testing.T) {
	// 18% of 1234 is 222.12
	q := PriceStay(1234, 0, day("2024-02-01"), day("2024-02-02"), 0)
	if q.Taxes != 222 {
		t.Fatalf("taxes = %v, want 222", q.Taxes)
	}
	if q.TotalAmount != 1456 {
		t.Fatalf("total = %v, want 1456", q.TotalAmount)
	}
}

func TestRemainingAmount(t *testing.T) {
	cases := []struct {
		total, advance, want float64
	}{
		{42480, 0, 42480},
		{42480, 10000, 32480},
		{42480, 42480, 0},
		{42480, 50000, 0},
		{42480, -5, 42480},
	}
	for _, tc := range cases {
		if got := RemainingAmount(tc.total, tc.advance); got != tc.want {
			t.Errorf("RemainingAmount(%v, %v) = %v, want %v", tc.total, tc.advance, got, tc.want)
		}
	}
}
