package geo

import "testing"

func TestHaversineKm(t *testing.T) {
	// Jakarta (-6.2, 106.816) to Bandung (-6.9175, 107.6191) ~ 115-120 km
	d := HaversineKm(-6.2, 106.816, -6.9175, 107.6191)
	if d < 100 || d > 140 {
		t.Fatalf("unexpected distance: %v", d)
	}
}

func TestHaversineKmZero(t *testing.T) {
	if d := HaversineKm(40.0, -3.7, 40.0, -3.7); d != 0 {
		t.Fatalf("expected zero distance, got %v", d)
	}
}

func TestBoundsExtend(t *testing.T) {
	b := NewBounds(18.07, 59.33)
	b = b.Extend(18.10, 59.30)
	b = b.Extend(18.05, 59.35)

	if b.MinLng != 18.05 || b.MaxLng != 18.10 {
		t.Fatalf("unexpected lng bounds: %+v", b)
	}
	if b.MinLat != 59.30 || b.MaxLat != 59.35 {
		t.Fatalf("unexpected lat bounds: %+v", b)
	}
}

func TestBoundsSinglePoint(t *testing.T) {
	b := NewBounds(18.07, 59.33)
	if b.MinLng != b.MaxLng || b.MinLat != b.MaxLat {
		t.Fatalf("expected degenerate box: %+v", b)
	}
}
