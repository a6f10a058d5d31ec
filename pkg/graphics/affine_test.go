package graphics

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestAffine_ComposeOrder(t *testing.T) {
	// Scale first, then translate.
	m := Translation(10, 20).Mul(Scaling(2, 3))
	got := m.Apply(Offset{X: 1, Y: 1})
	want := Offset{X: 12, Y: 23}
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("Apply mismatch (-want +got):\n%s", diff)
	}

	if then := Scaling(2, 3).Then(Translation(10, 20)); then != m {
		t.Errorf("Then = %v, want %v", then, m)
	}
}

func TestRotation_QuarterTurnsAreExact(t *testing.T) {
	tests := []struct {
		degrees float64
		want    Offset
	}{
		{0, Offset{X: 1, Y: 0}},
		{90, Offset{X: 0, Y: 1}},
		{180, Offset{X: -1, Y: 0}},
		{270, Offset{X: 0, Y: -1}},
		{-90, Offset{X: 0, Y: -1}},
	}
	for _, tt := range tests {
		got := Rotation(tt.degrees).Apply(Offset{X: 1, Y: 0})
		if got != tt.want {
			t.Errorf("Rotation(%v) applied to (1,0) = %v, want %v", tt.degrees, got, tt.want)
		}
	}
}

func TestAffine_Aff3RoundTrip(t *testing.T) {
	m := Translation(3, 4).Mul(Scaling(5, 6))
	aff := m.Aff3()
	if aff[2] != 3 || aff[5] != 4 || aff[0] != 5 || aff[4] != 6 {
		t.Errorf("unexpected Aff3 layout: %v", aff)
	}
}

func TestRect_Geometry(t *testing.T) {
	r := RectFromLTWH(10, 20, 100, 50)
	if got := r.Center(); got != (Offset{X: 60, Y: 45}) {
		t.Errorf("Center = %v", got)
	}
	if got := RectFromCenter(r.Center(), r.Size()); got != r {
		t.Errorf("RectFromCenter = %v, want %v", got, r)
	}
	if !r.Contains(Offset{X: 10, Y: 20}) || r.Contains(Offset{X: 5, Y: 20}) {
		t.Error("Contains boundary check failed")
	}
	if !(Rect{}).IsEmpty() {
		t.Error("zero rect should be empty")
	}
}
