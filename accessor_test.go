package mosaic

import "testing"

func TestAccessorConflicts(t *testing.T) {
	tests := []struct {
		name string
		a, b Accessor
		want bool
	}{
		{"ref/ref same id never conflicts", AccessorRef(1), AccessorRef(1), false},
		{"ref/mut same id conflicts", AccessorRef(1), AccessorMut(1), true},
		{"mut/mut same id conflicts", AccessorMut(1), AccessorMut(1), true},
		{"mut/ref different id does not conflict", AccessorMut(1), AccessorRef(2), false},
		{"res/resmut same resource conflicts", AccessorResRead(1), AccessorResWrite(1), true},
		{"resmut/resmut same resource conflicts", AccessorResWrite(1), AccessorResWrite(1), true},
		{"res/res same resource never conflicts", AccessorResRead(1), AccessorResRead(1), false},
		{"none never conflicts", AccessorNone(), AccessorMut(1), false},
		{"component and resource ids are different spaces", AccessorMut(1), AccessorResWrite(1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.conflicts(tt.b); got != tt.want {
				t.Errorf("%v.conflicts(%v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			if got := tt.b.conflicts(tt.a); got != tt.want {
				t.Errorf("conflict relation not symmetric: %v.conflicts(%v) = %v, want %v", tt.b, tt.a, got, tt.want)
			}
		})
	}
}

func TestAccessorsConflictAnyPair(t *testing.T) {
	a := []Accessor{AccessorRef(1), AccessorRef(2)}
	b := []Accessor{AccessorMut(2)}
	if !accessorsConflict(a, b) {
		t.Errorf("expected a conflict via the shared id 2")
	}

	c := []Accessor{AccessorRef(3)}
	if accessorsConflict(a, c) {
		t.Errorf("expected no conflict: disjoint ids")
	}
}
