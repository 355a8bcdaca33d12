package products

import "testing"

func TestClampStock(t *testing.T) {
	tests := []struct {
		name    string
		current int
		delta   int
		want    int
	}{
		{"add", 10, 5, 15},
		{"subtract", 10, -4, 6},
		{"exact zero", 4, -4, 0},
		{"below zero clamps", 3, -10, 0},
		{"zero current negative delta", 0, -1, 0},
		{"absolute set", 0, 25, 25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := clampStock(tt.current, tt.delta); got != tt.want {
				t.Errorf("clampStock(%d, %d) = %d, want %d", tt.current, tt.delta, got, tt.want)
			}
		})
	}
}
