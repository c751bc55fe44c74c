package idspace

import (
	"errors"
	"slices"
	"testing"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{"ring", KindRing, false},
		{"plane", KindPlane, false},
		{"md", KindMultiDimensional, false},
		{"multidimensional", KindMultiDimensional, false},
		{"torus", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseKind(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseKind(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseKind(%q) = %v, want %v", tt.in, got, tt.want)
			}
			if !tt.wantErr && got.String() != tt.in && tt.in != "multidimensional" {
				t.Errorf("String() = %q, want %q", got.String(), tt.in)
			}
		})
	}
}

func TestRingPosition(t *testing.T) {
	r := NewRing(1, []float64{0, 0.25, 0.5, 0.75})

	p, err := r.Position(2)
	if err != nil {
		t.Fatalf("Position(2) error: %v", err)
	}
	if p != 0.5 {
		t.Errorf("Position(2) = %v, want 0.5", p)
	}

	if _, err := r.Position(4); !errors.Is(err, ErrUnknownNode) {
		t.Errorf("Position(4) error = %v, want ErrUnknownNode", err)
	}
	if _, err := r.Position(-1); !errors.Is(err, ErrUnknownNode) {
		t.Errorf("Position(-1) error = %v, want ErrUnknownNode", err)
	}
}

func TestRingBoundaries(t *testing.T) {
	r := NewRing(1, []float64{0.5, 0.1, 0.5, 0.9, 0.1})
	got := r.Boundaries()
	want := []float64{0.1, 0.5, 0.9}
	if !slices.Equal(got, want) {
		t.Errorf("Boundaries() = %v, want %v", got, want)
	}
	if r.Positions[0] != 0.5 {
		t.Error("Boundaries() must not reorder Positions")
	}
}

func TestRingValidate(t *testing.T) {
	if err := NewRing(1, []float64{0, 0.99}).Validate(); err != nil {
		t.Errorf("valid ring: %v", err)
	}
	if err := NewRing(1, []float64{1.0}).Validate(); !errors.Is(err, ErrInvalidEmbedding) {
		t.Errorf("position == modulus: err = %v, want ErrInvalidEmbedding", err)
	}
	if err := NewRing(0, nil).Validate(); err != nil {
		t.Errorf("zero modulus should default to 1: %v", err)
	}
}

func TestCoordinates(t *testing.T) {
	p := NewPlane([][]float64{{0, 0}, {1, 1}})
	if p.Kind() != KindPlane || p.Dimensions() != 2 {
		t.Errorf("plane kind/dim = %v/%d", p.Kind(), p.Dimensions())
	}
	if err := p.Validate(); err != nil {
		t.Errorf("valid plane: %v", err)
	}

	md := NewMultiDimensional(3, [][]float64{{0, 0, 0}, {1, 2}})
	if md.Kind() != KindMultiDimensional {
		t.Errorf("md kind = %v", md.Kind())
	}
	if err := md.Validate(); !errors.Is(err, ErrInvalidEmbedding) {
		t.Errorf("short point: err = %v, want ErrInvalidEmbedding", err)
	}

	if _, err := p.Point(5); !errors.Is(err, ErrUnknownNode) {
		t.Errorf("Point(5) error = %v, want ErrUnknownNode", err)
	}
}
