package world

import (
	"errors"
	"testing"
)

// boxRows builds a w x h grid with a wall ring and an empty interior.
func boxRows(w, h int) [][]Cell {
	rows := make([][]Cell, h)
	for y := range rows {
		rows[y] = make([]Cell, w)
		for x := range rows[y] {
			rows[y][x] = Cell{Floor: 1, Ceiling: 2}
			if x == 0 || y == 0 || x == w-1 || y == h-1 {
				rows[y][x].Wall = 1
			}
		}
	}
	return rows
}

func TestNewGridValidation(t *testing.T) {
	open := boxRows(4, 4)
	open[0][2].Wall = Empty

	ragged := boxRows(4, 4)
	ragged[2] = ragged[2][:3]

	tests := []struct {
		name string
		rows [][]Cell
		want error
	}{
		{"valid", boxRows(8, 4), nil},
		{"empty", nil, ErrEmptyMap},
		{"width not power of two", boxRows(6, 4), ErrNotPowerOfTwo},
		{"height not power of two", boxRows(4, 3), ErrNotPowerOfTwo},
		{"open boundary", open, ErrOpenBoundary},
		{"ragged", ragged, ErrRagged},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGrid(tt.rows)
			if tt.want == nil && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Fatalf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestGridAddressing(t *testing.T) {
	rows := boxRows(8, 4)
	rows[1][5] = Cell{Wall: 3}
	g, err := NewGrid(rows)
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	if g.Width() != 8 || g.Height() != 4 {
		t.Fatalf("size = %dx%d", g.Width(), g.Height())
	}
	if got := g.At(5, 1).Wall; got != 3 {
		t.Errorf("At(5,1).Wall = %d, want 3", got)
	}
	if got := g.Wrapped(5+8, 1-4).Wall; got != 3 {
		t.Errorf("Wrapped(13,-3).Wall = %d, want 3", got)
	}
	if !g.IsTileBlocking(-1, 2) || !g.IsTileBlocking(8, 0) {
		t.Error("out of range tiles must block")
	}
	if g.IsTileBlocking(2, 2) {
		t.Error("interior tile should not block")
	}
	wall, surface := g.MaxTextureIDs()
	if wall != 3 || surface != 2 {
		t.Errorf("MaxTextureIDs = %d, %d", wall, surface)
	}
}
