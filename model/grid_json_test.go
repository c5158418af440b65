package model

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/pkg/errors"
)

func TestFromNested(t *testing.T) {
	tests := []struct {
		name    string
		nested  [][][]int
		wantErr bool
	}{
		{"single", [][][]int{{{1}}}, false},
		{"cuboid", [][][]int{{{0, 1}, {1, 0}}, {{0, 0}, {1, 1}}}, false},
		{"empty", [][][]int{}, true},
		{"empty plane", [][][]int{{}}, true},
		{"empty row", [][][]int{{{}}}, true},
		{"ragged planes", [][][]int{{{0}, {1}}, {{0}}}, true},
		{"ragged rows", [][][]int{{{0, 1}, {1}}}, true},
		{"bad state", [][][]int{{{0, 2}}}, true},
		{"negative state", [][][]int{{{-1}}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := FromNested(tt.nested)
			if tt.wantErr {
				var ige *InvalidGridError
				if !errors.As(err, &ige) {
					t.Fatalf("FromNested() error = %v, want *InvalidGridError", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("FromNested() unexpected error: %v", err)
			}
			got := g.ToNested()
			for x := range tt.nested {
				for y := range tt.nested[x] {
					for z := range tt.nested[x][y] {
						if got[x][y][z] != tt.nested[x][y][z] {
							t.Errorf("cell (%d,%d,%d) = %d, want %d", x, y, z, got[x][y][z], tt.nested[x][y][z])
						}
					}
				}
			}
		})
	}
}

func TestFromFlat(t *testing.T) {
	g, err := FromFlat([]uint8{0, 1, 1, 0, 0, 0, 0, 1}, Dims{2, 2, 2})
	if err != nil {
		t.Fatalf("FromFlat() unexpected error: %v", err)
	}
	if !g.Get(0, 0, 1) || !g.Get(0, 1, 0) || !g.Get(1, 1, 1) || g.CountLivingCells() != 3 {
		t.Errorf("FromFlat() cells = %v", g.ToNested())
	}

	_, err = FromFlat(make([]uint8, 7), Dims{2, 2, 2})
	var dme *DimensionMismatchError
	if !errors.As(err, &dme) {
		t.Fatalf("FromFlat() short input error = %v, want *DimensionMismatchError", err)
	}
	if dme.Cells != 7 || dme.Declared.Volume() != 8 {
		t.Errorf("DimensionMismatchError = %+v", dme)
	}

	var ige *InvalidGridError
	if _, err = FromFlat([]uint8{2}, Dims{1, 1, 1}); !errors.As(err, &ige) {
		t.Errorf("FromFlat() bad state error = %v, want *InvalidGridError", err)
	}
	if _, err = FromFlat(nil, Dims{0, 1, 1}); !errors.As(err, &ige) {
		t.Errorf("FromFlat() zero dims error = %v, want *InvalidGridError", err)
	}

	cells := g.Cells()
	cells[0] = Alive
	if g.Get(0, 0, 0) {
		t.Error("Cells() returned the backing slice")
	}
}

func TestGridJSON(t *testing.T) {
	const in = `[[[0,1],[1,0]],[[0,0],[1,1]],[[1,1],[0,0]]]`

	var g Grid
	if err := json.Unmarshal([]byte(in), &g); err != nil {
		t.Fatalf("Unmarshal() unexpected error: %v", err)
	}
	if g.Dims() != (Dims{3, 2, 2}) {
		t.Fatalf("Dims() = %s, want 3x2x2", g.Dims())
	}

	out, err := json.Marshal(&g)
	if err != nil {
		t.Fatalf("Marshal() unexpected error: %v", err)
	}
	if string(out) != in {
		t.Errorf("Marshal() = %s, want %s", out, in)
	}
}

func TestGridJSONErrors(t *testing.T) {
	for _, in := range []string{
		`not json`,
		`[[[0.5]]]`,
		`[[["1"]]]`,
		`null`,
		`[[[0,1],[1]]]`,
		`[[[3]]]`,
	} {
		_, err := ReadGridJSON(strings.NewReader(in))
		var ige *InvalidGridError
		if !errors.As(err, &ige) {
			t.Errorf("ReadGridJSON(%s) error = %v, want *InvalidGridError", in, err)
		}
	}
}

func TestReadWriteGridJSON(t *testing.T) {
	g := Patterns["Accordion Replicator B45/S5"].Build()

	var buf bytes.Buffer
	if err := WriteGridJSON(&buf, g); err != nil {
		t.Fatalf("WriteGridJSON() unexpected error: %v", err)
	}
	if !strings.HasSuffix(buf.String(), "\n") {
		t.Error("WriteGridJSON() output not newline terminated")
	}

	read, err := ReadGridJSON(&buf)
	if err != nil {
		t.Fatalf("ReadGridJSON() unexpected error: %v", err)
	}
	if !read.Equal(g) {
		t.Error("grid changed across write and read")
	}
}
