package viewport

import (
	"testing"
)

func TestDragSelection(t *testing.T) {
	tests := []struct {
		name     string
		zoom     float64
		start    Point
		end      Point
		wantKind SelectionKind
		wantMin  Point
		wantMax  Point
	}{
		{
			name:     "forward drag",
			zoom:     100,
			start:    Point{X: 10, Y: 10},
			end:      Point{X: 30, Y: 20},
			wantKind: SelectRegion,
			wantMin:  Point{X: 10, Y: 10},
			wantMax:  Point{X: 30, Y: 20},
		},
		{
			name:     "backward drag is normalised",
			zoom:     100,
			start:    Point{X: 30, Y: 20},
			end:      Point{X: 10, Y: 10},
			wantKind: SelectRegion,
			wantMin:  Point{X: 10, Y: 10},
			wantMax:  Point{X: 30, Y: 20},
		},
		{
			name:     "zoomed drag is in raster pixels",
			zoom:     200,
			start:    Point{X: 40, Y: 0},
			end:      Point{X: 0, Y: 40},
			wantKind: SelectRegion,
			wantMin:  Point{X: 0, Y: 0},
			wantMax:  Point{X: 20, Y: 20},
		},
		{
			name:     "tiny drag is a point",
			zoom:     100,
			start:    Point{X: 10, Y: 10},
			end:      Point{X: 11, Y: 12},
			wantKind: SelectPoint,
			wantMin:  Point{X: 11, Y: 12},
			wantMax:  Point{X: 11, Y: 12},
		},
		{
			name:     "thin line is a point",
			zoom:     100,
			start:    Point{X: 0, Y: 5},
			end:      Point{X: 100, Y: 5},
			wantKind: SelectPoint,
			wantMin:  Point{X: 100, Y: 5},
			wantMax:  Point{X: 100, Y: 5},
		},
		{
			name:     "zoomed in small drag is a point",
			zoom:     400,
			start:    Point{X: 0, Y: 0},
			end:      Point{X: 6, Y: 6},
			wantKind: SelectPoint,
			wantMin:  Point{X: 1.5, Y: 1.5},
			wantMax:  Point{X: 1.5, Y: 1.5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(DefaultMinZoom, DefaultMaxZoom, DefaultZoomStep)
			s.Reset(Size{W: 200, H: 200})
			s.SetZoom(tt.zoom)

			s.BeginDrag(tt.start.X, tt.start.Y)
			if !s.Dragging() {
				t.Fatal("BeginDrag() did not start a drag")
			}
			s.UpdateDrag(tt.end.X, tt.end.Y)
			sel := s.EndDrag()

			if sel.Kind != tt.wantKind {
				t.Errorf("Kind = %v, want %v", sel.Kind, tt.wantKind)
			}
			if sel.Min != tt.wantMin || sel.Max != tt.wantMax {
				t.Errorf("selection = %v..%v, want %v..%v", sel.Min, sel.Max, tt.wantMin, tt.wantMax)
			}
			if s.Dragging() {
				t.Error("EndDrag() left the drag active")
			}
		})
	}
}

func TestDragWithoutBegin(t *testing.T) {
	s := New(DefaultMinZoom, DefaultMaxZoom, DefaultZoomStep)
	s.UpdateDrag(50, 50)
	if sel := s.EndDrag(); sel.Kind != SelectNone {
		t.Errorf("EndDrag() without BeginDrag = %v, want none", sel.Kind)
	}
	if SelectNone.String() != "none" || SelectPoint.String() != "point" || SelectRegion.String() != "region" {
		t.Error("unexpected SelectionKind names")
	}
}

func TestSelectionArea(t *testing.T) {
	sel := Selection{Min: Point{X: 1, Y: 2}, Max: Point{X: 4, Y: 6}}
	if sel.Area() != 12 {
		t.Errorf("Area() = %v, want 12", sel.Area())
	}
}
