package layout

import "testing"

func TestCalculateBodyHeight(t *testing.T) {
	cfg := DefaultConfig().Grid

	tests := []struct {
		name           string
		terminalHeight int
		want           int
	}{
		{"normal terminal", 30, 20},            // 30 - 10
		{"large terminal", 50, 40},             // 50 - 10
		{"small terminal enforces min", 12, 5}, // 2 < min 5
		{"smaller than reduction", 4, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateBodyHeight(tt.terminalHeight, cfg)
			if got != tt.want {
				t.Errorf("CalculateBodyHeight(%d) = %d, want %d", tt.terminalHeight, got, tt.want)
			}
		})
	}
}

func TestCalculateSidebarWidth(t *testing.T) {
	cfg := DefaultConfig().Sidebar

	tests := []struct {
		name          string
		terminalWidth int
		want          int
	}{
		{"normal width", 100, 22}, // 100*22/100
		{"narrow enforces min", 60, 18},
		{"wide enforces max", 200, 34},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateSidebarWidth(tt.terminalWidth, cfg)
			if got != tt.want {
				t.Errorf("CalculateSidebarWidth(%d) = %d, want %d", tt.terminalWidth, got, tt.want)
			}
		})
	}
}

func TestCalculateGrid(t *testing.T) {
	cfg := DefaultConfig().Grid

	tests := []struct {
		name          string
		terminalWidth int
		sidebarWidth  int
		bodyHeight    int
		items         int
		wantWidth     int
		wantColumns   int
		wantCardWidth int
		wantRows      int
		wantVisible   int
	}{
		{"80 columns", 80, 18, 14, 12, 49, 1, 49, 12, 2},  // 80-18-13 = 49
		{"120 columns", 120, 26, 20, 12, 81, 2, 40, 6, 4}, // 120-26-13 = 81
		{"wide terminal capped", 250, 34, 30, 12, 203, 4, 50, 3, 6},
		{"partial last row", 120, 26, 20, 5, 81, 2, 40, 3, 4},
		{"no items", 120, 26, 20, 0, 81, 2, 40, 0, 4},
		{"tiny terminal", 30, 18, 2, 12, 28, 1, 28, 12, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateGrid(tt.terminalWidth, tt.sidebarWidth, tt.bodyHeight, tt.items, cfg)
			want := GridLayout{
				Width:       tt.wantWidth,
				Columns:     tt.wantColumns,
				CardWidth:   tt.wantCardWidth,
				Rows:        tt.wantRows,
				VisibleRows: tt.wantVisible,
			}
			if got != want {
				t.Errorf("CalculateGrid() = %+v, want %+v", got, want)
			}
		})
	}
}

func TestGridLayout_Move(t *testing.T) {
	g := GridLayout{Columns: 3}

	tests := []struct {
		name       string
		index      int
		total      int
		dRow, dCol int
		want       int
	}{
		{"right", 0, 12, 0, 1, 1},
		{"right at row end stays", 2, 12, 0, 1, 2},
		{"left at row start stays", 3, 12, 0, -1, 3},
		{"down", 1, 12, 1, 0, 4},
		{"down past last stays", 10, 12, 1, 0, 10},
		{"down into partial row", 4, 8, 1, 0, 7},
		{"down onto missing card stays", 5, 8, 1, 0, 5},
		{"up", 4, 12, -1, 0, 1},
		{"up at top stays", 1, 12, -1, 0, 1},
		{"empty grid", 0, 0, 1, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := g.Move(tt.index, tt.total, tt.dRow, tt.dCol)
			if got != tt.want {
				t.Errorf("Move(%d, %d, %d, %d) = %d, want %d",
					tt.index, tt.total, tt.dRow, tt.dCol, got, tt.want)
			}
		})
	}
}

func TestCalculateVisibleHeight(t *testing.T) {
	tests := []struct {
		paneHeight, headerLines, want int
	}{
		{20, 2, 18},
		{2, 2, 1},
		{1, 5, 1},
	}

	for _, tt := range tests {
		if got := CalculateVisibleHeight(tt.paneHeight, tt.headerLines); got != tt.want {
			t.Errorf("CalculateVisibleHeight(%d, %d) = %d, want %d", tt.paneHeight, tt.headerLines, got, tt.want)
		}
	}
}

func TestCalculateViewportOffset(t *testing.T) {
	tests := []struct {
		name                    string
		selected, total, height int
		want                    int
	}{
		{"everything fits", 3, 4, 5, 0},
		{"selection near top", 1, 10, 4, 0},
		{"selection centered", 5, 10, 4, 3},
		{"selection near bottom clamps", 9, 10, 4, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateViewportOffset(tt.selected, tt.total, tt.height)
			if got != tt.want {
				t.Errorf("CalculateViewportOffset(%d, %d, %d) = %d, want %d",
					tt.selected, tt.total, tt.height, got, tt.want)
			}
		})
	}
}
