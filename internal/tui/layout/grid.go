package layout

// GridLayout holds calculated card grid dimensions.
type GridLayout struct {
	Width       int // total grid content width
	Columns     int
	CardWidth   int // outer width of one card
	Rows        int // rows needed for the items
	VisibleRows int // rows that fit in the body
}

// CalculateBodyHeight computes the content height for sidebar and grid.
// Returns at least MinHeight.
func CalculateBodyHeight(terminalHeight int, cfg GridConfig) int {
	height := terminalHeight - cfg.HeightReduction
	if height < cfg.MinHeight {
		return cfg.MinHeight
	}
	return height
}

// CalculateSidebarWidth computes the folder sidebar content width.
func CalculateSidebarWidth(terminalWidth int, cfg SidebarConfig) int {
	width := terminalWidth * cfg.WidthPercent / 100
	if width < cfg.MinWidth {
		width = cfg.MinWidth
	}
	if width > cfg.MaxWidth {
		width = cfg.MaxWidth
	}
	return width
}

// CalculateGrid lays out items cards in the space left beside the sidebar.
func CalculateGrid(terminalWidth, sidebarWidth, bodyHeight, items int, cfg GridConfig) GridLayout {
	width := terminalWidth - sidebarWidth - cfg.WidthReduction
	if width < cfg.CardMinWidth {
		width = cfg.CardMinWidth
	}

	columns := width / cfg.CardMinWidth
	if columns < 1 {
		columns = 1
	}
	if columns > cfg.MaxColumns {
		columns = cfg.MaxColumns
	}

	rows := (items + columns - 1) / columns

	visible := bodyHeight / cfg.CardHeight
	if visible < 1 {
		visible = 1
	}

	return GridLayout{
		Width:       width,
		Columns:     columns,
		CardWidth:   width / columns,
		Rows:        rows,
		VisibleRows: visible,
	}
}

// Move returns the card index reached from index by moving dRow rows and
// dCol columns in a grid of total cards. Moves that would leave the grid
// return index unchanged.
func (g GridLayout) Move(index, total, dRow, dCol int) int {
	if total == 0 || g.Columns == 0 {
		return 0
	}

	row, col := index/g.Columns, index%g.Columns
	col += dCol
	if col < 0 || col >= g.Columns {
		return index
	}
	row += dRow
	target := row*g.Columns + col
	if row < 0 || target >= total {
		return index
	}
	return target
}

// CalculateVisibleHeight computes the visible item count in a pane.
func CalculateVisibleHeight(paneHeight, headerLines int) int {
	height := paneHeight - headerLines
	if height < 1 {
		return 1
	}
	return height
}

// CalculateViewportOffset calculates the scroll offset needed to keep the
// selected item visible within the viewport.
func CalculateViewportOffset(selected, total, viewportHeight int) int {
	if total <= viewportHeight {
		return 0
	}

	// Keep selection roughly centered, but clamp to valid range
	offset := selected - viewportHeight/2
	if offset < 0 {
		offset = 0
	}

	maxOffset := total - viewportHeight
	if offset > maxOffset {
		offset = maxOffset
	}

	return offset
}
