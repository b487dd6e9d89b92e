package layout

// LayoutConfig holds all layout-related configuration values.
type LayoutConfig struct {
	Grid    GridConfig
	Sidebar SidebarConfig
	Modal   ModalConfig
	Input   InputConfig
	Text    TextConfig
}

// GridConfig holds card grid dimension configuration.
type GridConfig struct {
	// HeightReduction is subtracted from terminal height for the body.
	// Accounts for: app padding (1) + header (1) + search line (1) + notice (1)
	// + pane borders (2) + pager (1) + help bar (3) = 10
	HeightReduction int

	// MinHeight is the minimum body height.
	MinHeight int

	// WidthReduction is subtracted from terminal width before splitting it
	// between sidebar and grid: app padding (4) + pane borders (4) + pane
	// padding (4) + gap (1) = 13
	WidthReduction int

	// CardMinWidth is the narrowest a card may be, including its border.
	CardMinWidth int

	// CardHeight is the rendered height of one card, including its border.
	CardHeight int

	// MaxColumns caps the number of cards per row.
	MaxColumns int
}

// SidebarConfig holds folder sidebar sizing.
type SidebarConfig struct {
	// WidthPercent is the sidebar width as percentage of terminal width.
	WidthPercent int
	MinWidth     int
	MaxWidth     int

	// HeaderLines are taken by the sidebar title.
	HeaderLines int
}

// ModalConfig holds overlay configuration.
type ModalConfig struct {
	// DefaultWidthPercent is the standard overlay width as percentage of terminal width.
	DefaultWidthPercent int

	// MinWidth is the minimum overlay width in characters.
	MinWidth int

	// MaxWidth is the maximum overlay width in characters.
	MaxWidth int

	// HelpLeftColumnWidth: width for help overlay left column.
	HelpLeftColumnWidth int

	// HelpRightColumnWidth: width for help overlay right column.
	HelpRightColumnWidth int
}

// InputConfig holds text input configuration.
type InputConfig struct {
	SearchCharLimit int
	SearchWidth     int
}

// TextConfig holds text truncation configuration.
type TextConfig struct {
	// Ellipsis is the string used to indicate truncation.
	Ellipsis string
}

// DefaultConfig returns the default layout configuration.
func DefaultConfig() LayoutConfig {
	return LayoutConfig{
		Grid: GridConfig{
			HeightReduction: 10,
			MinHeight:       5,
			WidthReduction:  13,
			CardMinWidth:    28,
			CardHeight:      5,
			MaxColumns:      4,
		},
		Sidebar: SidebarConfig{
			WidthPercent: 22,
			MinWidth:     18,
			MaxWidth:     34,
			HeaderLines:  2,
		},
		Modal: ModalConfig{
			DefaultWidthPercent:  40,
			MinWidth:             50,
			MaxWidth:             80,
			HelpLeftColumnWidth:  22,
			HelpRightColumnWidth: 24,
		},
		Input: InputConfig{
			SearchCharLimit: 100,
			SearchWidth:     40,
		},
		Text: TextConfig{
			Ellipsis: "...",
		},
	}
}
