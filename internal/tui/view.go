package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/nikbrunner/bmg/internal/model"
	"github.com/nikbrunner/bmg/internal/tui/layout"
)

// renderView renders the complete UI.
func (a App) renderView() string {
	switch a.mode {
	case ModeLoading:
		return a.renderLoading()
	case ModeHelp:
		return a.renderHelpOverlay()
	}

	bodyHeight := layout.CalculateBodyHeight(a.height, a.layoutConfig.Grid)
	sidebarWidth := layout.CalculateSidebarWidth(a.width, a.layoutConfig.Sidebar)
	grid := a.gridLayout()

	columns := lipgloss.JoinHorizontal(
		lipgloss.Top,
		a.renderSidebar(sidebarWidth, bodyHeight),
		" ",
		a.renderGrid(grid, bodyHeight),
	)

	content := a.styles.App.Render(
		lipgloss.JoinVertical(
			lipgloss.Left,
			a.renderHeader(),
			a.renderSearchLine(),
			a.renderNotice(),
			columns,
			a.renderPager(),
			a.renderHelpBar(),
		),
	)

	// Use Place to ensure exact terminal dimensions and prevent overflow
	return lipgloss.Place(a.width, a.height, lipgloss.Left, lipgloss.Top, content)
}

func (a App) renderLoading() string {
	line := a.spinner.View() + " " + a.styles.Empty.Render("Loading bookmarks...")
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, line)
}

// renderHeader renders the title, result counter and current folder.
func (a App) renderHeader() string {
	counter := fmt.Sprintf("%d bookmarks", a.view.Total)
	if a.state.Search != "" {
		counter += fmt.Sprintf(" matching %q", a.state.Search)
	}

	folder := "All Bookmarks"
	if !a.state.AllSelected() {
		folder = model.DisplayFolder(a.state.Folder.Path)
	}

	return a.styles.Title.Render("bmg") + "  " +
		a.styles.Counter.Render(counter) + "  " +
		a.styles.Counter.Render("· "+folder)
}

func (a App) renderSearchLine() string {
	if a.mode == ModeSearch {
		return a.search.Input.View()
	}
	if a.state.Search != "" {
		return a.styles.Item.UnsetPaddingLeft().Render("/ " + a.state.Search)
	}
	return a.styles.HintDesc.Render("/ to search")
}

func (a App) renderNotice() string {
	if a.notice == "" {
		return ""
	}
	return a.styles.Notice.Render("⚠ " + a.notice)
}

// renderSidebar renders the folder list pane.
func (a App) renderSidebar(width, height int) string {
	style := a.styles.Pane
	if a.focus == FocusSidebar && a.mode == ModeNormal {
		style = a.styles.PaneActive
	}

	var lines []string
	lines = append(lines, a.styles.Title.Render("Folders"), "")

	visible := layout.CalculateVisibleHeight(height, a.layoutConfig.Sidebar.HeaderLines)
	start, end := layout.CalculateVisibleListItems(visible, a.sidebar.Cursor, len(a.folders))

	for i := start; i < end; i++ {
		entry := a.folders[i]
		count := " " + strconv.Itoa(entry.Count)
		// Item styles add one column of left padding
		labelWidth := width - 1 - len(count)
		label := layout.TruncateFolderPath(entry.Label, labelWidth, model.FolderSeparator, a.layoutConfig.Text)
		line := label + count

		switch {
		case i == a.sidebar.Cursor && a.focus == FocusSidebar:
			lines = append(lines, a.styles.ItemSelected.Width(width).Render(line))
		case entry.Folder == a.state.Folder:
			lines = append(lines, a.styles.ItemActive.Render(line))
		default:
			lines = append(lines, a.styles.Item.Render(line))
		}
	}

	// Width covers the horizontal padding as well
	return style.Width(width + 2).Height(height).Render(strings.Join(lines, "\n"))
}

// renderGrid renders the visible page as rows of cards.
func (a App) renderGrid(grid layout.GridLayout, height int) string {
	style := a.styles.Pane
	if a.focus == FocusGrid && a.mode == ModeNormal {
		style = a.styles.PaneActive
	}
	style = style.Width(grid.Width + 2).Height(height)

	if a.view.Empty() {
		empty := a.styles.CardTitle.Render("No bookmarks found") + "\n" +
			a.styles.Empty.Render("Try adjusting your search or filter criteria")
		return style.Render(lipgloss.Place(grid.Width, height, lipgloss.Center, lipgloss.Center, empty))
	}

	cursorRow := a.cursor / grid.Columns
	offset := layout.CalculateViewportOffset(cursorRow, grid.Rows, grid.VisibleRows)
	end := min(offset+grid.VisibleRows, grid.Rows)

	rows := make([]string, 0, end-offset)
	for r := offset; r < end; r++ {
		cards := make([]string, 0, grid.Columns)
		for c := 0; c < grid.Columns; c++ {
			i := r*grid.Columns + c
			if i >= len(a.view.Items) {
				break
			}
			cards = append(cards, a.renderCard(i, grid.CardWidth))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}

	return style.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// renderCard renders card i: favicon marker and title, URL, then date and
// folder.
func (a App) renderCard(i, width int) string {
	b := a.view.Items[i]
	style := a.styles.Card
	if i == a.cursor && a.focus == FocusGrid {
		style = a.styles.CardSelected
	}

	// Border and padding take two columns each
	inner := max(width-4, 1)
	text := a.layoutConfig.Text

	status := a.IconStatus(i)
	iconStyle := a.styles.IconPending
	if status == IconLoaded {
		iconStyle = a.styles.IconLoaded
	}

	title, _ := layout.TruncateText(b.Title, inner-2, text)
	url, _ := layout.TruncateText(b.DisplayURL(), inner, text)

	meta := b.FormatDate()
	if folder := model.DisplayFolder(b.Folder); folder != "" {
		room := inner - len(meta) - 2
		if room > len(text.Ellipsis) {
			meta += "  " + layout.TruncateFolderPath(folder, room, model.FolderSeparator, text)
		}
	}

	content := strings.Join([]string{
		iconStyle.Render(status.Glyph()) + " " + a.styles.CardTitle.Render(title),
		a.styles.URL.Render(url),
		a.styles.Date.Render(meta),
	}, "\n")

	return style.Width(width - 2).Render(content)
}

// renderPager renders "‹ 1 2 [3] 4 5 ›" with the arrows dimmed at the bounds.
func (a App) renderPager() string {
	pager := a.view.Controls()
	if !pager.Visible() {
		return ""
	}

	parts := make([]string, 0, len(pager.Pages)+3)
	if pager.Prev {
		parts = append(parts, a.styles.Page.Render("‹"))
	} else {
		parts = append(parts, a.styles.PageDisabled.Render("‹"))
	}
	for _, p := range pager.Pages {
		if p == pager.Current {
			parts = append(parts, a.styles.PageCurrent.Render("["+strconv.Itoa(p)+"]"))
		} else {
			parts = append(parts, a.styles.Page.Render(strconv.Itoa(p)))
		}
	}
	if pager.Next {
		parts = append(parts, a.styles.Page.Render("›"))
	} else {
		parts = append(parts, a.styles.PageDisabled.Render("›"))
	}
	parts = append(parts, a.styles.Counter.Render(fmt.Sprintf(" page %d of %d", pager.Current, pager.Total)))

	return strings.Join(parts, " ")
}

func (a App) renderHelpBar() string {
	var lines []string

	// Line 1: Empty spacer OR message (message replaces the gap)
	if a.messageText != "" {
		lines = append(lines, a.renderMessageLine())
	} else {
		lines = append(lines, "")
	}

	// Line 2: Local (contextual) keyboard hints
	localHints := a.renderHints(a.getContextualHints())
	if localHints != "" {
		lines = append(lines, a.styles.HintLabel.Render("Local  ")+localHints)
	}

	// Line 3: Global toggles and where the data came from
	if a.mode == ModeNormal {
		global := a.renderHintSlice(a.getGlobalHints())
		if a.origin != "" {
			global += "  " + a.styles.HintLabel.Render("src:"+a.origin)
		}
		lines = append(lines, a.styles.HintLabel.Render("Global ")+global)
	}

	return strings.Join(lines, "\n")
}

// renderMessageLine renders the styled message with prefix icon based on type.
func (a App) renderMessageLine() string {
	var msgStyle lipgloss.Style
	var prefix string

	switch a.messageType {
	case MessageError:
		msgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#CC3333", Dark: "#FF6666"}).
			Bold(true)
		prefix = "✗ "
	case MessageWarning:
		msgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#CC8800", Dark: "#FFAA00"}).
			Bold(true)
		prefix = "⚠ "
	case MessageSuccess:
		msgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#338833", Dark: "#66CC66"}).
			Bold(true)
		prefix = "✓ "
	default: // MessageInfo
		msgStyle = a.styles.Title
		prefix = ""
	}

	return msgStyle.Render(prefix + a.messageText)
}

// renderHelpOverlay renders the key reference.
func (a App) renderHelpOverlay() string {
	// Brutalist style: no border, just raw columns
	modalWidth := layout.CalculateModalWidth(a.width, a.layoutConfig.Modal.DefaultWidthPercent, a.layoutConfig.Modal)
	modalStyle := lipgloss.NewStyle().
		Width(modalWidth + 4).
		Padding(1, 2)

	var left strings.Builder
	left.WriteString(a.styles.Title.Render("nav") + "\n")
	left.WriteString("hjkl   move\n")
	left.WriteString("tab    switch pane\n")
	left.WriteString("]      next page\n")
	left.WriteString("[      prev page\n")
	left.WriteString("\n")
	left.WriteString(a.styles.Title.Render("folders") + "\n")
	left.WriteString("enter  select folder\n")
	left.WriteString("l      back to cards\n")

	var right strings.Builder
	right.WriteString(a.styles.Title.Render("act") + "\n")
	right.WriteString("enter  open url\n")
	right.WriteString("Y      yank url\n")
	right.WriteString("/      search\n")
	right.WriteString("o      sort mode\n")
	right.WriteString("t      toggle theme\n")
	right.WriteString("\n")
	right.WriteString(a.styles.Help.Render("[?/q/esc] close"))

	leftCol := lipgloss.NewStyle().Width(a.layoutConfig.Modal.HelpLeftColumnWidth).Render(left.String())
	rightCol := lipgloss.NewStyle().Width(a.layoutConfig.Modal.HelpRightColumnWidth).Render(right.String())
	cols := lipgloss.JoinHorizontal(lipgloss.Top, leftCol, "  ", rightCol)

	return lipgloss.Place(
		a.width,
		a.height,
		lipgloss.Left,
		lipgloss.Top,
		modalStyle.Render(cols),
	)
}
