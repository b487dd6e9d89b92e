package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/nikbrunner/bmg/internal/exporter"
	"github.com/nikbrunner/bmg/internal/gallery"
	"github.com/nikbrunner/bmg/internal/model"
	"github.com/nikbrunner/bmg/internal/picker"
	"github.com/nikbrunner/bmg/internal/search"
	"github.com/nikbrunner/bmg/internal/source"
	"github.com/nikbrunner/bmg/internal/storage"
	"github.com/nikbrunner/bmg/internal/tui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// viewFlags select one gallery view from the command line.
type viewFlags struct {
	search string
	folder string
	sort   string
	page   int
}

func (f *viewFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.search, "search", "s", "", "Only bookmarks whose title or URL contains this")
	cmd.Flags().StringVar(&f.folder, "folder", "", "Only bookmarks directly in this folder (e.g. \"menu > Dev\")")
	cmd.Flags().StringVar(&f.sort, "sort", "date", "Sort order: date or title")
	cmd.Flags().IntVarP(&f.page, "page", "p", 1, "Page to show")
}

// state builds the gallery state the flags describe.
func (f viewFlags) state(records []model.Bookmark) (gallery.State, error) {
	st := gallery.NewState()
	if f.folder != "" {
		folder, err := resolveFolder(records, f.folder)
		if err != nil {
			return st, err
		}
		st = st.SelectFolder(folder)
	}
	st = st.WithSearch(f.search, false)
	st = st.WithSort(gallery.ParseSortMode(f.sort), false)
	st.Page = f.page
	return st, nil
}

// resolveFolder maps a folder name as displayed (or as stored) to its stored
// path. "root" selects every folder unless a real folder goes by that name.
func resolveFolder(records []model.Bookmark, name string) (gallery.FolderFilter, error) {
	for _, f := range model.Folders(records) {
		if f == name || model.DisplayFolder(f) == name {
			return gallery.InFolder(f), nil
		}
	}
	if name == gallery.AllAlias {
		return gallery.AllFolders(), nil
	}
	return gallery.FolderFilter{}, fmt.Errorf("unknown folder %q", name)
}

// load runs the loader and reports a fallback on stderr.
func load(ctx context.Context, errOut io.Writer) (source.Result, error) {
	loader, err := newLoader()
	if err != nil {
		return source.Result{}, err
	}
	res := loader.Load(ctx)
	if res.Fallback && res.Err != nil {
		fmt.Fprintf(errOut, "Error loading bookmarks: %v. Using sample data instead.\n", res.Err)
	}
	return res, nil
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Quick search, select and open",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runQuickSearch(cmd, strings.Join(args, " "))
	},
}

// runQuickSearch performs a fuzzy search and opens the selected bookmark.
func runQuickSearch(cmd *cobra.Command, query string) error {
	res, err := load(cmd.Context(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	results := search.FuzzySearchBookmarks(res.Records, query)
	if len(results) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No bookmarks found for '%s'\n", query)
		return nil
	}

	var selected *model.Bookmark
	if len(results) == 1 {
		// Single result - select it directly
		selected = &results[0].Bookmark
		fmt.Fprintf(cmd.OutOrStdout(), "Opening: %s\n", selected.Title)
	} else {
		program := tea.NewProgram(picker.New(results, query))
		finalModel, err := program.Run()
		if err != nil {
			return fmt.Errorf("error running picker: %w", err)
		}
		finalPicker := finalModel.(picker.Picker)
		if finalPicker.Cancelled() {
			return nil
		}
		selected = finalPicker.SelectedBookmark()
	}
	if selected == nil {
		return nil
	}

	logger.Info("opening bookmark", zap.String("url", selected.URL))
	return tui.OpenURL(selected.URL)
}

var listFlags viewFlags

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print one page of the gallery",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := load(cmd.Context(), cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		st, err := listFlags.state(res.Records)
		if err != nil {
			return err
		}
		view := gallery.NewForLocale(cfg.Collation).Apply(res.Records, st)
		writeView(cmd.OutOrStdout(), view)
		return nil
	},
}

// writeView prints a view as plain text.
func writeView(w io.Writer, v gallery.View) {
	header := fmt.Sprintf("%d bookmarks", v.Total)
	if v.State.Search != "" {
		header += fmt.Sprintf(" matching %q", v.State.Search)
	}
	header += " · sorted by " + v.State.Sort.Label()
	if pager := v.Controls(); pager.Visible() {
		header += fmt.Sprintf(" · page %d of %d", pager.Current, pager.Total)
	}
	fmt.Fprintln(w, header)

	if v.Empty() {
		fmt.Fprintln(w, "No bookmarks found")
		return
	}
	for _, b := range v.Items {
		fmt.Fprintf(w, "\n%s\n  %s\n  %s", b.Title, b.URL, b.FormatDate())
		if folder := model.DisplayFolder(b.Folder); folder != "" {
			fmt.Fprintf(w, "  %s", folder)
		}
		fmt.Fprintln(w)
	}
}

var (
	exportFlags  viewFlags
	exportFormat string
)

var exportCmd = &cobra.Command{
	Use:   "export [path]",
	Short: "Export a gallery page or all bookmarks to HTML",
	Long: `Export writes either a static HTML gallery of one page (--format gallery,
with favicons resolved) or every bookmark as Netscape bookmark HTML
(--format netscape) that browsers can import.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var outputPath string
		if len(args) == 1 {
			outputPath = args[0]
		}
		return runExport(cmd, outputPath)
	},
}

// runExport handles the export subcommand.
func runExport(cmd *cobra.Command, outputPath string) error {
	if exportFormat != "gallery" && exportFormat != "netscape" {
		return fmt.Errorf("unknown format %q: want gallery or netscape", exportFormat)
	}
	if outputPath == "" {
		var err error
		if outputPath, err = exporter.DefaultExportPath(exportFormat); err != nil {
			return fmt.Errorf("failed to get default export path: %w", err)
		}
	}

	ctx := cmd.Context()
	res, err := load(ctx, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	var html string
	var count int
	if exportFormat == "netscape" {
		html = exporter.ExportNetscape(res.Records)
		count = len(res.Records)
	} else {
		st, err := exportFlags.state(res.Records)
		if err != nil {
			return err
		}
		view := gallery.NewForLocale(cfg.Collation).Apply(res.Records, st)

		candidates := make([]string, len(view.Items))
		for i, b := range view.Items {
			candidates[i] = b.Favicon
		}

		theme := storage.ThemeLight
		if prefs, err := openPrefs(); err == nil {
			theme = loadTheme(prefs)
			prefs.Close()
		}

		var notice string
		if res.Fallback && res.Err != nil {
			notice = fmt.Sprintf("%v. Using sample data instead.", res.Err)
		}

		html = exporter.ExportGallery(exporter.GalleryParams{
			View:    view,
			Icons:   newResolver().ResolveAll(ctx, candidates),
			Folders: model.Folders(res.Records),
			Theme:   theme,
			Notice:  notice,
		})
		count = len(view.Items)
	}

	if err := os.WriteFile(outputPath, []byte(html), 0644); err != nil {
		return fmt.Errorf("error writing file: %w", err)
	}

	logger.Info("exported", zap.String("format", exportFormat), zap.String("path", outputPath), zap.Int("count", count))
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d bookmarks to %s\n", count, outputPath)
	return nil
}

var themeCmd = &cobra.Command{
	Use:       "theme [light|dark]",
	Short:     "Show or set the persisted theme",
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{string(storage.ThemeLight), string(storage.ThemeDark)},
	RunE: func(cmd *cobra.Command, args []string) error {
		prefs, err := openPrefs()
		if err != nil {
			return fmt.Errorf("failed to open prefs: %w", err)
		}
		defer prefs.Close()

		if len(args) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), loadTheme(prefs))
			return nil
		}

		theme := storage.ParseTheme(args[0])
		if err := prefs.Save(storage.Prefs{Theme: theme}); err != nil {
			return fmt.Errorf("failed to save theme: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Theme set to %s\n", theme)
		return nil
	},
}

func init() {
	listFlags.register(listCmd)
	exportFlags.register(exportCmd)
	exportCmd.Flags().StringVar(&exportFormat, "format", "gallery", "Output format: gallery or netscape")
}
