package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/nikbrunner/bmg/internal/favicon"
	"github.com/nikbrunner/bmg/internal/gallery"
	"github.com/nikbrunner/bmg/internal/logging"
	"github.com/nikbrunner/bmg/internal/source"
	"github.com/nikbrunner/bmg/internal/storage"
	"github.com/nikbrunner/bmg/internal/tui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags
	fileFlag   string
	dirFlag    string
	urlFlag    string
	configFlag string

	cfg        *storage.Config
	configPath string
	logger     = zap.NewNop()
	restoreLog = func() {}
)

// rootCmd opens the gallery.
var rootCmd = &cobra.Command{
	Use:   "bmg",
	Short: "bmg - terminal bookmark gallery",
	Long: `bmg shows a browser bookmark export as a searchable, paginated gallery.

Without --file the export is discovered in --dir (or at --url) by probing the
configured candidate names. When nothing usable is found, sample data is shown.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		restoreLog()
		_ = logger.Sync()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd.Context())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&fileFlag, "file", "f", "", "Bookmark export to open (skips discovery)")
	rootCmd.PersistentFlags().StringVarP(&dirFlag, "dir", "d", "", "Directory to discover the export in")
	rootCmd.PersistentFlags().StringVar(&urlFlag, "url", "", "Base URL to discover the export at")
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Config file (default ~/.config/bmg/config.json)")

	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(themeCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads config, applies flag overrides and starts the file logger.
func setup() error {
	configPath = configFlag
	if configPath == "" {
		var err error
		if configPath, err = storage.DefaultConfigFilePath(); err != nil {
			return fmt.Errorf("failed to get config path: %w", err)
		}
	}

	var err error
	cfg, err = storage.LoadConfig(configPath)
	if err != nil {
		return err
	}
	if dirFlag != "" {
		cfg.Dir = dirFlag
	}
	if urlFlag != "" {
		cfg.URL = urlFlag
	}

	logPath := cfg.LogFile
	if logPath == "" {
		if logPath, err = storage.DefaultLogPath(); err != nil {
			return fmt.Errorf("failed to get log path: %w", err)
		}
	}
	logger, err = logging.New(logPath, cfg.LogLevel)
	if err != nil {
		return err
	}
	restoreLog = logging.CaptureStdLog(logger)

	logger.Debug("config loaded",
		zap.String("path", configPath),
		zap.String("dir", cfg.Dir),
		zap.String("url", cfg.URL),
	)
	return nil
}

// newSource picks where bookmarks come from: an explicit file wins over a
// base URL, which wins over a directory.
func newSource(file, baseURL, dir string) (source.Source, error) {
	switch {
	case file != "":
		return &source.FileSource{Path: file}, nil
	case baseURL != "":
		return source.NewHTTPSource(baseURL, nil)
	default:
		return source.NewDirSource(dir), nil
	}
}

func newLoader() (*source.Loader, error) {
	src, err := newSource(fileFlag, cfg.URL, cfg.Dir)
	if err != nil {
		return nil, err
	}
	return source.NewLoader(source.Params{
		Source:       src,
		Candidates:   cfg.Candidates,
		ProbeTimeout: cfg.ProbeTimeout.Duration,
		FetchTimeout: cfg.FetchTimeout.Duration,
		Logger:       logger.Named("source"),
	}), nil
}

func newResolver() *favicon.Resolver {
	return favicon.New(favicon.Params{
		Timeout: cfg.FaviconTimeout.Duration,
		Logger:  logger.Named("favicon"),
	})
}

// openPrefs opens the preference store next to the config file.
func openPrefs() (storage.PrefStore, error) {
	return storage.OpenPrefs(filepath.Dir(configPath))
}

// loadTheme reads the persisted theme. Failures fall back to light.
func loadTheme(prefs storage.PrefStore) storage.Theme {
	p, err := prefs.Load()
	if err != nil {
		logger.Warn("failed to load prefs", zap.Error(err))
		return storage.ThemeLight
	}
	return storage.ParseTheme(string(p.Theme))
}

// runTUI runs the full interactive gallery.
func runTUI(ctx context.Context) error {
	loader, err := newLoader()
	if err != nil {
		return err
	}

	prefs, err := openPrefs()
	if err != nil {
		return fmt.Errorf("failed to open prefs: %w", err)
	}
	defer prefs.Close()

	app := tui.NewApp(tui.AppParams{
		Loader:           loader,
		Resolver:         newResolver(),
		Prefs:            prefs,
		Pipeline:         gallery.NewForLocale(cfg.Collation),
		Theme:            loadTheme(prefs),
		Logger:           logger.Named("tui"),
		ResetPageOnQuery: cfg.ResetPageOnQuery,
	})

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running app: %w", err)
	}
	return nil
}
