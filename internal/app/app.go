package app

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/five82/bookshelf/internal/book"
	"github.com/five82/bookshelf/internal/collection"
	"github.com/five82/bookshelf/internal/config"
	"github.com/five82/bookshelf/internal/prefs"
	"github.com/five82/bookshelf/internal/presenter"
	"github.com/five82/bookshelf/internal/state"
	"github.com/five82/bookshelf/internal/ui"
)

// notificationBuffer bounds the notifications waiting for the UI. Extra
// notifications are dropped rather than blocking a presenter call.
const notificationBuffer = 16

// Options configure the Bookshelf application.
type Options struct {
	ConfigPath   string
	PrefsPath    string // empty uses default ~/.config/bookshelf/prefs.toml
	APIURL       string // overrides config and environment when set
	RefreshEvery int    // seconds; zero keeps the configured interval
	EnvDir       string // directory holding .env files; empty is the working directory
}

// Run boots the Bookshelf TUI until the user quits or the context is
// cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := resolveConfig(opts)
	if err != nil {
		return err
	}

	restore, err := redirectLog(cfg.LogPath())
	if err != nil {
		return err
	}
	defer restore()

	client, err := collection.NewClient(cfg.APIURL, cfg.Timeout)
	if err != nil {
		return fmt.Errorf("init collection client: %w", err)
	}

	notes := make(chan presenter.Notification, notificationBuffer)
	p := presenter.New(client, state.NewStore(cfg.PageSize), notifyChannel(notes))

	userPrefs := prefs.Load(opts.PrefsPath)
	restoreFilters(p, userPrefs.Filters)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	StartPoller(ctx, p, cfg.RefreshInterval)

	log.Printf("bookshelf started: %s (page size %d)", cfg.APIURL, cfg.PageSize)
	defer log.Printf("bookshelf stopped")

	return ui.Run(ui.Options{
		Context:       ctx,
		Presenter:     p,
		Notifications: notes,
		ThemeName:     userPrefs.Theme,
		PrefsPath:     opts.PrefsPath,
		LogPath:       cfg.LogPath(),
		APIURL:        cfg.APIURL,
	})
}

// resolveConfig layers the config file, .env files, the process
// environment and finally the command line options.
func resolveConfig(opts Options) (config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.ApplyEnv(opts.EnvDir); err != nil {
		return config.Config{}, fmt.Errorf("apply environment: %w", err)
	}
	if opts.APIURL != "" {
		cfg.APIURL = opts.APIURL
	}
	if opts.RefreshEvery > 0 {
		cfg.RefreshInterval = time.Duration(opts.RefreshEvery) * time.Second
	}
	return cfg, nil
}

// redirectLog sends the standard logger to the activity log file, since the
// TUI owns the terminal. The returned func restores the previous output.
func redirectLog(path string) (func(), error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open activity log: %w", err)
	}
	prev := log.Writer()
	log.SetOutput(f)
	return func() {
		log.SetOutput(prev)
		_ = f.Close()
	}, nil
}

// notifyChannel forwards notifications without blocking the caller.
func notifyChannel(ch chan<- presenter.Notification) presenter.Notifier {
	return presenter.NotifierFunc(func(n presenter.Notification) {
		select {
		case ch <- n:
		default:
			log.Printf("notification dropped: %s", n.Message)
		}
	})
}

// restoreFilters applies the saved query. An unknown status is ignored.
func restoreFilters(p *presenter.Presenter, f prefs.Filters) {
	if f.Search != "" {
		p.SetSearch(f.Search)
	}
	if f.Genre != "" {
		p.SetGenreFilter(f.Genre)
	}
	if st, ok := book.ParseStatus(f.Status); ok {
		p.SetStatusFilter(st)
	}
}
