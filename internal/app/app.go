package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dukatech/duka/internal/api"
	"github.com/dukatech/duka/internal/catalog"
	"github.com/dukatech/duka/internal/config"
	"github.com/dukatech/duka/internal/logging"
	"github.com/dukatech/duka/internal/prefs"
	"github.com/dukatech/duka/internal/storage"
	"github.com/dukatech/duka/internal/store"
	"github.com/dukatech/duka/internal/ui"
)

const defaultPollInterval = 60 * time.Second

// Options configure the duka application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/duka/prefs.toml
	PollEvery  int    // catalog refresh seconds; zero uses the config or default
}

// Run boots the duka TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, closeLog := logging.Setup(logging.Options{Path: cfg.LogPath(), Level: cfg.LogLevel})
	defer func() { _ = closeLog() }()
	logger.Info("starting duka", "api_url", cfg.APIURL)

	userPrefs, _ := prefs.Load(opts.PrefsPath)

	adapter, err := storage.NewFileAdapter(cfg.StorageDir)
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}

	notifier := ui.NewChannelNotifier()

	// Session and client reference each other: the client reads the bearer
	// token from the session, the session calls auth endpoints through the
	// client. The session is built first and the client attached after.
	session := store.NewSession(adapter, notifier)

	client, err := api.NewClient(cfg.APIURL, session)
	if err != nil {
		return fmt.Errorf("init api client: %w", err)
	}
	client.SetUnauthorizedHandler(session.ForceLogout)
	session.AttachClient(client)

	catalogStore := &catalog.Store{}

	cart := store.NewCart(client, adapter, session, notifier)
	compare := store.NewCompare(client, adapter, session, notifier, catalogStore.Resolve)
	wishlist := store.NewWishlist(client, adapter, session, notifier)

	// Guest state replays to the server once per login; logout and forced
	// logout drop all client-side copies.
	session.RegisterSync(cart.SyncWithServer)
	session.RegisterSync(wishlist.SyncWithServer)
	session.RegisterSync(compare.SyncWithServer)
	session.RegisterReset(cart.Reset)
	session.RegisterReset(wishlist.Reset)
	session.RegisterReset(compare.Reset)

	interval := defaultPollInterval
	if cfg.PollEvery > 0 {
		interval = time.Duration(cfg.PollEvery) * time.Second
	}
	if opts.PollEvery > 0 {
		interval = time.Duration(opts.PollEvery) * time.Second
	}

	catalog.StartPoller(ctx, catalogStore, client, interval)

	// Populate the store before the UI starts so the first frame has data.
	catalog.Refresh(ctx, catalogStore, client)

	// A restored session already has a token; refresh server-owned state in
	// the background so the stores converge without user action.
	if session.IsAuthenticated() {
		go func() {
			if err := cart.SyncWithServer(ctx); err != nil {
				slog.Warn("cart sync on startup failed", "error", err)
			}
			if err := wishlist.SyncWithServer(ctx); err != nil {
				slog.Warn("wishlist sync on startup failed", "error", err)
			}
			if err := compare.SyncWithServer(ctx); err != nil {
				slog.Warn("compare sync on startup failed", "error", err)
			}
		}()
	}

	uiOpts := ui.Options{
		Context:   ctx,
		Client:    client,
		Catalog:   catalogStore,
		Session:   session,
		Cart:      cart,
		Compare:   compare,
		Wishlist:  wishlist,
		Notices:   notifier.Notices(),
		PollTick:  time.Second,
		ThemeName: userPrefs.Theme,
		PrefsPath: opts.PrefsPath,
		LastEmail: userPrefs.LastEmail,
	}
	return ui.Run(uiOpts)
}
