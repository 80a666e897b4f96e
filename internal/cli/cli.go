// Package cli implements the kintree command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/sbhuiyan/kintree/pkg/api"
	"github.com/sbhuiyan/kintree/pkg/buildinfo"
	"github.com/sbhuiyan/kintree/pkg/cache"
	"github.com/sbhuiyan/kintree/pkg/config"
	"github.com/sbhuiyan/kintree/pkg/pipeline"
	"github.com/sbhuiyan/kintree/pkg/session"
)

// appName is the application name used for directories and display.
const appName = "kintree"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config *config.Config
}

// New creates a new CLI instance with a default logger and the on-disk
// configuration.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
		Config: config.Load(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "kintree",
		Short:        "Kintree renders interactive family trees",
		Long:         `Kintree is a CLI tool for laying out and rendering family trees: parse a member export, compute a generational layout, and render it as PNG, PDF, SVG, DOT, or JSON.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.parseCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.viewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.fetchCommand())
	root.AddCommand(c.loginCommand())
	root.AddCommand(c.logoutCommand())
	root.AddCommand(c.whoamiCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.archiveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newRunner creates a pipeline runner for CLI use, wiring the configured
// cache backend and the portal client.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	store, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	runner := pipeline.NewRunner(store, c.newKeyer(ctx), c.Logger)
	if client, err := c.newPortalClient(store); err == nil {
		runner.Portal = client
	}
	return runner, nil
}

// newKeyer scopes cache keys to the logged-in portal account, so two
// accounts on one machine never share cached documents or artifacts.
// Returns nil (the default keyer) when nobody is logged in.
func (c *CLI) newKeyer(ctx context.Context) cache.Keyer {
	sessions, err := session.NewCLIStore()
	if err != nil {
		return nil
	}
	sess, err := sessions.GetSession(ctx)
	if err != nil || sess.UserID() == "" {
		return nil
	}
	return cache.NewScopedKeyer(nil, sess.UserID()+":")
}

// newCache selects the cache backend from config: Redis when configured,
// the file cache otherwise, and the null cache when caching is off.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache || !c.Config.Cache.Enabled {
		return cache.NewNullCache(), nil
	}
	if addr := c.Config.Cache.Redis; addr != "" {
		return cache.NewRedisCache(ctx, cache.RedisConfig{Addr: addr, DB: c.Config.Cache.RedisDB})
	}
	dir := c.Config.Cache.Dir
	if dir == "" {
		var err error
		dir, err = cacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
	}
	return cache.NewFileCache(dir)
}

// newPortalClient creates an API client bound to the stored CLI session.
func (c *CLI) newPortalClient(store cache.Cache) (*api.Client, error) {
	sessions, err := session.NewCLIStore()
	if err != nil {
		return nil, err
	}
	return api.NewClient(store, nil, sessions), nil
}

// cacheDir returns the cache directory using XDG standard (~/.cache/kintree/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// parseFormats parses a comma-separated format string into a slice,
// falling back to the configured default.
func (c *CLI) parseFormats(s string) []string {
	if s == "" {
		if f := c.Config.Render.Format; f != "" {
			return []string{f}
		}
		return []string{pipeline.DefaultFormat}
	}
	return strings.Split(s, ",")
}

// nopCloser wraps an io.Writer with a no-op Close method, used to make
// os.Stdout compatible with io.WriteCloser.
type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path, or stdout when
// path is empty.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}
