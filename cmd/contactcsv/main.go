package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"

	"github.com/smileynet/contactcsv"
	"github.com/smileynet/contactcsv/internal/collector"
	"github.com/smileynet/contactcsv/internal/config"
	"github.com/smileynet/contactcsv/internal/logging"
	"github.com/smileynet/contactcsv/internal/session"
	"github.com/smileynet/contactcsv/internal/store"
	"github.com/smileynet/contactcsv/internal/tui"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// clearScreen moves the cursor home and clears the terminal.
const clearScreen = "\033[H\033[2J"

// CLI is the top-level command structure for contactcsv. With no flags it
// starts an interactive session appending to ./contacts.csv.
type CLI struct {
	Version kong.VersionFlag `help:"Show version." short:"V"`
	Config  string           `help:"Path to an extra YAML config file." placeholder:"PATH"`
	File    string           `help:"CSV file to append contacts to." short:"f" placeholder:"PATH"`
	Delay   *time.Duration   `help:"Pause before each save (e.g. 1s, 0s)." placeholder:"DURATION"`
	NoTUI   bool             `help:"Force plain text output even if stdout is a TTY." default:"false"`
	LogFile string           `help:"Write diagnostic JSON logs to this file." placeholder:"PATH"`
}

// Run loads configuration and runs the interactive session on the terminal.
func (c *CLI) Run(ctx context.Context) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	return c.run(ctx, os.Stdin, os.Stdout, cfg)
}

// loadConfig loads layered config from user and project paths, then applies
// env overrides and CLI flags, in that order.
func (c *CLI) loadConfig() (*config.Config, error) {
	cfg, err := config.LoadLayered(
		os.ExpandEnv("$HOME/.config/contactcsv/config.yaml"),
		".contactcsv.yaml",
		c.Config,
	)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	c.applyFlags(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyFlags overrides cfg with any flags that were set.
func (c *CLI) applyFlags(cfg *config.Config) {
	if c.File != "" {
		cfg.Store.Path = c.File
	}
	if c.Delay != nil {
		cfg.Store.Delay = *c.Delay
	}
	if c.NoTUI {
		cfg.Display.Plain = true
	}
	if c.LogFile != "" {
		cfg.Log.File = c.LogFile
	}
}

// run wires the session to in and out, enabling testable wiring.
func (c *CLI) run(ctx context.Context, in io.Reader, out io.Writer, cfg *config.Config) error {
	logger, err := logging.New(cfg.Log.File, cfg.Log.Level)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	tty := tui.IsTTY(out)
	styles := tui.ResolveStyles(nil, tty)
	if tty && !cfg.Display.Plain {
		_, _ = fmt.Fprint(out, clearScreen)
	}
	_, _ = fmt.Fprintln(out, styles.RenderBanner(contactcsv.Banner, contactcsv.Subtitle))

	st := store.NewCSVStore(cfg.Store.Path,
		store.WithDelay(cfg.Store.Delay),
		store.WithLogger(logger),
	)
	col := collector.New(in, out, collector.WithStyles(styles))
	defer col.Close()

	sess := session.New(
		col,
		st,
		tui.NewProgress(tui.DisplayOptions{Writer: out, ForcePlain: cfg.Display.Plain, Styles: &styles}),
		session.WithFarewellStyle(func(s string) string { return styles.Banner.Render(s) }),
	)

	logger.Info("session started", zap.String("path", st.Path()))
	err = sess.Run(ctx)
	if err != nil {
		logger.Warn("session ended early", zap.Error(err))
		return err
	}
	logger.Info("session finished")
	return nil
}

// Exit codes.
const (
	exitSuccess     = 0
	exitSetup       = 1
	exitInterrupted = 130
)

// exitCode maps an error to the appropriate exit code.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	if interrupted(err) {
		return exitInterrupted
	}
	return exitSetup
}

// interrupted reports whether err comes from an interrupt or closed input.
func interrupted(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, collector.ErrInputClosed)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("contactcsv"),
		kong.Description("Interactively collect contacts into a CSV file."),
		kong.Vars{"version": version + " " + commit + " " + date},
		kong.BindTo(ctx, (*context.Context)(nil)),
	)
	err := kctx.Run()
	stop()
	if err != nil && !interrupted(err) {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
	}
	os.Exit(exitCode(err))
}
