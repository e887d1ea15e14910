package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/mmynk/myfintrack/internal/config"
	"github.com/mmynk/myfintrack/internal/middleware"
	"github.com/mmynk/myfintrack/internal/report"
	"github.com/mmynk/myfintrack/pkg/logging"
)

const appName = "fintrack"

// cli holds state shared by all subcommands of one invocation.
type cli struct {
	configPath  string
	dbPath      string
	logLevel    string
	style       string
	width       int
	metricsFile string

	app *App
}

// execute runs one fintrack invocation. The database is closed and the
// metrics file written even when the command fails.
func execute(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cmd, c := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	return errors.Join(err, c.teardown())
}

func newRootCmd() (*cobra.Command, *cli) {
	c := &cli{}

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Track income, expenses, assets and liabilities",
		Long: `fintrack keeps a personal ledger of income, expenses, assets and
liabilities on this machine and summarizes net worth, spending by
category and monthly trends.

Sign up or log in first; records are stored per device in a local
SQLite database.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&c.configPath, "config", "c", "", "Config file path (YAML)")
	flags.StringVar(&c.dbPath, "db", "", "Database file (overrides config)")
	flags.StringVar(&c.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flags.StringVar(&c.style, "style", "", "Output style: raw, auto, dark, light, notty (default: auto on a terminal, raw otherwise)")
	flags.IntVar(&c.width, "width", 100, "Word wrap width for styled output")
	flags.StringVar(&c.metricsFile, "metrics-file", "", "Write Prometheus metrics to this file on exit")

	cmd.AddCommand(
		signupCmd(c),
		loginCmd(c),
		logoutCmd(c),
		whoamiCmd(c),
		summaryCmd(c),
		incomeCmd(c),
		expenseCmd(c),
		assetCmd(c),
		liabilityCmd(c),
	)

	return cmd, c
}

func (c *cli) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	if c.dbPath != "" {
		cfg.DBPath = c.dbPath
	}
	if c.logLevel != "" {
		cfg.LogLevel = c.logLevel
	}

	logger := logging.Setup(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)

	app, err := NewApp(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	c.app = app
	return nil
}

func (c *cli) teardown() error {
	if c.app == nil {
		return nil
	}
	var errs []error
	if c.metricsFile != "" {
		errs = append(errs, c.app.WriteMetrics(c.metricsFile))
	}
	errs = append(errs, c.app.Close())
	c.app = nil
	return errors.Join(errs...)
}

// requireUser fails unless a user is signed in.
func (c *cli) requireUser() error {
	if _, ok := c.app.auth.CurrentUser(); !ok {
		return middleware.ErrNotAuthenticated
	}
	return nil
}

// display writes a markdown document in the selected style.
func (c *cli) display(cmd *cobra.Command, doc string) error {
	out := cmd.OutOrStdout()
	style := c.style
	if style == "" {
		style = report.StyleRaw
		if f, ok := out.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
			style = report.StyleAuto
		}
	}
	return report.Display(out, doc, style, c.width)
}

// readSecret returns value, or reads one line from the command's input
// when value is empty.
func readSecret(cmd *cobra.Command, value, prompt string) (string, error) {
	if value != "" {
		return value, nil
	}
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		fmt.Fprint(cmd.ErrOrStderr(), prompt)
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read %s: %w", strings.TrimSuffix(strings.ToLower(prompt), ": "), err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
