package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-spform"
	"github.com/goliatone/go-spform/internal/source"
)

// Version is set at build time.
var Version = "dev"

type app struct {
	stdout io.Writer
	stderr io.Writer

	configPath string
	verbose    bool
	output     string

	cfg    cliConfig
	logger *zap.Logger
	// newLogger is swapped in tests.
	newLogger func(verbose bool) (*zap.Logger, error)
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{
		stdout:    stdout,
		stderr:    stderr,
		cfg:       defaultConfig(),
		newLogger: buildLogger,
	}
}

func buildLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "spform",
		Short: "Read and fill SharePoint list forms saved as HTML",
		Long: `spform reads a rendered list form (NewForm.aspx, EditForm.aspx or a survey
response page saved as HTML), lists its fields and reads or writes their
values without a browser.

Examples:
  spform fields NewForm.html
  spform fields https://intranet/Lists/Tasks/NewForm.aspx
  spform get NewForm.html Title
  spform apply NewForm.html --plan plan.yaml --out filled.html
  spform fill NewForm.html --out filled.html`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "YAML config file")
	flags.BoolVar(&a.verbose, "verbose", false, "Log debug output")

	root.AddCommand(a.fieldsCmd(), a.getCmd(), a.applyCmd(), a.fillCmd())
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := loadConfig(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	logger, err := a.newLogger(a.verbose)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	a.logger = logger.With(zap.String("command", cmd.Name()))

	if a.output == "" {
		a.output = cfg.Output
	}
	return validateOutput(a.output)
}

func (a *app) formOptions() []spform.Option {
	opts := []spform.Option{spform.WithSelectors(a.cfg.LabelSelector, a.cfg.SurveySelector)}
	if a.cfg.emulate() {
		opts = append(opts, spform.WithEmulatedHost())
	}
	if a.cfg.StrictNames {
		opts = append(opts, spform.WithStrictNames())
	}
	return opts
}

// open loads the form at raw, a file path or an http(s) URL.
func (a *app) open(ctx context.Context, raw string) (*spform.Form, error) {
	src, err := source.Parse(raw)
	if err != nil {
		return nil, err
	}
	data, err := source.NewLoader(source.WithTimeout(a.cfg.HTTPTimeout)).Load(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", raw, err)
	}
	form, err := spform.Parse(bytes.NewReader(data), a.formOptions()...)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("form opened", zap.String("kind", string(src.Kind())), zap.String("location", src.Location()))
	return form, nil
}

// save writes the form to out, or to stdout when out is empty.
func (a *app) save(form *spform.Form, out string) error {
	if out == "" {
		_, err := form.WriteTo(a.stdout)
		return err
	}
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create %s: %w", out, err)
	}
	if _, err := form.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	a.logger.Info("form written", zap.String("path", out))
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	a := newApp(os.Stdout, os.Stderr)
	if err := a.rootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "spform:", err)
		stop()
		os.Exit(1)
	}
}
