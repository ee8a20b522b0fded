package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/bft-labs/pagemark/internal/adapters/fixture"
	"github.com/bft-labs/pagemark/internal/adapters/fs"
	"github.com/bft-labs/pagemark/internal/adapters/memdoc"
	"github.com/bft-labs/pagemark/internal/adapters/pdfdoc"
	"github.com/bft-labs/pagemark/internal/adapters/prompt"
	"github.com/bft-labs/pagemark/internal/app"
	"github.com/bft-labs/pagemark/internal/cliconfig"
	"github.com/bft-labs/pagemark/internal/domain"
	"github.com/bft-labs/pagemark/internal/ports"
	"github.com/bft-labs/pagemark/internal/watch"
	"github.com/bft-labs/pagemark/pkg/log"
)

const longHelp = `Bookkeeping for PDF bookmarks and annotations.

  analyze  list pages without bookmarks and pages reached by several bookmarks
  footer   preview one bookmark-name annotation, then add one per bookmark
  clean    remove every annotation in the document

DOCUMENT is a .pdf file (read-only) or a .toml document fixture.`

var exampleUsage = strings.TrimSpace(`
  pagemark analyze handbook.pdf
  pagemark footer handbook.toml --confirm yes --format json
  pagemark clean handbook.toml --confirm-timeout 30s
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	root := newRootCmd(os.Stderr)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "pagemark:", err)
		os.Exit(1)
	}
}

// cli carries the resolved configuration shared by all subcommands.
type cli struct {
	cfg     cliconfig.Config
	cfgPath string
	logOut  io.Writer
	logger  zerolog.Logger
}

func newRootCmd(logOut io.Writer) *cobra.Command {
	c := &cli{cfg: cliconfig.DefaultConfig(), logOut: logOut}

	root := &cobra.Command{
		Use:           "pagemark",
		Short:         "Bookkeeping for PDF bookmarks and annotations",
		Long:          longHelp,
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.load(cmd)
		},
	}

	f := root.PersistentFlags()
	f.StringVar(&c.cfgPath, "config", "", "path to config file (default: $HOME/.pagemark/config.toml)")
	f.StringVar(&c.cfg.ConfirmMode, "confirm", c.cfg.ConfirmMode, "how to answer confirmations: prompt, yes or no")
	f.DurationVar(&c.cfg.ConfirmTimeout, "confirm-timeout", c.cfg.ConfirmTimeout, "treat an unanswered confirmation as declined after this long (0 waits forever)")
	f.StringVar(&c.cfg.Format, "format", c.cfg.Format, "report format: text or json")
	f.StringVar(&c.cfg.Output, "output", c.cfg.Output, "also write the JSON report to this file")
	f.StringVar(&c.cfg.LogLevel, "log-level", c.cfg.LogLevel, "log level (debug, info, warn, error)")

	root.AddCommand(c.analyzeCmd(), c.footerCmd(), c.cleanCmd())
	return root
}

// load resolves configuration: defaults, then file, then env, then flags.
func (c *cli) load(cmd *cobra.Command) error {
	changed := map[string]bool{}
	cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

	cfgFile := c.cfgPath
	if cfgFile == "" {
		cfgFile = cliconfig.DefaultConfigPath()
	}
	if cfgFile != "" && cliconfig.FileExists(cfgFile) {
		fc, err := cliconfig.LoadFileConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := cliconfig.ApplyFileConfig(&c.cfg, fc, changed); err != nil {
			return err
		}
	}
	if err := cliconfig.ApplyEnvConfig(&c.cfg, changed); err != nil {
		return err
	}
	if err := c.cfg.Validate(); err != nil {
		return err
	}

	c.logger = cliconfig.NewLogger(c.logOut, c.cfg.LogLevel)
	c.logger.Debug().Interface("config", c.cfg).Msg("configuration")
	return nil
}

func (c *cli) analyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze DOCUMENT",
		Short: "Report pages without bookmarks and pages with several bookmarks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			run := func(ctx context.Context) error {
				doc, err := loadDocument(path, c.log())
				if err != nil {
					return err
				}
				rep, err := app.Analyze(ctx, doc, c.options()...)
				if err != nil {
					return err
				}
				return c.emit(cmd.OutOrStdout(), rep)
			}
			if !c.cfg.Watch {
				return run(cmd.Context())
			}
			return watch.New(path, c.cfg.WatchDebounce, c.log()).Run(cmd.Context(), run)
		},
	}
	cmd.Flags().BoolVar(&c.cfg.Watch, "watch", c.cfg.Watch, "re-run the analysis whenever DOCUMENT changes")
	cmd.Flags().DurationVar(&c.cfg.WatchDebounce, "debounce", c.cfg.WatchDebounce, "quiet period after a change before re-running")
	return cmd
}

func (c *cli) footerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "footer DOCUMENT",
		Short: "Annotate every bookmarked page with its bookmark name after a preview",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := loadDocument(args[0], c.log())
			if err != nil {
				return err
			}
			ctx, cancel := c.confirmContext(cmd.Context())
			defer cancel()

			rep, err := app.AddBookmarkFooters(ctx, doc, c.confirmer(cmd), c.options()...)
			if err != nil {
				return err
			}
			if rep.Batch == nil {
				c.logger.Info().Msg("batch cancelled, no annotations added")
			}
			return c.emit(cmd.OutOrStdout(), rep)
		},
	}
	cmd.Flags().DurationVar(&c.cfg.PreviewDelay, "preview-delay", c.cfg.PreviewDelay, "time to inspect the preview before the confirmation")
	return cmd
}

func (c *cli) cleanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clean DOCUMENT",
		Short: "Remove every annotation in the document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := loadDocument(args[0], c.log())
			if err != nil {
				return err
			}
			ctx, cancel := c.confirmContext(cmd.Context())
			defer cancel()

			res, err := app.CleanAnnotations(ctx, doc, c.confirmer(cmd), c.options()...)
			if errors.Is(err, domain.ErrUserCancelled) {
				c.logger.Info().Msg("cleaning cancelled, document unchanged")
				return nil
			}
			if err != nil {
				return err
			}
			return c.emitClean(cmd.OutOrStdout(), res)
		},
	}
}

func (c *cli) log() log.Logger {
	return log.NewZerologAdapterWithLogger(c.logger)
}

func (c *cli) options() []app.Option {
	return []app.Option{
		app.WithLogger(c.log()),
		app.WithPreviewDelay(c.cfg.PreviewDelay),
	}
}

func (c *cli) confirmer(cmd *cobra.Command) ports.Confirmer {
	switch c.cfg.ConfirmMode {
	case cliconfig.ConfirmYes:
		return prompt.Fixed(true)
	case cliconfig.ConfirmNo:
		return prompt.Fixed(false)
	default:
		return prompt.NewTerminal(cmd.InOrStdin(), cmd.ErrOrStderr())
	}
}

// confirmContext applies the confirmation deadline, if any.
func (c *cli) confirmContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.cfg.ConfirmTimeout > 0 {
		return context.WithTimeout(ctx, c.cfg.ConfirmTimeout)
	}
	return context.WithCancel(ctx)
}

func (c *cli) emit(w io.Writer, rep domain.Report) error {
	if c.cfg.Output != "" {
		if err := fs.NewReportFile(c.cfg.Output).SaveReport(rep); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	}
	if c.cfg.Format == cliconfig.FormatJSON {
		return writeJSON(w, rep)
	}
	_, err := io.WriteString(w, rep.Text())
	return err
}

func (c *cli) emitClean(w io.Writer, res *domain.CleanResult) error {
	if c.cfg.Output != "" {
		if err := fs.NewReportFile(c.cfg.Output).Save(res); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	}
	if c.cfg.Format == cliconfig.FormatJSON {
		return writeJSON(w, res)
	}
	_, err := io.WriteString(w, res.Text())
	return err
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// loadDocument opens DOCUMENT according to its extension.
func loadDocument(path string, logger log.Logger) (*memdoc.Document, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return pdfdoc.Load(path, logger)
	case ".toml":
		return fixture.Load(path)
	default:
		return nil, fmt.Errorf("%w: unsupported document %s (want .pdf or .toml)", domain.ErrNoActiveDocument, path)
	}
}
