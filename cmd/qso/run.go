package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"github.com/aretw0/qso/internal/config"
	"github.com/aretw0/qso/internal/presentation/tui"
	"github.com/aretw0/qso/pkg/adapters/memory"
	"github.com/aretw0/qso/pkg/adapters/redis"
	"github.com/aretw0/qso/pkg/adapters/stream"
	"github.com/aretw0/qso/pkg/ft8"
	"github.com/aretw0/qso/pkg/ports"
	"github.com/aretw0/qso/pkg/runner"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [file|-]",
	Short: "Follow a conversation from decoder records",
	Long: `Reads decoder record lines ("<metadata> ~ <message>") from a file, stdin, a
Redis list or a built-in demo fixture and prints every phase change.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		logger := newLogger(cfg)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		src, closeSrc, err := openSource(cmd, cfg, args, logger)
		if err != nil {
			return err
		}
		defer closeSrc()

		eng, err := newEngine(cfg, logger)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		jsonMode, _ := cmd.Flags().GetBool("json")
		report, _ := cmd.Flags().GetBool("report")
		verbose, _ := cmd.Flags().GetBool("verbose")
		tty := isTerminal(out)

		var handler runner.Handler
		if jsonMode {
			handler = runner.NewJSONHandler(out)
		} else {
			textOpts := []runner.TextHandlerOption{runner.WithTextHandlerVerbose(verbose)}
			if tty {
				tui.PrintBanner(out, eng.Protocol().Name)
				textOpts = append(textOpts, runner.WithTextHandlerStyler(tui.PhaseStyler(termenv.ColorProfile())))
			}
			handler = runner.NewTextHandler(out, textOpts...)
		}

		res, err := eng.Run(ctx, src,
			runner.WithHandler(handler),
			runner.WithStopOnTerminal(cfg.StopOnTerminal),
			runner.WithAbortOnThreshold(cfg.AbortOnThreshold),
		)
		if err != nil {
			return err
		}

		if report && !jsonMode {
			return printReport(out, res, tty)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().String("demo", "", fmt.Sprintf("Replay a built-in fixture (%s)", strings.Join(fixtureNames(), ", ")))
	runCmd.Flags().Bool("redis", false, "Read messages from a Redis list")
	runCmd.Flags().String("redis-addr", "", "Redis address (default localhost:6379)")
	runCmd.Flags().String("redis-key", "", "Redis list key (default "+redis.DefaultKey+")")
	runCmd.Flags().String("separator", "", `Record separator between metadata and message (default "~")`)
	runCmd.Flags().Bool("stop-on-terminal", false, "Stop reading once the conversation is finished")
	runCmd.Flags().Bool("abort-on-threshold", false, "Stop on the first failure-threshold event")
	runCmd.Flags().Bool("json", false, "Emit JSON lines instead of text")
	runCmd.Flags().Bool("report", false, "Print a markdown report at the end")
	runCmd.Flags().BoolP("verbose", "v", false, "Also print dropped messages")
}

func fixtureNames() []string {
	names := make([]string, 0, len(ft8.Fixtures))
	for name := range ft8.Fixtures {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// openSource picks the message source from the flags and arguments.
func openSource(cmd *cobra.Command, cfg config.Config, args []string, logger *slog.Logger) (ports.MessageSource, func(), error) {
	noop := func() {}
	flags := cmd.Flags()

	if demo, _ := flags.GetString("demo"); demo != "" {
		lines, ok := ft8.Fixtures[demo]
		if !ok {
			return nil, noop, fmt.Errorf("unknown demo %q (available: %s)", demo, strings.Join(fixtureNames(), ", "))
		}
		extract := ft8.ExtractWith(cfg.Separator)
		var msgs []string
		for _, line := range lines {
			if msg, ok := extract(line); ok {
				msgs = append(msgs, msg)
			}
		}
		return memory.NewSource(msgs...), noop, nil
	}

	if useRedis, _ := flags.GetBool("redis"); useRedis {
		if flags.Changed("redis-addr") {
			cfg.Redis.Addr, _ = flags.GetString("redis-addr")
		}
		if flags.Changed("redis-key") {
			cfg.Redis.Key, _ = flags.GetString("redis-key")
		}
		src := redis.New(cfg.Redis.Addr, "", 0,
			redis.WithKey(cfg.Redis.Key),
			redis.WithWait(cfg.Redis.Wait),
			redis.WithEndMarker(cfg.Redis.EndMarker),
		)
		logger.Debug("reading from redis", "addr", cfg.Redis.Addr, "key", cfg.Redis.Key)
		return src, func() { _ = src.Close() }, nil
	}

	var r io.Reader = cmd.InOrStdin()
	closer := noop
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return nil, noop, fmt.Errorf("failed to open records: %w", err)
		}
		r = f
		closer = func() { _ = f.Close() }
	}
	return stream.New(r, stream.WithSeparator(cfg.Separator), stream.WithLogger(logger)), closer, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func printReport(w io.Writer, res *runner.Result, styled bool) error {
	md := tui.Report(res)
	if !styled {
		_, err := fmt.Fprint(w, md)
		return err
	}

	render, err := tui.NewRenderer()
	if err != nil {
		return err
	}
	out, err := render(md)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(w, out)
	return err
}
