// Package main provides the conshell CLI entry point: an interactive
// console session over the builtin registry, plus batch script execution.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"conshell/internal/builtin"
	"conshell/internal/config"
	"conshell/internal/console"
	"conshell/internal/dispatch"
	"conshell/internal/logger"
	"conshell/internal/registry"
	"conshell/internal/render"
	"conshell/internal/script"
	"conshell/pkg/contypes"
)

var (
	logLevel string
	logFile  string
	testMode bool
	plain    bool
	version  = "0.1.0" // set at build time via -ldflags
)

// rootCmd starts the interactive console when called without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "conshell",
	Short: "conshell - interactive command console framework",
	Long: `conshell is an embeddable interactive command console: registered commands,
variables and typed instances are addressable as "Type.Name Command args",
with history, tab-completion and live redraw while commands run.`,
	RunE: runShell,
}

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start the interactive console",
	RunE:  runShell,
}

var runCmd = &cobra.Command{
	Use:   "run <script>",
	Short: "Execute a command script file",
	Long: `Execute a script file line by line without entering interactive mode.
Blank lines and lines starting with '#' are skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: runScript,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Printf("conshell v%s\n", version)
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Set log level (debug|info|warn|error) [default: info]")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write logs to file instead of stderr")
	rootCmd.PersistentFlags().BoolVar(&testMode, "test-mode", false, "Run in deterministic test mode")
	rootCmd.PersistentFlags().BoolVar(&plain, "plain", false, "Disable colored output")

	for _, name := range []string{"log-level", "log-file", "test-mode", "plain"} {
		if err := viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name)); err != nil {
			fmt.Fprintf(os.Stderr, "Error binding %s flag: %v\n", name, err)
			os.Exit(1)
		}
	}

	rootCmd.AddCommand(shellCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(versionCmd)
}

func setup() (*config.Config, *registry.Registry, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if err := logger.Configure(cfg.LogLevel, cfg.LogFile, cfg.TestMode); err != nil {
		return nil, nil, err
	}
	return cfg, registry.New(), nil
}

func runShell(_ *cobra.Command, _ []string) error {
	cfg, reg, err := setup()
	if err != nil {
		return err
	}

	logger.Info("Starting conshell", "version", version)

	plainOut := cfg.Plain || cfg.TestMode
	con := console.New(reg, console.Options{
		Prompt:        cfg.Prompt,
		QueueCapacity: cfg.QueueCapacity,
		HistorySize:   cfg.HistorySize,
		RawMode:       true,
		Plain:         plainOut,
	})

	md, err := render.NewMarkdown(plainOut)
	if err != nil {
		return err
	}
	if err := builtin.Register(reg, version, builtin.Hooks{
		Quit:    con.Stop,
		History: func() []string { return con.History().Entries() },
		HelpText: func() (string, error) {
			return md.Render(render.HelpIndex(reg))
		},
		Prompt:    con.Prompt,
		SetPrompt: con.SetPrompt,
	}); err != nil {
		return err
	}
	reg.MarkReady()

	// Best-effort terminal restore when the process is torn down while
	// the input area is visible.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		con.Stop()
		con.Restore()
		os.Exit(1)
	}()

	con.Sink().Emit(contypes.Line(fmt.Sprintf("conshell v%s - type 'help' for commands, 'quit' to exit", version)))

	return con.Run()
}

func runScript(_ *cobra.Command, args []string) error {
	_, reg, err := setup()
	if err != nil {
		return err
	}

	if _, err := os.Stat(args[0]); os.IsNotExist(err) {
		return fmt.Errorf("script file does not exist: %s", args[0])
	}

	sink := script.NewWriterSink(os.Stdout)
	md, err := render.NewMarkdown(true)
	if err != nil {
		return err
	}
	if err := builtin.Register(reg, version, builtin.Hooks{
		HelpText: func() (string, error) {
			return md.Render(render.HelpIndex(reg))
		},
	}); err != nil {
		return err
	}
	reg.MarkReady()

	disp := dispatch.New(reg, sink, context.Background())
	return script.NewRunner(disp, sink).RunFile(args[0])
}
