// Package main provides the lunar CLI: an interactive command shell built on
// the lunarshell engine, with a one-shot mode that runs a single command
// line through the same dispatch path and exits.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"lunarshell/internal/config"
	"lunarshell/internal/logger"
	"lunarshell/internal/output"
	"lunarshell/internal/version"
	"lunarshell/pkg/command"
	"lunarshell/pkg/complete"
	"lunarshell/pkg/shell"
)

var (
	logLevel    string
	logFile     string
	prompt      string
	noAltBuffer bool
)

var rootCmd = &cobra.Command{
	Use:   "lunar [command line...]",
	Short: "Lunar - an interactive command shell",
	Long: `Lunar is an interactive command shell. Without arguments it starts the
interactive loop; with arguments it joins them into a single command line,
dispatches it exactly as the loop would, and exits.`,
	Args: cobra.ArbitraryArgs,
	Run:  run,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Println(version.Formatted())
	},
}

func main() {
	// Accept -? as a help alias alongside cobra's -h/--help.
	for i, arg := range os.Args[1:] {
		if arg == "-?" {
			os.Args[i+1] = "--help"
		}
	}
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Set log level (debug|info|warn|error) [default: info]")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write logs to file instead of stderr")
	rootCmd.Flags().StringVar(&prompt, "prompt", "", "Override the interactive prompt")
	rootCmd.Flags().BoolVar(&noAltBuffer, "no-alt-buffer", false, "Do not switch to the terminal's alternate screen buffer")

	for _, name := range []string{"log-level", "log-file"} {
		if err := viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name)); err != nil {
			fmt.Fprintf(os.Stderr, "Error binding %s flag: %v\n", name, err)
			os.Exit(1)
		}
	}

	rootCmd.AddCommand(versionCmd)
}

func run(_ *cobra.Command, args []string) {
	settings, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if v := viper.GetString("log-level"); v != "" {
		settings.LogLevel = v
	}
	if v := viper.GetString("log-file"); v != "" {
		settings.LogFile = v
	}
	if prompt != "" {
		settings.Prompt = prompt
	}
	if noAltBuffer {
		settings.AltBuffer = false
	}

	if err := logger.Configure(settings.LogLevel, settings.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error configuring logger: %v\n", err)
		os.Exit(1)
	}

	reg := command.NewRegistry()
	registerDemoCommands(reg)

	if len(args) > 0 {
		runOnce(reg, strings.Join(args, " "))
		return
	}
	runInteractive(reg, settings)
}

// runOnce dispatches a single joined command line and exits. Only the
// unexpected-error kind produces a non-zero exit; classified failures have
// already been rendered by their handlers.
func runOnce(reg *command.Registry, line string) {
	sh := shell.NewWithConfig(shell.Config{
		Registry: reg,
		Input:    shell.NewScriptSource(),
		Output:   output.NewPrinter(),
	})
	if err := sh.Eval(line); err != nil {
		os.Exit(1)
	}
}

func runInteractive(reg *command.Registry, settings config.Settings) {
	logger.Info("Starting lunar shell", "version", version.Version)

	startText := settings.StartText
	if startText == "" {
		startText = fmt.Sprintf("%s — type 'help' for commands, 'exit' to quit.", version.Formatted())
	}

	sh := shell.NewWithConfig(shell.Config{
		Registry:    reg,
		Input:       shell.NewReadlineSource(settings.Prompt, complete.New(reg)),
		Output:      output.NewPrinter(),
		StartText:   startText,
		NoAltBuffer: !settings.AltBuffer,
	})

	if err := sh.Run(); err != nil {
		logger.Fatal("Shell terminated abnormally", "error", err)
	}
}
