package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"tortuga/pkg/config"
)

var (
	// Global flags
	cfgFile   string
	serverURL string
	verbose   bool
	doRender  bool
)

var rootCmd = &cobra.Command{
	Use:   "tortuga",
	Short: "tortuga - turtle graphics driven by plain English",
	Long: `tortuga compiles English sentences into a small turtle assembly
language and executes it on a stack-based interpreter.

Sentences are parsed by an external annotation server (CoreNLP-compatible,
pos + depparse annotators); the compiler walks each sentence's dependency
tree and emits instructions like "fd Tom 10.0" or "repeat 3 ... end".`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "annotation server URL")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&doRender, "render", false, "draw turtles in a window instead of printing instructions")
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if serverURL != "" {
		cfg.Server = serverURL
	}
	return cfg, nil
}

func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// openInput returns the named file, or stdin when no argument was given.
func openInput(args []string) (io.ReadCloser, error) {
	if len(args) == 0 {
		return os.Stdin, nil
	}
	return os.Open(args[0])
}

// printSink writes each executed instruction to w, one per line.
func printSink(w io.Writer) func(op string, args []string) {
	return func(op string, args []string) {
		if len(args) == 0 {
			fmt.Fprintln(w, op)
			return
		}
		fmt.Fprintln(w, op+" "+strings.Join(args, " "))
	}
}
