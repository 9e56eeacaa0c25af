package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"tortuga/pkg/annotate"
	"tortuga/pkg/compiler"
	"tortuga/pkg/interp"
	"tortuga/pkg/render"
)

const replPrompt = "tortuga> "

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Interactive sentence-at-a-time session",
	Long: `Reads one English sentence per prompt, shows the compiled assembly
and executes it immediately. Turtle state persists across sentences.
Ctrl+C cancels the current line, Ctrl+D or :quit exits.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log := newLogger()

		drv := compiler.NewDriver(
			compiler.New(compiler.WithLogger(log)),
			annotate.NewClient(cfg.Server, log),
			log,
		)

		linec := make(chan string)
		src := func() (string, error) {
			line, ok := <-linec
			if !ok {
				return "", io.EOF
			}
			return line, nil
		}

		if !doRender {
			done := make(chan error, 1)
			go func() {
				ip := interp.New(src, printSink(os.Stdout))
				ip.SetLogger(log)
				done <- ip.Run()
			}()
			promptLoop(cmd, cfg.HistoryFile, drv, linec)
			close(linec)
			return <-done
		}

		canvas := render.New(cfg.Window.Width, cfg.Window.Height)
		go func() {
			ip := interp.New(src, canvas.Apply)
			ip.SetLogger(log)
			if err := ip.Run(); err != nil {
				fmt.Fprintln(os.Stderr, err)
			}
		}()
		go func() {
			// ebiten owns the main goroutine, so the prompt moves off it.
			promptLoop(cmd, cfg.HistoryFile, drv, linec)
			close(linec)
			os.Exit(0)
		}()
		ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
		ebiten.SetWindowTitle("tortuga")
		return ebiten.RunGame(canvas)
	},
}

func init() {
	rootCmd.AddCommand(replCmd)
}

// promptLoop reads sentences with liner, compiles them and pushes the
// resulting assembly into out. It returns on Ctrl+D or :quit.
func promptLoop(cmd *cobra.Command, historyFile string, drv *compiler.Driver, out chan<- string) {
	fmt.Println("tortuga REPL. Ctrl+C cancels input, Ctrl+D exits. Type :quit to exit.")

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	for {
		text, err := ln.Prompt(replPrompt)
		if err == liner.ErrPromptAborted {
			continue
		}
		if err != nil {
			fmt.Println()
			return
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		if text == ":quit" {
			return
		}
		ln.AppendHistory(text)

		lines, errs, err := drv.CompileText(cmd.Context(), text)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		for _, e := range errs {
			fmt.Fprintln(os.Stderr, e)
		}
		for _, line := range lines {
			fmt.Println("  " + line)
			out <- line
		}
	}
}
