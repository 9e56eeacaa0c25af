package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"tortuga/pkg/config"
	"tortuga/pkg/interp"
	"tortuga/pkg/render"
)

var execCmd = &cobra.Command{
	Use:   "exec [file.tg]",
	Short: "Interpret tortuga assembly",
	Long: `Executes assembly from a file, or interactively from stdin when no
file is given. In interactive mode a loop body is typed once and replayed
from history on later iterations.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log := newLogger()

		in, err := openInput(args)
		if err != nil {
			return err
		}
		defer in.Close()

		src := interp.ReaderSource(in)
		if len(args) == 0 && isatty.IsTerminal(os.Stdin.Fd()) {
			fmt.Println("tortuga interpreter")
			src = promptSource(src, cfg.Prompt)
		}
		return runMachine(cfg, log, src)
	},
}

func init() {
	rootCmd.AddCommand(execCmd)
}

// promptSource writes the prompt to stderr before each pull, matching the
// interpreter's single suspend point.
func promptSource(src interp.LineSource, prompt string) interp.LineSource {
	return func() (string, error) {
		fmt.Fprint(os.Stderr, prompt)
		return src()
	}
}

// runMachine wires an interpreter to either the printing sink or the render
// canvas and runs it to completion. With rendering on, the interpreter runs
// in its own goroutine while ebiten owns the main loop.
func runMachine(cfg *config.Config, log *slog.Logger, src interp.LineSource) error {
	if !doRender {
		ip := interp.New(src, printSink(os.Stdout))
		ip.SetLogger(log)
		return ip.Run()
	}

	canvas := render.New(cfg.Window.Width, cfg.Window.Height)
	ip := interp.New(src, canvas.Apply)
	ip.SetLogger(log)

	errc := make(chan error, 1)
	go func() {
		errc <- ip.Run()
	}()

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle("tortuga")
	if err := ebiten.RunGame(canvas); err != nil {
		return err
	}
	select {
	case err := <-errc:
		return err
	default:
		// Window closed while the interpreter was still waiting on input.
		return nil
	}
}
