package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"tortuga/pkg/annotate"
	"tortuga/pkg/compiler"
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Compile and execute English sentences",
	Long: `The full pipeline: sentences in, turtle motion out. Each input line
is annotated, compiled and fed straight into the interpreter. Compile errors
are reported per sentence without stopping the stream; interpreter errors are
fatal.`,
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

		drv := compiler.NewDriver(
			compiler.New(compiler.WithLogger(log)),
			annotate.NewClient(cfg.Server, log),
			log,
		)

		linec := make(chan string)
		compileErr := make(chan error, 1)
		go func() {
			defer close(linec)
			compileErr <- compileStream(cmd, drv, in, linec)
		}()

		src := func() (string, error) {
			line, ok := <-linec
			if !ok {
				return "", io.EOF
			}
			return line, nil
		}
		if err := runMachine(cfg, log, src); err != nil {
			return err
		}
		select {
		case err := <-compileErr:
			return err
		default:
			// Render window closed before the input stream finished.
			return nil
		}
	},
}

// compileStream compiles each input line and pushes the assembly into out.
// Only annotation transport failures abort it.
func compileStream(cmd *cobra.Command, drv *compiler.Driver, r io.Reader, out chan<- string) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		lines, errs, err := drv.CompileText(cmd.Context(), text)
		if err != nil {
			return err
		}
		for _, e := range errs {
			fmt.Fprintln(os.Stderr, e)
		}
		for _, line := range lines {
			out <- line
		}
	}
	return sc.Err()
}

func init() {
	rootCmd.AddCommand(runCmd)
}
