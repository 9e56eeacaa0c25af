package main

import (
	"os"

	"github.com/spf13/cobra"

	"tortuga/pkg/annotate"
	"tortuga/pkg/compiler"
)

var compileCmd = &cobra.Command{
	Use:   "compile [file]",
	Short: "Translate English sentences to tortuga assembly",
	Long: `Reads sentences (one per line) from a file or stdin and writes the
compiled assembly to stdout. A sentence that fails to compile is reported on
stderr and the remaining input keeps compiling.`,
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
		return drv.Run(cmd.Context(), in, os.Stdout, os.Stderr)
	},
}

func init() {
	rootCmd.AddCommand(compileCmd)
}
