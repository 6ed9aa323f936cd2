package main

import (
	"fmt"

	"github.com/dhamidi/poscar/poscar"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	checkOKColor   = color.New(color.FgGreen)
	checkErrColor  = color.New(color.FgRed, color.Bold)
	checkWarnColor = color.New(color.FgYellow)
)

func newCheckCmd() *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "check <file>...",
		Short: "Parse POSCAR files and report errors and warnings",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := 0
			for _, filename := range args {
				var warnings []poscar.Warning
				_, err := poscar.ParseFile(filename, poscar.WithWarnings(func(w poscar.Warning) {
					warnings = append(warnings, w)
				}))

				if err != nil {
					failed++
					checkErrColor.Fprint(cmd.ErrOrStderr(), "error: ")
					fmt.Fprintln(cmd.ErrOrStderr(), err)
					continue
				}
				for _, w := range warnings {
					checkWarnColor.Fprint(cmd.ErrOrStderr(), "warning: ")
					fmt.Fprintf(cmd.ErrOrStderr(), "%s:%d: %s\n", w.Path, w.Line+1, w.Message)
				}
				if !quiet {
					checkOKColor.Fprint(cmd.OutOrStdout(), "ok: ")
					fmt.Fprintln(cmd.OutOrStdout(), filename)
				}
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d files failed", failed, len(args))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "only report errors and warnings")

	return cmd
}
