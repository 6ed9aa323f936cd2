package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/dhamidi/poscar/poscar"
	"github.com/spf13/cobra"
)

func newFmtCmd() *cobra.Command {
	var fmtOverwrite bool

	cmd := &cobra.Command{
		Use:   "fmt [file]",
		Short: "Rewrite a POSCAR file in canonical form",
		Long: `Rewrite a POSCAR file in canonical form to stdout.

If no file is provided, reads from stdin.

Use -w to overwrite the file in place (requires a file argument).`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var doc *poscar.Document
			var err error
			var filename string

			if len(args) == 0 {
				if fmtOverwrite {
					return fmt.Errorf("-w requires a file argument")
				}
				source, readErr := io.ReadAll(os.Stdin)
				if readErr != nil {
					return fmt.Errorf("read stdin: %w", readErr)
				}
				if doc, err = poscar.ParseBytes(source); err != nil {
					return err
				}
			} else {
				filename = args[0]
				doc, err = poscar.ParseFile(filename)
				if err != nil {
					return err
				}
			}

			var buf bytes.Buffer
			if err := poscar.Write(&buf, doc); err != nil {
				return fmt.Errorf("format: %w", err)
			}

			if fmtOverwrite {
				return os.WriteFile(filename, buf.Bytes(), 0644)
			}
			_, err = os.Stdout.Write(buf.Bytes())
			return err
		},
	}

	cmd.Flags().BoolVarP(&fmtOverwrite, "write", "w", false, "overwrite the file in place")

	return cmd
}
