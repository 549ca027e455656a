package main

import (
	"fmt"
	"io"

	"github.com/phanxgames/willowdom/overlay"
	"github.com/spf13/cobra"
)

var (
	dumpFormat  string
	dumpNoColor bool
	dumpSteps   int
)

func init() {
	dumpCmd.Flags().StringVarP(&dumpFormat, "format", "f", "tree", "Output format: tree or yaml")
	dumpCmd.Flags().BoolVar(&dumpNoColor, "no-color", false, "Disable colored tree output")
	dumpCmd.Flags().IntVar(&dumpSteps, "steps", 0, "Animate the demo this many frames before the pass")
}

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Run one pass over the demo scene and print the mirror",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if dumpSteps < 0 {
			return fmt.Errorf("--steps must not be negative, got %d", dumpSteps)
		}

		d := newDemo()
		for i := 0; i < dumpSteps; i++ {
			d.step()
		}
		insp := newInspector(d, cfg)
		return dump(cmd.OutOrStdout(), insp.Root(), dumpFormat, !dumpNoColor)
	},
}

func dump(w io.Writer, root *overlay.Element, format string, color bool) error {
	switch format {
	case "tree":
		p := overlay.NewPrinter(w)
		if !color {
			p.SetColor(false)
		}
		return p.Print(root)
	case "yaml":
		out, err := overlay.Capture(root).YAML()
		if err != nil {
			return err
		}
		if _, err := w.Write(out); err != nil {
			return fmt.Errorf("write yaml: %w", err)
		}
		return nil
	}
	return fmt.Errorf("unknown format %q (want tree or yaml)", format)
}
