package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/willowdom"
	"github.com/phanxgames/willowdom/overlay"
	"github.com/phanxgames/willowdom/scene"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open the demo scene with the inspector attached",
	Long: `Open the demo scene with the inspector attached.

Hold the passthrough key (Control by default) and click a node to pick it.
Edits are read from stdin, one per line:

  <id> <attribute> <value>   set an attribute, e.g. "px3 x 40"
  print                      print the mirror tree`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		d := newDemo()
		insp := newInspector(d, cfg)
		input := overlay.EbitenInput{Keys: []ebiten.Key{cfg.Passthrough}}

		d.scene.SetUpdateFunc(func() error {
			d.step()
			insp.HandleInput(input, 1.0/float32(ebiten.TPS()))
			insp.Tick()
			return nil
		})
		d.scene.AddOverlay(insp.Draw)

		go readEdits(os.Stdin, insp)

		log.Info().Dur("interval", insp.UpdateInterval()).Msg("inspector attached")
		return scene.Run(d.scene, scene.RunConfig{
			Title:  "willowdom",
			Width:  screenW,
			Height: screenH,
		})
	},
}

func newInspector(d *demo, cfg willowdom.Config) *willowdom.Inspector[*scene.Node] {
	surface := overlay.NewSurface(cfg.OriginX, cfg.OriginY)
	opts := append(cfg.Options(), willowdom.WithLogger(log.Logger))
	insp := willowdom.NewDefault(d.scene, surface, opts...)
	insp.Bind(willowdom.KindOf(Crate{}), "Weight", nil).
		Bind(willowdom.KindOf(Crate{}), "Label", nil)
	cfg.Apply(insp.Registry())
	insp.Update()
	return insp
}

// readEdits applies edit lines from r until it is exhausted.
func readEdits(r io.Reader, insp *willowdom.Inspector[*scene.Node]) {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if line == "print" {
			insp.Do(func(mirror *overlay.Element) {
				if err := overlay.Fprint(os.Stdout, mirror); err != nil {
					log.Error().Err(err).Msg("print failed")
				}
			})
			continue
		}
		if err := applyEdit(insp, line); err != nil {
			log.Warn().Err(err).Str("line", line).Msg("edit rejected")
		}
	}
}

// applyEdit sets one attribute from a "<id> <attribute> <value>" line. The
// value may contain spaces.
func applyEdit(insp *willowdom.Inspector[*scene.Node], line string) error {
	fields := strings.SplitN(line, " ", 3)
	if len(fields) != 3 {
		return fmt.Errorf("want \"<id> <attribute> <value>\"")
	}
	id, name, value := fields[0], fields[1], strings.TrimSpace(fields[2])
	var err error
	insp.Do(func(mirror *overlay.Element) {
		el := mirror.Find(id)
		if el == nil {
			err = fmt.Errorf("no element %q", id)
			return
		}
		el.SetAttribute(name, value)
	})
	return err
}
