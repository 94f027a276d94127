package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/phanxgames/folio"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// traceRow is one sampled scroll position.
type traceRow struct {
	ScrollY float64      `yaml:"scrollY"`
	Active  string       `yaml:"active,omitempty"`
	Scenes  []traceScene `yaml:"scenes"`
}

type traceScene struct {
	ID       string  `yaml:"id"`
	Progress float64 `yaml:"progress"`
	Opacity  float64 `yaml:"opacity"`
	Scale    float64 `yaml:"scale"`
}

func newTraceCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trace",
		Short: "Scroll through the page headlessly and print each section's style",
		RunE: func(cmd *cobra.Command, _ []string) error {
			page, _, err := loadPage(v)
			if err != nil {
				return err
			}
			defer page.Close()
			rows, err := trace(page, v.GetFloat64("step"), v.GetInt("settle"))
			if err != nil {
				return err
			}
			if v.GetBool("yaml") {
				return yaml.NewEncoder(cmd.OutOrStdout()).Encode(rows)
			}
			return writeTable(cmd.OutOrStdout(), rows)
		},
	}
	f := cmd.Flags()
	f.Float64("step", 40, "scroll distance between samples")
	f.Int("settle", 1, "frames to run after each scroll")
	f.Bool("yaml", false, "print YAML instead of a table")
	return cmd
}

// trace scrolls page from the top to the bottom in step increments, running
// settle frames at 60 Hz after each one.
func trace(page *folio.Page, step float64, settle int) ([]traceRow, error) {
	if step <= 0 {
		return nil, fmt.Errorf("step must be positive, got %g", step)
	}
	if settle < 1 {
		settle = 1
	}
	const dt = time.Second / 60
	vp := page.Viewport()
	maxY := vp.MaxScroll()

	var rows []traceRow
	for y := 0.0; ; y += step {
		if y > maxY {
			y = maxY
		}
		vp.ScrollTo(y)
		for i := 0; i < settle; i++ {
			if err := page.Update(dt); err != nil {
				return nil, err
			}
		}
		row := traceRow{ScrollY: vp.ScrollY()}
		row.Active, _ = page.ActiveSection()
		for _, s := range page.Snapshot() {
			row.Scenes = append(row.Scenes, traceScene{
				ID: s.ID, Progress: s.Progress, Opacity: s.Style.Opacity, Scale: s.Style.Scale,
			})
		}
		rows = append(rows, row)
		if y >= maxY {
			break
		}
	}
	return rows, nil
}

func writeTable(w io.Writer, rows []traceRow) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if len(rows) > 0 {
		fmt.Fprint(tw, "scrollY")
		for _, s := range rows[0].Scenes {
			fmt.Fprintf(tw, "\t%s", s.ID)
		}
		fmt.Fprintln(tw)
	}
	for _, r := range rows {
		fmt.Fprintf(tw, "%.0f", r.ScrollY)
		for _, s := range r.Scenes {
			fmt.Fprintf(tw, "\t%.2f/%.3f", s.Opacity, s.Scale)
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}
