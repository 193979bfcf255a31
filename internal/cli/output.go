package cli

import (
	"fmt"
	"io"

	"github.com/anrid/recession-housing/internal/config"
	"github.com/anrid/recession-housing/pkg/stats"
	"github.com/davecgh/go-spew/spew"
	"github.com/jedib0t/go-pretty/v6/table"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// dumpConfig prints struct fields even for types with a String method.
var dumpConfig = spew.ConfigState{Indent: " ", DisableMethods: true}

// renderValue writes v as indented JSON or as a spew dump.
func renderValue(w io.Writer, v interface{}, format string) error {
	switch format {
	case config.OutputDump:
		dumpConfig.Fdump(w, v)
		return nil
	default:
		return stats.Dump(w, v)
	}
}

func renderResult(w io.Writer, res *stats.Result, format string) error {
	if format != config.OutputText {
		return renderValue(w, res, format)
	}

	p := message.NewPrinter(language.English)

	p.Fprintf(w, "Recession: %s - %s, bottom %s\n\n", res.Recession.Start, res.Recession.End, res.Recession.Bottom)

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Group", "Regions", "Price ratios", "Mean ratio"})
	for _, g := range []stats.GroupSummary{res.University, res.NonUniversity} {
		t.AppendRow(table.Row{
			string(g.Group),
			p.Sprintf("%d", g.Regions),
			p.Sprintf("%d", g.Ratios),
			fmt.Sprintf("%.6f", g.MeanRatio),
		})
	}
	t.Render()

	p.Fprintf(w, "\nt = %.4f, df = %.1f, alpha = %g\n", res.T, res.DF, res.Alpha)
	_, err := fmt.Fprintf(w, "(%t, %g, %q)\n", res.Different, res.PValue, string(res.Better))
	return err
}

func renderRecessions(w io.Writer, recessions []stats.Recession, format string) error {
	if format != config.OutputText {
		return renderValue(w, recessions, format)
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Start", "Bottom", "End"})
	for _, r := range recessions {
		t.AppendRow(table.Row{r.Start.String(), r.Bottom.String(), r.End.String()})
	}
	t.Render()
	return nil
}
