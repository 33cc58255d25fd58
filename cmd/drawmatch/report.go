package main

import (
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/felipemfpeixoto/drawmatch"
)

type thresholds struct {
	match float64
	close float64
}

func defaultThresholds() thresholds {
	return thresholds{match: 0.1, close: 0.3}
}

type verdict int

const (
	noMatch verdict = iota
	closeMatch
	match
)

func (v verdict) String() string {
	switch v {
	case match:
		return "match"
	case closeMatch:
		return "close"
	default:
		return "no match"
	}
}

func (t thresholds) judge(d float64) verdict {
	switch {
	case d == drawmatch.Unbounded:
		return noMatch
	case d < t.match:
		return match
	case d < t.close:
		return closeMatch
	}
	return noMatch
}

func formatDistance(p *message.Printer, d float64) string {
	if d == drawmatch.Unbounded {
		return "unbounded"
	}
	return p.Sprintf("%.4f", d)
}

// printReport writes the ranking followed by the details of the comparison
// against best.
func printReport(w io.Writer, matches []drawmatch.Match, best string, r drawmatch.Report, t thresholds) error {
	p := message.NewPrinter(language.English)

	for i, m := range matches {
		if _, err := p.Fprintf(w, "%2d. %-24s %10s  %s\n", i+1, m.Name, formatDistance(p, m.Distance), t.judge(m.Distance)); err != nil {
			return err
		}
	}

	lines := []struct {
		format string
		args   []any
	}{
		{"\nbest: %s\n", []any{best}},
		{"  drawing:   %d points, centroid %v, scale %.3f\n", []any{r.DrawingPoints, r.Drawing.Centroid, r.Drawing.Scale}},
		{"  reference: %d points, centroid %v, scale %.3f\n", []any{r.ReferencePoints, r.Reference.Centroid, r.Reference.Scale}},
		{"  forward %s, reversed %s, distance %s: %s\n", []any{
			formatDistance(p, r.Forward), formatDistance(p, r.Reversed), formatDistance(p, r.Distance), t.judge(r.Distance),
		}},
	}
	for _, l := range lines {
		if _, err := p.Fprintf(w, l.format, l.args...); err != nil {
			return err
		}
	}
	return nil
}
