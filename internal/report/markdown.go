package report

import (
	"fmt"
	"strings"

	"diarylens/domain/analytics"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// Markdown renders o as a markdown document.
func Markdown(o *analytics.Overview) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Diary analysis\n\n")
	fmt.Fprintf(&b, "Generated %s from %d entries (%d dated).\n\n",
		o.GeneratedAt.Format("2006-01-02 15:04"), o.EntryCount, o.DatedEntryCount)

	if len(o.Monthly) > 0 {
		b.WriteString("## Monthly\n\n")
		b.WriteString("| Month | Entries | Negative ratio | 3-month avg | Seasonal deviation | Avg sentence |\n")
		b.WriteString("|---|---:|---:|---:|---:|---:|\n")
		for _, m := range o.Monthly {
			fmt.Fprintf(&b, "| %s | %d | %.3f | %s | %s | %.1f |\n",
				m.Month, m.EntryCount, m.NegativeRatio, optional(m.MovingAvg3), optional(m.SeasonalDeviation), m.AvgSentenceLength)
		}
		b.WriteString("\n")
	}

	if len(o.Stability) > 0 {
		b.WriteString("## Stability\n\n| Year | Months | Score |\n|---|---:|---:|\n")
		for _, s := range o.Stability {
			fmt.Fprintf(&b, "| %s | %d | %.1f |\n", s.Year, s.MonthCount, s.Score)
		}
		if o.OverallStability != nil {
			fmt.Fprintf(&b, "| all | %d | %.1f |\n", o.OverallStability.MonthCount, o.OverallStability.Score)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Trend shifts\n\n")
	if len(o.TrendShifts) == 0 {
		b.WriteString("None detected.\n\n")
	}
	for _, s := range o.TrendShifts {
		fmt.Fprintf(&b, "- **%s** %s → %s (%.2fσ, negative ratio %+.3f)\n", s.Type, s.StartMonth, s.EndMonth, s.Magnitude, s.Delta)
	}
	if len(o.TrendShifts) > 0 {
		b.WriteString("\n")
	}

	if len(o.Seasonal) > 0 {
		b.WriteString("## Seasons\n\n| Season | Months | Negative /1000 | Elsewhere /1000 | z | p | |\n|---|---:|---:|---:|---:|---:|---|\n")
		for _, r := range o.Seasonal {
			mark := ""
			if r.Significant {
				mark = "significant"
			}
			fmt.Fprintf(&b, "| %s | %d | %.2f | %.2f | %.2f | %.3f | %s |\n",
				r.Season, r.MonthCount, r.SeasonNegativeRate, r.PooledOtherRate, r.ZScore, r.PValue, mark)
		}
		b.WriteString("\n")
	}

	if in := o.VocabularyDepth.Interpretation; in != nil {
		fmt.Fprintf(&b, "## Vocabulary depth\n\n**%s**: %s\n\n", in.Label, in.Description)
	}

	fmt.Fprintf(&b, "## First person\n\n**%s**\n\n", o.FirstPerson.Label)
	for _, e := range o.FirstPerson.Evidence {
		fmt.Fprintf(&b, "- %s\n", e)
	}
	b.WriteString("\n")

	p := o.Predictive
	fmt.Fprintf(&b, "## Predictive signals\n\n%d spike days.\n\n", len(p.Spikes))
	for _, in := range p.Indicators {
		fmt.Fprintf(&b, "- `%s` before %d spikes (lead %.1f days, r=%.2f)\n", in.Term, in.SpikeHits, in.MeanLeadDays, in.Correlation)
	}
	for _, c := range p.SymptomCorrelations {
		fmt.Fprintf(&b, "- physical symptoms → negativity after %d days: r=%.2f (n=%d, p=%.3f)\n", c.LagDays, c.Correlation, c.SampleSize, c.PValue)
	}
	return b.String()
}

// HTML renders o through Markdown as a standalone HTML document.
func HTML(o *analytics.Overview) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	doc := p.Parse([]byte(Markdown(o)))

	renderer := html.NewRenderer(html.RendererOptions{
		Flags: html.CommonFlags | html.CompletePage | html.HrefTargetBlank,
		Title: "Diary analysis",
	})
	return markdown.Render(doc, renderer)
}

func optional(v *float64) string {
	if v == nil {
		return "–"
	}
	return fmt.Sprintf("%.3f", *v)
}
