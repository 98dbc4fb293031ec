// Package report renders analysis overviews as compact digests for the
// narrative generator and as markdown/HTML documents.
package report

import (
	"fmt"
	"sort"
	"strings"

	"diarylens/domain/analytics"
	"diarylens/domain/core"
)

// Digest is the numeric summary handed to the narrative generator. Fields
// holds every number the prompt cites, keyed by name, so the prompt can be
// fingerprinted independently of its wording.
type Digest struct {
	AnalysisType analytics.AnalysisType
	Prompt       string
	Fields       map[string]string
}

// Hash fingerprints the digest fields.
func (d Digest) Hash() core.Hash {
	fields := make(map[string]string, len(d.Fields)+1)
	for k, v := range d.Fields {
		fields[k] = v
	}
	fields["analysis_type"] = string(d.AnalysisType)
	return core.ComputeDigestHash(fields)
}

// BuildDigest summarises the parts of o relevant to analysisType.
func BuildDigest(analysisType analytics.AnalysisType, o *analytics.Overview) (Digest, error) {
	if o == nil {
		return Digest{}, fmt.Errorf("nil overview")
	}
	d := Digest{AnalysisType: analysisType, Fields: make(map[string]string)}

	switch analysisType {
	case analytics.AnalysisOverview:
		overviewFields(d.Fields, o)
		trendFields(d.Fields, o.TrendShifts)
		seasonalFields(d.Fields, o.Seasonal)
		firstPersonFields(d.Fields, o.FirstPerson)
	case analytics.AnalysisTrendShifts:
		trendFields(d.Fields, o.TrendShifts)
	case analytics.AnalysisSeasonal:
		seasonalFields(d.Fields, o.Seasonal)
	case analytics.AnalysisFirstPerson:
		firstPersonFields(d.Fields, o.FirstPerson)
	case analytics.AnalysisPredictive:
		predictiveFields(d.Fields, o.Predictive)
	default:
		return Digest{}, fmt.Errorf("unknown analysis type %q", analysisType)
	}

	d.Prompt = renderPrompt(analysisType, d.Fields)
	return d, nil
}

func overviewFields(f map[string]string, o *analytics.Overview) {
	f["entries"] = fmt.Sprintf("%d", o.EntryCount)
	f["dated_entries"] = fmt.Sprintf("%d", o.DatedEntryCount)
	f["months"] = fmt.Sprintf("%d", len(o.Monthly))
	if n := len(o.Monthly); n > 0 {
		f["first_month"] = o.Monthly[0].Month
		f["last_month"] = o.Monthly[n-1].Month
		f["last_month_negative_ratio"] = fmtRatio(o.Monthly[n-1].NegativeRatio)
	}
	if n := len(o.ElevationMonthly); n > 0 {
		f["elevation"] = fmt.Sprintf("%.1f", o.ElevationMonthly[n-1].Elevation)
	}
	for _, s := range o.Stability {
		f["stability_"+s.Year] = fmt.Sprintf("%.1f", s.Score)
	}
	if o.OverallStability != nil {
		f["stability_overall"] = fmt.Sprintf("%.1f", o.OverallStability.Score)
	}
	if in := o.VocabularyDepth.Interpretation; in != nil {
		f["depth_label"] = string(in.Label)
		f["depth_delta"] = fmtSigned(in.DepthDelta)
	}
}

func trendFields(f map[string]string, shifts []analytics.TrendShift) {
	f["trend_shift_count"] = fmt.Sprintf("%d", len(shifts))
	for i, s := range shifts {
		f[fmt.Sprintf("trend_shift_%02d", i+1)] = fmt.Sprintf("%s %s..%s magnitude %.2fσ negative ratio %s",
			s.Type, s.StartMonth, s.EndMonth, s.Magnitude, fmtSigned(s.Delta))
	}
}

func seasonalFields(f map[string]string, rows []analytics.SeasonalCrossStats) {
	for _, r := range rows {
		sig := "not significant"
		if r.Significant {
			sig = "significant"
		}
		f["season_"+string(r.Season)] = fmt.Sprintf("%d months, negative %.2f/1000 vs %.2f/1000 elsewhere, z=%.2f p=%.3f (%s)",
			r.MonthCount, r.SeasonNegativeRate, r.PooledOtherRate, r.ZScore, r.PValue, sig)
	}
}

func firstPersonFields(f map[string]string, fp analytics.FirstPersonShiftInterpretation) {
	f["first_person_label"] = string(fp.Label)
	f["first_person_periods"] = fmt.Sprintf("%d", fp.Periods)
	for i, e := range fp.Evidence {
		f[fmt.Sprintf("first_person_evidence_%d", i+1)] = e
	}
}

func predictiveFields(f map[string]string, p analytics.PredictiveReport) {
	f["spikes"] = fmt.Sprintf("%d", len(p.Spikes))
	for i, in := range p.Indicators {
		if i == 10 {
			break
		}
		f[fmt.Sprintf("indicator_%02d", i+1)] = fmt.Sprintf("%q before %d spikes, lead %.1f days, r=%.2f",
			in.Term, in.SpikeHits, in.MeanLeadDays, in.Correlation)
	}
	for _, c := range p.SymptomCorrelations {
		f[fmt.Sprintf("symptom_lag_%02d", c.LagDays)] = fmt.Sprintf("r=%.2f n=%d p=%.3f", c.Correlation, c.SampleSize, c.PValue)
	}
}

var promptLead = map[analytics.AnalysisType]string{
	analytics.AnalysisOverview:    "Write a short overview of how this diary's tone developed over time.",
	analytics.AnalysisTrendShifts: "Explain the detected turning points in the diary's negativity.",
	analytics.AnalysisSeasonal:    "Describe any seasonal pattern in the diary's negativity.",
	analytics.AnalysisFirstPerson: "Explain what the change in first-person writing suggests.",
	analytics.AnalysisPredictive:  "Describe which words tend to precede difficult days and any link with physical symptoms.",
}

func renderPrompt(analysisType analytics.AnalysisType, fields map[string]string) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(promptLead[analysisType])
	b.WriteString("\n\nFigures (rates are per 1000 characters, ratios in [0,1]):\n")
	for _, k := range keys {
		fmt.Fprintf(&b, "- %s: %s\n", k, fields[k])
	}
	return b.String()
}

func fmtRatio(v float64) string {
	return fmt.Sprintf("%.3f", v)
}

func fmtSigned(v float64) string {
	return fmt.Sprintf("%+.3f", v)
}
