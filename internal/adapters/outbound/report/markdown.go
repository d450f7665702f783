package report

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/arbiterhq/arbiter/internal/domain"
)

// Markdown renders an evaluation result as a markdown report: inputs,
// criteria table, ranked-alternatives table, recommendation block. Purely
// presentational; no decision logic.
type Markdown struct{}

func NewMarkdown() *Markdown { return &Markdown{} }

const reportTemplate = `# Decision Analysis: {{.Decision}}

## Inputs

- Run id: ` + "`{{.RunID}}`" + `
- Scorer version: ` + "`{{.ScorerVersion}}`" + `
- Rules version: ` + "`{{.RulesVersion}}`" + `
- Evaluated at: ` + "`{{.EvaluatedAt}}`" + `
{{- if .CommitHash}}
- Commit: ` + "`{{.CommitHash}}`" + `
{{- end}}
- Profile: ` + "`{{.Profile}}`" + `
- Criteria confirmed: ` + "`{{.CriteriaConfirmed}}`" + `
- Score scale: ` + "`{{.ScoreScale}}`" + `
- Current platform: ` + "`{{.CurrentPlatform}}`" + `
- Major platforms: {{join .MajorPlatforms ", "}}

## Criteria

{{if guardrailed .Profile -}}
| Criterion | Weight | Metric | Data Source | Scoring Rule |
|---|---:|---|---|---|
{{range .Criteria -}}
| {{.Name}} (` + "`{{.ID}}`" + `) | {{f3 .Weight}} | {{.Metric}} | {{.DataSource}} | {{.ScoringRule}} |
{{end -}}
{{else -}}
| Criterion | Normalized Weight |
|---|---:|
{{range .Criteria -}}
| {{.Name}} (` + "`{{.ID}}`" + `) | {{f3 .Weight}} |
{{end -}}
{{end}}
## Ranked Alternatives

{{if guardrailed .Profile -}}
| Rank | Option | Type | Feasible | Effort | Risk | Major Avg | Current ({{.CurrentPlatform}}) | Overall | Coverage | Missing | Justification |
|---:|---|---|---|---|---|---:|---:|---:|---:|---:|---|
{{range .RankedAlternatives -}}
| {{.Rank}} | {{.Name}} (` + "`{{.ID}}`" + `) | {{.Type}} | {{yesno .Feasible}} | {{dash .Effort}} | {{dash .Risk}} | {{f2 .MajorPlatformAverage}} | {{f2 .CurrentPlatformScore}} | {{f2 .OverallSuccessScore}} | {{f3 .Coverage}} | {{.MissingValues}} | {{.Justification}} |
{{end -}}
{{else -}}
| Rank | Option | Effort | Risk | Major Platform Avg | Current Platform ({{.CurrentPlatform}}) | Overall Success | Coverage |
|---:|---|---|---|---:|---:|---:|---:|
{{range .RankedAlternatives -}}
| {{.Rank}} | {{.Name}} (` + "`{{.ID}}`" + `) | {{dash .Effort}} | {{dash .Risk}} | {{f2 .MajorPlatformAverage}} | {{f2 .CurrentPlatformScore}} | {{f2 .OverallSuccessScore}} | {{f3 .Coverage}} |
{{end -}}
{{end}}
## Recommendation

- Decision status: ` + "`{{.DecisionStatus}}`" + `
- Action: **{{.Recommendation.Action}}**
- Chosen option(s): ` + "`{{chosen .Recommendation.ChosenOptionIDs}}`" + `
- Top option: ` + "`{{.Recommendation.TopOptionID}}`" + `
- Margin vs second: {{f2 .Recommendation.ScoreMarginVsSecond}}
- Reason: {{.Recommendation.Reason}}

## Notes

- Blend weights: major_platform_average={{f3 .Weights.MajorPlatformAverage}}, current_platform={{f3 .Weights.CurrentPlatform}}
`

var tmpl = template.Must(template.New("report").Funcs(template.FuncMap{
	"join": strings.Join,
	"f2":   func(v float64) string { return fmt.Sprintf("%.2f", v) },
	"f3":   func(v float64) string { return fmt.Sprintf("%.3f", v) },
	"yesno": func(v bool) string {
		if v {
			return "yes"
		}
		return "no"
	},
	"dash": func(s string) string {
		if s == "" {
			return "-"
		}
		return s
	},
	"chosen": func(ids []string) string {
		if len(ids) == 0 {
			return "none"
		}
		return strings.Join(ids, ", ")
	},
	"guardrailed": func(profile string) bool { return profile == "guardrailed" },
}).Parse(reportTemplate))

func (m *Markdown) Render(result *domain.EvaluationResult) string {
	var buf bytes.Buffer
	_ = tmpl.Execute(&buf, result)
	return buf.String()
}
