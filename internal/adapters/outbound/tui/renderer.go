package tui

import (
	"fmt"
	"strings"

	"github.com/arbiterhq/arbiter/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// ── warm terminal palette ──
var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber-yellow
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(68)

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	nameStyle     = lipgloss.NewStyle().Bold(true).Foreground(fg)
	infeasStyle   = lipgloss.NewStyle().Foreground(danger)
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))

	actionColors = map[string]lipgloss.Color{
		domain.ActionSelect:   success,
		domain.ActionCompose:  success,
		domain.ActionExtend:   warning,
		domain.ActionImprove:  warning,
		domain.ActionBuildNew: danger,
		domain.ActionNoGo:     danger,
	}
)

// RenderResult formats an evaluation result for the terminal: boxed header
// with decision and action, ranked alternatives with score bars, and the
// recommendation block.
func RenderResult(result *domain.EvaluationResult) string {
	var b strings.Builder

	title := headerStyle.Render("arbiter")
	subtitle := dimStyle.Render(result.Decision)
	action := lipgloss.NewStyle().
		Bold(true).
		Foreground(actionColor(result.Recommendation.Action)).
		Render(strings.ToUpper(result.Recommendation.Action))
	status := dimStyle.Render(result.DecisionStatus)

	b.WriteString(boxStyle.Render(title + "\n" + subtitle + "\n\n" + action + "  " + status))
	b.WriteString("\n\n")

	for _, alt := range result.RankedAlternatives {
		renderAlternative(&b, alt, result.CurrentPlatform)
	}

	b.WriteString("\n")
	b.WriteString("  " + separatorLine)
	b.WriteString("\n\n")

	rec := result.Recommendation
	b.WriteString("  " + titleStyle.Render("Recommendation") + "\n\n")
	fmt.Fprintf(&b, "    %s %s\n", dimStyle.Render("top option:"), rec.TopOptionID)
	if len(rec.ChosenOptionIDs) > 0 {
		fmt.Fprintf(&b, "    %s %s\n", dimStyle.Render("chosen:    "), strings.Join(rec.ChosenOptionIDs, ", "))
	}
	fmt.Fprintf(&b, "    %s %.2f\n", dimStyle.Render("margin:    "), rec.ScoreMarginVsSecond)
	fmt.Fprintf(&b, "    %s\n", faintStyle.Render(rec.Reason))
	b.WriteString("\n")

	return b.String()
}

func renderAlternative(b *strings.Builder, alt domain.ScoredAlternative, currentPlatform string) {
	scoreText := lipgloss.NewStyle().
		Bold(true).
		Foreground(scoreColor(alt.OverallSuccessScore)).
		Render(fmt.Sprintf("%.2f", alt.OverallSuccessScore))
	bar := coloredBar(alt.OverallSuccessScore, 20)

	rank := dimStyle.Render(fmt.Sprintf("#%d", alt.Rank))
	name := nameStyle.Render(padRight(alt.Name, 24))
	fmt.Fprintf(b, "  %s %s %s  %s", rank, name, bar, scoreText)
	if !alt.Feasible {
		fmt.Fprintf(b, "  %s", infeasStyle.Render("infeasible"))
	}
	b.WriteString("\n")

	detail := fmt.Sprintf("major %.2f · %s %.2f · coverage %.3f",
		alt.MajorPlatformAverage, currentPlatform, alt.CurrentPlatformScore, alt.Coverage)
	if alt.Effort != "" || alt.Risk != "" {
		detail += fmt.Sprintf(" · effort %s · risk %s", orDash(alt.Effort), orDash(alt.Risk))
	}
	fmt.Fprintf(b, "       %s\n", faintStyle.Render(detail))
}

func coloredBar(score float64, width int) string {
	filled := int(score) * width / 100
	filled = max(0, min(filled, width))
	empty := width - filled

	color := scoreColor(score)
	filledStr := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled))
	emptyStr := lipgloss.NewStyle().Foreground(faint).Render(strings.Repeat("░", empty))
	return filledStr + emptyStr
}

func scoreColor(score float64) lipgloss.Color {
	switch {
	case score >= 80:
		return success
	case score >= 55:
		return warning
	default:
		return danger
	}
}

func actionColor(action string) lipgloss.Color {
	if c, ok := actionColors[action]; ok {
		return c
	}
	return fg
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
