package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/ericfisherdev/ojcli/internal/domain/model"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	slugStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#3498db"))
	easyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#2ecc71"))
	mediumStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#f1c40f"))
	hardStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#e74c3c"))
	dimStyle    = lipgloss.NewStyle().Faint(true)
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#2ecc71")).Bold(true)
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#e74c3c")).Bold(true)
	staleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#e67e22"))
)

func renderDifficulty(d model.Difficulty) string {
	switch d {
	case model.DifficultyEasy:
		return easyStyle.Render("easy")
	case model.DifficultyMedium:
		return mediumStyle.Render("medium")
	case model.DifficultyHard:
		return hardStyle.Render("hard")
	default:
		return string(d)
	}
}

func renderVerdict(v model.Verdict) string {
	if v == model.VerdictAccepted {
		return okStyle.Render("Accepted")
	}
	switch v {
	case model.VerdictWrongAnswer:
		return failStyle.Render("Wrong Answer")
	case model.VerdictTimeLimitExceeded:
		return failStyle.Render("Time Limit Exceeded")
	case model.VerdictRuntimeError:
		return failStyle.Render("Runtime Error")
	case model.VerdictCompileError:
		return failStyle.Render("Compile Error")
	default:
		return string(v)
	}
}

// renderProblemLine formats one row of the list output.
func renderProblemLine(p model.Problem) string {
	marks := ""
	if p.Starred {
		marks += "*"
	}
	if p.Status == "ac" {
		marks += "✓"
	}
	if p.Locked {
		marks += "🔒"
	}
	if p.HasFile {
		marks += "e"
	}
	return fmt.Sprintf("%4d %-2s %-40s %-8s %s",
		p.FrontendID,
		marks,
		slugStyle.Render(p.Slug),
		renderDifficulty(p.Difficulty),
		dimStyle.Render(fmt.Sprintf("%.1f%%", p.Percent)),
	)
}
