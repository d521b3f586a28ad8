package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tradepulse/tradepulse/internal/orchestration"
	"github.com/tradepulse/tradepulse/models"
)

var (
	bannerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7C3AED")).
			Padding(0, 1).
			MarginBottom(1)

	summaryStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#3B82F6")).
			Padding(1, 2).
			Width(72)

	authorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#3B82F6"))

	messageStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280")).
			Italic(true)

	reportTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#10B981")).
				MarginTop(1)

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#EF4444"))

	buyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#10B981")).
			Padding(0, 1)

	sellStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#EF4444")).
			Padding(0, 1)

	holdStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F59E0B")).
			Padding(0, 1)
)

func displayWelcome() {
	fmt.Println(bannerStyle.Render("TradePulse - Multi-Agent Trading Analysis"))
	fmt.Println("Answer a few questions to configure the run, then watch the team work.")
	fmt.Println()
}

func displaySummary(rc *orchestration.RunConfig) {
	names := make([]string, len(rc.Analysts))
	for i, a := range rc.Analysts {
		names[i] = a.DisplayName()
	}
	summary := fmt.Sprintf(
		"Ticker:          %s\nAnalysis date:   %s\nAnalyst team:    %s\nResearch depth:  %d\nProvider:        %s\nQuick thinker:   %s\nDeep thinker:    %s",
		rc.Ticker, rc.DateString(), strings.Join(names, ", "),
		rc.DebateRounds, rc.Provider, rc.QuickThinkLLM, rc.DeepThinkLLM)
	fmt.Println(summaryStyle.Render(summary))
}

func displayMessage(content string) {
	fmt.Println(messageStyle.Render(truncate(content, 200)))
}

func displayUpdate(u orchestration.Update) {
	fmt.Println(authorStyle.Render(u.Author))
	fmt.Println(u.Body)
	fmt.Println()
}

func displayReport(report *models.Report) {
	if report.Empty() {
		fmt.Println(messageStyle.Render("The run produced no report sections."))
		return
	}
	fmt.Println(reportTitleStyle.Render("Final Analysis Report"))
	for _, section := range report.Sections {
		fmt.Println(reportTitleStyle.Render(section.Title))
		fmt.Println(section.Body)
	}
	fmt.Println()
}

func displayDecision(decision models.Decision) {
	var style lipgloss.Style
	switch decision {
	case models.DecisionBuy:
		style = buyStyle
	case models.DecisionSell:
		style = sellStyle
	default:
		style = holdStyle
	}
	fmt.Println(style.Render("Decision: " + string(decision)))
	fmt.Println()
}

func displayError(err error) {
	fmt.Println(errorStyle.Render("Error: " + err.Error()))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
