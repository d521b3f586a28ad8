package cli

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/AlecAivazis/survey/v2"

	"github.com/tradepulse/tradepulse/config"
	"github.com/tradepulse/tradepulse/consts"
	"github.com/tradepulse/tradepulse/models"
)

var tickerInputPattern = regexp.MustCompile(`^[A-Za-z]+$`)

// CollectRequest walks the user through every run parameter and returns the
// raw request. Each answer is validated in place; survey re-asks on failure.
func CollectRequest(cfg *config.Config) (*models.AnalysisRequest, error) {
	ticker, err := promptTicker()
	if err != nil {
		return nil, err
	}
	date, err := promptAnalysisDate()
	if err != nil {
		return nil, err
	}
	analysts, err := promptAnalysts()
	if err != nil {
		return nil, err
	}
	depth, err := promptResearchDepth()
	if err != nil {
		return nil, err
	}
	provider, err := promptProvider(cfg)
	if err != nil {
		return nil, err
	}
	quick, deep, err := promptModels(cfg)
	if err != nil {
		return nil, err
	}

	return &models.AnalysisRequest{
		Ticker:         ticker,
		AnalysisDate:   date,
		Analysts:       analysts,
		ResearchDepth:  depth,
		LLMProvider:    provider,
		ShallowThinker: quick,
		DeepThinker:    deep,
	}, nil
}

func promptTicker() (string, error) {
	var ticker string
	prompt := &survey.Input{
		Message: "Enter the ticker symbol to analyze:",
		Default: "SPY",
		Help:    "Letters only, e.g. AAPL, NVDA, SPY",
	}
	err := survey.AskOne(prompt, &ticker, survey.WithValidator(func(val interface{}) error {
		str := strings.TrimSpace(val.(string))
		if str == "" {
			return fmt.Errorf("ticker symbol cannot be empty")
		}
		if !tickerInputPattern.MatchString(str) {
			return fmt.Errorf("ticker must contain letters only")
		}
		return nil
	}))
	if err != nil {
		return "", err
	}
	return strings.ToUpper(strings.TrimSpace(ticker)), nil
}

func promptAnalysisDate() (string, error) {
	var dateStr string
	prompt := &survey.Input{
		Message: "Enter the analysis date (YYYY-MM-DD):",
		Default: time.Now().Format("2006-01-02"),
	}
	err := survey.AskOne(prompt, &dateStr, survey.WithValidator(func(val interface{}) error {
		if _, err := time.Parse("2006-01-02", strings.TrimSpace(val.(string))); err != nil {
			return fmt.Errorf("invalid date format, use YYYY-MM-DD")
		}
		return nil
	}))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(dateStr), nil
}

func promptAnalysts() ([]string, error) {
	options := make([]string, len(consts.AllAnalysts))
	for i, a := range consts.AllAnalysts {
		options[i] = a.DisplayName()
	}

	var selected []string
	prompt := &survey.MultiSelect{
		Message: "Select your analyst team:",
		Options: options,
		Default: options,
		Help:    "Space toggles a member, enter confirms.",
	}
	err := survey.AskOne(prompt, &selected, survey.WithValidator(func(val interface{}) error {
		picked, ok := val.([]survey.OptionAnswer)
		if !ok || len(picked) == 0 {
			return fmt.Errorf("select at least one analyst")
		}
		return nil
	}))
	if err != nil {
		return nil, err
	}

	var tokens []string
	for _, name := range selected {
		for _, a := range consts.AllAnalysts {
			if a.DisplayName() == name {
				tokens = append(tokens, string(a))
			}
		}
	}
	return tokens, nil
}

func promptResearchDepth() (int, error) {
	options := []string{
		"1 - Quick: single debate round",
		"3 - Standard: three debate rounds",
		"5 - Thorough: five debate rounds",
	}
	var selected string
	prompt := &survey.Select{
		Message: "Select research depth:",
		Options: options,
		Default: options[0],
	}
	if err := survey.AskOne(prompt, &selected); err != nil {
		return 0, err
	}
	depth, err := strconv.Atoi(strings.SplitN(selected, " ", 2)[0])
	if err != nil {
		return 0, fmt.Errorf("parse research depth: %w", err)
	}
	return depth, nil
}

func promptProvider(cfg *config.Config) (string, error) {
	options := []string{"openai", "anthropic", "google", "openrouter", "ollama", "deepseek"}
	def := options[0]
	for _, opt := range options {
		if opt == cfg.LLMProvider {
			def = opt
		}
	}

	var provider string
	prompt := &survey.Select{
		Message: "Select LLM provider:",
		Options: options,
		Default: def,
		Help:    "Make sure the matching API key is configured.",
	}
	if err := survey.AskOne(prompt, &provider); err != nil {
		return "", err
	}
	return provider, nil
}

func promptModels(cfg *config.Config) (string, string, error) {
	var quick string
	if err := survey.AskOne(&survey.Input{
		Message: "Quick-thinking model:",
		Default: cfg.QuickThinkLLM,
		Help:    "Used by the analyst and debate agents.",
	}, &quick); err != nil {
		return "", "", err
	}

	var deep string
	if err := survey.AskOne(&survey.Input{
		Message: "Deep-thinking model:",
		Default: cfg.DeepThinkLLM,
		Help:    "Used by the research manager and risk judge.",
	}, &deep); err != nil {
		return "", "", err
	}
	return strings.TrimSpace(quick), strings.TrimSpace(deep), nil
}

func promptConfirm() (bool, error) {
	var confirmed bool
	err := survey.AskOne(&survey.Confirm{
		Message: "Start the analysis with these settings?",
		Default: true,
	}, &confirmed)
	return confirmed, err
}

func promptAgain() (bool, error) {
	var choice string
	err := survey.AskOne(&survey.Select{
		Message: "Analysis finished. What next?",
		Options: []string{"Start a new analysis", "Exit"},
		Default: "Exit",
	}, &choice)
	if err != nil {
		return false, err
	}
	return choice == "Start a new analysis", nil
}
