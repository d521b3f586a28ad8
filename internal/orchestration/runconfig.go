package orchestration

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/tradepulse/tradepulse/config"
	"github.com/tradepulse/tradepulse/consts"
	"github.com/tradepulse/tradepulse/models"
)

// RunConfig is the fully resolved, immutable configuration for one analysis
// run. Every field is populated before the workflow driver sees it.
type RunConfig struct {
	Ticker       string
	AnalysisDate time.Time
	Analysts     []consts.AnalystType

	DebateRounds int
	RiskRounds   int

	Provider      string
	BackendURL    string
	QuickThinkLLM string
	DeepThinkLLM  string
}

var tickerPattern = regexp.MustCompile(`^[A-Za-z]+$`)

// providerEndpoints maps each known provider to its backend endpoint. An
// unrecognized provider falls back to the openai endpoint so the run stays
// startable.
var providerEndpoints = map[string]string{
	"openai":     "https://api.openai.com/v1",
	"anthropic":  "https://api.anthropic.com/v1",
	"google":     "https://generativelanguage.googleapis.com/v1",
	"openrouter": "https://openrouter.ai/api/v1",
	"ollama":     "http://localhost:11434/v1",
	"deepseek":   "https://api.deepseek.com/v1",
}

// BackendURLFor resolves the endpoint for a provider name.
func BackendURLFor(provider string) string {
	if url, ok := providerEndpoints[strings.ToLower(strings.TrimSpace(provider))]; ok {
		return url
	}
	return providerEndpoints["openai"]
}

// SplitAnalysts tokenizes a comma-separated analyst list, dropping blanks.
func SplitAnalysts(raw string) []string {
	var tokens []string
	for _, tok := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(tok); trimmed != "" {
			tokens = append(tokens, trimmed)
		}
	}
	return tokens
}

// BuildRunConfig validates a raw request against cfg's defaults and produces
// the immutable run configuration. It performs no I/O.
func BuildRunConfig(req *models.AnalysisRequest, cfg *config.Config) (*RunConfig, error) {
	ticker := strings.TrimSpace(req.Ticker)
	if ticker == "" {
		return nil, &ValidationError{Field: "ticker", Reason: "must not be empty"}
	}
	if !tickerPattern.MatchString(ticker) {
		return nil, &ValidationError{Field: "ticker", Reason: "must contain letters only"}
	}
	ticker = strings.ToUpper(ticker)

	date, err := time.Parse("2006-01-02", strings.TrimSpace(req.AnalysisDate))
	if err != nil {
		return nil, &ValidationError{Field: "analysis_date", Reason: "must be a valid YYYY-MM-DD date"}
	}

	analysts, err := resolveAnalysts(req.Analysts)
	if err != nil {
		return nil, err
	}

	depth := req.ResearchDepth
	if depth <= 0 {
		return nil, &ValidationError{Field: "research_depth", Reason: "must be a positive integer"}
	}

	provider := strings.ToLower(strings.TrimSpace(req.LLMProvider))
	if provider == "" {
		provider = cfg.LLMProvider
	}
	backendURL := BackendURLFor(provider)
	if cfg.BackendURL != "" {
		backendURL = cfg.BackendURL
	}

	quick := strings.TrimSpace(req.ShallowThinker)
	if quick == "" {
		quick = cfg.QuickThinkLLM
	}
	deep := strings.TrimSpace(req.DeepThinker)
	if deep == "" {
		deep = cfg.DeepThinkLLM
	}

	return &RunConfig{
		Ticker:        ticker,
		AnalysisDate:  date,
		Analysts:      analysts,
		DebateRounds:  depth,
		RiskRounds:    depth,
		Provider:      provider,
		BackendURL:    backendURL,
		QuickThinkLLM: quick,
		DeepThinkLLM:  deep,
	}, nil
}

func resolveAnalysts(tokens []string) ([]consts.AnalystType, error) {
	seen := make(map[consts.AnalystType]bool)
	var analysts []consts.AnalystType
	for _, tok := range tokens {
		if strings.TrimSpace(tok) == "" {
			continue
		}
		a, err := consts.ParseAnalyst(tok)
		if err != nil {
			return nil, &ValidationError{Field: "analysts", Reason: err.Error()}
		}
		if !seen[a] {
			seen[a] = true
			analysts = append(analysts, a)
		}
	}
	if len(analysts) == 0 {
		return nil, &ValidationError{Field: "analysts", Reason: "at least one analyst must be selected"}
	}
	return analysts, nil
}

// DateString renders the analysis date the way the engine expects it.
func (rc *RunConfig) DateString() string {
	return rc.AnalysisDate.Format("2006-01-02")
}

// HasAnalyst reports whether the roster includes a.
func (rc *RunConfig) HasAnalyst(a consts.AnalystType) bool {
	for _, sel := range rc.Analysts {
		if sel == a {
			return true
		}
	}
	return false
}

func (rc *RunConfig) String() string {
	names := make([]string, len(rc.Analysts))
	for i, a := range rc.Analysts {
		names[i] = string(a)
	}
	return fmt.Sprintf("%s on %s (analysts=%s depth=%d provider=%s quick=%s deep=%s)",
		rc.Ticker, rc.DateString(), strings.Join(names, ","), rc.DebateRounds,
		rc.Provider, rc.QuickThinkLLM, rc.DeepThinkLLM)
}
