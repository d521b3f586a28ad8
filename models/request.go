package models

// AnalysisRequest is the raw, unvalidated run request as it arrives from the
// HTTP handler or the interactive session.
type AnalysisRequest struct {
	Ticker         string   `json:"ticker"`
	AnalysisDate   string   `json:"analysis_date"`
	Analysts       []string `json:"analysts"`
	ResearchDepth  int      `json:"research_depth"`
	LLMProvider    string   `json:"llm_provider"`
	ShallowThinker string   `json:"shallow_thinker"`
	DeepThinker    string   `json:"deep_thinker"`
}
