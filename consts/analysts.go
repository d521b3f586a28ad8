package consts

import (
	"fmt"
	"strings"
)

// AnalystType identifies a member of the analyst team as selected by the user.
type AnalystType string

const (
	AnalystMarket       AnalystType = "market"
	AnalystSocial       AnalystType = "social"
	AnalystNews         AnalystType = "news"
	AnalystFundamentals AnalystType = "fundamentals"
)

// AllAnalysts lists every analyst in the order the team runs.
var AllAnalysts = []AnalystType{
	AnalystMarket,
	AnalystSocial,
	AnalystNews,
	AnalystFundamentals,
}

// ParseAnalyst maps a user-supplied token to an AnalystType.
func ParseAnalyst(token string) (AnalystType, error) {
	switch AnalystType(strings.ToLower(strings.TrimSpace(token))) {
	case AnalystMarket:
		return AnalystMarket, nil
	case AnalystSocial:
		return AnalystSocial, nil
	case AnalystNews:
		return AnalystNews, nil
	case AnalystFundamentals:
		return AnalystFundamentals, nil
	default:
		return "", fmt.Errorf("unknown analyst %q", token)
	}
}

// DisplayName returns the human readable team member name.
func (a AnalystType) DisplayName() string {
	switch a {
	case AnalystMarket:
		return "Market Analyst"
	case AnalystSocial:
		return "Social Analyst"
	case AnalystNews:
		return "News Analyst"
	case AnalystFundamentals:
		return "Fundamentals Analyst"
	default:
		return string(a)
	}
}

// Node returns the workflow graph node backing this analyst.
func (a AnalystType) Node() string {
	switch a {
	case AnalystMarket:
		return MarketAnalyst
	case AnalystSocial:
		return SocialMediaAnalyst
	case AnalystNews:
		return NewsAnalyst
	case AnalystFundamentals:
		return FundamentalsAnalyst
	default:
		return ""
	}
}
