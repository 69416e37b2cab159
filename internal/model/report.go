package model

import "time"

// InsightType tags the kind of observation extracted from customer text.
type InsightType string

const (
	InsightPainPoint      InsightType = "pain_point"
	InsightFeatureRequest InsightType = "feature_request"
	InsightBuyingSignal   InsightType = "buying_signal"
	InsightRisk           InsightType = "risk"
	InsightCompetitive    InsightType = "competitive"
)

// Priority is the urgency attached to an insight.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Insight is a discrete observation extracted from customer interaction
// text. Immutable once produced.
type Insight struct {
	Type        InsightType `json:"type"`
	Description string      `json:"description"`
	Priority    Priority    `json:"priority"`
	Source      string      `json:"source"` // free text provenance, e.g. "meeting 2026-03-02"
	Date        time.Time   `json:"date"`
	Quotes      []string    `json:"quotes"`
}

// Validation is the three-level confidence rating attached to an opportunity.
type Validation string

const (
	ValidationStrong Validation = "strong"
	ValidationMedium Validation = "medium"
	ValidationWeak   Validation = "weak"
)

// Rank maps a validation level onto an ordinal for sorting. Unknown levels
// rank below weak.
func (v Validation) Rank() int {
	switch v {
	case ValidationStrong:
		return 3
	case ValidationMedium:
		return 2
	case ValidationWeak:
		return 1
	default:
		return 0
	}
}

// Opportunity is a synthesized sales-relevant need backed by one theme's
// worth of insights.
type Opportunity struct {
	Title      string     `json:"title"`
	Need       string     `json:"need"`
	Validation Validation `json:"validation"`
	Product    string     `json:"product,omitempty"`
}

// Stakeholder is one classified participant in the stakeholder map.
type Stakeholder struct {
	Name       string   `json:"name"`
	Title      string   `json:"title"`
	Department string   `json:"department,omitempty"`
	PainPoints []string `json:"pain_points,omitempty"`
}

// StakeholderMap buckets meeting participants by decision influence. Every
// bucket is always non-nil; every classified participant appears in exactly
// one bucket.
type StakeholderMap struct {
	DecisionMakers []Stakeholder `json:"decision_makers"`
	Champions      []Stakeholder `json:"champions"`
	Influencers    []Stakeholder `json:"influencers"`
	EndUsers       []Stakeholder `json:"end_users"`
	Blockers       []Stakeholder `json:"blockers"`
}

// Total returns the number of stakeholders across all buckets.
func (m StakeholderMap) Total() int {
	return len(m.DecisionMakers) + len(m.Champions) + len(m.Influencers) +
		len(m.EndUsers) + len(m.Blockers)
}

// SalesStrategy is the templated strategy section of the report.
type SalesStrategy struct {
	Approach       string   `json:"approach"`
	KeyOpportunity string   `json:"key_opportunity,omitempty"`
	TalkingPoints  []string `json:"talking_points"`
	NextSteps      []string `json:"next_steps"`
}

// Outreach holds templated outreach content keyed off the stakeholder map.
type Outreach struct {
	PrimaryContact string `json:"primary_contact,omitempty"`
	EmailDraft     string `json:"email_draft"`
	CallScript     string `json:"call_script"`
}

// Appendix carries supporting detail for the report body.
type Appendix struct {
	InsightCount     int            `json:"insight_count"`
	ThemeBreakdown   map[string]int `json:"theme_breakdown"`
	DataSources      []string       `json:"data_sources"`
	QuotedStatements []string       `json:"quoted_statements"`
}

// IntelligenceReport is the complete structured output of the pipeline for
// one CustomerData input. All fields are always present and typed, even when
// empty.
type IntelligenceReport struct {
	ID             string         `json:"id"`
	CompanyName    string         `json:"company_name"`
	GeneratedAt    time.Time      `json:"generated_at"`
	Insights       []Insight      `json:"insights"`
	Opportunities  []Opportunity  `json:"opportunities"`
	StakeholderMap StakeholderMap `json:"stakeholder_map"`
	SalesStrategy  SalesStrategy  `json:"sales_strategy"`
	Outreach       Outreach       `json:"outreach"`
	Appendix       Appendix       `json:"appendix"`
}
