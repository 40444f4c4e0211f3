package qapi

import (
	"encoding/json"
	"fmt"
	"time"
)

// Paging is the pagination block every search endpoint returns. PageIndex
// is 1-based; Total is the full count across all pages and is stable for a
// given query.
type Paging struct {
	PageIndex int `json:"pageIndex" yaml:"pageIndex"`
	PageSize  int `json:"pageSize"  yaml:"pageSize"`
	Total     int `json:"total"     yaml:"total"`
}

// Page is the generic page envelope the search builder walks. Wire field
// names for the item list vary per endpoint (issues, components, hotspots,
// rules, ...); resource clients decode their own shape and convert.
type Page[T any] struct {
	Paging Paging `json:"paging" yaml:"paging"`
	Items  []T    `json:"items"  yaml:"items"`
}

// Project is a project registered on the platform.
type Project struct {
	Key              string    `json:"key"                        yaml:"key"`
	Name             string    `json:"name"                       yaml:"name"`
	Qualifier        string    `json:"qualifier"                  yaml:"qualifier"`
	Visibility       string    `json:"visibility"                 yaml:"visibility"`
	LastAnalysisDate time.Time `json:"lastAnalysisDate,omitempty" yaml:"lastAnalysisDate,omitempty"`
	Revision         string    `json:"revision,omitempty"         yaml:"revision,omitempty"`
}

// Component is a node in a project's component tree (project, directory,
// file, or test file).
type Component struct {
	Key       string    `json:"key"                 yaml:"key"`
	Name      string    `json:"name"                yaml:"name"`
	Qualifier string    `json:"qualifier"           yaml:"qualifier"`
	Path      string    `json:"path,omitempty"      yaml:"path,omitempty"`
	Language  string    `json:"language,omitempty"  yaml:"language,omitempty"`
	Measures  []Measure `json:"measures,omitempty"  yaml:"measures,omitempty"`
}

// Issue is a single code-quality finding.
type Issue struct {
	Key          string     `json:"key"                    yaml:"key"`
	Rule         string     `json:"rule"                   yaml:"rule"`
	Severity     string     `json:"severity"               yaml:"severity"`
	Component    string     `json:"component"              yaml:"component"`
	Project      string     `json:"project"                yaml:"project"`
	Line         int        `json:"line,omitempty"         yaml:"line,omitempty"`
	Message      string     `json:"message"                yaml:"message"`
	Type         string     `json:"type"                   yaml:"type"`
	Status       string     `json:"status"                 yaml:"status"`
	Resolution   string     `json:"resolution,omitempty"   yaml:"resolution,omitempty"`
	Assignee     string     `json:"assignee,omitempty"     yaml:"assignee,omitempty"`
	Tags         []string   `json:"tags,omitempty"         yaml:"tags,omitempty"`
	Effort       string     `json:"effort,omitempty"       yaml:"effort,omitempty"`
	CreationDate time.Time  `json:"creationDate"           yaml:"creationDate"`
	UpdateDate   *time.Time `json:"updateDate,omitempty"   yaml:"updateDate,omitempty"`
}

// IssueComment is a comment attached to an issue.
type IssueComment struct {
	Key       string    `json:"key"       yaml:"key"`
	Login     string    `json:"login"     yaml:"login"`
	Markdown  string    `json:"markdown"  yaml:"markdown"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
}

// Hotspot is a security hotspot awaiting review.
type Hotspot struct {
	Key                      string    `json:"key"                      yaml:"key"`
	Component                string    `json:"component"                yaml:"component"`
	Project                  string    `json:"project"                  yaml:"project"`
	SecurityCategory         string    `json:"securityCategory"         yaml:"securityCategory"`
	VulnerabilityProbability string    `json:"vulnerabilityProbability" yaml:"vulnerabilityProbability"`
	Status                   string    `json:"status"                   yaml:"status"`
	Resolution               string    `json:"resolution,omitempty"     yaml:"resolution,omitempty"`
	Line                     int       `json:"line,omitempty"           yaml:"line,omitempty"`
	Message                  string    `json:"message"                  yaml:"message"`
	Author                   string    `json:"author,omitempty"         yaml:"author,omitempty"`
	CreationDate             time.Time `json:"creationDate"             yaml:"creationDate"`
}

// Rule is a static-analysis rule definition.
type Rule struct {
	Key       string   `json:"key"                 yaml:"key"`
	Repo      string   `json:"repo"                yaml:"repo"`
	Name      string   `json:"name"                yaml:"name"`
	Severity  string   `json:"severity"            yaml:"severity"`
	Status    string   `json:"status"              yaml:"status"`
	Type      string   `json:"type"                yaml:"type"`
	Language  string   `json:"lang,omitempty"      yaml:"lang,omitempty"`
	Tags      []string `json:"tags,omitempty"      yaml:"tags,omitempty"`
	SysTags   []string `json:"sysTags,omitempty"   yaml:"sysTags,omitempty"`
	HTMLDesc  string   `json:"htmlDesc,omitempty"  yaml:"htmlDesc,omitempty"`
	IsDefault bool     `json:"isTemplate,omitempty" yaml:"isTemplate,omitempty"`
}

// RuleRepository is a rule repository (one per language/engine pair).
type RuleRepository struct {
	Key      string `json:"key"      yaml:"key"`
	Name     string `json:"name"     yaml:"name"`
	Language string `json:"language" yaml:"language"`
}

// QualityGate is a named set of pass/fail conditions.
type QualityGate struct {
	ID         string                 `json:"id,omitempty" yaml:"id,omitempty"`
	Name       string                 `json:"name"         yaml:"name"`
	IsDefault  bool                   `json:"isDefault"    yaml:"isDefault"`
	IsBuiltIn  bool                   `json:"isBuiltIn"    yaml:"isBuiltIn"`
	Conditions []QualityGateCondition `json:"conditions,omitempty" yaml:"conditions,omitempty"`
}

// QualityGateCondition is a single metric threshold inside a gate.
type QualityGateCondition struct {
	ID     string `json:"id,omitempty" yaml:"id,omitempty"`
	Metric string `json:"metric"       yaml:"metric"`
	Op     string `json:"op"           yaml:"op"`
	Error  string `json:"error"        yaml:"error"`
}

// QualityGateStatus is the evaluated gate state of a project.
type QualityGateStatus struct {
	Status     string                     `json:"status"     yaml:"status"`
	Conditions []QualityGateConditionEval `json:"conditions" yaml:"conditions"`
}

// QualityGateConditionEval is one evaluated condition of a project's gate.
type QualityGateConditionEval struct {
	Status         string `json:"status"         yaml:"status"`
	MetricKey      string `json:"metricKey"      yaml:"metricKey"`
	Comparator     string `json:"comparator"     yaml:"comparator"`
	ErrorThreshold string `json:"errorThreshold" yaml:"errorThreshold"`
	ActualValue    string `json:"actualValue"    yaml:"actualValue"`
}

// Measure is a single metric value on a component.
type Measure struct {
	Metric    string `json:"metric"              yaml:"metric"`
	Value     string `json:"value,omitempty"     yaml:"value,omitempty"`
	BestValue bool   `json:"bestValue,omitempty" yaml:"bestValue,omitempty"`
}

// MeasureHistoryEntry is one metric's value series over time.
type MeasureHistoryEntry struct {
	Metric  string             `json:"metric"  yaml:"metric"`
	History []MeasureDataPoint `json:"history" yaml:"history"`
}

// MeasureDataPoint is a dated metric value.
type MeasureDataPoint struct {
	Date  time.Time `json:"date"  yaml:"date"`
	Value string    `json:"value" yaml:"value"`
}

// SourceLine is one annotated line of a file.
type SourceLine struct {
	Line      int    `json:"line"               yaml:"line"`
	Code      string `json:"code"               yaml:"code"`
	SCMAuthor string `json:"scmAuthor,omitempty" yaml:"scmAuthor,omitempty"`
	SCMDate   string `json:"scmDate,omitempty"  yaml:"scmDate,omitempty"`
}

// SCMLine is per-line blame information. The endpoint encodes each entry
// as a positional array of line number, author, datetime and revision.
type SCMLine struct {
	Line     int    `json:"line"     yaml:"line"`
	Author   string `json:"author"   yaml:"author"`
	Date     string `json:"date"     yaml:"date"`
	Revision string `json:"revision" yaml:"revision"`
}

// UnmarshalJSON decodes the positional array form. Entries shorter than
// four fields leave the remaining fields zero.
func (l *SCMLine) UnmarshalJSON(data []byte) error {
	var fields []json.RawMessage

	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("parsing scm entry: %w", err)
	}

	targets := []any{&l.Line, &l.Author, &l.Date, &l.Revision}

	for i, raw := range fields {
		if i >= len(targets) {
			break
		}

		if err := json.Unmarshal(raw, targets[i]); err != nil {
			return fmt.Errorf("parsing scm entry field %d: %w", i, err)
		}
	}

	return nil
}

// User is a platform user account.
type User struct {
	Login       string   `json:"login"                 yaml:"login"`
	Name        string   `json:"name"                  yaml:"name"`
	Email       string   `json:"email,omitempty"       yaml:"email,omitempty"`
	Active      bool     `json:"active"                yaml:"active"`
	Local       bool     `json:"local"                 yaml:"local"`
	Groups      []string `json:"groups,omitempty"      yaml:"groups,omitempty"`
	TokensCount int      `json:"tokensCount,omitempty" yaml:"tokensCount,omitempty"`
}

// Webhook is a registered delivery target for analysis events.
type Webhook struct {
	Key    string `json:"key"              yaml:"key"`
	Name   string `json:"name"             yaml:"name"`
	URL    string `json:"url"              yaml:"url"`
	Secret string `json:"secret,omitempty" yaml:"secret,omitempty"`
}

// WebhookDelivery is one attempted webhook delivery.
type WebhookDelivery struct {
	ID           string    `json:"id"             yaml:"id"`
	ComponentKey string    `json:"componentKey"   yaml:"componentKey"`
	CeTaskID     string    `json:"ceTaskId"       yaml:"ceTaskId"`
	Name         string    `json:"name"           yaml:"name"`
	URL          string    `json:"url"            yaml:"url"`
	At           time.Time `json:"at"             yaml:"at"`
	Success      bool      `json:"success"        yaml:"success"`
	HTTPStatus   int       `json:"httpStatus"     yaml:"httpStatus"`
	DurationMs   int       `json:"durationMs"     yaml:"durationMs"`
}

// AuditEvent is one entry of the instance audit trail.
type AuditEvent struct {
	ID       string    `json:"id"       yaml:"id"`
	Category string    `json:"category" yaml:"category"`
	Action   string    `json:"action"   yaml:"action"`
	Author   string    `json:"author"   yaml:"author"`
	Date     time.Time `json:"date"     yaml:"date"`
	Details  string    `json:"details,omitempty" yaml:"details,omitempty"`
}

// SystemStatus is the instance lifecycle state.
type SystemStatus struct {
	ID      string `json:"id"      yaml:"id"`
	Version string `json:"version" yaml:"version"`
	Status  string `json:"status"  yaml:"status"`
}

// SystemHealth is the aggregated health report.
type SystemHealth struct {
	Health string              `json:"health" yaml:"health"`
	Causes []SystemHealthCause `json:"causes,omitempty" yaml:"causes,omitempty"`
}

// SystemHealthCause explains a non-green health state.
type SystemHealthCause struct {
	Message string `json:"message" yaml:"message"`
}
