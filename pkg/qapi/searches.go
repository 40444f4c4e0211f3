package qapi

import (
	"fmt"
	"time"
)

// paramDateFormat is the date layout search endpoints accept.
const paramDateFormat = "2006-01-02"

// ProjectSearch searches projects with optional filters.
type ProjectSearch struct {
	*SearchBuilder[Project]
}

// NewProjectSearch wraps an executor in a project search builder.
func NewProjectSearch(exec Executor[Project]) *ProjectSearch {
	return &ProjectSearch{NewSearchBuilder(PageStyleShort, exec)}
}

// Query filters projects whose key or name contains the given text.
func (s *ProjectSearch) Query(q string) *ProjectSearch {
	s.Set("q", q)

	return s
}

// Projects restricts the search to the given project keys.
func (s *ProjectSearch) Projects(keys ...string) *ProjectSearch {
	s.Set("projects", keys)

	return s
}

// AnalyzedBefore keeps only projects last analyzed before the given date.
func (s *ProjectSearch) AnalyzedBefore(t time.Time) *ProjectSearch {
	s.Set("analyzedBefore", t.Format(paramDateFormat))

	return s
}

// ComponentSearch searches components by qualifier and text.
type ComponentSearch struct {
	*SearchBuilder[Component]
}

// NewComponentSearch wraps an executor in a component search builder.
func NewComponentSearch(exec Executor[Component]) *ComponentSearch {
	return &ComponentSearch{NewSearchBuilder(PageStyleShort, exec)}
}

// Query filters components whose key or name contains the given text.
func (s *ComponentSearch) Query(q string) *ComponentSearch {
	s.Set("q", q)

	return s
}

// Qualifiers restricts results to the given component qualifiers.
func (s *ComponentSearch) Qualifiers(qualifiers ...string) *ComponentSearch {
	s.Set("qualifiers", qualifiers)

	return s
}

// Languages restricts results to components of the given languages.
func (s *ComponentSearch) Languages(languages ...string) *ComponentSearch {
	s.Set("languages", languages)

	return s
}

// IssueSearch searches issues with the full filter surface.
type IssueSearch struct {
	*SearchBuilder[Issue]
}

// NewIssueSearch wraps an executor in an issue search builder.
func NewIssueSearch(exec Executor[Issue]) *IssueSearch {
	return &IssueSearch{NewSearchBuilder(PageStyleShort, exec)}
}

// ComponentKeys restricts issues to the given components.
func (s *IssueSearch) ComponentKeys(keys ...string) *IssueSearch {
	s.Set("componentKeys", keys)

	return s
}

// Severities filters by issue severity (INFO, MINOR, MAJOR, CRITICAL,
// BLOCKER).
func (s *IssueSearch) Severities(severities ...string) *IssueSearch {
	s.Set("severities", severities)

	return s
}

// Types filters by issue type (CODE_SMELL, BUG, VULNERABILITY).
func (s *IssueSearch) Types(types ...string) *IssueSearch {
	s.Set("types", types)

	return s
}

// Statuses filters by workflow status.
func (s *IssueSearch) Statuses(statuses ...string) *IssueSearch {
	s.Set("statuses", statuses)

	return s
}

// Resolved filters resolved or unresolved issues.
func (s *IssueSearch) Resolved(resolved bool) *IssueSearch {
	s.Set("resolved", resolved)

	return s
}

// Assignees filters by assignee login.
func (s *IssueSearch) Assignees(logins ...string) *IssueSearch {
	s.Set("assignees", logins)

	return s
}

// Tags filters by issue tag.
func (s *IssueSearch) Tags(tags ...string) *IssueSearch {
	s.Set("tags", tags)

	return s
}

// Rules filters by rule key.
func (s *IssueSearch) Rules(keys ...string) *IssueSearch {
	s.Set("rules", keys)

	return s
}

// CreatedAfter keeps only issues created after the given date.
func (s *IssueSearch) CreatedAfter(t time.Time) *IssueSearch {
	s.Set("createdAfter", t.Format(paramDateFormat))

	return s
}

// HotspotSearch searches security hotspots. The endpoint accepts either a
// project scope or an explicit hotspot key list, never both; the setters
// enforce that at call time.
type HotspotSearch struct {
	*SearchBuilder[Hotspot]
}

// NewHotspotSearch wraps an executor in a hotspot search builder.
func NewHotspotSearch(exec Executor[Hotspot]) *HotspotSearch {
	return &HotspotSearch{NewSearchBuilder(PageStyleShort, exec)}
}

// ProjectKey scopes the search to one project. It conflicts with Hotspots;
// the violation is recorded immediately and surfaces before any fetch.
func (s *HotspotSearch) ProjectKey(key string) *HotspotSearch {
	if s.Has("hotspots") {
		s.Fail(fmt.Errorf("%w: projectKey cannot be combined with hotspots", ErrConflictingParameters))

		return s
	}

	s.Set("projectKey", key)

	return s
}

// Hotspots restricts the search to explicit hotspot keys. It conflicts with
// ProjectKey.
func (s *HotspotSearch) Hotspots(keys ...string) *HotspotSearch {
	if s.Has("projectKey") {
		s.Fail(fmt.Errorf("%w: hotspots cannot be combined with projectKey", ErrConflictingParameters))

		return s
	}

	s.Set("hotspots", keys)

	return s
}

// Status filters by review status (TO_REVIEW, REVIEWED).
func (s *HotspotSearch) Status(status string) *HotspotSearch {
	s.Set("status", status)

	return s
}

// OnlyMine keeps only hotspots assigned to the authenticated user.
func (s *HotspotSearch) OnlyMine(mine bool) *HotspotSearch {
	s.Set("onlyMine", mine)

	return s
}

// RuleSearch searches rule definitions.
type RuleSearch struct {
	*SearchBuilder[Rule]
}

// NewRuleSearch wraps an executor in a rule search builder.
func NewRuleSearch(exec Executor[Rule]) *RuleSearch {
	return &RuleSearch{NewSearchBuilder(PageStyleShort, exec)}
}

// Query filters rules whose name or key contains the given text.
func (s *RuleSearch) Query(q string) *RuleSearch {
	s.Set("q", q)

	return s
}

// Languages filters by rule language.
func (s *RuleSearch) Languages(languages ...string) *RuleSearch {
	s.Set("languages", languages)

	return s
}

// Severities filters by default severity.
func (s *RuleSearch) Severities(severities ...string) *RuleSearch {
	s.Set("severities", severities)

	return s
}

// Repositories filters by rule repository key.
func (s *RuleSearch) Repositories(repos ...string) *RuleSearch {
	s.Set("repositories", repos)

	return s
}

// Types filters by rule type.
func (s *RuleSearch) Types(types ...string) *RuleSearch {
	s.Set("types", types)

	return s
}

// ComponentTreeSearch walks a component tree with measures attached.
type ComponentTreeSearch struct {
	*SearchBuilder[Component]
}

// NewComponentTreeSearch wraps an executor in a component tree builder.
func NewComponentTreeSearch(exec Executor[Component]) *ComponentTreeSearch {
	return &ComponentTreeSearch{NewSearchBuilder(PageStyleShort, exec)}
}

// MetricKeys selects the metrics to attach to each component.
func (s *ComponentTreeSearch) MetricKeys(keys ...string) *ComponentTreeSearch {
	s.Set("metricKeys", keys)

	return s
}

// Strategy selects the traversal strategy (all, children, leaves).
func (s *ComponentTreeSearch) Strategy(strategy string) *ComponentTreeSearch {
	s.Set("strategy", strategy)

	return s
}

// Qualifiers restricts the tree to the given component qualifiers.
func (s *ComponentTreeSearch) Qualifiers(qualifiers ...string) *ComponentTreeSearch {
	s.Set("qualifiers", qualifiers)

	return s
}

// UserSearch searches user accounts.
type UserSearch struct {
	*SearchBuilder[User]
}

// NewUserSearch wraps an executor in a user search builder.
func NewUserSearch(exec Executor[User]) *UserSearch {
	return &UserSearch{NewSearchBuilder(PageStyleShort, exec)}
}

// Query filters users whose login, name, or email contains the given text.
func (s *UserSearch) Query(q string) *UserSearch {
	s.Set("q", q)

	return s
}

// WebhookDeliverySearch pages through webhook delivery attempts.
type WebhookDeliverySearch struct {
	*SearchBuilder[WebhookDelivery]
}

// NewWebhookDeliverySearch wraps an executor in a delivery search builder.
func NewWebhookDeliverySearch(exec Executor[WebhookDelivery]) *WebhookDeliverySearch {
	return &WebhookDeliverySearch{NewSearchBuilder(PageStyleShort, exec)}
}

// ComponentKey restricts deliveries to one project.
func (s *WebhookDeliverySearch) ComponentKey(key string) *WebhookDeliverySearch {
	s.Set("componentKey", key)

	return s
}

// Webhook restricts deliveries to one webhook key.
func (s *WebhookDeliverySearch) Webhook(key string) *WebhookDeliverySearch {
	s.Set("webhook", key)

	return s
}

// AuditLogSearch pages through the audit trail. This endpoint generation
// uses the page/pageSize parameter names.
type AuditLogSearch struct {
	*SearchBuilder[AuditEvent]
}

// NewAuditLogSearch wraps an executor in an audit log search builder.
func NewAuditLogSearch(exec Executor[AuditEvent]) *AuditLogSearch {
	return &AuditLogSearch{NewSearchBuilder(PageStyleLong, exec)}
}

// Category filters by audit category (USER, PROJECT, PERMISSIONS, ...).
func (s *AuditLogSearch) Category(category string) *AuditLogSearch {
	s.Set("category", category)

	return s
}

// From keeps only events recorded at or after the given instant.
func (s *AuditLogSearch) From(t time.Time) *AuditLogSearch {
	s.Set("from", t.Format(time.RFC3339))

	return s
}

// To keeps only events recorded before the given instant.
func (s *AuditLogSearch) To(t time.Time) *AuditLogSearch {
	s.Set("to", t.Format(time.RFC3339))

	return s
}
