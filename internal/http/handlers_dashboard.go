package http

import (
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"financas/internal/billing"
	"financas/internal/core"
)

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	snap, err := s.snapshot(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	expenses := make([]expenseView, 0, len(snap.Expenses))
	for _, e := range snap.Expenses {
		expenses = append(expenses, expenseToView(e))
	}
	incomes := make([]incomeView, 0, len(snap.Incomes))
	for _, i := range snap.Incomes {
		incomes = append(incomes, incomeToView(i))
	}
	cards := make([]cardView, 0, len(snap.Cards))
	for _, c := range snap.Cards {
		cards = append(cards, cardToView(c))
	}

	rules := make([]classificationRuleRequest, 0, len(snap.Config.ClassificationRules))
	for _, rule := range snap.Config.ClassificationRules {
		rules = append(rules, classificationRuleRequest{
			Name:            rule.Name,
			Color:           rule.Color,
			Keywords:        rule.Keywords,
			IncludedInLimit: rule.IncludedInLimit,
		})
	}
	limits := make([]map[string]any, 0, len(snap.Config.MonthlyLimits))
	for _, limit := range snap.Config.MonthlyLimits {
		limits = append(limits, map[string]any{
			"month":  string(limit.Month),
			"amount": money(limit.Amount),
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"expenses": expenses,
		"incomes":  incomes,
		"cards":    cards,
		"config": map[string]any{
			"classification_rules": rules,
			"monthly_limits":       limits,
		},
	})
}

// handleDashboard returns the full monthly summary: totals, limit usage,
// third-party split and pending reimbursements.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	month, err := monthParam(r)
	if err != nil {
		writeBadRequest(w, err)
		return
	}

	snap, err := s.snapshot(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, summaryToView(billing.Summarize(snap, month)))
}

func (s *Server) handleStatements(w http.ResponseWriter, r *http.Request) {
	snap, err := s.snapshot(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	var statements []billing.Statement
	if v := strings.TrimSpace(r.URL.Query().Get("month")); v != "" {
		month := core.Month(v)
		if err := month.Validate(); err != nil {
			writeBadRequest(w, err)
			return
		}
		statements = billing.StatementsDue(snap, month)
	} else {
		statements = billing.Statements(snap)
	}

	views := make([]statementView, 0, len(statements))
	for _, st := range statements {
		views = append(views, statementToView(st))
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleInstallments(w http.ResponseWriter, r *http.Request) {
	snap, err := s.snapshot(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	sched := billing.NewScheduler(snap.Cards)
	installments := sched.All(snap.Expenses)

	// Optional due-month filter.
	if v := strings.TrimSpace(r.URL.Query().Get("month")); v != "" {
		month := core.Month(v)
		if err := month.Validate(); err != nil {
			writeBadRequest(w, err)
			return
		}
		filtered := installments[:0]
		for _, inst := range installments {
			if inst.Due == month {
				filtered = append(filtered, inst)
			}
		}
		installments = filtered
	}

	writeJSON(w, http.StatusOK, installmentsToView(installments))
}

// handleObligations returns the unified list of what the month owes:
// non-card expenses plus card statements due in it.
func (s *Server) handleObligations(w http.ResponseWriter, r *http.Request) {
	month, err := monthParam(r)
	if err != nil {
		writeBadRequest(w, err)
		return
	}

	snap, err := s.snapshot(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	obligations := billing.MonthObligations(snap, month)
	views := make([]obligationView, 0, len(obligations))
	for _, ob := range obligations {
		views = append(views, obligationToView(ob))
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleProjection(w http.ResponseWriter, r *http.Request) {
	from, err := monthParam(r)
	if err != nil {
		writeBadRequest(w, err)
		return
	}

	snap, err := s.snapshot(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	rows := billing.Projection(snap, from)
	views := make([]projectedMonthView, 0, len(rows))
	for _, row := range rows {
		views = append(views, projectedMonthToView(row))
	}
	writeJSON(w, http.StatusOK, views)
}

// handleReimbursements lists third-party installments still waiting for a
// reimbursement income. ?month= restricts to one due month; without it the
// whole history is returned.
func (s *Server) handleReimbursements(w http.ResponseWriter, r *http.Request) {
	snap, err := s.snapshot(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	var month core.Month
	if v := strings.TrimSpace(r.URL.Query().Get("month")); v != "" {
		month = core.Month(v)
		if err := month.Validate(); err != nil {
			writeBadRequest(w, err)
			return
		}
	}

	writeJSON(w, http.StatusOK, installmentsToView(billing.PendingReimbursements(snap, month)))
}

func (s *Server) handleMonths(w http.ResponseWriter, r *http.Request) {
	snap, err := s.snapshot(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	months := billing.AvailableMonths(snap, core.MonthOf(time.Now()))
	out := make([]string, 0, len(months))
	for _, m := range months {
		out = append(out, string(m))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	description := strings.TrimSpace(r.URL.Query().Get("description"))

	snap, err := s.snapshot(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	matches := core.Classify(description, snap.Config.ClassificationRules)
	views := make([]classificationRuleRequest, 0, len(matches))
	for _, rule := range matches {
		views = append(views, classificationRuleRequest{
			Name:            rule.Name,
			Color:           rule.Color,
			Keywords:        rule.Keywords,
			IncludedInLimit: rule.IncludedInLimit,
		})
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"uptime":              time.Since(s.metrics.uptime).String(),
		"total_requests":      atomic.LoadInt64(&s.metrics.totalRequests),
		"cache_hits":          atomic.LoadInt64(&s.metrics.cacheHits),
		"cache_misses":        atomic.LoadInt64(&s.metrics.cacheMisses),
		"rate_limit_hits":     atomic.LoadInt64(&s.metrics.rateLimitHits),
		"suspicious_requests": atomic.LoadInt64(&s.metrics.suspiciousRequests),
	})
}
