// Package report assembles financial reports: engine outputs plus generated
// narrative, rendered to markdown and HTML.
package report

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yuin/goldmark"

	"finpulse/pkg/core/health"
	"finpulse/pkg/core/insight"
	"finpulse/pkg/core/ratios"
	"finpulse/pkg/models"
)

// Report is a generated financial report.
type Report struct {
	ID          string             `json:"id"`
	Type        string             `json:"type"`
	GeneratedAt time.Time          `json:"generated_at"`
	CompanyName string             `json:"company_name"`
	Period      string             `json:"period"`
	HealthScore models.ScoreResult `json:"health_score"`
	Narrative   *insight.Narrative `json:"narrative"`
	Markdown    string             `json:"markdown"`
	HTML        string             `json:"html"`
}

// Generator builds reports from a period snapshot and the insight service.
type Generator struct {
	insights *insight.Service
	markdown goldmark.Markdown
}

// NewGenerator builds a report generator.
func NewGenerator(insights *insight.Service) *Generator {
	return &Generator{
		insights: insights,
		markdown: goldmark.New(),
	}
}

// Generate assembles a report for the given period. reportType is free-form
// prose steering ("monthly summary", "annual review").
func (g *Generator) Generate(ctx context.Context, profile models.BusinessProfile, p *models.FinancialPeriod, reportType string) (*Report, error) {
	score := health.Score(p)
	narrative := g.insights.ReportNarrative(ctx, p, profile.Industry, reportType)

	md := g.renderMarkdown(profile, p, score, narrative, reportType)

	var buf bytes.Buffer
	if err := g.markdown.Convert([]byte(md), &buf); err != nil {
		return nil, fmt.Errorf("rendering report: %w", err)
	}

	return &Report{
		ID:          uuid.NewString(),
		Type:        reportType,
		GeneratedAt: time.Now().UTC(),
		CompanyName: profile.CompanyName,
		Period:      p.PeriodLabel,
		HealthScore: score,
		Narrative:   narrative,
		Markdown:    md,
		HTML:        buf.String(),
	}, nil
}

func (g *Generator) renderMarkdown(profile models.BusinessProfile, p *models.FinancialPeriod, score models.ScoreResult, n *insight.Narrative, reportType string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s Report: %s\n\n", titleCase(reportType), profile.CompanyName)
	fmt.Fprintf(&b, "Period: %s\n\n", p.PeriodLabel)

	b.WriteString("## Executive Summary\n\n")
	b.WriteString(n.ExecutiveSummary)
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "## Financial Health\n\nScore: **%d/100** (%s)\n\n", score.Score, score.Label)

	b.WriteString("## Key Figures\n\n")
	fmt.Fprintf(&b, "- Total Revenue: %s\n", p.TotalRevenue.StringFixed(2))
	fmt.Fprintf(&b, "- Net Profit: %s\n", p.NetProfit.StringFixed(2))
	fmt.Fprintf(&b, "- Operating Cash Flow: %s\n", p.OperatingCashFlow.StringFixed(2))
	fmt.Fprintf(&b, "- Total Expenses: %s\n", p.TotalExpenses.StringFixed(2))
	b.WriteString("\n")

	set := ratios.Compute(p)
	if set.NetMargin != nil || set.CurrentRatio != nil {
		b.WriteString("## Ratios\n\n")
		if set.CurrentRatio != nil {
			fmt.Fprintf(&b, "- Current Ratio: %s\n", set.CurrentRatio.StringFixed(2))
		}
		if set.NetMargin != nil {
			fmt.Fprintf(&b, "- Net Margin: %s%%\n", set.NetMargin.StringFixed(1))
		}
		if set.DebtToEquity != nil {
			fmt.Fprintf(&b, "- Debt to Equity: %s\n", set.DebtToEquity.StringFixed(2))
		}
		b.WriteString("\n")
	}

	if len(n.KeyFindings) > 0 {
		b.WriteString("## Key Findings\n\n")
		for _, f := range n.KeyFindings {
			fmt.Fprintf(&b, "- %s\n", f)
		}
		b.WriteString("\n")
	}

	if len(n.Recommendations) > 0 {
		b.WriteString("## Recommendations\n\n")
		for _, r := range n.Recommendations {
			fmt.Fprintf(&b, "- %s\n", r)
		}
	}

	return b.String()
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
