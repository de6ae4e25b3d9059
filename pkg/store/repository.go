package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"finpulse/pkg/models"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

// Repository handles database operations for users and financial periods.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// CreateUser inserts a new account and returns it with its id.
func (r *Repository) CreateUser(ctx context.Context, u *models.User) (*models.User, error) {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO users (email, hashed_password, company_name, industry, years_in_business)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, is_active, created_at
	`, u.Email, u.HashedPassword, u.CompanyName, u.Industry, u.YearsInBusiness).
		Scan(&u.ID, &u.IsActive, &u.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("inserting user: %w", err)
	}
	return u, nil
}

// GetUserByEmail looks up an account by email.
func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getUser(ctx, "email = $1", email)
}

// GetUserByID looks up an account by id.
func (r *Repository) GetUserByID(ctx context.Context, id int) (*models.User, error) {
	return r.getUser(ctx, "id = $1", id)
}

func (r *Repository) getUser(ctx context.Context, where string, arg interface{}) (*models.User, error) {
	var u models.User
	err := r.pool.QueryRow(ctx, `
		SELECT id, email, hashed_password, company_name, industry, years_in_business,
		       is_active, created_at, updated_at
		FROM users WHERE `+where, arg).
		Scan(&u.ID, &u.Email, &u.HashedPassword, &u.CompanyName, &u.Industry,
			&u.YearsInBusiness, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying user: %w", err)
	}
	return &u, nil
}

const periodColumns = `
	id, user_id, period_label, period_start, period_end,
	total_revenue, gross_profit, operating_income, net_profit,
	total_expenses, cost_of_goods_sold, operating_expenses,
	operating_cash_flow, investing_cash_flow, financing_cash_flow, net_cash_flow,
	accounts_receivable, accounts_payable, inventory_value,
	current_assets, current_liabilities, total_assets, total_liabilities, total_equity,
	short_term_debt, long_term_debt,
	current_ratio, quick_ratio, gross_margin, operating_margin, net_margin,
	debt_to_equity, roe, roa,
	created_at, updated_at`

// CreatePeriod inserts a financial period snapshot. Periods are immutable
// once stored.
func (r *Repository) CreatePeriod(ctx context.Context, p *models.FinancialPeriod) (*models.FinancialPeriod, error) {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO financial_periods (
			user_id, period_label, period_start, period_end,
			total_revenue, gross_profit, operating_income, net_profit,
			total_expenses, cost_of_goods_sold, operating_expenses,
			operating_cash_flow, investing_cash_flow, financing_cash_flow, net_cash_flow,
			accounts_receivable, accounts_payable, inventory_value,
			current_assets, current_liabilities, total_assets, total_liabilities, total_equity,
			short_term_debt, long_term_debt,
			current_ratio, quick_ratio, gross_margin, operating_margin, net_margin,
			debt_to_equity, roe, roa
		) VALUES (
			$1, $2, $3, $4,
			$5, $6, $7, $8,
			$9, $10, $11,
			$12, $13, $14, $15,
			$16, $17, $18,
			$19, $20, $21, $22, $23,
			$24, $25,
			$26, $27, $28, $29, $30,
			$31, $32, $33
		)
		RETURNING id, created_at
	`,
		p.UserID, p.PeriodLabel, p.PeriodStart, p.PeriodEnd,
		p.TotalRevenue, p.GrossProfit, p.OperatingIncome, p.NetProfit,
		p.TotalExpenses, p.CostOfGoodsSold, p.OperatingExpenses,
		p.OperatingCashFlow, p.InvestingCashFlow, p.FinancingCashFlow, p.NetCashFlow,
		p.AccountsReceivable, p.AccountsPayable, p.InventoryValue,
		p.CurrentAssets, p.CurrentLiabilities, p.TotalAssets, p.TotalLiabilities, p.TotalEquity,
		p.ShortTermDebt, p.LongTermDebt,
		decimalPtr(p.CurrentRatio), decimalPtr(p.QuickRatio), decimalPtr(p.GrossMargin),
		decimalPtr(p.OperatingMargin), decimalPtr(p.NetMargin),
		decimalPtr(p.DebtToEquity), decimalPtr(p.ROE), decimalPtr(p.ROA),
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("inserting financial period: %w", err)
	}
	return p, nil
}

// ListPeriods returns up to limit periods for a user, most recent first.
func (r *Repository) ListPeriods(ctx context.Context, userID, limit int) ([]*models.FinancialPeriod, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+periodColumns+`
		FROM financial_periods
		WHERE user_id = $1
		ORDER BY period_end DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying financial periods: %w", err)
	}
	defer rows.Close()

	var periods []*models.FinancialPeriod
	for rows.Next() {
		p, err := scanPeriod(rows)
		if err != nil {
			return nil, err
		}
		periods = append(periods, p)
	}
	return periods, rows.Err()
}

// LatestPeriod returns the most recent period for a user.
func (r *Repository) LatestPeriod(ctx context.Context, userID int) (*models.FinancialPeriod, error) {
	periods, err := r.ListPeriods(ctx, userID, 1)
	if err != nil {
		return nil, err
	}
	if len(periods) == 0 {
		return nil, ErrNotFound
	}
	return periods[0], nil
}

// Benchmarks returns the statistics table for an industry.
func (r *Repository) Benchmarks(ctx context.Context, industry string) ([]models.IndustryBenchmark, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT industry, metric_name, avg, median, p25, p75, min, max, sample_size
		FROM industry_benchmarks
		WHERE industry = $1
		ORDER BY metric_name
	`, industry)
	if err != nil {
		return nil, fmt.Errorf("querying benchmarks: %w", err)
	}
	defer rows.Close()

	var benchmarks []models.IndustryBenchmark
	for rows.Next() {
		var b models.IndustryBenchmark
		if err := rows.Scan(&b.Industry, &b.MetricName, &b.Avg, &b.Median,
			&b.P25, &b.P75, &b.Min, &b.Max, &b.SampleSize); err != nil {
			return nil, fmt.Errorf("scanning benchmark: %w", err)
		}
		benchmarks = append(benchmarks, b)
	}
	return benchmarks, rows.Err()
}

func scanPeriod(rows pgx.Rows) (*models.FinancialPeriod, error) {
	var p models.FinancialPeriod
	var cr, qr, gm, om, nm, dte, roe, roa decimal.NullDecimal
	err := rows.Scan(
		&p.ID, &p.UserID, &p.PeriodLabel, &p.PeriodStart, &p.PeriodEnd,
		&p.TotalRevenue, &p.GrossProfit, &p.OperatingIncome, &p.NetProfit,
		&p.TotalExpenses, &p.CostOfGoodsSold, &p.OperatingExpenses,
		&p.OperatingCashFlow, &p.InvestingCashFlow, &p.FinancingCashFlow, &p.NetCashFlow,
		&p.AccountsReceivable, &p.AccountsPayable, &p.InventoryValue,
		&p.CurrentAssets, &p.CurrentLiabilities, &p.TotalAssets, &p.TotalLiabilities, &p.TotalEquity,
		&p.ShortTermDebt, &p.LongTermDebt,
		&cr, &qr, &gm, &om, &nm, &dte, &roe, &roa,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("scanning financial period: %w", err)
	}
	p.CurrentRatio = fromNull(cr)
	p.QuickRatio = fromNull(qr)
	p.GrossMargin = fromNull(gm)
	p.OperatingMargin = fromNull(om)
	p.NetMargin = fromNull(nm)
	p.DebtToEquity = fromNull(dte)
	p.ROE = fromNull(roe)
	p.ROA = fromNull(roa)
	return &p, nil
}

func fromNull(d decimal.NullDecimal) *decimal.Decimal {
	if !d.Valid {
		return nil
	}
	return &d.Decimal
}

// decimalPtr converts a *decimal.Decimal to interface{} for insertion,
// mapping nil to SQL NULL.
func decimalPtr(d *decimal.Decimal) interface{} {
	if d == nil {
		return nil
	}
	return *d
}
