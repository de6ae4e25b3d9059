package tax

import (
	"github.com/shopspring/decimal"
)

// TDS rates by payment type, in percent. Salary withholding depends on the
// payee's slab and is handled as zero here.
var tdsRates = map[string]int{
	"salary":             0,
	"professional_fees":  10,
	"rent":               10,
	"contractor":         1,
	"contractor_company": 2,
	"interest":           10,
}

const (
	defaultTDSRate = 10
	noPANTDSRate   = 20
)

// TDSResult is the withholding calculation for one payment.
type TDSResult struct {
	GrossAmount  float64 `json:"gross_amount"`
	PaymentType  string  `json:"payment_type"`
	TDSRate      int     `json:"tds_rate"`
	TDSAmount    float64 `json:"tds_amount"`
	NetPayable   float64 `json:"net_payable"`
	PANAvailable bool    `json:"pan_available"`
}

// CalculateTDS computes the tax to deduct at source. Unmapped payment types
// default to 10%; a missing PAN forces the 20% penal rate.
func CalculateTDS(amount decimal.Decimal, paymentType string, panAvailable bool) TDSResult {
	rate, ok := tdsRates[paymentType]
	if !ok {
		rate = defaultTDSRate
	}
	if !panAvailable {
		rate = noPANTDSRate
	}

	tds := amount.Mul(decimal.NewFromInt(int64(rate))).Div(decimal.NewFromInt(100))

	return TDSResult{
		GrossAmount:  amount.InexactFloat64(),
		PaymentType:  paymentType,
		TDSRate:      rate,
		TDSAmount:    tds.InexactFloat64(),
		NetPayable:   amount.Sub(tds).InexactFloat64(),
		PANAvailable: panAvailable,
	}
}
