package tax

import (
	"fmt"

	"github.com/shopspring/decimal"

	"finpulse/pkg/core/errs"
)

// GST slab rates, in percent.
var slabRates = []int{0, 5, 12, 18, 28}

// GSTBreakdown splits a taxable amount into its GST components. Intrastate
// supplies carry CGST+SGST at half the rate each; interstate supplies carry
// IGST at the full rate.
type GSTBreakdown struct {
	BaseAmount  float64 `json:"base_amount"`
	GSTRate     int     `json:"gst_rate"`
	IGST        float64 `json:"igst"`
	CGST        float64 `json:"cgst"`
	SGST        float64 `json:"sgst"`
	TotalGST    float64 `json:"total_gst"`
	TotalAmount float64 `json:"total_amount"`
	Type        string  `json:"type"` // Interstate | Intrastate
}

// CalculateGST splits the tax for the given slab rate.
func CalculateGST(amount decimal.Decimal, gstRate int, isInterstate bool) (*GSTBreakdown, error) {
	if !validSlabRate(gstRate) {
		return nil, &errs.ValidationError{Problems: []string{
			fmt.Sprintf("invalid GST rate %d: must be one of 0, 5, 12, 18, 28", gstRate),
		}}
	}

	rate := decimal.NewFromInt(int64(gstRate)).Div(decimal.NewFromInt(100))
	gstAmount := amount.Mul(rate)

	b := &GSTBreakdown{
		BaseAmount:  amount.InexactFloat64(),
		GSTRate:     gstRate,
		TotalGST:    gstAmount.InexactFloat64(),
		TotalAmount: amount.Add(gstAmount).InexactFloat64(),
	}

	if isInterstate {
		b.IGST = gstAmount.InexactFloat64()
		b.Type = "Interstate"
	} else {
		half := gstAmount.Div(decimal.NewFromInt(2))
		b.CGST = half.InexactFloat64()
		b.SGST = half.InexactFloat64()
		b.Type = "Intrastate"
	}

	return b, nil
}

func validSlabRate(rate int) bool {
	for _, r := range slabRates {
		if r == rate {
			return true
		}
	}
	return false
}
