// Package tax implements GST compliance checks and Indian tax calculations
// for SMEs: GSTIN validation, CGST/SGST/IGST splits, filing compliance,
// late fees and TDS withholding.
package tax

import (
	"regexp"
	"strconv"
	"strings"
)

// GSTIN format: 2-digit state code, 10-character PAN, entity number,
// the literal 'Z', and a check digit.
var gstinPattern = regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z]{1}[1-9A-Z]{1}Z[0-9A-Z]{1}$`)

// GSTINValidation reports every violated constraint, not just the first.
type GSTINValidation struct {
	GSTIN     string   `json:"gstin"`
	IsValid   bool     `json:"is_valid"`
	Errors    []string `json:"errors"`
	StateCode string   `json:"state_code,omitempty"`
	PAN       string   `json:"pan,omitempty"`
}

// ValidateGSTIN checks length, pattern and state-code range of a GSTIN.
func ValidateGSTIN(gstin string) GSTINValidation {
	gstin = strings.ToUpper(strings.TrimSpace(gstin))
	errors := []string{}

	if len(gstin) != 15 {
		errors = append(errors, "GSTIN must be exactly 15 characters")
	}

	if !gstinPattern.MatchString(gstin) {
		errors = append(errors, "Invalid GSTIN format")
	}

	if len(gstin) >= 2 {
		if stateCode, err := strconv.Atoi(gstin[:2]); err != nil {
			errors = append(errors, "State code must be numeric")
		} else if stateCode < 1 || stateCode > 37 {
			errors = append(errors, "Invalid state code")
		}
	}

	v := GSTINValidation{
		GSTIN:   gstin,
		IsValid: len(errors) == 0,
		Errors:  errors,
	}
	if len(gstin) >= 2 {
		v.StateCode = gstin[:2]
	}
	if len(gstin) >= 12 {
		v.PAN = gstin[2:12]
	}
	return v
}
