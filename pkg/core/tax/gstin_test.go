package tax_test

import (
	"strings"
	"testing"

	"finpulse/pkg/core/tax"
)

func TestValidateGSTIN_Valid(t *testing.T) {
	v := tax.ValidateGSTIN("27AAPFU0939F1ZV")

	if !v.IsValid {
		t.Fatalf("expected valid, got errors: %v", v.Errors)
	}
	if v.StateCode != "27" {
		t.Errorf("expected state code 27, got %s", v.StateCode)
	}
	if v.PAN != "AAPFU0939F" {
		t.Errorf("expected PAN AAPFU0939F, got %s", v.PAN)
	}
}

func TestValidateGSTIN_NormalizesInput(t *testing.T) {
	v := tax.ValidateGSTIN("  27aapfu0939f1zv ")
	if !v.IsValid {
		t.Fatalf("expected valid after normalization, got errors: %v", v.Errors)
	}
	if v.GSTIN != "27AAPFU0939F1ZV" {
		t.Errorf("expected uppercased GSTIN, got %s", v.GSTIN)
	}
}

func TestValidateGSTIN_TooShort(t *testing.T) {
	v := tax.ValidateGSTIN("27AAPFU0939F1Z")

	if v.IsValid {
		t.Fatal("14-character GSTIN must be invalid")
	}

	foundLength := false
	for _, e := range v.Errors {
		if strings.Contains(e, "15 characters") {
			foundLength = true
		}
	}
	if !foundLength {
		t.Errorf("expected length error, got %v", v.Errors)
	}
	// Slices are still extracted for diagnostics.
	if v.StateCode != "27" {
		t.Errorf("expected state code extracted, got %q", v.StateCode)
	}
}

func TestValidateGSTIN_ReportsAllViolations(t *testing.T) {
	// Bad state code, bad format and bad length at once.
	v := tax.ValidateGSTIN("99abc")

	if v.IsValid {
		t.Fatal("expected invalid")
	}
	if len(v.Errors) != 3 {
		t.Errorf("expected 3 errors, got %v", v.Errors)
	}
}

func TestValidateGSTIN_StateCodeRange(t *testing.T) {
	v := tax.ValidateGSTIN("00AAPFU0939F1ZV")
	if v.IsValid {
		t.Fatal("state code 00 must be invalid")
	}

	found := false
	for _, e := range v.Errors {
		if e == "Invalid state code" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected state code error, got %v", v.Errors)
	}
}
