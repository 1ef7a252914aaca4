package http

import (
	"errors"
	"strings"
	"testing"
)

func containsFieldMsg(list []FieldError, field, substr string) bool {
	for _, e := range list {
		if e.Field == field && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}

func TestHex32Validation(t *testing.T) {
	type P struct {
		UserID string `validate:"hex32"`
	}
	cv := NewValidator()

	// valid: 32-char lowercase hex
	ok := P{UserID: strings.Repeat("a", 32)}
	if err := cv.Validate(ok); err != nil {
		t.Fatalf("expected valid hex32, got err: %v", err)
	}

	// invalid samples
	for _, s := range []string{
		"",                                  // empty
		strings.Repeat("A", 32),             // uppercase
		"deadbeef",                          // too short
		strings.Repeat("g", 32),             // non-hex char
		"3f9a6a1b3d544fbe8b3a6b3e8d6b2c8",   // 31 chars
		"3f9a6a1b3d544fbe8b3a6b3e8d6b2c88x", // 33 with extra
	} {
		bad := P{UserID: s}
		err := cv.Validate(bad)
		if err == nil {
			t.Fatalf("expected error for %q", s)
		}
		fe := ToFieldErrors(err)
		if !containsFieldMsg(fe, "UserID", "32-char lowercase hex") {
			t.Fatalf("expected hex32 message for %q, got: %+v", s, fe)
		}
	}
}

func TestMoneyValidation(t *testing.T) {
	type P struct {
		Fee string `validate:"money"`
	}
	cv := NewValidator()

	for _, v := range []string{"0", "10", "12.50", "0.01", "1000000.99"} {
		if err := cv.Validate(P{Fee: v}); err != nil {
			t.Fatalf("expected money OK for %q, got %v", v, err)
		}
	}
	for _, v := range []string{"", "abc", "-1", "-0.01", "12,50"} {
		err := cv.Validate(P{Fee: v})
		if err == nil {
			t.Fatalf("expected money error for %q", v)
		}
		fe := ToFieldErrors(err)
		if !containsFieldMsg(fe, "Fee", "non-negative decimal amount") {
			t.Fatalf("expected money message for %q, got %+v", v, fe)
		}
	}
}

func TestRequiredAndBoundsMapping(t *testing.T) {
	type P struct {
		Name string `validate:"required"`
		Qty  int    `validate:"gte=1"`
		Days int    `validate:"lte=90"`
		Mode string `validate:"oneof=borrowable consumable"`
	}
	cv := NewValidator()

	// Intentionally violate all
	err := cv.Validate(P{
		Name: "",         // required
		Qty:  0,          // gte=1
		Days: 120,        // lte=90
		Mode: "leasable", // oneof
	})
	if err == nil {
		t.Fatalf("expected validation errors")
	}
	fe := ToFieldErrors(err)

	if !containsFieldMsg(fe, "Name", "is required") {
		t.Fatalf("missing 'is required' for Name: %+v", fe)
	}
	if !containsFieldMsg(fe, "Qty", "greater than or equal to 1") {
		t.Fatalf("missing gte message for Qty: %+v", fe)
	}
	if !containsFieldMsg(fe, "Days", "less than or equal to 90") {
		t.Fatalf("missing lte message for Days: %+v", fe)
	}
	if !containsFieldMsg(fe, "Mode", "must be one of: borrowable consumable") {
		t.Fatalf("missing oneof message for Mode: %+v", fe)
	}
}

func TestDatetimeMapping(t *testing.T) {
	type P struct {
		PickupDate string `validate:"datetime=2006-01-02"`
	}
	cv := NewValidator()

	if err := cv.Validate(P{PickupDate: "2024-01-15"}); err != nil {
		t.Fatalf("expected valid date, got %v", err)
	}
	err := cv.Validate(P{PickupDate: "15/01/2024"})
	if err == nil {
		t.Fatalf("expected datetime error")
	}
	fe := ToFieldErrors(err)
	if !containsFieldMsg(fe, "PickupDate", "must match format 2006-01-02") {
		t.Fatalf("missing datetime message: %+v", fe)
	}
}

func TestToFieldErrors_NonValidation(t *testing.T) {
	err := errors.New("boom")
	fe := ToFieldErrors(err)
	if len(fe) != 1 {
		t.Fatalf("expected 1 field error, got %d", len(fe))
	}
	if fe[0].Field != "_" || fe[0].Message != "boom" {
		t.Fatalf("unexpected mapping: %+v", fe[0])
	}
}
