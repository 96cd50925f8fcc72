package donations

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func strPtr(s string) *string { return &s }

func validCollect(now time.Time) CollectFields {
	goal := decimal.NewFromInt(1000)
	end := now.Add(7 * 24 * time.Hour)
	return CollectFields{
		Title:       strPtr("Birthday"),
		Occasion:    strPtr("birthday"),
		Description: strPtr("party"),
		GoalAmount:  &goal,
		EndDatetime: &end,
	}
}

func fieldsOf(t *testing.T, err error) map[string][]string {
	t.Helper()
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	return verr.Fields
}

func TestValidateCollect(t *testing.T) {
	now := time.Now()

	if err := ValidateCollect(validCollect(now), now, false); err != nil {
		t.Fatalf("valid collect rejected: %v", err)
	}

	neg := validCollect(now)
	g := decimal.NewFromInt(-1)
	neg.GoalAmount = &g
	if f := fieldsOf(t, ValidateCollect(neg, now, false)); len(f["goal_amount"]) == 0 {
		t.Fatalf("negative goal accepted: %v", f)
	}

	past := validCollect(now)
	p := now.Add(-time.Minute)
	past.EndDatetime = &p
	if f := fieldsOf(t, ValidateCollect(past, now, false)); len(f["end_datetime"]) == 0 {
		t.Fatalf("past end accepted: %v", f)
	}

	exact := validCollect(now)
	exact.EndDatetime = &now
	if err := ValidateCollect(exact, now, false); err == nil {
		t.Fatal("end_datetime equal to now must be rejected")
	}

	noGoal := validCollect(now)
	noGoal.GoalAmount = nil
	if err := ValidateCollect(noGoal, now, false); err != nil {
		t.Fatalf("goal is optional: %v", err)
	}

	zero := validCollect(now)
	z := decimal.Zero
	zero.GoalAmount = &z
	if err := ValidateCollect(zero, now, false); err != nil {
		t.Fatalf("zero goal is allowed: %v", err)
	}

	bad := validCollect(now)
	bad.Occasion = strPtr("funeral")
	if f := fieldsOf(t, ValidateCollect(bad, now, false)); len(f["occasion"]) == 0 {
		t.Fatalf("bad occasion accepted: %v", f)
	}
}

func TestValidateCollectPartial(t *testing.T) {
	now := time.Now()

	if err := ValidateCollect(CollectFields{}, now, true); err != nil {
		t.Fatalf("empty patch should be valid: %v", err)
	}
	f := fieldsOf(t, ValidateCollect(CollectFields{}, now, false))
	for _, k := range []string{"title", "occasion", "description", "end_datetime"} {
		if len(f[k]) == 0 {
			t.Errorf("missing required error for %s", k)
		}
	}
}

func TestValidateAmount(t *testing.T) {
	for _, s := range []string{"0", "-5", "-0.01"} {
		a := decimal.RequireFromString(s)
		if ValidateAmount(&a) == nil {
			t.Errorf("amount %s accepted", s)
		}
	}
	if ValidateAmount(nil) == nil {
		t.Error("missing amount accepted")
	}
	ok := decimal.RequireFromString("0.01")
	if err := ValidateAmount(&ok); err != nil {
		t.Errorf("0.01 rejected: %v", err)
	}
}

func TestValidationErrorMessage(t *testing.T) {
	verr := NewValidationError()
	if verr.Err() != nil {
		t.Fatal("empty error must be nil")
	}
	verr.Add("b", "two")
	verr.Add("a", "one")
	if got := verr.Error(); got != "validation failed: a: one, b: two" {
		t.Fatalf("got %q", got)
	}
}

func TestMoneyScaleAndDigits(t *testing.T) {
	now := time.Now()
	tests := []struct {
		value string
		ok    bool
	}{
		{"0.01", true},
		{"10.50", true},
		{"10.500", true},
		{"9999999999.99", true},
		{"0.001", false},
		{"0.004", false},
		{"12.345", false},
		{"10000000000", false},
		{"12345678901234.5", false},
	}
	for _, tt := range tests {
		d := decimal.RequireFromString(tt.value)

		if err := ValidateAmount(&d); (err == nil) != tt.ok {
			t.Errorf("ValidateAmount(%s) err = %v, want ok=%v", tt.value, err, tt.ok)
		}

		in := validCollect(now)
		in.GoalAmount = &d
		err := ValidateCollect(in, now, false)
		if (err == nil) != tt.ok {
			t.Errorf("goal_amount %s err = %v, want ok=%v", tt.value, err, tt.ok)
		}
		if !tt.ok && err != nil && len(fieldsOf(t, err)["goal_amount"]) == 0 {
			t.Errorf("goal_amount %s rejected without a goal_amount message", tt.value)
		}
	}
}
