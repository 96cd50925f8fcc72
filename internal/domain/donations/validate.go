package donations

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	maxTitleLength = 255

	// money columns are decimal(12,2)
	moneyDecimalPlaces = 2
	moneyMaxDigits     = 12
)

var moneyLimit = decimal.New(1, moneyMaxDigits-moneyDecimalPlaces)

// moneyProblem reports why d does not fit a money column, "" when it does.
func moneyProblem(d decimal.Decimal) string {
	if d.Exponent() < -moneyDecimalPlaces && !d.Equal(d.Round(moneyDecimalPlaces)) {
		return "Ensure that there are no more than 2 decimal places."
	}
	if d.Abs().GreaterThanOrEqual(moneyLimit) {
		return "Ensure that there are no more than 12 digits in total."
	}
	return ""
}

// CollectFields holds the writable collect attributes. Nil means "not
// provided", which is only legal for partial updates.
type CollectFields struct {
	Title       *string
	Occasion    *string
	Description *string
	GoalAmount  *decimal.Decimal
	EndDatetime *time.Time
}

// ValidateCollect checks the provided fields. With partial=false every
// required field must be present.
func ValidateCollect(in CollectFields, now time.Time, partial bool) error {
	verr := NewValidationError()

	if in.Title == nil {
		if !partial {
			verr.Add("title", "This field is required.")
		}
	} else if t := strings.TrimSpace(*in.Title); t == "" {
		verr.Add("title", "This field may not be blank.")
	} else if len([]rune(t)) > maxTitleLength {
		verr.Add("title", "Ensure this field has no more than 255 characters.")
	}

	if in.Occasion == nil {
		if !partial {
			verr.Add("occasion", "This field is required.")
		}
	} else if !Occasion(*in.Occasion).Valid() {
		verr.Add("occasion", `"`+*in.Occasion+`" is not a valid choice.`)
	}

	if in.Description == nil && !partial {
		verr.Add("description", "This field is required.")
	}

	if in.GoalAmount != nil {
		if in.GoalAmount.IsNegative() {
			verr.Add("goal_amount", "Value 'goal_amount' must not be negative.")
		} else if msg := moneyProblem(*in.GoalAmount); msg != "" {
			verr.Add("goal_amount", msg)
		}
	}

	if in.EndDatetime == nil {
		if !partial {
			verr.Add("end_datetime", "This field is required.")
		}
	} else if !in.EndDatetime.After(now) {
		verr.Add("end_datetime", "End date cannot be in the past.")
	}

	return verr.Err()
}

func ValidateAmount(amount *decimal.Decimal) error {
	verr := NewValidationError()
	switch {
	case amount == nil:
		verr.Add("amount", "This field is required.")
	case !amount.IsPositive():
		verr.Add("amount", "Amount must be greater than zero.")
	default:
		if msg := moneyProblem(*amount); msg != "" {
			verr.Add("amount", msg)
		}
	}
	return verr.Err()
}

func ValidateCommentText(text string) error {
	verr := NewValidationError()
	if strings.TrimSpace(text) == "" {
		verr.Add("text", "This field may not be blank.")
	}
	return verr.Err()
}
