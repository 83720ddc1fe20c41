package ledger

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"platerental/models"
)

var ymdPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = validate.RegisterValidation("ymd", func(fl validator.FieldLevel) bool {
			s := fl.Field().String()
			if !ymdPattern.MatchString(s) {
				return false
			}
			_, err := ParseDate(s)
			return err == nil
		})
	})
	return validate
}

// ValidateBill checks a bill and its adjustment rows before anything is
// written. Money fields are decimals and so always finite.
func ValidateBill(bill *models.Bill, extras []models.ExtraCost, discounts []models.Discount, payments []models.Payment) error {
	if bill == nil {
		return &ValidationError{Field: "bill", Reason: "is required"}
	}
	if err := structErr(validatorInstance().Struct(bill), ""); err != nil {
		return err
	}
	from, _ := ParseDate(bill.FromDate)
	to, _ := ParseDate(bill.ToDate)
	if to.Before(from) {
		return &ValidationError{Field: "to_date", Reason: "is before from_date"}
	}
	if err := checkMoney("daily_rent", bill.DailyRent); err != nil {
		return err
	}
	return validateAdjustments(extras, discounts, payments)
}

// ValidateBillingContext checks the inputs of a bill summary: piece counts
// are never negative and money has at most two decimal places.
func ValidateBillingContext(bc BillingContext) error {
	for i, n := range bc.Pieces {
		if n < 0 {
			return &ValidationError{Field: fmt.Sprintf("pieces[%d]", i), Reason: "must not be negative"}
		}
	}
	if err := checkMoney("daily_rent", bc.DailyRent); err != nil {
		return err
	}
	return validateAdjustments(bc.ExtraCosts, bc.Discounts, bc.Payments)
}

func validateAdjustments(extras []models.ExtraCost, discounts []models.Discount, payments []models.Payment) error {
	for i := range extras {
		prefix := fmt.Sprintf("extra_costs[%d].", i)
		if err := structErr(validatorInstance().Struct(&extras[i]), prefix); err != nil {
			return err
		}
		if err := checkMoney(prefix+"rate", extras[i].Rate); err != nil {
			return err
		}
		if err := checkMoney(prefix+"total", extras[i].Total); err != nil {
			return err
		}
	}
	for i := range discounts {
		prefix := fmt.Sprintf("discounts[%d].", i)
		if err := structErr(validatorInstance().Struct(&discounts[i]), prefix); err != nil {
			return err
		}
		if err := checkMoney(prefix+"rate", discounts[i].Rate); err != nil {
			return err
		}
		if err := checkMoney(prefix+"total", discounts[i].Total); err != nil {
			return err
		}
	}
	for i := range payments {
		prefix := fmt.Sprintf("payments[%d].", i)
		if err := structErr(validatorInstance().Struct(&payments[i]), prefix); err != nil {
			return err
		}
		if err := checkMoney(prefix+"amount", payments[i].Amount); err != nil {
			return err
		}
	}
	return nil
}

// checkMoney rejects negative amounts and amounts finer than paise; stored
// money columns hold two decimal places.
func checkMoney(field string, d decimal.Decimal) error {
	if d.IsNegative() {
		return &ValidationError{Field: field, Reason: "must not be negative"}
	}
	if !d.Equal(d.Round(2)) {
		return &ValidationError{Field: field, Reason: "must have at most 2 decimal places"}
	}
	return nil
}

func structErr(err error, prefix string) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &ValidationError{Field: strings.TrimSuffix(prefix, "."), Reason: err.Error()}
	}
	fe := verrs[0]
	return &ValidationError{Field: prefix + fe.Field(), Reason: reasonFor(fe)}
}

func reasonFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "ymd":
		return "must be a date in YYYY-MM-DD format"
	case "gt", "gte":
		return "must be " + fe.Tag() + " " + fe.Param()
	default:
		return "failed " + fe.Tag() + " check"
	}
}
