package dto

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var safeStringRe = regexp.MustCompile(`^[a-zA-Z0-9_\-\.]+$`)

// transferAmountRe matches plain decimals with at most 2 fractional digits,
// the precision the ledger stores.
var transferAmountRe = regexp.MustCompile(`^\d{1,15}(\.\d{1,2})?$`)

// MinTransferAmount is the smallest accepted source amount.
var MinTransferAmount = decimal.NewFromInt(1)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("safe_id", validateSafeID)
		_ = v.RegisterValidation("min_amount", validateMinAmount)
	}
}

// validateSafeID allows alphanumeric, underscore, dash, and dot.
func validateSafeID(fl validator.FieldLevel) bool {
	return safeStringRe.MatchString(fl.Field().String())
}

// validateMinAmount accepts plain decimal strings of at least
// MinTransferAmount with no more than 2 decimal places.
func validateMinAmount(fl validator.FieldLevel) bool {
	return amountAtLeastMin(fl.Field().String())
}

func amountAtLeastMin(raw string) bool {
	raw = strings.TrimSpace(raw)
	if !transferAmountRe.MatchString(raw) {
		return false
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return false
	}
	return d.GreaterThanOrEqual(MinTransferAmount)
}

// SanitizeStruct trims whitespace from every exported string field
// (including *string and []string) of a struct pointer. Values are stored
// as entered; escaping belongs to whatever renders them.
func SanitizeStruct(v interface{}) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Struct {
		return
	}
	sanitizeFields(rv.Elem())
}

func sanitizeFields(rv reflect.Value) {
	for i := 0; i < rv.NumField(); i++ {
		f := rv.Field(i)
		if !f.CanSet() {
			continue
		}
		switch f.Kind() {
		case reflect.String:
			f.SetString(sanitize(f.String()))
		case reflect.Ptr:
			if f.IsNil() {
				continue
			}
			elem := f.Elem()
			if elem.Kind() == reflect.String {
				elem.SetString(sanitize(elem.String()))
			}
		case reflect.Slice:
			if f.Type().Elem().Kind() != reflect.String {
				continue
			}
			for j := 0; j < f.Len(); j++ {
				f.Index(j).SetString(sanitize(f.Index(j).String()))
			}
		}
	}
}

func sanitize(s string) string {
	return strings.TrimSpace(s)
}
