package fund

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// validateDraft checks that d carries every field required to materialize a record.
func validateDraft(d Draft) error {
	var errs error
	if err := validate.Struct(d); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		for _, fe := range verrs {
			errs = errors.Join(errs, fmt.Errorf("missing %s", fieldName(fe)))
		}
	}
	if d.Period != nil && strings.TrimSpace(string(*d.Period)) == "" {
		errs = errors.Join(errs, fmt.Errorf("missing month"))
	}
	return errs
}

// fieldName maps a validation failure to the json name of the field.
func fieldName(fe validator.FieldError) string {
	switch fe.StructField() {
	case "Period":
		return "month"
	case "Contributors":
		return "contributorNames"
	case "AmountCollected":
		return "amountCollected"
	case "Recipient":
		return "distribution recipient"
	default:
		return fe.Field()
	}
}
