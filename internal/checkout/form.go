package checkout

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/batoolapp/lenses-backend/pkg/enums"
	pkgerrors "github.com/batoolapp/lenses-backend/pkg/errors"
)

// phonePattern accepts 9-digit Yemeni mobile numbers with a known carrier
// prefix.
var phonePattern = regexp.MustCompile(`^(70|71|73|77|78)\d{7}$`)

// ReceiptFile carries the uploaded payment-receipt image through submission.
type ReceiptFile struct {
	FileName    string
	ContentType string
	Data        []byte
}

// Form holds the checkout fields collected across steps. Receipt presence is
// validated separately because it only becomes mandatory at final submit.
type Form struct {
	CustomerName string       `json:"customerName" validate:"required"`
	Phone        string       `json:"phone" validate:"required,yemeni_phone"`
	Governorate  string       `json:"governorate" validate:"required,governorate"`
	City         string       `json:"city" validate:"required"`
	Receipt      *ReceiptFile `json:"-" validate:"-"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	mustRegister(v, "yemeni_phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	mustRegister(v, "governorate", func(fl validator.FieldLevel) bool {
		return enums.Governorate(fl.Field().String()).IsValid()
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

// ValidateContact checks the step-two fields only; the receipt may still be
// missing at this point.
func ValidateContact(form *Form) error {
	if form == nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "checkout form is required")
	}
	err := validate.StructPartial(form, "CustomerName", "Phone", "Governorate", "City")
	if err != nil {
		return formatValidationErrors(err)
	}
	return nil
}

// ValidateFull checks every field including receipt presence. The form must
// pass this before submission side effects begin.
func ValidateFull(form *Form) error {
	if err := ValidateContact(form); err != nil {
		return err
	}
	if form.Receipt == nil || len(form.Receipt.Data) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "payment receipt image is required").
			WithDetails(map[string]string{"paymentReceipt": "is required"})
	}
	return nil
}

func formatValidationErrors(err error) *pkgerrors.Error {
	if errs, ok := err.(validator.ValidationErrors); ok {
		details := map[string]string{}
		for _, fieldErr := range errs {
			details[fieldErr.Field()] = validationMessage(fieldErr)
		}
		return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(details)
	}
	return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "validation failed")
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "yemeni_phone":
		return "must be 9 digits starting with 70, 71, 73, 77 or 78"
	case "governorate":
		return "must be a known governorate"
	}
	return "is invalid"
}
