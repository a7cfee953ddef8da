package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/batoolapp/lenses-backend/pkg/errors"
)

func validForm() Form {
	return Form{
		CustomerName: "أحمد علي",
		Phone:        "701234567",
		Governorate:  "صنعاء",
		City:         "حي السبعين",
		Receipt: &ReceiptFile{
			FileName:    "receipt.jpg",
			ContentType: "image/jpeg",
			Data:        []byte{0xff, 0xd8},
		},
	}
}

func TestValidateContact_AcceptsValidForm(t *testing.T) {
	form := validForm()
	require.NoError(t, ValidateContact(&form))
}

func TestValidateContact_PhonePrefixes(t *testing.T) {
	cases := []struct {
		phone string
		ok    bool
	}{
		{"701234567", true},
		{"711234567", true},
		{"731234567", true},
		{"771234567", true},
		{"781234567", true},
		{"0701234567", false}, // leading zero
		{"70123456", false},   // too short
		{"7012345678", false}, // too long
		{"751234567", false},  // unknown prefix
		{"abc123456", false},
	}

	for _, tc := range cases {
		form := validForm()
		form.Phone = tc.phone
		err := ValidateContact(&form)
		if tc.ok {
			assert.NoError(t, err, "phone %s", tc.phone)
		} else {
			assert.Error(t, err, "phone %s", tc.phone)
		}
	}
}

func TestValidateContact_RejectsUnknownGovernorate(t *testing.T) {
	form := validForm()
	form.Governorate = "الرياض"

	err := ValidateContact(&form)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestValidateContact_RequiresAllFields(t *testing.T) {
	form := validForm()
	form.CustomerName = ""
	form.City = ""

	err := ValidateContact(&form)
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	details, ok := typed.Details().(map[string]string)
	require.True(t, ok)
	assert.Contains(t, details, "customerName")
	assert.Contains(t, details, "city")
}

func TestValidateFull_RequiresReceipt(t *testing.T) {
	form := validForm()
	form.Receipt = nil

	err := ValidateFull(&form)
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestValidateFull_AcceptsCompleteForm(t *testing.T) {
	form := validForm()
	require.NoError(t, ValidateFull(&form))
}
