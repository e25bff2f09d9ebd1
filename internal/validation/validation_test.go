package validation

import (
	"testing"

	"sk-barangay-service/internal/error/code"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsContactNo(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"09171234567", true},
		{"+63 (917) 123-4567", true},
		{"0917-abc", false},
		{"123456789012345678901", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsContactNo(tt.in), tt.in)
	}
}

func TestIsEmail(t *testing.T) {
	assert.True(t, IsEmail("juan@example.com"))
	assert.False(t, IsEmail("juan@"))
	assert.False(t, IsEmail(""))
}

func TestIsHexColorAndTime(t *testing.T) {
	assert.True(t, IsHexColor("#dc2626"))
	assert.True(t, IsHexColor("#fff"))
	assert.False(t, IsHexColor("red"))

	assert.True(t, IsTime("08:30"))
	assert.True(t, IsTime("23:59:59"))
	assert.False(t, IsTime("25:00"))
}

func TestStructRules(t *testing.T) {
	type payload struct {
		Contact string `validate:"omitempty,contact_no"`
		Date    string `validate:"required,ymd"`
		Time    string `validate:"required,hhmm"`
	}
	v := Validator()
	require.NoError(t, v.Struct(payload{Contact: "0917 123 4567", Date: "2024-02-29", Time: "09:00"}))
	require.Error(t, v.Struct(payload{Date: "2023-02-29", Time: "09:00"}))
	require.Error(t, v.Struct(payload{Contact: "x", Date: "2024-01-01", Time: "09:00"}))
}

func TestErrorsJoin(t *testing.T) {
	var errs Errors
	require.NoError(t, errs.Err())

	errs.Check(false, "First name is required")
	errs.Check(true, "never")
	errs.Add("Last name is required")

	err := errs.Err()
	require.Error(t, err)
	assert.True(t, code.Is(err, code.ErrValidation))
	assert.Equal(t, "First name is required, Last name is required", err.Error())
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("1990-01-01T00:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, 1990, d.Year())

	_, err = ParseDate("01/01/1990")
	assert.Error(t, err)
}
