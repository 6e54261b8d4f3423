package clean_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inslake/inslake/pkg/clean"
)

func TestText(t *testing.T) {
	tests := []struct {
		msg string
		in  any
		res any
	}{
		{"title-cases", "john SMITH", "John Smith"},
		{"trims", "  maria lopez  ", "Maria Lopez"},
		{"empty", "", nil},
		{"blank", "   ", nil},
		{"nil", nil, nil},
		{"non-string", 42, nil},
	}

	for _, v := range tests {
		assert.Equal(t, v.res, clean.Text(v.in), v.msg)
	}
}

func TestEmail(t *testing.T) {
	tests := []struct {
		msg string
		in  any
		res any
	}{
		{"valid", "john.smith@example.com", "john.smith@example.com"},
		{"trimmed but verbatim", "  John.Smith@Example.COM ",
			"John.Smith@Example.COM"},
		{"missing at", "john.example.com", nil},
		{"missing tld", "john@example", nil},
		{"short tld", "john@example.c", nil},
		{"empty", "", nil},
		{"nil", nil, nil},
	}

	for _, v := range tests {
		assert.Equal(t, v.res, clean.Email(v.in), v.msg)
	}
}

func TestPhone(t *testing.T) {
	tests := []struct {
		msg string
		in  any
		res any
	}{
		{"formatted", "+1 (555) 123-4567", "+1555123-4567"},
		{"dots", "555.123.4567", "5551234567"},
		{"letters only", "call me", nil},
		{"empty", "", nil},
		{"nil", nil, nil},
	}

	for _, v := range tests {
		assert.Equal(t, v.res, clean.Phone(v.in), v.msg)
	}
}

func TestIBAN(t *testing.T) {
	assert.Equal(t, "ES9121000418450200051332",
		clean.IBAN(" es9121000418450200051332 "))
	assert.Nil(t, clean.IBAN("  "))
	assert.Nil(t, clean.IBAN(nil))
}

func TestPlate(t *testing.T) {
	tests := []struct {
		msg string
		in  any
		res any
	}{
		{"spaces and case", "abc 123", "ABC123"},
		{"dashes", "ab-12-cd", "AB12CD"},
		{"already clean", "XYZ789", "XYZ789"},
		{"symbols only", "--- ", nil},
		{"nil", nil, nil},
	}

	for _, v := range tests {
		assert.Equal(t, v.res, clean.Plate(v.in), v.msg)
	}
}

func TestYear(t *testing.T) {
	current := int64(time.Now().Year())

	tests := []struct {
		msg string
		in  any
		res any
	}{
		{"int64", int64(2015), int64(2015)},
		{"float from csv", 1999.0, int64(1999)},
		{"current year", current, current},
		{"too old", int64(1899), nil},
		{"future", current + 1, nil},
		{"text", "2015", nil},
		{"nil", nil, nil},
	}

	for _, v := range tests {
		assert.Equal(t, v.res, clean.Year(v.in), v.msg)
	}
}

func TestAmount(t *testing.T) {
	tests := []struct {
		msg string
		in  any
		res any
	}{
		{"rounds half up", 150.005, 150.01},
		{"rounds down", 99.994, 99.99},
		{"keeps two decimals", 1234.5, 1234.5},
		{"integer input", int64(200), 200.0},
		{"zero", 0.0, nil},
		{"negative", -50.0, nil},
		{"text", "100", nil},
		{"nil", nil, nil},
	}

	for _, v := range tests {
		assert.Equal(t, v.res, clean.Amount(v.in), v.msg)
	}
}

func TestPastDate(t *testing.T) {
	res := clean.PastDate("2020-03-15")
	require.NotNil(t, res)
	ts, ok := res.(time.Time)
	require.True(t, ok)
	assert.Equal(t, 2020, ts.Year())
	assert.Equal(t, time.March, ts.Month())
	assert.Equal(t, 15, ts.Day())

	tests := []struct {
		msg string
		in  any
		nil bool
	}{
		{"datetime layout", "2019-07-01 10:30:00", false},
		{"slash layout", "2018/12/31", false},
		{"time value", time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC), false},
		{"future", "2030-01-01", true},
		{"garbage", "not a date", true},
		{"empty", "", true},
		{"nil", nil, true},
	}

	for _, v := range tests {
		res := clean.PastDate(v.in)
		if v.nil {
			assert.Nil(t, res, v.msg)
		} else {
			assert.NotNil(t, res, v.msg)
		}
	}
}
