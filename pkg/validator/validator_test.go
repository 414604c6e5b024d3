package validator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apnadr/hospital-api/pkg/errors"
)

func TestPhone(t *testing.T) {
	tests := []struct {
		name  string
		value string
		ok    bool
	}{
		{"valid", "9876543210", true},
		{"nine digits", "987654321", false},
		{"eleven digits", "98765432100", false},
		{"letters", "98765432ab", false},
		{"with dashes", "987-654-3210", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Phone("patientPhone", tt.value)
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			appErr, ok := errors.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, errors.ErrValidation, appErr.Code)
			assert.Equal(t, "patientPhone", appErr.Field)
		})
	}
}

func TestEmail(t *testing.T) {
	tests := []struct {
		name  string
		value string
		ok    bool
	}{
		{"empty is optional", "", true},
		{"valid", "patient@example.com", true},
		{"dotted local", "first.last@example.co.in", true},
		{"missing at", "patientexample.com", false},
		{"missing tld", "patient@example", false},
		{"spaces", "pat ient@example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Email("patientEmail", tt.value)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestGender(t *testing.T) {
	for _, g := range []string{"Male", "Female", "Other"} {
		assert.NoError(t, Gender("patientGender", g))
	}
	assert.Error(t, Gender("patientGender", "male"))
	assert.Error(t, Gender("patientGender", ""))
}

func TestFutureDate(t *testing.T) {
	now := time.Date(2025, 6, 15, 23, 30, 0, 0, time.UTC)

	t.Run("today allowed even late in the day", func(t *testing.T) {
		date, err := FutureDate("appointmentDate", "2025-06-15", now)
		require.NoError(t, err)
		assert.Equal(t, 15, date.Day())
	})

	t.Run("tomorrow allowed", func(t *testing.T) {
		_, err := FutureDate("appointmentDate", "2025-06-16", now)
		assert.NoError(t, err)
	})

	t.Run("yesterday rejected", func(t *testing.T) {
		_, err := FutureDate("appointmentDate", "2025-06-14", now)
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.ErrValidation))
	})

	t.Run("garbage rejected", func(t *testing.T) {
		_, err := FutureDate("appointmentDate", "15-06-2025", now)
		assert.Error(t, err)
	})
}

func TestRequired(t *testing.T) {
	assert.NoError(t, Required("patientName", "Asha"))
	assert.Error(t, Required("patientName", ""))
	assert.Error(t, Required("patientName", "   "))
}
