package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"snapbook/internal/apperr"
	"snapbook/internal/domain"
	"snapbook/internal/services"
)

func workingOn(days []string) domain.Photographer {
	return domain.Photographer{ID: "ph-test", Name: "Test", Availability: days}
}

func TestCheckAvailability(t *testing.T) {
	days := []string{"Monday", "Friday", "Saturday", "Sunday"}

	_, err := services.CheckAvailability("2024-06-12", workingOn(days))
	require.Error(t, err)
	assert.Equal(t, "unavailable_day", apperr.CodeOf(err))
	assert.Equal(t, "Photographer is not available on Wednesday. Available days: Monday, Friday, Saturday, Sunday", apperr.Message(err))

	day, err := services.CheckAvailability("2024-06-14", workingOn(days))
	require.NoError(t, err)
	assert.Equal(t, "Friday", day)
}

func TestCheckAvailabilityEdges(t *testing.T) {
	cases := []struct {
		name string
		date string
		days []string
		code string
	}{
		{"malformed", "14/06/2024", []string{"Friday"}, "invalid_date"},
		{"impossible", "2024-02-30", []string{"Friday"}, "invalid_date"},
		{"empty set", "2024-06-14", nil, "unavailable_day"},
		{"order kept", "2024-06-11", []string{"Sunday", "Monday"}, "unavailable_day"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := services.CheckAvailability(tc.date, workingOn(tc.days))
			require.Error(t, err)
			assert.True(t, apperr.IsValidation(err))
			assert.Equal(t, tc.code, apperr.CodeOf(err))
		})
	}

	_, err := services.CheckAvailability("2024-06-11", workingOn([]string{"Sunday", "Monday"}))
	assert.Contains(t, apperr.Message(err), "Available days: Sunday, Monday")

	_, err = services.CheckAvailability("2024-06-14", workingOn(nil))
	assert.Equal(t, "Photographer is not available on Friday. Available days: ", apperr.Message(err))
}

func TestCheckAvailabilityLeapDay(t *testing.T) {
	day, err := services.CheckAvailability("2024-02-29", workingOn([]string{"Thursday"}))
	require.NoError(t, err)
	assert.Equal(t, "Thursday", day)
}
