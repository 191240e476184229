package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func futureDate(days int) string {
	return time.Now().UTC().AddDate(0, 0, days).Format(DateLayout)
}

func TestSearchCriteriaValidate(t *testing.T) {
	valid := SearchCriteria{
		Location: "Colombo",
		CheckIn:  futureDate(1),
		CheckOut: futureDate(4),
		Guests:   2,
	}

	t.Run("valid criteria pass", func(t *testing.T) {
		c := valid
		assert.NoError(t, c.Validate())
	})

	t.Run("missing location", func(t *testing.T) {
		c := valid
		c.Location = ""
		err := c.Validate()
		require.Error(t, err)
		assert.Equal(t, "Please enter a location", err.Error())
	})

	t.Run("missing check-in", func(t *testing.T) {
		c := valid
		c.CheckIn = ""
		err := c.Validate()
		require.Error(t, err)
		assert.Equal(t, "Please select check-in date", err.Error())
	})

	t.Run("zero guests", func(t *testing.T) {
		c := valid
		c.Guests = 0
		err := c.Validate()
		require.Error(t, err)
		assert.Equal(t, "At least 1 guest is required", err.Error())
	})

	t.Run("too many guests", func(t *testing.T) {
		c := valid
		c.Guests = 11
		err := c.Validate()
		require.Error(t, err)
		assert.Equal(t, "Maximum 10 guests allowed", err.Error())
	})

	t.Run("ten guests allowed", func(t *testing.T) {
		c := valid
		c.Guests = 10
		assert.NoError(t, c.Validate())
	})
}

func TestValidateStayDates(t *testing.T) {
	t.Run("check-out equal to check-in", func(t *testing.T) {
		err := ValidateStayDates(futureDate(2), futureDate(2))
		require.Error(t, err)
		assert.Equal(t, "Check-out date must be after check-in date", err.Error())
	})

	t.Run("check-out before check-in", func(t *testing.T) {
		err := ValidateStayDates(futureDate(5), futureDate(2))
		require.Error(t, err)
		assert.Equal(t, "Check-out date must be after check-in date", err.Error())
	})

	t.Run("check-in in the past", func(t *testing.T) {
		err := ValidateStayDates(futureDate(-1), futureDate(3))
		require.Error(t, err)
		assert.Equal(t, "Check-in date cannot be in the past", err.Error())
	})

	t.Run("check-in today is allowed", func(t *testing.T) {
		assert.NoError(t, ValidateStayDates(futureDate(0), futureDate(2)))
	})

	t.Run("malformed dates", func(t *testing.T) {
		assert.Error(t, ValidateStayDates("09/01/2026", futureDate(2)))
		assert.Error(t, ValidateStayDates(futureDate(1), "tomorrow"))
	})
}
