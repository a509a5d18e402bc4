package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signup struct {
	Name     string  `schema:"name" label:"Name" validate:"required,min=2"`
	Email    string  `schema:"email" label:"Email" validate:"required,email"`
	Password string  `schema:"password" validate:"required,min=6"`
	Years    *int    `schema:"years" label:"Years" validate:"omitempty,gte=0,lte=80"`
	Opens    *string `schema:"opens" label:"Opening time" validate:"omitempty,clocktime"`
}

func TestMessagesFollowFieldOrder(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&signup{Name: "A", Email: "not-an-email"})
	require.Error(t, err)

	assert.Equal(t, []string{
		"Name must be at least 2 characters",
		"Email must be a valid email address",
		"password is required",
	}, v.Messages(err))
}

func TestMessagesForNumbersAndClockTimes(t *testing.T) {
	v := NewValidator()
	years := 120
	opens := "25:00"

	err := v.Validate(&signup{Name: "Ann", Email: "ann@example.com", Password: "secret1", Years: &years, Opens: &opens})
	require.Error(t, err)

	assert.Equal(t, []string{
		"Years must be less than or equal to 80",
		"Opening time must be a valid time (HH:MM)",
	}, v.Messages(err))
}

func TestValidPayloadPasses(t *testing.T) {
	v := NewValidator()
	opens := "09:30:00"

	assert.NoError(t, v.Validate(&signup{Name: "Ann", Email: "ann@example.com", Password: "secret1", Opens: &opens}))
	assert.Nil(t, v.Messages(nil))
}

func TestIsClockTime(t *testing.T) {
	for _, value := range []string{"00:00", "09:30", "23:59", "18:00:00"} {
		assert.True(t, IsClockTime(value), value)
	}
	for _, value := range []string{"", "9:30", "24:00", "12:60", "noon", "12:00:60"} {
		assert.False(t, IsClockTime(value), value)
	}
}

type contact struct {
	Phone string `label:"Phone number" validate:"required,mindigits=10"`
	Since string `label:"Start date" validate:"omitempty,datetime=2006-01-02"`
}

func TestMinDigits(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.Validate(&contact{Phone: "+880 1711-000000"}))

	err := v.Validate(&contact{Phone: "01711", Since: "2020/01/01"})
	require.Error(t, err)
	assert.Equal(t, []string{
		"Phone number must be at least 10 digits",
		"Start date must be a valid date (YYYY-MM-DD)",
	}, v.Messages(err))

	err = v.Validate(&contact{Phone: "call-me-0171100000"})
	require.Error(t, err)
	assert.Equal(t, []string{"Phone number must be at least 10 digits"}, v.Messages(err))
}
