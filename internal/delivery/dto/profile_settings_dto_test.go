package dto

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSettingsRequest(t *testing.T) {
	sections := map[string]Section{
		"all":            SectionAll,
		"basic":          SectionBasic,
		"experience":     SectionExperience,
		"education":      SectionEducation,
		"awards":         SectionAwards,
		"insurance":      SectionInsurance,
		"clinics":        SectionClinics,
		"business_hours": SectionBusinessHours,
	}
	for value, want := range sections {
		req, err := NewSettingsRequest(value)
		require.NoError(t, err)
		assert.Equal(t, want, req.Section())
	}

	for _, bad := range []string{"", "Basic", "bogus"} {
		_, err := NewSettingsRequest(bad)
		assert.ErrorIs(t, err, ErrInvalidSection)
	}
}

func TestParseWeeklyHours(t *testing.T) {
	form := url.Values{
		"monday_start":      {"09:00"},
		"monday_end":        {" 17:00 "},
		"monday_available":  {"1"},
		"tuesday_available": {"0"},
		"sunday_start":      {""},
	}

	hours := ParseWeeklyHours(form)
	require.Len(t, hours, 7)

	assert.Equal(t, "Monday", hours[0].Day)
	assert.Equal(t, "09:00", *hours[0].Start)
	assert.Equal(t, "17:00", *hours[0].End)
	assert.True(t, hours[0].Available)

	assert.False(t, hours[1].Available)
	assert.Equal(t, "Sunday", hours[6].Day)
	assert.Nil(t, hours[6].Start)
}

func TestChecked(t *testing.T) {
	for _, v := range []string{"1", "on", "true", "yes", "anything"} {
		assert.True(t, Checked(v), v)
	}
	for _, v := range []string{"0", "false", "OFF", "no"} {
		assert.False(t, Checked(v), v)
	}
	assert.False(t, IsChecked(url.Values{}, "missing"))
}

func TestUploadSlotsAndWeeklyHours(t *testing.T) {
	req := &SaveAllRequest{}
	slots := UploadSlots(req)
	assert.Len(t, slots, 4)

	*slots["nid_card"] = &FileUpload{FileName: "nid.PDF"}
	require.NotNil(t, req.NIDCard)
	assert.Equal(t, "pdf", req.NIDCard.Ext())

	AttachWeeklyHours(req, url.Values{})
	assert.Len(t, req.Hours, 7)

	assert.Nil(t, UploadSlots(&AddEducationRequest{}))
}

func TestApplyDefaults(t *testing.T) {
	req := &AddExperienceRequest{}
	ApplyDefaults(req)
	assert.Equal(t, "Full Time", req.EmploymentType)

	req = &AddExperienceRequest{EmploymentType: "Part Time"}
	ApplyDefaults(req)
	assert.Equal(t, "Part Time", req.EmploymentType)
}

func TestParseDateAndDecimal(t *testing.T) {
	date, err := ParseDate(nil)
	require.NoError(t, err)
	assert.Nil(t, date)

	value := "2020-02-29"
	date, err = ParseDate(&value)
	require.NoError(t, err)
	assert.Equal(t, 29, date.Day())

	bad := "29/02/2020"
	_, err = ParseDate(&bad)
	assert.Error(t, err)

	fee := 499.999
	assert.Equal(t, "500", Decimal(&fee).String())
	assert.True(t, Decimal(nil).IsZero())
}
