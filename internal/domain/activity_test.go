package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContactActivityValidate(t *testing.T) {
	valid := &ContactActivity{
		ContactID: "CNT-01HZXJ5Y7N8Q2R4T6V8X0A2C4E",
		Type:      ActivityTypeForm,
		Title:     "Submitted Contact Us",
	}
	assert.NoError(t, valid.Validate())

	for _, typ := range []ActivityType{ActivityTypeEmail, ActivityTypeSMS, ActivityTypeCall, ActivityTypeMeeting, ActivityTypeNote, ActivityTypeAutomation} {
		a := *valid
		a.Type = typ
		assert.NoError(t, a.Validate(), string(typ))
	}

	missingContact := *valid
	missingContact.ContactID = ""
	assert.Error(t, missingContact.Validate())

	missingTitle := *valid
	missingTitle.Title = ""
	assert.Error(t, missingTitle.Validate())

	badType := *valid
	badType.Type = "carrier-pigeon"
	assert.Error(t, badType.Validate())
}
