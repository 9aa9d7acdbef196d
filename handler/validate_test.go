package handler

import (
	"testing"

	"github.com/getinkd/artist-dashboard-service/models"
	"github.com/stretchr/testify/assert"
)

func TestValidateProfile(t *testing.T) {
	testCases := []struct {
		name        string
		profile     models.DraftProfile
		expectError bool
	}{
		{name: "Empty booking fields", profile: models.DraftProfile{}},
		{name: "Valid booking fields", profile: models.DraftProfile{BookedUntil: "2026-12-31", BookingLink: "https://book.example.com/me"}},
		{name: "Inert booking fields are still checked", profile: models.DraftProfile{BookingStatus: false, BookedUntil: "31/12/2026"}, expectError: true},
		{name: "Bad booking link", profile: models.DraftProfile{BookingLink: "book me please"}, expectError: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := validateProfile(tc.profile)
			if tc.expectError {
				assert.ErrorIs(t, err, errValidation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateImage(t *testing.T) {
	assert.NoError(t, validateImage("https://img.example.com/koi.jpg"))
	assert.NoError(t, validateImage("img.example.com/koi.jpg"))
	assert.ErrorIs(t, validateImage(""), errValidation)
	assert.ErrorIs(t, validateImage("   "), errValidation)
	assert.ErrorIs(t, validateImage("not an image url"), errValidation)
}
