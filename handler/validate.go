package handler

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/getinkd/artist-dashboard-service/models"
	"github.com/sirupsen/logrus"
)

var (
	errValidation    = errors.New("validation failed")
	errUnknownAction = errors.New("unknown action")
)

var urlRegex = regexp.MustCompile(`^(https?://)?([a-zA-Z0-9.-]+)(:[0-9]+)?(/.*)?$`)

const bookedUntilLayout = "2006-01-02"

func validateRequest(request models.ActionRequest) error {
	if request.UserID == "" {
		return fmt.Errorf("%w: userId is required", errValidation)
	}
	switch request.Action {
	case models.ActionGetDraft, models.ActionAddPortfolioItem, models.ActionRefreshVisibility:
		return nil
	case models.ActionRemovePortfolioItem:
		if request.Index == nil {
			return fmt.Errorf("%w: index is required for %s", errValidation, request.Action)
		}
		return nil
	case models.ActionUpdateProfile:
		if request.Profile == nil {
			return fmt.Errorf("%w: profile is required for %s", errValidation, request.Action)
		}
		return nil
	}
	return fmt.Errorf("%w: %q", errUnknownAction, request.Action)
}

// validateProfile checks the optional booking fields of a submitted form.
// Empty values are always accepted.
func validateProfile(profile models.DraftProfile) error {
	validations := map[string]func() bool{
		"bookedUntil must be a date (YYYY-MM-DD)": func() bool {
			if profile.BookedUntil == "" {
				return false
			}
			_, err := time.Parse(bookedUntilLayout, profile.BookedUntil)
			return err != nil
		},
		"invalid bookingLink URL": func() bool {
			return profile.BookingLink != "" && !isValidURL(profile.BookingLink)
		},
	}

	var validationErrors []string
	for errMsg, check := range validations {
		if check() {
			validationErrors = append(validationErrors, errMsg)
		}
	}

	if len(validationErrors) > 0 {
		sort.Strings(validationErrors)
		logrus.WithField("errors", validationErrors).Warn("Profile validation failed")
		return fmt.Errorf("%w: %s", errValidation, strings.Join(validationErrors, "; "))
	}
	return nil
}

func validateImage(image string) error {
	trimmed := strings.TrimSpace(image)
	if trimmed == "" {
		return fmt.Errorf("%w: image URL is required", errValidation)
	}
	if !isValidURL(trimmed) {
		return fmt.Errorf("%w: invalid image URL", errValidation)
	}
	return nil
}

func isValidURL(url string) bool {
	return urlRegex.MatchString(url)
}
