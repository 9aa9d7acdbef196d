package dashboard

import (
	"fmt"
	"strings"

	"github.com/getinkd/artist-dashboard-service/models"
)

// draftFromRecord copies the editable subset of record. Missing styles become
// an empty list; absent strings and bools are already their zero values.
func draftFromRecord(record models.UserRecord) models.DraftProfile {
	draft := models.DraftProfile{
		Name:          record.Name,
		Bio:           record.Bio,
		Location:      record.Location,
		Styles:        make([]string, 0, len(record.Styles)),
		BookingStatus: record.BookingStatus,
		BookedUntil:   record.BookedUntil,
		BookingLink:   record.BookingLink,
	}
	for _, raw := range record.Styles {
		style := strings.TrimSpace(raw)
		if style == "" || containsStyle(draft.Styles, style) {
			continue
		}
		draft.Styles = append(draft.Styles, style)
	}
	return draft
}

func mergeDraft(current models.UserRecord, draft models.DraftProfile) models.UserRecord {
	merged := current.Clone()
	merged.Name = draft.Name
	merged.Bio = draft.Bio
	merged.Location = draft.Location
	merged.BookingStatus = draft.BookingStatus
	merged.BookedUntil = draft.BookedUntil
	merged.BookingLink = draft.BookingLink

	// Keep a nil list nil so an untouched record round-trips unchanged.
	if len(draft.Styles) > 0 || merged.Styles != nil {
		merged.Styles = make([]string, len(draft.Styles))
		copy(merged.Styles, draft.Styles)
	}
	return merged
}

func containsStyle(styles []string, style string) bool {
	for _, s := range styles {
		if s == style {
			return true
		}
	}
	return false
}

// ProfilePath is the public page of an artist.
func ProfilePath(record models.UserRecord) string {
	return fmt.Sprintf("/artist/%s", record.Username)
}

func Stats(record models.UserRecord) models.DashboardStats {
	return models.DashboardStats{
		Followers:       len(record.Followers),
		PortfolioImages: len(record.Portfolio),
	}
}
