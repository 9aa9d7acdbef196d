package models

import "time"

// PortfolioItem is one image in an artist's portfolio. CreatedDate is set
// when the item is added and never changes afterwards.
type PortfolioItem struct {
	Image       string    `json:"image"`
	Caption     string    `json:"caption,omitempty"`
	CreatedDate time.Time `json:"createdDate"`
}

// UserRecord is the authoritative user object. Only the profile subset is
// editable from the dashboard; every other field is carried through commits
// untouched.
type UserRecord struct {
	ID           string          `json:"id"`
	Username     string          `json:"username"`
	Email        string          `json:"email,omitempty"`
	IsArtist     bool            `json:"isArtist"`
	ProfilePhoto string          `json:"profilePhoto,omitempty"`
	Followers    []string        `json:"followers,omitempty"`
	Name         string          `json:"name"`
	Location     string          `json:"location,omitempty"`
	Bio          string          `json:"bio,omitempty"`
	Styles       []string        `json:"styles,omitempty"`
	Portfolio    []PortfolioItem `json:"portfolio,omitempty"`

	BookingStatus bool   `json:"bookingStatus"`
	BookedUntil   string `json:"bookedUntil,omitempty"`
	BookingLink   string `json:"bookingLink,omitempty"`

	LastActive time.Time `json:"lastActive"`
}

// Clone returns a deep copy so the caller can never alias the slices of
// another record value.
func (u UserRecord) Clone() UserRecord {
	out := u
	out.Followers = cloneStrings(u.Followers)
	out.Styles = cloneStrings(u.Styles)
	if u.Portfolio != nil {
		out.Portfolio = make([]PortfolioItem, len(u.Portfolio))
		copy(out.Portfolio, u.Portfolio)
	}
	return out
}

// DraftProfile is the editable subset of a UserRecord held while an artist
// edits their profile.
type DraftProfile struct {
	Name          string   `json:"name"`
	Bio           string   `json:"bio"`
	Location      string   `json:"location"`
	Styles        []string `json:"styles"`
	BookingStatus bool     `json:"bookingStatus"`
	BookedUntil   string   `json:"bookedUntil"`
	BookingLink   string   `json:"bookingLink"`
}

func (d DraftProfile) Clone() DraftProfile {
	out := d
	out.Styles = cloneStrings(d.Styles)
	if out.Styles == nil {
		out.Styles = []string{}
	}
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

const (
	ActionGetDraft            = "getDraft"
	ActionUpdateProfile       = "updateProfile"
	ActionAddPortfolioItem    = "addPortfolioItem"
	ActionRemovePortfolioItem = "removePortfolioItem"
	ActionRefreshVisibility   = "refreshVisibility"
)

// ActionRequest is the Lambda payload sent by the dashboard front end. Only
// the fields relevant to Action are read.
type ActionRequest struct {
	UserID  string        `json:"userId"`
	Action  string        `json:"action"`
	Profile *DraftProfile `json:"profile,omitempty"`
	Image   string        `json:"image,omitempty"`
	Caption string        `json:"caption,omitempty"`
	Index   *int          `json:"index,omitempty"`
}

type Notification struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type DashboardStats struct {
	Followers       int `json:"followers"`
	PortfolioImages int `json:"portfolioImages"`
}

type ActionResponse struct {
	Message       string          `json:"message"`
	Success       bool            `json:"success"`
	Redirect      string          `json:"redirect,omitempty"`
	ProfilePath   string          `json:"profilePath,omitempty"`
	Notifications []Notification  `json:"notifications,omitempty"`
	User          *UserRecord     `json:"user,omitempty"`
	Draft         *DraftProfile   `json:"draft,omitempty"`
	Stats         *DashboardStats `json:"stats,omitempty"`
}
