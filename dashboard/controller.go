package dashboard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/getinkd/artist-dashboard-service/models"
	"github.com/sirupsen/logrus"
)

var (
	ErrInvalidField    = errors.New("invalid field")
	ErrInvalidInput    = errors.New("invalid input")
	ErrIndexOutOfRange = errors.New("portfolio index out of range")
	ErrNoArtist        = errors.New("no authenticated artist")
)

// Scalar fields accepted by SetField.
const (
	FieldName          = "name"
	FieldBio           = "bio"
	FieldLocation      = "location"
	FieldBookingStatus = "bookingStatus"
	FieldBookedUntil   = "bookedUntil"
	FieldBookingLink   = "bookingLink"
)

// HomePath is where visitors without an artist record are sent.
const HomePath = "/"

// Controller keeps a draft of the artist's profile in sync with user intents.
// Profile fields and styles are staged in the draft until CommitProfile;
// portfolio edits and visibility refreshes commit straight to the store.
// The authoritative record is only ever changed by replacing it whole.
type Controller struct {
	store     Store
	notifier  Notifier
	navigator Navigator
	now       func() time.Time

	draft models.DraftProfile
}

func NewController(store Store, opts ...Option) *Controller {
	c := &Controller{
		store:     store,
		notifier:  logNotifier{},
		navigator: logNavigator{},
		now:       time.Now,
		draft:     models.DraftProfile{Styles: []string{}},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load reads the current user from the store and initializes the draft from
// it. Visitors who are not artists are redirected home.
func (c *Controller) Load(ctx context.Context) error {
	record, err := c.store.CurrentUser(ctx)
	if err != nil {
		return err
	}
	if record == nil || !record.IsArtist {
		logrus.Warn("No artist record present, redirecting")
		c.navigator.Redirect(HomePath)
		return ErrNoArtist
	}
	c.Initialize(*record)
	return nil
}

func (c *Controller) Initialize(record models.UserRecord) {
	c.draft = draftFromRecord(record)
}

// OnRecordChanged must be called by the caller whenever it observes a new
// authoritative record. Any staged edits are discarded.
func (c *Controller) OnRecordChanged(record models.UserRecord) {
	logrus.WithField("userId", record.ID).Debug("Record changed, resetting draft")
	c.Initialize(record)
}

// Draft returns a snapshot of the staged profile.
func (c *Controller) Draft() models.DraftProfile {
	return c.draft.Clone()
}

func (c *Controller) SetField(name string, value interface{}) error {
	if name == FieldBookingStatus {
		b, ok := value.(bool)
		if !ok {
			return fmt.Errorf("%w: %s expects a bool, got %T", ErrInvalidField, name, value)
		}
		c.draft.BookingStatus = b
		return nil
	}

	var target *string
	switch name {
	case FieldName:
		target = &c.draft.Name
	case FieldBio:
		target = &c.draft.Bio
	case FieldLocation:
		target = &c.draft.Location
	case FieldBookedUntil:
		target = &c.draft.BookedUntil
	case FieldBookingLink:
		target = &c.draft.BookingLink
	default:
		return fmt.Errorf("%w: %q", ErrInvalidField, name)
	}

	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("%w: %s expects a string, got %T", ErrInvalidField, name, value)
	}
	*target = s
	return nil
}

// AddStyle appends the trimmed candidate unless it is blank or already
// present. Comparison is case-sensitive.
func (c *Controller) AddStyle(candidate string) {
	style := strings.TrimSpace(candidate)
	if style == "" || containsStyle(c.draft.Styles, style) {
		return
	}
	styles := make([]string, 0, len(c.draft.Styles)+1)
	styles = append(styles, c.draft.Styles...)
	c.draft.Styles = append(styles, style)
}

func (c *Controller) RemoveStyle(target string) {
	for i, style := range c.draft.Styles {
		if style != target {
			continue
		}
		styles := make([]string, 0, len(c.draft.Styles)-1)
		styles = append(styles, c.draft.Styles[:i]...)
		c.draft.Styles = append(styles, c.draft.Styles[i+1:]...)
		return
	}
}

// CommitProfile merges the draft into a copy of the current record and
// writes it to the store. Empty names and bios are allowed.
func (c *Controller) CommitProfile(ctx context.Context) (models.UserRecord, error) {
	current, err := c.current(ctx)
	if err != nil {
		return models.UserRecord{}, err
	}
	merged := mergeDraft(current, c.draft)
	return c.commit(ctx, merged, "Profile updated!", "Your profile has been successfully updated.")
}

// AddPortfolioItem commits immediately; it does not go through the draft.
func (c *Controller) AddPortfolioItem(ctx context.Context, image, caption string) (models.UserRecord, error) {
	if strings.TrimSpace(image) == "" {
		return models.UserRecord{}, fmt.Errorf("%w: image URL is required", ErrInvalidInput)
	}
	current, err := c.current(ctx)
	if err != nil {
		return models.UserRecord{}, err
	}

	next := current.Clone()
	portfolio := make([]models.PortfolioItem, 0, len(current.Portfolio)+1)
	portfolio = append(portfolio, current.Portfolio...)
	next.Portfolio = append(portfolio, models.PortfolioItem{
		Image:       image,
		Caption:     caption,
		CreatedDate: c.now().UTC(),
	})
	return c.commit(ctx, next, "Image added!", "Your portfolio has been updated.")
}

func (c *Controller) RemovePortfolioItem(ctx context.Context, index int) (models.UserRecord, error) {
	current, err := c.current(ctx)
	if err != nil {
		return models.UserRecord{}, err
	}
	if index < 0 || index >= len(current.Portfolio) {
		return models.UserRecord{}, fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, index, len(current.Portfolio))
	}

	next := current.Clone()
	portfolio := make([]models.PortfolioItem, 0, len(current.Portfolio)-1)
	portfolio = append(portfolio, current.Portfolio[:index]...)
	next.Portfolio = append(portfolio, current.Portfolio[index+1:]...)
	return c.commit(ctx, next, "Image removed", "The image has been removed from your portfolio.")
}

// RefreshVisibility bumps lastActive so the artist sorts first in search.
func (c *Controller) RefreshVisibility(ctx context.Context) (models.UserRecord, error) {
	current, err := c.current(ctx)
	if err != nil {
		return models.UserRecord{}, err
	}
	return c.commit(ctx, current.Clone(), "Visibility refreshed!", "Your profile has been moved to the top of search results.")
}

func (c *Controller) current(ctx context.Context) (models.UserRecord, error) {
	record, err := c.store.CurrentUser(ctx)
	if err != nil {
		return models.UserRecord{}, err
	}
	if record == nil {
		return models.UserRecord{}, ErrNoArtist
	}
	return *record, nil
}

// commit stamps lastActive, replaces the record in the store and resets the
// draft from what was written. Store errors are returned as is and leave the
// draft untouched.
func (c *Controller) commit(ctx context.Context, next models.UserRecord, title, description string) (models.UserRecord, error) {
	next.LastActive = c.commitTime(next.LastActive)

	if err := c.store.ReplaceCurrentUser(ctx, next); err != nil {
		logrus.WithError(err).WithField("userId", next.ID).Error("Failed to replace current user")
		return models.UserRecord{}, err
	}

	logrus.WithFields(logrus.Fields{
		"userId":     next.ID,
		"lastActive": next.LastActive.Format(time.RFC3339Nano),
		"portfolio":  len(next.Portfolio),
		"styles":     len(next.Styles),
	}).Info("Committed user record")

	c.Initialize(next)
	c.notifier.Notify(title, description)
	return next.Clone(), nil
}

// commitTime returns the current time, nudged past previous so that
// lastActive strictly increases across commits.
func (c *Controller) commitTime(previous time.Time) time.Time {
	now := c.now().UTC()
	if !now.After(previous) {
		now = previous.UTC().Add(time.Millisecond)
	}
	return now
}
