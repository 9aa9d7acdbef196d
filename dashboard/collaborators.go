package dashboard

import (
	"context"
	"time"

	"github.com/getinkd/artist-dashboard-service/models"
	"github.com/sirupsen/logrus"
)

//go:generate mockgen -destination=../mocks/mock_dashboard.go -package=mocks github.com/getinkd/artist-dashboard-service/dashboard Store,Notifier,Navigator

// Store holds the authoritative user record. A nil record with a nil error
// means nobody is signed in.
type Store interface {
	CurrentUser(ctx context.Context) (*models.UserRecord, error)
	ReplaceCurrentUser(ctx context.Context, record models.UserRecord) error
}

// Notifier shows a transient message to the user after a commit.
type Notifier interface {
	Notify(title, description string)
}

type Navigator interface {
	Redirect(path string)
}

type Option func(*Controller)

func WithNotifier(n Notifier) Option {
	return func(c *Controller) { c.notifier = n }
}

func WithNavigator(n Navigator) Option {
	return func(c *Controller) { c.navigator = n }
}

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

type logNotifier struct{}

func (logNotifier) Notify(title, description string) {
	logrus.WithField("description", description).Info(title)
}

type logNavigator struct{}

func (logNavigator) Redirect(path string) {
	logrus.WithField("path", path).Info("Redirect requested")
}
