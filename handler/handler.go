package handler

import (
	"context"
	"errors"
	"strings"

	"github.com/getinkd/artist-dashboard-service/dashboard"
	"github.com/getinkd/artist-dashboard-service/dynamodb"
	"github.com/getinkd/artist-dashboard-service/models"
	"github.com/getinkd/artist-dashboard-service/session"
	"github.com/sirupsen/logrus"
)

// Publisher receives every record accepted by a commit before it is stored.
type Publisher interface {
	Publish(ctx context.Context, record models.UserRecord) error
}

type Handler struct {
	Users     dynamodb.DynamoDBService
	Publisher Publisher
}

func New(users dynamodb.DynamoDBService, publisher Publisher) *Handler {
	return &Handler{Users: users, Publisher: publisher}
}

// HandleRequest loads the artist's record, replays one dashboard intent
// against it and reports the resulting record and draft.
func (h *Handler) HandleRequest(ctx context.Context, request models.ActionRequest) (models.ActionResponse, error) {
	log := logrus.WithFields(logrus.Fields{"userId": request.UserID, "action": request.Action})
	log.Info("Processing dashboard request")

	if err := validateRequest(request); err != nil {
		log.WithError(err).Warn("Request validation failed")
		return models.ActionResponse{Message: err.Error(), Success: false}, nil
	}

	var current *models.UserRecord
	record, err := h.Users.GetUser(ctx, request.UserID)
	switch {
	case errors.Is(err, dynamodb.ErrUserNotFound):
		log.Warn("User record not found")
	case err != nil:
		log.WithError(err).Error("Failed to load user record")
		return models.ActionResponse{Message: "Internal server error", Success: false}, err
	default:
		current = &record
	}

	ui := &shell{}
	store := session.New(current, session.PersisterFunc(h.persist))
	controller := dashboard.NewController(store, dashboard.WithNotifier(ui), dashboard.WithNavigator(ui))

	if err := controller.Load(ctx); err != nil {
		if errors.Is(err, dashboard.ErrNoArtist) {
			return ui.respond(models.ActionResponse{Message: "Artist account required", Success: false}), nil
		}
		log.WithError(err).Error("Failed to load dashboard")
		return models.ActionResponse{Message: "Internal server error", Success: false}, err
	}

	message, err := dispatch(ctx, controller, request)
	if err != nil {
		if isClientError(err) {
			log.WithError(err).Warn("Dashboard action rejected")
			return ui.respond(models.ActionResponse{Message: err.Error(), Success: false}), nil
		}
		log.WithError(err).Error("Dashboard action failed")
		return ui.respond(models.ActionResponse{Message: "Failed to save dashboard changes", Success: false}), err
	}

	user, err := store.CurrentUser(ctx)
	if err != nil {
		return models.ActionResponse{Message: "Internal server error", Success: false}, err
	}
	draft := controller.Draft()
	stats := dashboard.Stats(*user)

	log.Info("Dashboard request completed successfully")
	return ui.respond(models.ActionResponse{
		Message:     message,
		Success:     true,
		ProfilePath: dashboard.ProfilePath(*user),
		User:        user,
		Draft:       &draft,
		Stats:       &stats,
	}), nil
}

// persist publishes first so a rejected publish leaves the stored record
// untouched.
func (h *Handler) persist(ctx context.Context, record models.UserRecord) error {
	if h.Publisher != nil {
		if err := h.Publisher.Publish(ctx, record); err != nil {
			return err
		}
	}
	return h.Users.PutUser(ctx, record)
}

func dispatch(ctx context.Context, c *dashboard.Controller, request models.ActionRequest) (string, error) {
	switch request.Action {
	case models.ActionGetDraft:
		return "Dashboard loaded", nil

	case models.ActionUpdateProfile:
		if err := validateProfile(*request.Profile); err != nil {
			return "", err
		}
		if err := applyProfile(c, *request.Profile); err != nil {
			return "", err
		}
		if _, err := c.CommitProfile(ctx); err != nil {
			return "", err
		}
		return "Profile updated successfully", nil

	case models.ActionAddPortfolioItem:
		if err := validateImage(request.Image); err != nil {
			return "", err
		}
		if _, err := c.AddPortfolioItem(ctx, request.Image, request.Caption); err != nil {
			return "", err
		}
		return "Portfolio image added", nil

	case models.ActionRemovePortfolioItem:
		if _, err := c.RemovePortfolioItem(ctx, *request.Index); err != nil {
			return "", err
		}
		return "Portfolio image removed", nil

	case models.ActionRefreshVisibility:
		if _, err := c.RefreshVisibility(ctx); err != nil {
			return "", err
		}
		return "Visibility refreshed", nil
	}
	return "", errUnknownAction
}

// applyProfile stages a submitted profile form into the draft. Styles that
// were dropped are removed and new ones appended, so kept styles hold their
// position.
func applyProfile(c *dashboard.Controller, profile models.DraftProfile) error {
	fields := map[string]interface{}{
		dashboard.FieldName:          profile.Name,
		dashboard.FieldBio:           profile.Bio,
		dashboard.FieldLocation:      profile.Location,
		dashboard.FieldBookingStatus: profile.BookingStatus,
		dashboard.FieldBookedUntil:   profile.BookedUntil,
		dashboard.FieldBookingLink:   profile.BookingLink,
	}
	for name, value := range fields {
		if err := c.SetField(name, value); err != nil {
			return err
		}
	}

	wanted := make(map[string]bool, len(profile.Styles))
	for _, style := range profile.Styles {
		wanted[strings.TrimSpace(style)] = true
	}
	for _, style := range c.Draft().Styles {
		if !wanted[style] {
			c.RemoveStyle(style)
		}
	}
	for _, style := range profile.Styles {
		c.AddStyle(style)
	}
	return nil
}

func isClientError(err error) bool {
	return errors.Is(err, errValidation) ||
		errors.Is(err, errUnknownAction) ||
		errors.Is(err, dashboard.ErrInvalidField) ||
		errors.Is(err, dashboard.ErrInvalidInput) ||
		errors.Is(err, dashboard.ErrIndexOutOfRange)
}

// shell collects what the dashboard would show: toasts and redirects.
type shell struct {
	notifications []models.Notification
	redirect      string
}

func (s *shell) Notify(title, description string) {
	logrus.WithField("title", title).Debug("Queued notification")
	s.notifications = append(s.notifications, models.Notification{Title: title, Description: description})
}

func (s *shell) Redirect(path string) {
	s.redirect = path
}

func (s *shell) respond(resp models.ActionResponse) models.ActionResponse {
	resp.Notifications = s.notifications
	resp.Redirect = s.redirect
	return resp
}
