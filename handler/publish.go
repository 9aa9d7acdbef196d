package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/getinkd/artist-dashboard-service/config"
	"github.com/getinkd/artist-dashboard-service/models"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const artistCollection = "ink.getinkd.artist"

// SearchIndexPublisher pushes committed artist records to the search index,
// which ranks artists by lastActive.
type SearchIndexPublisher struct {
	URL       string
	AuthToken string
	Client    *http.Client
}

func NewSearchIndexPublisher(cfg config.SyncConfig) *SearchIndexPublisher {
	return &SearchIndexPublisher{
		URL:       cfg.URL,
		AuthToken: cfg.AuthToken,
		Client:    &http.Client{Timeout: cfg.Timeout},
	}
}

func (p *SearchIndexPublisher) Publish(ctx context.Context, record models.UserRecord) error {
	rkey := uuid.New().String()

	body, err := json.Marshal(map[string]interface{}{
		"collection": artistCollection,
		"rkey":       rkey,
		"record":     record,
	})
	if err != nil {
		logrus.WithError(err).Error("Failed to marshal search index record")
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.URL, bytes.NewBuffer(body))
	if err != nil {
		logrus.WithError(err).Error("Failed to create HTTP request")
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	if p.AuthToken != "" {
		req.Header.Set("Authorization", "Bearer "+p.AuthToken)
	}

	client := p.Client
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Second}
	}
	resp, err := client.Do(req)
	if err != nil {
		logrus.WithError(err).Error("Failed to send record to search index")
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logrus.WithFields(logrus.Fields{
			"status": resp.Status,
			"userId": record.ID,
		}).Error("Search index rejected record")
		return fmt.Errorf("failed to publish record: %s", resp.Status)
	}

	logrus.WithFields(logrus.Fields{"userId": record.ID, "rkey": rkey}).Info("Record published to search index")
	return nil
}
