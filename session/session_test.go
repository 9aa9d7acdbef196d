package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/getinkd/artist-dashboard-service/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecord() models.UserRecord {
	return models.UserRecord{
		ID:         "artist-1",
		Username:   "inkmaster",
		IsArtist:   true,
		Name:       "Ink Master",
		Styles:     []string{"Traditional"},
		LastActive: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestCurrentUserAbsent(t *testing.T) {
	store := New(nil, nil)

	record, err := store.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Nil(t, record)
}

func TestCurrentUserReturnsCopy(t *testing.T) {
	original := sampleRecord()
	store := New(&original, nil)

	original.Styles[0] = "changed by caller"

	record, err := store.CurrentUser(context.Background())
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, []string{"Traditional"}, record.Styles)

	record.Styles[0] = "changed again"
	again, err := store.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Traditional"}, again.Styles)
}

func TestReplaceCurrentUser(t *testing.T) {
	testCases := []struct {
		name       string
		persistErr error
		expectName string
	}{
		{name: "Persisted record becomes current", persistErr: nil, expectName: "Renamed"},
		{name: "Persist failure keeps prior record", persistErr: errors.New("dynamo down"), expectName: "Ink Master"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var persisted []models.UserRecord
			initial := sampleRecord()
			store := New(&initial, PersisterFunc(func(ctx context.Context, record models.UserRecord) error {
				persisted = append(persisted, record)
				return tc.persistErr
			}))

			next := sampleRecord()
			next.Name = "Renamed"
			err := store.ReplaceCurrentUser(context.Background(), next)

			if tc.persistErr != nil {
				assert.ErrorIs(t, err, tc.persistErr)
			} else {
				assert.NoError(t, err)
			}
			require.Len(t, persisted, 1)
			assert.Equal(t, "Renamed", persisted[0].Name)

			current, err := store.CurrentUser(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tc.expectName, current.Name)
		})
	}
}

func TestReplaceWithoutPersister(t *testing.T) {
	store := New(nil, nil)

	require.NoError(t, store.ReplaceCurrentUser(context.Background(), sampleRecord()))

	current, err := store.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "artist-1", current.ID)
}
