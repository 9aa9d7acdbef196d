package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/getinkd/artist-dashboard-service/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockDynamoDBAPI struct {
	mock.Mock
}

func (m *MockDynamoDBAPI) GetItem(ctx context.Context, input *dynamodb.GetItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	args := m.Called(ctx, input)
	out, _ := args.Get(0).(*dynamodb.GetItemOutput)
	return out, args.Error(1)
}

func (m *MockDynamoDBAPI) PutItem(ctx context.Context, input *dynamodb.PutItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	args := m.Called(ctx, input)
	out, _ := args.Get(0).(*dynamodb.PutItemOutput)
	return out, args.Error(1)
}

var created = time.Date(2026, 2, 14, 9, 30, 0, 123000000, time.UTC)

func fullRecord() models.UserRecord {
	return models.UserRecord{
		ID:            "user123",
		Username:      "inkmaster",
		Email:         "ink@example.com",
		IsArtist:      true,
		ProfilePhoto:  "https://img.example.com/me.jpg",
		Followers:     []string{"user1", "user2"},
		Name:          "Ink Master",
		Location:      "Austin, TX",
		Bio:           "Bold lines.",
		Styles:        []string{"Traditional", "traditional", "Realism"},
		BookingStatus: true,
		BookedUntil:   "2026-06-01",
		BookingLink:   "https://book.example.com",
		Portfolio: []models.PortfolioItem{
			{Image: "https://img.example.com/a.jpg", Caption: "Koi", CreatedDate: created},
			{Image: "https://img.example.com/b.jpg", CreatedDate: created.Add(time.Hour)},
		},
		LastActive: created.Add(2 * time.Hour),
	}
}

func TestPutUser(t *testing.T) {
	testCases := []struct {
		name        string
		record      models.UserRecord
		mockReturn  error
		expectCall  bool
		expectError bool
	}{
		{
			name:       "Successful put with all fields",
			record:     fullRecord(),
			expectCall: true,
		},
		{
			name:        "Missing user ID",
			record:      models.UserRecord{Name: "Nobody"},
			expectError: true,
		},
		{
			name:        "DynamoDB returns an error",
			record:      fullRecord(),
			mockReturn:  fmt.Errorf("DynamoDB put error"),
			expectCall:  true,
			expectError: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mockDynamoDB := new(MockDynamoDBAPI)
			client := &DynamoClient{Client: mockDynamoDB, TableName: "Users"}

			if tc.expectCall {
				mockDynamoDB.On("PutItem", mock.Anything, mock.MatchedBy(func(input *dynamodb.PutItemInput) bool {
					id, ok := input.Item["UserId"].(*types.AttributeValueMemberS)
					return *input.TableName == "Users" && ok && id.Value == tc.record.ID
				})).Return(&dynamodb.PutItemOutput{}, tc.mockReturn)
			}

			err := client.PutUser(context.Background(), tc.record)

			if tc.expectError {
				assert.Error(t, err, "Expected an error but got nil")
			} else {
				assert.NoError(t, err, "Unexpected error occurred")
			}

			mockDynamoDB.AssertExpectations(t)
		})
	}
}

func TestGetUser(t *testing.T) {
	testCases := []struct {
		name        string
		userID      string
		output      *dynamodb.GetItemOutput
		mockReturn  error
		expectCall  bool
		expectedErr error
		expected    models.UserRecord
	}{
		{
			name:       "Found",
			userID:     "user123",
			output:     &dynamodb.GetItemOutput{Item: marshalUser(fullRecord())},
			expectCall: true,
			expected:   fullRecord(),
		},
		{
			name:        "Not found",
			userID:      "ghost",
			output:      &dynamodb.GetItemOutput{},
			expectCall:  true,
			expectedErr: ErrUserNotFound,
		},
		{
			name:   "Empty user ID",
			userID: "",
		},
		{
			name:       "DynamoDB returns an error",
			userID:     "user-error",
			mockReturn: errors.New("throttled"),
			expectCall: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mockDynamoDB := new(MockDynamoDBAPI)
			client := &DynamoClient{Client: mockDynamoDB, TableName: "Users"}

			if tc.expectCall {
				mockDynamoDB.On("GetItem", mock.Anything, mock.MatchedBy(func(input *dynamodb.GetItemInput) bool {
					id, ok := input.Key["UserId"].(*types.AttributeValueMemberS)
					return ok && id.Value == tc.userID
				})).Return(tc.output, tc.mockReturn)
			}

			record, err := client.GetUser(context.Background(), tc.userID)

			switch {
			case tc.expectedErr != nil:
				assert.ErrorIs(t, err, tc.expectedErr)
			case tc.output == nil:
				assert.Error(t, err)
			default:
				require.NoError(t, err)
				assert.Equal(t, tc.expected, record)
			}

			mockDynamoDB.AssertExpectations(t)
		})
	}
}

func TestMarshalUser(t *testing.T) {
	testCases := []struct {
		name       string
		record     models.UserRecord
		present    []string
		notPresent []string
	}{
		{
			name:    "All fields populated",
			record:  fullRecord(),
			present: []string{"UserId", "Username", "Email", "IsArtist", "ProfilePhoto", "Followers", "Name", "Location", "Bio", "Styles", "Portfolio", "BookingStatus", "BookedUntil", "BookingLink", "LastActive"},
		},
		{
			name:       "Empty strings are omitted",
			record:     models.UserRecord{ID: "user456", Name: "Jane"},
			present:    []string{"UserId", "Name", "IsArtist", "BookingStatus", "Styles", "Portfolio"},
			notPresent: []string{"Bio", "Location", "BookedUntil", "BookingLink", "LastActive"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			item := marshalUser(tc.record)

			for _, key := range tc.present {
				assert.Contains(t, item, key, "Item missing expected attribute")
			}
			for _, key := range tc.notPresent {
				assert.NotContains(t, item, key, "Item has unexpected attribute")
			}
		})
	}
}

func TestMarshalKeepsStyleOrder(t *testing.T) {
	item := marshalUser(fullRecord())

	assert.Equal(t, []string{"Traditional", "traditional", "Realism"}, stringsAttr(item, "Styles"))
}

func TestUnmarshalUserInvalidTime(t *testing.T) {
	item := marshalUser(fullRecord())
	item["LastActive"] = &types.AttributeValueMemberS{Value: "yesterday"}

	_, err := unmarshalUser(item)
	assert.Error(t, err)
}
