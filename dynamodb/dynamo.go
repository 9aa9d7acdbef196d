package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/getinkd/artist-dashboard-service/models"
	"github.com/sirupsen/logrus"
)

var ErrUserNotFound = errors.New("user not found")

type DynamoDBAPI interface {
	GetItem(ctx context.Context, input *dynamodb.GetItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, input *dynamodb.PutItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

type DynamoDBService interface {
	GetUser(ctx context.Context, userID string) (models.UserRecord, error)
	PutUser(ctx context.Context, record models.UserRecord) error
}

var _ DynamoDBService = (*DynamoClient)(nil)

type DynamoClient struct {
	Client    DynamoDBAPI
	TableName string
}

func NewDynamoClient(ctx context.Context, tableName string) (*DynamoClient, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS SDK config: %w", err)
	}

	return &DynamoClient{
		Client:    dynamodb.NewFromConfig(awsCfg),
		TableName: tableName,
	}, nil
}

func (d *DynamoClient) GetUser(ctx context.Context, userID string) (models.UserRecord, error) {
	if userID == "" {
		return models.UserRecord{}, fmt.Errorf("userID cannot be empty")
	}

	out, err := d.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(d.TableName),
		Key:            map[string]types.AttributeValue{"UserId": &types.AttributeValueMemberS{Value: userID}},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		logrus.WithError(err).WithField("userId", userID).Error("DynamoDB GetItem error")
		return models.UserRecord{}, fmt.Errorf("failed to get user from DynamoDB: %w", err)
	}
	if out == nil || len(out.Item) == 0 {
		return models.UserRecord{}, fmt.Errorf("%w: %s", ErrUserNotFound, userID)
	}

	record, err := unmarshalUser(out.Item)
	if err != nil {
		return models.UserRecord{}, fmt.Errorf("failed to decode user %s: %w", userID, err)
	}
	return record, nil
}

// PutUser replaces the whole stored item with record.
func (d *DynamoClient) PutUser(ctx context.Context, record models.UserRecord) error {
	if record.ID == "" {
		return fmt.Errorf("userID cannot be empty")
	}

	item := marshalUser(record)
	logrus.WithFields(logrus.Fields{
		"userId":     record.ID,
		"attributes": len(item),
	}).Info("Putting user record")

	_, err := d.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(d.TableName),
		Item:      item,
	})
	if err != nil {
		logrus.WithError(err).WithField("userId", record.ID).Error("DynamoDB PutItem error")
		return fmt.Errorf("failed to put user in DynamoDB: %w", err)
	}

	return nil
}

func marshalUser(record models.UserRecord) map[string]types.AttributeValue {
	item := map[string]types.AttributeValue{
		"UserId":        &types.AttributeValueMemberS{Value: record.ID},
		"IsArtist":      &types.AttributeValueMemberBOOL{Value: record.IsArtist},
		"BookingStatus": &types.AttributeValueMemberBOOL{Value: record.BookingStatus},
		"Followers":     stringList(record.Followers),
		"Styles":        stringList(record.Styles),
	}

	fields := map[string]string{
		"Username":     record.Username,
		"Email":        record.Email,
		"ProfilePhoto": record.ProfilePhoto,
		"Name":         record.Name,
		"Location":     record.Location,
		"Bio":          record.Bio,
		"BookedUntil":  record.BookedUntil,
		"BookingLink":  record.BookingLink,
	}
	for field, value := range fields {
		if value != "" {
			item[field] = &types.AttributeValueMemberS{Value: value}
		}
	}

	if !record.LastActive.IsZero() {
		item["LastActive"] = &types.AttributeValueMemberS{Value: record.LastActive.UTC().Format(time.RFC3339Nano)}
	}

	portfolio := make([]types.AttributeValue, 0, len(record.Portfolio))
	for _, p := range record.Portfolio {
		entry := map[string]types.AttributeValue{
			"Image":       &types.AttributeValueMemberS{Value: p.Image},
			"CreatedDate": &types.AttributeValueMemberS{Value: p.CreatedDate.UTC().Format(time.RFC3339Nano)},
		}
		if p.Caption != "" {
			entry["Caption"] = &types.AttributeValueMemberS{Value: p.Caption}
		}
		portfolio = append(portfolio, &types.AttributeValueMemberM{Value: entry})
	}
	item["Portfolio"] = &types.AttributeValueMemberL{Value: portfolio}

	return item
}

func unmarshalUser(item map[string]types.AttributeValue) (models.UserRecord, error) {
	record := models.UserRecord{
		ID:            stringAttr(item, "UserId"),
		Username:      stringAttr(item, "Username"),
		Email:         stringAttr(item, "Email"),
		IsArtist:      boolAttr(item, "IsArtist"),
		ProfilePhoto:  stringAttr(item, "ProfilePhoto"),
		Followers:     stringsAttr(item, "Followers"),
		Name:          stringAttr(item, "Name"),
		Location:      stringAttr(item, "Location"),
		Bio:           stringAttr(item, "Bio"),
		Styles:        stringsAttr(item, "Styles"),
		BookingStatus: boolAttr(item, "BookingStatus"),
		BookedUntil:   stringAttr(item, "BookedUntil"),
		BookingLink:   stringAttr(item, "BookingLink"),
	}

	var err error
	if record.LastActive, err = timeAttr(item, "LastActive"); err != nil {
		return models.UserRecord{}, err
	}

	list, ok := item["Portfolio"].(*types.AttributeValueMemberL)
	if !ok {
		return record, nil
	}
	for i, v := range list.Value {
		m, ok := v.(*types.AttributeValueMemberM)
		if !ok {
			return models.UserRecord{}, fmt.Errorf("portfolio entry %d is not a map", i)
		}
		created, err := timeAttr(m.Value, "CreatedDate")
		if err != nil {
			return models.UserRecord{}, fmt.Errorf("portfolio entry %d: %w", i, err)
		}
		record.Portfolio = append(record.Portfolio, models.PortfolioItem{
			Image:       stringAttr(m.Value, "Image"),
			Caption:     stringAttr(m.Value, "Caption"),
			CreatedDate: created,
		})
	}
	return record, nil
}

func stringList(values []string) *types.AttributeValueMemberL {
	list := make([]types.AttributeValue, 0, len(values))
	for _, v := range values {
		list = append(list, &types.AttributeValueMemberS{Value: v})
	}
	return &types.AttributeValueMemberL{Value: list}
}

func stringAttr(item map[string]types.AttributeValue, key string) string {
	if v, ok := item[key].(*types.AttributeValueMemberS); ok {
		return v.Value
	}
	return ""
}

func boolAttr(item map[string]types.AttributeValue, key string) bool {
	if v, ok := item[key].(*types.AttributeValueMemberBOOL); ok {
		return v.Value
	}
	return false
}

func stringsAttr(item map[string]types.AttributeValue, key string) []string {
	list, ok := item[key].(*types.AttributeValueMemberL)
	if !ok || len(list.Value) == 0 {
		return nil
	}
	out := make([]string, 0, len(list.Value))
	for _, v := range list.Value {
		if s, ok := v.(*types.AttributeValueMemberS); ok {
			out = append(out, s.Value)
		}
	}
	return out
}

func timeAttr(item map[string]types.AttributeValue, key string) (time.Time, error) {
	raw := stringAttr(item, key)
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s: %w", key, err)
	}
	return t, nil
}
