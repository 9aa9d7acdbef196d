package main

import (
	"context"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/getinkd/artist-dashboard-service/config"
	"github.com/getinkd/artist-dashboard-service/dynamodb"
	"github.com/getinkd/artist-dashboard-service/handler"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}

	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetLevel(cfg.LogLevel)

	users, err := dynamodb.NewDynamoClient(context.Background(), cfg.UsersTable)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to initialize DynamoDB client")
	}

	var publisher handler.Publisher
	if cfg.Sync.URL != "" {
		publisher = handler.NewSearchIndexPublisher(cfg.Sync)
	} else {
		logrus.Info("SEARCH_SYNC_URL not set, search index publishing disabled")
	}

	lambda.Start(handler.New(users, publisher).HandleRequest)
}
