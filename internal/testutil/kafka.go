package testutil

import (
	"context"
	"errors"
	"fmt"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/kafka"
)

const kafkaImage = "confluentinc/confluent-local:7.5.0"

// StartKafka starts a single broker kafka container and returns its address.
func StartKafka(ctx context.Context) (testcontainers.Container, string, error) {
	container, err := kafka.Run(ctx, kafkaImage)
	if err != nil {
		return nil, "", fmt.Errorf("kafka.Run: %w", err)
	}

	brokers, err := container.Brokers(ctx)
	if err != nil {
		return container, "", fmt.Errorf("container.Brokers: %w", err)
	}

	if len(brokers) == 0 {
		return container, "", errors.New("container.Brokers: no brokers")
	}

	return container, brokers[0], nil
}
