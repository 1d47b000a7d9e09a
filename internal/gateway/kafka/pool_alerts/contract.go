//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=pool_alerts_test
package pool_alerts

import (
	"context"

	"github.com/IBM/sarama"
)

type producer interface {
	SendMessage(msg *sarama.ProducerMessage) (int32, int64, error)
}

type retrier interface {
	ExecuteWithContext(ctx context.Context, fn func(context.Context) error) error
}
