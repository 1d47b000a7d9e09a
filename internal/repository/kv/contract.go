package kv

import "context"

type Store interface {
	Get(ctx context.Context, key []byte) ([]byte, error)
	Set(ctx context.Context, key, value []byte) error
	Scan(ctx context.Context, prefix []byte, fn func(key, value []byte) error) error
}
