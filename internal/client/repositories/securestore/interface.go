package securestore

import (
	"context"
)

// Item is one stored value. Nonce is nil for items kept in plain form.
type Item struct {
	Key   string
	Value []byte
	Nonce []byte
}

type Repository interface {
	Get(ctx context.Context, key string) (*Item, error)
	Set(ctx context.Context, item *Item) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
