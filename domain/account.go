package domain

import (
	"context"
	"time"
)

// Account is a persisted identity record. The token layer never owns
// accounts, it only holds AccountID back-references to them.
type Account struct {
	ID           string    `bson:"_id"           json:"id"`
	Username     string    `bson:"username"      json:"username"`
	PasswordHash string    `bson:"password_hash" json:"-"`
	CreatedAt    time.Time `bson:"created_at"    json:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at"    json:"updated_at"`
}

// AccountRepository is the persistence contract for accounts. Lookups
// return errors.ErrAccountNotFound on a miss.
type AccountRepository interface {
	Create(ctx context.Context, account *Account) error
	FindByID(ctx context.Context, id string) (*Account, error)
	FindByUsername(ctx context.Context, username string) (*Account, error)
}
