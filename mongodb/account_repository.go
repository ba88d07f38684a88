package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/mathiasquintero/Vaporized/domain"
	"github.com/mathiasquintero/Vaporized/errors"
)

// AccountRepository implements domain.AccountRepository.
type AccountRepository struct {
	accounts *mongo.Collection
}

// NewAccountRepository creates the repository and ensures its indexes.
func NewAccountRepository(ctx context.Context, db *mongo.Database) (*AccountRepository, error) {
	repo := &AccountRepository{
		accounts: db.Collection(AccountsCollection),
	}
	if err := repo.createIndexes(ctx); err != nil {
		// Index creation commonly fails when a compatible index already
		// exists; the repository stays usable either way.
		log.Warn().Err(err).Msg("failed to ensure account indexes")
	}
	return repo, nil
}

func (r *AccountRepository) createIndexes(ctx context.Context) error {
	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true).SetCollation(&options.Collation{Locale: "en", Strength: 2}),
		},
	}

	if _, err := r.accounts.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes for accounts collection: %w", err)
	}
	return nil
}

// Create inserts a new account, assigning an ID and timestamps when
// missing.
func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) error {
	if account.ID == "" {
		account.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if account.CreatedAt.IsZero() {
		account.CreatedAt = now
	}
	account.UpdatedAt = now

	if _, err := r.accounts.InsertOne(ctx, account); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("username %q already taken: %w", account.Username, err)
		}
		return fmt.Errorf("failed to insert account: %w", err)
	}
	return nil
}

// FindByID resolves an account by its identifier.
func (r *AccountRepository) FindByID(ctx context.Context, id string) (*domain.Account, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

// FindByUsername resolves an account by username.
func (r *AccountRepository) FindByUsername(ctx context.Context, username string) (*domain.Account, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *AccountRepository) findOne(ctx context.Context, filter bson.M) (*domain.Account, error) {
	var account domain.Account
	err := r.accounts.FindOne(ctx, filter).Decode(&account)
	if err == mongo.ErrNoDocuments {
		return nil, errors.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find account: %w", err)
	}
	return &account, nil
}

var _ domain.AccountRepository = (*AccountRepository)(nil)
