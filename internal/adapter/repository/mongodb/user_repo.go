package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aden91/tidar-web-app/internal/domain"
	"github.com/aden91/tidar-web-app/internal/platform/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

const userCollectionName = "users"

// UserRepository implements domain.UserRepository on a MongoDB collection
// keyed by subject ID.
type UserRepository struct {
	collection *mongo.Collection
	timeout    time.Duration
	logger     *logger.Logger
}

// NewUserRepository creates the repository. timeout bounds every call; zero disables it.
func NewUserRepository(db *mongo.Database, timeout time.Duration, log *logger.Logger) *UserRepository {
	return &UserRepository{
		collection: db.Collection(userCollectionName),
		timeout:    timeout,
		logger:     log.Named("UserRepository"),
	}
}

func (r *UserRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.timeout)
}

func (r *UserRepository) Get(ctx context.Context, uid string) (*domain.User, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var doc userDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": uid}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			r.logger.Debug("User not found in DB", zap.String("uid", uid))
			return nil, domain.ErrNotFound
		}
		r.logger.Error("Failed to get user from DB", zap.String("uid", uid), zap.Error(err))
		return nil, fmt.Errorf("db findone failed: %w", err)
	}
	return doc.toDomainUser(), nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	_, err := r.collection.InsertOne(ctx, fromDomainUser(user))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			r.logger.Warn("Duplicate user on insert", zap.String("uid", user.UID))
			return domain.ErrAlreadyRegistered
		}
		r.logger.Error("Failed to insert user into DB", zap.String("uid", user.UID), zap.Error(err))
		return fmt.Errorf("db insert failed: %w", err)
	}
	r.logger.Info("User created in DB", zap.String("uid", user.UID))
	return nil
}

func (r *UserRepository) UpdateLogin(ctx context.Context, uid string, update domain.LoginUpdate) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	set := bson.M{
		"lastLogin": update.LastLogin,
		"name":      update.Name,
		"email":     update.Email,
		"phone":     update.Phone,
	}
	return r.updateOne(ctx, uid, bson.M{"$set": set}, "login update")
}

func (r *UserRepository) MarkVerified(ctx context.Context, uid string) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.updateOne(ctx, uid, bson.M{"$set": bson.M{"isVerified": true}}, "verification")
}

func (r *UserRepository) updateOne(ctx context.Context, uid string, update bson.M, op string) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": uid}, update)
	if err != nil {
		r.logger.Error("DB error during "+op, zap.String("uid", uid), zap.Error(err))
		return fmt.Errorf("db update failed: %w", err)
	}
	if result.MatchedCount == 0 {
		r.logger.Warn("User not found for "+op, zap.String("uid", uid))
		return domain.ErrNotFound
	}
	r.logger.Debug("User updated in DB", zap.String("uid", uid), zap.String("op", op))
	return nil
}

// Ping checks that the primary is reachable.
func (r *UserRepository) Ping(ctx context.Context) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	return r.collection.Database().Client().Ping(ctx, readpref.Primary())
}
