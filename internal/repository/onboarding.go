package repository

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/fatima-azeem/authentication-app/internal/model"
)

// OnboardingRepository defines the interface for onboarding profile operations.
type OnboardingRepository interface {
	CreateOnboarding(ctx context.Context, onboarding *model.Onboarding) (*model.Onboarding, error)
	GetOnboardingByUserID(ctx context.Context, userID bson.ObjectID) (*model.Onboarding, error)
	DeleteOnboardingByUserID(ctx context.Context, userID bson.ObjectID) error
}

const onboardingCollection = "onboardings"

type onboardingMongoRepository struct {
	db *mongo.Database
}

func NewOnboardingMongoRepository(ctx context.Context, logger *zerolog.Logger, db *mongo.Database) OnboardingRepository {
	collection := db.Collection(onboardingCollection)

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create onboarding indexes")
	}

	return &onboardingMongoRepository{db: db}
}

func (r *onboardingMongoRepository) CreateOnboarding(
	ctx context.Context,
	onboarding *model.Onboarding,
) (*model.Onboarding, error) {
	now := time.Now()
	onboarding.CreatedAt = now
	onboarding.UpdatedAt = now

	result, err := r.db.Collection(onboardingCollection).InsertOne(ctx, onboarding)
	if err != nil {
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		onboarding.ID = objectID
	} else {
		return nil, errors.New("failed to convert inserted ID to ObjectID")
	}

	return onboarding, nil
}

func (r *onboardingMongoRepository) GetOnboardingByUserID(
	ctx context.Context,
	userID bson.ObjectID,
) (*model.Onboarding, error) {
	result := r.db.Collection(onboardingCollection).FindOne(ctx, bson.M{"user_id": userID})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var onboarding model.Onboarding
	if err := result.Decode(&onboarding); err != nil {
		return nil, err
	}

	return &onboarding, nil
}

func (r *onboardingMongoRepository) DeleteOnboardingByUserID(ctx context.Context, userID bson.ObjectID) error {
	_, err := r.db.Collection(onboardingCollection).DeleteMany(ctx, bson.M{"user_id": userID})
	return err
}
