package repository

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/fatima-azeem/authentication-app/internal/model"
)

// PasswordResetTokenRepository defines the interface for password reset token operations.
type PasswordResetTokenRepository interface {
	// CreateToken creates a new password reset token.
	CreateToken(ctx context.Context, token *model.PasswordResetToken) (*model.PasswordResetToken, error)

	// GetLatestTokenByValue retrieves the newest token holding the given
	// value, by creation time. Only the most recently issued token for a
	// user is considered valid.
	GetLatestTokenByValue(ctx context.Context, value string) (*model.PasswordResetToken, error)

	// MarkTokenUsed marks a token as used. Used tokens are kept for audit.
	MarkTokenUsed(ctx context.Context, id bson.ObjectID) error

	// DeleteTokensByUserID removes all tokens belonging to a user.
	DeleteTokensByUserID(ctx context.Context, userID bson.ObjectID) error
}

const passwordResetTokenCollection = "password_reset_tokens"

type passwordResetTokenMongoRepository struct {
	db *mongo.Database
}

// NewPasswordResetTokenMongoRepository creates a new MongoDB repository for password reset tokens.
func NewPasswordResetTokenMongoRepository(
	ctx context.Context,
	logger *zerolog.Logger,
	db *mongo.Database,
) PasswordResetTokenRepository {
	collection := db.Collection(passwordResetTokenCollection)

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "token", Value: 1}, {Key: "created_at", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "user_id", Value: 1}},
		},
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0), // TTL index
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create password reset token indexes")
	}

	return &passwordResetTokenMongoRepository{db: db}
}

func (r *passwordResetTokenMongoRepository) CreateToken(
	ctx context.Context,
	token *model.PasswordResetToken,
) (*model.PasswordResetToken, error) {
	now := time.Now()
	token.CreatedAt = now
	token.UpdatedAt = now
	token.Used = false

	result, err := r.db.Collection(passwordResetTokenCollection).InsertOne(ctx, token)
	if err != nil {
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		token.ID = objectID
	}

	return token, nil
}

func (r *passwordResetTokenMongoRepository) GetLatestTokenByValue(
	ctx context.Context,
	value string,
) (*model.PasswordResetToken, error) {
	result := r.db.Collection(passwordResetTokenCollection).FindOne(
		ctx,
		bson.M{"token": value},
		options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}}),
	)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var token model.PasswordResetToken
	if err := result.Decode(&token); err != nil {
		return nil, err
	}

	return &token, nil
}

func (r *passwordResetTokenMongoRepository) MarkTokenUsed(ctx context.Context, id bson.ObjectID) error {
	update := bson.M{
		"$set": bson.M{
			"used":       true,
			"updated_at": time.Now(),
		},
	}

	_, err := r.db.Collection(passwordResetTokenCollection).UpdateOne(ctx, bson.M{"_id": id}, update)
	return err
}

func (r *passwordResetTokenMongoRepository) DeleteTokensByUserID(ctx context.Context, userID bson.ObjectID) error {
	_, err := r.db.Collection(passwordResetTokenCollection).DeleteMany(ctx, bson.M{"user_id": userID})
	return err
}
