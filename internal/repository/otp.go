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

// OtpRepository defines the interface for OTP-related database operations.
type OtpRepository interface {
	CreateOtp(ctx context.Context, otp *model.Otp) (*model.Otp, error)

	// GetLatestOtp returns the newest code matching user, type and the exact
	// code string. Multiple unconsumed codes should not exist under correct
	// issuance, but the newest-by-created_at rule tolerates them.
	GetLatestOtp(ctx context.Context, userID bson.ObjectID, otpType model.OtpType, code string) (*model.Otp, error)

	DeleteOtp(ctx context.Context, id bson.ObjectID) error
	DeleteOtpsByUserAndType(ctx context.Context, userID bson.ObjectID, otpType model.OtpType) error
	DeleteOtpsByUserID(ctx context.Context, userID bson.ObjectID) error
}

const otpCollection = "otps"

type otpMongoRepository struct {
	db *mongo.Database
}

func NewOtpMongoRepository(ctx context.Context, logger *zerolog.Logger, db *mongo.Database) OtpRepository {
	collection := db.Collection(otpCollection)

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "type", Value: 1}},
		},
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0), // TTL index
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create otp indexes")
	}

	return &otpMongoRepository{db: db}
}

func (r *otpMongoRepository) CreateOtp(ctx context.Context, otp *model.Otp) (*model.Otp, error) {
	otp.CreatedAt = time.Now()

	result, err := r.db.Collection(otpCollection).InsertOne(ctx, otp)
	if err != nil {
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		otp.ID = objectID
	} else {
		return nil, errors.New("failed to convert inserted ID to ObjectID")
	}

	return otp, nil
}

func (r *otpMongoRepository) GetLatestOtp(
	ctx context.Context,
	userID bson.ObjectID,
	otpType model.OtpType,
	code string,
) (*model.Otp, error) {
	filter := bson.M{
		"user_id": userID,
		"type":    otpType,
		"code":    code,
	}

	result := r.db.Collection(otpCollection).FindOne(
		ctx,
		filter,
		options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}}),
	)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var otp model.Otp
	if err := result.Decode(&otp); err != nil {
		return nil, err
	}

	return &otp, nil
}

func (r *otpMongoRepository) DeleteOtp(ctx context.Context, id bson.ObjectID) error {
	_, err := r.db.Collection(otpCollection).DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *otpMongoRepository) DeleteOtpsByUserAndType(
	ctx context.Context,
	userID bson.ObjectID,
	otpType model.OtpType,
) error {
	_, err := r.db.Collection(otpCollection).DeleteMany(ctx, bson.M{
		"user_id": userID,
		"type":    otpType,
	})
	return err
}

func (r *otpMongoRepository) DeleteOtpsByUserID(ctx context.Context, userID bson.ObjectID) error {
	_, err := r.db.Collection(otpCollection).DeleteMany(ctx, bson.M{"user_id": userID})
	return err
}
