package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"laundry-booking/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// RepositoryInterface defines the contract for the profile store.
type RepositoryInterface interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	FindByID(ctx context.Context, userID string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, userID string, data models.UserUpdateData) (*models.User, error)
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
	SetPasswordResetToken(ctx context.Context, userID, token string, expiresAt time.Time) error
	FindByPasswordResetToken(ctx context.Context, token string) (*models.User, error)
	UpdatePasswordAndClearResetToken(ctx context.Context, userID, passwordHash string) error
}

// Repository implements RepositoryInterface on the users collection.
type Repository struct {
	coll *mongo.Collection
}

// NewRepository creates a new profile repository.
func NewRepository(db *mongo.Database) RepositoryInterface {
	return &Repository{coll: db.Collection("users")}
}

// Create inserts a new profile document. The store-assigned ID becomes
// the identity ID used everywhere else.
func (r *Repository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	now := time.Now()
	user.ID = primitive.NewObjectID().Hex()
	user.CreatedAt = now
	user.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, models.ErrConflict
		}
		return nil, fmt.Errorf("repository.CreateUser: %w", err)
	}
	return user, nil
}

func (r *Repository) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var user models.User
	err := r.coll.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to decode user: %w", err)
	}
	return &user, nil
}

// FindByID retrieves a profile by identity ID.
func (r *Repository) FindByID(ctx context.Context, userID string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"_id": userID})
}

// FindByEmail retrieves a profile by email.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

// Update applies a partial profile edit and returns the new document.
// Address fields are always written in the structured shape, which is
// how legacy flat-string addresses get migrated on the next save.
func (r *Repository) Update(ctx context.Context, userID string, data models.UserUpdateData) (*models.User, error) {
	set := bson.M{"updatedAt": time.Now()}
	if data.FirstName != nil {
		set["firstName"] = *data.FirstName
	}
	if data.LastName != nil {
		set["lastName"] = *data.LastName
	}
	if data.Contact != nil {
		set["contact"] = *data.Contact
	}
	if data.Street != nil {
		set["address.street"] = *data.Street
	}
	if data.BlockLot != nil {
		set["address.blockLot"] = *data.BlockLot
	}
	if data.Barangay != nil {
		set["address.barangay"] = *data.Barangay
	}
	if data.Landmark != nil {
		set["address.landmark"] = *data.Landmark
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var user models.User
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": userID}, bson.M{"$set": set}, opts).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("repository.UpdateUser: %w", err)
	}
	return &user, nil
}

// UpdatePassword replaces the stored password hash.
func (r *Repository) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{
		"$set": bson.M{"passwordHash": passwordHash, "updatedAt": time.Now()},
	})
	if err != nil {
		return fmt.Errorf("repository.UpdatePassword: %w", err)
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

// SetPasswordResetToken stores a reset token with its expiry.
func (r *Repository) SetPasswordResetToken(ctx context.Context, userID, token string, expiresAt time.Time) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{
		"$set": bson.M{"resetToken": token, "resetTokenExpires": expiresAt},
	})
	if err != nil {
		return fmt.Errorf("repository.SetPasswordResetToken: %w", err)
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

// FindByPasswordResetToken looks a profile up by an unexpired token.
func (r *Repository) FindByPasswordResetToken(ctx context.Context, token string) (*models.User, error) {
	return r.findOne(ctx, bson.M{
		"resetToken":        token,
		"resetTokenExpires": bson.M{"$gt": time.Now()},
	})
}

// UpdatePasswordAndClearResetToken completes a password reset.
func (r *Repository) UpdatePasswordAndClearResetToken(ctx context.Context, userID, passwordHash string) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{
		"$set":   bson.M{"passwordHash": passwordHash, "updatedAt": time.Now()},
		"$unset": bson.M{"resetToken": "", "resetTokenExpires": ""},
	})
	if err != nil {
		return fmt.Errorf("repository.UpdatePasswordAndClearResetToken: %w", err)
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}
