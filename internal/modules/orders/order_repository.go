package orders

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

// OrderChanges is a partial field update. Nil pointers are left
// untouched. Status is deliberately absent; lifecycle transitions go
// through UpdateStatus.
type OrderChanges struct {
	UserName    *string
	UserEmail   *string
	UserContact *string

	ServiceType  *string
	ServiceName  *string
	PickupDate   *string
	PickupTime   *string
	LoadCount    *int
	Kilo         *int
	Instructions *string

	PaymentMethod  *string
	PaymentDetails *models.PaymentDetails
	ClearPayment   bool

	ServicePrice *int
	DeliveryFee  *int
	TotalPrice   *int
}

// RepositoryInterface defines the contract for the order store.
type RepositoryInterface interface {
	Create(ctx context.Context, order *models.Order) (*models.Order, error)
	FindByID(ctx context.Context, orderID string) (*models.Order, error)
	FindByTrackingCode(ctx context.Context, code string) (*models.Order, error)
	ListByUserID(ctx context.Context, userID string) ([]*models.Order, error)
	ListByStatus(ctx context.Context, status models.OrderStatus) ([]*models.Order, error)
	ListAll(ctx context.Context) ([]*models.Order, error)
	Update(ctx context.Context, orderID string, ch OrderChanges) (*models.Order, error)
	UpdateStatus(ctx context.Context, orderID string, status models.OrderStatus, cancelledAt *time.Time) error
	SetPhotos(ctx context.Context, orderID string, photos []string) error
	Delete(ctx context.Context, orderID string) error
}

// Repository implements RepositoryInterface on the orders collection.
type Repository struct {
	coll *mongo.Collection
}

// NewRepository creates a new order repository.
func NewRepository(db *mongo.Database) RepositoryInterface {
	return &Repository{coll: db.Collection("orders")}
}

// newestFirst is the presentation order every listing uses.
var newestFirst = options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

// Create inserts a new order document and returns it with the
// store-assigned ID.
func (r *Repository) Create(ctx context.Context, order *models.Order) (*models.Order, error) {
	order.ID = primitive.NewObjectID().Hex()
	if _, err := r.coll.InsertOne(ctx, order); err != nil {
		return nil, fmt.Errorf("repository.CreateOrder: %w", err)
	}
	return order, nil
}

func (r *Repository) findOne(ctx context.Context, filter bson.M) (*models.Order, error) {
	var order models.Order
	err := r.coll.FindOne(ctx, filter).Decode(&order)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to decode order: %w", err)
	}
	return &order, nil
}

// FindByID retrieves a single order by its store-assigned ID.
func (r *Repository) FindByID(ctx context.Context, orderID string) (*models.Order, error) {
	return r.findOne(ctx, bson.M{"_id": orderID})
}

// FindByTrackingCode retrieves an order by its human-facing code. Codes
// are not guaranteed unique; on collision the oldest match wins.
func (r *Repository) FindByTrackingCode(ctx context.Context, code string) (*models.Order, error) {
	return r.findOne(ctx, bson.M{"trackingCode": code})
}

func (r *Repository) list(ctx context.Context, filter bson.M) ([]*models.Order, error) {
	cur, err := r.coll.Find(ctx, filter, newestFirst)
	if err != nil {
		return nil, fmt.Errorf("repository.ListOrders: %w", err)
	}
	defer cur.Close(ctx)

	var orders []*models.Order
	if err := cur.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("repository.ListOrders decode: %w", err)
	}
	return orders, nil
}

// ListByUserID retrieves all orders owned by a user, newest first.
func (r *Repository) ListByUserID(ctx context.Context, userID string) ([]*models.Order, error) {
	return r.list(ctx, bson.M{"userId": userID})
}

// ListByStatus retrieves all orders in a given lifecycle state.
func (r *Repository) ListByStatus(ctx context.Context, status models.OrderStatus) ([]*models.Order, error) {
	return r.list(ctx, bson.M{"status": status})
}

// ListAll retrieves every order in the system (admin dashboard).
func (r *Repository) ListAll(ctx context.Context) ([]*models.Order, error) {
	return r.list(ctx, bson.M{})
}

// Update applies a partial field update and returns the new document.
// Field updates are last-write-wins; there is no version check.
func (r *Repository) Update(ctx context.Context, orderID string, ch OrderChanges) (*models.Order, error) {
	set := bson.M{}
	setIfString := func(key string, v *string) {
		if v != nil {
			set[key] = *v
		}
	}
	setIfInt := func(key string, v *int) {
		if v != nil {
			set[key] = *v
		}
	}

	setIfString("userName", ch.UserName)
	setIfString("userEmail", ch.UserEmail)
	setIfString("userContact", ch.UserContact)
	setIfString("serviceType", ch.ServiceType)
	setIfString("serviceName", ch.ServiceName)
	setIfString("pickupDate", ch.PickupDate)
	setIfString("pickupTime", ch.PickupTime)
	setIfInt("loadCount", ch.LoadCount)
	setIfInt("kilo", ch.Kilo)
	setIfString("instructions", ch.Instructions)
	setIfString("paymentMethod", ch.PaymentMethod)
	setIfInt("servicePrice", ch.ServicePrice)
	setIfInt("deliveryFee", ch.DeliveryFee)
	setIfInt("totalPrice", ch.TotalPrice)

	update := bson.M{}
	if ch.PaymentDetails != nil {
		set["paymentDetails"] = ch.PaymentDetails
	} else if ch.ClearPayment {
		update["$unset"] = bson.M{"paymentDetails": ""}
	}

	if len(set) == 0 && len(update) == 0 {
		return r.FindByID(ctx, orderID)
	}
	if len(set) > 0 {
		update["$set"] = set
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var order models.Order
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": orderID}, update, opts).Decode(&order)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("repository.UpdateOrder: %w", err)
	}
	return &order, nil
}

// UpdateStatus writes a lifecycle transition, optionally recording the
// cancellation timestamp.
func (r *Repository) UpdateStatus(ctx context.Context, orderID string, status models.OrderStatus, cancelledAt *time.Time) error {
	set := bson.M{"status": status}
	if cancelledAt != nil {
		set["cancelledAt"] = *cancelledAt
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": orderID}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("repository.UpdateStatus: %w", err)
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

// SetPhotos patches the photo reference list after upload.
func (r *Repository) SetPhotos(ctx context.Context, orderID string, photos []string) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": orderID}, bson.M{"$set": bson.M{"photos": photos}})
	if err != nil {
		return fmt.Errorf("repository.SetPhotos: %w", err)
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

// Delete removes an order document permanently.
func (r *Repository) Delete(ctx context.Context, orderID string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": orderID})
	if err != nil {
		return fmt.Errorf("repository.DeleteOrder: %w", err)
	}
	if res.DeletedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}
