package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"product-store/internal/products"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	collectionName     = "products"
	healthCheckTimeout = 2 * time.Second
)

type MongoRepository struct {
	collection *mongo.Collection
}

func NewMongo(db *mongo.Database) *MongoRepository {
	return &MongoRepository{collection: db.Collection(collectionName)}
}

// EnsureIndexes creates the unique index on id that backs the duplicate
// detection in Insert. Safe to call on every startup.
func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create unique index on id: %w", err)
	}
	return nil
}

func (r *MongoRepository) Insert(ctx context.Context, p products.Product) error {
	if _, err := r.collection.InsertOne(ctx, p); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return products.ErrDuplicateID
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (r *MongoRepository) FindByID(ctx context.Context, id uuid.UUID) (products.Product, error) {
	var p products.Product
	err := r.collection.FindOne(ctx, bson.M{"id": id.String()}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return products.Product{}, products.ErrNotFound
	}
	if err != nil {
		return products.Product{}, fmt.Errorf("find product %s: %w", id, err)
	}
	return p, nil
}

func (r *MongoRepository) FindByPriceRange(ctx context.Context, rng products.PriceRange) ([]products.Product, error) {
	cursor, err := r.collection.Find(ctx, priceFilter(rng))
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer cursor.Close(ctx)

	list := make([]products.Product, 0)
	for cursor.Next(ctx) {
		var p products.Product
		if err := cursor.Decode(&p); err != nil {
			return nil, fmt.Errorf("decode product: %w", err)
		}
		list = append(list, p)
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}

	return list, nil
}

// UpdateByID runs a single findOneAndUpdate returning the new document, so
// concurrent updates to the same id never observe an intermediate state.
func (r *MongoRepository) UpdateByID(ctx context.Context, id uuid.UUID, patch products.ProductPatch) (products.Product, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var p products.Product
	err := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"id": id.String()},
		bson.M{"$set": setDocument(patch)},
		opts,
	).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return products.Product{}, products.ErrNotFound
	}
	if err != nil {
		return products.Product{}, fmt.Errorf("update product %s: %w", id, err)
	}
	return p, nil
}

func (r *MongoRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"id": id.String()})
	if err != nil {
		return fmt.Errorf("delete product %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return products.ErrNotFound
	}
	return nil
}

func (r *MongoRepository) Health() error {
	ctx, cancel := context.WithTimeout(context.Background(), healthCheckTimeout)
	defer cancel()
	return r.collection.Database().Client().Ping(ctx, nil)
}

// priceFilter builds the dynamic price filter. Both bounds are strictly
// exclusive ($gt/$lt), deliberately not inclusive.
func priceFilter(rng products.PriceRange) bson.M {
	price := bson.M{}
	if rng.Min != nil {
		price["$gt"] = *rng.Min
	}
	if rng.Max != nil {
		price["$lt"] = *rng.Max
	}
	if len(price) == 0 {
		return bson.M{}
	}
	return bson.M{"price": price}
}

func setDocument(patch products.ProductPatch) bson.M {
	set := bson.M{}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Quantity != nil {
		set["quantity"] = *patch.Quantity
	}
	if patch.Price != nil {
		set["price"] = *patch.Price
	}
	if patch.Status != nil {
		set["status"] = *patch.Status
	}
	if patch.UpdatedAt != nil {
		set["updated_at"] = *patch.UpdatedAt
	}
	return set
}
