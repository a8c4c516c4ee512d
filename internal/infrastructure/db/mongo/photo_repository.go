package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/campuscore/admin-portal/internal/core/domain"
)

const collectionPhotos = "user_photos"

type PhotoRepository struct {
	coll *mongo.Collection
}

func NewPhotoRepository(db *mongo.Database) *PhotoRepository {
	return &PhotoRepository{coll: db.Collection(collectionPhotos)}
}

type mongoPhoto struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"`
	UserID           string             `bson:"user_id"`
	ObjectName       string             `bson:"object_name"`
	OriginalFilename string             `bson:"original_filename"`
	ContentType      string             `bson:"content_type"`
	SizeBytes        int64              `bson:"size_bytes"`
	IsProfile        bool               `bson:"is_profile"`
	UploadedAt       time.Time          `bson:"uploaded_at"`
}

func (r *PhotoRepository) Create(ctx context.Context, p *domain.Photo) (*domain.Photo, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoPhoto{
		UserID:           p.UserID,
		ObjectName:       p.ObjectName,
		OriginalFilename: p.OriginalFilename,
		ContentType:      p.ContentType,
		SizeBytes:        p.SizeBytes,
		IsProfile:        p.IsProfile,
		UploadedAt:       p.UploadedAt,
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, err
	}

	created := *p
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *PhotoRepository) FindByID(ctx context.Context, id string) (*domain.Photo, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrPhotoNotFound
	}

	var mp mongoPhoto
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mp); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPhotoNotFound
		}
		return nil, err
	}
	return fromMongoPhoto(&mp), nil
}

func (r *PhotoRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Photo, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "uploaded_at", Value: -1}})
	cur, err := r.coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var photos []*domain.Photo
	for cur.Next(ctx) {
		var mp mongoPhoto
		if err := cur.Decode(&mp); err != nil {
			return nil, err
		}
		photos = append(photos, fromMongoPhoto(&mp))
	}
	return photos, cur.Err()
}

func (r *PhotoRepository) FindProfileByUser(ctx context.Context, userID string) (*domain.Photo, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mp mongoPhoto
	err := r.coll.FindOne(ctx, bson.M{"user_id": userID, "is_profile": true}).Decode(&mp)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPhotoNotFound
		}
		return nil, err
	}
	return fromMongoPhoto(&mp), nil
}

// SetProfile clears the flag on every photo of the owner, then sets it on
// the given photo, keeping at most one profile photo per user.
func (r *PhotoRepository) SetProfile(ctx context.Context, userID, photoID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(photoID)
	if err != nil {
		return domain.ErrPhotoNotFound
	}

	if _, err := r.coll.UpdateMany(ctx,
		bson.M{"user_id": userID, "is_profile": true},
		bson.M{"$set": bson.M{"is_profile": false}},
	); err != nil {
		return err
	}

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": oid, "user_id": userID},
		bson.M{"$set": bson.M{"is_profile": true}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrPhotoNotFound
	}
	return nil
}

func (r *PhotoRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrPhotoNotFound
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrPhotoNotFound
	}
	return nil
}

func (r *PhotoRepository) DeleteAllForUser(ctx context.Context, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.coll.DeleteMany(ctx, bson.M{"user_id": userID})
	return err
}

// EnsureIndexes creates lookup indexes on the photos collection.
func (r *PhotoRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "is_profile", Value: 1}}},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

func fromMongoPhoto(mp *mongoPhoto) *domain.Photo {
	return &domain.Photo{
		ID:               mp.ID.Hex(),
		UserID:           mp.UserID,
		ObjectName:       mp.ObjectName,
		OriginalFilename: mp.OriginalFilename,
		ContentType:      mp.ContentType,
		SizeBytes:        mp.SizeBytes,
		IsProfile:        mp.IsProfile,
		UploadedAt:       mp.UploadedAt,
	}
}
