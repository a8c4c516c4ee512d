package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/campuscore/admin-portal/internal/core/domain"
)

const (
	collectionDepartments  = "departments"
	collectionDesignations = "designations"
)

// ReferenceRepository serves the department and designation lookup tables.
type ReferenceRepository struct {
	departments  *mongo.Collection
	designations *mongo.Collection
}

func NewReferenceRepository(db *mongo.Database) *ReferenceRepository {
	return &ReferenceRepository{
		departments:  db.Collection(collectionDepartments),
		designations: db.Collection(collectionDesignations),
	}
}

type referenceDoc struct {
	ID   primitive.ObjectID `bson:"_id,omitempty"`
	Name string             `bson:"name"`
}

func (r *ReferenceRepository) Departments(ctx context.Context) ([]domain.Department, error) {
	docs, err := r.list(ctx, r.departments)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Department, 0, len(docs))
	for _, d := range docs {
		out = append(out, domain.Department{ID: d.ID.Hex(), Name: d.Name})
	}
	return out, nil
}

func (r *ReferenceRepository) Designations(ctx context.Context) ([]domain.Designation, error) {
	docs, err := r.list(ctx, r.designations)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Designation, 0, len(docs))
	for _, d := range docs {
		out = append(out, domain.Designation{ID: d.ID.Hex(), Name: d.Name})
	}
	return out, nil
}

func (r *ReferenceRepository) DepartmentExists(ctx context.Context, id string) (bool, error) {
	return r.exists(ctx, r.departments, id)
}

func (r *ReferenceRepository) DesignationExists(ctx context.Context, id string) (bool, error) {
	return r.exists(ctx, r.designations, id)
}

func (r *ReferenceRepository) list(ctx context.Context, coll *mongo.Collection) ([]referenceDoc, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []referenceDoc
	for cur.Next(ctx) {
		var d referenceDoc
		if err := cur.Decode(&d); err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	return docs, cur.Err()
}

func (r *ReferenceRepository) exists(ctx context.Context, coll *mongo.Collection, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}
	err = coll.FindOne(ctx, bson.M{"_id": oid}, options.FindOne().SetProjection(bson.M{"_id": 1})).Err()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
