package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/campuscore/admin-portal/internal/core/domain"
)

// RoleRepository stores one document per (user_id, role) assignment. The
// unique compound index created by UserRepository.EnsureIndexes makes the
// pair unique; upserts keep assignment idempotent under races.
type RoleRepository struct {
	coll *mongo.Collection
}

func NewRoleRepository(db *mongo.Database) *RoleRepository {
	return &RoleRepository{coll: db.Collection(collectionUserRoles)}
}

func (r *RoleRepository) GetRolesForUser(ctx context.Context, userID string) ([]domain.Role, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var roles []domain.Role
	for cur.Next(ctx) {
		var assignment struct {
			Role string `bson:"role"`
		}
		if err := cur.Decode(&assignment); err != nil {
			return nil, err
		}
		roles = append(roles, domain.Role(assignment.Role))
	}
	return roles, cur.Err()
}

func (r *RoleRepository) AddRoleAssignment(ctx context.Context, userID string, role domain.Role) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"user_id": userID, "role": string(role)}
	update := bson.M{"$setOnInsert": filter}
	_, err := r.coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

func (r *RoleRepository) DeleteRoleAssignment(ctx context.Context, userID string, role domain.Role) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.coll.DeleteOne(ctx, bson.M{"user_id": userID, "role": string(role)})
	return err
}

func (r *RoleRepository) DeleteAllForUser(ctx context.Context, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.coll.DeleteMany(ctx, bson.M{"user_id": userID})
	return err
}
