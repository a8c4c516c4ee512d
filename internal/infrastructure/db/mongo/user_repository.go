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
	"github.com/campuscore/admin-portal/internal/core/ports"
)

const (
	collectionUsers     = "users"
	collectionUserRoles = "user_roles"
)

// UserRepository stores user records in the users collection and role
// assignments as individual documents in user_roles. FindBy* and List
// hydrate Roles on every returned user.
type UserRepository struct {
	users *mongo.Collection
	roles *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{
		users: db.Collection(collectionUsers),
		roles: db.Collection(collectionUserRoles),
	}
}

type mongoUser struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Name          string             `bson:"name"`
	Email         string             `bson:"email"`
	Username      string             `bson:"username"`
	Phone         string             `bson:"phone,omitempty"`
	PasswordHash  string             `bson:"password_hash"`
	Active        bool               `bson:"active"`
	DepartmentID  string             `bson:"department_id,omitempty"`
	DesignationID string             `bson:"designation_id,omitempty"`
	CreatedAt     time.Time          `bson:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at"`
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := toMongoUser(u)
	res, err := r.users.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			// Unique indexes on email and username back up the service-level
			// probes against concurrent submissions.
			return nil, domain.NewValidationError("email", "email or username is already in use")
		}
		return nil, err
	}

	created := *u
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mu mongoUser
	if err := r.users.FindOne(ctx, filter).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	user := fromMongoUser(&mu)
	if err := r.hydrateRoles(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (r *UserRepository) EmailInUse(ctx context.Context, email, excludeID string) (bool, error) {
	return r.inUse(ctx, "email", email, excludeID)
}

func (r *UserRepository) UsernameInUse(ctx context.Context, username, excludeID string) (bool, error) {
	return r.inUse(ctx, "username", username, excludeID)
}

func (r *UserRepository) inUse(ctx context.Context, field, value, excludeID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{field: value}
	if excludeID != "" {
		oid, err := primitive.ObjectIDFromHex(excludeID)
		if err != nil {
			return false, domain.ErrUserNotFound
		}
		filter["_id"] = bson.M{"$ne": oid}
	}

	n, err := r.users.CountDocuments(ctx, filter)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *UserRepository) List(ctx context.Context, filter ports.ListUsersFilter) ([]*domain.User, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.Search != "" {
		re := primitive.Regex{Pattern: filter.Search, Options: "i"}
		query["$or"] = bson.A{
			bson.M{"name": re},
			bson.M{"email": re},
			bson.M{"username": re},
		}
	}
	if filter.Role != "" {
		ids, err := r.userIDsWithRole(ctx, filter.Role)
		if err != nil {
			return nil, 0, err
		}
		query["_id"] = bson.M{"$in": ids}
	}

	total, err := r.users.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cur, err := r.users.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var users []*domain.User
	for cur.Next(ctx) {
		var mu mongoUser
		if err := cur.Decode(&mu); err != nil {
			return nil, 0, err
		}
		user := fromMongoUser(&mu)
		if err := r.hydrateRoles(ctx, user); err != nil {
			return nil, 0, err
		}
		users = append(users, user)
	}
	if err := cur.Err(); err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *UserRepository) Update(ctx context.Context, u *domain.User) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(u.ID)
	if err != nil {
		return domain.ErrUserNotFound
	}

	doc := toMongoUser(u)
	res, err := r.users.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.NewValidationError("email", "email or username is already in use")
		}
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrUserNotFound
	}
	res, err := r.users.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) SetActive(ctx context.Context, id string, active bool) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrUserNotFound
	}
	res, err := r.users.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"active":     active,
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) hydrateRoles(ctx context.Context, u *domain.User) error {
	cur, err := r.roles.Find(ctx, bson.M{"user_id": u.ID})
	if err != nil {
		return err
	}
	defer cur.Close(ctx)

	u.Roles = nil
	for cur.Next(ctx) {
		var assignment struct {
			Role string `bson:"role"`
		}
		if err := cur.Decode(&assignment); err != nil {
			return err
		}
		u.Roles = append(u.Roles, domain.Role(assignment.Role))
	}
	return cur.Err()
}

func (r *UserRepository) userIDsWithRole(ctx context.Context, role domain.Role) ([]primitive.ObjectID, error) {
	cur, err := r.roles.Find(ctx, bson.M{"role": string(role)})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	ids := make([]primitive.ObjectID, 0)
	for cur.Next(ctx) {
		var assignment struct {
			UserID string `bson:"user_id"`
		}
		if err := cur.Decode(&assignment); err != nil {
			return nil, err
		}
		oid, err := primitive.ObjectIDFromHex(assignment.UserID)
		if err != nil {
			continue
		}
		ids = append(ids, oid)
	}
	return ids, cur.Err()
}

// EnsureIndexes creates the unique indexes backing the uniqueness invariants.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	userIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	if _, err := r.users.Indexes().CreateMany(ctx, userIndexes); err != nil {
		return err
	}

	roleIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "role", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	_, err := r.roles.Indexes().CreateMany(ctx, roleIndexes)
	return err
}

func toMongoUser(u *domain.User) *mongoUser {
	doc := &mongoUser{
		Name:          u.Name,
		Email:         u.Email,
		Username:      u.Username,
		Phone:         u.Phone,
		PasswordHash:  u.PasswordHash,
		Active:        u.Active,
		DepartmentID:  u.DepartmentID,
		DesignationID: u.DesignationID,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
	if u.ID != "" {
		if oid, err := primitive.ObjectIDFromHex(u.ID); err == nil {
			doc.ID = oid
		}
	}
	return doc
}

func fromMongoUser(mu *mongoUser) *domain.User {
	return &domain.User{
		ID:            mu.ID.Hex(),
		Name:          mu.Name,
		Email:         mu.Email,
		Username:      mu.Username,
		Phone:         mu.Phone,
		PasswordHash:  mu.PasswordHash,
		Active:        mu.Active,
		DepartmentID:  mu.DepartmentID,
		DesignationID: mu.DesignationID,
		CreatedAt:     mu.CreatedAt,
		UpdatedAt:     mu.UpdatedAt,
	}
}
