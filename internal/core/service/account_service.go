package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/campuscore/admin-portal/internal/core/domain"
	"github.com/campuscore/admin-portal/internal/core/ports"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// AccountService implements the admin-panel account operations. Every
// mutation runs inside one transaction so a user record and its role
// assignments never end up half-updated.
type AccountService struct {
	users      ports.UserRepository
	roles      ports.RoleRepository
	photos     ports.PhotoRepository
	blobs      ports.BlobStore
	refs       ports.ReferenceRepository
	tx         ports.Transactor
	bcryptCost int
	logger     zerolog.Logger
}

func NewAccountService(
	users ports.UserRepository,
	roles ports.RoleRepository,
	photos ports.PhotoRepository,
	blobs ports.BlobStore,
	refs ports.ReferenceRepository,
	tx ports.Transactor,
	bcryptCost int,
	logger zerolog.Logger,
) *AccountService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AccountService{
		users:      users,
		roles:      roles,
		photos:     photos,
		blobs:      blobs,
		refs:       refs,
		tx:         tx,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

// Create validates the submitted fields, hashes the password, and persists
// the user together with one role assignment per submitted label.
func (s *AccountService) Create(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
	if err := s.validateRoles(input.Roles); err != nil {
		return nil, err
	}
	if err := s.validateUniqueness(ctx, input.Email, input.Username, ""); err != nil {
		return nil, err
	}
	if err := s.validateReferences(ctx, input.DepartmentID, input.DesignationID); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:          input.Name,
		Email:         input.Email,
		Username:      input.Username,
		Phone:         input.Phone,
		PasswordHash:  string(hash),
		Active:        input.Active,
		DepartmentID:  input.DepartmentID,
		DesignationID: input.DesignationID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		created, err := s.users.Create(ctx, user)
		if err != nil {
			return err
		}
		user = created
		for _, role := range input.Roles {
			if err := s.roles.AddRoleAssignment(ctx, user.ID, role); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	user.Roles = append([]domain.Role(nil), input.Roles...)
	s.logger.Info().Str("user_id", user.ID).Str("username", user.Username).Msg("user created")
	return user, nil
}

func (s *AccountService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

// List returns a page of users. Page defaults to 1, limit to 10, capped at 100.
func (s *AccountService) List(ctx context.Context, input ports.ListUsersInput) (*ports.ListUsersResult, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	users, total, err := s.users.List(ctx, ports.ListUsersFilter{
		Search: input.Search,
		Role:   input.Role,
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return nil, err
	}

	totalPages := int(total) / limit
	if int(total)%limit != 0 {
		totalPages++
	}
	return &ports.ListUsersResult{
		Items:      users,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

// Update applies field changes and reconciles the role set as a diff:
// assignments absent from the submitted list are removed, missing ones are
// added, and everything else is left untouched.
func (s *AccountService) Update(ctx context.Context, id string, input ports.UpdateUserInput) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.validateRoles(input.Roles); err != nil {
		return nil, err
	}
	if err := s.validateUniqueness(ctx, input.Email, input.Username, id); err != nil {
		return nil, err
	}
	if err := s.validateReferences(ctx, input.DepartmentID, input.DesignationID); err != nil {
		return nil, err
	}

	user.Name = input.Name
	user.Email = input.Email
	user.Username = input.Username
	user.Phone = input.Phone
	user.Active = input.Active
	user.DepartmentID = input.DepartmentID
	user.DesignationID = input.DesignationID
	user.UpdatedAt = time.Now().UTC()

	// Empty password means "keep the stored hash".
	if input.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = string(hash)
	}

	toRemove, toAdd := diffRoles(user.Roles, input.Roles)

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.users.Update(ctx, user); err != nil {
			return err
		}
		for _, role := range toRemove {
			if err := s.roles.DeleteRoleAssignment(ctx, user.ID, role); err != nil {
				return err
			}
		}
		for _, role := range toAdd {
			if err := s.roles.AddRoleAssignment(ctx, user.ID, role); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	user.Roles = append([]domain.Role(nil), input.Roles...)
	s.logger.Info().Str("user_id", user.ID).Msg("user updated")
	return user, nil
}

// Delete permanently removes the target user. Owned photo blobs are removed
// from the blob store first, then rows, role assignments, and the user record
// go in one transaction. There is no soft delete and no undo.
func (s *AccountService) Delete(ctx context.Context, actingUserID, targetID string) error {
	if actingUserID == targetID {
		return domain.ErrSelfDeletion
	}

	target, err := s.users.FindByID(ctx, targetID)
	if err != nil {
		return err
	}

	photos, err := s.photos.ListByUser(ctx, targetID)
	if err != nil {
		return err
	}
	for _, p := range photos {
		if err := s.blobs.Remove(ctx, p.ObjectName); err != nil {
			return fmt.Errorf("remove photo blob %s: %w", p.ObjectName, err)
		}
	}

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.photos.DeleteAllForUser(ctx, targetID); err != nil {
			return err
		}
		if err := s.roles.DeleteAllForUser(ctx, targetID); err != nil {
			return err
		}
		return s.users.Delete(ctx, targetID)
	})
	if err != nil {
		return err
	}

	s.logger.Info().Str("user_id", targetID).Str("username", target.Username).Str("deleted_by", actingUserID).Msg("user deleted")
	return nil
}

// ToggleActive flips the active flag. An inactive user cannot complete a
// future login, but sessions already established stay valid until they
// expire on their own.
func (s *AccountService) ToggleActive(ctx context.Context, actingUserID, targetID string) (*domain.User, error) {
	if actingUserID == targetID {
		return nil, domain.ErrSelfToggle
	}

	user, err := s.users.FindByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	user.Active = !user.Active
	if err := s.users.SetActive(ctx, targetID, user.Active); err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", targetID).Bool("active", user.Active).Str("toggled_by", actingUserID).Msg("active flag toggled")
	return user, nil
}

func (s *AccountService) validateRoles(roles []domain.Role) error {
	if len(roles) == 0 {
		return domain.NewValidationError("roles", "at least one role is required")
	}
	for _, r := range roles {
		if !r.IsValid() {
			return domain.NewValidationError("roles", fmt.Sprintf("unknown role %q", r))
		}
	}
	return nil
}

func (s *AccountService) validateUniqueness(ctx context.Context, email, username, excludeID string) error {
	taken, err := s.users.EmailInUse(ctx, email, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return domain.NewValidationError("email", "email is already in use")
	}
	taken, err = s.users.UsernameInUse(ctx, username, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return domain.NewValidationError("username", "username is already in use")
	}
	return nil
}

func (s *AccountService) validateReferences(ctx context.Context, departmentID, designationID string) error {
	if departmentID != "" {
		ok, err := s.refs.DepartmentExists(ctx, departmentID)
		if err != nil {
			return err
		}
		if !ok {
			return domain.NewValidationError("department_id", "department does not exist")
		}
	}
	if designationID != "" {
		ok, err := s.refs.DesignationExists(ctx, designationID)
		if err != nil {
			return err
		}
		if !ok {
			return domain.NewValidationError("designation_id", "designation does not exist")
		}
	}
	return nil
}

// diffRoles computes the assignments to remove and to add so that current
// becomes target without touching assignments present in both.
func diffRoles(current, target []domain.Role) (toRemove, toAdd []domain.Role) {
	currentSet := make(map[domain.Role]struct{}, len(current))
	for _, r := range current {
		currentSet[r] = struct{}{}
	}
	targetSet := make(map[domain.Role]struct{}, len(target))
	for _, r := range target {
		targetSet[r] = struct{}{}
	}
	for _, r := range current {
		if _, ok := targetSet[r]; !ok {
			toRemove = append(toRemove, r)
		}
	}
	for _, r := range target {
		if _, ok := currentSet[r]; !ok {
			toAdd = append(toAdd, r)
		}
	}
	return toRemove, toAdd
}
