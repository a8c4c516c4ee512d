package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/campuscore/admin-portal/internal/core/domain"
	"github.com/campuscore/admin-portal/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stubs shared by the service tests
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	byID      map[string]*domain.User
	nextID    int
	createErr error // if set, Create returns this error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byID: make(map[string]*domain.User)}
}

func (r *stubUserRepo) add(u *domain.User) *domain.User {
	if u.ID == "" {
		r.nextID++
		u.ID = fmt.Sprintf("user-%d", r.nextID)
	}
	clone := *u
	r.byID[u.ID] = &clone
	return u
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	return r.add(u), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	clone.Roles = append([]domain.Role(nil), u.Roles...)
	return &clone, nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.byID {
		if u.Username == username {
			clone := *u
			clone.Roles = append([]domain.Role(nil), u.Roles...)
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) EmailInUse(_ context.Context, email, excludeID string) (bool, error) {
	for _, u := range r.byID {
		if u.Email == email && u.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubUserRepo) UsernameInUse(_ context.Context, username, excludeID string) (bool, error) {
	for _, u := range r.byID {
		if u.Username == username && u.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubUserRepo) List(_ context.Context, f ports.ListUsersFilter) ([]*domain.User, int64, error) {
	var matched []*domain.User
	for _, u := range r.byID {
		if f.Role != "" && !u.HasRole(f.Role) {
			continue
		}
		clone := *u
		matched = append(matched, &clone)
	}
	total := int64(len(matched))
	start := (f.Page - 1) * f.Limit
	if start > len(matched) {
		start = len(matched)
	}
	end := start + f.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (r *stubUserRepo) Update(_ context.Context, u *domain.User) error {
	if _, ok := r.byID[u.ID]; !ok {
		return domain.ErrUserNotFound
	}
	clone := *u
	r.byID[u.ID] = &clone
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *stubUserRepo) SetActive(_ context.Context, id string, active bool) error {
	u, ok := r.byID[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Active = active
	return nil
}

type stubRoleRepo struct {
	byUser map[string][]domain.Role
}

func newStubRoleRepo() *stubRoleRepo {
	return &stubRoleRepo{byUser: make(map[string][]domain.Role)}
}

func (r *stubRoleRepo) GetRolesForUser(_ context.Context, userID string) ([]domain.Role, error) {
	return append([]domain.Role(nil), r.byUser[userID]...), nil
}

func (r *stubRoleRepo) AddRoleAssignment(_ context.Context, userID string, role domain.Role) error {
	for _, held := range r.byUser[userID] {
		if held == role {
			return nil
		}
	}
	r.byUser[userID] = append(r.byUser[userID], role)
	return nil
}

func (r *stubRoleRepo) DeleteRoleAssignment(_ context.Context, userID string, role domain.Role) error {
	kept := r.byUser[userID][:0]
	for _, held := range r.byUser[userID] {
		if held != role {
			kept = append(kept, held)
		}
	}
	r.byUser[userID] = kept
	return nil
}

func (r *stubRoleRepo) DeleteAllForUser(_ context.Context, userID string) error {
	delete(r.byUser, userID)
	return nil
}

func (r *stubRoleRepo) has(userID string, role domain.Role) bool {
	for _, held := range r.byUser[userID] {
		if held == role {
			return true
		}
	}
	return false
}

type stubPhotoRepo struct {
	byID      map[string]*domain.Photo
	nextID    int
	createErr error // if set, Create returns this error
}

func newStubPhotoRepo() *stubPhotoRepo {
	return &stubPhotoRepo{byID: make(map[string]*domain.Photo)}
}

func (r *stubPhotoRepo) Create(_ context.Context, p *domain.Photo) (*domain.Photo, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	if p.ID == "" {
		r.nextID++
		p.ID = fmt.Sprintf("photo-%d", r.nextID)
	}
	clone := *p
	r.byID[p.ID] = &clone
	return p, nil
}

func (r *stubPhotoRepo) FindByID(_ context.Context, id string) (*domain.Photo, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrPhotoNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubPhotoRepo) ListByUser(_ context.Context, userID string) ([]*domain.Photo, error) {
	var out []*domain.Photo
	for _, p := range r.byID {
		if p.UserID == userID {
			clone := *p
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubPhotoRepo) FindProfileByUser(_ context.Context, userID string) (*domain.Photo, error) {
	for _, p := range r.byID {
		if p.UserID == userID && p.IsProfile {
			clone := *p
			return &clone, nil
		}
	}
	return nil, domain.ErrPhotoNotFound
}

func (r *stubPhotoRepo) SetProfile(_ context.Context, userID, photoID string) error {
	if _, ok := r.byID[photoID]; !ok {
		return domain.ErrPhotoNotFound
	}
	for _, p := range r.byID {
		if p.UserID == userID {
			p.IsProfile = p.ID == photoID
		}
	}
	return nil
}

func (r *stubPhotoRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrPhotoNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *stubPhotoRepo) DeleteAllForUser(_ context.Context, userID string) error {
	for id, p := range r.byID {
		if p.UserID == userID {
			delete(r.byID, id)
		}
	}
	return nil
}

type stubBlobStore struct {
	objects map[string]string // object name -> content type
	removed []string
	putErr  error
}

func newStubBlobStore() *stubBlobStore {
	return &stubBlobStore{objects: make(map[string]string)}
}

func (b *stubBlobStore) Put(_ context.Context, objectName, contentType string, _ io.Reader, _ int64) error {
	if b.putErr != nil {
		return b.putErr
	}
	b.objects[objectName] = contentType
	return nil
}

func (b *stubBlobStore) Remove(_ context.Context, objectName string) error {
	delete(b.objects, objectName)
	b.removed = append(b.removed, objectName)
	return nil
}

func (b *stubBlobStore) PresignedURL(_ context.Context, objectName string, _ time.Duration) (string, error) {
	return "https://blobs.test/" + objectName, nil
}

type stubReferenceRepo struct {
	departments  map[string]domain.Department
	designations map[string]domain.Designation
}

func newStubReferenceRepo() *stubReferenceRepo {
	return &stubReferenceRepo{
		departments:  make(map[string]domain.Department),
		designations: make(map[string]domain.Designation),
	}
}

func (r *stubReferenceRepo) Departments(_ context.Context) ([]domain.Department, error) {
	var out []domain.Department
	for _, d := range r.departments {
		out = append(out, d)
	}
	return out, nil
}

func (r *stubReferenceRepo) Designations(_ context.Context) ([]domain.Designation, error) {
	var out []domain.Designation
	for _, d := range r.designations {
		out = append(out, d)
	}
	return out, nil
}

func (r *stubReferenceRepo) DepartmentExists(_ context.Context, id string) (bool, error) {
	_, ok := r.departments[id]
	return ok, nil
}

func (r *stubReferenceRepo) DesignationExists(_ context.Context, id string) (bool, error) {
	_, ok := r.designations[id]
	return ok, nil
}

type stubSessionStore struct {
	sessions map[string]*domain.Session
	nextID   int
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{sessions: make(map[string]*domain.Session)}
}

func (s *stubSessionStore) Create(_ context.Context, userID string, role domain.Role) (*domain.Session, error) {
	s.nextID++
	now := time.Now().UTC()
	sess := &domain.Session{
		ID:        fmt.Sprintf("sess-%d", s.nextID),
		UserID:    userID,
		Role:      role,
		CreatedAt: now,
		ExpiresAt: now.Add(12 * time.Hour),
	}
	s.sessions[sess.ID] = sess
	return sess, nil
}

func (s *stubSessionStore) Get(_ context.Context, id string) (*domain.Session, error) {
	sess, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	clone := *sess
	return &clone, nil
}

func (s *stubSessionStore) Regenerate(_ context.Context, id string) (*domain.Session, error) {
	old, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	delete(s.sessions, id)
	fresh := *old
	fresh.ID = "regen-" + id
	s.sessions[fresh.ID] = &fresh
	return &fresh, nil
}

func (s *stubSessionStore) Delete(_ context.Context, id string) error {
	delete(s.sessions, id)
	return nil
}

// stubTransactor runs fn directly; rollback behavior is not simulated.
type stubTransactor struct {
	calls int
}

func (t *stubTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls++
	return fn(ctx)
}
