package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/campuscore/admin-portal/internal/core/domain"
	"github.com/campuscore/admin-portal/internal/core/ports"
)

type photoFixture struct {
	svc    *PhotoService
	users  *stubUserRepo
	photos *stubPhotoRepo
	blobs  *stubBlobStore
}

func newPhotoFixture(t *testing.T) *photoFixture {
	t.Helper()
	f := &photoFixture{
		users:  newStubUserRepo(),
		photos: newStubPhotoRepo(),
		blobs:  newStubBlobStore(),
	}
	f.users.add(&domain.User{ID: "user-1", Username: "praman", Active: true})
	f.svc = NewPhotoService(f.photos, f.users, f.blobs, zerolog.Nop())
	return f
}

func jpegUpload(userID, filename string) ports.UploadPhotoInput {
	return ports.UploadPhotoInput{
		UserID:           userID,
		OriginalFilename: filename,
		ContentType:      "image/jpeg",
		SizeBytes:        1024,
		Content:          strings.NewReader("not-really-a-jpeg"),
	}
}

func TestPhotoService_Upload_FirstBecomesProfile(t *testing.T) {
	f := newPhotoFixture(t)

	first, err := f.svc.Upload(context.Background(), jpegUpload("user-1", "a.jpg"))
	if err != nil {
		t.Fatalf("Upload returned error: %v", err)
	}
	if !first.IsProfile {
		t.Fatalf("first photo must become the profile photo")
	}
	if !strings.HasPrefix(first.ObjectName, "user-1/") || !strings.HasSuffix(first.ObjectName, ".jpg") {
		t.Fatalf("unexpected object name %q", first.ObjectName)
	}
	if _, ok := f.blobs.objects[first.ObjectName]; !ok {
		t.Fatalf("blob was not stored")
	}

	second, err := f.svc.Upload(context.Background(), jpegUpload("user-1", "b.jpg"))
	if err != nil {
		t.Fatalf("Upload returned error: %v", err)
	}
	if second.IsProfile {
		t.Fatalf("later photos must not steal the profile flag")
	}
}

func TestPhotoService_Upload_RejectsBadContent(t *testing.T) {
	f := newPhotoFixture(t)

	input := jpegUpload("user-1", "notes.pdf")
	input.ContentType = "application/pdf"
	_, err := f.svc.Upload(context.Background(), input)
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("pdf: expected ValidationError, got %v", err)
	}

	input = jpegUpload("user-1", "huge.jpg")
	input.SizeBytes = maxPhotoBytes + 1
	if _, err := f.svc.Upload(context.Background(), input); !errors.As(err, &verr) {
		t.Fatalf("oversized: expected ValidationError, got %v", err)
	}

	if len(f.blobs.objects) != 0 {
		t.Fatalf("rejected uploads must not reach the blob store")
	}
}

func TestPhotoService_Upload_UnknownUser(t *testing.T) {
	f := newPhotoFixture(t)

	_, err := f.svc.Upload(context.Background(), jpegUpload("ghost", "a.jpg"))
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestPhotoService_Upload_RowFailureCleansBlob(t *testing.T) {
	f := newPhotoFixture(t)
	f.photos.createErr = errors.New("write failed")

	_, err := f.svc.Upload(context.Background(), jpegUpload("user-1", "a.jpg"))
	if err == nil {
		t.Fatalf("expected an error")
	}
	if len(f.blobs.objects) != 0 {
		t.Fatalf("orphaned blob left behind after row failure")
	}
}

func TestPhotoService_List(t *testing.T) {
	f := newPhotoFixture(t)
	if _, err := f.svc.Upload(context.Background(), jpegUpload("user-1", "a.jpg")); err != nil {
		t.Fatalf("Upload returned error: %v", err)
	}

	views, err := f.svc.List(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("expected 1 view, got %d", len(views))
	}
	if !strings.HasPrefix(views[0].URL, "https://blobs.test/") {
		t.Fatalf("expected a presigned URL, got %q", views[0].URL)
	}
}

func TestPhotoService_SetProfile(t *testing.T) {
	f := newPhotoFixture(t)
	first, _ := f.svc.Upload(context.Background(), jpegUpload("user-1", "a.jpg"))
	second, _ := f.svc.Upload(context.Background(), jpegUpload("user-1", "b.jpg"))

	if err := f.svc.SetProfile(context.Background(), "user-1", second.ID); err != nil {
		t.Fatalf("SetProfile returned error: %v", err)
	}
	if f.photos.byID[first.ID].IsProfile {
		t.Fatalf("old profile flag not cleared")
	}
	if !f.photos.byID[second.ID].IsProfile {
		t.Fatalf("new profile flag not set")
	}
}

func TestPhotoService_OwnershipChecks(t *testing.T) {
	f := newPhotoFixture(t)
	f.users.add(&domain.User{ID: "user-2", Username: "other", Active: true})
	photo, _ := f.svc.Upload(context.Background(), jpegUpload("user-1", "a.jpg"))

	// Another user's photo id behaves exactly like a missing one.
	if err := f.svc.SetProfile(context.Background(), "user-2", photo.ID); !errors.Is(err, domain.ErrPhotoNotFound) {
		t.Fatalf("SetProfile: expected ErrPhotoNotFound, got %v", err)
	}
	if err := f.svc.Delete(context.Background(), "user-2", photo.ID); !errors.Is(err, domain.ErrPhotoNotFound) {
		t.Fatalf("Delete: expected ErrPhotoNotFound, got %v", err)
	}
	if _, ok := f.photos.byID[photo.ID]; !ok {
		t.Fatalf("photo must survive a foreign delete attempt")
	}
}

func TestPhotoService_Delete(t *testing.T) {
	f := newPhotoFixture(t)
	photo, _ := f.svc.Upload(context.Background(), jpegUpload("user-1", "a.jpg"))

	if err := f.svc.Delete(context.Background(), "user-1", photo.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, ok := f.photos.byID[photo.ID]; ok {
		t.Fatalf("photo row survived deletion")
	}
	if _, ok := f.blobs.objects[photo.ObjectName]; ok {
		t.Fatalf("blob survived deletion")
	}
	if err := f.svc.Delete(context.Background(), "user-1", photo.ID); !errors.Is(err, domain.ErrPhotoNotFound) {
		t.Fatalf("repeat delete: expected ErrPhotoNotFound, got %v", err)
	}
}
