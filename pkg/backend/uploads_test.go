package backend

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/basalt-io/basalt-cms/pkg/clock"
	"github.com/basalt-io/basalt-cms/pkg/model"
)

func newLocalUploader(t *testing.T) *Uploader {
	t.Helper()
	u, err := NewUploader(UploadConfig{
		LocalDir:     filepath.Join(t.TempDir(), "uploads"),
		PublicPrefix: "/static/uploads",
		MaxSizeBytes: 1 << 20,
	})
	if err != nil {
		t.Fatal(err)
	}
	return u
}

func TestUploadLocal(t *testing.T) {
	u := newLocalUploader(t)
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, clock.Location)

	resp, err := u.Upload(now, []byte("fake image bytes"), "photo.PNG", "image/png")
	if err != nil {
		t.Fatal(err)
	}
	if resp.Storage != "local" {
		t.Errorf("storage = %q", resp.Storage)
	}
	if resp.OriginalFilename != "photo.PNG" {
		t.Errorf("original = %q", resp.OriginalFilename)
	}
	if !strings.HasSuffix(resp.Filename, ".png") {
		t.Errorf("generated filename %q does not keep the lowered extension", resp.Filename)
	}
	if !strings.HasPrefix(resp.URL, "/static/uploads/2024/03/") {
		t.Errorf("url = %q, want the year/month layout", resp.URL)
	}

	// The bytes must actually be on disk under the dated directory.
	stored := filepath.Join(u.localDir, "2024", "03", resp.Filename)
	data, err := os.ReadFile(stored)
	if err != nil {
		t.Fatalf("reading stored file: %v", err)
	}
	if string(data) != "fake image bytes" {
		t.Errorf("stored bytes = %q", data)
	}

	// Two uploads of the same name never collide.
	again, err := u.Upload(now, []byte("other"), "photo.PNG", "image/png")
	if err != nil {
		t.Fatal(err)
	}
	if again.Filename == resp.Filename {
		t.Error("generated filenames collided")
	}
}

func TestUploadRejectsBadInput(t *testing.T) {
	u := newLocalUploader(t)
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, clock.Location)

	_, err := u.Upload(now, []byte("x"), "script.exe", "application/octet-stream")
	if !model.IsValidation(err) {
		t.Errorf("disallowed extension: got %v, want validation error", err)
	}

	_, err = u.Upload(now, []byte("x"), "noextension", "")
	if !model.IsValidation(err) {
		t.Errorf("missing extension: got %v, want validation error", err)
	}

	big := make([]byte, 2<<20)
	_, err = u.Upload(now, big, "big.jpg", "image/jpeg")
	if !model.IsValidation(err) {
		t.Errorf("oversize file: got %v, want validation error", err)
	}
}

func TestNewUploaderDefaults(t *testing.T) {
	u, err := NewUploader(UploadConfig{})
	if err != nil {
		t.Fatal(err)
	}
	if u.svc != nil {
		t.Error("object storage client built without a bucket")
	}
	if u.maxSize != defaultMaxUploadSize {
		t.Errorf("max size = %d", u.maxSize)
	}
}
