package storage_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/reqsmith/casegen/pkg/storage"
)

func testSystem(t *testing.T) storage.System {
	t.Helper()

	sys, err := storage.New(
		&storage.Config{Root: t.TempDir()},
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	if err != nil {
		t.Fatalf("new storage failed: %v", err)
	}

	return sys
}

func TestUploadDownloadRoundTrip(t *testing.T) {
	sys := testSystem(t)
	ctx := context.Background()

	key := "documents/abc123/spec.pdf"
	content := "requirements document body"

	if err := sys.Upload(ctx, key, strings.NewReader(content), "application/pdf"); err != nil {
		t.Fatalf("upload failed: %v", err)
	}

	reader, err := sys.Download(ctx, key)
	if err != nil {
		t.Fatalf("download failed: %v", err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if string(data) != content {
		t.Errorf("content = %q, want %q", data, content)
	}
}

func TestExistsAndDelete(t *testing.T) {
	sys := testSystem(t)
	ctx := context.Background()

	key := "documents/xyz/file.txt"

	exists, err := sys.Exists(ctx, key)
	if err != nil {
		t.Fatalf("exists failed: %v", err)
	}
	if exists {
		t.Error("blob should not exist before upload")
	}

	if err := sys.Upload(ctx, key, strings.NewReader("data"), "text/plain"); err != nil {
		t.Fatalf("upload failed: %v", err)
	}

	exists, err = sys.Exists(ctx, key)
	if err != nil {
		t.Fatalf("exists failed: %v", err)
	}
	if !exists {
		t.Error("blob should exist after upload")
	}

	if err := sys.Delete(ctx, key); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	exists, _ = sys.Exists(ctx, key)
	if exists {
		t.Error("blob should not exist after delete")
	}
}

func TestDownloadMissing(t *testing.T) {
	sys := testSystem(t)

	_, err := sys.Download(context.Background(), "documents/missing.txt")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestDeleteMissing(t *testing.T) {
	sys := testSystem(t)

	err := sys.Delete(context.Background(), "documents/missing.txt")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestKeyValidation(t *testing.T) {
	sys := testSystem(t)
	ctx := context.Background()

	tests := []struct {
		name string
		key  string
		want error
	}{
		{"empty key", "", storage.ErrEmptyKey},
		{"path traversal", "documents/../etc/passwd", storage.ErrInvalidKey},
		{"absolute path", "/etc/passwd", storage.ErrInvalidKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := sys.Upload(ctx, tt.key, strings.NewReader("x"), "text/plain")
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}
