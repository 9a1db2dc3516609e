package storage

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/visago/visa-assistant/internal/core/domain"
)

func TestDisk_SaveOpenRemove(t *testing.T) {
	d, err := NewDisk(t.TempDir())
	if err != nil {
		t.Fatalf("NewDisk: %v", err)
	}

	n, err := d.Save("u1-1-passport.pdf", strings.NewReader("%PDF-1.4"))
	if err != nil || n != 8 {
		t.Fatalf("save: n=%d err=%v", n, err)
	}

	if _, err := d.Save("u1-1-passport.pdf", strings.NewReader("again")); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected ErrConflict on overwrite, got %v", err)
	}

	f, err := d.Open("u1-1-passport.pdf")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	b, _ := io.ReadAll(f)
	_ = f.Close()
	if string(b) != "%PDF-1.4" {
		t.Fatalf("unexpected content %q", b)
	}

	if err := d.Remove("u1-1-passport.pdf"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := d.Open("u1-1-passport.pdf"); !errors.Is(err, domain.ErrDocumentNotFound) {
		t.Fatalf("expected ErrDocumentNotFound, got %v", err)
	}
}

func TestDisk_RejectsTraversal(t *testing.T) {
	d, _ := NewDisk(t.TempDir())

	for _, name := range []string{"../etc/passwd", "a/b.pdf", `a\b.pdf`, "..", ""} {
		if _, err := d.Open(name); !errors.Is(err, domain.ErrInvalidDocument) {
			t.Fatalf("%q: expected ErrInvalidDocument, got %v", name, err)
		}
	}
}
