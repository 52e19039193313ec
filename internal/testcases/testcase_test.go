package testcases_test

import (
	"strings"
	"testing"

	"github.com/reqsmith/casegen/internal/testcases"
)

func TestNewIdent(t *testing.T) {
	ident := testcases.NewIdent("REQ-001")

	if !strings.HasPrefix(ident, "TC-REQ-001-") {
		t.Errorf("ident = %q, want TC-REQ-001- prefix", ident)
	}

	suffix := strings.TrimPrefix(ident, "TC-REQ-001-")
	if len(suffix) != 8 {
		t.Errorf("suffix = %q, want 8 hex characters", suffix)
	}
}

func TestNewIdentUnique(t *testing.T) {
	a := testcases.NewIdent("REQ-001")
	b := testcases.NewIdent("REQ-001")

	if a == b {
		t.Errorf("consecutive idents collide: %q", a)
	}
}
