package store

import (
	"path/filepath"
	"testing"

	"github.com/roach88/bindgen/internal/bindgen"
)

// createTestStore opens a fresh store in a temp directory.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cache.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestResult returns a result whose artifacts are tagged with v.
func createTestResult(v string) *bindgen.Result {
	return &bindgen.Result{
		DeclarationsJS:         "js " + v,
		DeclarationsTypeScript: "ts-runtime " + v,
		DeclarationsTS:         "dts " + v,
		InterfaceTS:            "iface " + v,
		ServiceTS:              "svc " + v,
	}
}
