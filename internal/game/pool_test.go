package game

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writePoolFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pool.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParsePoolFile(t *testing.T) {
	path := writePoolFile(t, `
name: demo
cards:
  - Calibration Unit
  - Kickback
  - Farewell Unit
`)
	pf, err := ParsePoolFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if pf.Name != "demo" || len(pf.Cards) != 3 {
		t.Fatalf("pool = %+v, want demo with 3 cards", pf)
	}
}

func TestParsePoolFileUnknownCard(t *testing.T) {
	path := writePoolFile(t, `
name: broken
cards:
  - No Such Bot
`)
	_, err := ParsePoolFile(path)
	if !errors.Is(err, ErrCatalog) {
		t.Fatalf("err = %v, want ErrCatalog", err)
	}
}

func TestParsePoolFileEmpty(t *testing.T) {
	path := writePoolFile(t, "name: empty\n")
	_, err := ParsePoolFile(path)
	if !errors.Is(err, ErrCatalog) {
		t.Fatalf("err = %v, want ErrCatalog", err)
	}
}
