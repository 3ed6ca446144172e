package game

import (
	"errors"
	"testing"
)

func TestNewCatalogRejectsDuplicates(t *testing.T) {
	_, err := NewCatalog([]*CardDef{CalibrationUnit(), CalibrationUnit()})
	if !errors.Is(err, ErrCatalog) {
		t.Fatalf("err = %v, want ErrCatalog", err)
	}
}

func TestNewCatalogRejectsUnnamed(t *testing.T) {
	_, err := NewCatalog([]*CardDef{{Kind: KindCenter}})
	if !errors.Is(err, ErrCatalog) {
		t.Fatalf("err = %v, want ErrCatalog", err)
	}
}

func TestNewCatalogChecksTrapTriggers(t *testing.T) {
	noTrigger := &CardDef{Name: "Dud", Kind: KindTrap}
	if _, err := NewCatalog([]*CardDef{noTrigger}); !errors.Is(err, ErrCatalog) {
		t.Fatalf("trap without trigger: err = %v, want ErrCatalog", err)
	}
	strayTrigger := &CardDef{Name: "Eager", Kind: KindCenter, Trigger: TriggerOppScored}
	if _, err := NewCatalog([]*CardDef{strayTrigger}); !errors.Is(err, ErrCatalog) {
		t.Fatalf("non-trap with trigger: err = %v, want ErrCatalog", err)
	}
}

func TestLookupMissingCard(t *testing.T) {
	_, err := BuiltinCatalog().Lookup("No Such Bot")
	if !errors.Is(err, ErrCatalog) {
		t.Fatalf("err = %v, want ErrCatalog", err)
	}
}
