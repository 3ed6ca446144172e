package game

import "sync"

// builtinConstructors lists every card constructor in catalog order.
var builtinConstructors = []func() *CardDef{
	CalibrationUnit,
	LonerBot,
	Copycat,
	SiphonDrone,
	JealousUnit,
	SequenceBot,
	Kickback,
	PatienceCircuit,
	Turncoat,
	Void,
	BuddySystem,
	Mimic,
	TugOfWar,
	HollowFrame,
	EchoChamber,
	OneShot,
	Embargo,
	Scavenger,
	Magnet,
	HotPotato,
	FarewellUnit,
	SpiteModule,
	Boomerang,
	DonationBot,
	Rewinder,
	SacrificialLamb,
	Tripwire,
	FalseFlag,
	Snare,
	MirrorTrap,
}

// Catalog is a read-only registry of card definitions, validated once at
// construction. No mutation happens after construction; definitions are
// shared by reference.
type Catalog struct {
	defs   []*CardDef
	byName map[string]*CardDef
}

// NewCatalog validates the given definitions and builds a registry. Duplicate
// or unnamed definitions fail with ErrCatalog.
func NewCatalog(defs []*CardDef) (*Catalog, error) {
	c := &Catalog{byName: make(map[string]*CardDef, len(defs))}
	for _, def := range defs {
		if def == nil || def.Name == "" {
			return nil, catalogf("unnamed card definition")
		}
		if _, dup := c.byName[def.Name]; dup {
			return nil, catalogf("duplicate card definition %q", def.Name)
		}
		if def.Kind == KindTrap && def.Trigger == TriggerNone {
			return nil, catalogf("trap %q has no trigger condition", def.Name)
		}
		if def.Kind != KindTrap && def.Trigger != TriggerNone {
			return nil, catalogf("non-trap %q declares a trigger condition", def.Name)
		}
		c.byName[def.Name] = def
		c.defs = append(c.defs, def)
	}
	return c, nil
}

// Lookup returns the definition for a card name, or ErrCatalog if missing.
func (c *Catalog) Lookup(name string) (*CardDef, error) {
	def, ok := c.byName[name]
	if !ok {
		return nil, catalogf("card not found: %q", name)
	}
	return def, nil
}

// Defs returns all definitions in catalog order. Callers must not mutate.
func (c *Catalog) Defs() []*CardDef {
	return c.defs
}

var (
	builtinOnce    sync.Once
	builtinCatalog *Catalog
)

// BuiltinCatalog returns the full stock card set. The constructor list is
// static, so a validation failure here is a programming error.
func BuiltinCatalog() *Catalog {
	builtinOnce.Do(func() {
		defs := make([]*CardDef, 0, len(builtinConstructors))
		for _, ctor := range builtinConstructors {
			defs = append(defs, ctor())
		}
		var err error
		builtinCatalog, err = NewCatalog(defs)
		if err != nil {
			panic(err)
		}
	})
	return builtinCatalog
}
