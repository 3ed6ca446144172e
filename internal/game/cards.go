package game

// Card constructors. Every card is data only: a name, an icon, a kind, and a
// closed EffectSpec the resolver interprets. No card carries code.

// --- Center-scoring cards ---

// CalibrationUnit — Gear. Score 2.
func CalibrationUnit() *CardDef {
	return &CardDef{
		Name: "Calibration Unit",
		Icon: IconGear,
		Kind: KindCenter,
		Spec: EffectSpec{Op: OpScore, Points: 2},
	}
}

// LonerBot — Chip. Score 4 if neither adjacent card shares an icon.
func LonerBot() *CardDef {
	return &CardDef{
		Name: "Loner Bot",
		Icon: IconChip,
		Kind: KindCenter,
		Spec: EffectSpec{Op: OpLonerBonus, Points: 4},
	}
}

// Copycat — Gear. Score the lower of the neighbors' last center scores.
func Copycat() *CardDef {
	return &CardDef{
		Name: "Copycat",
		Icon: IconGear,
		Kind: KindCenter,
		Spec: EffectSpec{Op: OpCopycat},
	}
}

// SiphonDrone — Spark. Score 3; the opponent also scores 2.
func SiphonDrone() *CardDef {
	return &CardDef{
		Name: "Siphon Drone",
		Icon: IconSpark,
		Kind: KindCenter,
		Spec: EffectSpec{Op: OpSiphon, Points: 3, OppPoints: 2},
	}
}

// JealousUnit — Heart. Score 2 per opponent row card sharing an icon.
func JealousUnit() *CardDef {
	return &CardDef{
		Name: "Jealous Unit",
		Icon: IconHeart,
		Kind: KindCenter,
		Spec: EffectSpec{Op: OpJealousy, Points: 2},
	}
}

// SequenceBot — Chip. Score 3 if the row shows three different icons, else 1.
func SequenceBot() *CardDef {
	return &CardDef{
		Name: "Sequence Bot",
		Icon: IconChip,
		Kind: KindCenter,
		Spec: EffectSpec{Op: OpSequence, Points: 3, AltPoints: 1},
	}
}

// Kickback — Spark. Score 2, then push this card one slot toward a chosen
// edge; the displaced edge card is pushed out of the row.
func Kickback() *CardDef {
	return &CardDef{
		Name: "Kickback",
		Icon: IconSpark,
		Kind: KindCenter,
		Spec: EffectSpec{Op: OpKickback, Points: 2},
	}
}

// PatienceCircuit — Chip. Mark the current turn; at game end, score the
// number of turns elapsed since the mark.
func PatienceCircuit() *CardDef {
	return &CardDef{
		Name: "Patience Circuit",
		Icon: IconChip,
		Kind: KindCenter,
		Spec: EffectSpec{Op: OpPatience},
	}
}

// Turncoat — Heart. Score 2; swap this card with a chosen opponent row card.
func Turncoat() *CardDef {
	return &CardDef{
		Name: "Turncoat",
		Icon: IconHeart,
		Kind: KindCenter,
		Spec: EffectSpec{Op: OpSwapOpponent, Points: 2},
	}
}

// Void — no icon. Score 2 per empty row slot across both rows.
func Void() *CardDef {
	return &CardDef{
		Name: "Void",
		Icon: IconNone,
		Kind: KindCenter,
		Spec: EffectSpec{Op: OpVoidSlots, Points: 2},
	}
}

// BuddySystem — Heart. Score 3 if there is exactly one other card in the row.
func BuddySystem() *CardDef {
	return &CardDef{
		Name: "Buddy System",
		Icon: IconHeart,
		Kind: KindCenter,
		Spec: EffectSpec{Op: OpBuddy, Points: 3},
	}
}

// Mimic — Chip. Score 2; this card's icon becomes its left neighbor's.
func Mimic() *CardDef {
	return &CardDef{
		Name: "Mimic",
		Icon: IconChip,
		Kind: KindCenter,
		Spec: EffectSpec{Op: OpMimic, Points: 2},
	}
}

// TugOfWar — Gear. Score 1; an opponent with a full row must push out an
// edge card of their choice.
func TugOfWar() *CardDef {
	return &CardDef{
		Name: "Tug-of-War",
		Icon: IconGear,
		Kind: KindCenter,
		Spec: EffectSpec{Op: OpTugOfWar, Points: 1},
	}
}

// HollowFrame — Gear. Score 0; counts as every icon for adjacency.
func HollowFrame() *CardDef {
	return &CardDef{
		Name: "Hollow Frame",
		Icon: IconGear,
		Kind: KindCenter,
		Spec: EffectSpec{Op: OpHollowFrame},
	}
}

// EchoChamber — Chip. Score 4 if the turn counter is even, else 0.
func EchoChamber() *CardDef {
	return &CardDef{
		Name: "Echo Chamber",
		Icon: IconChip,
		Kind: KindCenter,
		Spec: EffectSpec{Op: OpEchoParity, Points: 4},
	}
}

// OneShot — Spark. Score 5; remove this card from the game.
func OneShot() *CardDef {
	return &CardDef{
		Name: "One-Shot",
		Icon: IconSpark,
		Kind: KindCenter,
		Spec: EffectSpec{Op: OpOneShot, Points: 5},
	}
}

// Embargo — Gear. Score 1; the market is locked for the opponent's next turn.
func Embargo() *CardDef {
	return &CardDef{
		Name: "Embargo",
		Icon: IconGear,
		Kind: KindCenter,
		Spec: EffectSpec{Op: OpEmbargo, Points: 1},
	}
}

// Scavenger — Gear. May swap this card with any face-down row card.
func Scavenger() *CardDef {
	return &CardDef{
		Name: "Scavenger",
		Icon: IconGear,
		Kind: KindCenter,
		Spec: EffectSpec{Op: OpScavenge},
	}
}

// Magnet — Spark. Score 1; pull a market card into an adjacent slot.
func Magnet() *CardDef {
	return &CardDef{
		Name: "Magnet",
		Icon: IconSpark,
		Kind: KindCenter,
		Spec: EffectSpec{Op: OpMagnet, Points: 1},
	}
}

// HotPotato — Spark. Score 2; this card goes to the opponent's hand, and the
// opponent must immediately discard down to the hand limit without discarding
// it.
func HotPotato() *CardDef {
	return &CardDef{
		Name: "Hot Potato",
		Icon: IconSpark,
		Kind: KindCenter,
		Spec: EffectSpec{Op: OpHotPotato, Points: 2},
	}
}

// --- Exit-scoring cards ---

// FarewellUnit — Heart. Score 3 when pushed out.
func FarewellUnit() *CardDef {
	return &CardDef{
		Name: "Farewell Unit",
		Icon: IconHeart,
		Kind: KindExit,
		Spec: EffectSpec{Op: OpExitScore, Points: 3},
	}
}

// SpiteModule — Chip. The opponent must push out an edge card of their
// choice; it goes straight to the market with no further triggers.
func SpiteModule() *CardDef {
	return &CardDef{
		Name: "Spite Module",
		Icon: IconChip,
		Kind: KindExit,
		Spec: EffectSpec{Op: OpSpiteExit},
	}
}

// Boomerang — Spark. Returns to the owner's hand; unplayable next turn.
func Boomerang() *CardDef {
	return &CardDef{
		Name: "Boomerang",
		Icon: IconSpark,
		Kind: KindExit,
		Spec: EffectSpec{Op: OpBoomerang},
	}
}

// DonationBot — Gear. Goes to the opponent's hand instead of the market.
func DonationBot() *CardDef {
	return &CardDef{
		Name: "Donation Bot",
		Icon: IconGear,
		Kind: KindExit,
		Spec: EffectSpec{Op: OpDonate},
	}
}

// Rewinder — Chip. Take a chosen market card to hand; this card goes to the
// market.
func Rewinder() *CardDef {
	return &CardDef{
		Name: "Rewinder",
		Icon: IconChip,
		Kind: KindExit,
		Spec: EffectSpec{Op: OpRewind},
	}
}

// SacrificialLamb — Heart. Score 3 when pushed out.
func SacrificialLamb() *CardDef {
	return &CardDef{
		Name: "Sacrificial Lamb",
		Icon: IconHeart,
		Kind: KindExit,
		Spec: EffectSpec{Op: OpExitScore, Points: 3},
	}
}

// --- Trap cards ---

// Tripwire — Spark. When the opponent scores from a center effect, that score
// is cancelled and the owner scores 1.
func Tripwire() *CardDef {
	return &CardDef{
		Name:    "Tripwire",
		Icon:    IconSpark,
		Kind:    KindTrap,
		Spec:    EffectSpec{Op: OpTrapCancel, Points: 1},
		Trigger: TriggerOppScored,
	}
}

// FalseFlag — Chip. When the opponent takes a card from the market, that card
// goes to the owner's hand instead.
func FalseFlag() *CardDef {
	return &CardDef{
		Name:    "False Flag",
		Icon:    IconChip,
		Kind:    KindTrap,
		Spec:    EffectSpec{Op: OpTrapRedirect},
		Trigger: TriggerOppMarketDraw,
	}
}

// Snare — Gear. When the opponent plays a card sharing an icon with the
// owner's center card, the played card goes to the market instead of the row.
func Snare() *CardDef {
	return &CardDef{
		Name:    "Snare",
		Icon:    IconGear,
		Kind:    KindTrap,
		Spec:    EffectSpec{Op: OpTrapSnare},
		Trigger: TriggerOppIconPlay,
	}
}

// MirrorTrap — Heart. When the opponent's center card scores, the owner
// scores the same amount.
func MirrorTrap() *CardDef {
	return &CardDef{
		Name:    "Mirror Trap",
		Icon:    IconHeart,
		Kind:    KindTrap,
		Spec:    EffectSpec{Op: OpTrapMirror},
		Trigger: TriggerOppCenterScore,
	}
}
