package game

// CompareOverride is what a hook returns to alter a compare before its
// elimination is applied. The zero value keeps the engine's natural
// result.
//
//   - Cancel: the compare is voided, nobody is eliminated.
//   - Draw: the compare stands but is ruled a draw, nobody is eliminated.
//   - Replace: Loser is eliminated instead of the natural loser;
//     a Loser of NoSeat eliminates nobody.
type CompareOverride struct {
	Cancel  bool
	Draw    bool
	Replace bool
	Loser   int
}

// KeepNatural returns an override that leaves the engine's result intact
func KeepNatural() CompareOverride {
	return CompareOverride{}
}

// RedirectLoser returns an override that eliminates seat in place of
// the natural loser
func RedirectLoser(seat int) CompareOverride {
	return CompareOverride{Replace: true, Loser: seat}
}

// Hooks is the engine's extension surface. The item/effect system
// implements it to intercept outcomes without the engine knowing about
// items. A nil Hooks applies every natural result.
type Hooks interface {
	// BeforeCompareResolution is invoked with the challenger, the
	// challenged player, the raw comparison result (1, -1 or 0 from the
	// challenger's perspective) and the naturally determined loser,
	// before that loser is eliminated.
	BeforeCompareResolution(attacker, defender, result, loser int) CompareOverride
}

// HookFunc adapts a function to the Hooks interface
type HookFunc func(attacker, defender, result, loser int) CompareOverride

// BeforeCompareResolution implements Hooks
func (f HookFunc) BeforeCompareResolution(attacker, defender, result, loser int) CompareOverride {
	return f(attacker, defender, result, loser)
}
