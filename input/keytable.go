package input

import "github.com/gdamore/tcell/v2"

// KeyTable maps keys to intents
type KeyTable struct {
	// Special keys (Esc, Ctrl+*)
	SpecialKeys map[tcell.Key]IntentType

	// Plain rune bindings
	Runes map[rune]IntentType
}

// DefaultKeyTable returns the default key bindings
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		SpecialKeys: map[tcell.Key]IntentType{
			tcell.KeyEscape: IntentQuit,
			tcell.KeyCtrlC:  IntentQuit,
		},
		Runes: map[rune]IntentType{
			'r': IntentRestart,
			'R': IntentRestart,
			'q': IntentLeave,
			'Q': IntentLeave,
			'm': IntentToggleMute,
		},
	}
}

// Lookup resolves a key event to an intent
func (t *KeyTable) Lookup(ev *tcell.EventKey) IntentType {
	if ev.Key() == tcell.KeyRune {
		return t.Runes[ev.Rune()]
	}
	return t.SpecialKeys[ev.Key()]
}
