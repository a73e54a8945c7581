package keypad

import "unicode"

// layout maps the left-hand block of a QWERTY keyboard onto
// the keypad:
//
//	1 2 3 4        1 2 3 C
//	Q W E R   ->   4 5 6 D
//	A S D F        7 8 9 E
//	Z X C V        A 0 B F
var layout = map[rune]Key{
	'1': Key1, '2': Key2, '3': Key3, '4': KeyC,
	'q': Key4, 'w': Key5, 'e': Key6, 'r': KeyD,
	'a': Key7, 's': Key8, 'd': Key9, 'f': KeyE,
	'z': KeyA, 'x': Key0, 'c': KeyB, 'v': KeyF,
}

// FromRune returns the key mapped to the given keyboard
// character, ignoring case.
func FromRune(r rune) (Key, bool) {
	k, ok := layout[unicode.ToLower(r)]
	return k, ok
}
