package lib

import (
	"fmt"
)

// Mode is the mode fakegas is run in.
type Mode int
const (
	HelpMode Mode = iota
	ConvertMode
	CheckMode
	InfoMode
)

var modeNames = []string{ "help", "convert", "check", "info" }

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) { return fmt.Sprintf("Mode(%d)", int(m)) }
	return modeNames[m]
}

// ParseMode converts the name of a mode into a Mode.
func ParseMode(name string) (Mode, error) {
	for i := range modeNames {
		if modeNames[i] == name { return Mode(i), nil }
	}
	return HelpMode, fmt.Errorf("You attempted to run fakegas in the mode " +
		"'%s', but the only valid modes are 'help', 'convert', 'check', " +
		"and 'info'.", name)
}
