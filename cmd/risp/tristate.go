package main

import (
	"fmt"
	"os"
	"strings"
)

// tristate is the value of --color and --ui.
type tristate uint8

const (
	stateAuto tristate = iota
	stateOn
	stateOff
)

func parseTristate(flag, value string) (tristate, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "auto":
		return stateAuto, nil
	case "on":
		return stateOn, nil
	case "off":
		return stateOff, nil
	}
	return stateAuto, fmt.Errorf("invalid --%s value %q (expected auto|on|off)", flag, value)
}

// resolve turns auto into "is f a terminal".
func (s tristate) resolve(f *os.File) bool {
	if s == stateAuto {
		return isTerminal(f)
	}
	return s == stateOn
}
