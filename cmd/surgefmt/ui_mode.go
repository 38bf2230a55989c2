package main

import (
	"fmt"
	"os"
	"strings"
)

// uiMode is the tri-state behind the --ui flag.
type uiMode uint8

const (
	uiAuto uiMode = iota
	uiOn
	uiOff
)

func readUIMode(value string) (uiMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return uiAuto, nil
	case "on":
		return uiOn, nil
	case "off":
		return uiOff, nil
	}
	return uiAuto, fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
}

// shouldUseTUI: explicit on/off wins; auto follows whether stdout is a TTY.
func shouldUseTUI(mode uiMode) bool {
	if mode == uiAuto {
		return isTerminal(os.Stdout)
	}
	return mode == uiOn
}
