// Copyright (C) 2020  Ambassador Labs (for Telepresence)
// Copyright (C) 2021-2026  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0
//
// Based on
// https://github.com/telepresenceio/telepresence/blob/b6dfa04ff014915b47386191cc3d8b1352522fea/pkg/client/cli/command_group.go#L35-L63

package cliutil

import (
	"os"
	"strconv"

	"golang.org/x/term"
)

// GetTerminalWidth returns the width that help text written to stdout should be wrapped to.
func GetTerminalWidth() int {
	return terminalWidth(os.Getenv("COLUMNS"), int(os.Stdout.Fd()))
}

// terminalWidth returns $COLUMNS if it is a number, else the width of the terminal `fd`.  A
// terminal of unknown size is taken to be 80 wide; 0 (don't wrap) is returned if `fd` isn't a
// terminal at all.
func terminalWidth(columns string, fd int) int {
	// Copyright note: This code was originally written by LukeShu for Telepresence.
	if cols, err := strconv.Atoi(columns); err == nil {
		return cols
	}
	if cols, _, err := term.GetSize(fd); err == nil {
		return cols
	}
	if term.IsTerminal(fd) {
		return 80
	}
	return 0
}
