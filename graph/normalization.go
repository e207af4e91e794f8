// SPDX-License-Identifier: MIT

package graph

import (
	"fmt"
	"strings"
)

// Normalization selects how the Laplacian is normalized.
type Normalization int

const (
	// None is the unnormalized Laplacian D − A.
	None Normalization = iota
	// Sym is the symmetric Laplacian I − D^-1/2 A D^-1/2.
	Sym
	// RW is the random-walk Laplacian I − D^-1 A.
	RW
)

// String returns the keyword accepted by ParseNormalization.
func (n Normalization) String() string {
	switch n {
	case None:
		return "none"
	case Sym:
		return "sym"
	case RW:
		return "rw"
	default:
		return fmt.Sprintf("Normalization(%d)", int(n))
	}
}

// Valid reports whether n is one of None, Sym, RW.
func (n Normalization) Valid() bool { return n == None || n == Sym || n == RW }

// ParseNormalization maps a keyword to a Normalization.
// "" and "none" yield None; "sym" Sym; "rw" RW. Matching is case-insensitive.
func ParseNormalization(s string) (Normalization, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return None, nil
	case "sym":
		return Sym, nil
	case "rw":
		return RW, nil
	}

	return None, graphErrorf(opParseNorm, fmt.Errorf("%q: %w", s, ErrInvalidNormalization))
}
