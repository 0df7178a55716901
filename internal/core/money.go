// Package core holds the domain model of the book collection together with
// the pure aggregation functions that derive dashboard datasets from it.
//
// This file contains the money representation. Amounts are kept in cents to
// avoid floating-point drift in sums; floats appear only at the formatting
// boundary.
package core

import (
	"fmt"
	"strconv"
)

// Money is an amount in cents of a real (BRL).
type Money struct {
	Cents int64
}

// Add returns the sum of two amounts.
func (m Money) Add(o Money) Money {
	return Money{Cents: m.Cents + o.Cents}
}

// Reais returns the amount as a float64 for display purposes.
// Use cents for any arithmetic.
func (m Money) Reais() float64 {
	return float64(m.Cents) / 100.0
}

// BRL formats the amount as a currency string with two decimal places,
// e.g. "R$ 12.34".
func (m Money) BRL() string {
	cents := m.Cents
	neg := cents < 0
	if neg {
		cents = -cents
	}
	s := strconv.FormatInt(cents/100, 10) + "." + fmt.Sprintf("%02d", cents%100)
	if neg {
		return "-R$ " + s
	}
	return "R$ " + s
}

// Average is the outcome of averaging prices over qualifying rows. Valid is
// false when no row qualified; that state is distinct from an average that
// is literally zero and must render as "no data", never as R$ 0.00.
type Average struct {
	Cents int64
	Valid bool
}

// Money returns the average as an amount, and whether it is defined.
func (a Average) Money() (Money, bool) {
	return Money{Cents: a.Cents}, a.Valid
}

// BRL formats a defined average as currency and an undefined one as "—".
func (a Average) BRL() string {
	if !a.Valid {
		return "—"
	}
	return Money{Cents: a.Cents}.BRL()
}
