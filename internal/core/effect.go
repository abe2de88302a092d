package core

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownEffect is returned when a text effect name is not recognized.
var ErrUnknownEffect = errors.New("unknown effect")

// Effect is a set of text attributes applied to a cell.
type Effect uint8

// Text effects. Combine with bitwise OR.
const (
	EffectBold Effect = 1 << iota
	EffectDim
	EffectItalic
	EffectUnderline
	EffectBlink
	EffectReverse
	EffectStrikethrough
)

var effectNames = []struct {
	effect Effect
	name   string
}{
	{EffectBold, "bold"},
	{EffectDim, "dim"},
	{EffectItalic, "italic"},
	{EffectUnderline, "underline"},
	{EffectBlink, "blink"},
	{EffectReverse, "reverse"},
	{EffectStrikethrough, "strikethrough"},
}

// Has reports whether every effect in other is set in e.
func (e Effect) Has(other Effect) bool {
	return e&other == other
}

// String returns the effect names joined by "+", or "none".
func (e Effect) String() string {
	if e == 0 {
		return "none"
	}
	var parts []string
	for _, en := range effectNames {
		if e.Has(en.effect) {
			parts = append(parts, en.name)
		}
	}
	return strings.Join(parts, "+")
}

// ParseEffect parses one effect name or several joined by '+' or ','.
// An empty string yields no effects.
func ParseEffect(s string) (Effect, error) {
	var e Effect
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return r == '+' || r == ',' || r == ' '
	})
	for _, f := range fields {
		found := false
		for _, en := range effectNames {
			if en.name == f {
				e |= en.effect
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("%w: %q", ErrUnknownEffect, f)
		}
	}
	return e, nil
}

// EffectNames returns the names of every recognized effect.
func EffectNames() []string {
	names := make([]string, len(effectNames))
	for i, en := range effectNames {
		names[i] = en.name
	}
	return names
}
