package game

import (
	"fmt"
	"strings"
)

// Variant selects which demo scene is built.
type Variant uint8

const (
	VariantShapes   Variant = iota // Static scene, no movement
	VariantWasd                    // Keyboard movement
	VariantClick                   // Click-to-move
	VariantCombined                // Both; keyboard cancels a click target
	numVariants
)

var variantNames = [numVariants]string{"shapes", "wasd", "click", "combined"}

func (v Variant) String() string {
	if v < numVariants {
		return variantNames[v]
	}
	return fmt.Sprintf("Variant(%d)", uint8(v))
}

// ParseVariant parses a variant name (case-insensitive).
func ParseVariant(s string) (Variant, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range variantNames {
		if n == name {
			return Variant(i), nil
		}
	}
	return 0, fmt.Errorf("unknown variant %q (want one of %s)", s, strings.Join(variantNames[:], ", "))
}

// Variants returns every variant in display order.
func Variants() []Variant {
	out := make([]Variant, numVariants)
	for i := range out {
		out[i] = Variant(i)
	}
	return out
}

// HasWasd reports whether the player is keyboard driven.
func (v Variant) HasWasd() bool {
	return v == VariantWasd || v == VariantCombined
}

// HasClick reports whether the player is click driven.
func (v Variant) HasClick() bool {
	return v == VariantClick || v == VariantCombined
}
