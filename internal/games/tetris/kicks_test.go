package tetris

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vovakirdan/tui-tetris/internal/core"
)

func TestKickTablesComplete(t *testing.T) {
	for _, family := range []KickFamily{FamilyStandard, FamilyLongBar} {
		for _, dir := range []Direction{Left, Right} {
			for from := 0; from < numRots; from++ {
				offsets, ok := Kicks(family, dir, from)
				if !assert.True(t, ok, "missing kicks family=%d dir=%s from=%d", family, dir, from) {
					continue
				}
				assert.Equal(t, core.Pt(0, 0), offsets[0], "first kick must be the identity")
			}
		}
	}
}

func TestKicksRejectUnknownKeys(t *testing.T) {
	_, ok := Kicks(FamilyStandard, Up, Spawn)
	assert.False(t, ok)

	_, ok = Kicks(FamilyLongBar, Right, 4)
	assert.False(t, ok)
}

// Undoing a rotation must try the same offsets reversed, which is what makes
// SRS kicks reversible.
func TestKicksAreInverseOfOppositeRotation(t *testing.T) {
	for _, family := range []KickFamily{FamilyStandard, FamilyLongBar} {
		for from := 0; from < numRots; from++ {
			to := (from + 1) % numRots
			cw, _ := Kicks(family, Right, from)
			ccw, _ := Kicks(family, Left, to)
			for i := range cw {
				assert.Equal(t, core.Pt(-cw[i].X, -cw[i].Y), ccw[i],
					"family=%d %d->%d kick %d", family, from, to, i)
			}
		}
	}
}

func TestKindFamilies(t *testing.T) {
	assert.Equal(t, FamilyLongBar, I.Family())
	for _, k := range []Kind{J, L, O, S, T, Z} {
		assert.Equal(t, FamilyStandard, k.Family(), k.String())
	}
}
