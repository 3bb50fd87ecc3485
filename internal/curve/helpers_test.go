package curve

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254"
)

// generatorsForTest returns the standard BN254 generators, used across this
// package's tests as known on-curve points.
func generatorsForTest(t *testing.T) (bn254.G1Affine, bn254.G2Affine) {
	t.Helper()
	_, _, g1Aff, g2Aff := bn254.Generators()
	return g1Aff, g2Aff
}
