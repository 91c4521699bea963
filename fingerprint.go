package mosaic

import "math/bits"

// Fingerprint is a commutative 64-bit hash of a set of component ids,
// used as the registry's table key (spec.md §3). The registry looks
// tables up by fingerprint alone and does not compare exact
// component-id sets, so two id sets with the same fingerprint resolve
// to the same table.
type Fingerprint uint64

// fingerprintMixer is a fixed odd multiplicative mixer, chosen (as
// spec.md allows) for negligible collision over the expected id space.
const fingerprintMixer uint64 = 0x9E3779B97F4A7C15

func mixID(id ComponentID) uint64 {
	return uint64(id) * fingerprintMixer
}

// Add folds id into the fingerprint. Insertion order never affects the
// result because the fold is addition, which is commutative — the
// same multiset of ids always produces the same Fingerprint regardless
// of the order components were added in.
func (fp *Fingerprint) Add(id ComponentID) {
	m := mixID(id)
	shift := uint(m%32) + 1
	*fp = Fingerprint(uint64(*fp) + bits.RotateLeft64(m, int(shift)))
}

// FingerprintOf computes the fingerprint for a set of component ids in
// one call.
func FingerprintOf(ids []ComponentID) Fingerprint {
	var fp Fingerprint
	for _, id := range ids {
		fp.Add(id)
	}
	return fp
}
