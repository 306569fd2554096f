// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

package ip

// uint128 holds an address as two big-endian uint64 halves. Bit 0 is the
// most significant bit of hi, bit 127 is the least significant bit of lo.
type uint128 struct {
	hi uint64
	lo uint64
}

func (u uint128) and(m uint128) uint128 {
	return uint128{u.hi & m.hi, u.lo & m.lo}
}

func (u uint128) or(m uint128) uint128 {
	return uint128{u.hi | m.hi, u.lo | m.lo}
}

func (u uint128) not() uint128 {
	return uint128{^u.hi, ^u.lo}
}

func (u uint128) isZero() bool { return u.hi|u.lo == 0 }

// compare returns -1, 0 or 1.
func (u uint128) compare(v uint128) int {
	switch {
	case u.hi < v.hi:
		return -1
	case u.hi > v.hi:
		return 1
	case u.lo < v.lo:
		return -1
	case u.lo > v.lo:
		return 1
	}
	return 0
}

// mask6 returns a uint128 with the n leading bits set.
func mask6(n int) uint128 {
	return uint128{^(^uint64(0) >> n), ^uint64(0) << (128 - n)}
}

// bitsSetFrom returns a copy of u with the given bit and all subsequent
// ones set.
func (u uint128) bitsSetFrom(bit int) uint128 {
	return u.or(mask6(bit).not())
}

// bitsClearedFrom returns a copy of u with the given bit and all
// subsequent ones cleared.
func (u uint128) bitsClearedFrom(bit int) uint128 {
	return u.and(mask6(bit))
}
