// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

// Package ip implements a fixed-width integer representation of IPv4 and
// IPv6 addresses.
package ip

import (
	"encoding/binary"
	"errors"
	"fmt"
	"net"
	"net/netip"
	"strings"
)

// ErrUnrecognizedAddress is returned when a text matches neither the IPv4
// nor the IPv6 address grammar.
var ErrUnrecognizedAddress = errors.New("unrecognized address")

// Addr is an IPv4 or IPv6 address stored as an unsigned integer together
// with its family. Addr is a value type: it is comparable with == and
// safe for concurrent use. The zero Addr is not a valid address.
type Addr struct {
	u   uint128
	fam Family
}

// AddrFrom4Uint returns the IPv4 address with the integer value v.
func AddrFrom4Uint(v uint32) Addr {
	return Addr{u: uint128{lo: uint64(v)}, fam: IPv4}
}

// AddrFrom6Uint returns the IPv6 address whose upper and lower 64 bits are
// hi and lo.
func AddrFrom6Uint(hi, lo uint64) Addr {
	return Addr{u: uint128{hi: hi, lo: lo}, fam: IPv6}
}

// AddrFrom4 returns the IPv4 address given by the bytes in b.
func AddrFrom4(b [4]byte) Addr {
	return AddrFrom4Uint(binary.BigEndian.Uint32(b[:]))
}

// AddrFrom16 returns the IPv6 address given by the bytes in b. An
// IPv4-mapped address stays an IPv6 address.
func AddrFrom16(b [16]byte) Addr {
	return AddrFrom6Uint(
		binary.BigEndian.Uint64(b[:8]),
		binary.BigEndian.Uint64(b[8:]),
	)
}

// ParseAddr parses s as an IPv4 address in dotted-quad notation or an IPv6
// address in colon-hex notation. Surrounding whitespace is ignored. Zoned
// IPv6 addresses are rejected.
func ParseAddr(s string) (Addr, error) {
	s = strings.TrimSpace(s)
	a, err := netip.ParseAddr(s)
	if err != nil {
		return Addr{}, fmt.Errorf("%w: %w", ErrUnrecognizedAddress, err)
	}
	if a.Zone() != "" {
		return Addr{}, fmt.Errorf("%w: %q: zones are not supported", ErrUnrecognizedAddress, s)
	}
	return AddrFromNetIP(a), nil
}

// MustParseAddr calls ParseAddr and panics on error. It is intended for
// use in tests with hard-coded strings.
func MustParseAddr(s string) Addr {
	a, err := ParseAddr(s)
	if err != nil {
		panic(err)
	}
	return a
}

// IsValid reports whether a is a non-zero Addr.
func (a Addr) IsValid() bool { return a.fam != FamilyUnknown }

// Family returns the address family of a.
func (a Addr) Family() Family { return a.fam }

// BitLen returns 32 for IPv4, 128 for IPv6 and 0 for the zero Addr.
func (a Addr) BitLen() int { return a.fam.Width() }

// Is4 reports whether a is an IPv4 address.
func (a Addr) Is4() bool { return a.fam == IPv4 }

// Is6 reports whether a is an IPv6 address, IPv4-mapped ones included.
func (a Addr) Is6() bool { return a.fam == IPv6 }

// Uint128 returns the integer value of a as upper and lower 64 bits. For
// IPv4 addresses hi is always zero.
func (a Addr) Uint128() (hi, lo uint64) { return a.u.hi, a.u.lo }

// Equal reports whether a and b are the same address of the same family.
func (a Addr) Equal(b Addr) bool { return a == b }

// Compare returns an integer comparing two addresses. Addresses are
// ordered first by family (IPv4 before IPv6) then by integer value. The
// result is 0 only when a == b.
func (a Addr) Compare(b Addr) int {
	switch {
	case a.fam < b.fam:
		return -1
	case a.fam > b.fam:
		return 1
	}
	return a.u.compare(b.u)
}

// Less reports whether a sorts before b.
func (a Addr) Less(b Addr) bool { return a.Compare(b) < 0 }

// Mask returns a with every bit after the first bits cleared. It panics if
// bits is outside [0, a.BitLen()].
func (a Addr) Mask(bits int) Addr {
	if bits < 0 || bits > a.BitLen() {
		panic(fmt.Sprintf("ip: mask length %d out of range for %s", bits, a.fam))
	}
	return Addr{u: a.u.bitsClearedFrom(a.fam.offset() + bits), fam: a.fam}
}

// Last returns a with every bit after the first bits set, which is the
// last address of the block of that length starting at a. It panics if
// bits is outside [0, a.BitLen()].
func (a Addr) Last(bits int) Addr {
	if bits < 0 || bits > a.BitLen() {
		panic(fmt.Sprintf("ip: mask length %d out of range for %s", bits, a.fam))
	}
	return Addr{u: a.u.bitsSetFrom(a.fam.offset() + bits), fam: a.fam}
}

// IsHostBitsZero reports whether all bits of a after the first bits are
// zero, that is whether a is the network address of a block of that
// length.
func (a Addr) IsHostBitsZero(bits int) bool {
	return a.Mask(bits) == a
}

// As4 returns the IPv4 address a as four bytes. The result is undefined for
// other families.
func (a Addr) As4() (b [4]byte) {
	binary.BigEndian.PutUint32(b[:], uint32(a.u.lo))
	return b
}

// As16 returns a as sixteen bytes. IPv4 addresses are returned in their
// IPv4-mapped form.
func (a Addr) As16() (b [16]byte) {
	if a.fam == IPv4 {
		return netip.AddrFrom4(a.As4()).As16()
	}
	binary.BigEndian.PutUint64(b[:8], a.u.hi)
	binary.BigEndian.PutUint64(b[8:], a.u.lo)
	return b
}

// String returns the canonical text of a: dotted-quad for IPv4 and RFC
// 5952 compressed lowercase hex for IPv6. The zero Addr renders as
// "invalid IP".
func (a Addr) String() string {
	return a.NetIP().String()
}

// MarshalText implements encoding.TextMarshaler.
func (a Addr) MarshalText() ([]byte, error) {
	if !a.IsValid() {
		return []byte(""), nil
	}
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Empty text yields the
// zero Addr.
func (a *Addr) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*a = Addr{}
		return nil
	}
	parsed, err := ParseAddr(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// NetIP converts a into its netip representation.
func (a Addr) NetIP() netip.Addr {
	switch a.fam {
	case IPv4:
		return netip.AddrFrom4(a.As4())
	case IPv6:
		return netip.AddrFrom16(a.As16())
	}
	return netip.Addr{}
}

// AddrFromNetIP converts a netip address. The zone of an IPv6 address is
// dropped and IPv4-mapped addresses keep the IPv6 family.
func AddrFromNetIP(a netip.Addr) Addr {
	switch {
	case a.Is4():
		return AddrFrom4(a.As4())
	case a.Is6():
		return AddrFrom16(a.As16())
	}
	return Addr{}
}

// IP converts a into a net.IP, or nil for the zero Addr.
func (a Addr) IP() net.IP {
	if !a.IsValid() {
		return nil
	}
	return a.NetIP().AsSlice()
}

// AddrFromIP converts a net.IP. IPv4 addresses in 16-byte form, as returned
// by net.ParseIP, are unmapped to IPv4.
//
// Note: This means a genuine IPv4-mapped IPv6 address held in a net.IP
// cannot be told apart from an IPv4 one and converts to IPv4.
func AddrFromIP(ip net.IP) (Addr, bool) {
	addr, ok := netip.AddrFromSlice(ip)
	if !ok {
		return Addr{}, false
	}
	return AddrFromNetIP(addr.Unmap()), true
}
