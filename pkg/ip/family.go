// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

package ip

// Family is the address family of an Addr.
type Family uint8

const (
	// FamilyUnknown is the family of the zero Addr.
	FamilyUnknown Family = iota
	// IPv4 addresses are 32 bits wide.
	IPv4
	// IPv6 addresses are 128 bits wide.
	IPv6
)

const (
	// IPv4Width is the bit width of an IPv4 address.
	IPv4Width = 32
	// IPv6Width is the bit width of an IPv6 address.
	IPv6Width = 128
)

// Width returns the number of bits in an address of the family, or 0 for
// FamilyUnknown.
func (f Family) Width() int {
	switch f {
	case IPv4:
		return IPv4Width
	case IPv6:
		return IPv6Width
	}
	return 0
}

// offset is the position of the family's first bit inside the 128-bit
// representation. IPv4 addresses occupy the low 32 bits.
func (f Family) offset() int {
	return IPv6Width - f.Width()
}

func (f Family) String() string {
	switch f {
	case IPv4:
		return "IPv4"
	case IPv6:
		return "IPv6"
	}
	return "unknown"
}
