// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

// Package cidr implements validated CIDR address blocks: parsing,
// canonical formatting and pairwise merging into a covering supernet.
package cidr

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/cilium/ipmerge/pkg/ip"
)

// Block is a network address together with a prefix length. The address
// never has bits set beyond the prefix length. Block is a value type:
// two blocks are equal with == iff they have the same family, address and
// prefix length. The zero Block is not valid.
type Block struct {
	addr ip.Addr
	bits uint8
}

// New returns the block of the given prefix length starting at addr. It
// fails if bits is out of range for the address family or if addr is not
// the network address of the block.
func New(addr ip.Addr, bits int) (Block, error) {
	input := addr.String() + "/" + strconv.Itoa(bits)
	if !addr.IsValid() {
		return Block{}, &ParseError{
			Kind:  UnrecognizedAddress,
			Input: input,
			Err:   fmt.Errorf("%w: zero address", ErrUnrecognizedAddress),
		}
	}
	return newBlock(addr, bits, input)
}

// MustNew calls New and panics on error.
func MustNew(addr ip.Addr, bits int) Block {
	b, err := New(addr, bits)
	if err != nil {
		panic(err)
	}
	return b
}

func newBlock(addr ip.Addr, bits int, input string) (Block, error) {
	if bits < 0 || bits > addr.BitLen() {
		return Block{}, &ParseError{
			Kind:  InvalidPrefix,
			Input: input,
			Err: fmt.Errorf("%w: %d is outside [0, %d] for %s",
				ErrInvalidPrefix, bits, addr.BitLen(), addr.Family()),
		}
	}
	if network := addr.Mask(bits); network != addr {
		return Block{}, &ParseError{
			Kind:  InvalidNetworkAddress,
			Input: input,
			Err: fmt.Errorf("%w: %s has bits set beyond /%d, network address is %s",
				ErrInvalidNetworkAddress, addr, bits, network),
		}
	}
	return Block{addr: addr, bits: uint8(bits)}, nil
}

// Parse parses s in the form "address[/prefix]". Whitespace around the
// address, the slash and the prefix length is ignored. Without a prefix
// length the block covers a single address (/32 or /128).
//
// The returned error is a *ParseError. The address is checked first, then
// the prefix length, then whether the address is a network address.
func Parse(s string) (Block, error) {
	addrText, prefixText, hasPrefix := strings.Cut(s, "/")
	addr, err := ip.ParseAddr(addrText)
	if err != nil {
		return Block{}, &ParseError{Kind: UnrecognizedAddress, Input: s, Err: err}
	}

	bits := addr.BitLen()
	if hasPrefix {
		prefixText = strings.TrimSpace(prefixText)
		bits, err = strconv.Atoi(prefixText)
		switch {
		case errors.Is(err, strconv.ErrRange):
			return Block{}, &ParseError{
				Kind:  InvalidPrefix,
				Input: s,
				Err: fmt.Errorf("%w: %s is outside [0, %d] for %s",
					ErrInvalidPrefix, prefixText, addr.BitLen(), addr.Family()),
			}
		case err != nil:
			return Block{}, &ParseError{
				Kind:  UnrecognizedAddress,
				Input: s,
				Err:   fmt.Errorf("%w: prefix length %q is not a number", ErrUnrecognizedAddress, prefixText),
			}
		}
	}
	return newBlock(addr, bits, s)
}

// MustParse calls Parse and panics on error. It is intended for use in
// tests with hard-coded strings.
func MustParse(s string) Block {
	b, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return b
}

// IsValid reports whether b was built by Parse or New.
func (b Block) IsValid() bool { return b.addr.IsValid() }

// Addr returns the network address of b.
func (b Block) Addr() ip.Addr { return b.addr }

// Bits returns the prefix length of b.
func (b Block) Bits() int { return int(b.bits) }

// Family returns the address family of b.
func (b Block) Family() ip.Family { return b.addr.Family() }

// IsSingleIP reports whether b covers exactly one address.
func (b Block) IsSingleIP() bool {
	return b.IsValid() && b.Bits() == b.addr.BitLen()
}

// Last returns the highest address inside b.
func (b Block) Last() ip.Addr {
	if !b.IsValid() {
		return ip.Addr{}
	}
	return b.addr.Last(b.Bits())
}

// Contains reports whether a lies inside b. Addresses of another family
// are never contained.
func (b Block) Contains(a ip.Addr) bool {
	return b.IsValid() && a.Family() == b.Family() && a.Mask(b.Bits()) == b.addr
}

// Covers reports whether every address of o lies inside b. A block covers
// itself.
func (b Block) Covers(o Block) bool {
	return b.IsValid() && o.IsValid() &&
		b.Family() == o.Family() &&
		b.bits <= o.bits &&
		o.addr.Mask(b.Bits()) == b.addr
}

// Parent returns the block one bit shorter than b that contains it. It
// returns false for blocks of length 0.
func (b Block) Parent() (Block, bool) {
	if !b.IsValid() || b.bits == 0 {
		return Block{}, false
	}
	bits := b.Bits() - 1
	return Block{addr: b.addr.Mask(bits), bits: uint8(bits)}, true
}

// Compare orders blocks by family, then address, then prefix length.
func (b Block) Compare(o Block) int {
	if c := b.addr.Compare(o.addr); c != 0 {
		return c
	}
	switch {
	case b.bits < o.bits:
		return -1
	case b.bits > o.bits:
		return 1
	}
	return 0
}

// Format renders b as canonical address text followed by "/prefix". The
// suffix is left out for single address blocks unless alwaysOutputPrefix
// is set.
func Format(b Block, alwaysOutputPrefix bool) string {
	if !b.IsValid() {
		return "invalid Block"
	}
	if b.IsSingleIP() && !alwaysOutputPrefix {
		return b.addr.String()
	}
	return b.addr.String() + "/" + strconv.Itoa(b.Bits())
}

// String returns Format(b, false).
func (b Block) String() string {
	return Format(b, false)
}

// MarshalText implements encoding.TextMarshaler. The prefix length is
// always included.
func (b Block) MarshalText() ([]byte, error) {
	if !b.IsValid() {
		return []byte(""), nil
	}
	return []byte(Format(b, true)), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Empty text yields the
// zero Block.
func (b *Block) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*b = Block{}
		return nil
	}
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}
