// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

package cidr

import (
	"fmt"
	"net"
	"net/netip"

	"github.com/cilium/ipmerge/pkg/ip"
)

// ParseBlocks parses every entry of texts and returns the valid blocks and
// the entries that failed to parse, both in input order.
func ParseBlocks(texts []string) (valid []Block, invalid []string) {
	valid = make([]Block, 0, len(texts))
	invalid = make([]string, 0, len(texts))
	for _, text := range texts {
		b, err := Parse(text)
		if err != nil {
			invalid = append(invalid, text)
			continue
		}
		valid = append(valid, b)
	}
	return valid, invalid
}

// Prefix is a convenience helper to hand a block to code using the
// 'netip' types.
func (b Block) Prefix() netip.Prefix {
	if !b.IsValid() {
		return netip.Prefix{}
	}
	return netip.PrefixFrom(b.addr.NetIP(), b.Bits())
}

// BlockFromPrefix converts a netip.Prefix. Unlike netip, host bits are
// not silently accepted: the prefix must be masked.
func BlockFromPrefix(prefix netip.Prefix) (Block, error) {
	if !prefix.IsValid() {
		return Block{}, &ParseError{
			Kind:  UnrecognizedAddress,
			Input: prefix.String(),
			Err:   fmt.Errorf("%w: invalid prefix", ErrUnrecognizedAddress),
		}
	}
	return New(ip.AddrFromNetIP(prefix.Addr()), prefix.Bits())
}

// IPNet is a convenience helper to hand a block to code still using the
// older 'net' standard library types.
func (b Block) IPNet() *net.IPNet {
	if !b.IsValid() {
		return nil
	}
	return &net.IPNet{
		IP:   b.addr.IP(),
		Mask: net.CIDRMask(b.Bits(), b.addr.BitLen()),
	}
}

// BlockFromIPNet converts a *net.IPNet. The mask size decides the family,
// so an IPv4 address in 16-byte form with a 128 bit mask becomes an IPv4-mapped IPv6
// block.
func BlockFromIPNet(n *net.IPNet) (Block, error) {
	if n == nil {
		return Block{}, &ParseError{
			Kind:  UnrecognizedAddress,
			Input: "<nil>",
			Err:   fmt.Errorf("%w: nil network", ErrUnrecognizedAddress),
		}
	}
	ones, bits := n.Mask.Size()
	var addr ip.Addr
	switch {
	case bits == ip.IPv4Width && n.IP.To4() != nil:
		addr = ip.AddrFrom4([4]byte(n.IP.To4()))
	case bits == ip.IPv6Width && len(n.IP) == net.IPv6len:
		addr = ip.AddrFrom16([16]byte(n.IP))
	default:
		return Block{}, &ParseError{
			Kind:  UnrecognizedAddress,
			Input: n.String(),
			Err:   fmt.Errorf("%w: mask does not match address", ErrUnrecognizedAddress),
		}
	}
	return New(addr, ones)
}
