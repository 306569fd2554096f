// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

package cidr

import (
	"errors"
	"fmt"

	"github.com/cilium/ipmerge/pkg/ip"
)

var (
	// ErrUnrecognizedAddress is wrapped by errors for texts whose address
	// part, or prefix length, is not recognized at all.
	ErrUnrecognizedAddress = ip.ErrUnrecognizedAddress

	// ErrInvalidPrefix is wrapped by errors for numeric prefix lengths
	// outside the range allowed by the address family.
	ErrInvalidPrefix = errors.New("invalid prefix length")

	// ErrInvalidNetworkAddress is wrapped by errors for blocks whose
	// address has bits set beyond the prefix length.
	ErrInvalidNetworkAddress = errors.New("invalid network address")
)

// ErrorKind classifies why a block could not be parsed or constructed.
type ErrorKind uint8

const (
	// UnrecognizedAddress means the text is not an address of any family,
	// is empty, or carries a non-numeric prefix length.
	UnrecognizedAddress ErrorKind = iota + 1
	// InvalidPrefix means the prefix length is numeric but out of range.
	InvalidPrefix
	// InvalidNetworkAddress means the address has host bits set.
	InvalidNetworkAddress
)

func (k ErrorKind) String() string {
	switch k {
	case UnrecognizedAddress:
		return "unrecognized-address"
	case InvalidPrefix:
		return "invalid-prefix"
	case InvalidNetworkAddress:
		return "invalid-network-address"
	}
	return fmt.Sprintf("ErrorKind(%d)", uint8(k))
}

// ParseError is returned by Parse and New. Err wraps exactly one of
// ErrUnrecognizedAddress, ErrInvalidPrefix and ErrInvalidNetworkAddress,
// matching Kind.
type ParseError struct {
	Kind  ErrorKind
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid address block %q: %v", e.Input, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of the ParseError in err's chain.
func KindOf(err error) (ErrorKind, bool) {
	var perr *ParseError
	if errors.As(err, &perr) {
		return perr.Kind, true
	}
	return 0, false
}
