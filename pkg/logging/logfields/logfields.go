// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

// Package logfields defines common logging fields which are used across packages
package logfields

const (
	// LogSubsys is the field denoting the subsystem when logging
	LogSubsys = "subsys"

	// Error is the field to log an error
	Error = "error"

	// Block is an address block in CIDR notation
	Block = "block"

	// Blocks is a pair or list of address blocks
	Blocks = "blocks"

	// Address is a single IP address
	Address = "address"

	// Prefix is a prefix length
	Prefix = "prefix"

	// Family is the address family, IPv4 or IPv6
	Family = "family"

	// MergeCase is the rule which merged two blocks
	MergeCase = "mergeCase"

	// ErrorKind classifies a parse failure
	ErrorKind = "errorKind"

	// File is a path on the local filesystem
	File = "file"

	// Count is a generic counter
	Count = "count"

	// ListenAddress is the address a server listens on
	ListenAddress = "listenAddress"

	// Signal is the field to print os signals on exit etc.
	Signal = "signal"

	// Duration is the duration of an operation
	Duration = "duration"
)
