// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

package cidr

import (
	"net"
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParseCIDR(t *testing.T, s string) *net.IPNet {
	_, n, err := net.ParseCIDR(s)
	require.NoError(t, err)
	return n
}

func TestParseBlocks(t *testing.T) {
	valid, invalid := ParseBlocks([]string{
		"1.1.1.0/24",
		"Illegal",
		"::ff",
		"0.0.0.2/30",
		"2001:db8::/32",
	})
	assert.Equal(t, []Block{
		MustParse("1.1.1.0/24"),
		MustParse("::ff/128"),
		MustParse("2001:db8::/32"),
	}, valid)
	assert.Equal(t, []string{"Illegal", "0.0.0.2/30"}, invalid)

	valid, invalid = ParseBlocks(nil)
	assert.Empty(t, valid)
	assert.Empty(t, invalid)
}

func TestPrefixConversion(t *testing.T) {
	assert.Equal(t, netip.MustParsePrefix("1.1.1.1/32"), MustParse("1.1.1.1").Prefix())
	assert.Equal(t, netip.MustParsePrefix("::ff/128"), MustParse("::ff").Prefix())
	assert.Equal(t, netip.MustParsePrefix("10.0.0.0/8"), MustParse("10.0.0.0/8").Prefix())
	assert.Equal(t, netip.Prefix{}, Block{}.Prefix())

	b, err := BlockFromPrefix(netip.MustParsePrefix("2001:db8::/32"))
	require.NoError(t, err)
	assert.Equal(t, MustParse("2001:db8::/32"), b)

	_, err = BlockFromPrefix(netip.MustParsePrefix("10.0.0.1/8"))
	assert.ErrorIs(t, err, ErrInvalidNetworkAddress)

	_, err = BlockFromPrefix(netip.Prefix{})
	assert.ErrorIs(t, err, ErrUnrecognizedAddress)
}

func TestIPNetConversion(t *testing.T) {
	assert.Equal(t, mustParseCIDR(t, "1.1.1.1/32"), MustParse("1.1.1.1").IPNet())
	assert.Equal(t, mustParseCIDR(t, "::ff/128"), MustParse("::ff").IPNet())
	assert.Equal(t, mustParseCIDR(t, "10.0.0.0/8"), MustParse("10.0.0.0/8").IPNet())

	var nilNet *net.IPNet
	assert.Equal(t, nilNet, Block{}.IPNet())

	b, err := BlockFromIPNet(mustParseCIDR(t, "10.0.0.0/8"))
	require.NoError(t, err)
	assert.Equal(t, MustParse("10.0.0.0/8"), b)

	b, err = BlockFromIPNet(mustParseCIDR(t, "2001:db8::/32"))
	require.NoError(t, err)
	assert.Equal(t, MustParse("2001:db8::/32"), b)

	// 16 byte IPv4 with a 32 bit mask stays IPv4
	b, err = BlockFromIPNet(&net.IPNet{IP: net.ParseIP("10.0.0.0"), Mask: net.CIDRMask(8, 32)})
	require.NoError(t, err)
	assert.Equal(t, MustParse("10.0.0.0/8"), b)

	// host bits are rejected rather than masked
	_, err = BlockFromIPNet(&net.IPNet{IP: net.ParseIP("10.0.0.5"), Mask: net.CIDRMask(8, 32)})
	assert.ErrorIs(t, err, ErrInvalidNetworkAddress)

	_, err = BlockFromIPNet(&net.IPNet{IP: net.ParseIP("2001:db8::"), Mask: net.CIDRMask(8, 32)})
	assert.ErrorIs(t, err, ErrUnrecognizedAddress)

	_, err = BlockFromIPNet(nil)
	assert.ErrorIs(t, err, ErrUnrecognizedAddress)
}
