// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

package ip

import (
	"encoding/json"
	"net"
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAddr(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Addr
	}{
		{name: "ipv4 zero", in: "0.0.0.0", want: AddrFrom4Uint(0)},
		{name: "ipv4", in: "10.1.2.3", want: AddrFrom4Uint(0x0a010203)},
		{name: "ipv4 broadcast", in: "255.255.255.255", want: AddrFrom4Uint(0xffffffff)},
		{name: "ipv4 surrounding whitespace", in: " \t10.1.2.3\r\n", want: AddrFrom4Uint(0x0a010203)},
		{name: "ipv6 unspecified", in: "::", want: AddrFrom6Uint(0, 0)},
		{name: "ipv6 loopback", in: "::1", want: AddrFrom6Uint(0, 1)},
		{name: "ipv6 compressed", in: "2001:db8::1", want: AddrFrom6Uint(0x20010db800000000, 1)},
		{name: "ipv6 uppercase", in: "2001:DB8::CAFE", want: AddrFrom6Uint(0x20010db800000000, 0xcafe)},
		{name: "ipv6 full", in: "ffff:ffff:ffff:ffff:ffff:ffff:ffff:ffff", want: AddrFrom6Uint(^uint64(0), ^uint64(0))},
		{name: "ipv4-mapped stays ipv6", in: "::ffff:1.2.3.4", want: AddrFrom6Uint(0, 0x0000ffff01020304)},
		{name: "ipv6 surrounding whitespace", in: "  ::  \r\n", want: AddrFrom6Uint(0, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAddr(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseAddrInvalid(t *testing.T) {
	for _, in := range []string{
		"",
		"   ",
		"aa",
		"1.2.3",
		"1.2.3.256",
		"01.2.3.4",
		"1.2.3.4.5",
		"1:2:3:4:5:6:7:8:9",
		"1::2::3",
		"fe80::1%eth0",
		"0.0.0.0/24",
		"1 .2.3.4",
	} {
		_, err := ParseAddr(in)
		assert.ErrorIs(t, err, ErrUnrecognizedAddress, "input %q", in)
	}
}

func TestMustParseAddrPanics(t *testing.T) {
	assert.Panics(t, func() { MustParseAddr("Illegal") })
	assert.NotPanics(t, func() { MustParseAddr("1.1.1.1") })
}

func TestAddrString(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0.0.0.0", "0.0.0.0"},
		{"192.168.0.1", "192.168.0.1"},
		{"::", "::"},
		{"0:0:0:0:0:0:0:1", "::1"},
		{"2001:DB8::1", "2001:db8::1"},
		// longest run of zero groups is compressed
		{"2001:db8:0:0:1:0:0:0", "2001:db8:0:0:1::"},
		// ties go to the leftmost run
		{"2001:db8:0:0:1:0:0:1", "2001:db8::1:0:0:1"},
		// a single zero group is not compressed
		{"2001:db8:0:1:1:1:1:1", "2001:db8:0:1:1:1:1:1"},
		{"fd44:7089:ff32:712b:0000:0000:0000:0000", "fd44:7089:ff32:712b::"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MustParseAddr(tt.in).String(), "input %q", tt.in)
	}
	assert.Equal(t, "invalid IP", Addr{}.String())
}

func TestAddrFamily(t *testing.T) {
	v4 := AddrFrom4Uint(0)
	v6 := AddrFrom6Uint(0, 0)

	assert.True(t, v4.Is4())
	assert.False(t, v4.Is6())
	assert.Equal(t, IPv4, v4.Family())
	assert.Equal(t, 32, v4.BitLen())

	assert.True(t, v6.Is6())
	assert.False(t, v6.Is4())
	assert.Equal(t, IPv6, v6.Family())
	assert.Equal(t, 128, v6.BitLen())

	assert.False(t, Addr{}.IsValid())
	assert.Equal(t, 0, Addr{}.BitLen())
	assert.Equal(t, "unknown", Addr{}.Family().String())
	assert.Equal(t, "IPv4", IPv4.String())
	assert.Equal(t, "IPv6", IPv6.String())
}

func TestAddrEqualCompare(t *testing.T) {
	// same integer value, different family
	assert.False(t, AddrFrom4Uint(0).Equal(AddrFrom6Uint(0, 0)))
	assert.NotEqual(t, AddrFrom4Uint(1), AddrFrom6Uint(0, 1))
	assert.True(t, MustParseAddr("10.0.0.1").Equal(AddrFrom4Uint(0x0a000001)))

	ordered := []Addr{
		AddrFrom4Uint(0),
		AddrFrom4Uint(1),
		AddrFrom4Uint(0xffffffff),
		AddrFrom6Uint(0, 0),
		AddrFrom6Uint(0, ^uint64(0)),
		AddrFrom6Uint(1, 0),
		AddrFrom6Uint(^uint64(0), ^uint64(0)),
	}
	for i := range ordered {
		assert.Equal(t, 0, ordered[i].Compare(ordered[i]))
		for j := i + 1; j < len(ordered); j++ {
			assert.Equal(t, -1, ordered[i].Compare(ordered[j]), "%s < %s", ordered[i], ordered[j])
			assert.Equal(t, 1, ordered[j].Compare(ordered[i]), "%s > %s", ordered[j], ordered[i])
			assert.True(t, ordered[i].Less(ordered[j]))
		}
	}
}

func TestAddrMask(t *testing.T) {
	tests := []struct {
		in   string
		bits int
		want string
	}{
		{"10.1.2.3", 0, "0.0.0.0"},
		{"10.1.2.3", 8, "10.0.0.0"},
		{"10.1.2.3", 30, "10.1.2.0"},
		{"10.1.2.3", 31, "10.1.2.2"},
		{"10.1.2.3", 32, "10.1.2.3"},
		{"255.255.255.255", 1, "128.0.0.0"},
		{"2001:db8::ffff", 64, "2001:db8::"},
		{"2001:db8::ffff", 127, "2001:db8::fffe"},
		{"2001:db8::ffff", 128, "2001:db8::ffff"},
		{"ffff:ffff:ffff:ffff:ffff:ffff:ffff:ffff", 65, "ffff:ffff:ffff:ffff:8000::"},
		{"ffff::", 0, "::"},
	}
	for _, tt := range tests {
		a := MustParseAddr(tt.in)
		got := a.Mask(tt.bits)
		assert.Equal(t, MustParseAddr(tt.want), got, "%s masked to %d", tt.in, tt.bits)
		assert.Equal(t, got == a, a.IsHostBitsZero(tt.bits))
	}

	assert.Panics(t, func() { AddrFrom4Uint(0).Mask(33) })
	assert.Panics(t, func() { AddrFrom6Uint(0, 0).Mask(-1) })
	assert.NotPanics(t, func() { AddrFrom6Uint(0, 0).Mask(128) })
}

func TestAddrLast(t *testing.T) {
	assert.Equal(t, MustParseAddr("10.255.255.255"), MustParseAddr("10.0.0.0").Last(8))
	assert.Equal(t, MustParseAddr("255.255.255.255"), AddrFrom4Uint(0).Last(0))
	assert.Equal(t, MustParseAddr("10.0.0.1"), MustParseAddr("10.0.0.1").Last(32))
	assert.Equal(t, MustParseAddr("2001:db8::ffff:ffff:ffff:ffff"), MustParseAddr("2001:db8::").Last(64))
	assert.Equal(t, AddrFrom6Uint(^uint64(0), ^uint64(0)), AddrFrom6Uint(0, 0).Last(0))
	assert.Panics(t, func() { AddrFrom4Uint(0).Last(64) })
}

func TestAddrConversions(t *testing.T) {
	v4 := MustParseAddr("1.1.1.1")
	v6 := MustParseAddr("::ff")

	assert.Equal(t, netip.MustParseAddr("1.1.1.1"), v4.NetIP())
	assert.Equal(t, netip.MustParseAddr("::ff"), v6.NetIP())
	assert.Equal(t, v4, AddrFromNetIP(netip.MustParseAddr("1.1.1.1")))
	assert.Equal(t, v6, AddrFromNetIP(netip.MustParseAddr("::ff")))
	assert.Equal(t, Addr{}, AddrFromNetIP(netip.Addr{}))
	assert.Equal(t, netip.Addr{}, Addr{}.NetIP())

	assert.True(t, net.ParseIP("1.1.1.1").Equal(v4.IP()))
	assert.True(t, net.ParseIP("::ff").Equal(v6.IP()))
	assert.Nil(t, Addr{}.IP())

	a, ok := AddrFromIP(net.ParseIP("1.1.1.1"))
	assert.True(t, ok)
	assert.Equal(t, v4, a)
	a, ok = AddrFromIP(net.ParseIP("::ff"))
	assert.True(t, ok)
	assert.Equal(t, v6, a)
	_, ok = AddrFromIP(nil)
	assert.False(t, ok)

	assert.Equal(t, [4]byte{1, 1, 1, 1}, v4.As4())
	assert.Equal(t, netip.MustParseAddr("::ffff:1.1.1.1").As16(), v4.As16())
	assert.Equal(t, v6, AddrFrom16(v6.As16()))
	assert.Equal(t, v4, AddrFrom4(v4.As4()))

	hi, lo := MustParseAddr("2001:db8::1").Uint128()
	assert.Equal(t, uint64(0x20010db800000000), hi)
	assert.Equal(t, uint64(1), lo)
}

func TestAddrText(t *testing.T) {
	type doc struct {
		Addr Addr `json:"addr"`
	}

	out, err := json.Marshal(doc{Addr: MustParseAddr("2001:db8::1")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"addr":"2001:db8::1"}`, string(out))

	var d doc
	require.NoError(t, json.Unmarshal([]byte(`{"addr":" 10.0.0.1 "}`), &d))
	assert.Equal(t, AddrFrom4Uint(0x0a000001), d.Addr)

	require.NoError(t, json.Unmarshal([]byte(`{"addr":""}`), &d))
	assert.Equal(t, Addr{}, d.Addr)

	err = json.Unmarshal([]byte(`{"addr":"aa"}`), &d)
	assert.ErrorIs(t, err, ErrUnrecognizedAddress)
}
