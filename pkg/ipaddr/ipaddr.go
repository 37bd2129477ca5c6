// Package ipaddr implements IPv4 address and CIDR block arithmetic for the
// containment hierarchy.
//
// All operations are pure functions over unsigned 32-bit quantities. Parsing
// is deliberately strict: exactly four dot-separated decimal octets, each in
// [0,255], optionally followed by /0..32 for blocks. Anything else is
// reported as invalid rather than guessed at, because node address fields are
// free text edited by humans.
package ipaddr

import (
	"fmt"
	"strings"
)

// Block is a CIDR prefix in numeric form. Network is already masked:
// Network == address & Mask. Blocks are derived from text on demand and
// never stored.
type Block struct {
	Network uint32
	Prefix  int
	Mask    uint32
}

// maskForPrefix returns the netmask for a prefix length in [0,32].
// A /0 mask is all-zero, not a shifted-by-32 value, which would be
// undefined behaviour on 32-bit shifts.
func maskForPrefix(prefix int) uint32 {
	if prefix <= 0 {
		return 0
	}
	return 0xFFFFFFFF << (32 - uint(prefix))
}

// ParseAddr parses a dotted-quad IPv4 address into its 32-bit value.
// The second return value is false for anything that is not exactly four
// decimal octets in [0,255].
func ParseAddr(s string) (uint32, bool) {
	parts := strings.Split(s, ".")
	if len(parts) != 4 {
		return 0, false
	}
	var v uint32
	for _, p := range parts {
		octet, ok := parseOctet(p)
		if !ok {
			return 0, false
		}
		v = v<<8 | octet
	}
	return v, true
}

// parseOctet parses a decimal octet in [0,255]. Empty strings, non-digits,
// and tokens longer than three digits are rejected.
func parseOctet(s string) (uint32, bool) {
	if len(s) == 0 || len(s) > 3 {
		return 0, false
	}
	var v uint32
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		v = v*10 + uint32(c-'0')
	}
	if v > 255 {
		return 0, false
	}
	return v, true
}

// FormatAddr renders a 32-bit value as a canonical dotted quad.
// It is the inverse of ParseAddr for every valid input.
func FormatAddr(v uint32) string {
	return fmt.Sprintf("%d.%d.%d.%d", v>>24&0xFF, v>>16&0xFF, v>>8&0xFF, v&0xFF)
}

// ParseBlock parses "a.b.c.d/prefix" into a Block. The address part must
// satisfy ParseAddr and the prefix must be in [0,32]. The network is masked
// down, so "10.0.5.5/8" yields network 10.0.0.0.
func ParseBlock(s string) (Block, bool) {
	addrPart, prefixPart, found := strings.Cut(s, "/")
	if !found {
		return Block{}, false
	}
	addr, ok := ParseAddr(addrPart)
	if !ok {
		return Block{}, false
	}
	prefix, ok := parsePrefix(prefixPart)
	if !ok {
		return Block{}, false
	}
	mask := maskForPrefix(prefix)
	return Block{Network: addr & mask, Prefix: prefix, Mask: mask}, true
}

// parsePrefix parses a decimal prefix length in [0,32].
func parsePrefix(s string) (int, bool) {
	if len(s) == 0 || len(s) > 2 {
		return 0, false
	}
	v := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		v = v*10 + int(c-'0')
	}
	if v > 32 {
		return 0, false
	}
	return v, true
}

// String renders the block in CIDR notation.
func (b Block) String() string {
	return fmt.Sprintf("%s/%d", FormatAddr(b.Network), b.Prefix)
}

// AddrInBlock reports whether the address falls inside the block's range.
func AddrInBlock(addr uint32, b Block) bool {
	return addr&b.Mask == b.Network
}

// BlockContains reports whether child lies strictly inside parent. The child
// must be more specific (larger prefix length) and its network, masked by the
// parent's mask, must equal the parent's network. Equal-prefix blocks never
// contain one another, even when identical; this is what keeps the hierarchy
// builder from self-parenting a block or pairing up siblings.
func BlockContains(child, parent Block) bool {
	return child.Prefix > parent.Prefix && child.Network&parent.Mask == parent.Network
}

// IsAddr reports whether s is a single valid dotted-quad address.
func IsAddr(s string) bool {
	_, ok := ParseAddr(s)
	return ok
}

// IsBlock reports whether s is a valid CIDR block.
func IsBlock(s string) bool {
	_, ok := ParseBlock(s)
	return ok
}

// SplitAddrList tokenizes free text on commas, semicolons, and whitespace
// (including newlines), keeps only tokens that are valid addresses, and
// de-duplicates while preserving first-seen order. A single plain address
// comes back as a one-element list.
func SplitAddrList(input string) []string {
	tokens := strings.FieldsFunc(input, func(r rune) bool {
		return r == ',' || r == ';' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})

	var out []string
	seen := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		if !IsAddr(tok) {
			continue
		}
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		out = append(out, tok)
	}
	return out
}
