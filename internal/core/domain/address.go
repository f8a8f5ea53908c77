package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
)

const (
	// AddressPrefix tags every wallet address.
	AddressPrefix = "RB_"
	// AddressAlphabet excludes 0/O and 1/l/I.
	AddressAlphabet = "23456789ABCDEFGHJKMNPQRSTUVWXYZ"

	addressGroups    = 8
	addressGroupSize = 4
)

// System addresses are reserved sinks and sources that no key controls.
const (
	SystemAddressMint      = "RB_SYST-EMMT-MNTT-2222-2222-2222-2222-2222"
	SystemAddressBurn      = "RB_SYST-EMBR-BURN-3333-3333-3333-3333-3333"
	SystemAddressEducation = "RB_EDUC-ATND-FUND-4444-4444-4444-4444-4444"
	SystemAddressRewards   = "RB_REWD-SYST-EMRW-5555-5555-5555-5555-5555"

	// FeeSinkAddress receives every transfer fee.
	FeeSinkAddress = SystemAddressBurn
)

// IsSystemAddress reports whether addr is one of the reserved addresses.
func IsSystemAddress(addr string) bool {
	switch addr {
	case SystemAddressMint, SystemAddressBurn, SystemAddressEducation, SystemAddressRewards:
		return true
	}
	return false
}

// DeriveAddress maps the first 32 hex digits of sha256(publicKey) through the
// restricted alphabet, one character per digit. Only the first 16 alphabet
// characters can appear in a derived address.
func DeriveAddress(publicKeyPEM string) string {
	sum := sha256.Sum256([]byte(publicKeyPEM))
	digits := hex.EncodeToString(sum[:])

	var b strings.Builder
	b.WriteString(AddressPrefix)
	for i := 0; i < addressGroups*addressGroupSize; i++ {
		if i > 0 && i%addressGroupSize == 0 {
			b.WriteByte('-')
		}
		v, _ := strconv.ParseUint(digits[i:i+1], 16, 8)
		b.WriteByte(AddressAlphabet[int(v)%len(AddressAlphabet)])
	}
	return b.String()
}

// IsValidAddress accepts exactly RB_ followed by eight dash-separated groups of four alphabet characters.
func IsValidAddress(addr string) bool {
	rest, ok := strings.CutPrefix(addr, AddressPrefix)
	if !ok {
		return false
	}
	groups := strings.Split(rest, "-")
	if len(groups) != addressGroups {
		return false
	}
	for _, g := range groups {
		if len(g) != addressGroupSize {
			return false
		}
		for i := 0; i < len(g); i++ {
			if strings.IndexByte(AddressAlphabet, g[i]) < 0 {
				return false
			}
		}
	}
	return true
}
