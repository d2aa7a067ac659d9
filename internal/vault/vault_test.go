package vault

import (
	"bytes"
	"crypto/rand"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"veilmarket/internal/auctionerrors"
)

func testKey(t *testing.T) []byte {
	t.Helper()
	key := make([]byte, keySize)
	_, err := rand.Read(key)
	require.NoError(t, err)
	return key
}

// Test New key validation
func TestVault_New(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		keyLen    int
		wantError bool
	}{
		{name: "valid_256_bit_key", keyLen: 32, wantError: false},
		{name: "empty_key", keyLen: 0, wantError: true},
		{name: "short_key", keyLen: 16, wantError: true},
		{name: "long_key", keyLen: 64, wantError: true},
		{name: "off_by_one_key", keyLen: 31, wantError: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := New(bytes.Repeat([]byte{0xAB}, tc.keyLen))
			if tc.wantError {
				require.ErrorIs(t, err, auctionerrors.ErrVaultMisconfigured)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

// Test Seal/Unseal round trips
func TestVault_SealUnseal_RoundTrip(t *testing.T) {
	t.Parallel()

	v, err := New(testKey(t))
	require.NoError(t, err)

	tests := []struct {
		name      string
		plaintext string
	}{
		{name: "simple_identifier", plaintext: "user-42"},
		{name: "uuid_identifier", plaintext: "7c9e6679-7425-40de-944b-e07fc1f90ae7"},
		{name: "unicode_identifier", plaintext: "seller-über-世界"},
		{name: "long_identifier", plaintext: strings.Repeat("id-fragment-", 50)},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			sealed, err := v.Seal(tc.plaintext)
			require.NoError(t, err)
			require.NotEqual(t, tc.plaintext, sealed)
			require.NotContains(t, sealed, tc.plaintext)

			got, err := v.Unseal(sealed)
			require.NoError(t, err)
			require.Equal(t, tc.plaintext, got)
		})
	}
}

// Empty strings pass through both directions unchanged
func TestVault_SealUnseal_EmptyPassThrough(t *testing.T) {
	t.Parallel()

	v, err := New(testKey(t))
	require.NoError(t, err)

	sealed, err := v.Seal("")
	require.NoError(t, err)
	require.Equal(t, "", sealed)

	plain, err := v.Unseal("")
	require.NoError(t, err)
	require.Equal(t, "", plain)
}

// Sealed output is three hex segments and never leaks the plaintext
func TestVault_Seal_WireFormat(t *testing.T) {
	t.Parallel()

	v, err := New(testKey(t))
	require.NoError(t, err)

	sealed, err := v.Seal("buyer-7")
	require.NoError(t, err)

	parts := strings.Split(sealed, ":")
	require.Len(t, parts, 3)
	require.Len(t, parts[0], nonceSize*2)
	require.Len(t, parts[1], tagSize*2)
	require.NotEmpty(t, parts[2])

	hexOnly := regexp.MustCompile(`^[0-9a-f]+$`)
	for _, p := range parts {
		require.Regexp(t, hexOnly, p)
	}
}

// Same plaintext seals to different envelopes because the nonce is random
func TestVault_Seal_NonDeterministic(t *testing.T) {
	t.Parallel()

	v, err := New(testKey(t))
	require.NoError(t, err)

	first, err := v.Seal("user-42")
	require.NoError(t, err)
	second, err := v.Seal("user-42")
	require.NoError(t, err)
	require.NotEqual(t, first, second)
}

// Test Unseal rejection of malformed or tampered envelopes
func TestVault_Unseal_Rejections(t *testing.T) {
	t.Parallel()

	v, err := New(testKey(t))
	require.NoError(t, err)

	sealed, err := v.Seal("user-42")
	require.NoError(t, err)
	parts := strings.Split(sealed, ":")

	flip := func(hexSegment string) string {
		b := []byte(hexSegment)
		if b[0] == 'f' {
			b[0] = '0'
		} else {
			b[0] = 'f'
		}
		return string(b)
	}

	tests := []struct {
		name    string
		sealed  string
		wantErr error
	}{
		{name: "not_an_envelope", sealed: "plain-user-id", wantErr: auctionerrors.ErrTamperedOrCorrupt},
		{name: "two_segments", sealed: parts[0] + ":" + parts[1], wantErr: auctionerrors.ErrTamperedOrCorrupt},
		{name: "four_segments", sealed: sealed + ":deadbeef", wantErr: auctionerrors.ErrTamperedOrCorrupt},
		{name: "non_hex_nonce", sealed: "zz" + parts[0][2:] + ":" + parts[1] + ":" + parts[2], wantErr: auctionerrors.ErrTamperedOrCorrupt},
		{name: "truncated_nonce", sealed: parts[0][:10] + ":" + parts[1] + ":" + parts[2], wantErr: auctionerrors.ErrTamperedOrCorrupt},
		{name: "flipped_tag_bit", sealed: parts[0] + ":" + flip(parts[1]) + ":" + parts[2], wantErr: auctionerrors.ErrTamperedOrCorrupt},
		{name: "flipped_ciphertext_bit", sealed: parts[0] + ":" + parts[1] + ":" + flip(parts[2]), wantErr: auctionerrors.ErrTamperedOrCorrupt},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := v.Unseal(tc.sealed)
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}

// An envelope sealed under one key never opens under another
func TestVault_Unseal_WrongKey(t *testing.T) {
	t.Parallel()

	v1, err := New(testKey(t))
	require.NoError(t, err)
	v2, err := New(testKey(t))
	require.NoError(t, err)

	sealed, err := v1.Seal("user-42")
	require.NoError(t, err)

	_, err = v2.Unseal(sealed)
	require.ErrorIs(t, err, auctionerrors.ErrTamperedOrCorrupt)
}

// Test MintPseudonym format and collision behaviour
func TestVault_MintPseudonym(t *testing.T) {
	t.Parallel()

	v, err := New(testKey(t))
	require.NoError(t, err)

	shape := regexp.MustCompile(`^BIDDER_[A-Z0-9]{8}$`)
	seen := make(map[string]struct{}, 1000)

	for i := 0; i < 1000; i++ {
		p, err := v.MintPseudonym("BIDDER")
		require.NoError(t, err)
		require.Regexp(t, shape, p)
		seen[p] = struct{}{}
	}

	// 36^8 combinations make an accidental collision in 1000 draws
	// vanishingly unlikely; any repeat here means a broken generator.
	require.Len(t, seen, 1000)
}

func TestVault_MintPseudonym_Prefixes(t *testing.T) {
	t.Parallel()

	v, err := New(testKey(t))
	require.NoError(t, err)

	seller, err := v.MintPseudonym("SELLER")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(seller, "SELLER_"))

	buyer, err := v.MintPseudonym("BUYER")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(buyer, "BUYER_"))
}

func TestVault_NewFromHex(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		hexKey    string
		wantError bool
	}{
		{name: "valid_hex_key", hexKey: strings.Repeat("ab", 32), wantError: false},
		{name: "not_hex", hexKey: strings.Repeat("zz", 32), wantError: true},
		{name: "too_short", hexKey: strings.Repeat("ab", 16), wantError: true},
		{name: "empty", hexKey: "", wantError: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewFromHex(tc.hexKey)
			if tc.wantError {
				require.ErrorIs(t, err, auctionerrors.ErrVaultMisconfigured)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
