package hdcrypto_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/TerrikNET/cardano-sl/pkg/hdcrypto"
)

func TestDeriveHdPassphrase(t *testing.T) {
	rootPubKey := []byte("root public key material")

	passphrase, err := hdcrypto.DeriveHdPassphrase(rootPubKey)
	require.NoError(t, err)
	require.Len(t, passphrase, 32)

	samePassphrase, err := hdcrypto.DeriveHdPassphrase(rootPubKey)
	require.NoError(t, err)
	require.Equal(t, passphrase, samePassphrase)

	otherPassphrase, err := hdcrypto.DeriveHdPassphrase([]byte("other key"))
	require.NoError(t, err)
	require.NotEqual(t, passphrase, otherPassphrase)
}

func TestFailingDeriveHdPassphrase(t *testing.T) {
	_, err := hdcrypto.DeriveHdPassphrase(nil)
	require.EqualError(t, err, hdcrypto.ErrNullRootPublicKey.Error())
}

func TestAddressRoundTrip(t *testing.T) {
	passphrase, err := hdcrypto.DeriveHdPassphrase([]byte("root public key material"))
	require.NoError(t, err)

	path := []uint32{0x80000000, 21, 7}
	address, err := hdcrypto.NewAddress(passphrase, path)
	require.NoError(t, err)
	require.True(t, len(address) > len(hdcrypto.AddressPrefix))

	decrypted, err := hdcrypto.DecryptDerivationPath(passphrase, address)
	require.NoError(t, err)
	require.Equal(t, path, decrypted)
	require.True(t, hdcrypto.IsOwned(passphrase, address))
}

func TestIsOwnedForeignAddress(t *testing.T) {
	passphrase, err := hdcrypto.DeriveHdPassphrase([]byte("root public key material"))
	require.NoError(t, err)
	otherPassphrase, err := hdcrypto.DeriveHdPassphrase([]byte("other key"))
	require.NoError(t, err)

	address, err := hdcrypto.NewAddress(passphrase, []uint32{1, 2})
	require.NoError(t, err)

	require.False(t, hdcrypto.IsOwned(otherPassphrase, address))

	_, err = hdcrypto.DecryptDerivationPath(otherPassphrase, address)
	require.EqualError(t, err, hdcrypto.ErrNotOwned.Error())
}

func TestFailingDecryptDerivationPath(t *testing.T) {
	passphrase, err := hdcrypto.DeriveHdPassphrase([]byte("root public key material"))
	require.NoError(t, err)

	tests := []struct {
		name    string
		address string
		err     error
	}{
		{"missing_prefix", "DdzFFzaddress", hdcrypto.ErrInvalidAddress},
		{"not_base64", "Ae2***", hdcrypto.ErrInvalidAddress},
		{"truncated_payload", "Ae2AAAA", hdcrypto.ErrInvalidAddress},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := hdcrypto.DecryptDerivationPath(passphrase, tt.address)
			require.EqualError(t, err, tt.err.Error())
			require.False(t, hdcrypto.IsOwned(passphrase, tt.address))
		})
	}
}

func TestFailingNewAddress(t *testing.T) {
	_, err := hdcrypto.NewAddress([]byte("short"), []uint32{1})
	require.EqualError(t, err, hdcrypto.ErrInvalidPassphrase.Error())
}
