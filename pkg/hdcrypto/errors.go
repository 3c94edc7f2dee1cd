package hdcrypto

import "errors"

var (
	// ErrNullRootPublicKey ...
	ErrNullRootPublicKey = errors.New("root public key must not be null")
	// ErrInvalidPassphrase ...
	ErrInvalidPassphrase = errors.New("hd passphrase must be 32 bytes")
	// ErrInvalidAddress ...
	ErrInvalidAddress = errors.New("address is not in a recognized format")
	// ErrNotOwned ...
	ErrNotOwned = errors.New("address payload cannot be decrypted with this passphrase")
)
