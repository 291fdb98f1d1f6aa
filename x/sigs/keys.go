package sigs

import (
	"bytes"
	"crypto/rand"
	"io"

	"github.com/iov-one/weave-treasury"
	"github.com/iov-one/weave-treasury/errors"
	"golang.org/x/crypto/ed25519"
)

const (
	// ExtensionName is the extension part of every condition produced by
	// this package.
	ExtensionName = "sigs"

	keyTypeEd25519 = "ed25519"
)

// Signer is anything that can produce signatures for a public key.
type Signer interface {
	Sign(message []byte) ([]byte, error)
	PublicKey() PublicKey
}

// PublicKey is an ed25519 public key.
type PublicKey []byte

// Validate returns an error if the key has an invalid length.
func (p PublicKey) Validate() error {
	if len(p) != ed25519.PublicKeySize {
		return errors.Wrapf(errors.ErrInput, "public key must be %d bytes", ed25519.PublicKeySize)
	}
	return nil
}

// Verify returns true if sig is a valid signature of message.
func (p PublicKey) Verify(message, sig []byte) bool {
	if p.Validate() != nil || len(sig) != ed25519.SignatureSize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(p), message, sig)
}

// Condition returns the condition fulfilled by a valid signature of this
// key.
func (p PublicKey) Condition() weave.Condition {
	return weave.NewCondition(ExtensionName, keyTypeEd25519, p)
}

// Address returns the address of the key condition.
func (p PublicKey) Address() weave.Address {
	return p.Condition().Address()
}

// Equals returns true if both keys are the same.
func (p PublicKey) Equals(o PublicKey) bool {
	return bytes.Equal(p, o)
}

// PrivateKey is an ed25519 private key.
type PrivateKey []byte

var _ Signer = PrivateKey(nil)

// GenPrivateKey returns a new private key using crypto/rand as the source
// of entropy.
func GenPrivateKey() (PrivateKey, error) {
	return GenPrivateKeyFrom(rand.Reader)
}

// GenPrivateKeyFrom returns a new private key generated from given entropy.
func GenPrivateKeyFrom(r io.Reader) (PrivateKey, error) {
	_, priv, err := ed25519.GenerateKey(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return PrivateKey(priv), nil
}

// PrivateKeyFromSeed returns the private key derived from a 32 byte seed.
func PrivateKeyFromSeed(seed []byte) (PrivateKey, error) {
	if len(seed) != ed25519.SeedSize {
		return nil, errors.Wrapf(errors.ErrInput, "seed must be %d bytes", ed25519.SeedSize)
	}
	return PrivateKey(ed25519.NewKeyFromSeed(seed)), nil
}

// Sign returns the signature of the message.
func (p PrivateKey) Sign(message []byte) ([]byte, error) {
	if len(p) != ed25519.PrivateKeySize {
		return nil, errors.Wrap(errors.ErrInput, "invalid private key")
	}
	return ed25519.Sign(ed25519.PrivateKey(p), message), nil
}

// PublicKey returns the public part of the key.
func (p PrivateKey) PublicKey() PublicKey {
	pub := ed25519.PrivateKey(p).Public().(ed25519.PublicKey)
	return PublicKey(pub)
}
