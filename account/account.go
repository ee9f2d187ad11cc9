// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"crypto/rand"
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/ed25519"

	"github.com/bitmark-inc/ledgerd/fault"
)

// miscellaneous constants
const (
	PublicKeyHexLength = 2 * ed25519.PublicKeySize
	SignatureHexLength = 2 * ed25519.SignatureSize
)

// Signer - anything that can sign a message on behalf of a public key
type Signer interface {
	Sign(message []byte) ([]byte, error)
	PublicKey() string
}

// PrivateKey - an ed25519 signing key
type PrivateKey struct {
	key ed25519.PrivateKey
}

// NewPrivateKey - generate a random key
func NewPrivateKey() (*PrivateKey, error) {
	_, key, err := ed25519.GenerateKey(rand.Reader)
	if nil != err {
		return nil, err
	}
	return &PrivateKey{key: key}, nil
}

// PrivateKeyFromHex - accepts either the 32 byte seed or the full
// 64 byte private key
func PrivateKeyFromHex(s string) (*PrivateKey, error) {
	b, err := hex.DecodeString(strings.TrimSpace(s))
	if nil != err {
		return nil, fault.InvalidPrivateKey
	}
	switch len(b) {
	case ed25519.SeedSize:
		return &PrivateKey{key: ed25519.NewKeyFromSeed(b)}, nil
	case ed25519.PrivateKeySize:
		k := ed25519.NewKeyFromSeed(b[:ed25519.SeedSize])
		if hex.EncodeToString(k[ed25519.SeedSize:]) != hex.EncodeToString(b[ed25519.SeedSize:]) {
			return nil, fault.InvalidPrivateKey
		}
		return &PrivateKey{key: k}, nil
	default:
		return nil, fault.InvalidPrivateKey
	}
}

// Sign - sign a message
func (k *PrivateKey) Sign(message []byte) ([]byte, error) {
	if nil == k || len(k.key) != ed25519.PrivateKeySize {
		return nil, fault.InvalidPrivateKey
	}
	return ed25519.Sign(k.key, message), nil
}

// PublicKey - hex public key
func (k *PrivateKey) PublicKey() string {
	return hex.EncodeToString(k.key[ed25519.SeedSize:])
}

// Seed - hex seed, the form written to key files
func (k *PrivateKey) Seed() string {
	return hex.EncodeToString(k.key.Seed())
}

// ValidPublicKey - check the hex form of a public key
func ValidPublicKey(publicKey string) bool {
	if PublicKeyHexLength != len(publicKey) {
		return false
	}
	_, err := hex.DecodeString(publicKey)
	return nil == err && strings.ToLower(publicKey) == publicKey
}

// Verify - check a hex signature over a message against a hex public key
func Verify(publicKey string, message []byte, signature string) error {
	if !ValidPublicKey(publicKey) {
		return fault.InvalidPublicKey
	}
	key, _ := hex.DecodeString(publicKey)

	if SignatureHexLength != len(signature) {
		return fault.SignatureInvalid
	}
	sig, err := hex.DecodeString(signature)
	if nil != err {
		return fault.SignatureInvalid
	}

	if !ed25519.Verify(ed25519.PublicKey(key), message, sig) {
		return fault.SignatureInvalid
	}
	return nil
}
