/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package commitment implements the public key commitment scheme: a reveal
// value is the multihash of the canonicalized public key JWK, and the
// commitment is the multihash of the digest that reveal value encodes.
package commitment

import (
	"fmt"

	"github.com/trustbloc/sidetree-did-go/doc/json/canonicalizer"
	"github.com/trustbloc/sidetree-did-go/method/sidetreelongform/sidetree-core/hashing"
	"github.com/trustbloc/sidetree-did-go/method/sidetreelongform/sidetree-core/jws"
)

// GetRevealValue returns the reveal value for jwk: the encoded multihash of
// its canonicalized JSON representation.
func GetRevealValue(jwk *jws.JWK, multihashCode uint) (string, error) {
	canonicalBytes, err := canonicalizer.MarshalCanonical(jwk)
	if err != nil {
		return "", fmt.Errorf("commitment: failed to canonicalize jwk: %w", err)
	}

	rv, err := hashing.Multihash(multihashCode, canonicalBytes)
	if err != nil {
		return "", fmt.Errorf("commitment: failed to hash jwk: %w", err)
	}

	return rv, nil
}

// GetCommitment returns the commitment value for jwk: the encoded multihash
// of the digest held in jwk's reveal value.
func GetCommitment(jwk *jws.JWK, multihashCode uint) (string, error) {
	rv, err := GetRevealValue(jwk, multihashCode)
	if err != nil {
		return "", err
	}

	return GetCommitmentFromRevealValue(rv)
}

// GetCommitmentFromRevealValue returns the commitment value derived from an
// already-computed reveal value.
func GetCommitmentFromRevealValue(rv string) (string, error) {
	decoded, err := hashing.DecodeMultihash(rv)
	if err != nil {
		return "", fmt.Errorf("commitment: failed to decode reveal value: %w", err)
	}

	code, err := hashing.GetMultihashCode(rv)
	if err != nil {
		return "", fmt.Errorf("commitment: failed to read reveal value hash algorithm: %w", err)
	}

	commit, err := hashing.Multihash(uint(code), decoded)
	if err != nil {
		return "", fmt.Errorf("commitment: failed to hash reveal value: %w", err)
	}

	return commit, nil
}
