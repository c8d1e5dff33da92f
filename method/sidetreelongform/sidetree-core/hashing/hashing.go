/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package hashing implements the protocol's hashing process: SHA-256 (and
// SHA3-256) wrapped in the multihash binary format, base64url-encoded.
// https://identity.foundation/sidetree/spec/#hashing-process
package hashing

import (
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"

	"github.com/multiformats/go-multihash"
	"golang.org/x/crypto/sha3"

	"github.com/trustbloc/sidetree-did-go/doc/json/canonicalizer"
	"github.com/trustbloc/sidetree-did-go/method/sidetreelongform/sidetree-core/encoder"
)

// hasherForCode returns the hash.Hash implementation for a supported multihash code.
func hasherForCode(multihashCode uint64) (func() hash.Hash, error) {
	switch multihashCode {
	case multihash.SHA2_256:
		return sha256.New, nil
	case multihash.SHA2_512:
		return sha512.New, nil
	case multihash.SHA3_256:
		return sha3.New256, nil
	default:
		return nil, fmt.Errorf("algorithm not supported, unable to compute hash")
	}
}

// GetHash computes the raw (non-multihashed) hash of data using the algorithm
// identified by multihashCode.
func GetHash(multihashCode uint, data []byte) ([]byte, error) {
	newHasher, err := hasherForCode(uint64(multihashCode))
	if err != nil {
		return nil, err
	}

	h := newHasher()
	h.Write(data)

	return h.Sum(nil), nil
}

// ComputeMultihash hashes data using the given algorithm and wraps the result
// in the multihash binary format.
func ComputeMultihash(multihashCode uint, data []byte) ([]byte, error) {
	hashed, err := GetHash(multihashCode, data)
	if err != nil {
		return nil, err
	}

	return multihash.Encode(hashed, uint64(multihashCode))
}

// Multihash hashes data and returns the base64url-encoded multihash.
func Multihash(multihashCode uint, data []byte) (string, error) {
	mh, err := ComputeMultihash(multihashCode, data)
	if err != nil {
		return "", err
	}

	return encoder.EncodeToString(mh), nil
}

// CalculateModelMultihash canonicalizes model per RFC 8785, hashes the result,
// and returns the base64url-encoded multihash.
func CalculateModelMultihash(model interface{}, multihashCode uint) (string, error) {
	canonicalBytes, err := canonicalizer.MarshalCanonical(model)
	if err != nil {
		return "", fmt.Errorf("calculate multihash: %s", err.Error())
	}

	return Multihash(multihashCode, canonicalBytes)
}

// IsValidModelMultihash verifies that encodedMultihash is the multihash of
// the canonicalized model.
func IsValidModelMultihash(model interface{}, encodedMultihash string) error {
	canonicalBytes, err := canonicalizer.MarshalCanonical(model)
	if err != nil {
		return fmt.Errorf("failed to canonicalize model: %s", err.Error())
	}

	return IsValidHash(canonicalBytes, encodedMultihash)
}

// IsValidHash verifies that encodedMultihash is the multihash of content,
// using the algorithm embedded in encodedMultihash itself.
func IsValidHash(content []byte, encodedMultihash string) error {
	code, err := GetMultihashCode(encodedMultihash)
	if err != nil {
		return err
	}

	computed, err := Multihash(uint(code), content)
	if err != nil {
		return err
	}

	if computed != encodedMultihash {
		return fmt.Errorf("supplied hash doesn't match original content")
	}

	return nil
}

// GetMultihashCode decodes encodedMultihash and returns its algorithm code.
func GetMultihashCode(encodedMultihash string) (uint64, error) {
	mh, err := decode(encodedMultihash)
	if err != nil {
		return 0, err
	}

	return mh.Code, nil
}

// DecodeMultihash decodes encodedMultihash and returns the raw digest bytes
// it wraps (without the multihash code/length prefix).
func DecodeMultihash(encodedMultihash string) ([]byte, error) {
	mh, err := decode(encodedMultihash)
	if err != nil {
		return nil, err
	}

	return mh.Digest, nil
}

// IsComputedUsingMultihashAlgorithms reports whether encodedMultihash was
// computed using one of multihashCodes. It never errors - malformed input
// simply reports false, so callers in the resolution path can skip rather
// than fail.
func IsComputedUsingMultihashAlgorithms(encodedMultihash string, multihashCodes []uint) bool {
	code, err := GetMultihashCode(encodedMultihash)
	if err != nil {
		return false
	}

	for _, supported := range multihashCodes {
		if uint64(supported) == code {
			return true
		}
	}

	return false
}

func decode(encodedMultihash string) (*multihash.DecodedMultihash, error) {
	mhBytes, err := encoder.DecodeString(encodedMultihash)
	if err != nil {
		return nil, err
	}

	return multihash.Decode(mhBytes)
}
