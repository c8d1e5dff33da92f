/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package ecsigner implements a client.Signer backed by an ECDSA private key,
// producing raw (non-ASN.1) fixed-length r||s signatures as required by JWS.
package ecsigner

import (
	"crypto/ecdsa"
	"crypto/rand"
	"crypto/sha256"
	"crypto/sha512"
	"fmt"

	"github.com/trustbloc/sidetree-did-go/method/sidetreelongform/sidetree-core/jws"
)

// Signer signs data using an ECDSA private key (including secp256k1, which is
// represented as an *ecdsa.PrivateKey on the btcec.S256 curve) and reports the
// JWS protected headers associated with that key.
type Signer struct {
	privateKey *ecdsa.PrivateKey
	alg        string
	kid        string
}

// New creates a new Signer for the given private key, algorithm and key ID.
// kid may be empty, in which case the "kid" header is omitted.
func New(privateKey *ecdsa.PrivateKey, alg, kid string) *Signer {
	return &Signer{
		privateKey: privateKey,
		alg:        alg,
		kid:        kid,
	}
}

// Headers returns the JWS protected headers for this signer.
func (s *Signer) Headers() jws.Headers {
	headers := jws.Headers{
		jws.HeaderAlgorithm: s.alg,
	}

	if s.kid != "" {
		headers[jws.HeaderKeyID] = s.kid
	}

	return headers
}

// Sign signs data, returning a fixed-length r||s signature.
func (s *Signer) Sign(data []byte) ([]byte, error) {
	if s.privateKey == nil {
		return nil, fmt.Errorf("ecsigner: private key is required")
	}

	digest := hashForCurve(s.privateKey.Curve.Params().BitSize, data)

	r, sig, err := ecdsa.Sign(rand.Reader, s.privateKey, digest)
	if err != nil {
		return nil, fmt.Errorf("ecsigner: sign failed: %w", err)
	}

	keySize := (s.privateKey.Curve.Params().BitSize + 7) / 8

	return append(
		padTo(r.Bytes(), keySize),
		padTo(sig.Bytes(), keySize)...,
	), nil
}

func hashForCurve(bitSize int, data []byte) []byte {
	switch bitSize {
	case 384:
		sum := sha512.Sum384(data)
		return sum[:]
	case 521:
		sum := sha512.Sum512(data)
		return sum[:]
	default:
		sum := sha256.Sum256(data)
		return sum[:]
	}
}

func padTo(b []byte, size int) []byte {
	if len(b) >= size {
		return b[len(b)-size:]
	}

	padded := make([]byte, size)
	copy(padded[size-len(b):], b)

	return padded
}
