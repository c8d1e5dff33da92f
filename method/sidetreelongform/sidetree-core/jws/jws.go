/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package jws is the public-facing re-export of the internal JOSE/JWK
// handling, plus compact-JWS signature verification against a revealed JWK.
package jws

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"math/big"

	"github.com/btcsuite/btcd/btcec"

	internal "github.com/trustbloc/sidetree-did-go/method/sidetreelongform/sidetree-core/internal/jws"
)

// JWK is a JSON Web Key, including the secp256k1 support the core protocol requires.
type JWK = internal.JWK

// Headers is the set of JWS protected headers.
type Headers = internal.Headers

// JSONWebSignature is a parsed compact JWS.
type JSONWebSignature = internal.JSONWebSignature

// HeaderAlgorithm is the JWS protected header key for the signing algorithm.
const HeaderAlgorithm = internal.HeaderAlgorithm

// HeaderKeyID is the JWS protected header key for the signing key ID.
const HeaderKeyID = internal.HeaderKeyID

// ParseJWS parses a compact-serialised JWS into its decoded parts, without verifying it.
func ParseJWS(compactJWS string) (*JSONWebSignature, error) {
	return internal.ParseJWS(compactJWS)
}

// Verify parses compactJWS and verifies its signature against the supplied
// public JWK. It supports the two signature primitives the protocol requires:
// ECDSA (P-256/ES256, secp256k1/ES256K) and Ed25519 (EdDSA).
func Verify(compactJWS string, jwk *JWK) error {
	sig, err := ParseJWS(compactJWS)
	if err != nil {
		return err
	}

	return VerifyParsed(sig, jwk)
}

// VerifyParsed verifies an already-parsed JWS against the supplied public JWK.
func VerifyParsed(sig *JSONWebSignature, jwk *JWK) error {
	alg, _ := sig.ProtectedHeaders.Algorithm()

	switch alg {
	case "EdDSA":
		pub, ok := jwk.Key.(ed25519.PublicKey)
		if !ok {
			return fmt.Errorf("jws verify: key is not an Ed25519 public key for alg %s", alg)
		}

		if !ed25519.Verify(pub, sig.SigningInput(), sig.Signature) {
			return fmt.Errorf("jws verify: ed25519 signature is invalid")
		}

		return nil
	case "ES256", "ES384", "ES512":
		pub, ok := jwk.Key.(*ecdsa.PublicKey)
		if !ok {
			return fmt.Errorf("jws verify: key is not an ECDSA public key for alg %s", alg)
		}

		return verifyECDSA(pub, sig)
	case "ES256K":
		pub, ok := jwk.Key.(*ecdsa.PublicKey)
		if !ok {
			return fmt.Errorf("jws verify: key is not an ECDSA public key for alg %s", alg)
		}

		btcPub := (*btcec.PublicKey)(pub)

		return verifySecp256k1(btcPub, sig)
	default:
		return fmt.Errorf("jws verify: unsupported signature algorithm '%s'", alg)
	}
}

func verifyECDSA(pub *ecdsa.PublicKey, sig *JSONWebSignature) error {
	keySize := (pub.Curve.Params().BitSize + 7) / 8

	if len(sig.Signature) != 2*keySize {
		return fmt.Errorf("jws verify: invalid ECDSA signature length")
	}

	r := new(big.Int).SetBytes(sig.Signature[:keySize])
	s := new(big.Int).SetBytes(sig.Signature[keySize:])

	digest := hashForCurve(pub.Curve, sig.SigningInput())

	if !ecdsa.Verify(pub, digest, r, s) {
		return fmt.Errorf("jws verify: ecdsa signature is invalid")
	}

	return nil
}

func verifySecp256k1(pub *btcec.PublicKey, sig *JSONWebSignature) error {
	const keySize = 32

	if len(sig.Signature) != 2*keySize {
		return fmt.Errorf("jws verify: invalid ES256K signature length")
	}

	r := new(big.Int).SetBytes(sig.Signature[:keySize])
	s := new(big.Int).SetBytes(sig.Signature[keySize:])

	digest := hashForCurve(btcec.S256(), sig.SigningInput())

	ecdsaPub := ecdsa.PublicKey{Curve: btcec.S256(), X: pub.X, Y: pub.Y}

	if !ecdsa.Verify(&ecdsaPub, digest, r, s) {
		return fmt.Errorf("jws verify: es256k signature is invalid")
	}

	return nil
}

func hashForCurve(curve elliptic.Curve, data []byte) []byte {
	switch curve.Params().BitSize {
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
