/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package pubkey converts native Go public key types into the JWK
// representation used throughout the protocol (commitments, reveal values,
// signed-data models).
package pubkey

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"fmt"

	"github.com/btcsuite/btcd/btcec"
	"github.com/square/go-jose/v3"

	internal "github.com/trustbloc/sidetree-did-go/method/sidetreelongform/sidetree-core/internal/jws"
)

// GetPublicKeyJWK converts a supported public key type into its JWK form.
// Supported types are *ecdsa.PublicKey (P-256/P-384/P-521 and secp256k1) and
// ed25519.PublicKey.
func GetPublicKeyJWK(pubKey interface{}) (*internal.JWK, error) {
	switch key := pubKey.(type) {
	case *ecdsa.PublicKey:
		return ecdsaPublicKeyJWK(key)
	case ed25519.PublicKey:
		return &internal.JWK{
			JSONWebKey: jose.JSONWebKey{Key: key},
			Kty:        "OKP",
			Crv:        "Ed25519",
		}, nil
	default:
		return nil, fmt.Errorf("pubkey: unsupported public key type %T", pubKey)
	}
}

func ecdsaPublicKeyJWK(key *ecdsa.PublicKey) (*internal.JWK, error) {
	if key.Curve == btcec.S256() {
		return &internal.JWK{
			JSONWebKey: jose.JSONWebKey{Key: key},
			Kty:        "EC",
			Crv:        "secp256k1",
		}, nil
	}

	crv, err := crvForCurveBitSize(key.Curve.Params().BitSize)
	if err != nil {
		return nil, err
	}

	return &internal.JWK{
		JSONWebKey: jose.JSONWebKey{Key: key},
		Kty:        "EC",
		Crv:        crv,
	}, nil
}

func crvForCurveBitSize(bitSize int) (string, error) {
	switch bitSize {
	case 256:
		return "P-256", nil
	case 384:
		return "P-384", nil
	case 521:
		return "P-521", nil
	default:
		return "", fmt.Errorf("pubkey: unsupported curve bit size %d", bitSize)
	}
}
