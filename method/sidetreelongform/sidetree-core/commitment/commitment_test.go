/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package commitment

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"testing"

	"github.com/multiformats/go-multihash"
	"github.com/stretchr/testify/require"

	"github.com/trustbloc/sidetree-did-go/method/sidetreelongform/sidetree-core/util/pubkey"
)

func TestGetCommitment(t *testing.T) {
	privKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	jwk, err := pubkey.GetPublicKeyJWK(&privKey.PublicKey)
	require.NoError(t, err)

	rv, err := GetRevealValue(jwk, multihash.SHA2_256)
	require.NoError(t, err)
	require.NotEmpty(t, rv)

	c, err := GetCommitment(jwk, multihash.SHA2_256)
	require.NoError(t, err)
	require.NotEmpty(t, c)
	require.NotEqual(t, rv, c)

	t.Run("commitment from reveal value matches", func(t *testing.T) {
		fromRV, err := GetCommitmentFromRevealValue(rv)
		require.NoError(t, err)
		require.Equal(t, c, fromRV)
	})

	t.Run("different keys produce different commitments", func(t *testing.T) {
		otherKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
		require.NoError(t, err)

		otherJWK, err := pubkey.GetPublicKeyJWK(&otherKey.PublicKey)
		require.NoError(t, err)

		otherCommitment, err := GetCommitment(otherJWK, multihash.SHA2_256)
		require.NoError(t, err)
		require.NotEqual(t, c, otherCommitment)
	})

	t.Run("error - invalid reveal value", func(t *testing.T) {
		_, err := GetCommitmentFromRevealValue("not-a-multihash")
		require.Error(t, err)
	})
}
