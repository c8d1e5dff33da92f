/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package txnprovider

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/trustbloc/sidetree-did-go/method/sidetreelongform/sidetree-core/api/protocol"
	"github.com/trustbloc/sidetree-did-go/method/sidetreelongform/sidetree-core/api/txn"
	"github.com/trustbloc/sidetree-did-go/method/sidetreelongform/sidetree-core/commitment"
	"github.com/trustbloc/sidetree-did-go/method/sidetreelongform/sidetree-core/patch"
	"github.com/trustbloc/sidetree-did-go/method/sidetreelongform/sidetree-core/util/ecsigner"
	"github.com/trustbloc/sidetree-did-go/method/sidetreelongform/sidetree-core/util/pubkey"
	"github.com/trustbloc/sidetree-did-go/method/sidetreelongform/sidetree-core/versions/1_0/client"
	"github.com/trustbloc/sidetree-did-go/method/sidetreelongform/sidetree-core/versions/1_0/model"
	"github.com/trustbloc/sidetree-did-go/method/sidetreelongform/sidetree-core/versions/1_0/operationparser"
	"github.com/trustbloc/sidetree-did-go/method/sidetreelongform/sidetree-core/versions/1_0/txnprovider/models"
)

var errNotFound = errors.New("content not found")

const sha2_256 = 18

func testProtocol() protocol.Protocol {
	return protocol.Protocol{
		MultihashAlgorithms:          []uint{sha2_256},
		MaxOperationHashLength:       100,
		MaxOperationCount:            10,
		MaxOperationTimeDelta:        600,
		CompressionAlgorithm:         gzipCompressionAlgorithm,
		MaxMemoryDecompressionFactor: 3,
		MaxCoreIndexFileSize:         10000,
		MaxProvisionalIndexFileSize:  10000,
		MaxChunkFileSize:             10000,
		Patches:                      []string{"replace", "add-public-keys", "remove-public-keys", "add-services", "remove-services", "ietf-json-patch"},
	}
}

type mockCAS struct {
	content map[string][]byte
	err     error
}

func newMockCAS() *mockCAS {
	return &mockCAS{content: make(map[string][]byte)}
}

func (m *mockCAS) Read(uri string) ([]byte, error) {
	if m.err != nil {
		return nil, m.err
	}

	content, ok := m.content[uri]
	if !ok {
		return nil, errNotFound
	}

	return content, nil
}

func (m *mockCAS) put(compression *CompressionProvider, uri string, v interface{}) {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}

	compressed, err := compression.Compress(gzipCompressionAlgorithm, b)
	if err != nil {
		panic(err)
	}

	m.content[uri] = compressed
}

func newKeyAndCommitment(t *testing.T) (*ecdsa.PrivateKey, string) {
	t.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	jwk, err := pubkey.GetPublicKeyJWK(&key.PublicKey)
	require.NoError(t, err)

	c, err := commitment.GetCommitment(jwk, sha2_256)
	require.NoError(t, err)

	return key, c
}

func revealValue(t *testing.T, key *ecdsa.PrivateKey) string {
	t.Helper()

	jwk, err := pubkey.GetPublicKeyJWK(&key.PublicKey)
	require.NoError(t, err)

	rv, err := commitment.GetRevealValue(jwk, sha2_256)
	require.NoError(t, err)

	return rv
}

func newCreateRequest(t *testing.T) ([]byte, *ecdsa.PrivateKey) {
	t.Helper()

	updateKey, updateCommitment := newKeyAndCommitment(t)
	_, recoveryCommitment := newKeyAndCommitment(t)

	addKey, err := patch.NewAddPublicKeysPatch(`[{"id":"key1","type":"JsonWebKey2020","purposes":["authentication"],"publicKeyJwk":{"kty":"EC"}}]`)
	require.NoError(t, err)

	req, err := client.NewCreateRequest(&client.CreateRequestInfo{
		Patches:            []patch.Patch{addKey},
		RecoveryCommitment: recoveryCommitment,
		UpdateCommitment:   updateCommitment,
		MultihashCode:      sha2_256,
	})
	require.NoError(t, err)

	return req, updateKey
}

func TestOperationProvider_GetTxnOperations(t *testing.T) {
	p := testProtocol()
	parser := operationparser.New(p)
	compression := NewCompressionProvider(p.MaxMemoryDecompressionFactor)

	createReq, updateKey := newCreateRequest(t)

	createOp, err := parser.ParseCreateOperation(createReq, true)
	require.NoError(t, err)

	t.Run("success - create, update and deactivate", func(t *testing.T) {
		cas := newMockCAS()

		_, nextUpdateCommitment := newKeyAndCommitment(t)

		addKey, err := patch.NewAddPublicKeysPatch(`[{"id":"key2","type":"JsonWebKey2020","purposes":["authentication"],"publicKeyJwk":{"kty":"EC"}}]`)
		require.NoError(t, err)

		updateKeyJWK, err := pubkey.GetPublicKeyJWK(&updateKey.PublicKey)
		require.NoError(t, err)

		updateReq, err := client.NewUpdateRequest(&client.UpdateRequestInfo{
			DidSuffix:        "updateDidSuffix",
			Patches:          []patch.Patch{addKey},
			UpdateCommitment: nextUpdateCommitment,
			UpdateKey:        updateKeyJWK,
			MultihashCode:    sha2_256,
			Signer:           ecsigner.New(updateKey, "ES256", ""),
			RevealValue:      revealValue(t, updateKey),
		})
		require.NoError(t, err)

		updateOp, err := parser.ParseUpdateOperation(updateReq, true)
		require.NoError(t, err)

		recoveryKey, _ := newKeyAndCommitment(t)

		recoveryKeyJWK, err := pubkey.GetPublicKeyJWK(&recoveryKey.PublicKey)
		require.NoError(t, err)

		deactivateReq, err := client.NewDeactivateRequest(&client.DeactivateRequestInfo{
			DidSuffix:   "deactivateDidSuffix",
			RecoveryKey: recoveryKeyJWK,
			Signer:      ecsigner.New(recoveryKey, "ES256", ""),
			RevealValue: revealValue(t, recoveryKey),
		})
		require.NoError(t, err)

		deactivateOp, err := parser.ParseDeactivateOperation(deactivateReq, true)
		require.NoError(t, err)

		af := models.CreateAnchorFile("MapFileURI", "", []*model.Operation{createOp}, nil, []*model.Operation{deactivateOp})
		mf := models.CreateMapFile("ChunkFileURI", []*model.Operation{updateOp})
		cf := models.CreateChunkFile([]*model.Operation{createOp, updateOp})

		cas.put(compression, "AnchorFileURI", af)
		cas.put(compression, "MapFileURI", mf)
		cas.put(compression, "ChunkFileURI", cf)

		provider := NewOperationProvider(p, parser, cas, compression)

		ops, err := provider.GetTxnOperations(&txn.SidetreeTxn{
			AnchorString: "3.AnchorFileURI",
		})
		require.NoError(t, err)
		require.Len(t, ops, 3)

		require.Equal(t, createOp.UniqueSuffix, ops[0].UniqueSuffix)
		require.Equal(t, "AnchorFileURI", ops[0].CanonicalReference)
		require.Equal(t, uint(0), ops[0].OperationIndex)

		require.Equal(t, updateOp.UniqueSuffix, ops[1].UniqueSuffix)
		require.Equal(t, uint(1), ops[1].OperationIndex)

		require.Equal(t, deactivateOp.UniqueSuffix, ops[2].UniqueSuffix)
		require.Equal(t, uint(2), ops[2].OperationIndex)
	})

	t.Run("success - deactivate-only batch has no map file", func(t *testing.T) {
		cas := newMockCAS()

		recoveryKey, _ := newKeyAndCommitment(t)

		jwk, err := pubkey.GetPublicKeyJWK(&recoveryKey.PublicKey)
		require.NoError(t, err)

		deactivateReq, err := client.NewDeactivateRequest(&client.DeactivateRequestInfo{
			DidSuffix:   createOp.UniqueSuffix,
			RecoveryKey: jwk,
			Signer:      ecsigner.New(recoveryKey, "ES256", ""),
			RevealValue: revealValue(t, recoveryKey),
		})
		require.NoError(t, err)

		deactivateOp, err := parser.ParseDeactivateOperation(deactivateReq, true)
		require.NoError(t, err)

		af := models.CreateAnchorFile("", "", nil, nil, []*model.Operation{deactivateOp})
		cas.put(compression, "AnchorFileURI", af)

		provider := NewOperationProvider(p, parser, cas, compression)

		ops, err := provider.GetTxnOperations(&txn.SidetreeTxn{AnchorString: "1.AnchorFileURI"})
		require.NoError(t, err)
		require.Len(t, ops, 1)
		require.Equal(t, deactivateOp.UniqueSuffix, ops[0].UniqueSuffix)
	})

	t.Run("error - cas not reachable for anchor file", func(t *testing.T) {
		cas := newMockCAS()
		cas.err = errNotFound

		provider := NewOperationProvider(p, parser, cas, compression)

		_, err := provider.GetTxnOperations(&txn.SidetreeTxn{AnchorString: "1.AnchorFileURI"})
		require.Error(t, err)
	})

	t.Run("error - malformed anchor string", func(t *testing.T) {
		provider := NewOperationProvider(p, parser, newMockCAS(), compression)

		_, err := provider.GetTxnOperations(&txn.SidetreeTxn{AnchorString: "AnchorFileURI"})
		require.Error(t, err)
	})

	t.Run("error - operation count exceeds protocol maximum", func(t *testing.T) {
		cas := newMockCAS()

		small := p
		small.MaxOperationCount = 0

		af := models.CreateAnchorFile("", "", []*model.Operation{createOp}, nil, nil)
		cas.put(compression, "AnchorFileURI", af)

		provider := NewOperationProvider(small, parser, cas, compression)

		_, err := provider.GetTxnOperations(&txn.SidetreeTxn{AnchorString: "1.AnchorFileURI"})
		require.Error(t, err)
	})

	t.Run("create with no map file applies with an empty delta", func(t *testing.T) {
		cas := newMockCAS()

		af := models.CreateAnchorFile("", "", []*model.Operation{createOp}, nil, nil)
		cas.put(compression, "AnchorFileURI", af)

		provider := NewOperationProvider(p, parser, cas, compression)

		ops, err := provider.GetTxnOperations(&txn.SidetreeTxn{AnchorString: "1.AnchorFileURI"})
		require.NoError(t, err)
		require.Len(t, ops, 1)
	})

	t.Run("map file suffix duplicates anchor file suffix, map file is dropped", func(t *testing.T) {
		cas := newMockCAS()

		_, nextUpdateCommitment := newKeyAndCommitment(t)

		addKey, err := patch.NewAddPublicKeysPatch(`[{"id":"key2","type":"JsonWebKey2020","purposes":["authentication"],"publicKeyJwk":{"kty":"EC"}}]`)
		require.NoError(t, err)

		updateKeyJWK, err := pubkey.GetPublicKeyJWK(&updateKey.PublicKey)
		require.NoError(t, err)

		updateReq, err := client.NewUpdateRequest(&client.UpdateRequestInfo{
			DidSuffix:        createOp.UniqueSuffix,
			Patches:          []patch.Patch{addKey},
			UpdateCommitment: nextUpdateCommitment,
			UpdateKey:        updateKeyJWK,
			MultihashCode:    sha2_256,
			Signer:           ecsigner.New(updateKey, "ES256", ""),
			RevealValue:      revealValue(t, updateKey),
		})
		require.NoError(t, err)

		updateOp, err := parser.ParseUpdateOperation(updateReq, true)
		require.NoError(t, err)

		af := models.CreateAnchorFile("MapFileURI", "", []*model.Operation{createOp}, nil, nil)
		mf := models.CreateMapFile("ChunkFileURI", []*model.Operation{updateOp})

		cas.put(compression, "AnchorFileURI", af)
		cas.put(compression, "MapFileURI", mf)

		provider := NewOperationProvider(p, parser, cas, compression)

		ops, err := provider.GetTxnOperations(&txn.SidetreeTxn{AnchorString: "2.AnchorFileURI"})
		require.NoError(t, err)
		require.Len(t, ops, 1)
		require.Equal(t, createOp.UniqueSuffix, ops[0].UniqueSuffix)
	})

	t.Run("error - anchor file exceeds max core index file size", func(t *testing.T) {
		cas := newMockCAS()

		af := models.CreateAnchorFile("", "", []*model.Operation{createOp}, nil, nil)
		cas.put(compression, "AnchorFileURI", af)

		small := p
		small.MaxCoreIndexFileSize = 1

		provider := NewOperationProvider(small, parser, cas, compression)

		_, err := provider.GetTxnOperations(&txn.SidetreeTxn{AnchorString: "1.AnchorFileURI"})
		require.Error(t, err)
	})

	t.Run("map file exceeds max provisional index file size, map file is dropped", func(t *testing.T) {
		cas := newMockCAS()

		af := models.CreateAnchorFile("MapFileURI", "", []*model.Operation{createOp}, nil, nil)
		mf := models.CreateMapFile("ChunkFileURI", nil)

		cas.put(compression, "AnchorFileURI", af)
		cas.put(compression, "MapFileURI", mf)

		small := p
		small.MaxProvisionalIndexFileSize = 1

		provider := NewOperationProvider(small, parser, cas, compression)

		ops, err := provider.GetTxnOperations(&txn.SidetreeTxn{AnchorString: "1.AnchorFileURI"})
		require.NoError(t, err)
		require.Len(t, ops, 1)
		require.Equal(t, createOp.UniqueSuffix, ops[0].UniqueSuffix)
	})
}
