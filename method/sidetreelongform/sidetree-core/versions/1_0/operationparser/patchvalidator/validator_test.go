/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package patchvalidator

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/trustbloc/sidetree-did-go/method/sidetreelongform/sidetree-core/patch"
)

var allActions = []string{
	string(patch.Replace),
	string(patch.AddPublicKeys),
	string(patch.RemovePublicKeys),
	string(patch.AddServices),
	string(patch.RemoveServices),
	string(patch.JSONPatch),
}

func TestValidateAddPublicKeys(t *testing.T) {
	p, err := patch.NewAddPublicKeysPatch(
		`[{"id": "key1", "type": "JsonWebKey2020", "purposes": ["authentication"], "publicKeyJwk": {"kty": "EC", "crv": "P-256", "x": "eA", "y": "eQ"}}]`)
	require.NoError(t, err)

	require.NoError(t, Validate(p, allActions))

	t.Run("not allowed", func(t *testing.T) {
		require.Error(t, Validate(p, []string{string(patch.AddServices)}))
	})
}

func TestValidateRemovePublicKeys(t *testing.T) {
	p, err := patch.NewRemovePublicKeysPatch(`["key1"]`)
	require.NoError(t, err)

	require.NoError(t, Validate(p, allActions))
}

func TestValidateAddServices(t *testing.T) {
	p, err := patch.NewAddServicesPatch(
		`[{"id": "svc1", "type": "LinkedDomains", "serviceEndpoint": "https://example.com"}]`)
	require.NoError(t, err)

	require.NoError(t, Validate(p, allActions))
}

func TestValidateRemoveServices(t *testing.T) {
	p, err := patch.NewRemoveServicesPatch(`["svc1"]`)
	require.NoError(t, err)

	require.NoError(t, Validate(p, allActions))
}

func TestValidateReplace(t *testing.T) {
	p, err := patch.NewReplacePatch(`{
		"publicKeys": [{"id": "key1", "type": "JsonWebKey2020", "purposes": ["authentication"], "publicKeyJwk": {"kty": "EC", "crv": "P-256", "x": "eA", "y": "eQ"}}],
		"services": [{"id": "svc1", "type": "LinkedDomains", "serviceEndpoint": "https://example.com"}]
	}`)
	require.NoError(t, err)

	require.NoError(t, Validate(p, allActions))

	t.Run("disallowed key", func(t *testing.T) {
		bad, err := patch.NewReplacePatch(`{"id": "did:example:abc"}`)
		require.NoError(t, err)

		require.Error(t, Validate(bad, allActions))
	})
}

func TestValidateJSONPatch(t *testing.T) {
	p, err := patch.NewJSONPatch(`[{"op": "replace", "path": "/name", "value": "Jane"}]`)
	require.NoError(t, err)

	require.NoError(t, Validate(p, allActions))

	t.Run("disallowed path", func(t *testing.T) {
		bad, err := patch.NewJSONPatch(`[{"op": "replace", "path": "/id", "value": "x"}]`)
		require.NoError(t, err)

		require.Error(t, Validate(bad, allActions))
	})
}

func TestValidateMissingAction(t *testing.T) {
	p := make(patch.Patch)

	require.Error(t, Validate(p, allActions))
}

func TestValidateUnsupportedAction(t *testing.T) {
	p := make(patch.Patch)
	p[patch.ActionKey] = "unknown-action"

	require.Error(t, Validate(p, []string{"unknown-action"}))
}
