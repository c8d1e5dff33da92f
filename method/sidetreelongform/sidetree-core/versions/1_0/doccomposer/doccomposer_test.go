/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package doccomposer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/trustbloc/sidetree-did-go/method/sidetreelongform/sidetree-core/document"
	"github.com/trustbloc/sidetree-did-go/method/sidetreelongform/sidetree-core/patch"
)

func TestApplyPatches(t *testing.T) {
	c := New()

	t.Run("add then remove public keys", func(t *testing.T) {
		addPatch, err := patch.NewAddPublicKeysPatch(
			`[{"id":"key1","type":"JsonWebKey2020","purposes":["authentication"]}]`)
		require.NoError(t, err)

		doc, err := c.ApplyPatches(make(document.Document), []patch.Patch{addPatch})
		require.NoError(t, err)
		require.Len(t, doc.PublicKeys(), 1)
		require.Equal(t, "key1", doc.PublicKeys()[0].ID())

		removePatch, err := patch.NewRemovePublicKeysPatch(`["key1"]`)
		require.NoError(t, err)

		doc, err = c.ApplyPatches(doc, []patch.Patch{removePatch})
		require.NoError(t, err)
		require.Empty(t, doc.PublicKeys())
	})

	t.Run("add then remove services", func(t *testing.T) {
		addPatch, err := patch.NewAddServicesPatch(
			`[{"id":"svc1","type":"LinkedDomains","serviceEndpoint":"https://example.com"}]`)
		require.NoError(t, err)

		doc, err := c.ApplyPatches(make(document.Document), []patch.Patch{addPatch})
		require.NoError(t, err)
		require.Len(t, doc.Services(), 1)

		removePatch, err := patch.NewRemoveServicesPatch(`["svc1"]`)
		require.NoError(t, err)

		doc, err = c.ApplyPatches(doc, []patch.Patch{removePatch})
		require.NoError(t, err)
		require.Empty(t, doc.Services())
	})

	t.Run("replace", func(t *testing.T) {
		replacePatch, err := patch.NewReplacePatch(
			`{"publicKeys":[{"id":"key1","type":"JsonWebKey2020","purposes":["authentication"]}],"services":[]}`)
		require.NoError(t, err)

		doc, err := c.ApplyPatches(make(document.Document), []patch.Patch{replacePatch})
		require.NoError(t, err)
		require.Len(t, doc.PublicKeys(), 1)
		require.Empty(t, doc.Services())
	})

	t.Run("json patch", func(t *testing.T) {
		addPatch, err := patch.NewAddServicesPatch(
			`[{"id":"svc1","type":"LinkedDomains","serviceEndpoint":"https://example.com"}]`)
		require.NoError(t, err)

		doc, err := c.ApplyPatches(make(document.Document), []patch.Patch{addPatch})
		require.NoError(t, err)

		jsonPatch, err := patch.NewJSONPatch(`[{"op": "remove", "path": "/service"}]`)
		require.NoError(t, err)

		doc, err = c.ApplyPatches(doc, []patch.Patch{jsonPatch})
		require.NoError(t, err)
		require.Empty(t, doc.Services())
	})

	t.Run("error - unsupported action", func(t *testing.T) {
		bad := make(patch.Patch)
		bad[patch.ActionKey] = "unsupported-action"

		_, err := c.ApplyPatches(make(document.Document), []patch.Patch{bad})
		require.Error(t, err)
		require.Contains(t, err.Error(), "not supported")
	})
}
