/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package model

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/trustbloc/sidetree-did-go/method/sidetreelongform/sidetree-core/api/operation"
)

func TestGetAnchoredOperation(t *testing.T) {
	op := &Operation{
		Type:             operation.TypeCreate,
		UniqueSuffix:     "abc",
		OperationRequest: []byte("request"),
		Delta:            &DeltaModel{UpdateCommitment: "commitment"},
	}

	anchoredOp, err := GetAnchoredOperation(op)
	require.NoError(t, err)
	require.Equal(t, operation.TypeCreate, anchoredOp.Type)
	require.Equal(t, "abc", anchoredOp.UniqueSuffix)
	require.Equal(t, []byte("request"), anchoredOp.OperationRequest)
	require.NotEmpty(t, anchoredOp.Delta)

	t.Run("no delta", func(t *testing.T) {
		anchoredOp, err := GetAnchoredOperation(&Operation{Type: operation.TypeDeactivate})
		require.NoError(t, err)
		require.Empty(t, anchoredOp.Delta)
	})
}
