/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/trustbloc/sidetree-did-go/method/sidetreelongform/sidetree-core/api/operation"
)

func TestCreateAnchorFile(t *testing.T) {
	ops := getTestOperations(2, 3, 1, 1)

	af := CreateAnchorFile("map-file-uri", "lock-id",
		filterByType(ops, operation.TypeCreate), filterByType(ops, operation.TypeRecover), filterByType(ops, operation.TypeDeactivate)) //nolint:lll

	require.Equal(t, 2, len(af.Operations.Create))
	require.Equal(t, 1, len(af.Operations.Recover))
	require.Equal(t, 1, len(af.Operations.Deactivate))
	require.Equal(t, 4, af.OperationCount())
	require.Equal(t, "map-file-uri", af.MapFileURI)
}

func TestParseAnchorFile(t *testing.T) {
	ops := getTestOperations(2, 0, 0, 0)

	af := CreateAnchorFile("map-file-uri", "", filterByType(ops, operation.TypeCreate), nil, nil)

	bytes, err := json.Marshal(af)
	require.NoError(t, err)

	parsed, err := ParseAnchorFile(bytes)
	require.NoError(t, err)
	require.Equal(t, 2, len(parsed.Operations.Create))

	_, err = ParseAnchorFile([]byte("not json"))
	require.Error(t, err)
}
