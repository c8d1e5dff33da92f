/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package docutil provides DID string helpers shared across the method:
// assembling a DID from its namespace and unique suffix, and deriving that
// unique suffix from a create operation's suffix data.
package docutil

import (
	"github.com/trustbloc/sidetree-did-go/method/sidetreelongform/sidetree-core/hashing"
)

// NamespaceDelimiter separates a DID's method namespace from its unique suffix.
const NamespaceDelimiter = ":"

// CalculateUniqueSuffix derives a DID's unique suffix by hashing its create
// operation's suffix data with the given multihash algorithm.
func CalculateUniqueSuffix(suffixData interface{}, multihashCode uint) (string, error) {
	return hashing.CalculateModelMultihash(suffixData, multihashCode)
}

// GetDID assembles a DID string from a method namespace and unique suffix.
func GetDID(namespace, uniqueSuffix string) string {
	return namespace + NamespaceDelimiter + uniqueSuffix
}
