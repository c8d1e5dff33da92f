/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package canonicalizer implements the protocol's JSON Canonicalization Scheme
// (RFC 8785): https://identity.foundation/sidetree/spec/#json-canonicalization-scheme
package canonicalizer

import (
	"encoding/json"

	"github.com/gowebpki/jcs"
)

// MarshalCanonical marshals the given object to JSON and transforms the
// result per RFC 8785 (lexicographically sorted keys at every depth,
// no insignificant whitespace, numbers serialised per ECMAScript 2019).
func MarshalCanonical(value interface{}) ([]byte, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}

	return Transform(raw)
}

// Transform canonicalizes an already-serialised JSON document.
func Transform(raw []byte) ([]byte, error) {
	return jcs.Transform(raw)
}
