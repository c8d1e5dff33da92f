/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package encoder implements the protocol's base64url-without-padding
// encoding scheme: https://identity.foundation/sidetree/spec/#encoding
package encoder

import "encoding/base64"

// EncodeToString encodes the given bytes using base64url with no padding.
func EncodeToString(data []byte) string {
	return base64.RawURLEncoding.EncodeToString(data)
}

// DecodeString decodes a base64url-without-padding string back to bytes.
func DecodeString(encoded string) ([]byte, error) {
	return base64.RawURLEncoding.DecodeString(encoded)
}
