/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package jws

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
)

// HeaderAlgorithm is the JWS protected header key for the signing algorithm.
const HeaderAlgorithm = "alg"

// HeaderKeyID is the JWS protected header key for the signing key ID.
const HeaderKeyID = "kid"

// Headers is the (untyped, order-preserved-by-caller) set of JWS protected headers.
type Headers map[string]interface{}

// Algorithm returns the "alg" protected header, if present.
func (h Headers) Algorithm() (string, bool) {
	v, ok := h[HeaderAlgorithm]
	if !ok {
		return "", false
	}

	s, ok := v.(string)

	return s, ok
}

// KeyID returns the "kid" protected header, if present.
func (h Headers) KeyID() (string, bool) {
	v, ok := h[HeaderKeyID]
	if !ok {
		return "", false
	}

	s, ok := v.(string)

	return s, ok
}

// JSONWebSignature is a parsed compact JWS: protected header, payload, and
// raw signature bytes. Signature verification against a candidate key is
// the caller's responsibility (see the public jws package).
type JSONWebSignature struct {
	ProtectedHeaders Headers
	Payload          []byte
	Signature        []byte

	protectedRaw string
	payloadRaw   string
}

// ParseJWS parses a compact-serialised JWS ("header.payload.signature") into
// its three decoded parts. It does not verify the signature.
func ParseJWS(compactJWS string) (*JSONWebSignature, error) {
	parts := strings.Split(compactJWS, ".")
	if len(parts) != 3 {
		return nil, fmt.Errorf("invalid JWS compact serialization: expected 3 parts, got %d", len(parts))
	}

	headerBytes, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return nil, fmt.Errorf("invalid JWS protected header encoding: %s", err.Error())
	}

	var headers Headers

	if err := json.Unmarshal(headerBytes, &headers); err != nil {
		return nil, fmt.Errorf("invalid JWS protected header: %s", err.Error())
	}

	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, fmt.Errorf("invalid JWS payload encoding: %s", err.Error())
	}

	signature, err := base64.RawURLEncoding.DecodeString(parts[2])
	if err != nil {
		return nil, fmt.Errorf("invalid JWS signature encoding: %s", err.Error())
	}

	return &JSONWebSignature{
		ProtectedHeaders: headers,
		Payload:          payload,
		Signature:        signature,
		protectedRaw:     parts[0],
		payloadRaw:       parts[1],
	}, nil
}

// SigningInput returns the exact bytes that were signed ("header.payload").
func (s *JSONWebSignature) SigningInput() []byte {
	return []byte(s.protectedRaw + "." + s.payloadRaw)
}
