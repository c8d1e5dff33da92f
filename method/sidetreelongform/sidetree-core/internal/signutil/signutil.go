/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package signutil builds compact JWS signatures over canonicalized request
// models, using a caller-supplied signer.
package signutil

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/trustbloc/sidetree-did-go/doc/json/canonicalizer"
	"github.com/trustbloc/sidetree-did-go/method/sidetreelongform/sidetree-core/jws"
)

// Signer signs data and reports the JWS protected headers to use.
type Signer interface {
	Sign(data []byte) ([]byte, error)
	Headers() jws.Headers
}

// SignModel canonicalizes model, builds the JWS signing input from signer's
// protected headers and the canonicalized payload, signs it, and returns the
// resulting compact JWS.
func SignModel(model interface{}, signer Signer) (string, error) {
	if signer == nil {
		return "", fmt.Errorf("signutil: missing signer")
	}

	headers := signer.Headers()
	if headers == nil {
		return "", fmt.Errorf("signutil: missing protected headers")
	}

	headerBytes, err := json.Marshal(headers)
	if err != nil {
		return "", fmt.Errorf("signutil: failed to marshal protected headers: %w", err)
	}

	payload, err := canonicalizer.MarshalCanonical(model)
	if err != nil {
		return "", fmt.Errorf("signutil: failed to canonicalize payload: %w", err)
	}

	protected := base64.RawURLEncoding.EncodeToString(headerBytes)
	encodedPayload := base64.RawURLEncoding.EncodeToString(payload)

	signature, err := signer.Sign([]byte(protected + "." + encodedPayload))
	if err != nil {
		return "", fmt.Errorf("signutil: signing failed: %w", err)
	}

	return protected + "." + encodedPayload + "." + base64.RawURLEncoding.EncodeToString(signature), nil
}
