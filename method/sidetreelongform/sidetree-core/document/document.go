/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package document models the JSON DID document (and related JSON-LD
// objects: public keys, services, metadata) that a resolution produces.
package document

import (
	"encoding/json"

	"github.com/trustbloc/sidetree-did-go/method/sidetreelongform/sidetree-core/jws"
)

// Well-known property names shared across the document model.
const (
	IDProperty                 = "id"
	TypeProperty                = "type"
	ContextProperty              = "@context"
	PurposesProperty             = "purposes"
	PublicKeyJwkProperty         = "publicKeyJwk"
	PublicKeyBase58Property      = "publicKeyBase58"
	ServiceProperty              = "service"
	ServiceEndpointProperty      = "serviceEndpoint"
	PublicKeyProperty            = "verificationMethod"
	CanonicalIDProperty          = "canonicalId"
	EquivalentIDProperty         = "equivalentId"
	AnchorOriginProperty         = "anchorOrigin"
	CreatedProperty              = "created"
	UpdatedProperty              = "updated"
	DeactivatedProperty          = "deactivated"
	MethodProperty               = "method"
	PublishedProperty            = "published"
	PublishedOperationsProperty  = "publishedOperations"
	UnpublishedOperationsProperty = "unpublishedOperations"
	RecoveryCommitmentProperty  = "recoveryCommitment"
	UpdateCommitmentProperty    = "updateCommitment"
)

// KeyPurpose defines a verification relationship a public key may be used for.
type KeyPurpose = string

// Allowed key purposes.
const (
	KeyPurposeAuthentication       KeyPurpose = "authentication"
	KeyPurposeAssertionMethod      KeyPurpose = "assertionMethod"
	KeyPurposeKeyAgreement         KeyPurpose = "keyAgreement"
	KeyPurposeCapabilityDelegation KeyPurpose = "capabilityDelegation"
	KeyPurposeCapabilityInvocation KeyPurpose = "capabilityInvocation"
)

// JWK is the document-level alias for the protocol's JSON Web Key type.
type JWK = jws.JWK

// Document is a DID document.
type Document map[string]interface{}

// FromBytes creates a Document from its JSON representation.
func FromBytes(data []byte) (Document, error) {
	var doc Document

	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	return doc, nil
}

// ID returns the document's id.
func (d Document) ID() string {
	return stringEntry(d[IDProperty])
}

// PublicKeys returns this document's verification methods.
func (d Document) PublicKeys() []PublicKey {
	return ParsePublicKeys(d[PublicKeyProperty])
}

// Services returns this document's service endpoints.
func (d Document) Services() []Service {
	return ParseServices(d[ServiceProperty])
}

// JSONLdObject returns the document as a generic map, for consumers that
// work with the raw JSON-LD representation (metadata assembly, etc.).
func (d Document) JSONLdObject() map[string]interface{} {
	return d
}

// Bytes returns the document's canonical JSON encoding.
func (d Document) Bytes() ([]byte, error) {
	return json.Marshal(d)
}

// DidDocumentFromJSONLDObject builds a Document view over a generic
// JSON-LD object (e.g. one already decoded by a caller).
func DidDocumentFromJSONLDObject(obj map[string]interface{}) Document {
	return Document(obj)
}

// PublicKey is a DID document verification method.
type PublicKey map[string]interface{}

// ID returns the key's id.
func (pk PublicKey) ID() string {
	return stringEntry(pk[IDProperty])
}

// Type returns the key's verification method type.
func (pk PublicKey) Type() string {
	return stringEntry(pk[TypeProperty])
}

// Purpose returns the key's verification relationships.
func (pk PublicKey) Purpose() []string {
	return StringArray(pk[PurposesProperty])
}

// PublicKeyJwk returns the key's JWK representation, if present.
func (pk PublicKey) PublicKeyJwk() *JWK {
	entry, ok := pk[PublicKeyJwkProperty]
	if !ok {
		return nil
	}

	if jwk, ok := entry.(*JWK); ok {
		return jwk
	}

	raw, err := json.Marshal(entry)
	if err != nil {
		return nil
	}

	var jwk JWK

	if err := json.Unmarshal(raw, &jwk); err != nil {
		return nil
	}

	return &jwk
}

// PublicKeyBase58 returns the key's base58-encoded key material, if present.
func (pk PublicKey) PublicKeyBase58() string {
	return stringEntry(pk[PublicKeyBase58Property])
}

// ParsePublicKeys converts a generic JSON array (or an already typed
// []PublicKey) into a slice of PublicKey.
func ParsePublicKeys(entry interface{}) []PublicKey {
	if keys, ok := entry.([]PublicKey); ok {
		return keys
	}

	arr, ok := entry.([]interface{})
	if !ok {
		return nil
	}

	var keys []PublicKey

	for _, item := range arr {
		if m, ok := item.(map[string]interface{}); ok {
			keys = append(keys, PublicKey(m))
		}
	}

	return keys
}

// Service is a DID document service endpoint entry.
type Service map[string]interface{}

// ID returns the service's id.
func (s Service) ID() string {
	return stringEntry(s[IDProperty])
}

// Type returns the service's type.
func (s Service) Type() string {
	return stringEntry(s[TypeProperty])
}

// ServiceEndpoint returns the service's endpoint, in whatever shape it was supplied.
func (s Service) ServiceEndpoint() interface{} {
	return s[ServiceEndpointProperty]
}

// ParseServices converts a generic JSON array (or an already typed
// []Service) into a slice of Service.
func ParseServices(entry interface{}) []Service {
	if services, ok := entry.([]Service); ok {
		return services
	}

	arr, ok := entry.([]interface{})
	if !ok {
		return nil
	}

	var services []Service

	for _, item := range arr {
		if m, ok := item.(map[string]interface{}); ok {
			services = append(services, Service(m))
		}
	}

	return services
}

// StringArray converts a generic JSON array of strings into []string,
// skipping (rather than erroring on) any non-string entries.
func StringArray(entry interface{}) []string {
	arr, ok := entry.([]interface{})
	if !ok {
		return nil
	}

	var values []string

	for _, item := range arr {
		if s, ok := item.(string); ok {
			values = append(values, s)
		}
	}

	return values
}

// Metadata is a generic map of resolution or document metadata.
type Metadata map[string]interface{}

// ResolutionResult is the output of resolving a DID: the document plus its metadata.
type ResolutionResult struct {
	Context          interface{} `json:"@context,omitempty"`
	Document         Document    `json:"didDocument"`
	DocumentMetadata Metadata    `json:"didDocumentMetadata,omitempty"`
}

func stringEntry(entry interface{}) string {
	s, ok := entry.(string)
	if !ok {
		return ""
	}

	return s
}
