/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package patch defines the document patches that a delta may carry, and
// the helpers used to build and inspect them.
package patch

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/trustbloc/sidetree-did-go/method/sidetreelongform/sidetree-core/document"
)

// Action defines the patch action.
type Action string

const (
	// Replace captures "replace" patch action.
	Replace Action = "replace"

	// AddPublicKeys captures "add-public-keys" patch action.
	AddPublicKeys Action = "add-public-keys"

	// RemovePublicKeys captures "remove-public-keys" patch action.
	RemovePublicKeys Action = "remove-public-keys"

	// AddServices captures "add-services" patch action.
	AddServices Action = "add-services"

	// RemoveServices captures "remove-services" patch action.
	RemoveServices Action = "remove-services"

	// JSONPatch captures "ietf-json-patch" patch action.
	JSONPatch Action = "ietf-json-patch"
)

// Keys into a Patch map.
const (
	// ActionKey is the key of the patch's action value.
	ActionKey = "action"

	// DocumentKey is the key of the document value for a "replace" patch.
	DocumentKey = "document"

	// PublicKeys is the key of the public key array for add/remove public key patches.
	PublicKeys = "publicKeys"

	// Services is the key of the service array for add/remove service patches.
	Services = "services"

	// IDsKey is the key of the id array for remove-public-keys/remove-services patches.
	IDsKey = "ids"

	// PatchesKey is the key of the RFC 6902 JSON patch array for an ietf-json-patch patch.
	PatchesKey = "patches"
)

// Patch defines a document patch, keyed by its well-known property names.
// Its shape depends on its action: use Action and GetValue to inspect it.
type Patch map[string]interface{}

// GetAction returns the patch's action.
func (p Patch) GetAction() (Action, error) {
	entry, ok := p[ActionKey]
	if !ok {
		return "", errors.New("patch is missing action property")
	}

	action, ok := entry.(string)
	if !ok {
		return "", errors.New("action property is not a string")
	}

	return Action(action), nil
}

// GetValue returns the value associated with the patch's action:
// the document for "replace", the key/id/service array otherwise.
func (p Patch) GetValue() (interface{}, error) {
	action, err := p.GetAction()
	if err != nil {
		return nil, err
	}

	switch action {
	case Replace:
		return p[DocumentKey], nil
	case AddPublicKeys:
		return p[PublicKeys], nil
	case RemovePublicKeys:
		return p[IDsKey], nil
	case AddServices:
		return p[Services], nil
	case RemoveServices:
		return p[IDsKey], nil
	case JSONPatch:
		return p[PatchesKey], nil
	default:
		return nil, fmt.Errorf("action '%s' is not supported", action)
	}
}

// Bytes returns the canonical JSON encoding of the patch.
func (p Patch) Bytes() ([]byte, error) {
	return json.Marshal(p)
}

// NewReplacePatch creates a new "replace" patch from a reduced DID document
// (an object with at most "publicKeys" and "services" properties).
func NewReplacePatch(doc string) (Patch, error) {
	parsed, err := asGenericDocument(doc)
	if err != nil {
		return nil, err
	}

	p := make(Patch)
	p[ActionKey] = string(Replace)
	p[DocumentKey] = map[string]interface{}(parsed)

	return p, nil
}

// PatchesFromDocument creates the one (implicit "replace") patch that
// represents an opaque DID document supplied at create time.
func PatchesFromDocument(doc string) ([]Patch, error) {
	p, err := NewReplacePatch(doc)
	if err != nil {
		return nil, err
	}

	return []Patch{p}, nil
}

// NewAddPublicKeysPatch creates a new "add-public-keys" patch from the
// JSON array of public keys to add.
func NewAddPublicKeysPatch(publicKeys string) (Patch, error) {
	arr, err := asGenericArray(publicKeys)
	if err != nil {
		return nil, err
	}

	p := make(Patch)
	p[ActionKey] = string(AddPublicKeys)
	p[PublicKeys] = arr

	return p, nil
}

// NewRemovePublicKeysPatch creates a new "remove-public-keys" patch from the
// JSON array of public key ids to remove.
func NewRemovePublicKeysPatch(ids string) (Patch, error) {
	arr, err := asGenericArray(ids)
	if err != nil {
		return nil, err
	}

	p := make(Patch)
	p[ActionKey] = string(RemovePublicKeys)
	p[IDsKey] = arr

	return p, nil
}

// NewAddServicesPatch creates a new "add-services" patch from the JSON
// array of services to add.
func NewAddServicesPatch(services string) (Patch, error) {
	arr, err := asGenericArray(services)
	if err != nil {
		return nil, err
	}

	p := make(Patch)
	p[ActionKey] = string(AddServices)
	p[Services] = arr

	return p, nil
}

// NewRemoveServicesPatch creates a new "remove-services" patch from the
// JSON array of service ids to remove.
func NewRemoveServicesPatch(ids string) (Patch, error) {
	arr, err := asGenericArray(ids)
	if err != nil {
		return nil, err
	}

	p := make(Patch)
	p[ActionKey] = string(RemoveServices)
	p[IDsKey] = arr

	return p, nil
}

// NewJSONPatch creates a new "ietf-json-patch" patch wrapping an RFC 6902
// JSON patch document (a JSON array of operations).
func NewJSONPatch(patches string) (Patch, error) {
	arr, err := asGenericArray(patches)
	if err != nil {
		return nil, err
	}

	p := make(Patch)
	p[ActionKey] = string(JSONPatch)
	p[PatchesKey] = arr

	return p, nil
}

// PatchesFromString parses a JSON array of patch objects (as carried in a
// delta's "patches" property) into a slice of Patch.
func PatchesFromString(patches string) ([]Patch, error) {
	var entries []Patch

	if err := json.Unmarshal([]byte(patches), &entries); err != nil {
		return nil, fmt.Errorf("invalid patches: %w", err)
	}

	return entries, nil
}

func asGenericArray(value string) ([]interface{}, error) {
	var arr []interface{}

	if err := json.Unmarshal([]byte(value), &arr); err != nil {
		return nil, fmt.Errorf("invalid patch value: %w", err)
	}

	return arr, nil
}

func asGenericDocument(value string) (document.Document, error) {
	doc, err := document.FromBytes([]byte(value))
	if err != nil {
		return nil, fmt.Errorf("invalid patch document: %w", err)
	}

	return doc, nil
}
