/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package doccomposer applies document patches to build an updated DID document.
package doccomposer

import (
	"encoding/json"
	"fmt"

	jsonpatch "github.com/evanphx/json-patch"

	"github.com/trustbloc/sidetree-did-go/method/sidetreelongform/sidetree-core/document"
	"github.com/trustbloc/sidetree-did-go/method/sidetreelongform/sidetree-core/patch"
)

// DocComposer applies patches to the document.
type DocComposer struct{}

// New creates a new document composer.
func New() *DocComposer {
	return &DocComposer{}
}

// ApplyPatches applies patches to the document.
func (c *DocComposer) ApplyPatches(doc document.Document, patches []patch.Patch) (document.Document, error) {
	var err error

	for _, p := range patches {
		doc, err = applyPatch(doc, p)
		if err != nil {
			return nil, fmt.Errorf("failed to apply patch: %w", err)
		}
	}

	return doc, nil
}

func applyPatch(doc document.Document, p patch.Patch) (document.Document, error) {
	action, err := p.GetAction()
	if err != nil {
		return nil, err
	}

	switch action {
	case patch.Replace:
		return applyReplace(p)
	case patch.AddPublicKeys:
		return applyAddPublicKeys(doc, p)
	case patch.RemovePublicKeys:
		return applyRemovePublicKeys(doc, p)
	case patch.AddServices:
		return applyAddServices(doc, p)
	case patch.RemoveServices:
		return applyRemoveServices(doc, p)
	case patch.JSONPatch:
		return applyJSONPatch(doc, p)
	default:
		return nil, fmt.Errorf("action '%s' is not supported", action)
	}
}

func applyReplace(p patch.Patch) (document.Document, error) {
	value, err := p.GetValue()
	if err != nil {
		return nil, err
	}

	docMap, ok := value.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("unexpected interface for replace document")
	}

	replaced := make(document.Document)
	replaced[document.PublicKeyProperty] = document.ParsePublicKeys(docMap[patch.PublicKeys])
	replaced[document.ServiceProperty] = document.ParseServices(docMap[patch.Services])

	return replaced, nil
}

func applyAddPublicKeys(doc document.Document, p patch.Patch) (document.Document, error) {
	value, err := p.GetValue()
	if err != nil {
		return nil, err
	}

	toAdd := document.ParsePublicKeys(value)

	existing := doc.PublicKeys()

	byID := make(map[string]document.PublicKey, len(existing))
	for _, pk := range existing {
		byID[pk.ID()] = pk
	}

	for _, pk := range toAdd {
		byID[pk.ID()] = pk
	}

	doc[document.PublicKeyProperty] = mergedPublicKeys(existing, toAdd, byID)

	return doc, nil
}

// mergedPublicKeys preserves existing key order, replacing in place on ID
// collision, and appends newly-introduced keys at the end.
func mergedPublicKeys(existing, toAdd []document.PublicKey, byID map[string]document.PublicKey) []document.PublicKey {
	seen := make(map[string]bool, len(existing))

	merged := make([]document.PublicKey, 0, len(byID))

	for _, pk := range existing {
		merged = append(merged, byID[pk.ID()])
		seen[pk.ID()] = true
	}

	for _, pk := range toAdd {
		if !seen[pk.ID()] {
			merged = append(merged, pk)
			seen[pk.ID()] = true
		}
	}

	return merged
}

func applyRemovePublicKeys(doc document.Document, p patch.Patch) (document.Document, error) {
	value, err := p.GetValue()
	if err != nil {
		return nil, err
	}

	ids := document.StringArray(value)

	remove := make(map[string]bool, len(ids))
	for _, id := range ids {
		remove[id] = true
	}

	var remaining []document.PublicKey

	for _, pk := range doc.PublicKeys() {
		if !remove[pk.ID()] {
			remaining = append(remaining, pk)
		}
	}

	doc[document.PublicKeyProperty] = remaining

	return doc, nil
}

func applyAddServices(doc document.Document, p patch.Patch) (document.Document, error) {
	value, err := p.GetValue()
	if err != nil {
		return nil, err
	}

	toAdd := document.ParseServices(value)

	existing := doc.Services()

	byID := make(map[string]document.Service, len(existing))
	for _, s := range existing {
		byID[s.ID()] = s
	}

	for _, s := range toAdd {
		byID[s.ID()] = s
	}

	seen := make(map[string]bool, len(existing))

	merged := make([]document.Service, 0, len(byID))

	for _, s := range existing {
		merged = append(merged, byID[s.ID()])
		seen[s.ID()] = true
	}

	for _, s := range toAdd {
		if !seen[s.ID()] {
			merged = append(merged, s)
			seen[s.ID()] = true
		}
	}

	doc[document.ServiceProperty] = merged

	return doc, nil
}

func applyRemoveServices(doc document.Document, p patch.Patch) (document.Document, error) {
	value, err := p.GetValue()
	if err != nil {
		return nil, err
	}

	ids := document.StringArray(value)

	remove := make(map[string]bool, len(ids))
	for _, id := range ids {
		remove[id] = true
	}

	var remaining []document.Service

	for _, s := range doc.Services() {
		if !remove[s.ID()] {
			remaining = append(remaining, s)
		}
	}

	doc[document.ServiceProperty] = remaining

	return doc, nil
}

func applyJSONPatch(doc document.Document, p patch.Patch) (document.Document, error) {
	value, err := p.GetValue()
	if err != nil {
		return nil, err
	}

	patchBytes, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}

	jp, err := jsonpatch.DecodePatch(patchBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to decode json patch: %w", err)
	}

	docBytes, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}

	patchedBytes, err := jp.Apply(docBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to apply json patch: %w", err)
	}

	return document.FromBytes(patchedBytes)
}
