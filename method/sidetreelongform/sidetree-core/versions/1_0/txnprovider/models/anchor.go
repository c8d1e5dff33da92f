/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package models defines the on-CAS wire formats Sidetree batches are split
// across: the anchor file, the map file, and the chunk file.
package models

import (
	"encoding/json"
	"fmt"

	"github.com/trustbloc/sidetree-did-go/method/sidetreelongform/sidetree-core/versions/1_0/model"
)

// CreateReference is an anchor file entry for a create operation: only the
// suffix data is needed to compute the DID's unique suffix and recovery
// commitment; the delta travels separately in the chunk file.
type CreateReference struct {
	SuffixData *model.SuffixDataModel `json:"suffixData"`
}

// SignedOperationReference is an anchor/map file entry for a recover,
// deactivate, or update operation: the reveal value and signed data are
// enough to verify and apply the operation once its delta (if any) is
// located in the chunk file.
type SignedOperationReference struct {
	DidSuffix   string `json:"didSuffix"`
	RevealValue string `json:"revealValue"`
	SignedData  string `json:"signedData"`
}

// AnchorFileOperations groups the anchor file's operation references by
// type. Update operations are not included: they live in the map file.
type AnchorFileOperations struct {
	Create     []CreateReference           `json:"create,omitempty"`
	Recover    []SignedOperationReference  `json:"recover,omitempty"`
	Deactivate []SignedOperationReference  `json:"deactivate,omitempty"`
}

// AnchorFile is the first of the three file tiers anchored on the ledger: it
// carries create/recover/deactivate operation references plus the map file
// location.
type AnchorFile struct {
	WriterLockID string               `json:"writerLockId,omitempty"`
	MapFileURI   string               `json:"mapFileUri,omitempty"`
	Operations   AnchorFileOperations `json:"operations"`
}

// OperationCount returns the number of operations referenced by the anchor
// file (creates + recovers + deactivates).
func (af *AnchorFile) OperationCount() int {
	return len(af.Operations.Create) + len(af.Operations.Recover) + len(af.Operations.Deactivate)
}

// CreateAnchorFile assembles an anchor file from its categorized operations.
func CreateAnchorFile(mapFileURI, writerLockID string, creates, recovers, deactivates []*model.Operation) *AnchorFile {
	af := &AnchorFile{
		MapFileURI:   mapFileURI,
		WriterLockID: writerLockID,
	}

	for _, op := range creates {
		af.Operations.Create = append(af.Operations.Create, CreateReference{SuffixData: op.SuffixData})
	}

	for _, op := range recovers {
		af.Operations.Recover = append(af.Operations.Recover, SignedOperationReference{
			DidSuffix: op.UniqueSuffix, RevealValue: op.RevealValue, SignedData: op.SignedData,
		})
	}

	for _, op := range deactivates {
		af.Operations.Deactivate = append(af.Operations.Deactivate, SignedOperationReference{
			DidSuffix: op.UniqueSuffix, RevealValue: op.RevealValue, SignedData: op.SignedData,
		})
	}

	return af
}

// ParseAnchorFile unmarshals already-decompressed anchor file content.
func ParseAnchorFile(content []byte) (*AnchorFile, error) {
	af := &AnchorFile{}

	if err := json.Unmarshal(content, af); err != nil {
		return nil, fmt.Errorf("parse anchor file: %w", err)
	}

	return af, nil
}
