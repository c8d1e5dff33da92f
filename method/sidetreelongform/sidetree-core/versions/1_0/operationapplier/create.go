/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package operationapplier

import (
	"errors"

	"github.com/trustbloc/sidetree-did-go/method/sidetreelongform/sidetree-core/api/operation"
	"github.com/trustbloc/sidetree-did-go/method/sidetreelongform/sidetree-core/api/protocol"
	"github.com/trustbloc/sidetree-did-go/method/sidetreelongform/sidetree-core/document"
	"github.com/trustbloc/sidetree-did-go/method/sidetreelongform/sidetree-core/hashing"
)

// applyCreateOperation applies a create operation. A create can only ever be
// the first operation for a suffix; applying one against a resolution model
// that already has a document is a sequencing error, not a malformed or
// forged operation, so it is reported rather than silently skipped.
func (oa *OperationApplier) applyCreateOperation(
	anchored *operation.AnchoredOperation, rm *protocol.ResolutionModel) (*protocol.ResolutionModel, error) {
	if rm.Doc != nil {
		return nil, errors.New("create has to be the first operation")
	}

	op, err := oa.parser.ParseCreateOperation(anchored.OperationRequest, true)
	if err != nil {
		return rm, nil //nolint:nilerr
	}

	result := &protocol.ResolutionModel{
		Doc:                            make(document.Document),
		RecoveryCommitment:             op.SuffixData.RecoveryCommitment,
		AnchorOrigin:                   op.AnchorOrigin,
		VersionID:                      anchored.CanonicalReference,
		CreatedTime:                    anchored.TransactionTime,
		UpdatedTime:                    anchored.TransactionTime,
		LastOperationTransactionNumber: anchored.TransactionNumber,
	}

	// The delta must hash to suffixData.deltaHash. A mismatch does not
	// invalidate the create: the DID still exists, just with an empty
	// document and no update commitment (the chain of update operations
	// has nowhere to start from).
	if err := hashing.IsValidModelMultihash(op.Delta, op.SuffixData.DeltaHash); err != nil {
		return result, nil
	}

	doc, err := oa.composer.ApplyPatches(result.Doc, op.Delta.Patches)
	if err != nil {
		return result, nil //nolint:nilerr
	}

	result.Doc = doc
	result.UpdateCommitment = op.Delta.UpdateCommitment

	return result, nil
}
