/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package operationapplier

import (
	"errors"

	"github.com/trustbloc/sidetree-did-go/method/sidetreelongform/sidetree-core/api/operation"
	"github.com/trustbloc/sidetree-did-go/method/sidetreelongform/sidetree-core/api/protocol"
	"github.com/trustbloc/sidetree-did-go/method/sidetreelongform/sidetree-core/commitment"
	"github.com/trustbloc/sidetree-did-go/method/sidetreelongform/sidetree-core/document"
	"github.com/trustbloc/sidetree-did-go/method/sidetreelongform/sidetree-core/hashing"
	"github.com/trustbloc/sidetree-did-go/method/sidetreelongform/sidetree-core/jws"
)

// applyRecoverOperation applies a recover operation. Shaped like update but
// keyed on the recovery commitment. A recover applied before any create has
// produced a document is a sequencing error and is reported as such.
//
// Reproduced as observed in the upstream implementation: when the reveal and
// signature check out but the delta hash does not match signedData, the new
// recovery commitment from signedData is still installed, no update
// commitment is set, and the document resets to {} rather than the recover
// being rejected outright.
func (oa *OperationApplier) applyRecoverOperation(
	anchored *operation.AnchoredOperation, rm *protocol.ResolutionModel) (*protocol.ResolutionModel, error) {
	if rm.Doc == nil {
		return nil, errors.New("recover can only be applied to an existing document")
	}

	if rm.RecoveryCommitment == "" {
		return rm, nil
	}

	op, err := oa.parser.ParseRecoverOperation(anchored.OperationRequest, true)
	if err != nil {
		return rm, nil //nolint:nilerr
	}

	signedData, err := oa.parser.ParseSignedDataForRecover(op.SignedData)
	if err != nil {
		return rm, nil //nolint:nilerr
	}

	revealCommitment, err := commitment.GetCommitmentFromRevealValue(op.RevealValue)
	if err != nil || revealCommitment != rm.RecoveryCommitment {
		return rm, nil
	}

	if err := jws.Verify(op.SignedData, signedData.RecoveryKey); err != nil {
		return rm, nil //nolint:nilerr
	}

	result := &protocol.ResolutionModel{
		RecoveryCommitment:             signedData.RecoveryCommitment,
		AnchorOrigin:                   signedData.AnchorOrigin,
		VersionID:                      anchored.CanonicalReference,
		CreatedTime:                    rm.CreatedTime,
		UpdatedTime:                    anchored.TransactionTime,
		LastOperationTransactionNumber: anchored.TransactionNumber,
	}

	if err := hashing.IsValidModelMultihash(op.Delta, signedData.DeltaHash); err != nil {
		result.Doc = make(document.Document)

		return result, nil
	}

	doc, err := oa.composer.ApplyPatches(make(document.Document), op.Delta.Patches)
	if err != nil {
		result.Doc = make(document.Document)

		return result, nil //nolint:nilerr
	}

	result.Doc = doc
	result.UpdateCommitment = op.Delta.UpdateCommitment

	return result, nil
}
