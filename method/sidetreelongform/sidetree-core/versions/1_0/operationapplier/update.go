/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package operationapplier

import (
	"github.com/trustbloc/sidetree-did-go/method/sidetreelongform/sidetree-core/api/operation"
	"github.com/trustbloc/sidetree-did-go/method/sidetreelongform/sidetree-core/api/protocol"
	"github.com/trustbloc/sidetree-did-go/method/sidetreelongform/sidetree-core/commitment"
	"github.com/trustbloc/sidetree-did-go/method/sidetreelongform/sidetree-core/hashing"
	"github.com/trustbloc/sidetree-did-go/method/sidetreelongform/sidetree-core/jws"
)

// applyUpdateOperation applies an update operation. Any failure in the
// reveal/signature/delta-hash chain leaves rm unchanged: an update never
// errors, it simply fails to apply.
func (oa *OperationApplier) applyUpdateOperation(
	anchored *operation.AnchoredOperation, rm *protocol.ResolutionModel) (*protocol.ResolutionModel, error) {
	if rm.Doc == nil || rm.UpdateCommitment == "" {
		return rm, nil
	}

	op, err := oa.parser.ParseUpdateOperation(anchored.OperationRequest, true)
	if err != nil {
		return rm, nil //nolint:nilerr
	}

	signedData, err := oa.parser.ParseSignedDataForUpdate(op.SignedData)
	if err != nil {
		return rm, nil //nolint:nilerr
	}

	revealCommitment, err := commitment.GetCommitmentFromRevealValue(op.RevealValue)
	if err != nil || revealCommitment != rm.UpdateCommitment {
		return rm, nil
	}

	if err := jws.Verify(op.SignedData, signedData.UpdateKey); err != nil {
		return rm, nil //nolint:nilerr
	}

	if err := hashing.IsValidModelMultihash(op.Delta, signedData.DeltaHash); err != nil {
		return rm, nil //nolint:nilerr
	}

	doc, err := oa.composer.ApplyPatches(rm.Doc, op.Delta.Patches)
	if err != nil {
		return rm, nil //nolint:nilerr
	}

	return &protocol.ResolutionModel{
		Doc:                            doc,
		RecoveryCommitment:             rm.RecoveryCommitment,
		UpdateCommitment:               op.Delta.UpdateCommitment,
		AnchorOrigin:                   rm.AnchorOrigin,
		VersionID:                      anchored.CanonicalReference,
		CreatedTime:                    rm.CreatedTime,
		UpdatedTime:                    anchored.TransactionTime,
		LastOperationTransactionNumber: anchored.TransactionNumber,
	}, nil
}
