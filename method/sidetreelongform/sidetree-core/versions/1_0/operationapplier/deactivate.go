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
	"github.com/trustbloc/sidetree-did-go/method/sidetreelongform/sidetree-core/jws"
)

// applyDeactivateOperation applies a deactivate operation. Shaped like
// recover but with no delta: on success both commitments are cleared so no
// further operation can ever apply to this DID again. A deactivate applied
// before any create has produced a document is a sequencing error.
func (oa *OperationApplier) applyDeactivateOperation(
	anchored *operation.AnchoredOperation, rm *protocol.ResolutionModel) (*protocol.ResolutionModel, error) {
	if rm.Doc == nil {
		return nil, errors.New("deactivate can only be applied to an existing document")
	}

	if rm.RecoveryCommitment == "" {
		return rm, nil
	}

	op, err := oa.parser.ParseDeactivateOperation(anchored.OperationRequest, true)
	if err != nil {
		return rm, nil //nolint:nilerr
	}

	signedData, err := oa.parser.ParseSignedDataForDeactivate(op.SignedData)
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

	return &protocol.ResolutionModel{
		Doc:                            rm.Doc,
		AnchorOrigin:                   rm.AnchorOrigin,
		VersionID:                      anchored.CanonicalReference,
		CreatedTime:                    rm.CreatedTime,
		UpdatedTime:                    anchored.TransactionTime,
		Deactivated:                    true,
		LastOperationTransactionNumber: anchored.TransactionNumber,
	}, nil
}
