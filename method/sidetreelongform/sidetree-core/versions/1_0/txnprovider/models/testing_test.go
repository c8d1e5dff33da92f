/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package models

import (
	"fmt"

	"github.com/trustbloc/sidetree-did-go/method/sidetreelongform/sidetree-core/api/operation"
	"github.com/trustbloc/sidetree-did-go/method/sidetreelongform/sidetree-core/versions/1_0/model"
)

// getTestOperations returns operations in canonical order (create, recover,
// update, deactivate) with deltas populated for every type but deactivate.
func getTestOperations(createNum, updateNum, deactivateNum, recoverNum int) []*model.Operation {
	var ops []*model.Operation

	for i := 0; i < createNum; i++ {
		ops = append(ops, &model.Operation{
			Type:         operation.TypeCreate,
			UniqueSuffix: fmt.Sprintf("create-%d", i),
			Delta:        &model.DeltaModel{UpdateCommitment: fmt.Sprintf("create-update-commitment-%d", i)},
			SuffixData:   &model.SuffixDataModel{RecoveryCommitment: fmt.Sprintf("create-recovery-commitment-%d", i)},
		})
	}

	for i := 0; i < recoverNum; i++ {
		ops = append(ops, &model.Operation{
			Type:         operation.TypeRecover,
			UniqueSuffix: fmt.Sprintf("recover-%d", i),
			Delta:        &model.DeltaModel{UpdateCommitment: fmt.Sprintf("recover-update-commitment-%d", i)},
			SignedData:   fmt.Sprintf("recover-signed-data-%d", i),
			RevealValue:  fmt.Sprintf("recover-reveal-%d", i),
		})
	}

	for i := 0; i < updateNum; i++ {
		ops = append(ops, &model.Operation{
			Type:         operation.TypeUpdate,
			UniqueSuffix: fmt.Sprintf("update-%d", i),
			Delta:        &model.DeltaModel{UpdateCommitment: fmt.Sprintf("update-update-commitment-%d", i)},
			SignedData:   fmt.Sprintf("update-signed-data-%d", i),
			RevealValue:  fmt.Sprintf("update-reveal-%d", i),
		})
	}

	for i := 0; i < deactivateNum; i++ {
		ops = append(ops, &model.Operation{
			Type:         operation.TypeDeactivate,
			UniqueSuffix: fmt.Sprintf("deactivate-%d", i),
			SignedData:   fmt.Sprintf("deactivate-signed-data-%d", i),
			RevealValue:  fmt.Sprintf("deactivate-reveal-%d", i),
		})
	}

	return ops
}

// filterByType returns the subset of ops matching opType, in order.
func filterByType(ops []*model.Operation, opType operation.Type) []*model.Operation {
	var filtered []*model.Operation

	for _, op := range ops {
		if op.Type == opType {
			filtered = append(filtered, op)
		}
	}

	return filtered
}
