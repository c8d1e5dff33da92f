/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package models

import (
	"encoding/json"
	"fmt"

	"github.com/trustbloc/sidetree-did-go/method/sidetreelongform/sidetree-core/versions/1_0/model"
)

// ChunkFile is the third file tier: the ordered deltas for every create,
// recover, and update operation anchored in the batch. Deactivate operations
// have no delta and are not represented here.
type ChunkFile struct {
	Deltas []*model.DeltaModel `json:"deltas"`
}

// CreateChunkFile builds a chunk file from ops in canonical order. Entries
// with no delta (deactivate operations) are skipped.
func CreateChunkFile(ops []*model.Operation) *ChunkFile {
	cf := &ChunkFile{}

	for _, op := range ops {
		if op.Delta == nil {
			continue
		}

		cf.Deltas = append(cf.Deltas, op.Delta)
	}

	return cf
}

// ParseChunkFile unmarshals already-decompressed chunk file content.
func ParseChunkFile(content []byte) (*ChunkFile, error) {
	cf := &ChunkFile{}

	if err := json.Unmarshal(content, cf); err != nil {
		return nil, fmt.Errorf("parse chunk file: %w", err)
	}

	return cf, nil
}
