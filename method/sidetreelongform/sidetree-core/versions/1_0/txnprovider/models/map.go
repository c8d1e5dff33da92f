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

// ChunkReference points at the single chunk file holding this batch's deltas.
type ChunkReference struct {
	ChunkFileURI string `json:"chunkFileUri"`
}

// MapFileOperations groups the map file's operation references. Only update
// operations live here; create/recover/deactivate are in the anchor file.
type MapFileOperations struct {
	Update []SignedOperationReference `json:"update,omitempty"`
}

// MapFile is the second file tier: it carries update operation references
// and the location of the chunk file holding every operation's delta.
type MapFile struct {
	Chunks     []ChunkReference  `json:"chunks"`
	Operations MapFileOperations `json:"operations"`
}

// OperationCount returns the number of update operations referenced by the
// map file.
func (mf *MapFile) OperationCount() int {
	return len(mf.Operations.Update)
}

// CreateMapFile assembles a map file from its update operations and the
// chunk file location.
func CreateMapFile(chunkFileURI string, updates []*model.Operation) *MapFile {
	mf := &MapFile{Chunks: []ChunkReference{{ChunkFileURI: chunkFileURI}}}

	for _, op := range updates {
		mf.Operations.Update = append(mf.Operations.Update, SignedOperationReference{
			DidSuffix: op.UniqueSuffix, RevealValue: op.RevealValue, SignedData: op.SignedData,
		})
	}

	return mf
}

// ParseMapFile unmarshals already-decompressed map file content.
func ParseMapFile(content []byte) (*MapFile, error) {
	mf := &MapFile{}

	if err := json.Unmarshal(content, mf); err != nil {
		return nil, fmt.Errorf("parse map file: %w", err)
	}

	return mf, nil
}
