/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package txnprovider

import (
	"errors"
	"fmt"

	log "github.com/hyperledger/aries-framework-go/component/log"

	"github.com/trustbloc/sidetree-did-go/doc/json/canonicalizer"
	"github.com/trustbloc/sidetree-did-go/method/sidetreelongform/sidetree-core/api/operation"
	"github.com/trustbloc/sidetree-did-go/method/sidetreelongform/sidetree-core/api/protocol"
	"github.com/trustbloc/sidetree-did-go/method/sidetreelongform/sidetree-core/api/txn"
	"github.com/trustbloc/sidetree-did-go/method/sidetreelongform/sidetree-core/hashing"
	"github.com/trustbloc/sidetree-did-go/method/sidetreelongform/sidetree-core/versions/1_0/model"
	"github.com/trustbloc/sidetree-did-go/method/sidetreelongform/sidetree-core/versions/1_0/txnprovider/models"
)

var logger = log.New("sidetree-txnprovider")

// CAS retrieves content-addressed file content by its URI. Implementations
// are expected to verify the returned content hashes to uri.
type CAS interface {
	Read(uri string) ([]byte, error)
}

// decompressionProvider decompresses CAS file content before it is parsed.
type decompressionProvider interface {
	Decompress(alg string, data []byte) ([]byte, error)
}

// OperationParser reconstructs a fully-populated operation from the
// canonical request bytes this provider assembles out of anchor/map/chunk
// file fragments. Reusing the real parser (rather than recomputing unique
// suffixes and validating multihashes here) keeps this package's notion of
// an operation identical to the one batch writers produced it with.
type OperationParser interface {
	ParseCreateOperation(request []byte, batch bool) (*model.Operation, error)
	ParseUpdateOperation(request []byte, batch bool) (*model.Operation, error)
	ParseRecoverOperation(request []byte, batch bool) (*model.Operation, error)
	ParseDeactivateOperation(request []byte, batch bool) (*model.Operation, error)
}

// OperationProvider downloads a transaction's anchor/map/chunk file bundle
// from the CAS and assembles the anchored operations it references.
type OperationProvider struct {
	protocol.Protocol
	parser OperationParser
	cas    CAS
	dp     decompressionProvider
}

// NewOperationProvider returns a new OperationProvider.
func NewOperationProvider(p protocol.Protocol, parser OperationParser, cas CAS, dp decompressionProvider) *OperationProvider {
	return &OperationProvider{Protocol: p, parser: parser, cas: cas, dp: dp}
}

// GetTxnOperations returns the anchored operations referenced by sidetreeTxn,
// in canonical create/recover/update/deactivate order.
func (h *OperationProvider) GetTxnOperations(sidetreeTxn *txn.SidetreeTxn) ([]*operation.AnchoredOperation, error) {
	anchorData, err := ParseAnchorData(sidetreeTxn.AnchorString)
	if err != nil {
		return nil, err
	}

	af, err := h.getAnchorFile(anchorData.AnchorFileURI)
	if err != nil {
		return nil, err
	}

	if uint(af.OperationCount()) > h.MaxOperationCount {
		return nil, fmt.Errorf("anchor file[%s]: %w", anchorData.AnchorFileURI, ErrOperationCountExceededLimit)
	}

	mf, err := h.getMapFile(af)
	if err != nil {
		return nil, err
	}

	cf, err := h.getChunkFile(mf)
	if err != nil {
		return nil, err
	}

	ops, err := h.assembleOperations(af, mf, cf, anchorData.AnchorFileURI)
	if err != nil {
		return nil, err
	}

	if len(ops) != anchorData.NumberOfOperations {
		return nil, fmt.Errorf("anchor string[%s]: number of operations does not match. expected %d, got %d",
			sidetreeTxn.AnchorString, anchorData.NumberOfOperations, len(ops))
	}

	return ops, nil
}

func (h *OperationProvider) getAnchorFile(uri string) (*models.AnchorFile, error) {
	content, err := h.readAndDecompress(uri, h.MaxCoreIndexFileSize)
	if err != nil {
		return nil, fmt.Errorf("retrieve anchor file[%s]: %w", uri, err)
	}

	af, err := models.ParseAnchorFile(content)
	if err != nil {
		return nil, fmt.Errorf("anchor file[%s]: %w", uri, err)
	}

	return af, nil
}

// getMapFile downloads and parses the map file referenced by af. A missing
// reference is not an error: deactivate-only batches have no map file. A
// malformed or unreachable-but-present map file is treated opportunistically
// per the retry policy: CAS failures propagate so the caller can retry the
// transaction later, everything else degrades to anchor-file-only operations
// rather than failing transaction processing outright.
func (h *OperationProvider) getMapFile(af *models.AnchorFile) (*models.MapFile, error) {
	if af.MapFileURI == "" {
		return nil, nil
	}

	content, err := h.readAndDecompress(af.MapFileURI, h.MaxProvisionalIndexFileSize)
	if err != nil {
		if errors.Is(err, ErrCASNotReachable) {
			return nil, fmt.Errorf("retrieve map file[%s]: %w", af.MapFileURI, err)
		}

		logger.Warnf("map file[%s] not available, continuing with anchor file operations only: %s", af.MapFileURI, err)

		return nil, nil
	}

	mf, err := models.ParseMapFile(content)
	if err != nil {
		logger.Warnf("map file[%s] invalid, continuing with anchor file operations only: %s", af.MapFileURI, err)

		return nil, nil
	}

	if uint(af.OperationCount()+mf.OperationCount()) > h.MaxOperationCount {
		logger.Warnf("map file[%s] invalid, continuing with anchor file operations only: %s",
			af.MapFileURI, ErrOperationCountExceededLimit)

		return nil, nil
	}

	if err := h.validateNoDuplicateSuffixes(af, mf); err != nil {
		logger.Warnf("map file[%s] invalid, continuing with anchor file operations only: %s", af.MapFileURI, err)

		return nil, nil
	}

	return mf, nil
}

// validateNoDuplicateSuffixes rejects a map file that references a did
// suffix the anchor file already references: a suffix may only have one
// operation anchored against it per transaction.
func (h *OperationProvider) validateNoDuplicateSuffixes(af *models.AnchorFile, mf *models.MapFile) error {
	anchorSuffixes := make(map[string]bool, af.OperationCount())

	for _, ref := range af.Operations.Create {
		suffix, err := hashing.CalculateModelMultihash(ref.SuffixData, h.MultihashAlgorithms[0])
		if err != nil {
			return fmt.Errorf("calculate unique suffix for create reference: %w", err)
		}

		anchorSuffixes[suffix] = true
	}

	for _, ref := range af.Operations.Recover {
		anchorSuffixes[ref.DidSuffix] = true
	}

	for _, ref := range af.Operations.Deactivate {
		anchorSuffixes[ref.DidSuffix] = true
	}

	for _, ref := range mf.Operations.Update {
		if anchorSuffixes[ref.DidSuffix] {
			return fmt.Errorf("did suffix[%s]: %w", ref.DidSuffix, ErrDuplicateOperationForDid)
		}
	}

	return nil
}

// getChunkFile downloads and parses the chunk file referenced by mf. A nil
// mf or a map file with no chunk reference yields no chunk file. As with the
// map file, only CAS unavailability is fatal; a missing or invalid chunk
// file means every create/recover/update operation in this batch applies
// with an empty delta.
func (h *OperationProvider) getChunkFile(mf *models.MapFile) (*models.ChunkFile, error) {
	if mf == nil || len(mf.Chunks) == 0 {
		return nil, nil
	}

	uri := mf.Chunks[0].ChunkFileURI

	content, err := h.readAndDecompress(uri, h.MaxChunkFileSize)
	if err != nil {
		if errors.Is(err, ErrCASNotReachable) {
			return nil, fmt.Errorf("retrieve chunk file[%s]: %w", uri, err)
		}

		logger.Warnf("chunk file[%s] not available, operations will apply with empty deltas: %s", uri, err)

		return nil, nil
	}

	cf, err := models.ParseChunkFile(content)
	if err != nil {
		logger.Warnf("chunk file[%s] invalid, operations will apply with empty deltas: %s", uri, err)

		return nil, nil
	}

	return cf, nil
}

// readAndDecompress reads uri from the CAS and decompresses it, rejecting
// content larger than maxSize before it is ever handed to the decompressor:
// an oversize response is refused on its wire size, not its (potentially
// far larger, decompression-bomb) decompressed size.
func (h *OperationProvider) readAndDecompress(uri string, maxSize uint) ([]byte, error) {
	content, err := h.cas.Read(uri)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrCASNotReachable.Error(), err)
	}

	if uint(len(content)) > maxSize {
		return nil, fmt.Errorf("content[%s] size %d exceeded maximum size %d", uri, len(content), maxSize)
	}

	return h.dp.Decompress(h.CompressionAlgorithm, content)
}

// assembleOperations reconstructs canonical operation request bytes for
// every reference in af/mf, in create/recover/update/deactivate order, and
// parses each through the real parser so unique suffixes and operation IDs
// are computed exactly the way a batch writer would have computed them.
func (h *OperationProvider) assembleOperations(af *models.AnchorFile, mf *models.MapFile, cf *models.ChunkFile, canonicalRef string) ([]*operation.AnchoredOperation, error) {
	deltas := chunkFileDeltas(cf)
	next := 0

	var result []*operation.AnchoredOperation

	for _, ref := range af.Operations.Create {
		request, err := canonicalizer.MarshalCanonical(&model.CreateRequest{
			Operation:  operation.TypeCreate,
			SuffixData: ref.SuffixData,
			Delta:      nextDelta(deltas, &next),
		})
		if err != nil {
			return nil, fmt.Errorf("marshal create request: %w", err)
		}

		op, err := h.parser.ParseCreateOperation(request, true)
		if err != nil {
			return nil, fmt.Errorf("assemble create operation: %w", err)
		}

		anchored, err := toAnchoredOperation(op, canonicalRef)
		if err != nil {
			return nil, fmt.Errorf("assemble create operation: %w", err)
		}

		result = append(result, anchored)
	}

	for _, ref := range af.Operations.Recover {
		request, err := canonicalizer.MarshalCanonical(&model.RecoverRequest{
			Operation:   operation.TypeRecover,
			DidSuffix:   ref.DidSuffix,
			RevealValue: ref.RevealValue,
			SignedData:  ref.SignedData,
			Delta:       nextDelta(deltas, &next),
		})
		if err != nil {
			return nil, fmt.Errorf("marshal recover request: %w", err)
		}

		op, err := h.parser.ParseRecoverOperation(request, true)
		if err != nil {
			return nil, fmt.Errorf("assemble recover operation: %w", err)
		}

		anchored, err := toAnchoredOperation(op, canonicalRef)
		if err != nil {
			return nil, fmt.Errorf("assemble recover operation: %w", err)
		}

		result = append(result, anchored)
	}

	if mf != nil {
		for _, ref := range mf.Operations.Update {
			request, err := canonicalizer.MarshalCanonical(&model.UpdateRequest{
				Operation:   operation.TypeUpdate,
				DidSuffix:   ref.DidSuffix,
				RevealValue: ref.RevealValue,
				SignedData:  ref.SignedData,
				Delta:       nextDelta(deltas, &next),
			})
			if err != nil {
				return nil, fmt.Errorf("marshal update request: %w", err)
			}

			op, err := h.parser.ParseUpdateOperation(request, true)
			if err != nil {
				return nil, fmt.Errorf("assemble update operation: %w", err)
			}

			anchored, err := toAnchoredOperation(op, canonicalRef)
			if err != nil {
				return nil, fmt.Errorf("assemble update operation: %w", err)
			}

			result = append(result, anchored)
		}
	}

	for _, ref := range af.Operations.Deactivate {
		request, err := canonicalizer.MarshalCanonical(&model.DeactivateRequest{
			Operation:   operation.TypeDeactivate,
			DidSuffix:   ref.DidSuffix,
			RevealValue: ref.RevealValue,
			SignedData:  ref.SignedData,
		})
		if err != nil {
			return nil, fmt.Errorf("marshal deactivate request: %w", err)
		}

		op, err := h.parser.ParseDeactivateOperation(request, true)
		if err != nil {
			return nil, fmt.Errorf("assemble deactivate operation: %w", err)
		}

		anchored, err := toAnchoredOperation(op, canonicalRef)
		if err != nil {
			return nil, fmt.Errorf("assemble deactivate operation: %w", err)
		}

		result = append(result, anchored)
	}

	for i, op := range result {
		op.OperationIndex = uint(i)
	}

	return result, nil
}

// chunkFileDeltas returns cf's deltas, or nil if there is no chunk file.
func chunkFileDeltas(cf *models.ChunkFile) []*model.DeltaModel {
	if cf == nil {
		return nil
	}

	return cf.Deltas
}

// nextDelta returns the next delta in deltas and advances next, or an empty,
// non-nil delta if deltas is exhausted or absent: a missing/invalid chunk
// file degrades creates/recovers/updates to an empty document rather than
// failing the whole batch.
func nextDelta(deltas []*model.DeltaModel, next *int) *model.DeltaModel {
	if *next < len(deltas) {
		d := deltas[*next]
		*next++

		return d
	}

	*next++

	return &model.DeltaModel{}
}

func toAnchoredOperation(op *model.Operation, canonicalRef string) (*operation.AnchoredOperation, error) {
	anchored, err := model.GetAnchoredOperation(op)
	if err != nil {
		return nil, err
	}

	anchored.CanonicalReference = canonicalRef

	return anchored, nil
}
