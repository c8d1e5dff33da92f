/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package protocol defines the protocol parameters and the collaborator
// contracts (parser, applier, document composer) that a protocol version
// must provide, plus the DID state ("resolution model") the Resolver
// assembles by replaying an operation's commitment chain.
package protocol

import (
	"github.com/trustbloc/sidetree-did-go/method/sidetreelongform/sidetree-core/api/operation"
	"github.com/trustbloc/sidetree-did-go/method/sidetreelongform/sidetree-core/document"
	"github.com/trustbloc/sidetree-did-go/method/sidetreelongform/sidetree-core/patch"
)

// Protocol defines protocol parameters in effect for a given anchoring time.
type Protocol struct {

	// GenesisTime is the inclusive logical anchoring time (e.g. block number)
	// this protocol version starts to apply.
	GenesisTime uint64

	// MultihashAlgorithms are the accepted multihash codes for all hashing in
	// this protocol version. The first entry is the algorithm used when this
	// version originates a new hash.
	MultihashAlgorithms []uint

	// MaxOperationCount is the maximum operations allowed per batch.
	MaxOperationCount uint

	// MaxOperationSize is the maximum size of an operation request, in bytes.
	MaxOperationSize uint

	// MaxOperationHashLength is the maximum length of an encoded multihash
	// appearing anywhere in an operation.
	MaxOperationHashLength uint

	// MaxDeltaSize is the maximum size of an operation's delta object, in bytes.
	MaxDeltaSize uint

	// MaxCasURILength is the maximum length of a CAS URI referenced from a map/chunk file.
	MaxCasURILength uint

	// CompressionAlgorithm names the compression used for map/chunk files.
	CompressionAlgorithm string

	// MaxChunkFileSize is the maximum size of a chunk file as downloaded from
	// the CAS, in bytes, enforced before the content is decompressed.
	MaxChunkFileSize uint

	// MaxProvisionalIndexFileSize is the maximum size of a provisional (map)
	// index file as downloaded from the CAS, in bytes, enforced before the
	// content is decompressed.
	MaxProvisionalIndexFileSize uint

	// MaxCoreIndexFileSize is the maximum size of a core (anchor) index file
	// as downloaded from the CAS, in bytes, enforced before the content is
	// decompressed.
	MaxCoreIndexFileSize uint

	// SignatureAlgorithms are the JWS "alg" values accepted for signed operation data.
	SignatureAlgorithms []string

	// KeyAlgorithms are the JWK "crv" values accepted for signing/commitment keys.
	KeyAlgorithms []string

	// Patches are the accepted document patch "action" values.
	Patches []string

	// MaxProofFileSize is the maximum decompressed size of a provisional
	// proof/core proof file, in bytes.
	MaxProofFileSize uint

	// MaxMemoryDecompressionFactor caps how large a compressed file's
	// decompressed form may grow relative to its compressed size, guarding
	// against decompression bombs.
	MaxMemoryDecompressionFactor uint

	// NonceSize is the required byte length of a JWK's optional nonce value.
	NonceSize uint

	// MaxOperationTimeDelta bounds how far anchorUntil may exceed anchorFrom
	// in a recover/update operation's signed data.
	MaxOperationTimeDelta uint64
}

// ResolutionModel is the DID state assembled while replaying an operation's
// commitment chain: the current document plus the commitments/metadata
// needed to validate and apply the next operation.
type ResolutionModel struct {

	// Doc is the current DID document.
	Doc document.Document

	// RecoveryCommitment is the commitment value for the next recover/deactivate operation.
	RecoveryCommitment string

	// UpdateCommitment is the commitment value for the next update operation.
	UpdateCommitment string

	// AnchorOrigin is the most recently observed anchor origin value.
	AnchorOrigin interface{}

	// VersionID identifies the last operation applied (its canonical reference).
	VersionID string

	// CreatedTime is the anchoring time of the create operation.
	CreatedTime uint64

	// UpdatedTime is the anchoring time of the most recently applied operation.
	UpdatedTime uint64

	// Deactivated indicates whether the DID has been deactivated.
	Deactivated bool

	// LastOperationTransactionNumber is the transaction number of the most
	// recently applied operation; resolution only adopts a further operation
	// whose transaction number is greater than this.
	LastOperationTransactionNumber uint64
}

// TransformationInfo carries resolution-result metadata (DID, published
// flag, and similar) from a document handler into a document transformer.
type TransformationInfo map[string]interface{}

// OperationApplier applies an anchored operation to a resolution model,
// returning the updated model.
type OperationApplier interface {
	Apply(op *operation.AnchoredOperation, rm *ResolutionModel) (*ResolutionModel, error)
}

// DocumentComposer applies document patches to build an updated DID document.
type DocumentComposer interface {
	ApplyPatches(doc document.Document, patches []patch.Patch) (document.Document, error)
}

// OperationParser extracts the reveal value and the next-operation
// commitment embedded in a raw operation request. The Resolver uses it to
// bucket stored operations by commitment without depending on the full
// versions/1_0/operationparser contract (parsing, validating, and applying
// an operation's request body is the applier's concern, not the Resolver's).
type OperationParser interface {
	GetRevealValue(operationBuffer []byte) (string, error)
	GetCommitment(operationBuffer []byte) (string, error)
}

// Version bundles the collaborators for a single protocol version: its
// parameters and the parser/applier/composer that implement them.
type Version interface {
	Protocol() Protocol
	OperationParser() OperationParser
	OperationApplier() OperationApplier
	DocumentComposer() DocumentComposer
}

// Client resolves the protocol version in effect for a given anchoring
// time, or the version currently in effect for new operations.
type Client interface {
	// Current returns the latest protocol version.
	Current() (Version, error)

	// Get returns the protocol version in effect at transactionTime.
	Get(transactionTime uint64) (Version, error)
}

// ClientProvider resolves a protocol Client for a given DID method namespace.
type ClientProvider interface {
	ForNamespace(namespace string) (Client, error)
}
