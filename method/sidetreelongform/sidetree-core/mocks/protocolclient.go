/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package mocks

import (
	"fmt"

	"github.com/trustbloc/sidetree-did-go/method/sidetreelongform/sidetree-core/api/protocol"
	"github.com/trustbloc/sidetree-did-go/method/sidetreelongform/sidetree-core/versions/1_0/doccomposer"
	"github.com/trustbloc/sidetree-did-go/method/sidetreelongform/sidetree-core/versions/1_0/operationapplier"
	"github.com/trustbloc/sidetree-did-go/method/sidetreelongform/sidetree-core/versions/1_0/operationparser"
)

// Test size limits used across the mock protocol configuration.
const (
	MaxOperationByteSize = 2000
	MaxDeltaByteSize      = 1000
	MaxBatchFileSize      = 20000

	// DefaultNS is the namespace the mock protocol client operates under.
	DefaultNS = "did:sidetree"
)

// NewMockProtocolClient returns a protocol client backed by a single,
// already-wired protocol version (effective from genesis time 0) with
// reasonable test defaults. Callers that need multiple versions append to
// its Versions slice directly.
func NewMockProtocolClient() *MockProtocolClient {
	p := protocol.Protocol{
		GenesisTime:                  0,
		MultihashAlgorithms:          []uint{18},
		MaxOperationCount:            2,
		MaxOperationSize:             MaxOperationByteSize,
		MaxOperationHashLength:       100,
		MaxDeltaSize:                 MaxDeltaByteSize,
		MaxCasURILength:              100,
		CompressionAlgorithm:         "GZIP",
		MaxChunkFileSize:             MaxBatchFileSize,
		MaxProvisionalIndexFileSize:  MaxBatchFileSize,
		MaxCoreIndexFileSize:         MaxBatchFileSize,
		MaxProofFileSize:             MaxBatchFileSize,
		SignatureAlgorithms:          []string{"EdDSA", "ES256", "ES256K"},
		KeyAlgorithms:                []string{"Ed25519", "P-256", "secp256k1"},
		Patches:                      []string{"replace", "add-public-keys", "remove-public-keys", "add-services", "remove-services", "ietf-json-patch"}, //nolint:lll
		MaxMemoryDecompressionFactor: 3,
		NonceSize:                    16,
		MaxOperationTimeDelta:        600,
	}

	v := GetProtocolVersion(p)

	return &MockProtocolClient{
		Protocol:       p,
		Versions:       []*MockVersion{v},
		CurrentVersion: v,
	}
}

// MockProtocolClient is a test double for protocol.Client and
// protocol.ClientProvider. Versions need not be added in genesis-time order:
// Get selects the version with the highest GenesisTime that still qualifies.
// Current returns CurrentVersion as set.
type MockProtocolClient struct {
	// Protocol is the single-version convenience configuration
	// NewMockProtocolClient built; callers that only need one protocol
	// version in effect can read/modify it directly.
	Protocol protocol.Protocol

	Versions       []*MockVersion
	CurrentVersion *MockVersion
	Err            error
}

// Current returns the client's current protocol version.
func (m *MockProtocolClient) Current() (protocol.Version, error) {
	if m.Err != nil {
		return nil, m.Err
	}

	if m.CurrentVersion == nil {
		return nil, errProtocolNotDefined(0)
	}

	return m.CurrentVersion, nil
}

// Get returns the protocol version in effect at transactionTime: the
// version with the highest GenesisTime not exceeding transactionTime.
func (m *MockProtocolClient) Get(transactionTime uint64) (protocol.Version, error) {
	if m.Err != nil {
		return nil, m.Err
	}

	var best *MockVersion

	for _, v := range m.Versions {
		if v.Protocol().GenesisTime > transactionTime {
			continue
		}

		if best == nil || v.Protocol().GenesisTime > best.Protocol().GenesisTime {
			best = v
		}
	}

	if best == nil {
		return nil, errProtocolNotDefined(transactionTime)
	}

	return best, nil
}

// ForNamespace implements protocol.ClientProvider, returning the same client
// regardless of namespace.
func (m *MockProtocolClient) ForNamespace(_ string) (protocol.Client, error) {
	return m, nil
}

func errProtocolNotDefined(transactionTime uint64) error {
	return fmt.Errorf("protocol parameters are not defined for anchoring time %d", transactionTime)
}

// MockVersion is a test double for protocol.Version whose collaborators can
// be swapped out after construction via its XReturns setters, the way a
// counterfeiter-generated fake would be used.
type MockVersion struct {
	protocol protocol.Protocol
	parser   protocol.OperationParser
	applier  protocol.OperationApplier
	composer protocol.DocumentComposer
}

// Protocol returns this version's protocol parameters.
func (v *MockVersion) Protocol() protocol.Protocol { return v.protocol }

// OperationParser returns this version's operation parser.
func (v *MockVersion) OperationParser() protocol.OperationParser { return v.parser }

// OperationApplier returns this version's operation applier.
func (v *MockVersion) OperationApplier() protocol.OperationApplier { return v.applier }

// DocumentComposer returns this version's document composer.
func (v *MockVersion) DocumentComposer() protocol.DocumentComposer { return v.composer }

// OperationParserReturns overrides the value OperationParser returns.
func (v *MockVersion) OperationParserReturns(p protocol.OperationParser) { v.parser = p }

// OperationApplierReturns overrides the value OperationApplier returns.
func (v *MockVersion) OperationApplierReturns(a protocol.OperationApplier) { v.applier = a }

// DocumentComposerReturns overrides the value DocumentComposer returns.
func (v *MockVersion) DocumentComposerReturns(c protocol.DocumentComposer) { v.composer = c }

// GetProtocolVersion wires up the real parser/applier/composer
// implementations for p, the same way a production protocol version factory
// would, so that tests exercise the genuine operation-processing pipeline
// rather than a stubbed-out one. Callers may still override any of the three
// collaborators via the returned value's XReturns setters.
func GetProtocolVersion(p protocol.Protocol) *MockVersion {
	parser := operationparser.New(p)
	composer := doccomposer.New()
	applier := operationapplier.New(p, parser, composer)

	return &MockVersion{protocol: p, parser: parser, applier: applier, composer: composer}
}
