/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package operationapplier applies an anchored operation to a DID's
// resolution model, implementing the create/update/recover/deactivate
// state-transition rules of the protocol.
package operationapplier

import (
	"fmt"

	"github.com/trustbloc/sidetree-did-go/method/sidetreelongform/sidetree-core/api/operation"
	"github.com/trustbloc/sidetree-did-go/method/sidetreelongform/sidetree-core/api/protocol"
	"github.com/trustbloc/sidetree-did-go/method/sidetreelongform/sidetree-core/versions/1_0/operationparser"
)

// OperationApplier applies anchored operations for a protocol version.
type OperationApplier struct {
	protocol.Protocol

	parser   *operationparser.Parser
	composer protocol.DocumentComposer
}

// New returns a new OperationApplier for the given protocol version.
func New(p protocol.Protocol, parser *operationparser.Parser, composer protocol.DocumentComposer) *OperationApplier {
	return &OperationApplier{
		Protocol: p,
		parser:   parser,
		composer: composer,
	}
}

// Apply applies the anchored operation to the resolution model rm, returning
// the resulting model. A malformed or forged operation's request body (bad
// signature, wrong reveal value, unparsable delta, and the like) leaves rm
// unchanged rather than erroring, so that one bad operation cannot prevent
// resolution of the remaining, legitimate ones. Applying a create when a
// document already exists, or a recover/deactivate before any document
// exists, is instead a sequencing error and is returned as one, along with
// op.Type values outside the four known kinds.
func (oa *OperationApplier) Apply(op *operation.AnchoredOperation, rm *protocol.ResolutionModel) (*protocol.ResolutionModel, error) { //nolint:lll
	switch op.Type {
	case operation.TypeCreate:
		return oa.applyCreateOperation(op, rm)
	case operation.TypeUpdate:
		return oa.applyUpdateOperation(op, rm)
	case operation.TypeRecover:
		return oa.applyRecoverOperation(op, rm)
	case operation.TypeDeactivate:
		return oa.applyDeactivateOperation(op, rm)
	default:
		return nil, fmt.Errorf("operation type not supported for apply: %s", op.Type)
	}
}
