/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package operationparser

import (
	"encoding/json"
	"fmt"

	"github.com/trustbloc/sidetree-did-go/method/sidetreelongform/sidetree-core/api/operation"
	"github.com/trustbloc/sidetree-did-go/method/sidetreelongform/sidetree-core/versions/1_0/model"
)

// sha2_256 is the multihash code for SHA2-256, the algorithm test vectors
// in this package hash reveal values with.
const sha2_256 = 18

// GetCommitment returns the commitment for the next operation in the chain
// that operationBuffer starts (the commitment a subsequent recover/update/
// deactivate operation must reveal against).
func (p *Parser) GetCommitment(operationBuffer []byte) (string, error) {
	op, err := p.parseOperation(operationBuffer, true)
	if err != nil {
		return "", fmt.Errorf("get commitment - parse operation error: %s", err.Error())
	}

	switch op.Type { //nolint:exhaustive
	case operation.TypeRecover:
		signedData, err := p.ParseSignedDataForRecover(op.SignedData)
		if err != nil {
			return "", err
		}

		return signedData.RecoveryCommitment, nil
	case operation.TypeDeactivate:
		return "", nil
	case operation.TypeUpdate:
		return op.Delta.UpdateCommitment, nil
	default:
		return "", fmt.Errorf("operation type '%s' not supported for getting next operation commitment", op.Type)
	}
}

// GetRevealValue returns the reveal value operationBuffer's operation
// exposes. A create carries no reveal value and yields an error.
func (p *Parser) GetRevealValue(operationBuffer []byte) (string, error) {
	op, err := p.parseOperation(operationBuffer, true)
	if err != nil {
		return "", fmt.Errorf("get reveal value - parse operation error: %s", err.Error())
	}

	switch op.Type { //nolint:exhaustive
	case operation.TypeRecover, operation.TypeDeactivate, operation.TypeUpdate:
		return op.RevealValue, nil
	default:
		return "", fmt.Errorf("operation type '%s' not supported for getting operation reveal value", op.Type)
	}
}

// Parse parses operationBuffer according to its "type" property.
func (p *Parser) Parse(operationBuffer []byte) (*model.Operation, error) {
	return p.parseOperation(operationBuffer, false)
}

func (p *Parser) parseOperation(operationBuffer []byte, batch bool) (*model.Operation, error) {
	opType, err := parseOperationType(operationBuffer)
	if err != nil {
		return nil, err
	}

	switch opType {
	case operation.TypeCreate:
		return p.ParseCreateOperation(operationBuffer, batch)
	case operation.TypeUpdate:
		return p.ParseUpdateOperation(operationBuffer, batch)
	case operation.TypeRecover:
		return p.ParseRecoverOperation(operationBuffer, batch)
	case operation.TypeDeactivate:
		return p.ParseDeactivateOperation(operationBuffer, batch)
	default:
		return nil, fmt.Errorf("operation type '%s' not supported", opType)
	}
}

func parseOperationType(operationBuffer []byte) (operation.Type, error) {
	schema := &struct {
		Operation operation.Type `json:"type"`
	}{}

	if err := json.Unmarshal(operationBuffer, schema); err != nil {
		return "", fmt.Errorf("failed to unmarshal operation buffer for type: %s", err.Error())
	}

	return schema.Operation, nil
}
