/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package operationparser

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/trustbloc/sidetree-did-go/method/sidetreelongform/sidetree-core/api/operation"
	"github.com/trustbloc/sidetree-did-go/method/sidetreelongform/sidetree-core/versions/1_0/model"
)

// ParseUpdateOperation will parse an update operation.
func (p *Parser) ParseUpdateOperation(request []byte, batch bool) (*model.Operation, error) {
	schema, err := p.parseUpdateRequest(request)
	if err != nil {
		return nil, err
	}

	signedData, err := p.ParseSignedDataForUpdate(schema.SignedData)
	if err != nil {
		return nil, err
	}

	if !batch {
		until := p.getAnchorUntil(signedData.AnchorFrom, signedData.AnchorUntil)

		if err := p.anchorTimeValidator.Validate(signedData.AnchorFrom, until); err != nil {
			return nil, err
		}

		if err := p.ValidateDelta(schema.Delta); err != nil {
			return nil, err
		}

		if schema.Delta.UpdateCommitment == "" {
			return nil, errors.New("missing next update commitment")
		}

		if err := p.validateCommitment(signedData.UpdateKey, schema.Delta.UpdateCommitment); err != nil {
			return nil, err
		}
	}

	return &model.Operation{
		Type:             operation.TypeUpdate,
		OperationRequest: request,
		UniqueSuffix:     schema.DidSuffix,
		Delta:            schema.Delta,
		SignedData:       schema.SignedData,
		RevealValue:      schema.RevealValue,
	}, nil
}

func (p *Parser) parseUpdateRequest(payload []byte) (*model.UpdateRequest, error) {
	schema := &model.UpdateRequest{}

	if err := json.Unmarshal(payload, schema); err != nil {
		return nil, fmt.Errorf("failed to unmarshal update request: %s", err.Error())
	}

	if err := p.validateUpdateRequest(schema); err != nil {
		return nil, err
	}

	return schema, nil
}

// ParseSignedDataForUpdate will parse and validate signed data for update.
func (p *Parser) ParseSignedDataForUpdate(compactJWS string) (*model.UpdateSignedDataModel, error) {
	signedData, err := p.parseSignedData(compactJWS)
	if err != nil {
		return nil, err
	}

	schema := &model.UpdateSignedDataModel{}

	if err := json.Unmarshal(signedData.Payload, schema); err != nil {
		return nil, fmt.Errorf("failed to unmarshal signed data model for update: %s", err.Error())
	}

	if err := p.validateSigningKey(schema.UpdateKey); err != nil {
		return nil, fmt.Errorf("validate signed data for update: %s", err.Error())
	}

	if err := p.validateMultihash(schema.DeltaHash, "delta hash"); err != nil {
		return nil, fmt.Errorf("validate signed data for update: %s", err.Error())
	}

	return schema, nil
}

func (p *Parser) validateUpdateRequest(req *model.UpdateRequest) error {
	if req.DidSuffix == "" {
		return errors.New("missing did suffix")
	}

	if req.SignedData == "" {
		return errors.New("missing signed data")
	}

	return p.validateMultihash(req.RevealValue, "reveal value")
}
