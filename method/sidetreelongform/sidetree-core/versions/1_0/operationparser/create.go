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
	"github.com/trustbloc/sidetree-did-go/method/sidetreelongform/sidetree-core/docutil"
	"github.com/trustbloc/sidetree-did-go/method/sidetreelongform/sidetree-core/versions/1_0/model"
)

// ParseCreateOperation will parse a create operation. Whether its delta
// matches the hash committed to in suffixData is NOT checked here: a
// mismatch does not make the operation unparseable, it changes how the
// operation applies (see operationapplier's create rule).
func (p *Parser) ParseCreateOperation(request []byte, batch bool) (*model.Operation, error) {
	schema, err := p.parseCreateRequest(request)
	if err != nil {
		return nil, err
	}

	if !batch {
		if err := p.anchorOriginValidator.Validate(schema.SuffixData.AnchorOrigin); err != nil {
			return nil, err
		}

		if err := p.ValidateDelta(schema.Delta); err != nil {
			return nil, err
		}
	}

	if err := p.validateMultihash(schema.SuffixData.RecoveryCommitment, "recovery commitment"); err != nil {
		return nil, err
	}

	if err := p.validateMultihash(schema.SuffixData.DeltaHash, "delta hash"); err != nil {
		return nil, err
	}

	uniqueSuffix, err := docutil.CalculateUniqueSuffix(schema.SuffixData, p.MultihashAlgorithms[0])
	if err != nil {
		return nil, fmt.Errorf("failed to calculate unique suffix: %s", err.Error())
	}

	return &model.Operation{
		Type:             operation.TypeCreate,
		OperationRequest: request,
		UniqueSuffix:     uniqueSuffix,
		Delta:            schema.Delta,
		SuffixData:       schema.SuffixData,
		AnchorOrigin:     schema.SuffixData.AnchorOrigin,
	}, nil
}

func (p *Parser) parseCreateRequest(payload []byte) (*model.CreateRequest, error) {
	schema := &model.CreateRequest{}

	if err := json.Unmarshal(payload, schema); err != nil {
		return nil, fmt.Errorf("failed to unmarshal create request: %s", err.Error())
	}

	if err := p.validateCreateRequest(schema); err != nil {
		return nil, err
	}

	return schema, nil
}

func (p *Parser) validateCreateRequest(schema *model.CreateRequest) error {
	if schema.SuffixData == nil {
		return errors.New("missing suffix data")
	}

	if schema.Delta == nil {
		return errors.New("missing delta")
	}

	return nil
}
