/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package patchvalidator

import (
	"errors"
	"fmt"

	"github.com/trustbloc/sidetree-did-go/method/sidetreelongform/sidetree-core/document"
	"github.com/trustbloc/sidetree-did-go/method/sidetreelongform/sidetree-core/patch"
)

var allowedDocumentKeys = existenceMap{
	patch.PublicKeys: patch.PublicKeys,
	patch.Services:   patch.Services,
}

// NewReplaceValidator creates new validator.
func NewReplaceValidator() *ReplaceValidator {
	return &ReplaceValidator{}
}

// ReplaceValidator implements validator for "replace" patch.
type ReplaceValidator struct {
}

// Validate validates patch.
func (v *ReplaceValidator) Validate(p patch.Patch) error {
	value, err := p.GetValue()
	if err != nil {
		return err
	}

	doc, ok := value.(map[string]interface{})
	if !ok {
		return errors.New("invalid replace document value")
	}

	for key := range doc {
		if _, ok := allowedDocumentKeys[key]; !ok {
			return fmt.Errorf("key '%s' is not allowed in replace document", key)
		}
	}

	if err := validatePublicKeys(document.ParsePublicKeys(doc[patch.PublicKeys])); err != nil {
		return err
	}

	return validateServices(document.ParseServices(doc[patch.Services]))
}
