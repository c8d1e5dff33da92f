/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package patchvalidator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/trustbloc/sidetree-did-go/method/sidetreelongform/sidetree-core/patch"
)

// disallowedPathPrefixes protects properties that must only change through
// their dedicated patch actions.
var disallowedPathPrefixes = []string{
	"/" + "id",
}

// NewJSONPatchValidator creates new validator.
func NewJSONPatchValidator() *JSONPatchValidator {
	return &JSONPatchValidator{}
}

// JSONPatchValidator implements validator for "ietf-json-patch" patch.
type JSONPatchValidator struct {
}

// Validate validates patch.
func (v *JSONPatchValidator) Validate(p patch.Patch) error {
	value, err := p.GetValue()
	if err != nil {
		return err
	}

	ops, err := getRequiredArray(value)
	if err != nil {
		return fmt.Errorf("invalid json patches value: %s", err.Error())
	}

	for _, entry := range ops {
		op, ok := entry.(map[string]interface{})
		if !ok {
			return errors.New("json patch operation must be an object")
		}

		if err := validateJSONPatchOp(op); err != nil {
			return err
		}
	}

	return nil
}

func validateJSONPatchOp(op map[string]interface{}) error {
	path, ok := op["path"].(string)
	if !ok || path == "" {
		return errors.New("json patch operation is missing a path")
	}

	for _, prefix := range disallowedPathPrefixes {
		if strings.HasPrefix(path, prefix) {
			return fmt.Errorf("json patch path '%s' is not allowed", path)
		}
	}

	if _, ok := op["op"].(string); !ok {
		return errors.New("json patch operation is missing an op")
	}

	return nil
}
