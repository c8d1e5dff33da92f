/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package patchvalidator

import (
	"fmt"

	"github.com/trustbloc/sidetree-did-go/method/sidetreelongform/sidetree-core/patch"
)

// Validator validates a single document patch.
type Validator interface {
	Validate(p patch.Patch) error
}

//nolint:gochecknoglobals
var validators = map[patch.Action]Validator{
	patch.Replace:          NewReplaceValidator(),
	patch.AddPublicKeys:    NewAddPublicKeysValidator(),
	patch.RemovePublicKeys: NewRemovePublicKeysValidator(),
	patch.AddServices:      NewAddServicesValidator(),
	patch.RemoveServices:   NewRemoveServicesValidator(),
	patch.JSONPatch:        NewJSONPatchValidator(),
}

// Validate validates a document patch according to its action, and confirms
// that action is one of the patch actions allowed by allowedActions.
func Validate(p patch.Patch, allowedActions []string) error {
	action, err := p.GetAction()
	if err != nil {
		return err
	}

	if !actionAllowed(action, allowedActions) {
		return fmt.Errorf("patch action '%s' is not allowed", action)
	}

	validator, ok := validators[action]
	if !ok {
		return fmt.Errorf("patch action '%s' is not supported", action)
	}

	return validator.Validate(p)
}

func actionAllowed(action patch.Action, allowed []string) bool {
	for _, a := range allowed {
		if a == string(action) {
			return true
		}
	}

	return false
}
