/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package operationparser parses and validates the wire format of the four
// Sidetree operation kinds (create, update, recover, deactivate) against a
// protocol version's parameters, producing the operation model the
// processor and applier work with.
package operationparser

import (
	"errors"
	"fmt"

	"github.com/trustbloc/sidetree-did-go/method/sidetreelongform/sidetree-core/api/protocol"
	"github.com/trustbloc/sidetree-did-go/method/sidetreelongform/sidetree-core/hashing"
	"github.com/trustbloc/sidetree-did-go/method/sidetreelongform/sidetree-core/versions/1_0/model"
	"github.com/trustbloc/sidetree-did-go/method/sidetreelongform/sidetree-core/versions/1_0/operationparser/patchvalidator"
)

// AnchorOriginValidator validates an operation's anchor origin value against
// whatever origin policy the deploying namespace enforces (e.g. an
// allow-list of known ledgers). A permissive default is used when none is
// configured.
type AnchorOriginValidator interface {
	Validate(anchorOrigin interface{}) error
}

// AnchorTimeValidator validates an operation's anchorFrom/anchorUntil window.
// A permissive default is used when none is configured.
type AnchorTimeValidator interface {
	Validate(from, until int64) error
}

// Parser parses and validates Sidetree operations for a single protocol version.
type Parser struct {
	protocol.Protocol

	anchorOriginValidator AnchorOriginValidator
	anchorTimeValidator   AnchorTimeValidator
}

// Option configures a Parser.
type Option func(opts *Parser)

// WithAnchorOriginValidator sets the anchor origin validator.
func WithAnchorOriginValidator(v AnchorOriginValidator) Option {
	return func(opts *Parser) {
		opts.anchorOriginValidator = v
	}
}

// WithAnchorTimeValidator sets the anchor time validator.
func WithAnchorTimeValidator(v AnchorTimeValidator) Option {
	return func(opts *Parser) {
		opts.anchorTimeValidator = v
	}
}

// New creates a new Parser for the given protocol version.
func New(p protocol.Protocol, opts ...Option) *Parser {
	parser := &Parser{
		Protocol:              p,
		anchorOriginValidator: &permissiveAnchorOriginValidator{},
		anchorTimeValidator:   &permissiveAnchorTimeValidator{},
	}

	for _, opt := range opts {
		opt(parser)
	}

	return parser
}

// ValidateDelta validates a delta against this version's size, hash-length
// and document-patch policy.
func (p *Parser) ValidateDelta(delta *model.DeltaModel) error {
	if delta == nil {
		return errors.New("missing delta")
	}

	if err := p.validateMultihash(delta.UpdateCommitment, "update commitment"); err != nil {
		return err
	}

	if len(delta.Patches) == 0 {
		return errors.New("missing patches")
	}

	for _, patchEntry := range delta.Patches {
		if err := patchvalidator.Validate(patchEntry, p.Patches); err != nil {
			return fmt.Errorf("delta patch validation failed: %w", err)
		}
	}

	return nil
}

func (p *Parser) validateMultihash(value, name string) error {
	if value == "" {
		return fmt.Errorf("missing %s", name)
	}

	if len(value) > int(p.MaxOperationHashLength) {
		return fmt.Errorf("%s exceeds maximum hash length: %d", name, p.MaxOperationHashLength)
	}

	code, err := hashing.GetMultihashCode(value)
	if err != nil {
		return err
	}

	if !containsUint(p.MultihashAlgorithms, uint(code)) {
		return fmt.Errorf("%s uses unsupported multihash code", name)
	}

	return nil
}

func containsUint(values []uint, value uint) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}

	return false
}

type permissiveAnchorOriginValidator struct{}

func (v *permissiveAnchorOriginValidator) Validate(interface{}) error {
	return nil
}

type permissiveAnchorTimeValidator struct{}

func (v *permissiveAnchorTimeValidator) Validate(int64, int64) error {
	return nil
}
