/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package document

import "github.com/trustbloc/sidetree-did-go/method/sidetreelongform/sidetree-core/api/operation"

// ResolutionOptions holds the optional parameters a resolution request may
// be refined with: operations observed outside the operation store (e.g.
// still pending anchoring), and a request to resolve the document as of a
// specific version or point in time rather than its latest state.
type ResolutionOptions struct {

	// AdditionalOperations are operations to fold into resolution alongside
	// whatever the operation store(s) return. Resolve drops duplicates (same
	// type, suffix, transaction time and number, and canonical reference).
	AdditionalOperations []*operation.AnchoredOperation

	// VersionID, if set, resolves the document as of the operation whose
	// canonical reference equals this value.
	VersionID string

	// VersionTime, if set, resolves the document as of the latest operation
	// anchored at or before this RFC 3339 timestamp.
	VersionTime string
}

// ResolutionOption configures a ResolutionOptions.
type ResolutionOption func(opts *ResolutionOptions)

// WithAdditionalOperations supplies operations to resolve alongside those
// already in the operation store (e.g. not-yet-anchored operations).
func WithAdditionalOperations(ops []*operation.AnchoredOperation) ResolutionOption {
	return func(opts *ResolutionOptions) {
		opts.AdditionalOperations = ops
	}
}

// WithVersionID resolves the document as of the operation with this
// canonical reference.
func WithVersionID(versionID string) ResolutionOption {
	return func(opts *ResolutionOptions) {
		opts.VersionID = versionID
	}
}

// WithVersionTime resolves the document as of the given point in time
// (RFC 3339), rather than its latest state.
func WithVersionTime(versionTime string) ResolutionOption {
	return func(opts *ResolutionOptions) {
		opts.VersionTime = versionTime
	}
}

// Apply folds opts into a ResolutionOptions value.
func Apply(opts ...ResolutionOption) ResolutionOptions {
	var options ResolutionOptions

	for _, opt := range opts {
		opt(&options)
	}

	return options
}
