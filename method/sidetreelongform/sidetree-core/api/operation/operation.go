/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package operation defines the operation types and the anchored operation
// record persisted by the operation store.
package operation

// Type defines the type of a Sidetree operation.
type Type string

const (
	// TypeCreate captures "create" operation type.
	TypeCreate Type = "create"

	// TypeUpdate captures "update" operation type.
	TypeUpdate Type = "update"

	// TypeDeactivate captures "deactivate" operation type.
	TypeDeactivate Type = "deactivate"

	// TypeRecover captures "recover" operation type.
	TypeRecover Type = "recover"
)

// AnchoredOperation defines an operation that has been anchored (or is
// pending anchoring, for operations held in an unpublished operation store)
// in a transaction.
type AnchoredOperation struct {

	// Type is the type of operation.
	Type Type `json:"type"`

	// UniqueSuffix is the unique suffix of the DID this operation applies to.
	UniqueSuffix string `json:"uniqueSuffix"`

	// OperationRequest is the original operation request.
	OperationRequest []byte `json:"operationBuffer"`

	// CanonicalReference is the reference to the operation in the CAS-backed
	// file structure (e.g. core/provisional index file URI). It is empty for
	// operations that have not yet been anchored in a published batch.
	CanonicalReference string `json:"canonicalReference,omitempty"`

	// TransactionTime is the logical anchoring time (e.g. block number) of the
	// transaction that contains this operation.
	TransactionTime uint64 `json:"transactionTime"`

	// TransactionNumber is the transaction number assigned by the ledger.
	TransactionNumber uint64 `json:"transactionNumber"`

	// ProtocolVersion is the genesis time of the protocol version that
	// produced this operation.
	ProtocolVersion uint64 `json:"protocolVersion"`

	// SignedData is the compact JWS carrying the operation's signed data, if any.
	SignedData string `json:"signedData,omitempty"`

	// Delta is the (unresolved, encoded) delta object for this operation, if any.
	Delta []byte `json:"delta,omitempty"`

	// OperationIndex is this operation's position within its anchoring transaction.
	OperationIndex uint `json:"operationIndex"`
}

// Reference is a lightweight pointer to an operation, used when writing a
// batch's anchor string (namespace-scoped unique suffix plus type).
type Reference struct {
	UniqueSuffix string
	Type         Type
}
