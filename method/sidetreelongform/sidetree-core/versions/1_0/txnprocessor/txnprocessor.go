/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package txnprocessor processes the operations anchored by one Sidetree
// transaction, persisting them to the operation store.
package txnprocessor

import (
	"fmt"

	log "github.com/hyperledger/aries-framework-go/component/log"

	"github.com/trustbloc/sidetree-did-go/method/sidetreelongform/sidetree-core/api/operation"
	"github.com/trustbloc/sidetree-did-go/method/sidetreelongform/sidetree-core/api/txn"
)

var logger = log.New("sidetree-txnprocessor")

// OperationStore persists anchored operations and retrieves them by suffix.
type OperationStore interface {
	Put(ops []*operation.AnchoredOperation) error
	Get(suffix string) ([]*operation.AnchoredOperation, error)
}

// OperationProtocolProvider downloads and assembles the operations anchored
// by a transaction (the download/validate pipeline implemented by
// versions/1_0/txnprovider).
type OperationProtocolProvider interface {
	GetTxnOperations(txn *txn.SidetreeTxn) ([]*operation.AnchoredOperation, error)
}

// UnpublishedOperationStore holds operations that have been accepted but not
// yet anchored. Once a transaction anchors them, they must be removed from
// it so they are not resolved twice.
type UnpublishedOperationStore interface {
	DeleteAll(ops []*operation.AnchoredOperation) error
}

// Providers contains the dependencies for a TxnProcessor.
type Providers struct {
	OpStore                   OperationStore
	OperationProtocolProvider OperationProtocolProvider
}

// TxnProcessor processes Sidetree transactions by persisting their anchored
// operations into the operation store.
type TxnProcessor struct {
	*Providers

	unpublishedOperationStore UnpublishedOperationStore
	unpublishedOperationTypes []operation.Type
}

// Option configures a TxnProcessor.
type Option func(opts *TxnProcessor)

// WithUnpublishedOperationStore sets the store holding not-yet-anchored
// operations, and the operation types that may originate there. Once a
// transaction anchors one of those types for a DID, its unpublished copy is
// deleted.
func WithUnpublishedOperationStore(store UnpublishedOperationStore, types []operation.Type) Option {
	return func(opts *TxnProcessor) {
		opts.unpublishedOperationStore = store
		opts.unpublishedOperationTypes = types
	}
}

// New returns a new TxnProcessor.
func New(providers *Providers, opts ...Option) *TxnProcessor {
	tp := &TxnProcessor{Providers: providers}

	for _, opt := range opts {
		opt(tp)
	}

	return tp
}

// Process processes a Sidetree transaction by resolving its anchored
// operations and persisting them. It returns the number of operations
// processed.
func (p *TxnProcessor) Process(sidetreeTxn txn.SidetreeTxn) (int, error) {
	logger.Debugf("processing transaction %+v", sidetreeTxn)

	txnOps, err := p.OperationProtocolProvider.GetTxnOperations(&sidetreeTxn)
	if err != nil {
		return 0, fmt.Errorf("failed to retrieve operations for anchor string[%s]: %s", sidetreeTxn.AnchorString, err.Error())
	}

	return p.processTxnOperations(txnOps, &sidetreeTxn)
}

func (p *TxnProcessor) processTxnOperations(txnOps []*operation.AnchoredOperation, sidetreeTxn *txn.SidetreeTxn) (int, error) { //nolint:lll
	logger.Debugf("processing %d operations for anchor string[%s]", len(txnOps), sidetreeTxn.AnchorString)

	batchSuffixes := make(map[string]bool)

	var updatedOps []*operation.AnchoredOperation

	for _, op := range txnOps {
		if batchSuffixes[op.UniqueSuffix] {
			logger.Warnf("duplicate suffix[%s] found in transaction operations: discarding operation",
				op.UniqueSuffix)

			continue
		}

		updatedOps = append(updatedOps, updateAnchoredOperation(op, sidetreeTxn))
		batchSuffixes[op.UniqueSuffix] = true
	}

	err := p.OpStore.Put(updatedOps)
	if err != nil {
		return 0, fmt.Errorf("failed to store operation from anchor string[%s]: %s", sidetreeTxn.AnchorString, err.Error())
	}

	if err := p.deleteUnpublished(updatedOps, sidetreeTxn); err != nil {
		return 0, err
	}

	return len(updatedOps), nil
}

func (p *TxnProcessor) deleteUnpublished(ops []*operation.AnchoredOperation, sidetreeTxn *txn.SidetreeTxn) error {
	if p.unpublishedOperationStore == nil {
		return nil
	}

	var toDelete []*operation.AnchoredOperation

	for _, op := range ops {
		for _, t := range p.unpublishedOperationTypes {
			if op.Type == t {
				toDelete = append(toDelete, op)

				break
			}
		}
	}

	if len(toDelete) == 0 {
		return nil
	}

	if err := p.unpublishedOperationStore.DeleteAll(toDelete); err != nil {
		return fmt.Errorf("failed to delete unpublished operations for anchor string[%s]: %s",
			sidetreeTxn.AnchorString, err.Error())
	}

	return nil
}

// updateAnchoredOperation stamps op with the transaction time/number of the
// transaction that anchored it.
func updateAnchoredOperation(op *operation.AnchoredOperation, sidetreeTxn *txn.SidetreeTxn) *operation.AnchoredOperation {
	op.TransactionTime = sidetreeTxn.TransactionTime
	op.TransactionNumber = sidetreeTxn.TransactionNumber

	return op
}
