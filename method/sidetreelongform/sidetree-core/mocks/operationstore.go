/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package mocks

import (
	"errors"
	"sync"

	"github.com/trustbloc/sidetree-did-go/method/sidetreelongform/sidetree-core/api/operation"
)

// MockOperationStore is an in-memory operation store keyed by unique suffix,
// used by the resolver in tests.
type MockOperationStore struct {
	sync.RWMutex

	// Validate, when true (the default), rejects a Put whose operation is
	// not a create and would be the first operation stored for its suffix.
	// Tests that want to exercise that failure through the applier directly
	// (rather than through a store write) can set this to false.
	Validate bool

	err error
	ops map[string][]*operation.AnchoredOperation
}

// NewMockOperationStore returns a store whose Put calls fail with err when
// err is non-nil.
func NewMockOperationStore(err error) *MockOperationStore {
	return &MockOperationStore{
		Validate: true,
		err:      err,
		ops:      make(map[string][]*operation.AnchoredOperation),
	}
}

// Put appends op to its unique suffix's bucket.
func (m *MockOperationStore) Put(op *operation.AnchoredOperation) error {
	if m.err != nil {
		return m.err
	}

	m.Lock()
	defer m.Unlock()

	if m.Validate && len(m.ops[op.UniqueSuffix]) == 0 && op.Type != operation.TypeCreate {
		return errors.New("first operation must be create")
	}

	m.ops[op.UniqueSuffix] = append(m.ops[op.UniqueSuffix], op)

	return nil
}

// Get returns the operations stored for suffix.
func (m *MockOperationStore) Get(suffix string) ([]*operation.AnchoredOperation, error) {
	if m.err != nil {
		return nil, m.err
	}

	m.RLock()
	defer m.RUnlock()

	ops, ok := m.ops[suffix]
	if !ok {
		return nil, nil
	}

	return ops, nil
}
