/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package txnprovider

import "errors"

// ErrCASNotReachable signals a transient failure reading from the CAS: the
// caller should retry the transaction later rather than treat it as
// permanently invalid.
var ErrCASNotReachable = errors.New("cas not reachable")

// ErrOperationCountExceededLimit signals that an anchor or map file
// references more operations than the protocol allows.
var ErrOperationCountExceededLimit = errors.New("number of operations exceeded protocol maximum")

// ErrDuplicateOperationForDid signals that a did suffix appears in both the
// anchor file and the map file of the same transaction.
var ErrDuplicateOperationForDid = errors.New("duplicate operation for did")
