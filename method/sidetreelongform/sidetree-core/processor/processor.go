/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package processor resolves a DID's current state by replaying its
// operations (create, followed by a chain of update/recover/deactivate
// operations linked by commitment/reveal pairs) against an operation store.
package processor

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/trustbloc/sidetree-did-go/method/sidetreelongform/sidetree-core/api/operation"
	"github.com/trustbloc/sidetree-did-go/method/sidetreelongform/sidetree-core/api/protocol"
	"github.com/trustbloc/sidetree-did-go/method/sidetreelongform/sidetree-core/commitment"
	"github.com/trustbloc/sidetree-did-go/method/sidetreelongform/sidetree-core/document"
)

// OperationStore retrieves the published operations anchored for a DID suffix.
type OperationStore interface {
	Get(suffix string) ([]*operation.AnchoredOperation, error)
}

// UnpublishedOperationStore retrieves operations observed for a DID suffix
// that have not yet been anchored (e.g. still awaiting a batch write).
type UnpublishedOperationStore interface {
	Get(suffix string) ([]*operation.AnchoredOperation, error)
}

// Option configures an OperationProcessor.
type Option func(*OperationProcessor)

// WithUnpublishedOperationStore folds unpublished operations into resolution
// alongside the ones the (published) operation store returns.
func WithUnpublishedOperationStore(store UnpublishedOperationStore) Option {
	return func(p *OperationProcessor) {
		p.unpublishedOperationStore = store
	}
}

// OperationProcessor resolves a DID's current state for a single namespace.
type OperationProcessor struct {
	name  string
	store OperationStore
	pc    protocol.Client

	unpublishedOperationStore UnpublishedOperationStore
}

// New returns a new OperationProcessor for the given namespace.
func New(name string, store OperationStore, pc protocol.Client, opts ...Option) *OperationProcessor {
	p := &OperationProcessor{
		name:  name,
		store: store,
		pc:    pc,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// ResolutionResult is the DID state Resolve assembles, plus the operations
// that were considered published/unpublished while assembling it.
type ResolutionResult struct {
	*protocol.ResolutionModel

	PublishedOperations   []*operation.AnchoredOperation
	UnpublishedOperations []*operation.AnchoredOperation
}

// Resolve replays uniqueSuffix's operations into a ResolutionResult: a
// create, picked as the earliest one that parses and applies cleanly,
// followed by update/recover/deactivate operations linked by their
// commitment/reveal pairs, taking at each step the earliest-anchored
// operation that advances the state.
func (s *OperationProcessor) Resolve(
	uniqueSuffix string, opts ...document.ResolutionOption) (*ResolutionResult, error) {
	options := document.Apply(opts...)

	ops, err := s.store.Get(uniqueSuffix)
	if err != nil {
		return nil, err
	}

	if s.unpublishedOperationStore != nil {
		unpublished, err := s.unpublishedOperationStore.Get(uniqueSuffix)
		if err != nil {
			return nil, err
		}

		ops = append(ops, unpublished...)
	}

	ops = append(ops, options.AdditionalOperations...)
	ops = dedupOperations(ops)

	if options.VersionTime != "" {
		ops, err = filterByVersionTime(ops, options.VersionTime)
		if err != nil {
			return nil, err
		}
	}

	if options.VersionID != "" {
		ops, err = filterByVersionID(ops, options.VersionID)
		if err != nil {
			return nil, err
		}
	}

	rm, err := s.resolveCreate(ops)
	if err != nil {
		return nil, err
	}

	rm = s.applyChain(ops, rm)

	result := &ResolutionResult{ResolutionModel: rm}

	for _, op := range ops {
		if op.CanonicalReference == "" {
			result.UnpublishedOperations = append(result.UnpublishedOperations, op)
		} else {
			result.PublishedOperations = append(result.PublishedOperations, op)
		}
	}

	return result, nil
}

// resolveCreate picks the earliest-anchored create operation that parses and
// applies into a non-nil (possibly empty) document, ignoring any later or
// malformed ones.
func (s *OperationProcessor) resolveCreate(ops []*operation.AnchoredOperation) (*protocol.ResolutionModel, error) {
	creates := filterByType(ops, operation.TypeCreate)

	if len(creates) == 0 {
		return nil, errors.New("create operation not found")
	}

	sortByTransaction(creates)

	for _, create := range creates {
		rm, err := s.applyOperation(create, &protocol.ResolutionModel{})
		if err == nil && rm.Doc != nil {
			return rm, nil
		}
	}

	return nil, errors.New("valid create operation not found")
}

// applyChain walks the commitment chain starting from rm, applying the next
// operation whose revealed commitment matches rm's current update or
// recovery commitment. A candidate whose own next commitment has already
// been produced somewhere in the chain is skipped rather than applied, so a
// commitment can never be reused. Iterations are bounded by the number of
// operations under replay: a legitimate chain can advance at most once per
// operation, so anything longer means a forged or malformed operation is
// being retried without ever actually advancing the state, and the loop
// must not spin forever on it.
func (s *OperationProcessor) applyChain(
	ops []*operation.AnchoredOperation, rm *protocol.ResolutionModel) *protocol.ResolutionModel {
	byRevealedCommitment := map[string][]*operation.AnchoredOperation{}

	for _, op := range ops {
		if op.Type == operation.TypeCreate {
			continue
		}

		rv, err := s.getRevealValue(op)
		if err != nil {
			continue
		}

		c, err := commitment.GetCommitmentFromRevealValue(rv)
		if err != nil {
			continue
		}

		byRevealedCommitment[c] = append(byRevealedCommitment[c], op)
	}

	usedCommitments := map[string]bool{}
	markUsed(usedCommitments, rm)

	maxIterations := len(ops)

	for i := 0; i < maxIterations && !rm.Deactivated; i++ {
		var candidates []*operation.AnchoredOperation

		if rm.UpdateCommitment != "" {
			candidates = append(candidates, byRevealedCommitment[rm.UpdateCommitment]...)
		}

		if rm.RecoveryCommitment != "" {
			candidates = append(candidates, byRevealedCommitment[rm.RecoveryCommitment]...)
		}

		if len(candidates) == 0 {
			return rm
		}

		sortByTransaction(candidates)

		next, applied := s.applyFirstValidCandidate(candidates, rm, usedCommitments)
		if !applied {
			return rm
		}

		rm = next
		markUsed(usedCommitments, rm)
	}

	return rm
}

// applyFirstValidCandidate applies candidates in order and returns the
// result of the first one whose application actually advances the state
// (its transaction number moves past rm's). A candidate that the applier
// accepts (err == nil) but that leaves the state unchanged — the reveal
// matched but the signature, delta hash, or other content was forged or
// malformed — is not state advancement and must be skipped rather than
// adopted, or a single bad operation anchored against a live commitment
// would make the chain loop on it forever.
func (s *OperationProcessor) applyFirstValidCandidate(
	candidates []*operation.AnchoredOperation, rm *protocol.ResolutionModel, usedCommitments map[string]bool,
) (*protocol.ResolutionModel, bool) {
	for _, candidate := range candidates {
		nextCommitment, _ := s.getCommitment(candidate)
		if nextCommitment != "" && usedCommitments[nextCommitment] {
			continue
		}

		next, err := s.applyOperation(candidate, rm)
		if err != nil {
			continue
		}

		if next.LastOperationTransactionNumber <= rm.LastOperationTransactionNumber {
			continue
		}

		return next, true
	}

	return rm, false
}

func markUsed(usedCommitments map[string]bool, rm *protocol.ResolutionModel) {
	if rm.UpdateCommitment != "" {
		usedCommitments[rm.UpdateCommitment] = true
	}

	if rm.RecoveryCommitment != "" {
		usedCommitments[rm.RecoveryCommitment] = true
	}
}

// applyOperation applies op through the protocol version in effect at its
// anchoring time.
func (s *OperationProcessor) applyOperation(
	op *operation.AnchoredOperation, rm *protocol.ResolutionModel) (*protocol.ResolutionModel, error) {
	switch op.Type { //nolint:exhaustive
	case operation.TypeCreate, operation.TypeUpdate, operation.TypeRecover, operation.TypeDeactivate:
	default:
		return nil, errors.New("operation type not supported for process operation")
	}

	v, err := s.pc.Get(op.TransactionTime)
	if err != nil {
		return nil, fmt.Errorf("apply '%s' operation: %w", op.Type, err)
	}

	result, err := v.OperationApplier().Apply(op, rm)
	if err != nil {
		return nil, fmt.Errorf("apply '%s' operation: %w", op.Type, err)
	}

	return result, nil
}

// getRevealValue returns the reveal value op's request exposes. Create
// operations never carry one: there is nothing earlier in the chain for
// them to reveal against.
func (s *OperationProcessor) getRevealValue(op *operation.AnchoredOperation) (string, error) {
	if op.Type == operation.TypeCreate {
		return "", errors.New("create operation doesn't have reveal value")
	}

	v, err := s.pc.Get(op.TransactionTime)
	if err != nil {
		return "", fmt.Errorf("get reveal value: %w", err)
	}

	return v.OperationParser().GetRevealValue(op.OperationRequest)
}

// getCommitment returns the commitment op's request installs for the
// operation that follows it in the chain.
func (s *OperationProcessor) getCommitment(op *operation.AnchoredOperation) (string, error) {
	switch op.Type { //nolint:exhaustive
	case operation.TypeCreate, operation.TypeUpdate, operation.TypeRecover, operation.TypeDeactivate:
	default:
		return "", fmt.Errorf("operation type [%s] not supported", sniffOperationType(op.OperationRequest))
	}

	v, err := s.pc.Get(op.TransactionTime)
	if err != nil {
		return "", fmt.Errorf("get commitment: %w", err)
	}

	return v.OperationParser().GetCommitment(op.OperationRequest)
}

// sniffOperationType reads the "type" property straight out of a raw
// operation request, for error messages about operations whose declared
// type doesn't match any of the four known kinds.
func sniffOperationType(operationRequest []byte) string {
	var wrapper struct {
		Type string `json:"type"`
	}

	_ = json.Unmarshal(operationRequest, &wrapper)

	return wrapper.Type
}

func filterByType(ops []*operation.AnchoredOperation, t operation.Type) []*operation.AnchoredOperation {
	var filtered []*operation.AnchoredOperation

	for _, op := range ops {
		if op.Type == t {
			filtered = append(filtered, op)
		}
	}

	return filtered
}

func filterByVersionTime(
	ops []*operation.AnchoredOperation, versionTime string) ([]*operation.AnchoredOperation, error) {
	t, err := time.Parse(time.RFC3339, versionTime)
	if err != nil {
		return nil, fmt.Errorf("failed to parse version time[%s]: %s", versionTime, err.Error())
	}

	cutoff := uint64(t.Unix())

	var filtered []*operation.AnchoredOperation

	for _, op := range ops {
		if op.TransactionTime <= cutoff {
			filtered = append(filtered, op)
		}
	}

	if len(filtered) == 0 {
		return nil, fmt.Errorf("no operations found for version time %s", versionTime)
	}

	return filtered, nil
}

func filterByVersionID(ops []*operation.AnchoredOperation, versionID string) ([]*operation.AnchoredOperation, error) {
	var target *operation.AnchoredOperation

	for _, op := range ops {
		if op.CanonicalReference == versionID {
			target = op

			break
		}
	}

	if target == nil {
		return nil, fmt.Errorf("'%s' is not a valid versionId", versionID)
	}

	var filtered []*operation.AnchoredOperation

	for _, op := range ops {
		if op.CanonicalReference == "" {
			continue
		}

		if lessOrEqualTransaction(op, target) {
			filtered = append(filtered, op)
		}
	}

	return filtered, nil
}

// dedupOperations drops operations that are identical in every field a
// commitment-chain replay cares about, keeping the first occurrence. This
// guards against the same operation arriving from more than one source (the
// operation store and an additional-operations list, say).
func dedupOperations(ops []*operation.AnchoredOperation) []*operation.AnchoredOperation {
	seen := map[string]bool{}

	var deduped []*operation.AnchoredOperation

	for _, op := range ops {
		key := fmt.Sprintf("%s-%s-%d-%d-%s",
			op.Type, op.UniqueSuffix, op.TransactionTime, op.TransactionNumber, op.CanonicalReference)

		if seen[key] {
			continue
		}

		seen[key] = true

		deduped = append(deduped, op)
	}

	return deduped
}

func sortByTransaction(ops []*operation.AnchoredOperation) {
	sort.SliceStable(ops, func(i, j int) bool {
		if ops[i].TransactionTime != ops[j].TransactionTime {
			return ops[i].TransactionTime < ops[j].TransactionTime
		}

		return ops[i].TransactionNumber < ops[j].TransactionNumber
	})
}

func lessOrEqualTransaction(op, target *operation.AnchoredOperation) bool {
	if op.TransactionTime != target.TransactionTime {
		return op.TransactionTime <= target.TransactionTime
	}

	return op.TransactionNumber <= target.TransactionNumber
}

// getOpsWithTxnGreaterThanOrUnpublished returns the ops anchored strictly
// after (transactionTime, transactionNumber), plus any not yet published.
// Used to find what a cached resolution is missing once new operations may
// have arrived.
func getOpsWithTxnGreaterThanOrUnpublished(
	ops []*operation.AnchoredOperation, transactionTime, transactionNumber uint64) []*operation.AnchoredOperation {
	var filtered []*operation.AnchoredOperation

	for _, op := range ops {
		if op.CanonicalReference == "" {
			filtered = append(filtered, op)

			continue
		}

		if op.TransactionTime > transactionTime ||
			(op.TransactionTime == transactionTime && op.TransactionNumber > transactionNumber) {
			filtered = append(filtered, op)
		}
	}

	return filtered
}
