package core

// execution.go – PlatariumCore
//
// Shared logic separating validation, applicability checking, and effect
// application into three deterministic steps, composed behind a mode
// selector that distinguishes a real commit from a disposable simulation.

// ExecutionContext selects whether a pipeline run is allowed to commit its
// effects.
type ExecutionContext int

const (
	ExecutionProduction ExecutionContext = iota
	ExecutionSimulation
)

// ExecutionResult is the outcome of executing a transaction against a
// state. On failure finalState is nil; on success errMessage is empty.
type ExecutionResult struct {
	success    bool
	finalState *StateSnapshot
	errMessage string
}

func executionSuccess(snap StateSnapshot) ExecutionResult {
	return ExecutionResult{success: true, finalState: &snap}
}

func executionFailure(err error) ExecutionResult {
	return ExecutionResult{success: false, errMessage: err.Error()}
}

func (r ExecutionResult) IsSuccess() bool { return r.success }
func (r ExecutionResult) IsFailure() bool { return !r.success }

// GetFinalState returns the resulting snapshot and true on success, or the
// zero value and false on failure.
func (r ExecutionResult) GetFinalState() (StateSnapshot, bool) {
	if r.finalState == nil {
		return StateSnapshot{}, false
	}
	return *r.finalState, true
}

// GetError returns the failure message and true on failure, or "" and
// false on success.
func (r ExecutionResult) GetError() (string, bool) {
	if r.success {
		return "", false
	}
	return r.errMessage, true
}

// Executor runs the three-step execution pipeline against a live State.
type Executor struct {
	Verifier SignatureVerifier
	Context  ExecutionContext
}

// NewExecutor constructs an Executor for the given mode.
func NewExecutor(verifier SignatureVerifier, ctx ExecutionContext) *Executor {
	return &Executor{Verifier: verifier, Context: ctx}
}

// ValidateTransaction runs the transaction's context-free validity checks.
func (e *Executor) ValidateTransaction(tx *Transaction) error {
	return tx.ValidateBasic(e.Verifier)
}

// CheckTransactionApplicability checks, in fixed order, nonce match, asset
// balance sufficiency, then μPLP balance sufficiency, without mutating
// state.
func (e *Executor) CheckTransactionApplicability(state *State, tx *Transaction) error {
	got := state.GetNonce(tx.From)
	if got != tx.Nonce {
		return &ErrInvalidNonce{Expected: tx.Nonce, Got: got}
	}
	available := state.GetAssetBalance(tx.From, tx.Asset)
	if available.Cmp(tx.Amount) < 0 {
		return &ErrInsufficientBalance{Required: tx.Amount, Available: available}
	}
	availableUPLP := state.GetUPLPBalance(tx.From)
	if availableUPLP.Cmp(tx.FeeUPLP) < 0 {
		return &ErrInsufficientBalance{Required: tx.FeeUPLP, Available: availableUPLP}
	}
	return nil
}

// ApplyTransactionEffects delegates to state.ApplyTransfer using tx's own
// nonce.
func (e *Executor) ApplyTransactionEffects(state *State, tx *Transaction) error {
	nonce := tx.Nonce
	return state.ApplyTransfer(tx.From, tx.To, tx.Asset, tx.Amount, tx.FeeUPLP, &nonce)
}

// ExecuteTransaction runs validation, applicability checking, and effect
// application against state, in that order.
func (e *Executor) ExecuteTransaction(state *State, tx *Transaction) error {
	if err := e.ValidateTransaction(tx); err != nil {
		return err
	}
	if err := e.CheckTransactionApplicability(state, tx); err != nil {
		return err
	}
	return e.ApplyTransactionEffects(state, tx)
}

// Commit reports whether effects already applied to state may stand. It
// succeeds in Production; in Simulation, nothing may ever be committed to
// authoritative state.
func (e *Executor) Commit() error {
	if e.Context == ExecutionSimulation {
		return ErrCommitNotAllowedInSimulation
	}
	return nil
}

// Simulate creates a fresh, disposable state restored from snapshot,
// executes tx against it, and returns the outcome without ever touching
// the authoritative state or mutating the input snapshot.
func Simulate(verifier SignatureVerifier, snapshot StateSnapshot, tx *Transaction) ExecutionResult {
	scratch := NewState()
	scratch.Restore(snapshot)

	exec := NewExecutor(verifier, ExecutionSimulation)
	if err := exec.ExecuteTransaction(scratch, tx); err != nil {
		return executionFailure(err)
	}
	return executionSuccess(scratch.Snapshot())
}
