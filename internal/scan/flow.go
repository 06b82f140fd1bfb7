// Package scan drives the prescription scanning flow the UI binds to.
package scan

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/aarogyavani/companion/internal/gemini"
	"github.com/aarogyavani/companion/internal/service"
	"github.com/aarogyavani/companion/pkg/model"
)

// State is the UI-facing phase of the scan flow.
type State string

const (
	StateIdle              State = "IDLE"
	StateSubmitting        State = "SUBMITTING"
	StateSuccess           State = "SUCCESS"
	StateError             State = "ERROR"
	StateMissingCredential State = "MISSING_CREDENTIAL"
)

// PrescriptionAnalyzer is the slice of the AI adapter the flow needs.
type PrescriptionAnalyzer interface {
	AnalyzePrescription(ctx context.Context, image []byte, mimeType, targetLanguage string, previousMedicines []string) (*model.AarogyaResponse, error)
}

// Flow is the Idle → Submitting → {Success | Error | MissingCredential}
// state machine. Terminal states return to Idle only on an explicit Reset;
// there is no automatic retry, and cancellation means abandoning the context
// and ignoring the eventual response. The flow runs on the single
// cooperative UI thread, so no locking is needed.
type Flow struct {
	analyzer PrescriptionAnalyzer
	history  *service.HistoryService
	logger   *zap.Logger

	state  State
	result *model.AarogyaResponse
	err    error
}

// NewFlow creates a Flow in the Idle state.
func NewFlow(analyzer PrescriptionAnalyzer, history *service.HistoryService, logger *zap.Logger) *Flow {
	return &Flow{
		analyzer: analyzer,
		history:  history,
		logger:   logger,
		state:    StateIdle,
	}
}

// State returns the current phase.
func (f *Flow) State() State { return f.state }

// Result returns the successful analysis, or nil outside StateSuccess.
func (f *Flow) Result() *model.AarogyaResponse { return f.result }

// Err returns the failure that drove the flow into a terminal error state.
func (f *Flow) Err() error { return f.err }

// Submit runs one analysis. Only valid from Idle. On success the response is
// appended to the scan history; prior medicine names from the history are
// passed along for cross-prescription interaction checking.
func (f *Flow) Submit(ctx context.Context, image []byte, mimeType, targetLanguage string) error {
	if f.state != StateIdle {
		return fmt.Errorf("scan already in progress or awaiting reset (state %s)", f.state)
	}

	f.state = StateSubmitting
	f.logger.Info("scan submitted", zap.String("language", targetLanguage))

	resp, err := f.analyzer.AnalyzePrescription(ctx, image, mimeType, targetLanguage, f.history.KnownMedicineNames())
	if err != nil {
		f.err = err
		if errors.Is(err, gemini.ErrCredentialMissing) {
			f.state = StateMissingCredential
		} else {
			f.state = StateError
		}
		f.logger.Warn("scan failed",
			zap.Error(err),
			zap.String("state", string(f.state)),
		)
		return err
	}

	f.result = resp
	f.state = StateSuccess
	f.history.Add(*resp)
	return nil
}

// Reset returns the flow to Idle from any state, clearing result and error.
func (f *Flow) Reset() {
	f.state = StateIdle
	f.result = nil
	f.err = nil
}
