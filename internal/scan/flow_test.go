package scan

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aarogyavani/companion/internal/gemini"
	"github.com/aarogyavani/companion/internal/service"
	"github.com/aarogyavani/companion/internal/store"
	"github.com/aarogyavani/companion/pkg/model"
)

type fakeAnalyzer struct {
	response *model.AarogyaResponse
	err      error
	previous []string
}

func (f *fakeAnalyzer) AnalyzePrescription(ctx context.Context, image []byte, mimeType, targetLanguage string, previousMedicines []string) (*model.AarogyaResponse, error) {
	f.previous = previousMedicines
	if f.err != nil {
		return nil, f.err
	}
	return f.response, nil
}

func analysisResponse(medicines ...string) *model.AarogyaResponse {
	resp := &model.AarogyaResponse{
		VoiceScriptEnglish: "Take your medicines as prescribed.",
		VoiceScriptNative:  "अपनी दवाएं बताई गई मात्रा में लें।",
		Language:           "hi",
	}
	for _, name := range medicines {
		resp.StructuredData.Medicines = append(resp.StructuredData.Medicines, model.Medicine{Name: name})
	}
	return resp
}

func newFlowFixture(t *testing.T, analyzer PrescriptionAnalyzer) (*Flow, *service.HistoryService) {
	t.Helper()

	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	history := service.NewHistoryService(st, zap.NewNop())
	return NewFlow(analyzer, history, zap.NewNop()), history
}

func TestFlow_StartsIdle(t *testing.T) {
	flow, _ := newFlowFixture(t, &fakeAnalyzer{})

	assert.Equal(t, StateIdle, flow.State())
	assert.Nil(t, flow.Result())
	assert.NoError(t, flow.Err())
}

func TestFlow_SuccessAppendsHistory(t *testing.T) {
	flow, history := newFlowFixture(t, &fakeAnalyzer{response: analysisResponse("Paracetamol")})

	err := flow.Submit(context.Background(), []byte("img"), "image/jpeg", "hi")
	require.NoError(t, err)

	assert.Equal(t, StateSuccess, flow.State())
	require.NotNil(t, flow.Result())
	assert.Equal(t, "Paracetamol", flow.Result().StructuredData.Medicines[0].Name)

	items := history.List()
	require.Len(t, items, 1)
	assert.Equal(t, "Paracetamol", items[0].Data.StructuredData.Medicines[0].Name)
}

func TestFlow_PassesKnownMedicinesToAnalyzer(t *testing.T) {
	analyzer := &fakeAnalyzer{response: analysisResponse("Ibuprofen")}
	flow, history := newFlowFixture(t, analyzer)

	history.Add(*analysisResponse("Warfarin"))

	require.NoError(t, flow.Submit(context.Background(), []byte("img"), "image/jpeg", "hi"))
	assert.Equal(t, []string{"Warfarin"}, analyzer.previous)
}

func TestFlow_MissingCredential(t *testing.T) {
	flow, history := newFlowFixture(t, &fakeAnalyzer{err: gemini.ErrCredentialMissing})

	err := flow.Submit(context.Background(), []byte("img"), "image/jpeg", "hi")
	assert.ErrorIs(t, err, gemini.ErrCredentialMissing)
	assert.Equal(t, StateMissingCredential, flow.State())
	assert.Empty(t, history.List(), "failed scans must not enter the history")
}

func TestFlow_AnalysisError(t *testing.T) {
	flow, history := newFlowFixture(t, &fakeAnalyzer{err: gemini.ErrResponseUnparseable})

	err := flow.Submit(context.Background(), []byte("img"), "image/jpeg", "hi")
	assert.ErrorIs(t, err, gemini.ErrResponseUnparseable)
	assert.Equal(t, StateError, flow.State())
	assert.Empty(t, history.List())
}

func TestFlow_SubmitOutsideIdleRejected(t *testing.T) {
	flow, _ := newFlowFixture(t, &fakeAnalyzer{err: errors.New("boom")})

	_ = flow.Submit(context.Background(), []byte("img"), "image/jpeg", "hi")
	require.Equal(t, StateError, flow.State())

	err := flow.Submit(context.Background(), []byte("img"), "image/jpeg", "hi")
	assert.Error(t, err)
	assert.Equal(t, StateError, flow.State(), "a rejected submit must not change state")
}

func TestFlow_Reset(t *testing.T) {
	flow, _ := newFlowFixture(t, &fakeAnalyzer{response: analysisResponse("Paracetamol")})

	require.NoError(t, flow.Submit(context.Background(), []byte("img"), "image/jpeg", "hi"))
	require.Equal(t, StateSuccess, flow.State())

	flow.Reset()

	assert.Equal(t, StateIdle, flow.State())
	assert.Nil(t, flow.Result())
	assert.NoError(t, flow.Err())

	// A fresh submit works after reset.
	require.NoError(t, flow.Submit(context.Background(), []byte("img"), "image/jpeg", "hi"))
	assert.Equal(t, StateSuccess, flow.State())
}
