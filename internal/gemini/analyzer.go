package gemini

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"go.uber.org/zap"

	"github.com/aarogyavani/companion/pkg/model"
)

// analysisTemperature keeps prescription reading relatively deterministic.
const analysisTemperature = 0.4

// Completer abstracts the Gemini client for testing.
type Completer interface {
	Complete(ctx context.Context, messages []openai.ChatCompletionMessageParamUnion, temperature ...float64) (string, error)
}

// Analyzer turns prescription and pill images into validated structured
// results. A nil client means no credential is configured: every call
// returns ErrCredentialMissing without touching the network.
type Analyzer struct {
	client Completer
	logger *zap.Logger
}

// NewAnalyzer creates an Analyzer. Pass a nil client when no API key is
// configured.
func NewAnalyzer(client Completer, logger *zap.Logger) *Analyzer {
	return &Analyzer{
		client: client,
		logger: logger,
	}
}

// AnalyzePrescription sends the image for OCR, translation and interaction
// analysis, and validates the structured response. previousMedicines, when
// non-empty, triggers a cross-prescription interaction check.
func (a *Analyzer) AnalyzePrescription(ctx context.Context, image []byte, mimeType, targetLanguage string, previousMedicines []string) (*model.AarogyaResponse, error) {
	if a.client == nil {
		return nil, ErrCredentialMissing
	}

	a.logger.Info("analyzing prescription",
		zap.String("language", targetLanguage),
		zap.Int("image_bytes", len(image)),
		zap.Int("previous_medicines", len(previousMedicines)),
	)

	messages := []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(systemInstruction),
		openai.UserMessage([]openai.ChatCompletionContentPartUnionParam{
			openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
				URL: dataURL(image, mimeType),
			}),
			openai.TextContentPart(buildAnalysisPrompt(targetLanguage, previousMedicines)),
		}),
	}

	raw, err := a.client.Complete(ctx, messages, analysisTemperature)
	if err != nil {
		kindErr := classify(err)
		a.logger.Error("prescription analysis failed", zap.Error(kindErr))
		return nil, kindErr
	}

	resp, err := parseAnalysisResponse(raw)
	if err != nil {
		a.logger.Error("unparseable analysis response",
			zap.Error(err),
			zap.String("response", raw),
		)
		return nil, err
	}
	resp.Language = targetLanguage

	a.logger.Info("prescription analyzed",
		zap.Int("medicines", len(resp.StructuredData.Medicines)),
		zap.Int("interactions", len(resp.StructuredData.Interactions)),
	)

	return resp, nil
}

// IdentifyPill compares a pill image against the expected medicine name.
func (a *Analyzer) IdentifyPill(ctx context.Context, image []byte, mimeType, expectedName, language string) (*model.PillAnalysisResult, error) {
	if a.client == nil {
		return nil, ErrCredentialMissing
	}

	a.logger.Info("identifying pill",
		zap.String("expected", expectedName),
		zap.String("language", language),
	)

	messages := []openai.ChatCompletionMessageParamUnion{
		openai.UserMessage([]openai.ChatCompletionContentPartUnionParam{
			openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
				URL: dataURL(image, mimeType),
			}),
			openai.TextContentPart(buildPillPrompt(expectedName, language)),
		}),
	}

	raw, err := a.client.Complete(ctx, messages)
	if err != nil {
		kindErr := classify(err)
		a.logger.Error("pill identification failed", zap.Error(kindErr))
		return nil, kindErr
	}

	result, err := parsePillResponse(raw)
	if err != nil {
		a.logger.Error("unparseable pill response",
			zap.Error(err),
			zap.String("response", raw),
		)
		return nil, err
	}

	a.logger.Info("pill identified", zap.String("match_status", string(result.MatchStatus)))

	return result, nil
}

// parseAnalysisResponse parses and validates the model output against the
// declared schema. Any deviation is surfaced as ErrResponseUnparseable.
func parseAnalysisResponse(raw string) (*model.AarogyaResponse, error) {
	var resp model.AarogyaResponse
	if err := json.Unmarshal([]byte(stripFences(raw)), &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResponseUnparseable, err)
	}

	if len(resp.StructuredData.Medicines) == 0 {
		return nil, fmt.Errorf("%w: structured_data.medicines is missing or empty", ErrResponseUnparseable)
	}
	if resp.VoiceScriptEnglish == "" || resp.VoiceScriptNative == "" {
		return nil, fmt.Errorf("%w: voice scripts are missing", ErrResponseUnparseable)
	}
	for i := range resp.StructuredData.Interactions {
		sev := model.Severity(strings.ToUpper(string(resp.StructuredData.Interactions[i].Severity)))
		if !sev.Valid() {
			return nil, fmt.Errorf("%w: unknown interaction severity %q", ErrResponseUnparseable, resp.StructuredData.Interactions[i].Severity)
		}
		resp.StructuredData.Interactions[i].Severity = sev
	}

	return &resp, nil
}

// parsePillResponse parses and validates a pill identification response.
func parsePillResponse(raw string) (*model.PillAnalysisResult, error) {
	var result model.PillAnalysisResult
	if err := json.Unmarshal([]byte(stripFences(raw)), &result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResponseUnparseable, err)
	}

	result.MatchStatus = model.MatchStatus(strings.ToUpper(string(result.MatchStatus)))
	if !result.MatchStatus.Valid() {
		return nil, fmt.Errorf("%w: unknown match status %q", ErrResponseUnparseable, result.MatchStatus)
	}
	if result.VisualDescription == "" || result.Analysis == "" {
		return nil, fmt.Errorf("%w: required fields are missing", ErrResponseUnparseable)
	}

	return &result, nil
}

// stripFences removes the markdown code fences some models wrap around JSON.
func stripFences(raw string) string {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")
	return strings.TrimSpace(raw)
}

func dataURL(image []byte, mimeType string) string {
	if mimeType == "" {
		mimeType = "image/jpeg"
	}
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(image)
}
