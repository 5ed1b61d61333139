// Package suggest asks an external text-completion service for a remediation
// hint after a failed run. The external service is treated as unreliable:
// every failure mode is absorbed locally and replaced with a fixed localized
// apology, so callers never see an error from this package.
package suggest

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/akarim/code-notebook/internal/model"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gpt-4.1-nano"

// maxSuggestionTokens bounds the length of a single suggestion.
const maxSuggestionTokens = 300

// ChatCompleter is the slice of the completion client the generator needs.
// Tests substitute a double; production wires *Client.
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, req *ChatCompletionRequest) (*ChatCompletionResponse, error)
}

var _ ChatCompleter = (*Client)(nil)

// Prompt templates embed the submitted code and the error verbatim.
const promptArabic = `أنت مساعد برمجة ذكي. الكود التالي يحتوي على خطأ:

الكود:
%s

الخطأ:
%s

قدم اقتراحاً لحل هذا الخطأ باللغة العربية بشكل واضح ومفصل.`

const promptFrench = `Vous êtes un assistant de programmation intelligent. Le code suivant contient une erreur:

Code:
%s

Erreur:
%s

Fournissez une suggestion pour résoudre cette erreur en français de manière claire et détaillée.`

// Fixed apology strings returned when the completion call fails.
const (
	fallbackArabic = "عذراً، لا يمكنني تقديم اقتراح في الوقت الحالي"
	fallbackFrench = "Désolé, je ne peux pas fournir de suggestion pour le moment"
)

// Generator produces localized fix suggestions for failed runs.
type Generator struct {
	completer ChatCompleter
	model     string
	logger    *slog.Logger
}

// NewGenerator creates a Generator. An empty model falls back to
// DefaultModel.
func NewGenerator(completer ChatCompleter, model string, logger *slog.Logger) *Generator {
	if model == "" {
		model = DefaultModel
	}
	return &Generator{
		completer: completer,
		model:     model,
		logger:    logger,
	}
}

// Suggest returns a remediation hint for the given code and error, written
// in the requested locale. It never returns an error: if the completion call
// fails or comes back empty, the locale's fallback string is returned
// instead. The failure is logged with its cause for observability.
func (g *Generator) Suggest(ctx context.Context, code, errText string, locale model.Locale) string {
	resp, err := g.completer.CreateChatCompletion(ctx, &ChatCompletionRequest{
		Model: g.model,
		Messages: []ChatMessage{
			{Role: "user", Content: buildPrompt(code, errText, locale)},
		},
		MaxTokens: maxSuggestionTokens,
	})
	if err != nil {
		g.logger.Warn("suggestion call failed, using fallback",
			slog.String("locale", string(locale)),
			slog.String("error", err.Error()),
		)
		return Fallback(locale)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message == nil || resp.Choices[0].Message.Content == "" {
		g.logger.Warn("suggestion response had no content, using fallback",
			slog.String("locale", string(locale)),
		)
		return Fallback(locale)
	}

	return resp.Choices[0].Message.Content
}

// buildPrompt fills the locale's template with the code and error verbatim.
func buildPrompt(code, errText string, locale model.Locale) string {
	if locale == model.LocaleArabic {
		return fmt.Sprintf(promptArabic, code, errText)
	}
	return fmt.Sprintf(promptFrench, code, errText)
}

// Fallback returns the fixed apology string for the given locale.
func Fallback(locale model.Locale) string {
	if locale == model.LocaleArabic {
		return fallbackArabic
	}
	return fallbackFrench
}
