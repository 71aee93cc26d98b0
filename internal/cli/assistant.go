// internal/cli/assistant.go
package studybot

import (
	"context"
	"fmt"
	"os"

	"github.com/mwiater/studybot/internal/appconfig"
	"github.com/mwiater/studybot/internal/assistant"
	"github.com/mwiater/studybot/internal/docs"
	"github.com/mwiater/studybot/internal/formula"
	"github.com/mwiater/studybot/internal/logging"
	"github.com/mwiater/studybot/internal/providers"
	"github.com/mwiater/studybot/internal/providers/llamacpp"
)

// buildAssistant wires the formula store, document extractor, and model
// client into an assistant. The model asset check and readiness handshake
// happen here, before any command loop runs; a failure is fatal to the
// invoking command.
func buildAssistant(ctx context.Context, cfg *appconfig.Config) (*assistant.Assistant, providers.ModelClient, error) {
	if cfg == nil {
		return nil, nil, fmt.Errorf("configuration is not initialized")
	}
	if err := cfg.ValidateForModel(); err != nil {
		return nil, nil, err
	}
	if _, err := os.Stat(cfg.ModelAssetPath()); err != nil {
		return nil, nil, fmt.Errorf("model asset %s is not available: %w", cfg.ModelAssetPath(), err)
	}

	client := llamacpp.New(cfg)
	if err := client.EnsureModelReady(ctx); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("model %s failed to load: %w", cfg.Model, err)
	}

	store := formula.NewStore(cfg.FormulaStorePath())
	if err := store.Load(); err != nil {
		// A store that cannot even persist its reset document is still
		// usable in memory for this run.
		logging.LogEvent("formula store unavailable on disk: %v", err)
	}

	extractor := docs.NewExtractor(cfg.DocumentsDirPath(), cfg.PageLimit())
	return assistant.New(store, extractor, client, cfg.PromptCharLimit()), client, nil
}
