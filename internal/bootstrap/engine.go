package bootstrap

import (
	"context"
	"log/slog"

	"github.com/eleven-am/stt-sidecar/internal/engine"
	"github.com/eleven-am/stt-sidecar/internal/session"
	"go.uber.org/fx"
)

func ProvideRecognizer(cfg *Config, log *slog.Logger) (engine.Recognizer, error) {
	rec, err := engine.NewSherpaRecognizer(engine.Config{
		Encoder:      cfg.EncoderPath,
		Decoder:      cfg.DecoderPath,
		Joiner:       cfg.JoinerPath,
		Tokens:       cfg.TokensPath,
		NumThreads:   cfg.NumThreads,
		SampleRate:   cfg.SampleRate,
		FeatureDim:   cfg.FeatureDim,
		ModelingUnit: cfg.ModelingUnit,
		BpeVocab:     cfg.BpeVocab,
	})
	if err != nil {
		return nil, err
	}
	log.Info("recognizer loaded",
		"encoder", cfg.EncoderPath,
		"sample_rate", cfg.SampleRate,
		"num_threads", cfg.NumThreads,
	)
	return rec, nil
}

func ProvideRegistry(rec engine.Recognizer) *session.Registry {
	return session.NewRegistry(rec)
}

func ProvideCoordinator(
	rec engine.Recognizer,
	reg *session.Registry,
	metrics *session.MetricsStore,
	archiver session.TranscriptArchiver,
	log *slog.Logger,
) *session.Coordinator {
	return session.NewCoordinator(rec, reg, metrics, archiver, log)
}

// WarmUpEngine pushes a second of silence through a throwaway stream so
// the first real request does not pay the model's lazy-init cost. Runs in
// the background; startup never blocks on it.
func WarmUpEngine(lc fx.Lifecycle, coord *session.Coordinator) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go coord.WarmUp(context.Background())
			return nil
		},
	})
}

func CloseRecognizer(lc fx.Lifecycle, rec engine.Recognizer) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			rec.Close()
			return nil
		},
	})
}

var EngineModule = fx.Options(
	fx.Provide(
		ProvideRecognizer,
		ProvideRegistry,
		ProvideCoordinator,
	),
	fx.Invoke(WarmUpEngine, CloseRecognizer),
)
