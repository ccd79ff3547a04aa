package insight_fx

import (
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"healthkeeper/internal/infra"
	"healthkeeper/internal/repositories"
	"healthkeeper/internal/services"
	"healthkeeper/pkg/utils"
)

var Module = fx.Provide(
	provideEmbeddingRepo, provideLLMClient, provideEmbeddingClient,
	provideInsightService, provideRecordIndexer)

func provideEmbeddingRepo(db *gorm.DB) repositories.RecordEmbeddingRepository {
	return repositories.NewRecordEmbeddingRepository(db)
}

// provideLLMClient picks the text-generation backend from config; a nil
// client means the insight endpoints answer 503.
func provideLLMClient(cfg *infra.Config) utils.InsightClientInterface {
	switch cfg.InsightsProvider {
	case "gemini":
		client, err := utils.NewGeminiClient(cfg.GeminiAPIKey, "")
		if err != nil {
			log.Warn().Err(err).Msg("gemini client unavailable, insights disabled")
			return nil
		}
		return client
	case "openai":
		return utils.NewOpenAIClient(cfg.OpenAIAPIKey, "")
	default:
		return nil
	}
}

// provideEmbeddingClient is Gemini-only; record search needs its embedding
// dimension to match the record_embeddings column.
func provideEmbeddingClient(cfg *infra.Config) utils.EmbeddingClientInterface {
	if cfg.GeminiAPIKey == "" {
		return nil
	}
	client, err := utils.NewGeminiClient(cfg.GeminiAPIKey, "")
	if err != nil {
		log.Warn().Err(err).Msg("gemini client unavailable, record search disabled")
		return nil
	}
	return client
}

func provideInsightService(patients repositories.PatientRepository, embeddings repositories.RecordEmbeddingRepository,
	llm utils.InsightClientInterface, embedder utils.EmbeddingClientInterface) services.InsightServiceInterface {
	return services.NewInsightService(patients, embeddings, llm, embedder)
}

func provideRecordIndexer(insightService services.InsightServiceInterface) services.RecordIndexer {
	return insightService.(services.RecordIndexer)
}
