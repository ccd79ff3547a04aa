package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"healthkeeper/internal/models/db_models"
	"healthkeeper/internal/models/response_models"
	"healthkeeper/internal/repositories"
	"healthkeeper/pkg/utils"
)

type InsightServiceInterface interface {
	// GenerateInsights summarizes one patient's history through the
	// configured LLM provider. The API key stays server-side.
	GenerateInsights(ctx context.Context, userID, patientID string) (string, error)
	SearchRecords(ctx context.Context, userID, query string, limit int) ([]response_models.RecordSearchHit, error)
}

type InsightService struct {
	patients   repositories.PatientRepository
	embeddings repositories.RecordEmbeddingRepository
	llm        utils.InsightClientInterface   // nil when provider is off
	embedder   utils.EmbeddingClientInterface // nil when no Gemini key
}

func NewInsightService(patients repositories.PatientRepository, embeddings repositories.RecordEmbeddingRepository,
	llm utils.InsightClientInterface, embedder utils.EmbeddingClientInterface) InsightServiceInterface {
	return &InsightService{
		patients:   patients,
		embeddings: embeddings,
		llm:        llm,
		embedder:   embedder,
	}
}

func (s *InsightService) GenerateInsights(ctx context.Context, userID, patientID string) (string, error) {
	if s.llm == nil {
		return "", utils.ErrInsightsUnavailable
	}

	patient, err := s.patients.FindByID(ctx, userID, patientID)
	if err != nil {
		return "", utils.ErrDatabaseError
	}
	if patient == nil || !patient.IsActive {
		return "", utils.ErrPatientNotFound
	}

	insights, err := s.llm.GenerateInsights(ctx, buildInsightPrompt(patient))
	if err != nil {
		log.Error().Err(err).Str("patient_id", patientID).Msg("insight generation failed")
		return "", utils.ErrInsightsUnavailable
	}
	return insights, nil
}

func (s *InsightService) SearchRecords(ctx context.Context, userID, query string, limit int) ([]response_models.RecordSearchHit, error) {
	if s.embedder == nil {
		return nil, utils.ErrInsightsUnavailable
	}

	vector, err := s.embedder.EmbedText(ctx, query)
	if err != nil {
		return nil, utils.ErrInsightsUnavailable
	}

	results, err := s.embeddings.SearchByVector(ctx, userID, vector, limit)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	hits := make([]response_models.RecordSearchHit, 0, len(results))
	for _, r := range results {
		hits = append(hits, response_models.RecordSearchHit{
			RecordID:  r.RecordID,
			PatientID: r.PatientID,
			Summary:   r.Summary,
			Distance:  r.Distance,
		})
	}
	return hits, nil
}

// IndexRecord satisfies RecordIndexer; embedding failures only cost search
// coverage, never the write that triggered them.
func (s *InsightService) IndexRecord(ctx context.Context, userID string, record *db_models.MedicalRecord) {
	if s.embedder == nil {
		return
	}

	summary := recordSummary(record)
	vector, err := s.embedder.EmbedText(ctx, summary)
	if err != nil {
		log.Debug().Err(err).Str("record_id", record.ID.String()).Msg("record embedding failed")
		return
	}

	err = s.embeddings.Upsert(ctx, &db_models.RecordEmbedding{
		RecordID:  record.ID.String(),
		PatientID: record.PatientID.String(),
		UserID:    userID,
		Summary:   summary,
		Embedding: vector,
	})
	if err != nil {
		log.Debug().Err(err).Str("record_id", record.ID.String()).Msg("record embedding write failed")
	}
}

func (s *InsightService) RemoveRecord(ctx context.Context, recordID string) {
	if err := s.embeddings.DeleteByRecord(ctx, recordID); err != nil {
		log.Debug().Err(err).Str("record_id", recordID).Msg("record embedding delete failed")
	}
}

func buildInsightPrompt(patient *db_models.Patient) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Summarize the health history below and point out patterns worth discussing with a doctor. Patient: %s", patient.Name)
	if patient.DateOfBirth != "" {
		fmt.Fprintf(&b, ", born %s", patient.DateOfBirth)
	}
	if len(patient.Allergies) > 0 {
		fmt.Fprintf(&b, ". Allergies: %s", strings.Join(patient.Allergies, ", "))
	}
	b.WriteString(".\n")

	for _, r := range patient.Records {
		fmt.Fprintf(&b, "- %s: %s", r.Date, r.Diagnosis)
		if r.Prescription != "" {
			fmt.Fprintf(&b, " (prescribed %s)", r.Prescription)
		}
		b.WriteString("\n")
	}
	for _, m := range patient.Medications {
		fmt.Fprintf(&b, "- taking %s %s %s\n", m.Name, m.Dosage, m.Frequency)
	}
	return b.String()
}

func recordSummary(record *db_models.MedicalRecord) string {
	parts := []string{record.Date}
	for _, p := range []string{record.Complaint, record.Diagnosis, record.Prescription, record.Notes} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ". ")
}
