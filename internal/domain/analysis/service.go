package analysis

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/labsense/labsense/internal/domain/benchmark"
	"github.com/labsense/labsense/internal/domain/client"
	"github.com/labsense/labsense/internal/platform/extraction"
)

// DocumentText is one raw document to be sent through the extraction service.
type DocumentText struct {
	SourceID string `json:"source_id"`
	Text     string `json:"text"`
}

// AnalyzeRequest carries one upload batch. Either raw document texts for the
// extractor or pre-extracted per-document inputs; when both are present the
// pre-extracted inputs win and the texts are ignored.
type AnalyzeRequest struct {
	Documents []DocumentText  `json:"documents,omitempty"`
	Extracted []DocumentInput `json:"extracted,omitempty"`
	// AutoCreateClient materializes a new client record when the resolver
	// decides create-new without needing confirmation.
	AutoCreateClient bool `json:"auto_create_client,omitempty"`
}

// Service runs the full analysis pipeline: extract, consolidate, match
// against the taxonomy snapshot, resolve the client identity, persist.
type Service struct {
	extractor  extraction.Extractor
	benchmarks *benchmark.Service
	clients    *client.Service
	repo       RunRepository
	log        zerolog.Logger
}

func NewService(extractor extraction.Extractor, benchmarks *benchmark.Service, clients *client.Service, repo RunRepository, log zerolog.Logger) *Service {
	return &Service{
		extractor:  extractor,
		benchmarks: benchmarks,
		clients:    clients,
		repo:       repo,
		log:        log,
	}
}

func (s *Service) extractDocuments(ctx context.Context, req AnalyzeRequest) ([]DocumentInput, error) {
	if len(req.Extracted) > 0 {
		return req.Extracted, nil
	}
	docs := make([]DocumentInput, 0, len(req.Documents))
	for i, doc := range req.Documents {
		ext, err := s.extractor.Extract(ctx, doc.Text)
		if err != nil {
			return nil, fmt.Errorf("extract document %d: %w", i, err)
		}
		sourceID := doc.SourceID
		if sourceID == "" {
			sourceID = fmt.Sprintf("document-%d", i+1)
		}
		docs = append(docs, DocumentInput{
			SourceID: sourceID,
			Identity: ext.Patient,
			Readings: ext.Readings,
		})
	}
	return docs, nil
}

// sexForMatching maps the consolidated (nullable) sex onto the range-selection
// enum. Unknown sex evaluates against the default ranges.
func sexForMatching(identity ConsolidatedIdentity) benchmark.Sex {
	if identity.Sex == nil {
		return benchmark.SexOther
	}
	sex, err := benchmark.ParseSex(*identity.Sex)
	if err != nil {
		return benchmark.SexOther
	}
	return sex
}

// Analyze runs one batch end to end and persists the run. The taxonomy is
// frozen into a snapshot before the first reading is resolved, so override
// edits mid-run cannot produce mixed results.
func (s *Service) Analyze(ctx context.Context, tenantID string, req AnalyzeRequest) (*Run, error) {
	if len(req.Documents) == 0 && len(req.Extracted) == 0 {
		return nil, fmt.Errorf("at least one document is required")
	}

	docs, err := s.extractDocuments(ctx, req)
	if err != nil {
		return nil, err
	}

	snap, err := s.benchmarks.SnapshotFor(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("load taxonomy: %w", err)
	}

	cons, err := Consolidate(snap, docs)
	if err != nil {
		return nil, err
	}

	groups, err := MatchGroups(snap, sexForMatching(cons.Identity), cons.Groups)
	if err != nil {
		return nil, err
	}

	identity := client.Identity{
		Name:        cons.Identity.Name,
		DateOfBirth: cons.Identity.DateOfBirth,
		Sex:         cons.Identity.Sex,
	}
	decision, err := s.clients.ResolveIdentity(ctx, tenantID, identity)
	if err != nil {
		return nil, fmt.Errorf("resolve client identity: %w", err)
	}

	run := &Run{
		TenantID:      tenantID,
		Identity:      cons.Identity,
		Discrepancies: cons.Discrepancies,
		Tier:          cons.Tier,
		Groups:        groups,
		Decision:      decision,
	}
	run.ClientID = decision.ClientID

	if req.AutoCreateClient && decision.Action == client.ActionCreateNew && !decision.RequiresConfirmation {
		rec, err := s.clients.CreateFromIdentity(ctx, tenantID, identity)
		if err != nil {
			return nil, fmt.Errorf("create client record: %w", err)
		}
		id := rec.ID
		run.ClientID = &id
	}

	if err := s.repo.Insert(ctx, run); err != nil {
		return nil, fmt.Errorf("persist analysis run: %w", err)
	}

	s.log.Info().
		Str("tenant_id", tenantID).
		Str("run_id", run.ID.String()).
		Int("documents", len(docs)).
		Int("date_groups", len(groups)).
		Int("discrepancies", len(run.Discrepancies)).
		Str("confidence", string(run.Tier)).
		Str("client_action", string(decision.Action)).
		Msg("analysis run completed")

	return run, nil
}

// Get returns one stored run.
func (s *Service) Get(ctx context.Context, tenantID string, id uuid.UUID) (*Run, error) {
	return s.repo.Get(ctx, tenantID, id)
}

// List returns stored runs, optionally filtered by client.
func (s *Service) List(ctx context.Context, tenantID, clientID string, limit, offset int) ([]*Run, int, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.List(ctx, tenantID, clientID, limit, offset)
}
