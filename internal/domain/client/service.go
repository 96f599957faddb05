package client

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// candidatePoolLimit bounds how many records a name search feeds into the
// resolver.
const candidatePoolLimit = 50

// Service implements client record management and identity resolution.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func validateRecord(rec *Record) error {
	rec.Name = strings.TrimSpace(rec.Name)
	if rec.Name == "" {
		return fmt.Errorf("name is required")
	}
	if rec.BirthDate != nil {
		if _, err := time.Parse("2006-01-02", *rec.BirthDate); err != nil {
			return fmt.Errorf("birth_date must be YYYY-MM-DD")
		}
	}
	if rec.Sex != nil {
		switch *rec.Sex {
		case "male", "female", "other":
		default:
			return fmt.Errorf("sex must be male, female or other")
		}
	}
	return nil
}

func (s *Service) Create(ctx context.Context, tenantID string, rec *Record) error {
	rec.TenantID = tenantID
	rec.Status = StatusActive
	if err := validateRecord(rec); err != nil {
		return err
	}
	return s.repo.Create(ctx, rec)
}

func (s *Service) Get(ctx context.Context, tenantID string, id uuid.UUID) (*Record, error) {
	return s.repo.Get(ctx, tenantID, id)
}

func (s *Service) Update(ctx context.Context, tenantID string, rec *Record) error {
	rec.TenantID = tenantID
	if err := validateRecord(rec); err != nil {
		return err
	}
	return s.repo.Update(ctx, rec)
}

func (s *Service) Archive(ctx context.Context, tenantID string, id uuid.UUID) error {
	return s.repo.Archive(ctx, tenantID, id)
}

func (s *Service) List(ctx context.Context, tenantID string, limit, offset int) ([]*Record, int, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.List(ctx, tenantID, limit, offset)
}

func (s *Service) SearchByName(ctx context.Context, tenantID, name string, limit int) ([]*Record, error) {
	if limit <= 0 || limit > candidatePoolLimit {
		limit = candidatePoolLimit
	}
	return s.repo.SearchByName(ctx, tenantID, name, limit)
}

// ResolveIdentity bounds the candidate pool with a name search and scores the
// consolidated identity against it. An identity with no name skips the search
// and resolves against an empty pool, which always decides create-new.
func (s *Service) ResolveIdentity(ctx context.Context, tenantID string, identity Identity) (*MatchDecision, error) {
	var pool []*Record
	if identity.Name != nil && strings.TrimSpace(*identity.Name) != "" {
		var err error
		pool, err = s.repo.SearchByName(ctx, tenantID, *identity.Name, candidatePoolLimit)
		if err != nil {
			return nil, err
		}
	}
	return Resolve(identity, pool)
}

// CreateFromIdentity materializes a new client record from a consolidated
// identity after a create-new decision.
func (s *Service) CreateFromIdentity(ctx context.Context, tenantID string, identity Identity) (*Record, error) {
	rec := &Record{Status: StatusActive}
	if identity.Name != nil {
		rec.Name = *identity.Name
	}
	if rec.Name == "" {
		rec.Name = "Unknown Patient"
	}
	rec.BirthDate = identity.DateOfBirth
	rec.Sex = identity.Sex
	if err := s.Create(ctx, tenantID, rec); err != nil {
		return nil, err
	}
	return rec, nil
}
