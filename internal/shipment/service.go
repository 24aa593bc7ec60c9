package shipment

import (
	"context"
	"fmt"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=shipment
type Repository interface {
	ListShipments(ctx context.Context, filter Filter) ([]*Shipment, error)
	CreateShipment(ctx context.Context, s *Shipment) error
	UpdateShipment(ctx context.Context, s *Shipment) error
	DeleteShipment(ctx context.Context, id int64) error

	BeginImport(ctx context.Context) (ImportTx, error)
}

type ImportTx interface {
	FindExisting(ctx context.Context, codes []string) ([]*Shipment, error)
	CreateShipments(ctx context.Context, shipments []*Shipment) error
	Commit() error
	Rollback() error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, filter Filter) ([]*Shipment, error) {
	return s.repo.ListShipments(ctx, filter)
}

func (s *Service) Create(ctx context.Context, params Params) (*Shipment, error) {
	sh := params.toShipment()
	if err := s.repo.CreateShipment(ctx, sh); err != nil {
		return nil, err
	}

	return sh, nil
}

// Update replaces every field of the shipment identified by id.
func (s *Service) Update(ctx context.Context, id int64, params Params) (*Shipment, error) {
	sh := params.toShipment()
	sh.ID = id

	if err := s.repo.UpdateShipment(ctx, sh); err != nil {
		return nil, err
	}

	return sh, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.DeleteShipment(ctx, id)
}

type ImportResult struct {
	Imported  []*Shipment
	New       []Params
	Conflicts []Conflict
}

// Conflict pairs an incoming row with the stored shipment that already owns its code.
type Conflict struct {
	Incoming Params
	Existing *Shipment
}

// ImportBatch inserts all params atomically when none of their codes exist yet.
// Otherwise nothing is written and the result lists the conflicting rows next
// to the rows that could be created.
func (s *Service) ImportBatch(ctx context.Context, params []Params) (*ImportResult, error) {
	if len(params) == 0 {
		return &ImportResult{}, nil
	}

	itx, err := s.repo.BeginImport(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin import: %w", err)
	}
	defer itx.Rollback()

	codes := make([]string, len(params))
	for i, p := range params {
		codes[i] = p.Code
	}

	existing, err := itx.FindExisting(ctx, codes)
	if err != nil {
		return nil, fmt.Errorf("find existing: %w", err)
	}

	lookup := make(map[string]*Shipment, len(existing))
	for _, e := range existing {
		lookup[e.Code] = e
	}

	var newParams []Params

	var conflicts []Conflict

	for _, p := range params {
		if e, found := lookup[p.Code]; found {
			conflicts = append(conflicts, Conflict{Incoming: p, Existing: e})
			continue
		}

		newParams = append(newParams, p)
	}

	if len(conflicts) > 0 {
		return &ImportResult{New: newParams, Conflicts: conflicts}, nil
	}

	shipments := paramsToShipments(newParams)
	if err := itx.CreateShipments(ctx, shipments); err != nil {
		return nil, fmt.Errorf("create shipments: %w", err)
	}

	if err := itx.Commit(); err != nil {
		return nil, fmt.Errorf("commit import: %w", err)
	}

	return &ImportResult{Imported: shipments}, nil
}

// CreateBatch inserts all params in one transaction without conflict detection.
func (s *Service) CreateBatch(ctx context.Context, params []Params) ([]*Shipment, error) {
	if len(params) == 0 {
		return nil, nil
	}

	itx, err := s.repo.BeginImport(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin import: %w", err)
	}
	defer itx.Rollback()

	shipments := paramsToShipments(params)
	if err := itx.CreateShipments(ctx, shipments); err != nil {
		return nil, fmt.Errorf("create shipments: %w", err)
	}

	if err := itx.Commit(); err != nil {
		return nil, fmt.Errorf("commit import: %w", err)
	}

	return shipments, nil
}

func paramsToShipments(params []Params) []*Shipment {
	shipments := make([]*Shipment, len(params))
	for i, p := range params {
		shipments[i] = p.toShipment()
	}

	return shipments
}
