package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PartyService manages the customer/vendor master.
type PartyService interface {
	CreateParty(ctx context.Context, name, phone, address string, partyType PartyType, gstin, notes string) (*Party, error)
	GetParty(ctx context.Context, partyID string) (*Party, error)
	GetParties(ctx context.Context, partyType *PartyType) ([]Party, error)
}

type partyService struct {
	pool *pgxpool.Pool
}

func NewPartyService(pool *pgxpool.Pool) PartyService {
	return &partyService{pool: pool}
}

func (s *partyService) CreateParty(ctx context.Context, name, phone, address string, partyType PartyType, gstin, notes string) (*Party, error) {
	if name == "" {
		return nil, &ValidationError{Field: "name", Message: "party name is required"}
	}
	if partyType != PartyCustomer && partyType != PartyVendor {
		return nil, &ValidationError{Field: "party_type", Message: fmt.Sprintf("must be %q or %q", PartyCustomer, PartyVendor)}
	}

	var p Party
	err := s.pool.QueryRow(ctx, `
		INSERT INTO parties (id, name, phone, address, party_type, gstin, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, name, phone, address, party_type, gstin, notes, created_at
	`, uuid.NewString(), name, phone, address, string(partyType), gstin, notes).Scan(
		&p.ID, &p.Name, &p.Phone, &p.Address, &p.PartyType, &p.GSTIN, &p.Notes, &p.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create party: %w", err)
	}
	return &p, nil
}

func (s *partyService) GetParty(ctx context.Context, partyID string) (*Party, error) {
	var p Party
	err := s.pool.QueryRow(ctx, `
		SELECT id, name, phone, address, party_type, gstin, notes, created_at
		FROM parties WHERE id = $1
	`, partyID).Scan(
		&p.ID, &p.Name, &p.Phone, &p.Address, &p.PartyType, &p.GSTIN, &p.Notes, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("party %s not found", partyID)
		}
		return nil, fmt.Errorf("failed to fetch party %s: %w", partyID, err)
	}
	return &p, nil
}

func (s *partyService) GetParties(ctx context.Context, partyType *PartyType) ([]Party, error) {
	query := `
		SELECT id, name, phone, address, party_type, gstin, notes, created_at
		FROM parties
	`
	var args []any
	if partyType != nil {
		query += " WHERE party_type = $1"
		args = append(args, string(*partyType))
	}
	query += " ORDER BY name"

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query parties: %w", err)
	}
	defer rows.Close()

	var parties []Party
	for rows.Next() {
		var p Party
		if err := rows.Scan(&p.ID, &p.Name, &p.Phone, &p.Address, &p.PartyType, &p.GSTIN, &p.Notes, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan party: %w", err)
		}
		parties = append(parties, p)
	}
	return parties, rows.Err()
}
