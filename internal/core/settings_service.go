package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SettingsService reads and updates the single shop settings row. Get always
// succeeds; a missing or partially filled row comes back with placeholders
// applied so document composition never sees empty identity fields.
type SettingsService interface {
	GetSettings(ctx context.Context) (*ShopSettings, error)
	UpdateSettings(ctx context.Context, settings ShopSettings) (*ShopSettings, error)
}

type settingsService struct {
	pool *pgxpool.Pool
}

func NewSettingsService(pool *pgxpool.Pool) SettingsService {
	return &settingsService{pool: pool}
}

func (s *settingsService) GetSettings(ctx context.Context) (*ShopSettings, error) {
	var stored ShopSettings
	err := s.pool.QueryRow(ctx, `
		SELECT shop_name, address, phone, email, gstin, terms_and_conditions, authorized_signatory
		FROM shop_settings WHERE id = 1
	`).Scan(&stored.ShopName, &stored.Address, &stored.Phone, &stored.Email,
		&stored.GSTIN, &stored.TermsAndConditions, &stored.AuthorizedSignatory)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to fetch shop settings: %w", err)
	}
	settings := stored.Defaulted()
	return &settings, nil
}

func (s *settingsService) UpdateSettings(ctx context.Context, settings ShopSettings) (*ShopSettings, error) {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO shop_settings (id, shop_name, address, phone, email, gstin, terms_and_conditions, authorized_signatory)
		VALUES (1, $1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			shop_name = EXCLUDED.shop_name,
			address = EXCLUDED.address,
			phone = EXCLUDED.phone,
			email = EXCLUDED.email,
			gstin = EXCLUDED.gstin,
			terms_and_conditions = EXCLUDED.terms_and_conditions,
			authorized_signatory = EXCLUDED.authorized_signatory,
			updated_at = NOW()
	`, settings.ShopName, settings.Address, settings.Phone, settings.Email,
		settings.GSTIN, settings.TermsAndConditions, settings.AuthorizedSignatory)
	if err != nil {
		return nil, fmt.Errorf("failed to update shop settings: %w", err)
	}
	return s.GetSettings(ctx)
}
