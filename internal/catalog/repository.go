package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"

	"league-watcher/internal/domain"
)

const versionKey = "data_version"

// Repository persists the fetched catalog in sqlite so restarts do not
// depend on the CDN being reachable.
type Repository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewRepository(db *sql.DB, logger zerolog.Logger) *Repository {
	return &Repository{db: db, logger: logger}
}

func (r *Repository) Version(ctx context.Context) (string, error) {
	var version string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM catalog_meta WHERE key = ?`, versionKey).Scan(&version)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read catalog version: %w", err)
	}
	return version, nil
}

func (r *Repository) Champions(ctx context.Context) ([]domain.Champion, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM champions ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to read champions: %w", err)
	}
	defer rows.Close()

	var champions []domain.Champion
	for rows.Next() {
		var champ domain.Champion
		if err := rows.Scan(&champ.ID, &champ.Name); err != nil {
			return nil, err
		}
		champions = append(champions, champ)
	}
	return champions, rows.Err()
}

func (r *Repository) SummonerSpells(ctx context.Context) ([]domain.SummonerSpell, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM summoner_spells ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to read summoner spells: %w", err)
	}
	defer rows.Close()

	var spells []domain.SummonerSpell
	for rows.Next() {
		var spell domain.SummonerSpell
		if err := rows.Scan(&spell.ID, &spell.Name); err != nil {
			return nil, err
		}
		spells = append(spells, spell)
	}
	return spells, rows.Err()
}

// Replace swaps the whole cached catalog for a new patch version in one
// transaction.
func (r *Repository) Replace(ctx context.Context, version string, champions []domain.Champion, spells []domain.SummonerSpell) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM champions`); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM summoner_spells`); err != nil {
		return err
	}

	for _, champ := range champions {
		if _, err := tx.ExecContext(ctx, `INSERT INTO champions (id, name) VALUES (?, ?)`, champ.ID, champ.Name); err != nil {
			return fmt.Errorf("failed to insert champion %d: %w", champ.ID, err)
		}
	}
	for _, spell := range spells {
		if _, err := tx.ExecContext(ctx, `INSERT INTO summoner_spells (id, name) VALUES (?, ?)`, spell.ID, spell.Name); err != nil {
			return fmt.Errorf("failed to insert summoner spell %d: %w", spell.ID, err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO catalog_meta (key, value) VALUES (?, ?)
		 ON CONFLICT (key) DO UPDATE SET value = excluded.value`,
		versionKey, version); err != nil {
		return fmt.Errorf("failed to store catalog version: %w", err)
	}

	r.logger.Info().
		Str("version", version).
		Int("champions", len(champions)).
		Int("spells", len(spells)).
		Msg("catalog cache replaced")

	return tx.Commit()
}
