package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"gopkg.in/yaml.v3"

	"auth-gateway/app/domain"
)

type tenantSeed struct {
	Name       string `yaml:"name"`
	Identifier string `yaml:"identifier"`
	IDPAlias   string `yaml:"idp_alias"`
}

type seedFile struct {
	Tenants []tenantSeed `yaml:"tenants"`
}

// seedTenants inserts the tenant directory from the embedded YAML file.
// Seeding is idempotent: an identifier that already exists is left alone,
// so re-running it never clobbers operator changes.
func seedTenants(db *sql.DB, raw []byte, logger *slog.Logger) error {
	var file seedFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return fmt.Errorf("failed to parse tenant seed file: %w", err)
	}

	if len(file.Tenants) == 0 {
		return fmt.Errorf("tenant seed file contains no tenants")
	}

	query := `
		INSERT INTO tenants (id, name, identifier, idp_alias, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (identifier) DO NOTHING`

	for _, seed := range file.Tenants {
		tenant, err := domain.NewTenant(seed.Name, seed.Identifier, seed.IDPAlias)
		if err != nil {
			return fmt.Errorf("invalid seed tenant %q: %w", seed.Identifier, err)
		}

		result, err := db.Exec(query,
			tenant.ID,
			tenant.Name,
			tenant.Identifier,
			tenant.IDPAlias,
			tenant.Status,
			tenant.CreatedAt,
			tenant.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to seed tenant %q: %w", seed.Identifier, err)
		}

		if rows, _ := result.RowsAffected(); rows == 0 {
			logger.Info("tenant already present, skipped", "identifier", tenant.Identifier)
		} else {
			logger.Info("tenant seeded", "identifier", tenant.Identifier, "tenant_id", tenant.ID)
		}
	}

	return nil
}
