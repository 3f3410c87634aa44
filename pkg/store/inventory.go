// pkg/store/inventory.go
package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/arc-language/barrel/pkg/core"
)

// Replace discards the current inventory and writes pkgs as the new one.
// Rows without an ID get a fresh UUID. Delete, insert and commit run in a
// single transaction; on any error the previous inventory is left intact.
func (s *Store) Replace(ctx context.Context, pkgs []core.InstalledPackage) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("replace inventory: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	if _, err := tx.ExecContext(ctx, `DELETE FROM installed_packages`); err != nil {
		return fmt.Errorf("replace inventory: delete: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO installed_packages (id, name, version, kind)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("replace inventory: prepare: %w", err)
	}
	defer stmt.Close()

	for _, p := range pkgs {
		id := p.ID
		if id == "" {
			id = uuid.NewString()
		}
		if _, err := stmt.ExecContext(ctx, id, p.Name, p.Version, string(p.Kind)); err != nil {
			return fmt.Errorf("replace inventory: insert %s %s: %w", p.Kind, p.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("replace inventory: commit: %w", err)
	}

	return nil
}

// List returns the inventory sorted by name, then version.
func (s *Store) List(ctx context.Context) ([]core.InstalledPackage, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, version, kind
		FROM installed_packages
		ORDER BY name, version, kind
	`)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	defer rows.Close()

	var pkgs []core.InstalledPackage
	for rows.Next() {
		var p core.InstalledPackage
		var kind string
		if err := rows.Scan(&p.ID, &p.Name, &p.Version, &kind); err != nil {
			return nil, fmt.Errorf("list inventory: scan: %w", err)
		}
		p.Kind = core.Kind(kind)
		pkgs = append(pkgs, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}

	return pkgs, nil
}

// Get returns the inventory row for name and kind.
func (s *Store) Get(ctx context.Context, name string, kind core.Kind) (core.InstalledPackage, bool, error) {
	p := core.InstalledPackage{Kind: kind}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, version
		FROM installed_packages
		WHERE name = ? AND kind = ?
	`, name, string(kind)).Scan(&p.ID, &p.Name, &p.Version)
	if err == sql.ErrNoRows {
		return core.InstalledPackage{}, false, nil
	}
	if err != nil {
		return core.InstalledPackage{}, false, fmt.Errorf("get %s %s: %w", kind, name, err)
	}
	return p, true, nil
}
