package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/syssam/forma/version"
)

const versionColumns = `id, diagram_id, version_number, change_summary, tag, is_major, parent_version, created_by, snapshot, created_at`

// CreateVersion records v for its diagram. The store owns the version
// sequence: v.Number is assigned the next number for the diagram inside
// the insert transaction, whatever the caller set. A missing id and a
// zero creation time are filled in.
func (s *Store) CreateVersion(ctx context.Context, v *version.Version) error {
	if v.DiagramID == "" {
		return fmt.Errorf("store: create version: missing diagram id")
	}
	blob, err := encodeGraph(v.Graph)
	if err != nil {
		return err
	}
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	if v.CreatedAt.IsZero() {
		v.CreatedAt = time.Now().UTC()
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: create version: %w", err)
	}
	defer func() { _ = tx.Rollback() }()
	var next int
	err = tx.QueryRowContext(ctx,
		s.rebind(`SELECT COALESCE(MAX(version_number), 0) + 1 FROM versions WHERE diagram_id = ?`),
		v.DiagramID,
	).Scan(&next)
	if err != nil {
		return fmt.Errorf("store: next version of %s: %w", v.DiagramID, err)
	}
	v.Number = next
	_, err = tx.ExecContext(ctx,
		s.rebind(`INSERT INTO versions (`+versionColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		v.ID, v.DiagramID, v.Number, v.Summary, v.Tag, v.Major, nullString(v.ParentID), v.Author, blob, v.CreatedAt,
	)
	if err != nil {
		if isConflict(err) {
			return fmt.Errorf("version %d of diagram %s: %w", v.Number, v.DiagramID, ErrConflict)
		}
		return fmt.Errorf("store: create version: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("store: create version: %w", err)
	}
	return nil
}

// Version returns one numbered version of a diagram.
func (s *Store) Version(ctx context.Context, diagramID string, number int) (*version.Version, error) {
	v, err := scanVersion(s.db.QueryRowContext(ctx,
		s.rebind(`SELECT `+versionColumns+` FROM versions WHERE diagram_id = ? AND version_number = ?`),
		diagramID, number,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("version %d of diagram %s: %w", number, diagramID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("store: load version %d of %s: %w", number, diagramID, err)
	}
	return v, nil
}

// LatestVersion returns the newest version of a diagram.
func (s *Store) LatestVersion(ctx context.Context, diagramID string) (*version.Version, error) {
	v, err := scanVersion(s.db.QueryRowContext(ctx,
		s.rebind(`SELECT `+versionColumns+` FROM versions WHERE diagram_id = ? ORDER BY version_number DESC LIMIT 1`),
		diagramID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("diagram %s has no versions: %w", diagramID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("store: load latest version of %s: %w", diagramID, err)
	}
	return v, nil
}

// Versions returns the full history of a diagram, oldest first.
func (s *Store) Versions(ctx context.Context, diagramID string) ([]*version.Version, error) {
	rows, err := s.db.QueryContext(ctx,
		s.rebind(`SELECT `+versionColumns+` FROM versions WHERE diagram_id = ? ORDER BY version_number`),
		diagramID,
	)
	if err != nil {
		return nil, fmt.Errorf("store: load versions of %s: %w", diagramID, err)
	}
	defer rows.Close()
	var out []*version.Version
	for rows.Next() {
		v, err := scanVersion(rows)
		if err != nil {
			return nil, fmt.Errorf("store: load versions of %s: %w", diagramID, err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: load versions of %s: %w", diagramID, err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVersion(row rowScanner) (*version.Version, error) {
	var (
		v      version.Version
		parent sql.NullString
		blob   []byte
	)
	err := row.Scan(&v.ID, &v.DiagramID, &v.Number, &v.Summary, &v.Tag, &v.Major, &parent, &v.Author, &blob, &v.CreatedAt)
	if err != nil {
		return nil, err
	}
	if parent.Valid {
		v.ParentID = parent.String
	}
	g, err := decodeGraph(blob)
	if err != nil {
		return nil, err
	}
	v.Graph = g
	return &v, nil
}
