package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/syssam/forma/diagram"
)

// DiagramInfo is the listing row for a stored diagram.
type DiagramInfo struct {
	ID        string              `json:"id"`
	Name      string              `json:"name"`
	Kind      diagram.DiagramKind `json:"kind"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// SaveGraph stores g as the current graph of its diagram, inserting or
// updating by g.ID.
func (s *Store) SaveGraph(ctx context.Context, g *diagram.Graph) error {
	if g.ID == "" {
		return fmt.Errorf("store: save graph: missing diagram id")
	}
	blob, err := encodeGraph(g)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		s.rebind(`UPDATE diagrams SET name = ?, kind = ?, snapshot = ?, updated_at = ? WHERE id = ?`),
		g.Name, string(g.Kind), blob, now, g.ID,
	)
	if err != nil {
		return fmt.Errorf("store: save graph %s: %w", g.ID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n > 0 {
		return nil
	}
	_, err = s.db.ExecContext(ctx,
		s.rebind(`INSERT INTO diagrams (id, name, kind, snapshot, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`),
		g.ID, g.Name, string(g.Kind), blob, now, now,
	)
	if err != nil {
		return fmt.Errorf("store: save graph %s: %w", g.ID, err)
	}
	return nil
}

// Graph returns the current graph of a diagram.
func (s *Store) Graph(ctx context.Context, diagramID string) (*diagram.Graph, error) {
	var blob []byte
	err := s.db.QueryRowContext(ctx,
		s.rebind(`SELECT snapshot FROM diagrams WHERE id = ?`),
		diagramID,
	).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("diagram %s: %w", diagramID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("store: load graph %s: %w", diagramID, err)
	}
	return decodeGraph(blob)
}

// Diagrams lists stored diagrams by name.
func (s *Store) Diagrams(ctx context.Context) ([]*DiagramInfo, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, kind, created_at, updated_at FROM diagrams ORDER BY name`,
	)
	if err != nil {
		return nil, fmt.Errorf("store: list diagrams: %w", err)
	}
	defer rows.Close()
	var out []*DiagramInfo
	for rows.Next() {
		var (
			d    DiagramInfo
			kind string
		)
		if err := rows.Scan(&d.ID, &d.Name, &kind, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("store: list diagrams: %w", err)
		}
		d.Kind = diagram.DiagramKind(kind)
		out = append(out, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: list diagrams: %w", err)
	}
	return out, nil
}

// DeleteDiagram removes a diagram and every version recorded for it.
func (s *Store) DeleteDiagram(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: delete diagram %s: %w", id, err)
	}
	defer func() { _ = tx.Rollback() }()
	if _, err := tx.ExecContext(ctx, s.rebind(`DELETE FROM versions WHERE diagram_id = ?`), id); err != nil {
		return fmt.Errorf("store: delete diagram %s: %w", id, err)
	}
	res, err := tx.ExecContext(ctx, s.rebind(`DELETE FROM diagrams WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("store: delete diagram %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("diagram %s: %w", id, ErrNotFound)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("store: delete diagram %s: %w", id, err)
	}
	return nil
}
