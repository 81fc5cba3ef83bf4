package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/Dicklesworthstone/outline_viewer/pkg/model"
)

// SQLiteStore serves the store contract from a sqlite database, for
// outlines too large to index in memory. Reads only; the view layer never
// writes through it.
type SQLiteStore struct {
	db     *sql.DB
	filter Predicate
}

// OpenSQLite opens (or creates) an outline database at the given path.
func OpenSQLite(dbPath string, filter Predicate) (*SQLiteStore, error) {
	if filter == nil {
		filter = DefaultFilter
	}
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &SQLiteStore{db: db, filter: filter}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS thoughts (
		id TEXT PRIMARY KEY,
		parent_id TEXT NOT NULL DEFAULT '',
		value TEXT NOT NULL DEFAULT '',
		rank INTEGER NOT NULL DEFAULT 0,
		note TEXT NOT NULL DEFAULT '',
		created_at DATETIME,
		updated_at DATETIME
	);

	CREATE INDEX IF NOT EXISTS idx_thoughts_parent ON thoughts(parent_id, rank, created_at, id);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Import replaces the database contents with the given thoughts.
func (s *SQLiteStore) Import(thoughts []model.Thought) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin import: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM thoughts`); err != nil {
		return fmt.Errorf("clear thoughts: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO thoughts (id, parent_id, value, rank, note, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, t := range thoughts {
		if t.ID == "" || t.ID == model.RootID {
			continue
		}
		if _, err := stmt.Exec(string(t.ID), string(t.ParentID), t.Value, t.Rank, t.Note, t.CreatedAt, t.UpdatedAt); err != nil {
			return fmt.Errorf("insert thought %s: %w", t.ID, err)
		}
	}
	return tx.Commit()
}

// Root returns the document root ID.
func (s *SQLiteStore) Root() model.ThoughtID {
	return model.RootID
}

// Resolve looks up a thought by ID.
func (s *SQLiteStore) Resolve(id model.ThoughtID) (model.Thought, bool) {
	if id == model.RootID {
		return model.Thought{ID: model.RootID}, true
	}
	row := s.db.QueryRow(`
		SELECT id, parent_id, value, rank, note, created_at, updated_at
		FROM thoughts WHERE id = ?`, string(id))
	t, err := scanThought(row)
	if err != nil {
		return model.Thought{}, false
	}
	return t, true
}

// ChildrenSorted returns the visible children of a thought in display order.
// The root additionally adopts thoughts whose parent ID does not resolve, so
// a dangling reference cannot make a subtree unreachable.
func (s *SQLiteStore) ChildrenSorted(id model.ThoughtID) []model.Thought {
	var rows *sql.Rows
	var err error
	if id == model.RootID {
		rows, err = s.db.Query(`
			SELECT id, parent_id, value, rank, note, created_at, updated_at
			FROM thoughts
			WHERE parent_id = '' OR parent_id = ?
			   OR (parent_id != id AND parent_id NOT IN (SELECT id FROM thoughts))
			ORDER BY rank, created_at, id`, string(model.RootID))
	} else {
		rows, err = s.db.Query(`
			SELECT id, parent_id, value, rank, note, created_at, updated_at
			FROM thoughts
			WHERE parent_id = ? AND id != parent_id
			ORDER BY rank, created_at, id`, string(id))
	}
	if err != nil {
		return nil
	}
	defer rows.Close()

	var out []model.Thought
	for rows.Next() {
		t, err := scanThought(rows)
		if err != nil {
			continue // skip corrupt rows, never blank the outline
		}
		if !s.filter(t) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// HasVisibleChildren reports whether at least one child survives the filter.
func (s *SQLiteStore) HasVisibleChildren(id model.ThoughtID) bool {
	return len(s.ChildrenSorted(id)) > 0
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanThought(sc scanner) (model.Thought, error) {
	var t model.Thought
	var id, parent string
	var created, updated sql.NullTime
	if err := sc.Scan(&id, &parent, &t.Value, &t.Rank, &t.Note, &created, &updated); err != nil {
		return model.Thought{}, err
	}
	t.ID = model.ThoughtID(id)
	t.ParentID = model.ThoughtID(parent)
	if created.Valid {
		t.CreatedAt = created.Time
	}
	if updated.Valid {
		t.UpdatedAt = updated.Time
	}
	return t, nil
}
