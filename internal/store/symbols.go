package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"skeyedit/internal/skey"
)

// family names the three tables one kind of symbol lives in. Skeys and
// spindles are stored the same way.
type family struct {
	noun         string
	items        string
	transactions string
	geometry     string
	fk           string
}

var (
	skeys    = family{"skey", "skeys", "transactions", "geometry", "skey_id"}
	spindles = family{"spindle", "spindles", "spindle_transactions", "spindle_geometry", "spindle_id"}
)

// Transaction is one recorded save of a symbol.
type Transaction struct {
	ID        int64
	User      string
	Action    string
	Timestamp time.Time
	Comment   string
	Session   string
}

const (
	ActionCreate = "create"
	ActionEdit   = "edit"
)

const symbolColumns = `id, name, skey_group_key, skey_subgroup_key, skey_description_key,
	spindle_skey, orientation, flow_arrow, dimensioned, tracing, insulation`

type scanner interface {
	Scan(dest ...any) error
}

func scanSymbol(s scanner) (int64, skey.Symbol, error) {
	var (
		id                             int64
		name                           string
		group, sub, desc, spindle      sql.NullString
		orient, flow, dim, trace, insu sql.NullInt64
	)
	if err := s.Scan(&id, &name, &group, &sub, &desc, &spindle, &orient, &flow, &dim, &trace, &insu); err != nil {
		return 0, skey.Symbol{}, err
	}
	return id, skey.Symbol{
		Name:        name,
		Group:       group.String,
		Subgroup:    sub.String,
		Description: desc.String,
		Spindle:     spindle.String,
		Orientation: skey.Orientation(orient.Int64),
		FlowArrow:   skey.TriState(flow.Int64),
		Dimensioned: skey.TriState(dim.Int64),
		Tracing:     skey.TriState(trace.Int64),
		Insulation:  skey.TriState(insu.Int64),
	}, nil
}

// ============================================================
// Skeys
// ============================================================

// LoadSymbol returns a symbol with the geometry of its latest save.
func (r *Repository) LoadSymbol(ctx context.Context, name string) (skey.Symbol, error) {
	return r.load(ctx, skeys, name)
}

// SaveSymbol validates sym and stores it with a new transaction. An empty
// name aborts the save with skey.ErrEmptyName.
func (r *Repository) SaveSymbol(ctx context.Context, sym skey.Symbol, comment string) (int64, error) {
	return r.save(ctx, skeys, sym, comment)
}

// DeleteSymbol removes a symbol with its whole history.
func (r *Repository) DeleteSymbol(ctx context.Context, name string) error {
	return r.delete(ctx, skeys, name)
}

// ListSymbols returns symbol metadata, without geometry, ordered by name.
func (r *Repository) ListSymbols(ctx context.Context) ([]skey.Symbol, error) {
	return r.list(ctx, skeys)
}

// History lists the saves of a symbol, oldest first.
func (r *Repository) History(ctx context.Context, name string) ([]Transaction, error) {
	id, err := r.lookup(ctx, r.db, skeys, name)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, `
        SELECT id, user, action, strftime('%Y-%m-%dT%H:%M:%SZ', timestamp), comment, session
        FROM transactions
        WHERE skey_id = ?
        ORDER BY id
    `, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Transaction
	for rows.Next() {
		var (
			t                 Transaction
			ts, comment, sess sql.NullString
		)
		if err := rows.Scan(&t.ID, &t.User, &t.Action, &ts, &comment, &sess); err != nil {
			return nil, err
		}
		t.Comment, t.Session = comment.String, sess.String
		if ts.Valid {
			t.Timestamp, _ = time.Parse(time.RFC3339, ts.String)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Catalog builds the browser tree from the stored symbols.
func (r *Repository) Catalog(ctx context.Context) (*skey.Catalog, error) {
	list, err := r.ListSymbols(ctx)
	if err != nil {
		return nil, err
	}
	return skey.CatalogOf(list), nil
}

// ============================================================
// Spindles
// ============================================================

func (r *Repository) SaveSpindle(ctx context.Context, sym skey.Symbol, comment string) (int64, error) {
	return r.save(ctx, spindles, sym, comment)
}

func (r *Repository) LoadSpindle(ctx context.Context, name string) (skey.Symbol, error) {
	return r.load(ctx, spindles, name)
}

// SpindleGeometry returns the latest geometry of a spindle, which is what
// gets stamped onto a spindle point.
func (r *Repository) SpindleGeometry(ctx context.Context, name string) ([]string, error) {
	id, err := r.lookup(ctx, r.db, spindles, name)
	if err != nil {
		return nil, err
	}
	return r.latestGeometry(ctx, spindles, id)
}

func (r *Repository) ListSpindles(ctx context.Context) ([]skey.Symbol, error) {
	return r.list(ctx, spindles)
}

// ============================================================
// Groups
// ============================================================

type Group struct {
	Key       string
	Subgroups []string
}

// Groups lists the known group keys with their subgroups, sorted.
func (r *Repository) Groups(ctx context.Context) ([]Group, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT g.skey_group_key, s.skey_subgroup_key
        FROM skey_groups g
        LEFT JOIN skey_subgroups s ON s.group_id = g.id
        ORDER BY g.skey_group_key, s.skey_subgroup_key
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Group
	for rows.Next() {
		var (
			key string
			sub sql.NullString
		)
		if err := rows.Scan(&key, &sub); err != nil {
			return nil, err
		}
		if len(out) == 0 || out[len(out)-1].Key != key {
			out = append(out, Group{Key: key})
		}
		if sub.Valid {
			g := &out[len(out)-1]
			g.Subgroups = append(g.Subgroups, sub.String)
		}
	}
	return out, rows.Err()
}

func ensureSubgroup(ctx context.Context, tx *sql.Tx, group, subgroup string) error {
	if _, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO skey_groups (skey_group_key) VALUES (?)`, group); err != nil {
		return fmt.Errorf("ensure group: %w", err)
	}
	var groupID int64
	if err := tx.QueryRowContext(ctx, `SELECT id FROM skey_groups WHERE skey_group_key = ?`, group).Scan(&groupID); err != nil {
		return fmt.Errorf("ensure group: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO skey_subgroups (group_id, skey_subgroup_key) VALUES (?, ?)`, groupID, subgroup); err != nil {
		return fmt.Errorf("ensure subgroup: %w", err)
	}
	return nil
}

// ============================================================
// Shared by skeys and spindles
// ============================================================

type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (r *Repository) lookup(ctx context.Context, q querier, f family, name string) (int64, error) {
	var id int64
	err := q.QueryRowContext(ctx, `SELECT id FROM `+f.items+` WHERE name = ?`, name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("%s %q: %w", f.noun, name, ErrNotFound)
	}
	return id, err
}

func (r *Repository) load(ctx context.Context, f family, name string) (skey.Symbol, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+symbolColumns+` FROM `+f.items+` WHERE name = ?`, name)
	id, sym, err := scanSymbol(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return skey.Symbol{}, fmt.Errorf("%s %q: %w", f.noun, name, ErrNotFound)
		}
		return skey.Symbol{}, err
	}
	if sym.Geometry, err = r.latestGeometry(ctx, f, id); err != nil {
		return skey.Symbol{}, err
	}
	return sym, nil
}

// latestGeometry reads the geometry rows of the newest transaction. A save
// with no geometry therefore clears the drawing.
func (r *Repository) latestGeometry(ctx context.Context, f family, id int64) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT data FROM `+f.geometry+`
        WHERE `+f.fk+` = ? AND transaction_id = (SELECT MAX(id) FROM `+f.transactions+` WHERE `+f.fk+` = ?)
        ORDER BY id
    `, id, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	geometry := []string{}
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		geometry = append(geometry, data)
	}
	return geometry, rows.Err()
}

func (r *Repository) save(ctx context.Context, f family, sym skey.Symbol, comment string) (int64, error) {
	if err := sym.Validate(); err != nil {
		return 0, err
	}
	sym.Name = strings.TrimSpace(sym.Name)
	sym.Group = skey.NormalizeKey(sym.Group)
	sym.Subgroup = skey.NormalizeKey(sym.Subgroup)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	if err := ensureSubgroup(ctx, tx, sym.Group, sym.Subgroup); err != nil {
		return 0, err
	}

	action := ActionEdit
	id, err := r.lookup(ctx, tx, f, sym.Name)
	switch {
	case errors.Is(err, ErrNotFound):
		action = ActionCreate
		res, err := tx.ExecContext(ctx, `
            INSERT INTO `+f.items+` (name, skey_group_key, skey_subgroup_key, skey_description_key,
                spindle_skey, orientation, flow_arrow, dimensioned, tracing, insulation)
            VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
        `, sym.Name, sym.Group, sym.Subgroup, sym.Description, sym.Spindle,
			int(sym.Orientation), int(sym.FlowArrow), int(sym.Dimensioned), int(sym.Tracing), int(sym.Insulation))
		if err != nil {
			return 0, fmt.Errorf("insert %s: %w", f.noun, err)
		}
		if id, err = res.LastInsertId(); err != nil {
			return 0, err
		}
	case err != nil:
		return 0, err
	default:
		_, err := tx.ExecContext(ctx, `
            UPDATE `+f.items+` SET skey_group_key = ?, skey_subgroup_key = ?, skey_description_key = ?,
                spindle_skey = ?, orientation = ?, flow_arrow = ?, dimensioned = ?, tracing = ?, insulation = ?
            WHERE id = ?
        `, sym.Group, sym.Subgroup, sym.Description, sym.Spindle,
			int(sym.Orientation), int(sym.FlowArrow), int(sym.Dimensioned), int(sym.Tracing), int(sym.Insulation), id)
		if err != nil {
			return 0, fmt.Errorf("update %s: %w", f.noun, err)
		}
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO `+f.transactions+` (`+f.fk+`, user, action, comment, session) VALUES (?, ?, ?, ?, ?)`,
		id, r.user, action, comment, r.session)
	if err != nil {
		return 0, fmt.Errorf("record transaction: %w", err)
	}
	txID, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	for _, g := range sym.Geometry {
		typ, _, _ := strings.Cut(g, ":")
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO `+f.geometry+` (`+f.fk+`, type, data, transaction_id) VALUES (?, ?, ?, ?)`,
			id, strings.TrimSpace(typ), g, txID); err != nil {
			return 0, fmt.Errorf("insert geometry: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *Repository) delete(ctx context.Context, f family, name string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	id, err := r.lookup(ctx, tx, f, name)
	if err != nil {
		return err
	}
	for _, q := range []string{
		`DELETE FROM ` + f.geometry + ` WHERE ` + f.fk + ` = ?`,
		`DELETE FROM ` + f.transactions + ` WHERE ` + f.fk + ` = ?`,
		`DELETE FROM ` + f.items + ` WHERE id = ?`,
	} {
		if _, err := tx.ExecContext(ctx, q, id); err != nil {
			return fmt.Errorf("delete %s: %w", f.noun, err)
		}
	}
	return tx.Commit()
}

func (r *Repository) list(ctx context.Context, f family) ([]skey.Symbol, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+symbolColumns+` FROM `+f.items+` ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []skey.Symbol
	for rows.Next() {
		_, sym, err := scanSymbol(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sym)
	}
	return out, rows.Err()
}
