package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"finledger/internal/core"

	_ "modernc.org/sqlite"
)

// SQLite mirrors the ledger snapshot into a relational archive. Save replaces
// the whole snapshot transactionally; positions preserve insertion order.
type SQLite struct {
	db *sql.DB
}

func NewSQLite(dbPath string) (*SQLite, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLite{db: db}, nil
}

func (s *SQLite) Load(ctx context.Context) (core.Snapshot, error) {
	var snap core.Snapshot

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, size, type, status, progress, uploaded_at, extracted_data
		FROM statements ORDER BY position`)
	if err != nil {
		return snap, fmt.Errorf("query statements: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var st core.Statement
		var extracted sql.NullString
		if err := rows.Scan(&st.ID, &st.Name, &st.Size, &st.Type,
			&st.Status, &st.Progress, &st.UploadedAt, &extracted); err != nil {
			return snap, fmt.Errorf("scan statement: %w", err)
		}
		if extracted.Valid {
			var summary core.ExtractedSummary
			if err := json.Unmarshal([]byte(extracted.String), &summary); err != nil {
				return snap, fmt.Errorf("decode extracted data for %s: %w", st.ID, err)
			}
			st.ExtractedData = &summary
		}
		snap.Statements = append(snap.Statements, st)
	}
	if err := rows.Err(); err != nil {
		return snap, fmt.Errorf("iterate statements: %w", err)
	}

	txRows, err := s.db.QueryContext(ctx, `
		SELECT id, date, description, amount, type, category, source
		FROM transactions ORDER BY position`)
	if err != nil {
		return snap, fmt.Errorf("query transactions: %w", err)
	}
	defer txRows.Close()
	for txRows.Next() {
		var tx core.Transaction
		if err := txRows.Scan(&tx.ID, &tx.Date, &tx.Description, &tx.Amount,
			&tx.Type, &tx.Category, &tx.Source); err != nil {
			return snap, fmt.Errorf("scan transaction: %w", err)
		}
		snap.Transactions = append(snap.Transactions, tx)
	}
	if err := txRows.Err(); err != nil {
		return snap, fmt.Errorf("iterate transactions: %w", err)
	}

	return snap, nil
}

func (s *SQLite) Save(ctx context.Context, snap core.Snapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM statements`); err != nil {
		return fmt.Errorf("clear statements: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM transactions`); err != nil {
		return fmt.Errorf("clear transactions: %w", err)
	}

	for i, st := range snap.Statements {
		var extracted sql.NullString
		if st.ExtractedData != nil {
			raw, err := json.Marshal(st.ExtractedData)
			if err != nil {
				return fmt.Errorf("encode extracted data for %s: %w", st.ID, err)
			}
			extracted = sql.NullString{String: string(raw), Valid: true}
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO statements (id, name, size, type, status, progress, uploaded_at, extracted_data, position)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			st.ID, st.Name, st.Size, st.Type, st.Status, st.Progress,
			st.UploadedAt, extracted, i); err != nil {
			return fmt.Errorf("insert statement %s: %w", st.ID, err)
		}
	}

	for i, t := range snap.Transactions {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO transactions (id, date, description, amount, type, category, source, position)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			t.ID, t.Date, t.Description, t.Amount, t.Type, t.Category,
			t.Source, i); err != nil {
			return fmt.Errorf("insert transaction %s: %w", t.ID, err)
		}
	}

	return tx.Commit()
}

func (s *SQLite) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
