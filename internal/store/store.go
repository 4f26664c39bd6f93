// Package store persists questions and users in sqlite. The validation
// engine only reads question records; writes happen at seed time and via
// the admin endpoints.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/testepapers/test-e-portal-api-service/internal/model"

	_ "modernc.org/sqlite"
)

// ErrQuestionNotFound is returned when a question id does not exist.
var ErrQuestionNotFound = errors.New("question not found")

type Store struct {
	db *sql.DB
}

func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS questions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		type_key TEXT NOT NULL,
		spec TEXT NOT NULL DEFAULT '{}',
		solution TEXT,
		marks REAL NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// InsertQuestion stores a question; spec and solution are serialized to
// JSON columns.
func (s *Store) InsertQuestion(ctx context.Context, q model.Question) (int64, error) {
	specJSON, err := json.Marshal(q.Spec)
	if err != nil {
		return 0, fmt.Errorf("marshal spec: %w", err)
	}
	var solutionJSON any
	if q.Solution != nil {
		b, err := json.Marshal(q.Solution)
		if err != nil {
			return 0, fmt.Errorf("marshal solution: %w", err)
		}
		solutionJSON = string(b)
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO questions (type_key, spec, solution, marks) VALUES (?, ?, ?, ?)`,
		q.TypeKey, string(specJSON), solutionJSON, q.Marks,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// GetQuestion fetches one question by id, deserializing the JSON trees.
func (s *Store) GetQuestion(ctx context.Context, id int64) (*model.Question, error) {
	var (
		q            model.Question
		specJSON     string
		solutionJSON sql.NullString
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, type_key, spec, solution, marks FROM questions WHERE id = ?`, id,
	).Scan(&q.ID, &q.TypeKey, &specJSON, &solutionJSON, &q.Marks)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrQuestionNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(specJSON), &q.Spec); err != nil {
		return nil, fmt.Errorf("unmarshal spec for question %d: %w", id, err)
	}
	if solutionJSON.Valid && solutionJSON.String != "" {
		if err := json.Unmarshal([]byte(solutionJSON.String), &q.Solution); err != nil {
			return nil, fmt.Errorf("unmarshal solution for question %d: %w", id, err)
		}
	}
	return &q, nil
}

// QuestionCount returns the number of stored questions.
func (s *Store) QuestionCount(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM questions`).Scan(&count)
	return count, err
}
