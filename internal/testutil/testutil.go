package testutil

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
	"github.com/vytor/phraseflash/internal/db"
	"github.com/vytor/phraseflash/internal/models"
)

// NewTestDB creates an in-memory SQLite database with all migrations applied.
// A single connection is kept so every query sees the same database.
func NewTestDB(t *testing.T) *sql.DB {
	sqlDB, err := sql.Open("sqlite3", ":memory:?_foreign_keys=on")
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Migrate(context.Background(), sqlDB), "failed to apply migrations")
	return sqlDB
}

// MustClose closes a resource and fails the test on error.
func MustClose(t *testing.T, closer interface{ Close() error }) {
	require.NoError(t, closer.Close())
}

// Fixture inserts rows directly, bypassing the repositories.
type Fixture struct {
	t  *testing.T
	db *sql.DB
}

func NewFixture(t *testing.T, db *sql.DB) *Fixture {
	return &Fixture{t: t, db: db}
}

func (f *Fixture) User(username, timezone string) int64 {
	res, err := f.db.Exec(`INSERT INTO users (username, timezone, created_at) VALUES (?, ?, ?)`,
		username, timezone, time.Now().UTC())
	require.NoError(f.t, err)
	id, err := res.LastInsertId()
	require.NoError(f.t, err)
	return id
}

func (f *Fixture) Language(code string) int64 {
	res, err := f.db.Exec(`INSERT INTO languages (code, name) VALUES (?, ?)`, code, code)
	require.NoError(f.t, err)
	id, err := res.LastInsertId()
	require.NoError(f.t, err)
	return id
}

// Phrase inserts a phrase; zero CreatedAt defaults to now.
func (f *Fixture) Phrase(p models.Phrase) int64 {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	var last any
	if p.LastPracticeDate != nil {
		last = p.LastPracticeDate.UTC()
	}
	res, err := f.db.Exec(`
INSERT INTO phrases (user_id, language_id, original, translation, speech_id, practice_correct_count, practice_incorrect_count, last_practice_date, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
`, p.UserID, p.LanguageID, p.Original, p.Translation, p.SpeechID, p.CorrectCount, p.IncorrectCount, last, p.CreatedAt.UTC())
	require.NoError(f.t, err)
	id, err := res.LastInsertId()
	require.NoError(f.t, err)
	return id
}

func (f *Fixture) Log(phraseID, userID int64, correct bool, at time.Time) {
	_, err := f.db.Exec(`INSERT INTO practice_logs (phrase_id, user_id, correct, similarity, transcript, practice_date) VALUES (?, ?, ?, ?, ?, ?)`,
		phraseID, userID, correct, 1.0, "", at.UTC())
	require.NoError(f.t, err)
}
