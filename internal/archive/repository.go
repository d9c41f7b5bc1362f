// Package archive persists collected draws into MySQL. The archive is an
// optional side store for offline analysis; the resolver and collector keep
// working from memory whether or not it is configured.
package archive

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Invoker2025/lotofacil-api/internal/draw"
)

//go:generate mockgen -source=repository.go -destination=../mocks/archive/mock_repository.go -package=mock_archive

// Record is one archived draw row. Numbers are stored as a JSON array so the
// row round-trips without a join table.
type Record struct {
	Contest   int       `db:"contest"`
	DrawDate  string    `db:"draw_date"`
	Numbers   string    `db:"numbers"`
	EvenCount int       `db:"even_count"`
	OddCount  int       `db:"odd_count"`
	Source    string    `db:"source"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// FromDraw converts a normalized draw into an archivable record.
func FromDraw(d draw.Draw) (Record, error) {
	numbers, err := json.Marshal(d.Numbers)
	if err != nil {
		return Record{}, fmt.Errorf("json.Marshal > %w", err)
	}
	return Record{
		Contest:   d.Contest,
		DrawDate:  d.Date,
		Numbers:   string(numbers),
		EvenCount: d.EvenCount,
		OddCount:  d.OddCount,
		Source:    d.Source,
	}, nil
}

// Draw converts the record back into a Draw, re-checking the number
// invariant so a corrupted row cannot reintroduce an invalid draw.
func (r Record) Draw() (draw.Draw, error) {
	var numbers []int
	if err := json.Unmarshal([]byte(r.Numbers), &numbers); err != nil {
		return draw.Draw{}, fmt.Errorf("json.Unmarshal > %w", err)
	}
	if !draw.ValidNumbers(numbers) {
		return draw.Draw{}, fmt.Errorf("archived contest %d has invalid numbers", r.Contest)
	}
	even, odd := draw.ParityCounts(numbers)
	return draw.Draw{
		Contest:   r.Contest,
		Date:      r.DrawDate,
		Numbers:   numbers,
		EvenCount: even,
		OddCount:  odd,
		Source:    r.Source,
	}, nil
}

// Repository defines operations for managing archived draws.
type Repository interface {
	FindByContest(ctx context.Context, contest int) (*Record, error)
	FindRange(ctx context.Context, from, to int) ([]Record, error)
	LatestContest(ctx context.Context) (int, error)
	Upsert(ctx context.Context, record *Record) error
}

// DBRepository implements Repository using MySQL.
type DBRepository struct {
	db *sqlx.DB
}

func NewDBRepository(db *sqlx.DB) *DBRepository {
	return &DBRepository{db: db}
}

// FindByContest returns one archived draw, or nil if not found.
func (r *DBRepository) FindByContest(ctx context.Context, contest int) (*Record, error) {
	var record Record
	err := r.db.GetContext(ctx, &record, "SELECT * FROM draws WHERE contest = ?", contest)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(draw) > %w", err)
	}
	return &record, nil
}

// FindRange returns archived draws with from <= contest <= to, newest first.
func (r *DBRepository) FindRange(ctx context.Context, from, to int) ([]Record, error) {
	var records []Record
	err := r.db.SelectContext(ctx, &records,
		"SELECT * FROM draws WHERE contest BETWEEN ? AND ? ORDER BY contest DESC", from, to)
	if err != nil {
		return nil, fmt.Errorf("db.SelectContext(draws) > %w", err)
	}
	return records, nil
}

// LatestContest returns the highest archived contest number, 0 when empty.
func (r *DBRepository) LatestContest(ctx context.Context) (int, error) {
	var latest sql.NullInt64
	if err := r.db.GetContext(ctx, &latest, "SELECT MAX(contest) FROM draws"); err != nil {
		return 0, fmt.Errorf("db.GetContext(max contest) > %w", err)
	}
	return int(latest.Int64), nil
}

// Upsert inserts or refreshes one archived draw.
func (r *DBRepository) Upsert(ctx context.Context, record *Record) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO draws (contest, draw_date, numbers, even_count, odd_count, source)
		VALUES (?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE draw_date = VALUES(draw_date), numbers = VALUES(numbers),
			even_count = VALUES(even_count), odd_count = VALUES(odd_count), source = VALUES(source)`,
		record.Contest, record.DrawDate, record.Numbers, record.EvenCount, record.OddCount, record.Source)
	if err != nil {
		return fmt.Errorf("db.ExecContext(upsert draw) > %w", err)
	}
	return nil
}
