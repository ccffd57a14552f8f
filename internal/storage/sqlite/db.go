package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"callclassifier/internal/domain"

	_ "github.com/mattn/go-sqlite3"
)

func InitDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	schema := `
	CREATE TABLE IF NOT EXISTS call_history (
		id                  INTEGER PRIMARY KEY AUTOINCREMENT,
		transcript          TEXT NOT NULL,
		strategy            TEXT NOT NULL DEFAULT 'keyword',
		primary_category    TEXT NOT NULL,
		confidence          REAL NOT NULL,
		sentiment           TEXT NOT NULL,
		urgency             TEXT NOT NULL,
		analysis_json       TEXT NOT NULL,
		classification_json TEXT NOT NULL,
		customer_info_json  TEXT NOT NULL,
		report              TEXT DEFAULT '',
		classified_at       DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_call_history_category ON call_history(primary_category);
	CREATE INDEX IF NOT EXISTS idx_call_history_date ON call_history(classified_at);
	`
	_, err = db.Exec(schema)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// InsertCall stores one processed call and returns its row id.
func InsertCall(db *sql.DB, r domain.CallResult, classifiedAt time.Time) (int64, error) {
	analysisJSON, err := json.Marshal(r.Analysis)
	if err != nil {
		return 0, fmt.Errorf("encoding analysis: %w", err)
	}
	classificationJSON, err := json.Marshal(r.Classification)
	if err != nil {
		return 0, fmt.Errorf("encoding classification: %w", err)
	}
	infoJSON, err := json.Marshal(r.CustomerInfo)
	if err != nil {
		return 0, fmt.Errorf("encoding customer info: %w", err)
	}
	strategy := r.Strategy
	if strategy == "" {
		strategy = "keyword"
	}

	res, err := db.Exec(
		`INSERT INTO call_history (transcript, strategy, primary_category, confidence, sentiment, urgency,
		 analysis_json, classification_json, customer_info_json, report, classified_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Transcript, strategy, string(r.Classification.PrimaryCategory), r.Classification.ConfidenceScore,
		string(r.Analysis.Sentiment), string(r.Analysis.UrgencyLevel),
		string(analysisJSON), string(classificationJSON), string(infoJSON), r.Report, classifiedAt,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

const selectCallColumns = `id, transcript, strategy, analysis_json, classification_json, customer_info_json, report, classified_at`

// ListCalls returns the newest calls first. limit <= 0 returns all of them.
func ListCalls(db *sql.DB, limit int) ([]domain.HistoryEntry, error) {
	query := `SELECT ` + selectCallColumns + ` FROM call_history ORDER BY classified_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.HistoryEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func GetCall(db *sql.DB, id int64) (domain.HistoryEntry, error) {
	row := db.QueryRow(`SELECT `+selectCallColumns+` FROM call_history WHERE id = ?`, id)
	entry, err := scanEntry(row)
	if err == sql.ErrNoRows {
		return domain.HistoryEntry{}, fmt.Errorf("call %d not found", id)
	}
	return entry, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(s rowScanner) (domain.HistoryEntry, error) {
	var entry domain.HistoryEntry
	var analysisJSON, classificationJSON, infoJSON string
	err := s.Scan(
		&entry.ID, &entry.Result.Transcript, &entry.Result.Strategy,
		&analysisJSON, &classificationJSON, &infoJSON, &entry.Result.Report, &entry.ClassifiedAt,
	)
	if err != nil {
		return entry, err
	}
	if err := json.Unmarshal([]byte(analysisJSON), &entry.Result.Analysis); err != nil {
		return entry, fmt.Errorf("decoding analysis for call %d: %w", entry.ID, err)
	}
	if err := json.Unmarshal([]byte(classificationJSON), &entry.Result.Classification); err != nil {
		return entry, fmt.Errorf("decoding classification for call %d: %w", entry.ID, err)
	}
	if err := json.Unmarshal([]byte(infoJSON), &entry.Result.CustomerInfo); err != nil {
		return entry, fmt.Errorf("decoding customer info for call %d: %w", entry.ID, err)
	}
	return entry, nil
}

func CategoryCounts(db *sql.DB) (map[domain.Category]int, error) {
	rows, err := db.Query(`SELECT primary_category, COUNT(*) FROM call_history GROUP BY primary_category`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := map[domain.Category]int{}
	for rows.Next() {
		var category string
		var n int
		if err := rows.Scan(&category, &n); err != nil {
			return nil, err
		}
		counts[domain.Category(category)] = n
	}
	return counts, rows.Err()
}

// HistoryStats aggregates every stored call. The most common sentiment goes
// to the one stored first when counts tie.
func HistoryStats(db *sql.DB) (domain.HistoryStats, error) {
	stats := domain.HistoryStats{
		CategoryCounts:  map[domain.Category]int{},
		SentimentCounts: map[domain.Sentiment]int{},
	}

	var avg sql.NullFloat64
	err := db.QueryRow(
		`SELECT COUNT(*), AVG(confidence), COUNT(DISTINCT primary_category) FROM call_history`,
	).Scan(&stats.TotalCalls, &avg, &stats.UniqueCategories)
	if err != nil {
		return stats, err
	}
	if avg.Valid {
		stats.AvgConfidence = math.Round(avg.Float64*100) / 100
	}

	counts, err := CategoryCounts(db)
	if err != nil {
		return stats, err
	}
	stats.CategoryCounts = counts

	rows, err := db.Query(
		`SELECT sentiment, COUNT(*) FROM call_history GROUP BY sentiment ORDER BY COUNT(*) DESC, MIN(id) ASC`,
	)
	if err != nil {
		return stats, err
	}
	defer rows.Close()
	for rows.Next() {
		var sentiment string
		var n int
		if err := rows.Scan(&sentiment, &n); err != nil {
			return stats, err
		}
		if stats.CommonSentiment == "" {
			stats.CommonSentiment = domain.Sentiment(sentiment)
		}
		stats.SentimentCounts[domain.Sentiment(sentiment)] = n
	}
	return stats, rows.Err()
}
