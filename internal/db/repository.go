package db

import (
	"database/sql"
	"fmt"

	"lexfeatures/internal/volume"
)

// VolumeSummary is one row of the volumes table.
type VolumeSummary struct {
	ID             string
	Pages          int
	TotalTokens    int
	TypeToken      float64
	SentenceLength float64
	LineLength     float64
}

// PersistVolume replaces any stored rows for the volume with agg.
func PersistVolume(dbPath string, agg *volume.Aggregate) error {
	conn, err := Open(dbPath)
	if err != nil {
		return err
	}
	defer conn.Close()

	tx, err := conn.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM features WHERE volume_id = ?`, agg.ID); err != nil {
		return fmt.Errorf("clear features: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM volumes WHERE id = ?`, agg.ID); err != nil {
		return fmt.Errorf("clear volume: %w", err)
	}

	if _, err := tx.Exec(
		`INSERT INTO volumes(id, pages, total_tokens, body_tokens, header_tokens, sentence_count, line_count, type_token, sentence_length, line_length) VALUES(?,?,?,?,?,?,?,?,?,?)`,
		agg.ID,
		agg.NumPages,
		agg.TotalTokens,
		agg.BodyTokens,
		agg.HeaderTokens,
		agg.SentenceCount,
		agg.LineCount,
		agg.TypeToken,
		agg.SentenceLength,
		agg.LineLength,
	); err != nil {
		return fmt.Errorf("insert volume: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO features(volume_id, feature, value) VALUES(?,?,?)`)
	if err != nil {
		return fmt.Errorf("prepare feature insert: %w", err)
	}
	defer stmt.Close()
	for _, row := range agg.Rows() {
		if _, err := stmt.Exec(agg.ID, row.Feature, row.Value); err != nil {
			return fmt.Errorf("insert feature %s: %w", row.Feature, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// LoadFeatures returns the stored feature values of one volume.
func LoadFeatures(dbPath, id string) (map[string]float64, error) {
	conn, err := Open(dbPath)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	rows, err := conn.Query(`SELECT feature, value FROM features WHERE volume_id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("query features: %w", err)
	}
	defer rows.Close()

	out := map[string]float64{}
	for rows.Next() {
		var feature string
		var value float64
		if err := rows.Scan(&feature, &value); err != nil {
			return nil, fmt.Errorf("scan feature: %w", err)
		}
		out[feature] = value
	}
	return out, rows.Err()
}

// ListVolumes returns every stored volume ordered by id.
func ListVolumes(dbPath string) ([]VolumeSummary, error) {
	conn, err := Open(dbPath)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	rows, err := conn.Query(`SELECT id, pages, total_tokens, type_token, sentence_length, line_length FROM volumes ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query volumes: %w", err)
	}
	defer rows.Close()

	var out []VolumeSummary
	for rows.Next() {
		var v VolumeSummary
		if err := rows.Scan(&v.ID, &v.Pages, &v.TotalTokens, &v.TypeToken, &v.SentenceLength, &v.LineLength); err != nil {
			return nil, fmt.Errorf("scan volume: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func CountRows(dbPath, table string) (int, error) {
	conn, err := Open(dbPath)
	if err != nil {
		return 0, err
	}
	defer conn.Close()
	return countRowsConn(conn, table)
}

func countRowsConn(conn *sql.DB, table string) (int, error) {
	row := conn.QueryRow(`SELECT COUNT(*) FROM ` + table)
	var count int
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("scan count: %w", err)
	}
	return count, nil
}
