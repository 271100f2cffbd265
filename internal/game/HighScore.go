package game

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	_ "github.com/mattn/go-sqlite3"
)

type HighScoreService struct {
	db *sql.DB
}

const DefaultDBPath = "highscores.db"
const tableName = "high_scores"

type Score struct {
	ID         int
	PlayerName string
	Score      int
	BoardSize  int
	CreatedAt  time.Time
}

func NewHighScoreService(dbPath string) (*HighScoreService, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", dbPath, err)
	}
	// sqlite serializes writers anyway; one connection avoids SQLITE_BUSY between sessions
	db.SetMaxOpenConns(1)

	service := &HighScoreService{db: db}
	if err := service.createTable(); err != nil {
		db.Close()
		return nil, err
	}

	return service, nil
}

func (serviceImpl *HighScoreService) Close() error {
	return serviceImpl.db.Close()
}

// createTable creates the high_scores table if it does not exist.
func (serviceImpl *HighScoreService) createTable() error {
	const createTableSQL = `
	CREATE TABLE IF NOT EXISTS ` + tableName + ` (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		player_name TEXT NOT NULL,
		score INTEGER NOT NULL,
		board_size INTEGER NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);`

	_, err := serviceImpl.db.Exec(createTableSQL)
	if err != nil {
		return fmt.Errorf("failed to execute CREATE TABLE: %w", err)
	}
	log.Debug("High scores table ensured.")
	return nil
}

func (serviceImpl *HighScoreService) SavePlayersHighScore(playerName string, score int, boardSize int) error {
	const insertSQL = `
	INSERT INTO ` + tableName + ` (player_name, score, board_size)
	VALUES (?, ?, ?);`

	_, err := serviceImpl.db.Exec(insertSQL, playerName, score, boardSize)
	if err != nil {
		return fmt.Errorf("failed to insert high score for %s: %w", playerName, err)
	}

	return nil
}

// GetHighScores retrieves a page of scores, best first. Ties go to the older score.
func (serviceImpl *HighScoreService) GetHighScores(limit, offset int) ([]Score, error) {
	const selectSQL = `
	SELECT id, player_name, score, board_size, created_at
	FROM ` + tableName + `
	ORDER BY score DESC, id ASC
	LIMIT ? OFFSET ?;`

	rows, err := serviceImpl.db.Query(selectSQL, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query high scores: %w", err)
	}
	defer rows.Close()

	var scores []Score

	for rows.Next() {
		var score Score
		var createdAt string
		err := rows.Scan(&score.ID, &score.PlayerName, &score.Score, &score.BoardSize, &createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		score.CreatedAt = parseCreatedAt(createdAt)
		scores = append(scores, score)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating rows: %w", err)
	}

	return scores, nil
}

func (serviceImpl *HighScoreService) GetTotalScoreCount() (int, error) {
	const countSQL = `SELECT COUNT(*) FROM ` + tableName + `;`
	var count int
	err := serviceImpl.db.QueryRow(countSQL).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get total score count: %w", err)
	}
	return count, nil
}

// GetBestScore returns 0 for players without a recorded score.
func (serviceImpl *HighScoreService) GetBestScore(playerName string) (int, error) {
	const bestSQL = `SELECT MAX(score) FROM ` + tableName + ` WHERE player_name = ?;`
	var best sql.NullInt64
	err := serviceImpl.db.QueryRow(bestSQL, playerName).Scan(&best)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("failed to get best score for %s: %w", playerName, err)
	}
	return int(best.Int64), nil
}

// sqlite hands CURRENT_TIMESTAMP back either as RFC3339 or in its own layout
// depending on the column affinity path taken by the driver.
func parseCreatedAt(raw string) time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	log.Warn("Time parsing error for score", "raw", raw)
	return time.Time{}
}
