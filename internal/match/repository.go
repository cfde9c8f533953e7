package match

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"github.com/kasupel/kasupel/internal/ratings"
)

// Repository persists finished games and player ratings in postgres.
type Repository struct {
	db *sql.DB
}

func NewRepository(databaseURL string) (*Repository, error) {
	if strings.TrimSpace(databaseURL) == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(16)
	db.SetMaxIdleConns(8)
	db.SetConnMaxLifetime(30 * time.Minute)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

// SaveResult upserts a final game record.
func (r *Repository) SaveResult(ctx context.Context, g *Game) error {
	if r == nil || r.db == nil || g == nil {
		return nil
	}
	movesRaw, _ := json.Marshal(g.Moves)
	duration := g.UpdatedAt.Sub(g.CreatedAt).Milliseconds()
	if duration < 0 {
		duration = 0
	}

	q := `INSERT INTO games (
	    game_id, home_id, home_name, away_id, away_name,
	    conclusion, winner, moves,
	    initial_ms, increment_ms, fixed_extra_ms,
	    started_at, ended_at, duration_ms
	  ) VALUES (
	    $1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14
	  ) ON CONFLICT (game_id) DO UPDATE SET
	    conclusion=EXCLUDED.conclusion,
	    winner=EXCLUDED.winner,
	    moves=EXCLUDED.moves,
	    ended_at=EXCLUDED.ended_at,
	    duration_ms=EXCLUDED.duration_ms`

	_, err := r.db.ExecContext(ctx, q,
		g.ID,
		g.HomeID, g.HomeName,
		g.AwayID, g.AwayName,
		g.Conclusion, g.Winner, string(movesRaw),
		g.TimeControl.InitialMs, g.TimeControl.IncrementMs, g.TimeControl.FixedExtraMs,
		g.CreatedAt, g.UpdatedAt, duration,
	)
	return err
}

// UpdateRatings applies an Elo adjustment for a finished game. homeScore is
// 1, 0.5 or 0 from the home player's perspective. Players without a ratings
// row start at 1000.
func (r *Repository) UpdateRatings(ctx context.Context, homeID, awayID string, homeScore, kFactor float64) error {
	if r == nil || r.db == nil {
		return nil
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	homeElo, err := currentRating(ctx, tx, homeID)
	if err != nil {
		return err
	}
	awayElo, err := currentRating(ctx, tx, awayID)
	if err != nil {
		return err
	}

	newHome, newAway := ratings.Calculate(homeElo, awayElo, homeScore, kFactor)
	if err := storeRating(ctx, tx, homeID, newHome); err != nil {
		return err
	}
	if err := storeRating(ctx, tx, awayID, newAway); err != nil {
		return err
	}
	return tx.Commit()
}

func currentRating(ctx context.Context, tx *sql.Tx, userID string) (float64, error) {
	var elo float64
	err := tx.QueryRowContext(ctx, `SELECT elo FROM ratings WHERE user_id = $1 FOR UPDATE`, userID).Scan(&elo)
	if err == sql.ErrNoRows {
		return 1000, nil
	}
	if err != nil {
		return 0, err
	}
	return elo, nil
}

func storeRating(ctx context.Context, tx *sql.Tx, userID string, elo float64) error {
	q := `INSERT INTO ratings (user_id, elo, updated_at)
	  VALUES ($1, $2, now())
	  ON CONFLICT (user_id) DO UPDATE SET elo = EXCLUDED.elo, updated_at = now()`
	_, err := tx.ExecContext(ctx, q, userID, elo)
	return err
}
