package match

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/kasupel/kasupel/internal/engine"
	"github.com/kasupel/kasupel/internal/obslog"
)

// Manager runs matches on top of redis. Game records are JSON values guarded
// by WATCH, so concurrent commands against the same game fail with
// redis.TxFailedErr instead of corrupting state. The engine itself is
// stateless here: every operation replays the stored move list.
type Manager struct {
	rdb  *redis.Client
	repo *Repository
	ttl  time.Duration
	eloK float64

	// now is swappable so clock behavior is testable.
	now func() time.Time
}

func NewManager(redisURL string, ttl time.Duration) (*Manager, error) {
	if strings.TrimSpace(redisURL) == "" {
		return nil, fmt.Errorf("redis URL required for match manager")
	}
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Manager{rdb: rdb, ttl: ttl, eloK: 32, now: time.Now}, nil
}

func (m *Manager) Close() error {
	if m == nil || m.rdb == nil {
		return nil
	}
	return m.rdb.Close()
}

// AttachRepository wires a database repository for results and ratings.
func (m *Manager) AttachRepository(r *Repository) {
	if m != nil {
		m.repo = r
	}
}

// SetRatingKFactor overrides the Elo K-factor used for finished games.
func (m *Manager) SetRatingKFactor(k float64) {
	if m != nil && k > 0 {
		m.eloK = k
	}
}

// CreateGame starts a match between two users. The first player is Home and
// moves first. A zero time control means the game is untimed.
func (m *Manager) CreateGame(ctx context.Context, homeID, homeName, awayID, awayName string, tc TimeControlSpec) (*Game, error) {
	if m == nil || m.rdb == nil {
		return nil, fmt.Errorf("match manager not initialized")
	}
	homeID, awayID = strings.TrimSpace(homeID), strings.TrimSpace(awayID)
	if homeID == "" || awayID == "" || homeID == awayID {
		return nil, ErrInvalidArgs
	}

	now := m.now()
	g := &Game{
		ID:              uuid.NewString(),
		Moves:           []string{},
		Turn:            string(engine.Home),
		Status:          StatusActive,
		HomeID:          homeID,
		HomeName:        strings.TrimSpace(homeName),
		AwayID:          awayID,
		AwayName:        strings.TrimSpace(awayName),
		TimeControl:     tc,
		HomeRemainingMs: tc.InitialMs,
		AwayRemainingMs: tc.InitialMs,
		LastTurnAt:      now,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := m.save(ctx, g); err != nil {
		return nil, err
	}
	if err := m.index(ctx, g); err != nil {
		return nil, err
	}
	obslog.L().Info("match_create",
		zap.String("game_id", g.ID),
		zap.String("home_id", g.HomeID),
		zap.String("away_id", g.AwayID),
		zap.Int64("initial_ms", tc.InitialMs),
	)
	return g, nil
}

// GetGame returns the game by ID, or ErrGameNotFound.
func (m *Manager) GetGame(ctx context.Context, id string) (*Game, error) {
	g, err := m.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, ErrGameNotFound
	}
	return g, nil
}

// GetActiveGameByUser returns the user's most recently updated active game,
// or nil when none exists.
func (m *Manager) GetActiveGameByUser(ctx context.Context, userID string) (*Game, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, nil
	}
	ids, err := m.rdb.SMembers(ctx, idxUserKey(userID)).Result()
	if err != nil {
		return nil, err
	}
	var list []*Game
	for _, id := range ids {
		g, gerr := m.get(ctx, id)
		if gerr == nil && g != nil && g.Status == StatusActive {
			list = append(list, g)
		}
	}
	if len(list) == 0 {
		return nil, nil
	}
	sort.Slice(list, func(i, j int) bool { return list[i].UpdatedAt.After(list[j].UpdatedAt) })
	return list[0], nil
}

// PlayMove applies a coordinate-notation move ("e2e4", "e7e8q") for userID.
// When the mover's flag already fell the game is concluded as a timeout and
// the returned game reflects that instead of the move.
func (m *Manager) PlayMove(ctx context.Context, userID, gameID, moveStr string) (*Game, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" || strings.TrimSpace(gameID) == "" {
		return nil, ErrInvalidArgs
	}

	var out *Game
	gameK := gameKey(gameID)
	err := m.rdb.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := m.getTx(ctx, tx, gameID)
		if err != nil {
			return err
		}
		if cur.Status != StatusActive {
			return ErrGameNotActive
		}
		side := sideOf(cur, userID)
		if side == "" {
			return ErrNotParticipant
		}
		if string(side) != cur.Turn {
			return ErrNotYourTurn
		}

		eg, err := m.rebuild(cur)
		if err != nil {
			return err
		}
		now := m.now()

		if m.flagFallen(cur, eg, now) {
			if err := eg.Timeout(side); err != nil {
				return err
			}
			m.syncFromEngine(cur, eg, now)
			out = cur
			return m.persistTx(ctx, tx, cur)
		}

		cm, perr := engine.ParseCoordinateMove(strings.ToLower(strings.TrimSpace(moveStr)))
		if perr != nil {
			return engine.ErrIllegalMove
		}
		if err := eg.ApplyMove(side, cm.From, cm.To, cm.Promotion); err != nil {
			return err
		}
		if timed(cur) {
			if len(cur.Moves) > 0 {
				eg.Clock().RecordTurnElapsed(side, now.Sub(cur.LastTurnAt))
			}
			eg.Clock().TurnEnd(now)
		}
		cur.Moves = append(cur.Moves, engine.FormatCoordinateMove(cm))
		m.syncFromEngine(cur, eg, now)
		out = cur
		return m.persistTx(ctx, tx, cur)
	}, gameK)
	if err != nil {
		return nil, err
	}

	obslog.L().Info("match_move",
		zap.String("game_id", out.ID),
		zap.String("user_id", userID),
		zap.String("turn", out.Turn),
		zap.String("last_move", lastMove(out)),
		zap.String("status", string(out.Status)),
	)
	m.persistIfFinal(ctx, out)
	return out, nil
}

// OfferDraw registers a standing draw offer. The opponent accepts it by
// claiming an agreed draw.
func (m *Manager) OfferDraw(ctx context.Context, userID, gameID string) (*Game, error) {
	return m.mutate(ctx, userID, gameID, "match_offer_draw", func(eg *engine.Game, side engine.Side) error {
		return eg.OfferDraw(side)
	})
}

// ClaimDraw exercises a draw claim made available by the last move.
func (m *Manager) ClaimDraw(ctx context.Context, userID, gameID string, reason engine.Conclusion) (*Game, error) {
	return m.mutate(ctx, userID, gameID, "match_claim_draw", func(eg *engine.Game, side engine.Side) error {
		return eg.ClaimDraw(side, reason)
	})
}

// Resign ends the game with userID losing.
func (m *Manager) Resign(ctx context.Context, userID, gameID string) (*Game, error) {
	return m.mutate(ctx, userID, gameID, "match_resign", func(eg *engine.Game, side engine.Side) error {
		return eg.Resign(side)
	})
}

// mutate runs a non-move game operation under WATCH and persists the result.
func (m *Manager) mutate(ctx context.Context, userID, gameID, event string, op func(*engine.Game, engine.Side) error) (*Game, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" || strings.TrimSpace(gameID) == "" {
		return nil, ErrInvalidArgs
	}

	var out *Game
	err := m.rdb.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := m.getTx(ctx, tx, gameID)
		if err != nil {
			return err
		}
		if cur.Status != StatusActive {
			return ErrGameNotActive
		}
		side := sideOf(cur, userID)
		if side == "" {
			return ErrNotParticipant
		}
		eg, err := m.rebuild(cur)
		if err != nil {
			return err
		}
		if err := op(eg, side); err != nil {
			return err
		}
		m.syncFromEngine(cur, eg, m.now())
		out = cur
		return m.persistTx(ctx, tx, cur)
	}, gameKey(gameID))
	if err != nil {
		return nil, err
	}

	obslog.L().Info(event,
		zap.String("game_id", out.ID),
		zap.String("user_id", userID),
		zap.String("status", string(out.Status)),
		zap.String("conclusion", out.Conclusion),
	)
	m.persistIfFinal(ctx, out)
	return out, nil
}

// CheckTimeout concludes the game if the side to move has run out of time.
func (m *Manager) CheckTimeout(ctx context.Context, gameID string) (*Game, error) {
	var out *Game
	err := m.rdb.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := m.getTx(ctx, tx, gameID)
		if err != nil {
			return err
		}
		out = cur
		if cur.Status != StatusActive {
			return nil
		}
		eg, err := m.rebuild(cur)
		if err != nil {
			return err
		}
		now := m.now()
		if !m.flagFallen(cur, eg, now) {
			return nil
		}
		if err := eg.Timeout(engine.Side(cur.Turn)); err != nil {
			return err
		}
		m.syncFromEngine(cur, eg, now)
		return m.persistTx(ctx, tx, cur)
	}, gameKey(gameID))
	if err != nil {
		return nil, err
	}
	if out.Status != StatusActive {
		m.persistIfFinal(ctx, out)
	}
	return out, nil
}

// SweepTimeouts scans every active game for fallen flags. Returns the number
// of games concluded.
func (m *Manager) SweepTimeouts(ctx context.Context) int {
	ids, err := m.rdb.SMembers(ctx, activeKey).Result()
	if err != nil {
		obslog.L().Error("match_sweep_error", zap.Error(err))
		return 0
	}
	concluded := 0
	for _, id := range ids {
		g, err := m.CheckTimeout(ctx, id)
		if errors.Is(err, ErrGameNotFound) {
			// Record expired; drop the dangling index entry.
			_ = m.rdb.SRem(ctx, activeKey, id).Err()
			continue
		}
		if err != nil {
			obslog.L().Warn("match_sweep_check_error", zap.String("game_id", id), zap.Error(err))
			continue
		}
		if g.Conclusion == string(engine.Timeout) && g.Status != StatusActive {
			concluded++
			obslog.L().Info("match_timeout",
				zap.String("game_id", g.ID),
				zap.String("winner", g.Winner),
			)
		}
	}
	return concluded
}

// rebuild replays the stored move list into a fresh engine game, then
// restores the clock and any standing draw offer.
func (m *Manager) rebuild(g *Game) (*engine.Game, error) {
	eg := engine.NewGame(engine.WithTimeControl(controlFromSpec(g.TimeControl)))
	for _, s := range g.Moves {
		cm, err := engine.ParseCoordinateMove(s)
		if err != nil {
			return nil, fmt.Errorf("stored move %q: %w", s, err)
		}
		if err := eg.ApplyMove(eg.CurrentTurn, cm.From, cm.To, cm.Promotion); err != nil {
			return nil, fmt.Errorf("replay move %q: %w", s, err)
		}
	}
	if timed(g) {
		eg.Clock().SetRemaining(engine.Home, time.Duration(g.HomeRemainingMs)*time.Millisecond)
		eg.Clock().SetRemaining(engine.Away, time.Duration(g.AwayRemainingMs)*time.Millisecond)
		eg.Clock().TurnEnd(g.LastTurnAt)
	}
	if g.HomeOffersDraw {
		_ = eg.OfferDraw(engine.Home)
	}
	if g.AwayOffersDraw {
		_ = eg.OfferDraw(engine.Away)
	}
	return eg, nil
}

// flagFallen reports whether the side to move has exceeded their projected
// timeout. The clock only starts once the first move has been played.
func (m *Manager) flagFallen(g *Game, eg *engine.Game, now time.Time) bool {
	if !timed(g) || len(g.Moves) == 0 {
		return false
	}
	return now.After(eg.Clock().ProjectedTimeout(engine.Side(g.Turn)))
}

func (m *Manager) syncFromEngine(g *Game, eg *engine.Game, now time.Time) {
	g.Turn = string(eg.CurrentTurn)
	g.HomeOffersDraw = eg.OfferingDraw(engine.Home)
	g.AwayOffersDraw = eg.OfferingDraw(engine.Away)
	g.DrawClaim = ""
	if claim := eg.OutstandingDrawClaim(); claim != engine.GameNotComplete {
		g.DrawClaim = string(claim)
	}
	if timed(g) {
		g.HomeRemainingMs = eg.Clock().Remaining(engine.Home).Milliseconds()
		g.AwayRemainingMs = eg.Clock().Remaining(engine.Away).Milliseconds()
		g.LastTurnAt = eg.Clock().LastTurnStart
	}
	g.UpdatedAt = now

	if eg.State() == engine.Concluded {
		g.Conclusion = string(eg.Conclusion())
		switch eg.Winner() {
		case engine.HomeWins:
			g.Status, g.Winner = StatusFinished, g.HomeID
		case engine.AwayWins:
			g.Status, g.Winner = StatusFinished, g.AwayID
		case engine.Draw:
			g.Status, g.Winner = StatusDraw, ""
		}
	}
}

func sideOf(g *Game, userID string) engine.Side {
	switch userID {
	case g.HomeID:
		return engine.Home
	case g.AwayID:
		return engine.Away
	}
	return ""
}

func timed(g *Game) bool {
	return g.TimeControl.InitialMs > 0
}

func controlFromSpec(tc TimeControlSpec) engine.TimeControl {
	return engine.TimeControl{
		InitialTime: time.Duration(tc.InitialMs) * time.Millisecond,
		Increment:   time.Duration(tc.IncrementMs) * time.Millisecond,
		FixedExtra:  time.Duration(tc.FixedExtraMs) * time.Millisecond,
	}
}

func lastMove(g *Game) string {
	if n := len(g.Moves); n > 0 {
		return g.Moves[n-1]
	}
	return ""
}

// Persistence.

func (m *Manager) save(ctx context.Context, g *Game) error {
	raw, err := json.Marshal(g)
	if err != nil {
		return err
	}
	return m.rdb.Set(ctx, gameKey(g.ID), raw, m.ttl).Err()
}

func (m *Manager) get(ctx context.Context, id string) (*Game, error) {
	raw, err := m.rdb.Get(ctx, gameKey(id)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var g Game
	if err := json.Unmarshal(raw, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

func (m *Manager) getTx(ctx context.Context, tx *redis.Tx, id string) (*Game, error) {
	raw, err := tx.Get(ctx, gameKey(id)).Bytes()
	if err == redis.Nil {
		return nil, ErrGameNotFound
	}
	if err != nil {
		return nil, err
	}
	var g Game
	if err := json.Unmarshal(raw, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

func (m *Manager) persistTx(ctx context.Context, tx *redis.Tx, g *Game) error {
	raw, err := json.Marshal(g)
	if err != nil {
		return err
	}
	pipe := tx.TxPipeline()
	pipe.Set(ctx, gameKey(g.ID), raw, m.ttl)
	if g.Status != StatusActive {
		pipe.SRem(ctx, activeKey, g.ID)
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (m *Manager) index(ctx context.Context, g *Game) error {
	for _, userID := range []string{g.HomeID, g.AwayID} {
		key := idxUserKey(userID)
		if err := m.rdb.SAdd(ctx, key, g.ID).Err(); err != nil {
			return err
		}
		// Index keys share the game TTL so they cannot accumulate.
		_ = m.rdb.Expire(ctx, key, m.ttl).Err()
	}
	return m.rdb.SAdd(ctx, activeKey, g.ID).Err()
}

// persistIfFinal writes the result and rating updates to the database.
func (m *Manager) persistIfFinal(ctx context.Context, g *Game) {
	if m == nil || m.repo == nil || g == nil || g.Status == StatusActive {
		return
	}
	if err := m.repo.SaveResult(ctx, g); err != nil {
		obslog.L().Error("match_result_persist_error", zap.String("game_id", g.ID), zap.Error(err))
		return
	}
	score := 0.5
	switch g.Winner {
	case g.HomeID:
		score = 1
	case g.AwayID:
		score = 0
	}
	if err := m.repo.UpdateRatings(ctx, g.HomeID, g.AwayID, score, m.eloK); err != nil {
		obslog.L().Error("match_rating_update_error", zap.String("game_id", g.ID), zap.Error(err))
		return
	}
	obslog.L().Info("match_result_persist",
		zap.String("game_id", g.ID),
		zap.String("conclusion", g.Conclusion),
		zap.String("winner", g.Winner),
	)
}

const activeKey = "match:active"

func gameKey(id string) string { return "match:game:" + strings.TrimSpace(id) }

func idxUserKey(userID string) string { return "match:index:user:" + strings.TrimSpace(userID) }
