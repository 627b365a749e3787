package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/cerebro/internal/logger"
	"github.com/vytor/cerebro/internal/models"
	"github.com/vytor/cerebro/internal/repository"
)

var progressColumns = []string{
	"p.id", "p.user_id", "p.challenge_id", "p.current_value", "p.completed", "p.last_updated",
}

var joinedChallengeColumns = []string{
	"c.id", "c.title", "c.description", "c.type", "c.target_value", "c.target_minutes",
	"c.start_date", "c.end_date", "c.created_at",
}

type progressRepository struct {
	db *sql.DB
}

// NewProgressRepository creates a new ProgressRepository implementation
func NewProgressRepository(db *sql.DB) repository.ProgressRepository {
	return &progressRepository{db: db}
}

func progressDest(p *models.ChallengeProgress) []any {
	return []any{&p.ID, &p.UserID, &p.ChallengeID, &p.CurrentValue, &p.Completed, &p.LastUpdated}
}

// scanJoined reads a row selected with progressColumns followed by
// joinedChallengeColumns.
func scanJoined(row rowScanner) (models.ChallengeProgress, models.Challenge, error) {
	var (
		p             models.ChallengeProgress
		ch            models.Challenge
		targetMinutes sql.NullInt64
	)
	dest := append(progressDest(&p),
		&ch.ID, &ch.Title, &ch.Description, &ch.Type, &ch.TargetValue, &targetMinutes,
		&ch.StartDate, &ch.EndDate, &ch.CreatedAt)
	if err := row.Scan(dest...); err != nil {
		return p, ch, err
	}
	ch.TargetMinutes = intPtr(targetMinutes)
	return p, ch, nil
}

func joinedProgressQuery(userID int64) squirrel.SelectBuilder {
	return sqlBuilder.Select(append(append([]string{}, progressColumns...), joinedChallengeColumns...)...).
		From("challenge_progress p").
		Join("challenges c ON c.id = p.challenge_id").
		Where(squirrel.Eq{"p.user_id": userID})
}

func (r *progressRepository) ListByUser(ctx context.Context, userID int64) ([]models.ProgressWithChallenge, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("listing progress: user_id=%d", userID)

	query, args, err := joinedProgressQuery(userID).OrderBy("c.id ASC").ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list progress: %v", err)
		return nil, err
	}
	defer rows.Close()

	out := []models.ProgressWithChallenge{}
	for rows.Next() {
		p, ch, err := scanJoined(rows)
		if err != nil {
			log.Error("failed to scan progress row: %v", err)
			return nil, err
		}
		out = append(out, models.ProgressWithChallenge{ChallengeProgress: p, State: p.State(), Challenge: ch})
	}

	log.Debug("found %d progress entries", len(out))
	return out, rows.Err()
}

func (r *progressRepository) GetForUser(ctx context.Context, userID, challengeID int64) (*models.ChallengeProgress, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("getting progress: user_id=%d, challenge_id=%d", userID, challengeID)

	query, args, err := sqlBuilder.Select(progressColumns...).From("challenge_progress p").
		Where(squirrel.Eq{"p.user_id": userID, "p.challenge_id": challengeID}).ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	var p models.ChallengeProgress
	err = r.db.QueryRowContext(ctx, query, args...).Scan(progressDest(&p)...)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("progress not found: user_id=%d, challenge_id=%d", userID, challengeID)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get progress: %v", err)
		return nil, err
	}
	return &p, nil
}

func (r *progressRepository) ListByChallenge(ctx context.Context, challengeID int64) ([]models.ChallengeProgress, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("listing progress: challenge_id=%d", challengeID)

	query, args, err := sqlBuilder.Select(progressColumns...).From("challenge_progress p").
		Where(squirrel.Eq{"p.challenge_id": challengeID}).OrderBy("p.user_id ASC").ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list progress: %v", err)
		return nil, err
	}
	defer rows.Close()

	out := []models.ChallengeProgress{}
	for rows.Next() {
		var p models.ChallengeProgress
		if err := rows.Scan(progressDest(&p)...); err != nil {
			log.Error("failed to scan progress row: %v", err)
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

type pendingProgress struct {
	progress  models.ChallengeProgress
	challenge models.Challenge
}

func (r *progressRepository) Apply(ctx context.Context, userID int64, types []models.ChallengeType, fn repository.ProgressFunc) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("applying progress update: user_id=%d, types=%v", userID, types)

	query, args, err := joinedProgressQuery(userID).
		Where(squirrel.Eq{"c.type": types}).
		OrderBy("c.id ASC").ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return 0, err
	}

	changed := 0
	err = tx(ctx, r.db, func(tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx, query, args...)
		if err != nil {
			log.Error("failed to load progress for update: %v", err)
			return err
		}
		var pending []pendingProgress
		for rows.Next() {
			p, ch, err := scanJoined(rows)
			if err != nil {
				rows.Close()
				log.Error("failed to scan progress row: %v", err)
				return err
			}
			pending = append(pending, pendingProgress{progress: p, challenge: ch})
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return err
		}

		for _, item := range pending {
			next, ok := fn(item.challenge, item.progress)
			if !ok {
				continue
			}
			if _, err := tx.ExecContext(ctx, `
UPDATE challenge_progress
SET current_value = ?, completed = ?, last_updated = ?
WHERE id = ?
`, next.CurrentValue, next.Completed, next.LastUpdated, item.progress.ID); err != nil {
				log.Error("failed to update progress %d: %v", item.progress.ID, err)
				return err
			}
			changed++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	log.Debug("progress update applied: user_id=%d, changed=%d", userID, changed)
	return changed, nil
}
