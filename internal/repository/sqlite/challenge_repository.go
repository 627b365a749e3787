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

var challengeColumns = []string{
	"id", "title", "description", "type", "target_value", "target_minutes",
	"start_date", "end_date", "created_at",
}

type challengeRepository struct {
	db *sql.DB
}

// NewChallengeRepository creates a new ChallengeRepository implementation
func NewChallengeRepository(db *sql.DB) repository.ChallengeRepository {
	return &challengeRepository{db: db}
}

func scanChallenge(row rowScanner) (models.Challenge, error) {
	var (
		ch            models.Challenge
		targetMinutes sql.NullInt64
	)
	err := row.Scan(&ch.ID, &ch.Title, &ch.Description, &ch.Type, &ch.TargetValue, &targetMinutes,
		&ch.StartDate, &ch.EndDate, &ch.CreatedAt)
	if err != nil {
		return ch, err
	}
	ch.TargetMinutes = intPtr(targetMinutes)
	return ch, nil
}

// Create stores the challenge and seeds an empty progress row for userID in
// the same transaction.
func (r *challengeRepository) Create(ctx context.Context, ch models.Challenge, userID int64, today models.Date) (*models.Challenge, error) {
	log := logger.FromContext(ctx).WithPrefix("challenge_repo")
	log.Debug("creating challenge: type=%s, user_id=%d", ch.Type, userID)

	var id int64
	err := tx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
INSERT INTO challenges (title, description, type, target_value, target_minutes, start_date, end_date)
VALUES (?, ?, ?, ?, ?, ?, ?)
`, ch.Title, ch.Description, ch.Type, ch.TargetValue, nullableInt(ch.TargetMinutes),
			ch.StartDate, ch.EndDate)
		if err != nil {
			log.Error("failed to insert challenge: %v", err)
			return err
		}
		if id, err = res.LastInsertId(); err != nil {
			log.Error("failed to get challenge id: %v", err)
			return err
		}

		if _, err := tx.ExecContext(ctx, `
INSERT INTO challenge_progress (user_id, challenge_id, current_value, completed, last_updated)
VALUES (?, ?, 0, 0, ?)
`, userID, id, today); err != nil {
			log.Error("failed to seed progress for challenge %d: %v", id, err)
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Debug("challenge created: id=%d", id)
	return r.Get(ctx, id)
}

func (r *challengeRepository) Get(ctx context.Context, id int64) (*models.Challenge, error) {
	log := logger.FromContext(ctx).WithPrefix("challenge_repo")
	log.Debug("getting challenge: id=%d", id)

	query, args, err := sqlBuilder.Select(challengeColumns...).From("challenges").
		Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	ch, err := scanChallenge(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("challenge not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get challenge: %v", err)
		return nil, err
	}
	return &ch, nil
}

func (r *challengeRepository) List(ctx context.Context) ([]models.Challenge, error) {
	return r.list(ctx, sqlBuilder.Select(challengeColumns...).From("challenges"))
}

func (r *challengeRepository) ListByType(ctx context.Context, t models.ChallengeType) ([]models.Challenge, error) {
	return r.list(ctx, sqlBuilder.Select(challengeColumns...).From("challenges").
		Where(squirrel.Eq{"type": t}))
}

func (r *challengeRepository) list(ctx context.Context, q squirrel.SelectBuilder) ([]models.Challenge, error) {
	log := logger.FromContext(ctx).WithPrefix("challenge_repo")

	query, args, err := q.OrderBy("id ASC").ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}
	log.Debug("listing challenges")

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list challenges: %v", err)
		return nil, err
	}
	defer rows.Close()

	challenges := []models.Challenge{}
	for rows.Next() {
		ch, err := scanChallenge(rows)
		if err != nil {
			log.Error("failed to scan challenge row: %v", err)
			return nil, err
		}
		challenges = append(challenges, ch)
	}
	return challenges, rows.Err()
}

func (r *challengeRepository) Update(ctx context.Context, ch models.Challenge) (bool, error) {
	log := logger.FromContext(ctx).WithPrefix("challenge_repo")
	log.Debug("updating challenge: id=%d", ch.ID)

	res, err := r.db.ExecContext(ctx, `
UPDATE challenges
SET title = ?, description = ?, type = ?, target_value = ?, target_minutes = ?, start_date = ?, end_date = ?
WHERE id = ?
`, ch.Title, ch.Description, ch.Type, ch.TargetValue, nullableInt(ch.TargetMinutes),
		ch.StartDate, ch.EndDate, ch.ID)
	if err != nil {
		log.Error("failed to update challenge: %v", err)
		return false, err
	}
	return affected(res)
}

// Delete removes the challenge and every progress row that points at it.
func (r *challengeRepository) Delete(ctx context.Context, id int64) (bool, error) {
	log := logger.FromContext(ctx).WithPrefix("challenge_repo")
	log.Debug("deleting challenge and progress: id=%d", id)

	var found bool
	err := tx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM challenge_progress WHERE challenge_id = ?`, id); err != nil {
			log.Error("failed to delete progress for challenge %d: %v", id, err)
			return err
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM challenges WHERE id = ?`, id)
		if err != nil {
			log.Error("failed to delete challenge %d: %v", id, err)
			return err
		}
		found, err = affected(res)
		return err
	})
	return found, err
}
