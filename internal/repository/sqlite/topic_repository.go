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

type topicRepository struct {
	db *sql.DB
}

// NewTopicRepository creates a new TopicRepository implementation
func NewTopicRepository(db *sql.DB) repository.TopicRepository {
	return &topicRepository{db: db}
}

func (r *topicRepository) Create(ctx context.Context, t models.Topic) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("topic_repo")
	log.Debug("creating topic: course_id=%d, name=%s", t.CourseID, t.Name)

	res, err := r.db.ExecContext(ctx, `INSERT INTO topics (course_id, name, completed) VALUES (?, ?, ?)`,
		t.CourseID, t.Name, t.Completed)
	if err != nil {
		log.Error("failed to insert topic: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get topic id: %v", err)
		return 0, err
	}
	return id, nil
}

func (r *topicRepository) Get(ctx context.Context, id int64) (*models.Topic, error) {
	log := logger.FromContext(ctx).WithPrefix("topic_repo")
	log.Debug("getting topic: id=%d", id)

	var t models.Topic
	err := r.db.QueryRowContext(ctx, `SELECT id, course_id, name, completed FROM topics WHERE id = ?`, id).
		Scan(&t.ID, &t.CourseID, &t.Name, &t.Completed)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("topic not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get topic: %v", err)
		return nil, err
	}
	return &t, nil
}

func (r *topicRepository) ListByCourse(ctx context.Context, courseID int64) ([]models.Topic, error) {
	log := logger.FromContext(ctx).WithPrefix("topic_repo")
	log.Debug("listing topics: course_id=%d", courseID)

	rows, err := r.db.QueryContext(ctx, `
SELECT id, course_id, name, completed
FROM topics
WHERE course_id = ?
ORDER BY id ASC
`, courseID)
	if err != nil {
		log.Error("failed to list topics: %v", err)
		return nil, err
	}
	defer rows.Close()

	topics := []models.Topic{}
	for rows.Next() {
		var t models.Topic
		if err := rows.Scan(&t.ID, &t.CourseID, &t.Name, &t.Completed); err != nil {
			log.Error("failed to scan topic row: %v", err)
			return nil, err
		}
		topics = append(topics, t)
	}
	return topics, rows.Err()
}

func (r *topicRepository) SetCompleted(ctx context.Context, id int64, completed bool) (bool, error) {
	log := logger.FromContext(ctx).WithPrefix("topic_repo")
	log.Debug("setting topic completion: id=%d, completed=%t", id, completed)

	res, err := r.db.ExecContext(ctx, `UPDATE topics SET completed = ? WHERE id = ?`, completed, id)
	if err != nil {
		log.Error("failed to update topic: %v", err)
		return false, err
	}
	return affected(res)
}

func (r *topicRepository) Delete(ctx context.Context, id int64) (bool, error) {
	log := logger.FromContext(ctx).WithPrefix("topic_repo")
	log.Debug("deleting topic: id=%d", id)

	res, err := r.db.ExecContext(ctx, `DELETE FROM topics WHERE id = ?`, id)
	if err != nil {
		log.Error("failed to delete topic: %v", err)
		return false, err
	}
	return affected(res)
}

func completionQuery() squirrel.SelectBuilder {
	return sqlBuilder.Select(
		"c.id", "c.name", "COUNT(t.id)", "COALESCE(SUM(t.completed), 0)",
	).From("courses c").
		LeftJoin("topics t ON t.course_id = c.id").
		GroupBy("c.id", "c.name")
}

func scanCompletion(row rowScanner) (models.CourseCompletion, error) {
	var c models.CourseCompletion
	err := row.Scan(&c.CourseID, &c.Name, &c.Total, &c.Completed)
	return c, err
}

// Completion counts the course's topics in one aggregate query. It returns
// nil when the course does not exist.
func (r *topicRepository) Completion(ctx context.Context, courseID int64) (*models.CourseCompletion, error) {
	log := logger.FromContext(ctx).WithPrefix("topic_repo")
	log.Debug("counting topic completion: course_id=%d", courseID)

	query, args, err := completionQuery().Where(squirrel.Eq{"c.id": courseID}).ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	c, err := scanCompletion(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error("failed to count topic completion: %v", err)
		return nil, err
	}
	return &c, nil
}

func (r *topicRepository) CompletionByCourse(ctx context.Context) ([]models.CourseCompletion, error) {
	log := logger.FromContext(ctx).WithPrefix("topic_repo")
	log.Debug("counting topic completion for all courses")

	query, args, err := completionQuery().OrderBy("c.id ASC").ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to count topic completion: %v", err)
		return nil, err
	}
	defer rows.Close()

	out := []models.CourseCompletion{}
	for rows.Next() {
		c, err := scanCompletion(rows)
		if err != nil {
			log.Error("failed to scan completion row: %v", err)
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
