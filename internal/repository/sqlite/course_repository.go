package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/vytor/cerebro/internal/logger"
	"github.com/vytor/cerebro/internal/models"
	"github.com/vytor/cerebro/internal/repository"
)

type courseRepository struct {
	db *sql.DB
}

// NewCourseRepository creates a new CourseRepository implementation
func NewCourseRepository(db *sql.DB) repository.CourseRepository {
	return &courseRepository{db: db}
}

func (r *courseRepository) Create(ctx context.Context, c models.Course) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("course_repo")
	log.Debug("creating course: name=%s", c.Name)

	res, err := r.db.ExecContext(ctx, `INSERT INTO courses (name, description) VALUES (?, ?)`, c.Name, c.Description)
	if err != nil {
		log.Error("failed to insert course: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get course id: %v", err)
		return 0, err
	}
	return id, nil
}

func (r *courseRepository) Get(ctx context.Context, id int64) (*models.Course, error) {
	log := logger.FromContext(ctx).WithPrefix("course_repo")
	log.Debug("getting course: id=%d", id)

	var c models.Course
	err := r.db.QueryRowContext(ctx, `SELECT id, name, description FROM courses WHERE id = ?`, id).
		Scan(&c.ID, &c.Name, &c.Description)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("course not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get course: %v", err)
		return nil, err
	}
	return &c, nil
}

func (r *courseRepository) List(ctx context.Context) ([]models.Course, error) {
	log := logger.FromContext(ctx).WithPrefix("course_repo")
	log.Debug("listing courses")

	rows, err := r.db.QueryContext(ctx, `SELECT id, name, description FROM courses ORDER BY id ASC`)
	if err != nil {
		log.Error("failed to list courses: %v", err)
		return nil, err
	}
	defer rows.Close()

	courses := []models.Course{}
	for rows.Next() {
		var c models.Course
		if err := rows.Scan(&c.ID, &c.Name, &c.Description); err != nil {
			log.Error("failed to scan course row: %v", err)
			return nil, err
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}

// Delete removes the course. Its topics go with it; sessions keep their rows
// with the course reference cleared.
func (r *courseRepository) Delete(ctx context.Context, id int64) (bool, error) {
	log := logger.FromContext(ctx).WithPrefix("course_repo")
	log.Debug("deleting course: id=%d", id)

	res, err := r.db.ExecContext(ctx, `DELETE FROM courses WHERE id = ?`, id)
	if err != nil {
		log.Error("failed to delete course: %v", err)
		return false, err
	}
	return affected(res)
}
