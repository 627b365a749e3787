package sqlite_test

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/vytor/cerebro/internal/models"
	"github.com/vytor/cerebro/internal/repository"
	"github.com/vytor/cerebro/internal/repository/sqlite"
	"github.com/vytor/cerebro/internal/testutil"
)

type ProgressRepositorySuite struct {
	suite.Suite
	db         *sql.DB
	repo       repository.ProgressRepository
	challenges repository.ChallengeRepository
}

func (s *ProgressRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewProgressRepository(s.db)
	s.challenges = sqlite.NewChallengeRepository(s.db)
}

func (s *ProgressRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *ProgressRepositorySuite) create(t models.ChallengeType, target int, userID int64) *models.Challenge {
	ch, err := s.challenges.Create(context.Background(), models.Challenge{
		Title: "goal", Type: t, TargetValue: target,
	}, userID, today)
	s.Require().NoError(err)
	return ch
}

func addOne(ch models.Challenge, p models.ChallengeProgress) (models.ChallengeProgress, bool) {
	p.CurrentValue++
	p.LastUpdated = today.AddDays(1)
	return p, true
}

func (s *ProgressRepositorySuite) TestListByUser_JoinsChallenge() {
	ctx := context.Background()
	hours := s.create(models.ChallengeHours, 60, 1)
	s.create(models.ChallengeStreak, 3, 2)

	got, err := s.repo.ListByUser(ctx, 1)
	s.Require().NoError(err)
	s.Require().Len(got, 1)
	s.Assert().Equal(hours.ID, got[0].ChallengeID)
	s.Assert().Equal(hours.ID, got[0].Challenge.ID)
	s.Assert().Equal(models.ChallengeHours, got[0].Challenge.Type)
	s.Assert().Equal(models.StateInProgress, got[0].State)

	none, err := s.repo.ListByUser(ctx, 42)
	s.Require().NoError(err)
	s.Assert().Empty(none)
}

func (s *ProgressRepositorySuite) TestApply_OnlyTouchesRequestedTypesAndUser() {
	ctx := context.Background()
	hours := s.create(models.ChallengeHours, 60, 1)
	streak := s.create(models.ChallengeStreak, 3, 1)
	otherUser := s.create(models.ChallengeHours, 60, 2)

	changed, err := s.repo.Apply(ctx, 1, []models.ChallengeType{models.ChallengeHours}, addOne)
	s.Require().NoError(err)
	s.Assert().Equal(1, changed)

	p, err := s.repo.GetForUser(ctx, 1, hours.ID)
	s.Require().NoError(err)
	s.Assert().Equal(1, p.CurrentValue)
	s.Assert().Equal(today.AddDays(1), p.LastUpdated)

	p, err = s.repo.GetForUser(ctx, 1, streak.ID)
	s.Require().NoError(err)
	s.Assert().Equal(0, p.CurrentValue)

	p, err = s.repo.GetForUser(ctx, 2, otherUser.ID)
	s.Require().NoError(err)
	s.Assert().Equal(0, p.CurrentValue)
}

func (s *ProgressRepositorySuite) TestApply_SkipsUnchangedRows() {
	ctx := context.Background()
	s.create(models.ChallengeHours, 60, 1)

	changed, err := s.repo.Apply(ctx, 1, []models.ChallengeType{models.ChallengeHours},
		func(ch models.Challenge, p models.ChallengeProgress) (models.ChallengeProgress, bool) {
			return p, false
		})
	s.Require().NoError(err)
	s.Assert().Zero(changed)
}

func (s *ProgressRepositorySuite) TestApply_RollsBackOnFailure() {
	ctx := context.Background()
	first := s.create(models.ChallengeSessionCount, 5, 1)
	second := s.create(models.ChallengeSessionCount, 5, 1)

	_, err := s.db.ExecContext(ctx, `UPDATE challenge_progress SET current_value = 1 WHERE challenge_id = ?`, second.ID)
	s.Require().NoError(err)
	_, err = s.db.ExecContext(ctx, `CREATE TRIGGER reject_two BEFORE UPDATE ON challenge_progress
WHEN NEW.current_value > 1 BEGIN SELECT RAISE(ABORT, 'rejected'); END`)
	s.Require().NoError(err)

	_, err = s.repo.Apply(ctx, 1, []models.ChallengeType{models.ChallengeSessionCount}, addOne)
	s.Require().Error(err)

	p, err := s.repo.GetForUser(ctx, 1, first.ID)
	s.Require().NoError(err)
	s.Assert().Equal(0, p.CurrentValue, "earlier write in the same update is rolled back")
}

func (s *ProgressRepositorySuite) TestApply_ConcurrentUpdatesDoNotLoseIncrements() {
	ctx := context.Background()
	ch := s.create(models.ChallengeSessionCount, 1000, 1)

	const writers = 20
	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.repo.Apply(ctx, 1, []models.ChallengeType{models.ChallengeSessionCount}, addOne); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		s.Require().NoError(err)
	}

	p, err := s.repo.GetForUser(ctx, 1, ch.ID)
	s.Require().NoError(err)
	s.Assert().Equal(writers, p.CurrentValue)
}

func (s *ProgressRepositorySuite) TestApply_AfterChallengeDeletedHasNoEffect() {
	ctx := context.Background()
	ch := s.create(models.ChallengeHours, 60, 1)
	_, err := s.challenges.Delete(ctx, ch.ID)
	s.Require().NoError(err)

	called := false
	changed, err := s.repo.Apply(ctx, 1, []models.ChallengeType{models.ChallengeHours},
		func(ch models.Challenge, p models.ChallengeProgress) (models.ChallengeProgress, bool) {
			called = true
			return p, true
		})
	s.Require().NoError(err)
	s.Assert().Zero(changed)
	s.Assert().False(called)
}

func (s *ProgressRepositorySuite) TestApply_ContextCancelled() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.repo.Apply(ctx, 1, []models.ChallengeType{models.ChallengeHours}, addOne)
	s.Assert().True(errors.Is(err, context.Canceled))
}

func TestProgressRepositorySuite(t *testing.T) {
	suite.Run(t, new(ProgressRepositorySuite))
}
