// Package service implements the contest scoreboard: scoring, ranking, freeze and scroll.
package service

import (
	"context"

	"icpcboard/internal/contest/model"
	appErr "icpcboard/pkg/errors"
	"icpcboard/pkg/utils/logger"

	"go.uber.org/zap"
)

// AnyProblem matches every problem in a submission query.
const AnyProblem = -1

// SnapshotPublisher receives every committed scoreboard.
type SnapshotPublisher interface {
	Publish(ctx context.Context, snap *model.Snapshot) error
}

// BoardExporter writes the committed scoreboard when the contest ends.
type BoardExporter interface {
	Export(ctx context.Context, snap *model.Snapshot) error
}

// Config holds optional contest service collaborators.
type Config struct {
	Publishers []SnapshotPublisher
	Exporter   BoardExporter
}

// SubmitRequest is one judged submission.
type SubmitRequest struct {
	Problem int
	Team    string
	Status  model.Status
	Time    int
}

// SubmissionFilter selects submissions from a team log.
// Problem is AnyProblem or a problem id; an empty Status matches all verdicts.
type SubmissionFilter struct {
	Problem int
	Status  model.Status
}

func (f SubmissionFilter) match(rec model.SubmissionRecord) bool {
	if f.Problem != AnyProblem && rec.Problem != f.Problem {
		return false
	}
	return f.Status == "" || rec.Status == f.Status
}

// RankingResult is the committed rank of a team.
// Stale is set while the scoreboard is frozen.
type RankingResult struct {
	Team  string
	Rank  int
	Stale bool
}

// SubmissionResult is the latest matching submission, if any.
type SubmissionResult struct {
	Team   string
	Found  bool
	Record model.SubmissionRecord
}

// ContestService owns the whole contest state. Commands are applied one at a
// time to completion; it is not safe for concurrent use.
type ContestService struct {
	teams  map[string]*model.Team
	roster []*model.Team

	started      bool
	ended        bool
	frozen       bool
	duration     int
	problemCount int

	snapshot *model.Snapshot
	seq      int64

	publishers []SnapshotPublisher
	exporter   BoardExporter
}

// NewContestService creates an empty contest awaiting team registration.
func NewContestService(cfg Config) *ContestService {
	return &ContestService{
		teams:      make(map[string]*model.Team),
		publishers: cfg.Publishers,
		exporter:   cfg.Exporter,
	}
}

// RegisterTeam adds a team before the contest starts.
func (s *ContestService) RegisterTeam(ctx context.Context, name string) error {
	if err := s.ensureActive(); err != nil {
		return err
	}
	if name == "" {
		return appErr.BadRequest("team name is required")
	}
	if s.started {
		logger.Warn(ctx, "register rejected: contest started", zap.String("team", name))
		return appErr.New(appErr.ContestAlreadyStarted).WithDetail("team", name)
	}
	if _, ok := s.teams[name]; ok {
		logger.Warn(ctx, "register rejected: duplicated name", zap.String("team", name))
		return appErr.New(appErr.TeamNameDuplicated).WithDetail("team", name)
	}

	team := model.NewTeam(name)
	s.teams[name] = team
	s.roster = append(s.roster, team)
	logger.Debug(ctx, "team registered", zap.String("team", name), zap.Int("teams", len(s.roster)))
	return nil
}

// StartContest fixes the problem set and commits the initial name-ordered board.
func (s *ContestService) StartContest(ctx context.Context, duration, problemCount int) error {
	if err := s.ensureActive(); err != nil {
		return err
	}
	if s.started {
		logger.Warn(ctx, "start rejected: contest started")
		return appErr.New(appErr.ContestAlreadyStarted)
	}
	if problemCount < 1 || problemCount > model.MaxProblems {
		return appErr.Newf(appErr.ProblemOutOfRange, "problem count %d out of range 1..%d", problemCount, model.MaxProblems)
	}
	if duration < 0 {
		return appErr.BadRequest("duration must not be negative")
	}

	s.started = true
	s.duration = duration
	s.problemCount = problemCount
	for _, t := range s.roster {
		t.Reset(problemCount)
	}
	s.commit(ctx, byName(s.roster))
	logger.Info(ctx, "contest started",
		zap.Int("duration", duration), zap.Int("problems", problemCount), zap.Int("teams", len(s.roster)))
	return nil
}

// Submit logs a judged submission and scores it per the current mode.
func (s *ContestService) Submit(ctx context.Context, req SubmitRequest) error {
	if err := s.ensureActive(); err != nil {
		return err
	}
	if !s.started {
		return appErr.New(appErr.ContestNotStarted)
	}
	team, ok := s.teams[req.Team]
	if !ok {
		logger.Warn(ctx, "submit rejected: unknown team", zap.String("team", req.Team))
		return appErr.TeamNotFoundError(req.Team)
	}
	if req.Problem < 0 || req.Problem >= s.problemCount {
		return appErr.Newf(appErr.ProblemOutOfRange, "problem %d out of range", req.Problem)
	}
	if _, err := model.ParseStatus(string(req.Status)); err != nil {
		return appErr.Wrap(err, appErr.InvalidParams)
	}

	s.apply(team, req.Problem, req.Status, req.Time)
	logger.Debug(ctx, "submission applied",
		zap.String("team", req.Team),
		zap.String("problem", model.ProblemLabel(req.Problem)),
		zap.String("status", string(req.Status)),
		zap.Int("time", req.Time),
		zap.Bool("concealed", s.frozen))
	return nil
}

// Freeze starts concealing new results of unsolved problems.
func (s *ContestService) Freeze(ctx context.Context) error {
	if err := s.ensureActive(); err != nil {
		return err
	}
	if s.frozen {
		logger.Warn(ctx, "freeze rejected: already frozen")
		return appErr.New(appErr.ScoreboardAlreadyFrozen)
	}
	s.frozen = true
	logger.Info(ctx, "scoreboard frozen")
	return nil
}

// Flush ranks teams by their applied results and commits the board.
func (s *ContestService) Flush(ctx context.Context) error {
	if err := s.ensureActive(); err != nil {
		return err
	}
	for _, t := range s.roster {
		t.Recompute()
	}
	s.commit(ctx, rankTeams(s.roster))
	logger.Info(ctx, "scoreboard flushed", zap.Int64("seq", s.seq), zap.Bool("frozen", s.frozen))
	return nil
}

// QueryRanking returns the committed rank of a team.
// Before the contest starts nothing is committed and the rank is 0.
func (s *ContestService) QueryRanking(ctx context.Context, name string) (*RankingResult, error) {
	if err := s.ensureActive(); err != nil {
		return nil, err
	}
	if _, ok := s.teams[name]; !ok {
		logger.Warn(ctx, "ranking query rejected: unknown team", zap.String("team", name))
		return nil, appErr.TeamNotFoundError(name)
	}
	rank, _ := s.snapshot.Rank(name)
	return &RankingResult{Team: name, Rank: rank, Stale: s.frozen}, nil
}

// QuerySubmission finds the latest logged submission of a team matching filter,
// concealed or not. Ties on time go to the later log entry.
func (s *ContestService) QuerySubmission(ctx context.Context, name string, filter SubmissionFilter) (*SubmissionResult, error) {
	if err := s.ensureActive(); err != nil {
		return nil, err
	}
	team, ok := s.teams[name]
	if !ok {
		logger.Warn(ctx, "submission query rejected: unknown team", zap.String("team", name))
		return nil, appErr.TeamNotFoundError(name)
	}

	result := &SubmissionResult{Team: name}
	for _, rec := range team.Submissions {
		if !filter.match(rec) {
			continue
		}
		if !result.Found || rec.Time >= result.Record.Time {
			result.Found = true
			result.Record = rec
		}
	}
	return result, nil
}

// End closes the session and exports the committed board.
func (s *ContestService) End(ctx context.Context) error {
	if err := s.ensureActive(); err != nil {
		return err
	}
	s.ended = true
	if s.exporter != nil && s.snapshot != nil {
		if err := s.exporter.Export(ctx, s.snapshot); err != nil {
			logger.Warn(ctx, "export scoreboard failed", zap.Error(err))
		}
	}
	logger.Info(ctx, "contest ended", zap.Int64("snapshots", s.seq))
	return nil
}

// Snapshot returns the last committed board, nil before the contest starts.
func (s *ContestService) Snapshot() *model.Snapshot {
	return s.snapshot
}

// Frozen reports whether new results are being concealed.
func (s *ContestService) Frozen() bool {
	return s.frozen
}

// Ended reports whether End has been applied.
func (s *ContestService) Ended() bool {
	return s.ended
}

func (s *ContestService) ensureActive() error {
	if s.ended {
		return appErr.New(appErr.ContestEnded)
	}
	return nil
}

// commit replaces the committed board and hands it to the publishers.
// Publisher failures never reject the command.
func (s *ContestService) commit(ctx context.Context, order []*model.Team) {
	s.seq++
	s.snapshot = model.NewSnapshot(s.seq, order, s.frozen)
	for _, p := range s.publishers {
		if err := p.Publish(ctx, s.snapshot); err != nil {
			logger.Warn(ctx, "publish snapshot failed", zap.Int64("seq", s.seq), zap.Error(err))
		}
	}
}
