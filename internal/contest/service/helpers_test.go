package service

import (
	"context"
	"testing"

	"icpcboard/internal/contest/model"

	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	snaps []*model.Snapshot
	err   error
}

func (p *recordingPublisher) Publish(_ context.Context, snap *model.Snapshot) error {
	p.snaps = append(p.snaps, snap)
	return p.err
}

type recordingExporter struct {
	snaps []*model.Snapshot
	err   error
}

func (e *recordingExporter) Export(_ context.Context, snap *model.Snapshot) error {
	e.snaps = append(e.snaps, snap)
	return e.err
}

// newStartedContest registers teams and starts a contest with problemCount problems.
func newStartedContest(t *testing.T, problemCount int, teams ...string) *ContestService {
	t.Helper()
	svc := NewContestService(Config{})
	ctx := context.Background()
	for _, name := range teams {
		require.NoError(t, svc.RegisterTeam(ctx, name))
	}
	require.NoError(t, svc.StartContest(ctx, 300, problemCount))
	return svc
}

func submit(t *testing.T, svc *ContestService, team string, problem int, status model.Status, at int) {
	t.Helper()
	require.NoError(t, svc.Submit(context.Background(), SubmitRequest{
		Problem: problem,
		Team:    team,
		Status:  status,
		Time:    at,
	}))
}

// reconstruct rebuilds an aggregate from a submission log with running rules only.
func reconstruct(log []model.SubmissionRecord, problemCount int) (solved, penalty int) {
	wrong := make([]int, problemCount)
	done := make([]bool, problemCount)
	for _, rec := range log {
		if done[rec.Problem] {
			continue
		}
		if rec.Status.Accepted() {
			done[rec.Problem] = true
			solved++
			penalty += model.PenaltyPerWrong*wrong[rec.Problem] + rec.Time
			continue
		}
		wrong[rec.Problem]++
	}
	return solved, penalty
}
