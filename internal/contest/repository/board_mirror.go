package repository

import (
	"context"
	"strconv"
	"strings"
	"time"

	"icpcboard/internal/common/cache"
	"icpcboard/internal/contest/model"
	appErr "icpcboard/pkg/errors"
)

const defaultBoardKeyPrefix = "icpcboard"

// RedisBoardMirror copies every committed scoreboard into Redis for external viewers.
// Keys under prefix:
//
//	<prefix>:ranking      sorted set, member team, score rank
//	<prefix>:team:<name>  hash with rank, solved, penalty and cells
//	<prefix>:meta         hash with seq, frozen, teams and updated_at
type RedisBoardMirror struct {
	cache  cache.Cache
	prefix string
	now    func() time.Time
}

// NewRedisBoardMirror creates a mirror writing under prefix.
func NewRedisBoardMirror(cacheClient cache.Cache, prefix string) *RedisBoardMirror {
	if prefix == "" {
		prefix = defaultBoardKeyPrefix
	}
	return &RedisBoardMirror{
		cache:  cacheClient,
		prefix: prefix,
		now:    time.Now,
	}
}

func (m *RedisBoardMirror) rankingKey() string {
	return m.prefix + ":ranking"
}

func (m *RedisBoardMirror) teamKey(name string) string {
	return m.prefix + ":team:" + name
}

func (m *RedisBoardMirror) metaKey() string {
	return m.prefix + ":meta"
}

// Publish replaces the mirrored board with snap in one transaction.
func (m *RedisBoardMirror) Publish(ctx context.Context, snap *model.Snapshot) error {
	if snap == nil {
		return nil
	}
	members := make([]cache.ZMember, 0, len(snap.Standings))
	for _, st := range snap.Standings {
		members = append(members, cache.ZMember{Score: float64(st.Rank), Member: st.Team})
	}

	err := m.cache.TxPipeline(ctx, func(pipe cache.Pipeliner) error {
		if err := pipe.Del(m.rankingKey()); err != nil {
			return err
		}
		if err := pipe.ZAdd(m.rankingKey(), members...); err != nil {
			return err
		}
		for _, st := range snap.Standings {
			if err := pipe.HMSet(m.teamKey(st.Team), standingFields(st)); err != nil {
				return err
			}
		}
		return pipe.HMSet(m.metaKey(), map[string]interface{}{
			"seq":        snap.Seq,
			"frozen":     snap.Frozen,
			"teams":      len(snap.Standings),
			"updated_at": m.now().UTC().Format(time.RFC3339),
		})
	})
	if err != nil {
		return appErr.Wrapf(err, appErr.MirrorPublishFailed, "publish snapshot %d", snap.Seq)
	}
	return m.verify(ctx, snap)
}

// verify reads the ranking size and meta seq back so a publish that did not
// land is reported instead of leaving viewers on a stale board.
func (m *RedisBoardMirror) verify(ctx context.Context, snap *model.Snapshot) error {
	size, err := m.cache.ZCard(ctx, m.rankingKey())
	if err != nil {
		return appErr.Wrap(err, appErr.CacheError)
	}
	meta, err := m.cache.HGetAll(ctx, m.metaKey())
	if err != nil {
		return appErr.Wrap(err, appErr.CacheError)
	}
	if size != int64(len(snap.Standings)) || meta["seq"] != strconv.FormatInt(snap.Seq, 10) {
		return appErr.Newf(appErr.MirrorPublishFailed,
			"mirror holds %d teams at seq %q, want %d at seq %d", size, meta["seq"], len(snap.Standings), snap.Seq)
	}
	return nil
}

func standingFields(st model.Standing) map[string]interface{} {
	cells := make([]string, len(st.Cells))
	for i, c := range st.Cells {
		cells[i] = c.String()
	}
	return map[string]interface{}{
		"rank":    st.Rank,
		"solved":  st.Solved,
		"penalty": st.Penalty,
		"cells":   strings.Join(cells, " "),
	}
}
