package kvstore

import (
	"context"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"

	"github.com/puckpicks/puckpicks/internal/domain/game"
	"github.com/puckpicks/puckpicks/internal/domain/week"
	"github.com/puckpicks/puckpicks/internal/platform/kv"
)

// ScheduleRepository stores the week's full game list under "schedule:<key>".
type ScheduleRepository struct {
	store kv.Store
	locks keyedMutex
}

func NewScheduleRepository(store kv.Store) *ScheduleRepository {
	return &ScheduleRepository{store: store}
}

func (r *ScheduleRepository) GetWeek(ctx context.Context, key week.Key) ([]game.Game, bool, error) {
	raw, ok, err := r.store.Get(ctx, scheduleKey(key))
	if err != nil {
		return nil, false, errors.Wrapf(err, "kvstore: get schedule %s", key)
	}
	if !ok {
		return nil, false, nil
	}

	var models []gameModel
	if err := sonic.Unmarshal(raw, &models); err != nil {
		return nil, false, errors.Wrapf(err, "kvstore: decode schedule %s", key)
	}
	return fromGameModels(models), true, nil
}

func (r *ScheduleRepository) SaveWeek(ctx context.Context, key week.Key, games []game.Game) error {
	unlock := r.locks.lock(scheduleKey(key))
	defer unlock()
	return r.put(ctx, key, games)
}

func (r *ScheduleRepository) Update(ctx context.Context, key week.Key, fn func(games []game.Game) ([]game.Game, error)) error {
	unlock := r.locks.lock(scheduleKey(key))
	defer unlock()

	games, _, err := r.GetWeek(ctx, key)
	if err != nil {
		return err
	}
	updated, err := fn(games)
	if err != nil {
		return err
	}
	return r.put(ctx, key, updated)
}

func (r *ScheduleRepository) put(ctx context.Context, key week.Key, games []game.Game) error {
	raw, err := sonic.Marshal(toGameModels(games))
	if err != nil {
		return errors.Wrapf(err, "kvstore: encode schedule %s", key)
	}
	if err := r.store.Set(ctx, scheduleKey(key), raw); err != nil {
		return errors.Wrapf(err, "kvstore: put schedule %s", key)
	}
	return nil
}
