package kvstore

import (
	"context"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"

	"github.com/puckpicks/puckpicks/internal/domain/week"
	"github.com/puckpicks/puckpicks/internal/domain/weekly"
	"github.com/puckpicks/puckpicks/internal/platform/kv"
)

// WeeklyRepository stores one JSON document per week under "weekly:<key>".
type WeeklyRepository struct {
	store kv.Store
	locks keyedMutex
	now   func() time.Time
}

func NewWeeklyRepository(store kv.Store) *WeeklyRepository {
	return &WeeklyRepository{store: store, now: time.Now}
}

func (r *WeeklyRepository) Get(ctx context.Context, key week.Key) (weekly.State, bool, error) {
	raw, ok, err := r.store.Get(ctx, weeklyKey(key))
	if err != nil {
		return weekly.State{}, false, errors.Wrapf(err, "kvstore: get week state %s", key)
	}
	if !ok {
		return weekly.State{}, false, nil
	}

	var model weekStateModel
	if err := sonic.Unmarshal(raw, &model); err != nil {
		return weekly.State{}, false, errors.Wrapf(err, "kvstore: decode week state %s", key)
	}
	return fromWeekStateModel(model), true, nil
}

func (r *WeeklyRepository) Update(ctx context.Context, key week.Key, fn func(state *weekly.State) error) error {
	unlock := r.locks.lock(weeklyKey(key))
	defer unlock()

	state, ok, err := r.Get(ctx, key)
	if err != nil {
		return err
	}
	if !ok {
		state = weekly.NewState(key, r.now())
	}

	if err := fn(&state); err != nil {
		return err
	}
	state.UpdatedAt = r.now()

	raw, err := sonic.Marshal(toWeekStateModel(state))
	if err != nil {
		return errors.Wrapf(err, "kvstore: encode week state %s", key)
	}
	if err := r.store.Set(ctx, weeklyKey(key), raw); err != nil {
		return errors.Wrapf(err, "kvstore: put week state %s", key)
	}
	return nil
}
