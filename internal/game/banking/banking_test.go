package banking_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"

	"github.com/darkthrone/darkthrone/internal/game/banking"
	"github.com/darkthrone/darkthrone/internal/game/character"
)

func newPlayer() *character.Player {
	return &character.Player{ID: uuid.New(), DisplayName: "TestPlayer", Gold: 20, GoldInBank: 40}
}

func newService(t testing.TB) (*banking.Service, *banking.MemoryRecorder, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	rec := banking.NewMemoryRecorder()
	return banking.NewService(rec, zap.New(core)), rec, logs
}

type failingRecorder struct{}

func (failingRecorder) Record(context.Context, banking.History) error {
	return errors.New("store unavailable")
}

func (failingRecorder) List(context.Context, uuid.UUID, time.Time) ([]banking.History, error) {
	return nil, errors.New("store unavailable")
}

func TestDeposit_UpdatesBalancesAndRecords(t *testing.T) {
	svc, _, logs := newService(t)
	p := newPlayer()
	since := time.Now().Add(-time.Minute)

	require.NoError(t, svc.Deposit(context.Background(), p, 10))
	assert.Equal(t, 10, p.Gold)
	assert.Equal(t, 50, p.GoldInBank)

	entries := logs.FilterMessage("Depositing gold").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(10), entries[0].ContextMap()["amount"])

	hs, err := svc.History(context.Background(), p, since)
	require.NoError(t, err)
	require.Len(t, hs, 1)
	assert.Equal(t, banking.Deposit, hs[0].Type)
	assert.Equal(t, 10, hs[0].Amount)
	assert.Equal(t, p.ID, hs[0].PlayerID)
	assert.NotEqual(t, uuid.Nil, hs[0].ID)
}

func TestWithdraw_UpdatesBalancesAndRecords(t *testing.T) {
	svc, _, logs := newService(t)
	p := newPlayer()

	require.NoError(t, svc.Withdraw(context.Background(), p, 10))
	assert.Equal(t, 30, p.Gold)
	assert.Equal(t, 30, p.GoldInBank)
	assert.Equal(t, 1, logs.FilterMessage("Withdrawing gold").Len())

	hs, err := svc.History(context.Background(), p, time.Time{})
	require.NoError(t, err)
	require.Len(t, hs, 1)
	assert.Equal(t, banking.Withdraw, hs[0].Type)
}

func TestDeposit_Rejects(t *testing.T) {
	svc, _, _ := newService(t)
	p := newPlayer()

	assert.ErrorIs(t, svc.Deposit(context.Background(), p, 0), banking.ErrInvalidAmount)
	assert.ErrorIs(t, svc.Deposit(context.Background(), p, -5), banking.ErrInvalidAmount)
	assert.ErrorIs(t, svc.Deposit(context.Background(), p, 21), banking.ErrInsufficientFunds)
	assert.Equal(t, 20, p.Gold)
	assert.Equal(t, 40, p.GoldInBank)
}

func TestWithdraw_Rejects(t *testing.T) {
	svc, _, _ := newService(t)
	p := newPlayer()
	assert.ErrorIs(t, svc.Withdraw(context.Background(), p, 41), banking.ErrInsufficientFunds)
	assert.Equal(t, 40, p.GoldInBank)
}

func TestRecorderFailure_LeavesPlayerUnchanged(t *testing.T) {
	svc := banking.NewService(failingRecorder{}, zap.NewNop())
	p := newPlayer()
	require.Error(t, svc.Deposit(context.Background(), p, 5))
	assert.Equal(t, 20, p.Gold)
	assert.Equal(t, 40, p.GoldInBank)

	_, err := svc.History(context.Background(), p, time.Time{})
	require.Error(t, err)
}

func TestCancelledContext(t *testing.T) {
	svc, _, _ := newService(t)
	p := newPlayer()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, svc.Deposit(ctx, p, 5), context.Canceled)
	assert.Equal(t, 20, p.Gold)
}

func TestHistory_FiltersBySinceAndPlayer(t *testing.T) {
	rec := banking.NewMemoryRecorder()
	ctx := context.Background()
	pid := uuid.New()
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, rec.Record(ctx, banking.History{ID: uuid.New(), PlayerID: pid, Amount: 1, CreatedAt: base}))
	require.NoError(t, rec.Record(ctx, banking.History{ID: uuid.New(), PlayerID: pid, Amount: 2, CreatedAt: base.Add(time.Hour)}))
	require.NoError(t, rec.Record(ctx, banking.History{ID: uuid.New(), PlayerID: uuid.New(), Amount: 3, CreatedAt: base.Add(time.Hour)}))

	hs, err := rec.List(ctx, pid, base)
	require.NoError(t, err)
	require.Len(t, hs, 1)
	assert.Equal(t, 2, hs[0].Amount)
}

func TestNewService_PanicsOnNil(t *testing.T) {
	assert.Panics(t, func() { banking.NewService(nil, zap.NewNop()) })
	assert.Panics(t, func() { banking.NewService(banking.NewMemoryRecorder(), nil) })
}

func TestProperty_TransactionsConserveGold(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		svc := banking.NewService(banking.NewMemoryRecorder(), zap.NewNop())
		p := &character.Player{
			ID:         uuid.New(),
			Gold:       rapid.IntRange(0, 10_000).Draw(rt, "gold"),
			GoldInBank: rapid.IntRange(0, 10_000).Draw(rt, "bank"),
		}
		total := p.Gold + p.GoldInBank
		ops := rapid.IntRange(1, 20).Draw(rt, "ops")
		for i := 0; i < ops; i++ {
			amount := rapid.IntRange(-5, 5_000).Draw(rt, "amount")
			if rapid.Bool().Draw(rt, "deposit") {
				_ = svc.Deposit(context.Background(), p, amount)
			} else {
				_ = svc.Withdraw(context.Background(), p, amount)
			}
			if p.Gold+p.GoldInBank != total || p.Gold < 0 || p.GoldInBank < 0 {
				rt.Fatalf("balances drifted: gold=%d bank=%d total=%d", p.Gold, p.GoldInBank, total)
			}
		}
	})
}
