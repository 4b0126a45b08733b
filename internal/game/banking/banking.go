// Package banking moves gold between a player's purse and their bank and keeps
// a history of each transaction.
package banking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/darkthrone/darkthrone/internal/game/character"
)

var (
	// ErrInvalidAmount is returned for a non-positive amount.
	ErrInvalidAmount = errors.New("amount must be positive")
	// ErrInsufficientFunds is returned when the source balance is too small.
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// TransactionType names the direction of a bank transaction.
type TransactionType string

const (
	Deposit  TransactionType = "deposit"
	Withdraw TransactionType = "withdraw"
)

// History is one recorded bank transaction.
type History struct {
	ID        uuid.UUID
	PlayerID  uuid.UUID
	Amount    int
	Type      TransactionType
	CreatedAt time.Time
}

// HistoryRecorder stores and lists bank history.
type HistoryRecorder interface {
	Record(ctx context.Context, h History) error
	List(ctx context.Context, playerID uuid.UUID, since time.Time) ([]History, error)
}

// Service performs deposits and withdrawals.
type Service struct {
	recorder HistoryRecorder
	logger   *zap.Logger
	now      func() time.Time
}

// NewService creates a Service.
//
// Precondition: recorder and logger must be non-nil.
func NewService(recorder HistoryRecorder, logger *zap.Logger) *Service {
	if recorder == nil {
		panic("banking.NewService: precondition violated: recorder must be non-nil")
	}
	if logger == nil {
		panic("banking.NewService: precondition violated: logger must be non-nil")
	}
	return &Service{recorder: recorder, logger: logger, now: time.Now}
}

// Deposit moves amount gold from the player's purse into the bank.
//
// Precondition: p must be non-nil.
// Postcondition: On success Gold decreases and GoldInBank increases by amount and
// a Deposit entry is recorded. On error p is unchanged.
func (s *Service) Deposit(ctx context.Context, p *character.Player, amount int) error {
	s.logger.Debug("Depositing gold", zap.Int("amount", amount), zap.Stringer("player", p.ID))
	if amount <= 0 {
		return fmt.Errorf("banking: Deposit %d: %w", amount, ErrInvalidAmount)
	}
	if p.Gold < amount {
		return fmt.Errorf("banking: Deposit %d with %d gold: %w", amount, p.Gold, ErrInsufficientFunds)
	}
	if err := s.record(ctx, p, amount, Deposit); err != nil {
		return err
	}
	p.Gold -= amount
	p.GoldInBank += amount
	return nil
}

// Withdraw moves amount gold from the bank into the player's purse.
//
// Precondition: p must be non-nil.
// Postcondition: On success GoldInBank decreases and Gold increases by amount and
// a Withdraw entry is recorded. On error p is unchanged.
func (s *Service) Withdraw(ctx context.Context, p *character.Player, amount int) error {
	s.logger.Debug("Withdrawing gold", zap.Int("amount", amount), zap.Stringer("player", p.ID))
	if amount <= 0 {
		return fmt.Errorf("banking: Withdraw %d: %w", amount, ErrInvalidAmount)
	}
	if p.GoldInBank < amount {
		return fmt.Errorf("banking: Withdraw %d with %d banked: %w", amount, p.GoldInBank, ErrInsufficientFunds)
	}
	if err := s.record(ctx, p, amount, Withdraw); err != nil {
		return err
	}
	p.GoldInBank -= amount
	p.Gold += amount
	return nil
}

// History returns the player's transactions created after since, oldest first.
func (s *Service) History(ctx context.Context, p *character.Player, since time.Time) ([]History, error) {
	hs, err := s.recorder.List(ctx, p.ID, since)
	if err != nil {
		return nil, fmt.Errorf("banking: listing history for %s: %w", p.ID, err)
	}
	return hs, nil
}

func (s *Service) record(ctx context.Context, p *character.Player, amount int, typ TransactionType) error {
	h := History{
		ID:        uuid.New(),
		PlayerID:  p.ID,
		Amount:    amount,
		Type:      typ,
		CreatedAt: s.now().UTC(),
	}
	if err := s.recorder.Record(ctx, h); err != nil {
		return fmt.Errorf("banking: recording %s: %w", typ, err)
	}
	return nil
}
