package handlers

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"coin-desk.backend/internal/domain/entities"
	domainerrors "coin-desk.backend/internal/domain/errors"
)

// In-memory repositories backing handler tests.

type profileRepoStub struct {
	mu        sync.Mutex
	items     map[uuid.UUID]*entities.Profile
	emailToID map[string]uuid.UUID
}

func newProfileRepoStub() *profileRepoStub {
	return &profileRepoStub{
		items:     map[uuid.UUID]*entities.Profile{},
		emailToID: map[string]uuid.UUID{},
	}
}

func (s *profileRepoStub) Create(_ context.Context, profile *entities.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.emailToID[profile.Email]; ok {
		return domainerrors.ErrAlreadyExists
	}
	cpy := *profile
	s.items[profile.ID] = &cpy
	s.emailToID[profile.Email] = profile.ID
	return nil
}

func (s *profileRepoStub) GetByID(_ context.Context, id uuid.UUID) (*entities.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[id]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	cpy := *item
	return &cpy, nil
}

func (s *profileRepoStub) GetByEmail(_ context.Context, email string) (*entities.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.emailToID[email]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	cpy := *s.items[id]
	return &cpy, nil
}

func (s *profileRepoStub) Update(_ context.Context, profile *entities.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[profile.ID]; !ok {
		return domainerrors.ErrNotFound
	}
	cpy := *profile
	s.items[profile.ID] = &cpy
	return nil
}

func (s *profileRepoStub) UpdatePassword(_ context.Context, id uuid.UUID, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[id]
	if !ok {
		return domainerrors.ErrNotFound
	}
	item.PasswordHash = passwordHash
	return nil
}

func (s *profileRepoStub) UpdateLastLogin(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (s *profileRepoStub) SetActive(_ context.Context, id uuid.UUID, active bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[id]
	if !ok {
		return domainerrors.ErrNotFound
	}
	item.IsActive = active
	return nil
}

func (s *profileRepoStub) SetLevel(_ context.Context, id uuid.UUID, level entities.AccountLevel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[id]
	if !ok {
		return domainerrors.ErrNotFound
	}
	item.Level = level
	return nil
}

func (s *profileRepoStub) UpgradeGoldToPremium(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[id]
	if !ok {
		return domainerrors.ErrNotFound
	}
	if item.Level == entities.LevelGold {
		item.Level = entities.LevelPremium
	}
	return nil
}

func (s *profileRepoStub) SetBalance(_ context.Context, id uuid.UUID, balance decimal.Decimal, level entities.AccountLevel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[id]
	if !ok {
		return domainerrors.ErrNotFound
	}
	item.Balance = balance
	if level != "" {
		item.Level = level
	}
	return nil
}

func (s *profileRepoStub) AdjustBalance(_ context.Context, id uuid.UUID, delta decimal.Decimal) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[id]
	if !ok {
		return decimal.Zero, domainerrors.ErrNotFound
	}
	next := item.Balance.Add(delta)
	if next.IsNegative() {
		return decimal.Zero, domainerrors.ErrInsufficientBalance
	}
	item.Balance = next
	return next, nil
}

func (s *profileRepoStub) AdjustBalanceUnchecked(_ context.Context, id uuid.UUID, delta decimal.Decimal) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[id]
	if !ok {
		return decimal.Zero, domainerrors.ErrNotFound
	}
	item.Balance = item.Balance.Add(delta)
	return item.Balance, nil
}

func (s *profileRepoStub) List(_ context.Context, search string) ([]*entities.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []*entities.Profile{}
	for _, item := range s.items {
		if search != "" && !strings.Contains(item.Email, search) && !strings.Contains(item.FullName, search) {
			continue
		}
		cpy := *item
		out = append(out, &cpy)
	}
	return out, nil
}

func (s *profileRepoStub) Count(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.items)), nil
}

type txRepoStub struct {
	mu    sync.Mutex
	items map[uuid.UUID]*entities.Transaction
}

func newTxRepoStub() *txRepoStub {
	return &txRepoStub{items: map[uuid.UUID]*entities.Transaction{}}
}

func (s *txRepoStub) Create(_ context.Context, tx *entities.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cpy := *tx
	s.items[tx.ID] = &cpy
	return nil
}

func (s *txRepoStub) GetByID(_ context.Context, id uuid.UUID) (*entities.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[id]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	cpy := *item
	return &cpy, nil
}

func (s *txRepoStub) ResolvePending(_ context.Context, id uuid.UUID, status entities.TransactionStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[id]
	if !ok {
		return domainerrors.ErrNotFound
	}
	if item.Status.Terminal() {
		return domainerrors.ErrInvalidState
	}
	item.Status = status
	return nil
}

func (s *txRepoStub) GetByUserID(_ context.Context, userID uuid.UUID, limit, offset int) ([]*entities.Transaction, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	all := []*entities.Transaction{}
	for _, item := range s.items {
		if item.UserID == userID {
			cpy := *item
			all = append(all, &cpy)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	total := int64(len(all))
	if offset >= len(all) {
		return []*entities.Transaction{}, total, nil
	}
	all = all[offset:]
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, total, nil
}

func (s *txRepoStub) ListPendingDeposits(_ context.Context) ([]*entities.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []*entities.Transaction{}
	for _, item := range s.items {
		if item.Type == entities.TransactionTypeDeposit && item.Status == entities.TransactionStatusPending {
			cpy := *item
			out = append(out, &cpy)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *txRepoStub) SumCompletedByType(_ context.Context, txType entities.TransactionType) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sum := decimal.Zero
	for _, item := range s.items {
		if item.Type == txType && item.Status == entities.TransactionStatusCompleted {
			sum = sum.Add(item.Amount)
		}
	}
	return sum, nil
}

func (s *txRepoStub) CountByStatus(_ context.Context, status entities.TransactionStatus) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, item := range s.items {
		if item.Status == status {
			n++
		}
	}
	return n, nil
}

type tradeRepoStub struct {
	mu    sync.Mutex
	items map[uuid.UUID]*entities.Trade
}

func newTradeRepoStub() *tradeRepoStub {
	return &tradeRepoStub{items: map[uuid.UUID]*entities.Trade{}}
}

func (s *tradeRepoStub) Create(_ context.Context, trade *entities.Trade) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cpy := *trade
	s.items[trade.ID] = &cpy
	return nil
}

func (s *tradeRepoStub) GetByID(_ context.Context, id uuid.UUID) (*entities.Trade, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[id]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	cpy := *item
	return &cpy, nil
}

func (s *tradeRepoStub) CloseOpen(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[id]
	if !ok {
		return domainerrors.ErrNotFound
	}
	if item.Status != entities.TradeStatusOpen {
		return domainerrors.ErrInvalidState
	}
	item.Status = entities.TradeStatusClosed
	item.ClosedAt.SetValid(time.Now())
	return nil
}

func (s *tradeRepoStub) GetByUserID(_ context.Context, userID uuid.UUID, status entities.TradeStatus) ([]*entities.Trade, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []*entities.Trade{}
	for _, item := range s.items {
		if item.UserID != userID {
			continue
		}
		if status != "" && item.Status != status {
			continue
		}
		cpy := *item
		out = append(out, &cpy)
	}
	return out, nil
}

func (s *tradeRepoStub) CountOpen(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, item := range s.items {
		if item.Status == entities.TradeStatusOpen {
			n++
		}
	}
	return n, nil
}

type walletRepoStub struct {
	mu    sync.Mutex
	items map[entities.WithdrawalMethod]*entities.PlatformWallet
}

func newWalletRepoStub() *walletRepoStub {
	return &walletRepoStub{items: map[entities.WithdrawalMethod]*entities.PlatformWallet{}}
}

func (s *walletRepoStub) GetActiveByMethod(_ context.Context, method entities.WithdrawalMethod) (*entities.PlatformWallet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[method]
	if !ok || !item.IsActive {
		return nil, domainerrors.ErrNotFound
	}
	cpy := *item
	return &cpy, nil
}

func (s *walletRepoStub) List(_ context.Context) ([]*entities.PlatformWallet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []*entities.PlatformWallet{}
	for _, item := range s.items {
		cpy := *item
		out = append(out, &cpy)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Method < out[j].Method })
	return out, nil
}

func (s *walletRepoStub) Upsert(_ context.Context, wallet *entities.PlatformWallet) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	if existing, ok := s.items[wallet.Method]; ok {
		existing.Address = wallet.Address
		existing.IsActive = wallet.IsActive
		existing.UpdatedAt = now
		wallet.ID = existing.ID
		wallet.CreatedAt = existing.CreatedAt
		wallet.UpdatedAt = now
		return nil
	}
	wallet.ID = uuid.New()
	wallet.CreatedAt = now
	wallet.UpdatedAt = now
	cpy := *wallet
	s.items[wallet.Method] = &cpy
	return nil
}

type uowStub struct{}

func (uowStub) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
