package wallet

import (
	"context"
	"crypto/ed25519"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kislikjeka/moonwallet/internal/platform/account"
	"github.com/kislikjeka/moonwallet/internal/platform/activity"
	"github.com/kislikjeka/moonwallet/internal/platform/session"
	"github.com/kislikjeka/moonwallet/pkg/logger"
)

// active bundles everything owned by the currently active account: the
// activity store, its fetcher and ingestor goroutines and the push
// subscription. Torn down and rebuilt as a unit on account switch, so
// events for a no-longer-active address can never mutate a live store.
type active struct {
	account *account.Account
	store   *activity.Store
	fetcher *activity.Fetcher
	stream  activity.Stream
	cancel  context.CancelFunc
}

// Service composes the node gateway, the session guard and the
// per-account activity context into the operations the dashboard calls
type Service struct {
	node     NodeGateway
	push     PushDialer
	cache    BalanceCache
	accounts *account.Service
	guard    *session.Guard
	cfg      *activity.Config
	logger   *logger.Logger

	baseCtx context.Context

	mu        sync.Mutex
	active    *active
	listeners []func(address string)
}

// NewService creates a wallet service. The service is its own session
// unlocker: unlocking decrypts the active account's keystore.
func NewService(
	node NodeGateway,
	push PushDialer,
	cache BalanceCache,
	accounts *account.Service,
	cfg *activity.Config,
	log *logger.Logger,
) *Service {
	if cfg == nil {
		cfg = activity.DefaultConfig()
	}
	_ = cfg.Validate()

	s := &Service{
		node:     node,
		push:     push,
		cache:    cache,
		accounts: accounts,
		cfg:      cfg,
		logger:   log.WithField("service", "wallet"),
		baseCtx:  context.Background(),
	}
	s.guard = session.NewGuard(s, log)
	return s
}

// Start records the base context background goroutines are bound to;
// cancelling it stops the fetcher and ingestor of any active account
func (s *Service) Start(ctx context.Context) {
	s.baseCtx = ctx
}

// Guard exposes the session guard to the transport layer
func (s *Service) Guard() *session.Guard {
	return s.guard
}

// Unlock implements session.Unlocker by decrypting the active account's
// keystore blob
func (s *Service) Unlock(ctx context.Context, password string) ([]byte, error) {
	s.mu.Lock()
	act := s.active
	s.mu.Unlock()

	if act == nil {
		return nil, ErrNoActiveAccount
	}
	return s.accounts.UnlockKeystore(act.account, password)
}

// OnActivityChanged registers a listener fired after every merge into the
// active account's store. Must be called before the first activation.
func (s *Service) OnActivityChanged(fn func(address string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Activate makes the account the active one: verifies the password,
// unlocks the session, discards the previous account's activity context
// and builds a fresh one (store, snapshot fetcher, push subscription).
func (s *Service) Activate(ctx context.Context, id uuid.UUID, password string) (*account.Account, error) {
	acc, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	secret, err := s.accounts.UnlockKeystore(acc, password)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.teardownLocked()

	runCtx, cancel := context.WithCancel(s.baseCtx)

	store := activity.NewStore(acc.Address)
	for _, fn := range s.listeners {
		fn := fn
		store.OnChange(func() { fn(acc.Address) })
	}

	fetcher := activity.NewFetcher(s.cfg, s.node, store, s.logger)
	go fetcher.Run(runCtx)

	act := &active{
		account: acc,
		store:   store,
		fetcher: fetcher,
		cancel:  cancel,
	}

	stream, err := s.push.Subscribe(runCtx, acc.Address)
	if err != nil {
		// Polling alone keeps the feed correct; the push channel is an
		// optimization, not a requirement
		s.logger.Warn("push subscription failed, relying on polling",
			"address", acc.Address, "error", err)
	} else {
		act.stream = stream
		ingestor := activity.NewIngestor(store, fetcher, s.balanceSink(acc.Address), s.logger)
		go ingestor.Run(runCtx, stream)
	}

	s.active = act
	s.guard.SetUnlocked(secret)

	s.logger.Info("account activated", "account_id", acc.ID, "address", acc.Address)
	return acc, nil
}

// Deactivate discards the active account context and locks the session
func (s *Service) Deactivate() {
	s.mu.Lock()
	s.teardownLocked()
	s.mu.Unlock()
	s.guard.Lock()
}

// teardownLocked disposes the current activity context. Caller holds s.mu.
func (s *Service) teardownLocked() {
	if s.active == nil {
		return
	}
	s.active.cancel()
	if s.active.stream != nil {
		_ = s.active.stream.Close()
	}
	s.logger.Info("account deactivated", "address", s.active.account.Address)
	s.active = nil
}

// ActiveAccount returns the currently active account
func (s *Service) ActiveAccount() (*account.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return nil, ErrNoActiveAccount
	}
	return s.active.account, nil
}

// CurrentPage projects one page of the active account's activity feed
func (s *Service) CurrentPage(q activity.Query) (activity.PageResult, error) {
	s.mu.Lock()
	act := s.active
	s.mu.Unlock()

	if act == nil {
		return activity.PageResult{}, ErrNoActiveAccount
	}
	return activity.Project(act.store.Snapshot(), q), nil
}

// RefreshNow fetches and merges a fresh snapshot synchronously
func (s *Service) RefreshNow(ctx context.Context) error {
	s.mu.Lock()
	act := s.active
	s.mu.Unlock()

	if act == nil {
		return ErrNoActiveAccount
	}
	return act.fetcher.RefreshNow(ctx)
}

// Balance returns the active account's balance, preferring the cache
func (s *Service) Balance(ctx context.Context) (int64, error) {
	s.mu.Lock()
	act := s.active
	s.mu.Unlock()

	if act == nil {
		return 0, ErrNoActiveAccount
	}

	if s.cache != nil {
		if balance, ok, err := s.cache.Get(ctx, act.account.Address); err == nil && ok {
			return balance, nil
		}
	}

	balance, err := s.node.GetBalance(ctx, act.account.Address)
	if err != nil {
		return 0, fmt.Errorf("failed to get balance: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, act.account.Address, balance); err != nil {
			s.logger.Warn("failed to cache balance", "error", err)
		}
	}
	return balance, nil
}

// balanceSink writes push-channel balance updates through to the cache
func (s *Service) balanceSink(address string) activity.BalanceSink {
	return func(balance int64) {
		if s.cache == nil {
			return
		}
		if err := s.cache.Set(s.baseCtx, address, balance); err != nil {
			s.logger.Warn("failed to cache pushed balance", "error", err)
		}
	}
}

// Send submits a transfer. The operation is guarded: while the session is
// locked it is captured for replay and ErrReauthRequired is returned. The
// returned hash is empty in that case.
func (s *Service) Send(ctx context.Context, req SendRequest) (string, error) {
	if _, err := account.ValidateAddress(req.Recipient); err != nil {
		return "", ErrInvalidRecipient
	}
	if req.Amount <= 0 {
		return "", ErrInvalidAmount
	}

	sender, err := s.ActiveAccount()
	if err != nil {
		return "", err
	}

	var hash string
	err = s.guard.Guard(ctx, "send", func(ctx context.Context) error {
		tx := SignedTransaction{
			Sender:       sender.Address,
			Recipient:    req.Recipient,
			Amount:       req.Amount,
			PrivacyLevel: req.PrivacyLevel,
			Timestamp:    time.Now().Unix(),
		}
		if err := s.sign(&tx.PublicKey, &tx.Signature, tx); err != nil {
			return err
		}

		h, err := s.node.SendTransaction(ctx, tx)
		if err != nil {
			return err
		}
		hash = h
		s.logger.Info("transaction submitted", "hash", h, "recipient", req.Recipient)
		return nil
	})
	return hash, err
}

// DeployContract submits a contract deployment; guarded like Send
func (s *Service) DeployContract(ctx context.Context, req DeployRequest) (string, error) {
	if req.Code == "" {
		return "", fmt.Errorf("contract code is required")
	}

	sender, err := s.ActiveAccount()
	if err != nil {
		return "", err
	}

	var hash string
	err = s.guard.Guard(ctx, "deploy contract", func(ctx context.Context) error {
		deploy := SignedDeploy{
			Sender:    sender.Address,
			Code:      req.Code,
			VM:        req.VM,
			GasLimit:  req.GasLimit,
			Timestamp: time.Now().Unix(),
		}
		if err := s.sign(&deploy.PublicKey, &deploy.Signature, deploy); err != nil {
			return err
		}

		h, err := s.node.DeployContract(ctx, deploy)
		if err != nil {
			return err
		}
		hash = h
		s.logger.Info("contract deployment submitted", "hash", h)
		return nil
	})
	return hash, err
}

// RequestFaucet asks the faucet to fund the active account. Not a
// sensitive operation; no secret material involved.
func (s *Service) RequestFaucet(ctx context.Context, amount int64) error {
	acc, err := s.ActiveAccount()
	if err != nil {
		return err
	}
	return s.node.RequestFaucet(ctx, acc.Address, amount)
}

// StakingInfo returns the staking overview for the active account
func (s *Service) StakingInfo(ctx context.Context) (*StakingInfo, error) {
	acc, err := s.ActiveAccount()
	if err != nil {
		return nil, err
	}
	return s.node.GetStakingInfo(ctx, acc.Address)
}

// Status reports the session state for the dashboard
func (s *Service) Status() SessionStatus {
	st := SessionStatus{State: string(s.guard.State())}
	if reason, ok := s.guard.PendingReason(); ok {
		st.PendingReason = reason
	}
	return st
}

// sign fills pub/sig from the session's secret material over the
// canonical JSON encoding of payload (with signature fields still empty)
func (s *Service) sign(pub, sig *string, payload any) error {
	seed, err := s.guard.Secret()
	if err != nil {
		return err
	}
	defer func() {
		for i := range seed {
			seed[i] = 0
		}
	}()

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode payload: %w", err)
	}

	priv := ed25519.NewKeyFromSeed(seed)
	*pub = hex.EncodeToString(priv.Public().(ed25519.PublicKey))
	*sig = hex.EncodeToString(ed25519.Sign(priv, data))
	return nil
}
