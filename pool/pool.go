// Copyright (c) 2024 The Tidal developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"math/big"

	"github.com/ethereum/go-ethereum/log"
	"github.com/pkg/errors"

	"github.com/tidalprotocol/tidal/state"
	"github.com/tidalprotocol/tidal/tidal"
)

var logger = log.New("pkg", "pool")

// SetLogger overrides the package logger.
func SetLogger(l log.Logger) {
	logger = l
}

// Pool is the pooled-staking accounting engine. Users deposit base asset,
// receive claim tokens representing a pro-rata share of the pool, and later
// redeem them for principal plus accrued rewards. Deposited funds are spread
// across a capacity-constrained validator roster through the external registry.
//
// Every externally-triggered operation is atomic: it runs against a state
// checkpoint and reverts all mutations on any error.
type Pool struct {
	storage  *storage
	registry Registry
	token    TokenLedger
	emitter  Emitter
}

// New create a new instance bound to the pool identity within the given state.
func New(addr tidal.Address, st *state.State, registry Registry, token TokenLedger, emitter Emitter) *Pool {
	if emitter == nil {
		emitter = noopEmitter{}
	}
	return &Pool{
		storage:  newStorage(addr, st),
		registry: registry,
		token:    token,
		emitter:  emitter,
	}
}

// Address returns the pool identity.
func (p *Pool) Address() tidal.Address {
	return p.storage.ctx.Address()
}

func (p *Pool) state() *state.State {
	return p.storage.ctx.State()
}

// run executes fn against a fresh checkpoint, reverting every state mutation
// if fn fails.
func (p *Pool) run(fn func() error) error {
	checkpoint := p.state().NewCheckpoint()
	if err := fn(); err != nil {
		p.state().RevertTo(checkpoint)
		return err
	}
	return nil
}

func (p *Pool) requireInitialized() error {
	initialized, err := p.storage.initialized.Get()
	if err != nil {
		return errors.Wrap(err, "failed to get initialized flag")
	}
	if !initialized {
		return errNotInitialized
	}
	return nil
}

func (p *Pool) requireOwner(caller tidal.Address) error {
	owner, err := p.storage.owner.Get()
	if err != nil {
		return errors.Wrap(err, "failed to get owner")
	}
	if owner != caller {
		return errNotOwner
	}
	return nil
}

// InitParams are the one-shot initialization parameters of the pool.
type InitParams struct {
	Owner          tidal.Address
	FirstValidator tidal.Address
	Registry       tidal.Address
	TokenLedger    tidal.Address
	Treasury       tidal.Address
	StartTime      uint64
	StakeLimit     *big.Int
	EpochInterval  uint64
}

// Initialize seeds the pool ledger state. It can succeed exactly once.
func (p *Pool) Initialize(params InitParams) error {
	return p.run(func() error {
		initialized, err := p.storage.initialized.Get()
		if err != nil {
			return errors.Wrap(err, "failed to get initialized flag")
		}
		if initialized {
			return errAlreadyInitialized
		}
		if params.FirstValidator.IsZero() {
			return errNullValidator
		}
		if params.EpochInterval == 0 {
			return errZeroInterval
		}
		if params.StakeLimit == nil || params.StakeLimit.Sign() <= 0 {
			return errZeroValue
		}

		p.storage.owner.Set(&params.Owner)
		p.storage.treasury.Set(&params.Treasury)
		p.storage.registryRef.Set(&params.Registry)
		p.storage.tokenRef.Set(&params.TokenLedger)

		if err := p.storage.SetValidators([]tidal.Address{params.FirstValidator}); err != nil {
			return err
		}
		p.storage.validatorIdx.Set(0)

		p.storage.priceRatio.Set(tidal.InitialRatio)
		p.storage.epoch.Set(0)
		p.storage.epochInterval.Set(params.EpochInterval)
		p.storage.lastUpdateTime.Set(params.StartTime)
		p.storage.stakeLimit.Set(params.StakeLimit)
		p.storage.totalStaked.Set(new(big.Int))
		p.storage.feeBasis.Set(0)

		p.storage.safeguard.Set(true)
		p.storage.overLimit.Set(false)
		p.storage.paused.Set(false)
		p.storage.guard.Set(GuardIdle)

		p.storage.initialized.Set(true)

		metricRosterGauge().Set(1)
		logger.Info("pool initialized",
			"validator", params.FirstValidator,
			"stakeLimit", params.StakeLimit,
			"epochInterval", params.EpochInterval)
		return nil
	})
}

// Deposit moves value from the depositor into pool custody, folds accrued
// rewards into the exchange ratio, delegates the value across the roster and
// mints claim tokens to the depositor. It returns the minted token amount.
func (p *Pool) Deposit(depositor tidal.Address, value *big.Int, now uint64) (*big.Int, error) {
	var minted *big.Int
	err := p.run(func() error {
		if err := p.requireInitialized(); err != nil {
			return err
		}
		if value == nil || value.Sign() <= 0 {
			return errZeroValue
		}

		// move the deposit into pool custody
		ok, err := p.state().SubBalance(depositor, value)
		if err != nil {
			return err
		}
		if !ok {
			return errDepositFunds
		}
		if err := p.state().AddBalance(p.Address(), value); err != nil {
			return err
		}

		total, err := p.storage.TotalStaked()
		if err != nil {
			return err
		}
		if total.Sign() == 0 {
			// the very first deposit skips limit checks and reward update
			if err := p.distribute(value); err != nil {
				return err
			}
			p.storage.totalStaked.Set(value)
		} else {
			if err := p.checkDepositLimits(total, value); err != nil {
				return err
			}
			if err := p.advanceEpoch(now); err != nil {
				return err
			}
			if err := p.updateRatio(value); err != nil {
				return err
			}
			if err := p.distribute(value); err != nil {
				return err
			}
			if err := p.storage.AddTotalStaked(value); err != nil {
				return err
			}
		}

		ratio, err := p.storage.PriceRatio()
		if err != nil {
			return err
		}
		minted = new(big.Int).Mul(value, tidal.RatioScale)
		minted.Quo(minted, ratio)

		ok, err = p.token.Mint(depositor, minted)
		if err != nil {
			return errors.Wrap(err, "failed to mint claim tokens")
		}
		if !ok {
			return errTokenMint
		}

		p.emit(DepositEvent{Depositor: depositor, Value: value, Minted: minted})
		metricDepositCount().Add(1)
		logger.Debug("deposit", "depositor", depositor, "value", value, "minted", minted)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return minted, nil
}

// checkDepositLimits enforces the aggregate capacity bound and the soft
// system stake limit with its sticky over-limit flag.
func (p *Pool) checkDepositLimits(total, value *big.Int) error {
	capacity, err := p.systemCapacity()
	if err != nil {
		return err
	}
	after := new(big.Int).Add(total, value)
	if after.Cmp(capacity) > 0 {
		return errSystemCapacityExceeded
	}

	safeguard, err := p.storage.safeguard.Get()
	if err != nil {
		return errors.Wrap(err, "failed to get safeguard flag")
	}
	overLimit, err := p.storage.overLimit.Get()
	if err != nil {
		return errors.Wrap(err, "failed to get over-limit flag")
	}
	if safeguard && overLimit {
		return errDepositsSuspended
	}

	limit, err := p.storage.stakeLimit.Get()
	if err != nil {
		return errors.Wrap(err, "failed to get stake limit")
	}
	if after.Cmp(limit) > 0 && !overLimit {
		// sticky until an explicit admin limit change clears it
		p.storage.overLimit.Set(true)
		logger.Warn("system stake limit breached", "limit", limit, "staked", after)
	}
	return nil
}

// systemCapacity is the aggregate bound: per-validator cap times roster size.
func (p *Pool) systemCapacity() (*big.Int, error) {
	maxStake, err := p.registry.MaxStakePerValidator()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get max stake per validator")
	}
	validators, err := p.storage.Validators()
	if err != nil {
		return nil, err
	}
	return new(big.Int).Mul(maxStake, big.NewInt(int64(len(validators)))), nil
}

// Withdraw redeems claim tokens for base asset, pulling liquidity from the
// cursor validator first and then from the rest of the roster.
func (p *Pool) Withdraw(caller tidal.Address, tokens *big.Int, now uint64) (*big.Int, error) {
	return p.withdraw(caller, tokens, now, nil)
}

// WithdrawFrom redeems claim tokens against a single named validator. The
// whole payout must be covered by that validator's delegated amount. This
// path is disabled while the pool is paused.
func (p *Pool) WithdrawFrom(caller tidal.Address, tokens *big.Int, validatorIndex uint64, now uint64) (*big.Int, error) {
	return p.withdraw(caller, tokens, now, &validatorIndex)
}

func (p *Pool) withdraw(caller tidal.Address, tokens *big.Int, now uint64, selected *uint64) (*big.Int, error) {
	var payout *big.Int
	err := p.run(func() error {
		if err := p.requireInitialized(); err != nil {
			return err
		}
		guard, err := p.storage.guard.Get()
		if err != nil {
			return errors.Wrap(err, "failed to get withdrawal guard")
		}
		if guard != GuardIdle {
			return errWithdrawalInFlight
		}
		p.storage.guard.Set(GuardBusy)

		if tokens == nil || tokens.Sign() <= 0 {
			return errZeroValue
		}
		if selected != nil {
			paused, err := p.storage.paused.Get()
			if err != nil {
				return errors.Wrap(err, "failed to get paused flag")
			}
			if paused {
				return errPaused
			}
		}

		// take the claim tokens into pool custody before anything else
		ok, err := p.token.TransferFrom(caller, p.Address(), tokens)
		if err != nil {
			return errors.Wrap(err, "failed to transfer claim tokens")
		}
		if !ok {
			return errTokenTransfer
		}

		// fold in unrealized rewards before pricing the payout
		if err := p.updateRatio(new(big.Int)); err != nil {
			return err
		}
		ratio, err := p.storage.PriceRatio()
		if err != nil {
			return err
		}
		payout = new(big.Int).Mul(tokens, ratio)
		payout.Quo(payout, tidal.RatioScale)

		if err := p.collect(payout, selected); err != nil {
			return err
		}
		if err := p.storage.SubTotalStaked(payout); err != nil {
			return err
		}

		if err := p.token.Burn(p.Address(), tokens); err != nil {
			return errors.Wrap(err, "failed to burn claim tokens")
		}
		p.emit(BurnEvent{Caller: caller, Tokens: tokens, Ratio: ratio})

		ok, err = p.state().SubBalance(p.Address(), payout)
		if err != nil {
			return err
		}
		if !ok {
			return errPayoutTransfer
		}
		if err := p.state().AddBalance(caller, payout); err != nil {
			return err
		}
		p.emit(WithdrawalEvent{Caller: caller, Payout: payout})

		mode := "unselected"
		if selected != nil {
			mode = "selected"
		}
		metricWithdrawalCount().AddWithLabel(1, map[string]string{"mode": mode})
		logger.Debug("withdrawal", "caller", caller, "tokens", tokens, "payout", payout, "mode", mode)

		p.storage.guard.Set(GuardIdle)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return payout, nil
}
