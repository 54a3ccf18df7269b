// Copyright (c) 2024 The Tidal developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package registry is a state-backed, capacity-constrained validator
// registry. It keeps per-(pool, validator) delegation records and
// per-validator stake totals, enforces the global per-validator cap on every
// delegation, and moves base asset between pool and registry custody so that
// delegated funds are actually held by the registry identity.
package registry

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/tidalprotocol/tidal/slot"
	"github.com/tidalprotocol/tidal/state"
	"github.com/tidalprotocol/tidal/tidal"
)

var slotMaxStake = tidal.Blake2b([]byte("max-stake-per-validator"))

func delegationKey(pool, validator tidal.Address) tidal.Bytes32 {
	return tidal.Blake2b(pool.Bytes(), validator.Bytes())
}

func stakeKey(validator tidal.Address) tidal.Bytes32 {
	return tidal.BytesToBytes32(append([]byte("v"), validator.Bytes()...))
}

// Registry tracks validator delegations within the given state.
type Registry struct {
	ctx      *slot.Context
	maxStake *slot.Uint256
}

// New create a new instance bound to the registry identity within the given state.
func New(addr tidal.Address, st *state.State) *Registry {
	ctx := slot.NewContext(addr, st)
	return &Registry{
		ctx:      ctx,
		maxStake: slot.NewUint256(ctx, slotMaxStake),
	}
}

// Address returns the registry identity.
func (r *Registry) Address() tidal.Address {
	return r.ctx.Address()
}

func (r *Registry) delegationSlot(pool, validator tidal.Address) *slot.Uint256 {
	return slot.NewUint256(r.ctx, delegationKey(pool, validator))
}

func (r *Registry) stakeSlot(validator tidal.Address) *slot.Uint256 {
	return slot.NewUint256(r.ctx, stakeKey(validator))
}

// SetMaxStakePerValidator fixes the global per-validator cap.
func (r *Registry) SetMaxStakePerValidator(max *big.Int) {
	r.maxStake.Set(max)
}

// MaxStakePerValidator returns the global per-validator cap.
func (r *Registry) MaxStakePerValidator() (*big.Int, error) {
	max, err := r.maxStake.Get()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get max stake")
	}
	return max, nil
}

// StakeAmount returns the validator's total stake across all pools.
func (r *Registry) StakeAmount(validator tidal.Address) (*big.Int, error) {
	staked, err := r.stakeSlot(validator).Get()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get validator stake")
	}
	return staked, nil
}

// DelegatedAmount returns how much the pool has delegated to the validator.
func (r *Registry) DelegatedAmount(pool, validator tidal.Address) (*big.Int, error) {
	delegated, err := r.delegationSlot(pool, validator).Get()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get delegation")
	}
	return delegated, nil
}

// Delegate moves amount from pool custody into registry custody and records
// the delegation. The validator's total stake may never exceed the cap.
func (r *Registry) Delegate(pool, validator tidal.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() <= 0 {
		return errors.New("non-positive delegation amount")
	}
	staked, err := r.StakeAmount(validator)
	if err != nil {
		return err
	}
	max, err := r.MaxStakePerValidator()
	if err != nil {
		return err
	}
	if new(big.Int).Add(staked, amount).Cmp(max) > 0 {
		return errors.New("delegation exceeds validator cap")
	}

	st := r.ctx.State()
	ok, err := st.SubBalance(pool, amount)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("insufficient pool balance for delegation")
	}
	if err := st.AddBalance(r.Address(), amount); err != nil {
		return err
	}

	if err := r.delegationSlot(pool, validator).Add(amount); err != nil {
		return errors.Wrap(err, "failed to add delegation")
	}
	if err := r.stakeSlot(validator).Add(amount); err != nil {
		return errors.Wrap(err, "failed to add validator stake")
	}
	return nil
}

// Withdraw releases amount of the pool's delegation to the validator, moving
// the funds from registry custody back to the pool.
func (r *Registry) Withdraw(pool, validator tidal.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() <= 0 {
		return errors.New("non-positive withdrawal amount")
	}
	delegated, err := r.DelegatedAmount(pool, validator)
	if err != nil {
		return err
	}
	if delegated.Cmp(amount) < 0 {
		return errors.New("withdrawal exceeds delegation")
	}

	st := r.ctx.State()
	ok, err := st.SubBalance(r.Address(), amount)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("insufficient registry custody balance")
	}
	if err := st.AddBalance(pool, amount); err != nil {
		return err
	}

	if err := r.delegationSlot(pool, validator).Sub(amount); err != nil {
		return errors.Wrap(err, "failed to sub delegation")
	}
	if err := r.stakeSlot(validator).Sub(amount); err != nil {
		return errors.Wrap(err, "failed to sub validator stake")
	}
	return nil
}
