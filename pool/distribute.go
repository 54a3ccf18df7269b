// Copyright (c) 2024 The Tidal developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/tidalprotocol/tidal/tidal"
)

// distribute spreads value across the roster honoring the registry's
// per-validator cap. The cursor validator is tried first; if it cannot absorb
// the whole value, the remainder is placed by scanning the list from position
// 0 in order, and the cursor moves to the validator that absorbed the final
// remainder. A remainder left after traversing the whole list is a fatal
// capacity-exhaustion error, never a silent partial delegation.
func (p *Pool) distribute(value *big.Int) error {
	if value == nil || value.Sign() == 0 {
		return nil
	}
	validators, err := p.storage.Validators()
	if err != nil {
		return err
	}
	cursor, err := p.storage.validatorIdx.Get()
	if err != nil {
		return errors.Wrap(err, "failed to get validator index")
	}
	if cursor >= uint64(len(validators)) {
		return errBadValidatorIndex
	}
	maxStake, err := p.registry.MaxStakePerValidator()
	if err != nil {
		return errors.Wrap(err, "failed to get max stake per validator")
	}

	remaining := new(big.Int).Set(value)
	place := func(idx int) error {
		validator := validators[idx]
		staked, err := p.registry.StakeAmount(validator)
		if err != nil {
			return errors.Wrap(err, "failed to get validator stake")
		}
		available := new(big.Int).Sub(maxStake, staked)
		if available.Sign() <= 0 {
			return nil
		}
		amount := remaining
		if available.Cmp(remaining) < 0 {
			amount = available
		}
		if err := p.registry.Delegate(p.Address(), validator, amount); err != nil {
			return errors.Wrap(err, "failed to delegate")
		}
		remaining = new(big.Int).Sub(remaining, amount)
		if remaining.Sign() == 0 {
			p.storage.validatorIdx.Set(uint64(idx))
		}
		return nil
	}

	if err := place(int(cursor)); err != nil {
		return err
	}
	// the remainder scan starts over at position 0, not at the cursor
	for i := range validators {
		if remaining.Sign() == 0 {
			break
		}
		if i == int(cursor) {
			continue
		}
		if err := place(i); err != nil {
			return err
		}
	}
	if remaining.Sign() > 0 {
		return errInsufficientCapacity
	}
	return nil
}

// collect pulls payout back out of the registry into pool custody.
//
// With selected == nil the cursor validator is drained first and any
// remainder is satisfied by scanning the list from position 0; running out of
// delegated liquidity is fatal. With a selected index the entire payout must
// be covered by that single validator, with no spill-over.
func (p *Pool) collect(payout *big.Int, selected *uint64) error {
	if payout == nil || payout.Sign() == 0 {
		return nil
	}
	validators, err := p.storage.Validators()
	if err != nil {
		return err
	}

	if selected != nil {
		if *selected >= uint64(len(validators)) {
			return errBadValidatorIndex
		}
		validator := validators[*selected]
		delegated, err := p.registry.DelegatedAmount(p.Address(), validator)
		if err != nil {
			return errors.Wrap(err, "failed to get delegated amount")
		}
		if delegated.Cmp(payout) < 0 {
			return errInsufficientDelegation
		}
		if err := p.registry.Withdraw(p.Address(), validator, payout); err != nil {
			return errors.Wrap(err, "failed to withdraw delegation")
		}
		return nil
	}

	cursor, err := p.storage.validatorIdx.Get()
	if err != nil {
		return errors.Wrap(err, "failed to get validator index")
	}
	if cursor >= uint64(len(validators)) {
		return errBadValidatorIndex
	}

	remaining := new(big.Int).Set(payout)
	take := func(idx int) error {
		validator := validators[idx]
		delegated, err := p.registry.DelegatedAmount(p.Address(), validator)
		if err != nil {
			return errors.Wrap(err, "failed to get delegated amount")
		}
		if delegated.Sign() == 0 {
			return nil
		}
		amount := remaining
		if delegated.Cmp(remaining) < 0 {
			amount = delegated
		}
		if err := p.registry.Withdraw(p.Address(), validator, amount); err != nil {
			return errors.Wrap(err, "failed to withdraw delegation")
		}
		remaining = new(big.Int).Sub(remaining, amount)
		return nil
	}

	if err := take(int(cursor)); err != nil {
		return err
	}
	for i := range validators {
		if remaining.Sign() == 0 {
			break
		}
		if i == int(cursor) {
			continue
		}
		if err := take(i); err != nil {
			return err
		}
	}
	if remaining.Sign() > 0 {
		return errInsufficientLiquidity
	}
	return nil
}

// withdrawAll drains every unit delegated to validator back into pool
// custody and returns the drained amount. Used by the roster lifecycle.
func (p *Pool) withdrawAll(validator tidal.Address) (*big.Int, error) {
	delegated, err := p.registry.DelegatedAmount(p.Address(), validator)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get delegated amount")
	}
	if delegated.Sign() == 0 {
		return delegated, nil
	}
	if err := p.registry.Withdraw(p.Address(), validator, delegated); err != nil {
		return nil, errors.Wrap(err, "failed to withdraw delegation")
	}
	return delegated, nil
}
