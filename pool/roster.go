// Copyright (c) 2024 The Tidal developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"github.com/pkg/errors"

	"github.com/tidalprotocol/tidal/tidal"
)

func indexOf(list []tidal.Address, addr tidal.Address) (int, bool) {
	for i, v := range list {
		if v == addr {
			return i, true
		}
	}
	return 0, false
}

// AddValidator appends a validator to the roster.
func (p *Pool) AddValidator(caller, validator tidal.Address) error {
	return p.run(func() error {
		if err := p.requireInitialized(); err != nil {
			return err
		}
		if err := p.requireOwner(caller); err != nil {
			return err
		}
		if validator.IsZero() {
			return errNullValidator
		}
		validators, err := p.storage.Validators()
		if err != nil {
			return err
		}
		if _, ok := indexOf(validators, validator); ok {
			return errValidatorListed
		}
		if err := p.storage.SetValidators(append(validators, validator)); err != nil {
			return err
		}
		metricRosterGauge().Set(int64(len(validators) + 1))
		logger.Info("validator added", "validator", validator)
		return nil
	})
}

// RemoveValidator removes a validator by swap-with-last (the list order is
// not preserved), draining its delegated stake and re-placing that stake
// among the remaining validators. The pool's total staked is unchanged by the
// removal itself.
func (p *Pool) RemoveValidator(caller, validator tidal.Address) error {
	return p.run(func() error {
		if err := p.requireInitialized(); err != nil {
			return err
		}
		if err := p.requireOwner(caller); err != nil {
			return err
		}
		validators, err := p.storage.Validators()
		if err != nil {
			return err
		}
		idx, ok := indexOf(validators, validator)
		if !ok {
			return errValidatorNotListed
		}
		if len(validators) == 1 {
			return errLastValidator
		}

		drained, err := p.withdrawAll(validator)
		if err != nil {
			return err
		}

		last := len(validators) - 1
		validators[idx] = validators[last]
		validators = validators[:last]
		if err := p.storage.SetValidators(validators); err != nil {
			return err
		}

		cursor, err := p.storage.validatorIdx.Get()
		if err != nil {
			return errors.Wrap(err, "failed to get validator index")
		}
		switch cursor {
		case uint64(idx):
			// cursor pointed at the removed validator
			p.storage.validatorIdx.Set(0)
		case uint64(last):
			// cursor followed the swapped-in last element
			p.storage.validatorIdx.Set(uint64(idx))
		}

		if err := p.distribute(drained); err != nil {
			return err
		}

		metricRosterGauge().Set(int64(len(validators)))
		logger.Info("validator removed", "validator", validator, "drained", drained)
		return nil
	})
}

// ReplaceValidator swaps out a listed validator for a new one, moving the old
// validator's full delegated stake. The cursor moves to the replaced index so
// the incoming validator is the preferred delegation target.
func (p *Pool) ReplaceValidator(caller, old, replacement tidal.Address) error {
	return p.run(func() error {
		if err := p.requireInitialized(); err != nil {
			return err
		}
		if err := p.requireOwner(caller); err != nil {
			return err
		}
		validators, err := p.storage.Validators()
		if err != nil {
			return err
		}
		idx, ok := indexOf(validators, old)
		if !ok {
			return errValidatorNotListed
		}
		// move the cursor first so re-distribution prefers the replacement
		p.storage.validatorIdx.Set(uint64(idx))
		return p.replaceAt(validators, idx, replacement)
	})
}

// ReplaceValidatorAt swaps out the validator at the given index. Unlike
// replacement by address, the cursor is left where it is.
func (p *Pool) ReplaceValidatorAt(caller tidal.Address, index uint64, replacement tidal.Address) error {
	return p.run(func() error {
		if err := p.requireInitialized(); err != nil {
			return err
		}
		if err := p.requireOwner(caller); err != nil {
			return err
		}
		validators, err := p.storage.Validators()
		if err != nil {
			return err
		}
		if index >= uint64(len(validators)) {
			return errBadValidatorIndex
		}
		return p.replaceAt(validators, int(index), replacement)
	})
}

func (p *Pool) replaceAt(validators []tidal.Address, idx int, replacement tidal.Address) error {
	if replacement.IsZero() {
		return errNullValidator
	}
	if _, ok := indexOf(validators, replacement); ok {
		return errValidatorListed
	}

	old := validators[idx]
	drained, err := p.withdrawAll(old)
	if err != nil {
		return err
	}

	validators[idx] = replacement
	if err := p.storage.SetValidators(validators); err != nil {
		return err
	}
	if err := p.distribute(drained); err != nil {
		return err
	}
	logger.Info("validator replaced", "old", old, "new", replacement, "drained", drained)
	return nil
}

// SetValidatorIndex points the cursor at the given roster position.
func (p *Pool) SetValidatorIndex(caller tidal.Address, index uint64) error {
	return p.run(func() error {
		if err := p.requireInitialized(); err != nil {
			return err
		}
		if err := p.requireOwner(caller); err != nil {
			return err
		}
		validators, err := p.storage.Validators()
		if err != nil {
			return err
		}
		if index >= uint64(len(validators)) {
			return errBadValidatorIndex
		}
		p.storage.validatorIdx.Set(index)
		return nil
	})
}
