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

// Pause blocks the selected-validator withdrawal path. Pausing an already
// paused pool fails loudly.
func (p *Pool) Pause(caller tidal.Address) error {
	return p.run(func() error {
		if err := p.requireInitialized(); err != nil {
			return err
		}
		if err := p.requireOwner(caller); err != nil {
			return err
		}
		paused, err := p.storage.paused.Get()
		if err != nil {
			return errors.Wrap(err, "failed to get paused flag")
		}
		if paused {
			return errAlreadyPaused
		}
		p.storage.paused.Set(true)
		logger.Info("pool paused")
		return nil
	})
}

// Unpause re-enables the selected-validator withdrawal path.
func (p *Pool) Unpause(caller tidal.Address) error {
	return p.run(func() error {
		if err := p.requireInitialized(); err != nil {
			return err
		}
		if err := p.requireOwner(caller); err != nil {
			return err
		}
		paused, err := p.storage.paused.Get()
		if err != nil {
			return errors.Wrap(err, "failed to get paused flag")
		}
		if !paused {
			return errNotPaused
		}
		p.storage.paused.Set(false)
		logger.Info("pool unpaused")
		return nil
	})
}

// SetProtocolFeeBasis changes the basis-point fee skimmed from realized
// rewards. Capped at tidal.MaxProtocolFeeBasis.
func (p *Pool) SetProtocolFeeBasis(caller tidal.Address, basis uint64) error {
	return p.run(func() error {
		if err := p.requireInitialized(); err != nil {
			return err
		}
		if err := p.requireOwner(caller); err != nil {
			return err
		}
		if basis > tidal.MaxProtocolFeeBasis {
			return errFeeAboveCap
		}
		p.storage.feeBasis.Set(basis)
		logger.Info("protocol fee changed", "basis", basis)
		return nil
	})
}

// SetStakeLimit changes the soft system-wide stake limit. A no-op change is
// rejected, the limit must fit within the aggregate validator capacity, and
// raising it above the current total staked clears the sticky over-limit
// flag.
func (p *Pool) SetStakeLimit(caller tidal.Address, limit *big.Int) error {
	return p.run(func() error {
		if err := p.requireInitialized(); err != nil {
			return err
		}
		if err := p.requireOwner(caller); err != nil {
			return err
		}
		return p.setStakeLimit(limit)
	})
}

func (p *Pool) setStakeLimit(limit *big.Int) error {
	if limit == nil || limit.Sign() <= 0 {
		return errZeroValue
	}
	current, err := p.storage.stakeLimit.Get()
	if err != nil {
		return errors.Wrap(err, "failed to get stake limit")
	}
	if current.Cmp(limit) == 0 {
		return errSameStakeLimit
	}
	capacity, err := p.systemCapacity()
	if err != nil {
		return err
	}
	if limit.Cmp(capacity) > 0 {
		return errLimitAboveCapacity
	}
	p.storage.stakeLimit.Set(limit)

	total, err := p.storage.TotalStaked()
	if err != nil {
		return err
	}
	if limit.Cmp(total) > 0 {
		p.storage.overLimit.Set(false)
	}
	logger.Info("stake limit changed", "limit", limit)
	return nil
}

// DisableSafeguard turns off the over-limit deposit rejection. Fails if the
// safeguard is already disabled.
func (p *Pool) DisableSafeguard(caller tidal.Address) error {
	return p.run(func() error {
		if err := p.requireInitialized(); err != nil {
			return err
		}
		if err := p.requireOwner(caller); err != nil {
			return err
		}
		enabled, err := p.storage.safeguard.Get()
		if err != nil {
			return errors.Wrap(err, "failed to get safeguard flag")
		}
		if !enabled {
			return errSafeguardDisabled
		}
		p.storage.safeguard.Set(false)
		logger.Info("safeguard disabled")
		return nil
	})
}

// EnableSafeguard turns the over-limit deposit rejection back on, setting a
// fresh stake limit in the same call. Fails if already enabled.
func (p *Pool) EnableSafeguard(caller tidal.Address, limit *big.Int) error {
	return p.run(func() error {
		if err := p.requireInitialized(); err != nil {
			return err
		}
		if err := p.requireOwner(caller); err != nil {
			return err
		}
		enabled, err := p.storage.safeguard.Get()
		if err != nil {
			return errors.Wrap(err, "failed to get safeguard flag")
		}
		if enabled {
			return errSafeguardEnabled
		}
		if err := p.setStakeLimit(limit); err != nil {
			return err
		}
		p.storage.safeguard.Set(true)
		logger.Info("safeguard enabled", "limit", limit)
		return nil
	})
}

// SetEpochInterval changes the epoch pacing interval. Zero is rejected since
// the epoch math divides by it.
func (p *Pool) SetEpochInterval(caller tidal.Address, interval uint64) error {
	return p.run(func() error {
		if err := p.requireInitialized(); err != nil {
			return err
		}
		if err := p.requireOwner(caller); err != nil {
			return err
		}
		if interval == 0 {
			return errZeroInterval
		}
		p.storage.epochInterval.Set(interval)
		logger.Info("epoch interval changed", "interval", interval)
		return nil
	})
}
