// Copyright (c) 2024 The Tidal developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"math/big"

	"github.com/tidalprotocol/tidal/tidal"
)

// Read accessors over the pool ledger state.

func (p *Pool) Initialized() (bool, error) {
	return p.storage.initialized.Get()
}

func (p *Pool) Owner() (tidal.Address, error) {
	return p.storage.owner.Get()
}

func (p *Pool) Treasury() (tidal.Address, error) {
	return p.storage.treasury.Get()
}

func (p *Pool) TokenAddress() (tidal.Address, error) {
	return p.storage.tokenRef.Get()
}

func (p *Pool) RegistryAddress() (tidal.Address, error) {
	return p.storage.registryRef.Get()
}

// PriceRatio returns the claim-token exchange ratio, scaled by 1e18.
func (p *Pool) PriceRatio() (*big.Int, error) {
	return p.storage.PriceRatio()
}

func (p *Pool) Epoch() (uint64, error) {
	return p.storage.epoch.Get()
}

func (p *Pool) EpochInterval() (uint64, error) {
	return p.storage.epochInterval.Get()
}

func (p *Pool) LastUpdateTime() (uint64, error) {
	return p.storage.lastUpdateTime.Get()
}

func (p *Pool) StakeLimit() (*big.Int, error) {
	return p.storage.stakeLimit.Get()
}

func (p *Pool) TotalStaked() (*big.Int, error) {
	return p.storage.TotalStaked()
}

func (p *Pool) ProtocolFeeBasis() (uint64, error) {
	return p.storage.feeBasis.Get()
}

func (p *Pool) SafeguardEnabled() (bool, error) {
	return p.storage.safeguard.Get()
}

func (p *Pool) OverLimit() (bool, error) {
	return p.storage.overLimit.Get()
}

func (p *Pool) Paused() (bool, error) {
	return p.storage.paused.Get()
}

func (p *Pool) Validators() ([]tidal.Address, error) {
	return p.storage.Validators()
}

func (p *Pool) ValidatorCount() (int, error) {
	validators, err := p.storage.Validators()
	if err != nil {
		return 0, err
	}
	return len(validators), nil
}

// IsValidator reports roster membership.
func (p *Pool) IsValidator(addr tidal.Address) (bool, error) {
	validators, err := p.storage.Validators()
	if err != nil {
		return false, err
	}
	_, ok := indexOf(validators, addr)
	return ok, nil
}

// ValidatorIndex returns the cursor, the roster position deposits prefer.
func (p *Pool) ValidatorIndex() (uint64, error) {
	return p.storage.validatorIdx.Get()
}
