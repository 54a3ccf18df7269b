// Copyright (c) 2024 The Tidal developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"math/big"

	"github.com/tidalprotocol/tidal/tidal"
)

// Registry is the external capacity-constrained delegation target provider.
// Delegate moves base asset from pool custody into registry custody and
// withdraw moves it back; both must fail without partial effect.
type Registry interface {
	Delegate(pool, validator tidal.Address, amount *big.Int) error
	Withdraw(pool, validator tidal.Address, amount *big.Int) error
	DelegatedAmount(pool, validator tidal.Address) (*big.Int, error)
	StakeAmount(validator tidal.Address) (*big.Int, error)
	MaxStakePerValidator() (*big.Int, error)
}

// TokenLedger is the external fungible claim-token ledger.
type TokenLedger interface {
	Mint(to tidal.Address, amount *big.Int) (bool, error)
	Burn(from tidal.Address, amount *big.Int) error
	TransferFrom(from, to tidal.Address, amount *big.Int) (bool, error)
	TotalSupply() (*big.Int, error)
}
