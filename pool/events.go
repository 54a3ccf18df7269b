// Copyright (c) 2024 The Tidal developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"math/big"

	"github.com/tidalprotocol/tidal/tidal"
)

// DepositEvent is emitted after a successful deposit.
type DepositEvent struct {
	Depositor tidal.Address
	Value     *big.Int
	Minted    *big.Int
}

// BurnEvent is emitted when claim tokens are burned during a withdrawal,
// carrying the exchange ratio in effect at that moment.
type BurnEvent struct {
	Caller tidal.Address
	Tokens *big.Int
	Ratio  *big.Int
}

// WithdrawalEvent is emitted after the base-asset payout has been transferred.
type WithdrawalEvent struct {
	Caller tidal.Address
	Payout *big.Int
}

// EpochEvent is emitted when the epoch counter advances.
type EpochEvent struct {
	Epoch uint64
}

// RatioEvent is emitted after a reward/ratio update that realized rewards.
type RatioEvent struct {
	Ratio *big.Int
	Fee   *big.Int
}

// Emitter receives the pool's notifications. Transport is up to the embedder.
type Emitter interface {
	Emit(event any)
}

type noopEmitter struct{}

func (noopEmitter) Emit(any) {}

func (p *Pool) emit(event any) {
	p.emitter.Emit(event)
}
