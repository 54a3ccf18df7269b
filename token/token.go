// Copyright (c) 2024 The Tidal developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package token is a state-backed claim-token ledger. It enforces real
// balance invariants and participates in state checkpoint/revert, which makes
// it suitable both as the pool's ledger and as the ledger under test.
package token

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/tidalprotocol/tidal/slot"
	"github.com/tidalprotocol/tidal/state"
	"github.com/tidalprotocol/tidal/tidal"
)

var (
	slotTotalMinted = tidal.Blake2b([]byte("total-minted"))
	slotTotalBurned = tidal.Blake2b([]byte("total-burned"))
)

func accountKey(addr tidal.Address) tidal.Bytes32 {
	return tidal.BytesToBytes32(append([]byte("a"), addr.Bytes()...))
}

// Ledger tracks claim-token balances within the given state.
type Ledger struct {
	ctx         *slot.Context
	totalMinted *slot.Uint256
	totalBurned *slot.Uint256
}

// New create a new instance bound to the ledger identity within the given state.
func New(addr tidal.Address, st *state.State) *Ledger {
	ctx := slot.NewContext(addr, st)
	return &Ledger{
		ctx:         ctx,
		totalMinted: slot.NewUint256(ctx, slotTotalMinted),
		totalBurned: slot.NewUint256(ctx, slotTotalBurned),
	}
}

// Address returns the ledger identity.
func (l *Ledger) Address() tidal.Address {
	return l.ctx.Address()
}

func (l *Ledger) balanceSlot(addr tidal.Address) *slot.Uint256 {
	return slot.NewUint256(l.ctx, accountKey(addr))
}

// BalanceOf returns the claim-token balance of an account.
func (l *Ledger) BalanceOf(addr tidal.Address) (*big.Int, error) {
	balance, err := l.balanceSlot(addr).Get()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get token balance")
	}
	return balance, nil
}

// TotalSupply returns tokens minted minus tokens burned.
func (l *Ledger) TotalSupply() (*big.Int, error) {
	minted, err := l.totalMinted.Get()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get total minted")
	}
	burned, err := l.totalBurned.Get()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get total burned")
	}
	return minted.Sub(minted, burned), nil
}

// Mint creates amount new tokens on to's balance. Minting to the null
// identity is rejected with ok == false.
func (l *Ledger) Mint(to tidal.Address, amount *big.Int) (bool, error) {
	if amount == nil || amount.Sign() < 0 {
		return false, errors.New("negative mint amount")
	}
	if to.IsZero() {
		return false, nil
	}
	if err := l.balanceSlot(to).Add(amount); err != nil {
		return false, errors.Wrap(err, "failed to add token balance")
	}
	if err := l.totalMinted.Add(amount); err != nil {
		return false, errors.Wrap(err, "failed to add total minted")
	}
	return true, nil
}

// Burn destroys amount tokens from from's balance.
func (l *Ledger) Burn(from tidal.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 {
		return errors.New("negative burn amount")
	}
	balance, err := l.BalanceOf(from)
	if err != nil {
		return err
	}
	if balance.Cmp(amount) < 0 {
		return errors.New("burn exceeds balance")
	}
	if err := l.balanceSlot(from).Sub(amount); err != nil {
		return errors.Wrap(err, "failed to sub token balance")
	}
	if err := l.totalBurned.Add(amount); err != nil {
		return errors.Wrap(err, "failed to add total burned")
	}
	return nil
}

// TransferFrom moves amount tokens between accounts. An insufficient balance
// reports ok == false rather than an error, matching ledger semantics where
// the caller decides whether the rejection is fatal.
func (l *Ledger) TransferFrom(from, to tidal.Address, amount *big.Int) (bool, error) {
	if amount == nil || amount.Sign() < 0 {
		return false, errors.New("negative transfer amount")
	}
	balance, err := l.BalanceOf(from)
	if err != nil {
		return false, err
	}
	if balance.Cmp(amount) < 0 {
		return false, nil
	}
	if err := l.balanceSlot(from).Sub(amount); err != nil {
		return false, errors.Wrap(err, "failed to sub token balance")
	}
	if err := l.balanceSlot(to).Add(amount); err != nil {
		return false, errors.Wrap(err, "failed to add token balance")
	}
	return true, nil
}
