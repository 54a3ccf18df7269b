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

// updateRatio folds externally-accrued rewards into the exchange ratio.
//
// The pool's spendable balance minus the incoming transfer that triggered
// this call is the realized reward. A basis-point protocol fee is carved out,
// the remainder lifts the ratio by net*scale/supply, the fee is minted to the
// treasury as shares at the updated ratio, and both portions are delegated
// back out. The ratio never decreases: realized rewards are non-negative and
// the fee never exceeds them.
func (p *Pool) updateRatio(incoming *big.Int) error {
	balance, err := p.state().GetBalance(p.Address())
	if err != nil {
		return errors.Wrap(err, "failed to get pool balance")
	}
	realized := new(big.Int).Sub(balance, incoming)
	if realized.Sign() <= 0 {
		return nil
	}

	feeBasis, err := p.storage.feeBasis.Get()
	if err != nil {
		return errors.Wrap(err, "failed to get fee basis")
	}
	fee := new(big.Int).Mul(realized, new(big.Int).SetUint64(feeBasis))
	fee.Quo(fee, big.NewInt(tidal.FeeBasisDenominator))
	net := new(big.Int).Sub(realized, fee)

	supply, err := p.token.TotalSupply()
	if err != nil {
		return errors.Wrap(err, "failed to get token supply")
	}
	ratio, err := p.storage.PriceRatio()
	if err != nil {
		return err
	}
	if supply.Sign() > 0 {
		increment := new(big.Int).Mul(net, tidal.RatioScale)
		increment.Quo(increment, supply)
		ratio = new(big.Int).Add(ratio, increment)
		p.storage.priceRatio.Set(ratio)
	}

	if err := p.distribute(net); err != nil {
		return err
	}

	if fee.Sign() > 0 {
		treasury, err := p.storage.treasury.Get()
		if err != nil {
			return errors.Wrap(err, "failed to get treasury")
		}
		// fee shares are priced at the already-updated ratio
		feeTokens := new(big.Int).Mul(fee, tidal.RatioScale)
		feeTokens.Quo(feeTokens, ratio)
		if feeTokens.Sign() > 0 {
			ok, err := p.token.Mint(treasury, feeTokens)
			if err != nil {
				return errors.Wrap(err, "failed to mint fee tokens")
			}
			if !ok {
				return errTokenMint
			}
		}
		if err := p.distribute(fee); err != nil {
			return err
		}
	}

	if err := p.storage.AddTotalStaked(realized); err != nil {
		return err
	}

	p.emit(RatioEvent{Ratio: ratio, Fee: fee})
	logger.Debug("rewards realized", "realized", realized, "fee", fee, "ratio", ratio)
	return nil
}
