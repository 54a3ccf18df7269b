// Copyright (c) 2024 The Tidal developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package token

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tidalprotocol/tidal/kv"
	"github.com/tidalprotocol/tidal/state"
	"github.com/tidalprotocol/tidal/test/datagen"
	"github.com/tidalprotocol/tidal/tidal"
)

func newLedger(t *testing.T) *Ledger {
	store, err := kv.NewMem()
	assert.NoError(t, err)
	return New(datagen.RandAddress(), state.New(store))
}

func TestMintBurn(t *testing.T) {
	ledger := newLedger(t)
	holder := datagen.RandAddress()

	ok, err := ledger.Mint(holder, big.NewInt(1000))
	assert.NoError(t, err)
	assert.True(t, ok)

	balance, err := ledger.BalanceOf(holder)
	assert.NoError(t, err)
	assert.Equal(t, big.NewInt(1000), balance)

	supply, err := ledger.TotalSupply()
	assert.NoError(t, err)
	assert.Equal(t, big.NewInt(1000), supply)

	assert.NoError(t, ledger.Burn(holder, big.NewInt(400)))

	balance, err = ledger.BalanceOf(holder)
	assert.NoError(t, err)
	assert.Equal(t, big.NewInt(600), balance)

	supply, err = ledger.TotalSupply()
	assert.NoError(t, err)
	assert.Equal(t, big.NewInt(600), supply)

	assert.Error(t, ledger.Burn(holder, big.NewInt(601)))
}

func TestMintToNullAddress(t *testing.T) {
	ledger := newLedger(t)

	ok, err := ledger.Mint(tidal.Address{}, big.NewInt(1))
	assert.NoError(t, err)
	assert.False(t, ok)

	supply, err := ledger.TotalSupply()
	assert.NoError(t, err)
	assert.Equal(t, big.NewInt(0), supply)
}

func TestTransferFrom(t *testing.T) {
	ledger := newLedger(t)
	from := datagen.RandAddress()
	to := datagen.RandAddress()

	_, err := ledger.Mint(from, big.NewInt(100))
	assert.NoError(t, err)

	ok, err := ledger.TransferFrom(from, to, big.NewInt(30))
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = ledger.TransferFrom(from, to, big.NewInt(71))
	assert.NoError(t, err)
	assert.False(t, ok)

	fromBal, _ := ledger.BalanceOf(from)
	toBal, _ := ledger.BalanceOf(to)
	assert.Equal(t, big.NewInt(70), fromBal)
	assert.Equal(t, big.NewInt(30), toBal)

	// transfers do not change the supply
	supply, _ := ledger.TotalSupply()
	assert.Equal(t, big.NewInt(100), supply)
}
