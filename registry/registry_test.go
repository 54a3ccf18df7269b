// Copyright (c) 2024 The Tidal developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package registry

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tidalprotocol/tidal/kv"
	"github.com/tidalprotocol/tidal/state"
	"github.com/tidalprotocol/tidal/test/datagen"
	"github.com/tidalprotocol/tidal/tidal"
)

func newRegistry(t *testing.T) (*Registry, *state.State, tidal.Address) {
	store, err := kv.NewMem()
	assert.NoError(t, err)
	st := state.New(store)

	reg := New(datagen.RandAddress(), st)
	reg.SetMaxStakePerValidator(big.NewInt(1000))

	pool := datagen.RandAddress()
	assert.NoError(t, st.SetBalance(pool, big.NewInt(10000)))
	return reg, st, pool
}

func TestDelegateWithdraw(t *testing.T) {
	reg, st, pool := newRegistry(t)
	validator := datagen.RandAddress()

	assert.NoError(t, reg.Delegate(pool, validator, big.NewInt(600)))

	delegated, err := reg.DelegatedAmount(pool, validator)
	assert.NoError(t, err)
	assert.Equal(t, big.NewInt(600), delegated)

	staked, err := reg.StakeAmount(validator)
	assert.NoError(t, err)
	assert.Equal(t, big.NewInt(600), staked)

	// custody moved pool -> registry
	poolBal, _ := st.GetBalance(pool)
	regBal, _ := st.GetBalance(reg.Address())
	assert.Equal(t, big.NewInt(9400), poolBal)
	assert.Equal(t, big.NewInt(600), regBal)

	assert.NoError(t, reg.Withdraw(pool, validator, big.NewInt(600)))

	delegated, _ = reg.DelegatedAmount(pool, validator)
	assert.Equal(t, big.NewInt(0), delegated)
	poolBal, _ = st.GetBalance(pool)
	assert.Equal(t, big.NewInt(10000), poolBal)
}

func TestDelegateCapEnforced(t *testing.T) {
	reg, _, pool := newRegistry(t)
	validator := datagen.RandAddress()

	assert.NoError(t, reg.Delegate(pool, validator, big.NewInt(1000)))
	assert.Error(t, reg.Delegate(pool, validator, big.NewInt(1)))
}

func TestCapSharedAcrossPools(t *testing.T) {
	reg, st, pool := newRegistry(t)
	validator := datagen.RandAddress()

	other := datagen.RandAddress()
	assert.NoError(t, st.SetBalance(other, big.NewInt(10000)))

	assert.NoError(t, reg.Delegate(pool, validator, big.NewInt(700)))
	// the cap binds the validator's total stake, not per pool
	assert.Error(t, reg.Delegate(other, validator, big.NewInt(400)))
	assert.NoError(t, reg.Delegate(other, validator, big.NewInt(300)))
}

func TestWithdrawOverDelegation(t *testing.T) {
	reg, _, pool := newRegistry(t)
	validator := datagen.RandAddress()

	assert.NoError(t, reg.Delegate(pool, validator, big.NewInt(100)))
	assert.Error(t, reg.Withdraw(pool, validator, big.NewInt(101)))
	assert.Error(t, reg.Withdraw(pool, datagen.RandAddress(), big.NewInt(1)))
}
