// Copyright (c) 2024 The Tidal developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tidalprotocol/tidal/kv"
	"github.com/tidalprotocol/tidal/registry"
	"github.com/tidalprotocol/tidal/state"
	"github.com/tidalprotocol/tidal/test/datagen"
	"github.com/tidalprotocol/tidal/tidal"
	"github.com/tidalprotocol/tidal/token"
)

const (
	testStartTime = uint64(1000)
	testInterval  = uint64(60)
)

type env struct {
	t          *testing.T
	store      *kv.LevelDB
	st         *state.State
	pool       *Pool
	registry   *registry.Registry
	token      *token.Ledger
	owner      tidal.Address
	treasury   tidal.Address
	validators []tidal.Address
}

// newEnv wires a pool against the state-backed registry and token ledger
// reference implementations, with numValidators listed and maxStake capacity
// each. The stake limit starts at the full aggregate capacity.
func newEnv(t *testing.T, numValidators int, maxStake int64) *env {
	return newEnvWithLimit(t, numValidators, maxStake, maxStake*int64(numValidators))
}

func newEnvWithLimit(t *testing.T, numValidators int, maxStake, stakeLimit int64) *env {
	store, err := kv.NewMem()
	assert.NoError(t, err)
	st := state.New(store)

	reg := registry.New(datagen.RandAddress(), st)
	reg.SetMaxStakePerValidator(big.NewInt(maxStake))
	ledger := token.New(datagen.RandAddress(), st)

	owner := datagen.RandAddress()
	treasury := datagen.RandAddress()
	validators := make([]tidal.Address, numValidators)
	for i := range validators {
		validators[i] = datagen.RandAddress()
	}

	p := New(datagen.RandAddress(), st, reg, ledger, nil)
	assert.NoError(t, p.Initialize(InitParams{
		Owner:          owner,
		FirstValidator: validators[0],
		Registry:       reg.Address(),
		TokenLedger:    ledger.Address(),
		Treasury:       treasury,
		StartTime:      testStartTime,
		StakeLimit:     big.NewInt(stakeLimit),
		EpochInterval:  testInterval,
	}))
	for _, v := range validators[1:] {
		assert.NoError(t, p.AddValidator(owner, v))
	}

	return &env{
		t:          t,
		store:      store,
		st:         st,
		pool:       p,
		registry:   reg,
		token:      ledger,
		owner:      owner,
		treasury:   treasury,
		validators: validators,
	}
}

// newDepositor funds a fresh identity with the given base-asset balance.
func (e *env) newDepositor(balance int64) tidal.Address {
	addr := datagen.RandAddress()
	assert.NoError(e.t, e.st.SetBalance(addr, big.NewInt(balance)))
	return addr
}

// deposit runs a deposit at the pool's initial timestamp.
func (e *env) deposit(depositor tidal.Address, value int64) *big.Int {
	minted, err := e.pool.Deposit(depositor, big.NewInt(value), testStartTime)
	assert.NoError(e.t, err)
	return minted
}

// accrue simulates externally-accrued rewards landing on the pool balance.
func (e *env) accrue(reward int64) {
	assert.NoError(e.t, e.st.AddBalance(e.pool.Address(), big.NewInt(reward)))
}

// delegated returns how much the pool has placed on the given validator.
func (e *env) delegated(validator tidal.Address) *big.Int {
	amount, err := e.registry.DelegatedAmount(e.pool.Address(), validator)
	assert.NoError(e.t, err)
	return amount
}

func (e *env) balance(addr tidal.Address) *big.Int {
	balance, err := e.st.GetBalance(addr)
	assert.NoError(e.t, err)
	return balance
}

// recordingEmitter collects every event the pool emits.
type recordingEmitter struct {
	events []any
}

func (r *recordingEmitter) Emit(event any) {
	r.events = append(r.events, event)
}
