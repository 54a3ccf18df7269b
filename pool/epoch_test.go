// Copyright (c) 2024 The Tidal developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func (e *env) epochState() (epoch, last uint64) {
	epoch, err := e.pool.Epoch()
	assert.NoError(e.t, err)
	last, err = e.pool.LastUpdateTime()
	assert.NoError(e.t, err)
	return
}

func TestEpochAdvancesOnDeposit(t *testing.T) {
	e := newEnv(t, 1, 100000)
	depositor := e.newDepositor(10000)
	e.deposit(depositor, 100) // first deposit never ticks the epoch

	// sub-interval elapse: no change
	_, err := e.pool.Deposit(depositor, big.NewInt(100), testStartTime+testInterval-1)
	assert.NoError(t, err)
	epoch, last := e.epochState()
	assert.Equal(t, uint64(0), epoch)
	assert.Equal(t, testStartTime, last)

	// two whole intervals plus a remainder: the boundary snaps forward by
	// whole intervals, the 10-unit remainder carries over
	_, err = e.pool.Deposit(depositor, big.NewInt(100), testStartTime+2*testInterval+10)
	assert.NoError(t, err)
	epoch, last = e.epochState()
	assert.Equal(t, uint64(2), epoch)
	assert.Equal(t, testStartTime+2*testInterval, last)

	// the carried remainder counts toward the next boundary
	_, err = e.pool.Deposit(depositor, big.NewInt(100), testStartTime+3*testInterval+5)
	assert.NoError(t, err)
	epoch, last = e.epochState()
	assert.Equal(t, uint64(3), epoch)
	assert.Equal(t, testStartTime+3*testInterval, last)
}

func TestEpochEmitsEvent(t *testing.T) {
	e := newEnv(t, 1, 100000)
	depositor := e.newDepositor(10000)
	e.deposit(depositor, 100)

	emitter := &recordingEmitter{}
	p := New(e.pool.Address(), e.st, e.registry, e.token, emitter)

	_, err := p.Deposit(depositor, big.NewInt(100), testStartTime+5*testInterval)
	assert.NoError(t, err)

	var epochs []uint64
	for _, event := range emitter.events {
		if ev, ok := event.(EpochEvent); ok {
			epochs = append(epochs, ev.Epoch)
		}
	}
	assert.Equal(t, []uint64{5}, epochs)
}

func TestSetEpochInterval(t *testing.T) {
	e := newEnv(t, 1, 1000)

	assert.ErrorIs(t, e.pool.SetEpochInterval(e.owner, 0), errZeroInterval)
	assert.NoError(t, e.pool.SetEpochInterval(e.owner, 30))

	interval, err := e.pool.EpochInterval()
	assert.NoError(t, err)
	assert.Equal(t, uint64(30), interval)
}
