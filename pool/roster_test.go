// Copyright (c) 2024 The Tidal developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tidalprotocol/tidal/test/datagen"
	"github.com/tidalprotocol/tidal/tidal"
)

func TestAddValidator(t *testing.T) {
	e := newEnv(t, 1, 1000)

	added := datagen.RandAddress()
	assert.NoError(t, e.pool.AddValidator(e.owner, added))

	listed, err := e.pool.IsValidator(added)
	assert.NoError(t, err)
	assert.True(t, listed)
	count, err := e.pool.ValidatorCount()
	assert.NoError(t, err)
	assert.Equal(t, 2, count)

	assert.ErrorIs(t, e.pool.AddValidator(e.owner, added), errValidatorListed)
	assert.ErrorIs(t, e.pool.AddValidator(e.owner, tidal.Address{}), errNullValidator)
	assert.ErrorIs(t, e.pool.AddValidator(datagen.RandAddress(), datagen.RandAddress()), errNotOwner)
}

func TestRemoveValidatorRedelegates(t *testing.T) {
	e := newEnv(t, 2, 1000)
	depositor := e.newDepositor(300)
	e.deposit(depositor, 300)
	assert.Equal(t, big.NewInt(300), e.delegated(e.validators[0]))

	assert.NoError(t, e.pool.RemoveValidator(e.owner, e.validators[0]))

	// the removed validator's stake moved, the total did not
	assert.Equal(t, big.NewInt(0), e.delegated(e.validators[0]))
	assert.Equal(t, big.NewInt(300), e.delegated(e.validators[1]))
	total, err := e.pool.TotalStaked()
	assert.NoError(t, err)
	assert.Equal(t, big.NewInt(300), total)

	validators, err := e.pool.Validators()
	assert.NoError(t, err)
	assert.Equal(t, []tidal.Address{e.validators[1]}, validators)
	cursor, err := e.pool.ValidatorIndex()
	assert.NoError(t, err)
	assert.Equal(t, uint64(0), cursor)
}

func TestRemoveValidatorGuards(t *testing.T) {
	e := newEnv(t, 2, 1000)

	assert.ErrorIs(t, e.pool.RemoveValidator(e.owner, datagen.RandAddress()), errValidatorNotListed)
	assert.ErrorIs(t, e.pool.RemoveValidator(datagen.RandAddress(), e.validators[0]), errNotOwner)

	assert.NoError(t, e.pool.RemoveValidator(e.owner, e.validators[1]))
	// the roster never drops to zero
	assert.ErrorIs(t, e.pool.RemoveValidator(e.owner, e.validators[0]), errLastValidator)
}

func TestRemoveValidatorSwapWithLast(t *testing.T) {
	e := newEnv(t, 3, 1000)

	// cursor on the last element, which gets swapped into the hole
	assert.NoError(t, e.pool.SetValidatorIndex(e.owner, 2))
	assert.NoError(t, e.pool.RemoveValidator(e.owner, e.validators[0]))

	validators, err := e.pool.Validators()
	assert.NoError(t, err)
	assert.Equal(t, []tidal.Address{e.validators[2], e.validators[1]}, validators)

	// the cursor followed the moved element
	cursor, err := e.pool.ValidatorIndex()
	assert.NoError(t, err)
	assert.Equal(t, uint64(0), cursor)
}

func TestRemoveValidatorExceedingCapacity(t *testing.T) {
	e := newEnv(t, 2, 100)
	depositor := e.newDepositor(150)
	e.deposit(depositor, 150)
	// delegations: 100/50

	// the remaining validator cannot absorb the removed validator's stake
	assert.ErrorIs(t, e.pool.RemoveValidator(e.owner, e.validators[0]), errInsufficientCapacity)

	// the failed removal left the roster and delegations untouched
	assert.Equal(t, big.NewInt(100), e.delegated(e.validators[0]))
	count, _ := e.pool.ValidatorCount()
	assert.Equal(t, 2, count)
}

func TestReplaceValidator(t *testing.T) {
	e := newEnv(t, 2, 1000)
	depositor := e.newDepositor(300)
	e.deposit(depositor, 300)

	replacement := datagen.RandAddress()
	assert.NoError(t, e.pool.ReplaceValidator(e.owner, e.validators[0], replacement))

	// the old validator's stake followed to the replacement
	assert.Equal(t, big.NewInt(0), e.delegated(e.validators[0]))
	assert.Equal(t, big.NewInt(300), e.delegated(replacement))

	validators, err := e.pool.Validators()
	assert.NoError(t, err)
	assert.Equal(t, []tidal.Address{replacement, e.validators[1]}, validators)

	// replacement by address moves the cursor to the replaced index
	cursor, err := e.pool.ValidatorIndex()
	assert.NoError(t, err)
	assert.Equal(t, uint64(0), cursor)

	assert.ErrorIs(t, e.pool.ReplaceValidator(e.owner, e.validators[1], replacement), errValidatorListed)
	assert.ErrorIs(t, e.pool.ReplaceValidator(e.owner, e.validators[1], tidal.Address{}), errNullValidator)
	assert.ErrorIs(t, e.pool.ReplaceValidator(e.owner, datagen.RandAddress(), datagen.RandAddress()), errValidatorNotListed)
}

func TestReplaceValidatorAt(t *testing.T) {
	e := newEnv(t, 3, 1000)
	depositor := e.newDepositor(100)
	e.deposit(depositor, 100)
	assert.NoError(t, e.pool.SetValidatorIndex(e.owner, 2))

	replacement := datagen.RandAddress()
	assert.NoError(t, e.pool.ReplaceValidatorAt(e.owner, 0, replacement))

	validators, err := e.pool.Validators()
	assert.NoError(t, err)
	assert.Equal(t, replacement, validators[0])

	// re-placement goes through the distribution algorithm, which prefers
	// the cursor validator, not the replacement
	assert.Equal(t, big.NewInt(0), e.delegated(replacement))
	assert.Equal(t, big.NewInt(100), e.delegated(e.validators[2]))

	// replacement by index leaves the cursor alone
	cursor, err := e.pool.ValidatorIndex()
	assert.NoError(t, err)
	assert.Equal(t, uint64(2), cursor)

	assert.ErrorIs(t, e.pool.ReplaceValidatorAt(e.owner, 3, datagen.RandAddress()), errBadValidatorIndex)
}

func TestSetValidatorIndex(t *testing.T) {
	e := newEnv(t, 2, 1000)

	assert.NoError(t, e.pool.SetValidatorIndex(e.owner, 1))
	cursor, err := e.pool.ValidatorIndex()
	assert.NoError(t, err)
	assert.Equal(t, uint64(1), cursor)

	assert.ErrorIs(t, e.pool.SetValidatorIndex(e.owner, 2), errBadValidatorIndex)
	assert.ErrorIs(t, e.pool.SetValidatorIndex(datagen.RandAddress(), 0), errNotOwner)
}
