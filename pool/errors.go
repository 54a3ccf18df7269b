// Copyright (c) 2024 The Tidal developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import "github.com/tidalprotocol/tidal/pool/reverts"

var (
	// authorization
	errNotOwner = reverts.New("caller is not the pool owner")

	// state preconditions
	errAlreadyInitialized = reverts.New("pool already initialized")
	errNotInitialized     = reverts.New("pool not initialized")
	errAlreadyPaused      = reverts.New("pool already paused")
	errNotPaused          = reverts.New("pool not paused")
	errPaused             = reverts.New("pool is paused")
	errWithdrawalInFlight = reverts.New("another withdrawal is in flight")
	errDepositsSuspended  = reverts.New("deposits suspended: stake limit breached")

	// roster
	errValidatorListed    = reverts.New("validator already listed")
	errValidatorNotListed = reverts.New("validator not listed")
	errNullValidator      = reverts.New("validator is the null address")
	errLastValidator      = reverts.New("cannot remove the last validator")
	errBadValidatorIndex  = reverts.New("validator index out of range")

	// capacity
	errInsufficientCapacity   = reverts.New("insufficient aggregate validator capacity")
	errInsufficientLiquidity  = reverts.New("insufficient delegated liquidity")
	errInsufficientDelegation = reverts.New("selected validator cannot cover payout")
	errSystemCapacityExceeded = reverts.New("deposit exceeds total pool capacity")

	// configuration
	errFeeAboveCap        = reverts.New("fee basis above cap")
	errSameStakeLimit     = reverts.New("stake limit unchanged")
	errLimitAboveCapacity = reverts.New("stake limit exceeds pool capacity")
	errZeroInterval       = reverts.New("epoch interval must be positive")
	errSafeguardEnabled   = reverts.New("safeguard already enabled")
	errSafeguardDisabled  = reverts.New("safeguard already disabled")

	// value transfer
	errZeroValue      = reverts.New("amount must be positive")
	errDepositFunds   = reverts.New("insufficient balance for deposit")
	errTokenTransfer  = reverts.New("claim token transfer rejected")
	errTokenMint      = reverts.New("claim token mint rejected")
	errPayoutTransfer = reverts.New("base asset payout transfer failed")
)
