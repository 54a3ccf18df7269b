// Copyright (c) 2024 The Tidal developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tidal

import "math/big"

// Constants of the staking pool protocol.
const (
	// MaxProtocolFeeBasis upper bound of the protocol fee, in basis points.
	MaxProtocolFeeBasis = 2000

	// FeeBasisDenominator basis-point denominator of the protocol fee.
	FeeBasisDenominator = 10000
)

var (
	// RatioScale fixed-point scale of the claim-token exchange ratio (1e18).
	RatioScale = big.NewInt(1e18)

	// InitialRatio exchange ratio at pool initialization, 1 claim token = 1 base unit.
	InitialRatio = big.NewInt(1e18)
)
