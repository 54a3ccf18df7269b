// Copyright (c) 2024 The Tidal developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

// GuardState is the single-flight withdrawal guard.
type GuardState = uint64

const (
	GuardIdle = GuardState(iota) // 0 -> default value
	GuardBusy                    // a withdrawal is in flight
)
