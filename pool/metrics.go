// Copyright (c) 2024 The Tidal developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import "github.com/tidalprotocol/tidal/metrics"

var (
	metricDepositCount    = metrics.LazyLoadCounter("pool_deposit_count")
	metricWithdrawalCount = metrics.LazyLoadCounterVec("pool_withdrawal_count", []string{"mode"})
	metricEpochGauge      = metrics.LazyLoadGauge("pool_epoch")
	metricRosterGauge     = metrics.LazyLoadGauge("pool_validator_count")
)
