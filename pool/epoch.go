// Copyright (c) 2024 The Tidal developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import "github.com/pkg/errors"

// advanceEpoch moves the epoch counter forward by the number of whole
// intervals elapsed since the last crossed boundary. The boundary snaps
// forward by whole intervals, so a sub-interval remainder carries over to the
// next check instead of being reset to now.
func (p *Pool) advanceEpoch(now uint64) error {
	last, err := p.storage.lastUpdateTime.Get()
	if err != nil {
		return errors.Wrap(err, "failed to get last update time")
	}
	interval, err := p.storage.epochInterval.Get()
	if err != nil {
		return errors.Wrap(err, "failed to get epoch interval")
	}
	if now < last || now-last < interval {
		return nil
	}

	increments := (now - last) / interval
	epoch, err := p.storage.epoch.Get()
	if err != nil {
		return errors.Wrap(err, "failed to get epoch")
	}
	epoch += increments
	p.storage.epoch.Set(epoch)
	p.storage.lastUpdateTime.Set(last + increments*interval)

	p.emit(EpochEvent{Epoch: epoch})
	metricEpochGauge().Set(int64(epoch))
	logger.Debug("epoch advanced", "epoch", epoch, "increments", increments)
	return nil
}
