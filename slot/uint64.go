// Copyright (c) 2024 The Tidal developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package slot

import (
	"math/big"

	"github.com/tidalprotocol/tidal/tidal"
)

// Uint64 is a wrapper for storage and retrieval of an uint64, stored as an uint256 slot.
type Uint64 struct {
	ctx *Context
	pos tidal.Bytes32
}

func NewUint64(ctx *Context, pos tidal.Bytes32) *Uint64 {
	return &Uint64{ctx: ctx, pos: pos}
}

func (u *Uint64) Get() (uint64, error) {
	storage, err := u.ctx.State().GetStorage(u.ctx.Address(), u.pos)
	if err != nil {
		return 0, err
	}
	return new(big.Int).SetBytes(storage.Bytes()).Uint64(), nil
}

func (u *Uint64) Set(value uint64) {
	storage := tidal.BytesToBytes32(new(big.Int).SetUint64(value).Bytes())
	u.ctx.State().SetStorage(u.ctx.Address(), u.pos, storage)
}
