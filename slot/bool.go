// Copyright (c) 2024 The Tidal developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package slot

import (
	"github.com/tidalprotocol/tidal/tidal"
)

// Bool is a wrapper for storage and retrieval of a bool, stored as an uint256 slot.
type Bool struct {
	ctx *Context
	pos tidal.Bytes32
}

func NewBool(ctx *Context, pos tidal.Bytes32) *Bool {
	return &Bool{ctx: ctx, pos: pos}
}

func (b *Bool) Get() (bool, error) {
	storage, err := b.ctx.State().GetStorage(b.ctx.Address(), b.pos)
	if err != nil {
		return false, err
	}
	return !storage.IsZero(), nil
}

func (b *Bool) Set(value bool) {
	var storage tidal.Bytes32
	if value {
		storage = tidal.BytesToBytes32([]byte{1})
	}
	b.ctx.State().SetStorage(b.ctx.Address(), b.pos, storage)
}
