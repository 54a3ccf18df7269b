// Copyright (c) 2024 The Tidal developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package slot

import (
	"github.com/tidalprotocol/tidal/tidal"
)

// Address is a wrapper for storage and retrieval of an address. Similar to storing an address in a smart contract.
type Address struct {
	ctx *Context
	pos tidal.Bytes32
}

func NewAddress(ctx *Context, pos tidal.Bytes32) *Address {
	return &Address{ctx: ctx, pos: pos}
}

func (a *Address) Get() (tidal.Address, error) {
	storage, err := a.ctx.State().GetStorage(a.ctx.Address(), a.pos)
	if err != nil {
		return tidal.Address{}, err
	}
	return tidal.BytesToAddress(storage.Bytes()), nil
}

func (a *Address) Set(addr *tidal.Address) {
	var storage tidal.Bytes32
	if addr != nil {
		storage = tidal.BytesToBytes32(addr.Bytes())
	}
	a.ctx.State().SetStorage(a.ctx.Address(), a.pos, storage)
}
