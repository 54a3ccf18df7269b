// Copyright (c) 2024 The Tidal developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package slot

import (
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/tidalprotocol/tidal/tidal"
)

// AddressList is a wrapper for storage and retrieval of an ordered address list,
// rlp-encoded into a single slot.
type AddressList struct {
	ctx *Context
	pos tidal.Bytes32
}

func NewAddressList(ctx *Context, pos tidal.Bytes32) *AddressList {
	return &AddressList{ctx: ctx, pos: pos}
}

func (l *AddressList) Get() (list []tidal.Address, err error) {
	err = l.ctx.State().DecodeStorage(l.ctx.Address(), l.pos, func(raw []byte) error {
		if len(raw) == 0 {
			return nil
		}
		return rlp.DecodeBytes(raw, &list)
	})
	return
}

func (l *AddressList) Set(list []tidal.Address) error {
	return l.ctx.State().EncodeStorage(l.ctx.Address(), l.pos, func() ([]byte, error) {
		if len(list) == 0 {
			return nil, nil
		}
		return rlp.EncodeToBytes(list)
	})
}
