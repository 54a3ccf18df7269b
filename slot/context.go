// Copyright (c) 2024 The Tidal developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package slot

import (
	"github.com/tidalprotocol/tidal/state"
	"github.com/tidalprotocol/tidal/tidal"
)

// Context binds typed storage slots to the identity that owns them.
type Context struct {
	address tidal.Address
	state   *state.State
}

func NewContext(address tidal.Address, state *state.State) *Context {
	return &Context{
		address: address,
		state:   state,
	}
}

func (c *Context) Address() tidal.Address {
	return c.address
}

func (c *Context) State() *state.State {
	return c.state
}
