// Copyright (c) 2024 The Tidal developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package datagen

import (
	"crypto/rand"
	"math/big"
	mathrand "math/rand/v2"

	"github.com/tidalprotocol/tidal/tidal"
)

func RandAddress() tidal.Address {
	var addr tidal.Address

	rand.Read(addr[:])
	return addr
}

func RandBytes32() tidal.Bytes32 {
	var b32 tidal.Bytes32

	rand.Read(b32[:])
	return b32
}

func RandIntN(n int) int {
	return mathrand.N(n) //#nosec G404
}

// RandBigInt returns a uniformly random value in [0, max).
func RandBigInt(max *big.Int) *big.Int {
	v, err := rand.Int(rand.Reader, max)
	if err != nil {
		panic(err)
	}
	return v
}
