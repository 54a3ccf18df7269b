// Copyright (c) 2024 The Tidal developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reverts

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestIsRevertErr(t *testing.T) {
	assert.False(t, IsRevertErr(nil))
	assert.False(t, IsRevertErr("not an error"))
	assert.False(t, IsRevertErr(errors.New("plain error")))

	err := New("some precondition failed")
	assert.True(t, IsRevertErr(err))
	assert.Equal(t, "some precondition failed", err.Error())

	// wrapped reverts are still reverts
	assert.True(t, IsRevertErr(errors.Wrap(err, "outer context")))
}
