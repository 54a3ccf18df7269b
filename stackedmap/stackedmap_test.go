// Copyright (c) 2024 The Tidal developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stackedmap_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tidalprotocol/tidal/stackedmap"
)

func TestStackedMap(t *testing.T) {
	src := make(map[string]string)
	src["a"] = "from src"

	sm := stackedmap.New(func(key any) (any, bool, error) {
		v, ok := src[key.(string)]
		return v, ok, nil
	})

	// read through to src
	v, ok, err := sm.Get("a")
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "from src", v)

	sm.Push()
	sm.Put("a", "level0")
	v, _, _ = sm.Get("a")
	assert.Equal(t, "level0", v)

	depth := sm.Push()
	sm.Put("a", "level1")
	sm.Put("b", "level1")
	v, _, _ = sm.Get("a")
	assert.Equal(t, "level1", v)

	sm.PopTo(depth)
	v, _, _ = sm.Get("a")
	assert.Equal(t, "level0", v)
	_, ok, _ = sm.Get("b")
	assert.False(t, ok)

	sm.Pop()
	v, _, _ = sm.Get("a")
	assert.Equal(t, "from src", v)
	assert.Zero(t, sm.Depth())
}

func TestRepeatedPutThenRevert(t *testing.T) {
	sm := stackedmap.New(func(key any) (any, bool, error) {
		return nil, false, nil
	})

	sm.Push()
	sm.Put("k", "v0")

	depth := sm.Push()
	// repeated puts of the same key within one level
	sm.Put("k", "v1")
	sm.Put("k", "v2")
	sm.PopTo(depth)

	v, ok, err := sm.Get("k")
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v0", v)
}

func TestStackedMapJournal(t *testing.T) {
	sm := stackedmap.New(func(key any) (any, bool, error) {
		return nil, false, nil
	})

	sm.Push()
	sm.Put("k1", "v1")
	sm.Push()
	sm.Put("k2", "v2")

	var kvs []string
	sm.Journal(func(k, v any) bool {
		kvs = append(kvs, k.(string), v.(string))
		return true
	})
	assert.Equal(t, []string{"k1", "v1", "k2", "v2"}, kvs)
}
