// Copyright (c) 2024 The Tidal developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"bytes"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/tidalprotocol/tidal/kv"
	"github.com/tidalprotocol/tidal/stackedmap"
	"github.com/tidalprotocol/tidal/tidal"
)

// Error is the error caused by state access failure.
type Error struct {
	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("state: %v", e.cause)
}

// Account is the persisted record of an identity: its base-asset balance.
type Account struct {
	Balance *big.Int
}

// IsEmpty returns whether the account can be treated as empty.
func (a *Account) IsEmpty() bool {
	return a.Balance.Sign() == 0
}

type storageKey struct {
	addr tidal.Address
	key  tidal.Bytes32
}

// State manages a flat namespace of typed key->value entries and base-asset
// balances, keyed by identity. All mutations are journaled in memory and become
// durable only on Commit; checkpoints allow all-or-nothing operation semantics.
type State struct {
	store kv.GetPutter
	cache map[tidal.Address]*Account // accounts loaded from store
	sm    *stackedmap.StackedMap    // keeps uncommitted revisions
}

// New create state object over the given store.
func New(store kv.GetPutter) *State {
	state := State{
		store: store,
		cache: make(map[tidal.Address]*Account),
	}

	state.sm = stackedmap.New(func(key any) (any, bool, error) {
		return state.cacheGetter(key)
	})

	// the bottom layer holds all uncommitted writes
	state.sm.Push()
	return &state
}

// cacheGetter implements stackedmap.MapGetter.
func (s *State) cacheGetter(key any) (value any, exist bool, err error) {
	switch k := key.(type) {
	case tidal.Address: // get account
		acc, err := s.getCachedAccount(k)
		if err != nil {
			return nil, false, err
		}
		return acc, true, nil
	case storageKey: // get storage
		raw, err := s.store.Get(stgKey(k.addr, k.key))
		if err != nil {
			if s.store.IsNotFound(err) {
				return rlp.RawValue(nil), true, nil
			}
			return nil, false, err
		}
		return rlp.RawValue(raw), true, nil
	}
	panic(fmt.Errorf("unexpected key type %+v", key))
}

func (s *State) getCachedAccount(addr tidal.Address) (*Account, error) {
	if acc, ok := s.cache[addr]; ok {
		return acc, nil
	}
	acc, err := loadAccount(s.store, addr)
	if err != nil {
		return nil, err
	}
	s.cache[addr] = acc
	return acc, nil
}

// getAccount gets account by address. the returned account should not be modified.
func (s *State) getAccount(addr tidal.Address) (*Account, error) {
	v, _, err := s.sm.Get(addr)
	if err != nil {
		return nil, err
	}
	return v.(*Account), nil
}

func (s *State) updateAccount(addr tidal.Address, acc *Account) {
	s.sm.Put(addr, acc)
}

// GetBalance returns base-asset balance for the given address.
func (s *State) GetBalance(addr tidal.Address) (*big.Int, error) {
	acc, err := s.getAccount(addr)
	if err != nil {
		return nil, &Error{err}
	}
	return acc.Balance, nil
}

// SetBalance set base-asset balance for the given address.
func (s *State) SetBalance(addr tidal.Address, balance *big.Int) error {
	acc, err := s.getAccount(addr)
	if err != nil {
		return &Error{err}
	}
	cpy := *acc
	cpy.Balance = balance
	s.updateAccount(addr, &cpy)
	return nil
}

// AddBalance adds amount to the balance of the given address.
func (s *State) AddBalance(addr tidal.Address, amount *big.Int) error {
	if amount.Sign() == 0 {
		return nil
	}
	bal, err := s.GetBalance(addr)
	if err != nil {
		return err
	}
	return s.SetBalance(addr, new(big.Int).Add(bal, amount))
}

// SubBalance subtracts amount from the balance of the given address.
// It returns false without mutation if the balance is insufficient.
func (s *State) SubBalance(addr tidal.Address, amount *big.Int) (bool, error) {
	if amount.Sign() == 0 {
		return true, nil
	}
	bal, err := s.GetBalance(addr)
	if err != nil {
		return false, err
	}
	if bal.Cmp(amount) < 0 {
		return false, nil
	}
	if err := s.SetBalance(addr, new(big.Int).Sub(bal, amount)); err != nil {
		return false, err
	}
	return true, nil
}

// GetStorage returns storage value for the given address and key.
func (s *State) GetStorage(addr tidal.Address, key tidal.Bytes32) (tidal.Bytes32, error) {
	raw, err := s.GetRawStorage(addr, key)
	if err != nil {
		return tidal.Bytes32{}, &Error{err}
	}
	if len(raw) == 0 {
		return tidal.Bytes32{}, nil
	}
	kind, content, _, err := rlp.Split(raw)
	if err != nil {
		return tidal.Bytes32{}, &Error{err}
	}
	if kind == rlp.List {
		// special case for rlp list, it should be customized storage value
		// return hash of raw data
		return tidal.Blake2b(raw), nil
	}
	return tidal.BytesToBytes32(content), nil
}

// SetStorage set storage value for the given address and key.
func (s *State) SetStorage(addr tidal.Address, key, value tidal.Bytes32) {
	if value.IsZero() {
		s.SetRawStorage(addr, key, nil)
		return
	}
	v, _ := rlp.EncodeToBytes(bytes.TrimLeft(value[:], "\x00"))
	s.SetRawStorage(addr, key, v)
}

// GetRawStorage returns storage value in rlp raw for given address and key.
func (s *State) GetRawStorage(addr tidal.Address, key tidal.Bytes32) (rlp.RawValue, error) {
	data, _, err := s.sm.Get(storageKey{addr, key})
	if err != nil {
		return nil, &Error{err}
	}
	return data.(rlp.RawValue), nil
}

// SetRawStorage set storage value in rlp raw.
func (s *State) SetRawStorage(addr tidal.Address, key tidal.Bytes32, raw rlp.RawValue) {
	s.sm.Put(storageKey{addr, key}, raw)
}

// EncodeStorage set storage value encoded by given enc method.
// An empty storage value returned by enc causes the entry to be deleted.
func (s *State) EncodeStorage(addr tidal.Address, key tidal.Bytes32, enc func() ([]byte, error)) error {
	raw, err := enc()
	if err != nil {
		return &Error{err}
	}
	s.SetRawStorage(addr, key, raw)
	return nil
}

// DecodeStorage get and decode storage value.
func (s *State) DecodeStorage(addr tidal.Address, key tidal.Bytes32, dec func([]byte) error) error {
	raw, err := s.GetRawStorage(addr, key)
	if err != nil {
		return &Error{err}
	}
	if err := dec(raw); err != nil {
		return &Error{err}
	}
	return nil
}

// NewCheckpoint makes a checkpoint of current state.
// It returns revision of the checkpoint.
func (s *State) NewCheckpoint() int {
	return s.sm.Push()
}

// RevertTo revert to checkpoint specified by revision.
func (s *State) RevertTo(revision int) {
	s.sm.PopTo(revision)
}

// Commit writes all journaled changes through a single batch into the store.
// The journal is retained, so a commit does not invalidate the state instance.
func (s *State) Commit() error {
	batch := s.store.NewBatch()

	var jerr error
	s.sm.Journal(func(key, value any) bool {
		switch k := key.(type) {
		case tidal.Address:
			acc := value.(*Account)
			if acc.IsEmpty() {
				jerr = batch.Delete(accKey(k))
			} else {
				var data []byte
				if data, jerr = rlp.EncodeToBytes(acc); jerr == nil {
					jerr = batch.Put(accKey(k), data)
				}
			}
		case storageKey:
			raw := value.(rlp.RawValue)
			if len(raw) == 0 {
				jerr = batch.Delete(stgKey(k.addr, k.key))
			} else {
				jerr = batch.Put(stgKey(k.addr, k.key), raw)
			}
		}
		return jerr == nil
	})
	if jerr != nil {
		return &Error{jerr}
	}

	if err := batch.Write(); err != nil {
		return &Error{err}
	}
	// drop the account cache so later reads observe committed records
	s.cache = make(map[tidal.Address]*Account)
	return nil
}

func accKey(addr tidal.Address) []byte {
	return append([]byte("a"), addr.Bytes()...)
}

func stgKey(addr tidal.Address, key tidal.Bytes32) []byte {
	k := append([]byte("s"), addr.Bytes()...)
	return append(k, key.Bytes()...)
}

func loadAccount(store kv.GetPutter, addr tidal.Address) (*Account, error) {
	data, err := store.Get(accKey(addr))
	if err != nil {
		if store.IsNotFound(err) {
			return &Account{Balance: &big.Int{}}, nil
		}
		return nil, err
	}
	var acc Account
	if err := rlp.DecodeBytes(data, &acc); err != nil {
		return nil, err
	}
	return &acc, nil
}
