// Copyright (c) 2024 The Tidal developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/tidalprotocol/tidal/slot"
	"github.com/tidalprotocol/tidal/state"
	"github.com/tidalprotocol/tidal/tidal"
)

var (
	slotInitialized = nameToSlot("initialized")
	slotOwner       = nameToSlot("owner")
	slotTreasury    = nameToSlot("treasury")
	slotTokenRef    = nameToSlot("token-ledger")
	slotRegistryRef = nameToSlot("registry")
	// accounting
	slotPriceRatio     = nameToSlot("price-ratio")
	slotEpoch          = nameToSlot("epoch")
	slotEpochInterval  = nameToSlot("epoch-interval")
	slotLastUpdateTime = nameToSlot("last-update-time")
	slotStakeLimit     = nameToSlot("system-stake-limit")
	slotTotalStaked    = nameToSlot("system-total-staked")
	slotFeeBasis       = nameToSlot("protocol-fee-basis")
	// roster
	slotValidators     = nameToSlot("validators")
	slotValidatorIndex = nameToSlot("validator-index")
	// guardrails
	slotSafeguard = nameToSlot("safeguard-enabled")
	slotOverLimit = nameToSlot("over-limit")
	slotPaused    = nameToSlot("paused")
	slotGuard     = nameToSlot("withdrawal-guard")
)

func nameToSlot(name string) tidal.Bytes32 {
	return tidal.Blake2b([]byte(name))
}

// storage represents the root storage of the pool ledger state.
type storage struct {
	ctx *slot.Context

	initialized *slot.Bool
	owner       *slot.Address
	treasury    *slot.Address
	tokenRef    *slot.Address
	registryRef *slot.Address

	priceRatio  *slot.Uint256
	stakeLimit  *slot.Uint256
	totalStaked *slot.Uint256

	epoch          *slot.Uint64
	epochInterval  *slot.Uint64
	lastUpdateTime *slot.Uint64
	feeBasis       *slot.Uint64
	validatorIdx   *slot.Uint64
	guard          *slot.Uint64

	safeguard *slot.Bool
	overLimit *slot.Bool
	paused    *slot.Bool

	validators *slot.AddressList
}

// newStorage creates a new instance of storage.
func newStorage(addr tidal.Address, st *state.State) *storage {
	ctx := slot.NewContext(addr, st)
	return &storage{
		ctx: ctx,

		initialized: slot.NewBool(ctx, slotInitialized),
		owner:       slot.NewAddress(ctx, slotOwner),
		treasury:    slot.NewAddress(ctx, slotTreasury),
		tokenRef:    slot.NewAddress(ctx, slotTokenRef),
		registryRef: slot.NewAddress(ctx, slotRegistryRef),

		priceRatio:  slot.NewUint256(ctx, slotPriceRatio),
		stakeLimit:  slot.NewUint256(ctx, slotStakeLimit),
		totalStaked: slot.NewUint256(ctx, slotTotalStaked),

		epoch:          slot.NewUint64(ctx, slotEpoch),
		epochInterval:  slot.NewUint64(ctx, slotEpochInterval),
		lastUpdateTime: slot.NewUint64(ctx, slotLastUpdateTime),
		feeBasis:       slot.NewUint64(ctx, slotFeeBasis),
		validatorIdx:   slot.NewUint64(ctx, slotValidatorIndex),
		guard:          slot.NewUint64(ctx, slotGuard),

		safeguard: slot.NewBool(ctx, slotSafeguard),
		overLimit: slot.NewBool(ctx, slotOverLimit),
		paused:    slot.NewBool(ctx, slotPaused),

		validators: slot.NewAddressList(ctx, slotValidators),
	}
}

func (s *storage) Validators() ([]tidal.Address, error) {
	list, err := s.validators.Get()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get validators")
	}
	return list, nil
}

func (s *storage) SetValidators(list []tidal.Address) error {
	if err := s.validators.Set(list); err != nil {
		return errors.Wrap(err, "failed to set validators")
	}
	return nil
}

func (s *storage) PriceRatio() (*big.Int, error) {
	ratio, err := s.priceRatio.Get()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get price ratio")
	}
	return ratio, nil
}

func (s *storage) TotalStaked() (*big.Int, error) {
	total, err := s.totalStaked.Get()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get total staked")
	}
	return total, nil
}

func (s *storage) AddTotalStaked(amount *big.Int) error {
	if err := s.totalStaked.Add(amount); err != nil {
		return errors.Wrap(err, "failed to add total staked")
	}
	return nil
}

func (s *storage) SubTotalStaked(amount *big.Int) error {
	if err := s.totalStaked.Sub(amount); err != nil {
		return errors.Wrap(err, "failed to sub total staked")
	}
	return nil
}
