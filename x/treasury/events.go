package treasury

import (
	"strconv"

	"github.com/iov-one/weave-treasury"
	"github.com/tendermint/tendermint/libs/common"
)

// EventKey is the tag key holding the event name. Every event emitted by
// this package is a set of tags starting with it.
const EventKey = "treasury.event"

// Event is a notification about a change done by this package.
type Event interface {
	Tags() []common.KVPair
}

// Tags flattens all events into a single list of tags.
func Tags(events ...Event) []common.KVPair {
	var tags []common.KVPair
	for _, e := range events {
		tags = append(tags, e.Tags()...)
	}
	return tags
}

func tag(key, value string) common.KVPair {
	return common.KVPair{Key: []byte(key), Value: []byte(value)}
}

// RecipientAdded is emitted when a recipient is granted a share.
type RecipientAdded struct {
	Recipient weave.Address
	Proposed  weave.Percent
}

func (e RecipientAdded) Tags() []common.KVPair {
	return []common.KVPair{
		tag(EventKey, "recipient_added"),
		tag("recipient", e.Recipient.String()),
		tag("proposed", strconv.Itoa(int(e.Proposed))),
	}
}

// RecipientRemoved is emitted when a recipient share is revoked.
type RecipientRemoved struct {
	Recipient weave.Address
}

func (e RecipientRemoved) Tags() []common.KVPair {
	return []common.KVPair{
		tag(EventKey, "recipient_removed"),
		tag("recipient", e.Recipient.String()),
	}
}

// MintingIntervalUpdated is emitted when the minting interval changes.
type MintingIntervalUpdated struct {
	Interval int64
}

func (e MintingIntervalUpdated) Tags() []common.KVPair {
	return []common.KVPair{
		tag(EventKey, "minting_interval_updated"),
		tag("interval", strconv.FormatInt(e.Interval, 10)),
	}
}

// PayoutUpdated is emitted when the payout amount changes.
type PayoutUpdated struct {
	Amount uint64
}

func (e PayoutUpdated) Tags() []common.KVPair {
	return []common.KVPair{
		tag(EventKey, "payout_updated"),
		tag("amount", strconv.FormatUint(e.Amount, 10)),
	}
}

// TreasuryMinting is emitted for every account funded by a payout.
type TreasuryMinting struct {
	Balance uint64
	Tick    int64
	Account weave.Address
}

func (e TreasuryMinting) Tags() []common.KVPair {
	return []common.KVPair{
		tag(EventKey, "treasury_minting"),
		tag("balance", strconv.FormatUint(e.Balance, 10)),
		tag("tick", strconv.FormatInt(e.Tick, 10)),
		tag("account", e.Account.String()),
	}
}
