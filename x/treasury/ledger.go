package treasury

import (
	"github.com/iov-one/weave-treasury"
	"github.com/iov-one/weave-treasury/errors"
)

// RecipientAllocation is the share of a single recipient.
//
// Proposed is the percentage granted when the recipient was added or last
// updated. Current is the percentage in effect and is never greater than
// Proposed.
type RecipientAllocation struct {
	Recipient weave.Address `json:"recipient"`
	Proposed  weave.Percent `json:"proposed"`
	Current   weave.Percent `json:"current"`
}

// Ledger is an ordered set of recipient allocations. Insertion order is the
// payout order.
//
// All mutating operations are atomic. They either apply completely or leave
// the ledger untouched.
type Ledger struct {
	maxRecipientPct weave.Percent
	allocations     []RecipientAllocation
}

// NewLedger returns an empty ledger that does not allow to add recipients
// with a share greater than maxRecipientPct.
func NewLedger(maxRecipientPct weave.Percent) *Ledger {
	return &Ledger{maxRecipientPct: maxRecipientPct}
}

// InitLedger bulk loads recipients with their percentages. Both lists must be
// of the same length, recipients must be unique and percentages must not sum
// to more than 100. The per recipient maximum is not applied.
func InitLedger(maxRecipientPct weave.Percent, recipients []weave.Address, pcts []weave.Percent) (*Ledger, error) {
	if len(recipients) != len(pcts) {
		return nil, errors.Wrapf(errors.ErrInput, "%d recipients with %d percentages", len(recipients), len(pcts))
	}
	if total := weave.SumPercents(pcts); total > weave.PercentDenominator {
		return nil, errors.Wrapf(errors.ErrInput, "percentages sum to %d", total)
	}

	l := NewLedger(maxRecipientPct)
	for i, r := range recipients {
		if err := r.Validate(); err != nil {
			return nil, errors.Wrapf(err, "recipient %d", i)
		}
		if err := pcts[i].Validate(); err != nil {
			return nil, errors.Wrapf(err, "recipient %d", i)
		}
		if l.index(r) >= 0 {
			return nil, errors.Wrapf(errors.ErrDuplicate, "recipient %s", r)
		}
		l.allocations = append(l.allocations, RecipientAllocation{
			Recipient: r,
			Proposed:  pcts[i],
			Current:   pcts[i],
		})
	}
	return l, nil
}

// MaxRecipientPct returns the maximum share a single recipient can be granted.
func (l *Ledger) MaxRecipientPct() weave.Percent {
	return l.maxRecipientPct
}

// Add grants a new recipient the given percentage. If there is not enough
// room left, all current shares are diluted to make the room.
func (l *Ledger) Add(recipient weave.Address, pct weave.Percent) ([]Event, error) {
	if err := l.checkGrant(recipient, pct); err != nil {
		return nil, err
	}
	if l.index(recipient) >= 0 {
		return nil, errors.Wrapf(errors.ErrDuplicate, "recipient %s", recipient)
	}

	next := l.clone()
	next.insert(recipient, pct)
	if err := next.Validate(); err != nil {
		return nil, err
	}
	l.allocations = next.allocations
	return []Event{RecipientAdded{Recipient: recipient, Proposed: pct}}, nil
}

// insert appends the recipient, diluting everyone when needed.
func (l *Ledger) insert(recipient weave.Address, pct weave.Percent) {
	leftover := l.Leftover()
	if pct <= leftover {
		l.allocations = append(l.allocations, RecipientAllocation{
			Recipient: recipient,
			Proposed:  pct,
			Current:   pct,
		})
		return
	}

	// The part of pct that does not fit must be taken from everyone,
	// including the part already granted to the new recipient.
	diff := pct - leftover
	l.allocations = append(l.allocations, RecipientAllocation{
		Recipient: recipient,
		Proposed:  pct,
		Current:   leftover,
	})
	factor := diff.Complement()
	for i := range l.allocations {
		l.allocations[i].Current = l.allocations[i].Current.SaturatingMul(factor)
	}
	last := &l.allocations[len(l.allocations)-1]
	last.Current = last.Current.SaturatingAdd(diff)
}

// Remove deletes the recipient and augments all remaining shares, each up to
// its proposed percentage.
func (l *Ledger) Remove(recipient weave.Address) ([]Event, error) {
	next := l.clone()
	if err := next.remove(recipient); err != nil {
		return nil, err
	}
	if err := next.Validate(); err != nil {
		return nil, err
	}
	l.allocations = next.allocations
	return []Event{RecipientRemoved{Recipient: recipient}}, nil
}

func (l *Ledger) remove(recipient weave.Address) error {
	idx := l.index(recipient)
	if idx < 0 {
		return errors.Wrapf(errors.ErrNotFound, "recipient %s", recipient)
	}
	removed := l.allocations[idx].Proposed
	l.allocations = append(l.allocations[:idx], l.allocations[idx+1:]...)

	factor := removed.Complement()
	for i, a := range l.allocations {
		cur := a.Current.Div(factor)
		if cur > a.Proposed {
			cur = a.Proposed
		}
		l.allocations[i].Current = cur
	}
	return nil
}

// Update changes the percentage granted to an existing recipient. This is a
// removal followed by adding the recipient again, so the recipient is moved
// to the end of the payout order.
func (l *Ledger) Update(recipient weave.Address, pct weave.Percent) ([]Event, error) {
	if err := l.checkGrant(recipient, pct); err != nil {
		return nil, err
	}

	next := l.clone()
	if err := next.remove(recipient); err != nil {
		return nil, err
	}
	next.insert(recipient, pct)
	if err := next.Validate(); err != nil {
		return nil, err
	}
	l.allocations = next.allocations
	return []Event{
		RecipientRemoved{Recipient: recipient},
		RecipientAdded{Recipient: recipient, Proposed: pct},
	}, nil
}

func (l *Ledger) checkGrant(recipient weave.Address, pct weave.Percent) error {
	if err := recipient.Validate(); err != nil {
		return errors.Wrap(err, "recipient")
	}
	if err := pct.Validate(); err != nil {
		return err
	}
	if pct > l.maxRecipientPct {
		return errors.Wrapf(ErrPercentTooLarge, "%s is greater than %s", pct, l.maxRecipientPct)
	}
	return nil
}

// Validate returns an error if the sum of current shares exceeds 100% or if
// any recipient holds more than it was granted.
func (l *Ledger) Validate() error {
	if sum := l.SumCurrent(); sum > weave.PercentDenominator {
		return errors.Wrapf(ErrInvariant, "current shares sum to %d", sum)
	}
	for _, a := range l.allocations {
		if a.Current > a.Proposed {
			return errors.Wrapf(ErrInvariant, "recipient %s holds %s of %s", a.Recipient, a.Current, a.Proposed)
		}
	}
	return nil
}

// SumCurrent returns the sum of all current shares.
func (l *Ledger) SumCurrent() uint {
	var sum uint
	for _, a := range l.allocations {
		sum += uint(a.Current)
	}
	return sum
}

// Leftover returns the share that is not allocated to any recipient.
func (l *Ledger) Leftover() weave.Percent {
	return weave.Full.SaturatingSub(weave.NewPercent(l.SumCurrent()))
}

// CurrentPercentages returns current shares in payout order.
func (l *Ledger) CurrentPercentages() []weave.Percent {
	res := make([]weave.Percent, len(l.allocations))
	for i, a := range l.allocations {
		res[i] = a.Current
	}
	return res
}

// Allocation returns the share of given recipient.
func (l *Ledger) Allocation(recipient weave.Address) (RecipientAllocation, bool) {
	if idx := l.index(recipient); idx >= 0 {
		return l.allocations[idx], true
	}
	return RecipientAllocation{}, false
}

// Recipients returns all recipients in payout order.
func (l *Ledger) Recipients() []weave.Address {
	res := make([]weave.Address, len(l.allocations))
	for i, a := range l.allocations {
		res[i] = a.Recipient
	}
	return res
}

// Allocations returns a copy of all allocations in payout order.
func (l *Ledger) Allocations() []RecipientAllocation {
	return append([]RecipientAllocation(nil), l.allocations...)
}

// Len returns the number of recipients.
func (l *Ledger) Len() int {
	return len(l.allocations)
}

func (l *Ledger) index(recipient weave.Address) int {
	for i, a := range l.allocations {
		if a.Recipient.Equals(recipient) {
			return i
		}
	}
	return -1
}

func (l *Ledger) clone() *Ledger {
	return &Ledger{
		maxRecipientPct: l.maxRecipientPct,
		allocations:     l.Allocations(),
	}
}
