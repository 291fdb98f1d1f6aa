package treasury

import (
	"github.com/iov-one/weave-treasury"
)

// RecipientPayout is the amount minted for a single recipient.
type RecipientPayout struct {
	Recipient weave.Address
	Amount    uint64
}

// Payout is the result of splitting a reward.
type Payout struct {
	Treasury   uint64
	Recipients []RecipientPayout
}

// Total returns the sum of all amounts.
func (p Payout) Total() uint64 {
	total := p.Treasury
	for _, r := range p.Recipients {
		total += r.Amount
	}
	return total
}

// Split divides the reward between the treasury and the recipients.
//
// The treasury is granted at least minTreasuryPct of the reward. The rest is
// the recipients pool and every recipient receives its current share of that
// pool. Whatever the recipients are not allocated, including all truncation
// remainders, goes to the treasury, so the total is always equal to the
// reward. Current shares of allocations must not sum to more than 100%.
func Split(reward uint64, minTreasuryPct weave.Percent, allocations []RecipientAllocation) Payout {
	if len(allocations) == 0 {
		return Payout{Treasury: reward}
	}

	pool := minTreasuryPct.Complement().MulAmount(reward)
	var allocated uint64
	recipients := make([]RecipientPayout, len(allocations))
	for i, a := range allocations {
		amount := a.Current.MulAmount(pool)
		allocated += amount
		recipients[i] = RecipientPayout{Recipient: a.Recipient, Amount: amount}
	}
	return Payout{
		Treasury:   reward - allocated,
		Recipients: recipients,
	}
}
