/*
Package treasury implements a recurring reward distribution.

Every minting interval a fixed payout is minted and split between the treasury
account and a bounded set of recipients. Each recipient holds a percentage
share of the recipients pool. The treasury always receives at least the
configured minimal share, plus everything the recipients are not allocated.

A recipient is granted a proposed percentage when added. When there is not
enough room left, all existing shares are diluted proportionally to free the
missing part. Removing a recipient augments the remaining shares back, but
never above the percentage each of them was granted. Both operations truncate,
so repeated changes slowly lose precision. The sum of all current shares never
exceeds 100%.

Only the configuration admin can change the recipients and the minting
parameters.
*/
package treasury
