package weave

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/iov-one/weave-treasury/errors"
)

// PercentDenominator is the fixed denominator of every Percent value.
const PercentDenominator = 100

// Percent is a whole number of parts out of PercentDenominator. Every
// arithmetic operation truncates toward zero and saturates instead of
// wrapping around.
type Percent uint8

// NewPercent returns the percent value of n, saturated at 100.
func NewPercent(n uint) Percent {
	if n > PercentDenominator {
		return PercentDenominator
	}
	return Percent(n)
}

// Full is 100%.
const Full Percent = PercentDenominator

// SaturatingAdd returns p + o, clamped to 100.
func (p Percent) SaturatingAdd(o Percent) Percent {
	return NewPercent(uint(p) + uint(o))
}

// SaturatingSub returns p - o, clamped to 0.
func (p Percent) SaturatingSub(o Percent) Percent {
	if o >= p {
		return 0
	}
	return p - o
}

// SaturatingMul returns p * o, which is p scaled by the factor o, truncated.
// For example 90% * 90% is 81%.
func (p Percent) SaturatingMul(o Percent) Percent {
	return NewPercent(uint(p) * uint(o) / PercentDenominator)
}

// Div returns the ratio of p to o expressed as a percent, truncated. A zero
// divisor is treated as one, then the numerator is clamped to the divisor so
// that the result never exceeds 100%. Any non zero p divided by 0 is 100%.
func (p Percent) Div(o Percent) Percent {
	num := uint(p)
	den := uint(o)
	if den == 0 {
		den = 1
	}
	if num > den {
		num = den
	}
	return NewPercent(num * PercentDenominator / den)
}

// Complement returns 100% - p.
func (p Percent) Complement() Percent {
	return Full.SaturatingSub(p)
}

// MulAmount returns the p part of n, truncated. The computation does not
// overflow for any n.
func (p Percent) MulAmount(n uint64) uint64 {
	pp := uint64(p)
	return (n/PercentDenominator)*pp + (n%PercentDenominator)*pp/PercentDenominator
}

// Validate returns an error if the value exceeds 100%.
func (p Percent) Validate() error {
	if p > Full {
		return errors.Wrapf(errors.ErrInput, "percent %d exceeds %d", p, PercentDenominator)
	}
	return nil
}

// String returns a human readable representation, like 42%.
func (p Percent) String() string {
	return fmt.Sprintf("%d%%", uint8(p))
}

// MarshalJSON renders the percent as a plain number.
func (p Percent) MarshalJSON() ([]byte, error) {
	return json.Marshal(uint8(p))
}

// UnmarshalJSON accepts either a number or a string like "42%".
func (p *Percent) UnmarshalJSON(raw []byte) error {
	var human string
	if err := json.Unmarshal(raw, &human); err == nil {
		val, err := ParsePercent(human)
		if err != nil {
			return err
		}
		*p = val
		return nil
	}

	var n uint
	if err := json.Unmarshal(raw, &n); err != nil {
		return errors.Wrap(errors.ErrInput, "percent must be a number")
	}
	if n > PercentDenominator {
		return errors.Wrapf(errors.ErrInput, "percent %d exceeds %d", n, PercentDenominator)
	}
	*p = Percent(n)
	return nil
}

// ParsePercent returns the value represented by given string. Both "42" and
// "42%" are accepted. Values above 100 are rejected.
func ParsePercent(raw string) (Percent, error) {
	s := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(raw), "%"))
	n, err := strconv.ParseUint(s, 10, 8)
	if err != nil {
		return 0, errors.Wrapf(errors.ErrInput, "invalid percent %q", raw)
	}
	if n > PercentDenominator {
		return 0, errors.Wrapf(errors.ErrInput, "percent %d exceeds %d", n, PercentDenominator)
	}
	return Percent(n), nil
}

// SumPercents returns the sum of all given values without saturation.
func SumPercents(ps []Percent) uint {
	var total uint
	for _, p := range ps {
		total += uint(p)
	}
	return total
}
