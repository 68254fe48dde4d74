package card

import "fmt"

// Power is a card's contribution toward overcoming a challenge.
// Valid range is [0, MaxPower]. Arithmetic saturates at the ceiling
// and can never go negative, so a live Power is always in range.
type Power int

// MaxPower is the power ceiling.
const MaxPower Power = 999

// NewPower validates v and wraps it. Construction is the only place a
// range error can occur.
func NewPower(v int) (Power, error) {
	if v < 0 || v > int(MaxPower) {
		return 0, fmt.Errorf("power out of range [0, %d]: %d", MaxPower, v)
	}
	return Power(v), nil
}

// MustPower wraps v or panics. For catalogs and tests with literal values.
func MustPower(v int) Power {
	p, err := NewPower(v)
	if err != nil {
		panic(err)
	}
	return p
}

// Add saturates at MaxPower.
func (p Power) Add(q Power) Power {
	sum := int(p) + int(q)
	if sum > int(MaxPower) {
		return MaxPower
	}
	return Power(sum)
}

// Scale multiplies by a non-negative factor, truncating toward zero and
// saturating at MaxPower.
func (p Power) Scale(factor float64) (Power, error) {
	if factor < 0 || factor != factor {
		return 0, fmt.Errorf("power scale factor must be non-negative and finite: %v", factor)
	}
	scaled := int(float64(p) * factor)
	if scaled > int(MaxPower) {
		return MaxPower, nil
	}
	return Power(scaled), nil
}

func (p Power) Int() int { return int(p) }

// Premium is the cost to acquire or maintain a card. Never negative.
type Premium int

func NewPremium(v int) (Premium, error) {
	if v < 0 {
		return 0, fmt.Errorf("premium must be non-negative: %d", v)
	}
	return Premium(v), nil
}

func MustPremium(v int) Premium {
	p, err := NewPremium(v)
	if err != nil {
		panic(err)
	}
	return p
}

func (p Premium) Add(q Premium) Premium { return p + q }

func (p Premium) Int() int { return int(p) }

// Vitality is a current/maximum pair of life points. The maximum is
// always positive and the current value always sits in [0, max], so a
// live Vitality can never leave its bounds.
type Vitality struct {
	current int
	max     int
}

// NewVitality validates the pair and wraps it.
func NewVitality(current, max int) (Vitality, error) {
	if max <= 0 {
		return Vitality{}, fmt.Errorf("vitality maximum must be positive: %d", max)
	}
	if current < 0 || current > max {
		return Vitality{}, fmt.Errorf("vitality out of range [0, %d]: %d", max, current)
	}
	return Vitality{current: current, max: max}, nil
}

func (v Vitality) Current() int { return v.current }
func (v Vitality) Max() int     { return v.max }

// Depleted reports whether vitality reached the zero floor.
func (v Vitality) Depleted() bool { return v.current == 0 }

// Apply adds delta, clamping to [0, Max].
func (v Vitality) Apply(delta int) Vitality {
	next := v.current + delta
	if next < 0 {
		next = 0
	}
	if next > v.max {
		next = v.max
	}
	v.current = next
	return v
}

// WithMax moves to a new maximum, clamping the current value down when
// the ceiling shrinks below it. Raising the ceiling never heals.
func (v Vitality) WithMax(max int) Vitality {
	v.max = max
	if v.current > max {
		v.current = max
	}
	return v
}
