package service

import (
	"fmt"
	"time"

	bookingserrors "bonzai/internal/bookings/errors"
	"bonzai/internal/bookings/validator"
	"bonzai/pkg/config"
	"bonzai/pkg/model"
)

// Nights is the number of billable nights between two calendar dates,
// computed as the ceiling of the day difference. Dates must already be
// validated calendar dates.
func Nights(checkIn, checkOut string) (int, error) {
	in, err := time.Parse(validator.DateLayout, checkIn)
	if err != nil {
		return 0, fmt.Errorf("invalid check-in date %q: %w", checkIn, err)
	}
	out, err := time.Parse(validator.DateLayout, checkOut)
	if err != nil {
		return 0, fmt.Errorf("invalid check-out date %q: %w", checkOut, err)
	}

	hours := out.Sub(in).Hours()
	nights := int(hours / 24)
	if hours > float64(nights*24) {
		nights++
	}

	if nights <= 0 {
		return 0, bookingserrors.ErrInvalidDateRange
	}
	return nights, nil
}

// PricingCalculator prices a room mix from the configured nightly rates.
type PricingCalculator struct {
	policy config.Policy
}

func NewPricingCalculator(policy config.Policy) *PricingCalculator {
	return &PricingCalculator{policy: policy}
}

func (p *PricingCalculator) TotalPrice(counts model.RoomCounts, nights int) int {
	perNight := 0
	for _, t := range model.RoomTypes {
		perNight += counts.Of(t) * p.policy.Rate(t)
	}
	return perNight * nights
}
