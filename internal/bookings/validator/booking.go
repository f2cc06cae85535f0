package validator

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"bonzai/pkg/config"
	"bonzai/pkg/logger"
	"bonzai/pkg/model"

	"github.com/go-playground/validator/v10"
)

// DateLayout is the only accepted calendar-date form at the boundary.
const DateLayout = "2006-01-02"

var dateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

// IsValidCalendarDate accepts only strict YYYY-MM-DD where the parsed date
// round-trips unchanged, so 2024-02-30 is rejected rather than normalized.
func IsValidCalendarDate(s string) bool {
	if !dateRegex.MatchString(s) {
		return false
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return false
	}
	return t.Format(DateLayout) == s
}

// ValidateStayInterval rejects stays starting before today and stays whose
// check-out is not strictly after check-in. Both dates must already be valid
// calendar dates; today is caller-supplied so the check stays deterministic.
func ValidateStayInterval(checkIn, checkOut, today string) error {
	if checkIn < today {
		return ValidationErrors{
			ValidationError{
				Field:   "checkIn",
				Message: "check-in cannot be in the past",
			},
		}
	}
	if checkOut <= checkIn {
		return ValidationErrors{
			ValidationError{
				Field:   "checkOut",
				Message: "check-out must be after check-in",
			},
		}
	}
	return nil
}

type BookingValidator struct {
	validate *validator.Validate
	policy   config.Policy
	logger   *logger.Logger
}

func NewBookingValidator(policy config.Policy, log *logger.Logger) *BookingValidator {
	v := validator.New()

	if err := v.RegisterValidation("calendardate", validateCalendarDate); err != nil {
		log.Fatal("Failed to register 'calendardate' validator",
			"error", err,
		)
	}

	log.Info("Booking validator initialized successfully")

	return &BookingValidator{
		validate: v,
		policy:   policy,
		logger:   log,
	}
}

func validateCalendarDate(fl validator.FieldLevel) bool {
	return IsValidCalendarDate(fl.Field().String())
}

func (v *BookingValidator) ValidateCreate(req *model.CreateBookingRequest, today string) error {
	if err := v.validate.Struct(req); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}

	if err := v.validateMix(req.Guests, req.Counts()); err != nil {
		return err
	}

	return ValidateStayInterval(req.CheckIn, req.CheckOut, today)
}

func (v *BookingValidator) ValidateUpdate(req *model.UpdateBookingRequest, today string) error {
	if err := v.validate.Struct(req); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}

	if err := v.validateMix(req.Guests, req.Counts()); err != nil {
		return err
	}

	return ValidateStayInterval(req.CheckIn, req.CheckOut, today)
}

// validateMix enforces the room-mix invariants: at least one room, no more
// rooms than guests, and enough beds for every guest.
func (v *BookingValidator) validateMix(guests int, counts model.RoomCounts) error {
	totalRooms := counts.Total()
	if totalRooms < 1 {
		return ValidationErrors{
			ValidationError{
				Field:   "numOfSingleRooms",
				Message: "at least one room must be requested",
			},
		}
	}

	if guests < totalRooms {
		return ValidationErrors{
			ValidationError{
				Field:   "guests",
				Message: fmt.Sprintf("number of guests (%d) cannot be less than the number of rooms booked (%d)", guests, totalRooms),
			},
		}
	}

	if totalBeds := v.policy.TotalBeds(counts); guests > totalBeds {
		return ValidationErrors{
			ValidationError{
				Field:   "guests",
				Message: fmt.Sprintf("number of guests (%d) exceeds the available number of beds (%d)", guests, totalBeds),
			},
		}
	}

	return nil
}

func (v *BookingValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
		case "email":
			message = fmt.Sprintf("%s must be a valid email address", err.Field())
		case "calendardate":
			message = fmt.Sprintf("%s must be a valid date in YYYY-MM-DD format", err.Field())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
