package controller

import (
	"errors"
	"reflect"
	"strings"

	"coworking/internal/models"
	"coworking/internal/payment"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "numeric":
		return "must be a number"
	case "oneof":
		return "must be one of: " + fe.Param()
	}
	return "is invalid"
}

// validateStruct runs the struct's validate tags and converts failures to a
// *ValidationError. Whitespace-only strings count as empty.
func validateStruct(s any) *ValidationError {
	out := &ValidationError{}
	err := validate.Struct(s)
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			out.add(fe.Field(), fieldMessage(fe))
		}
	}
	return out
}

func trimBookingDraft(d models.BookingDraft) models.BookingDraft {
	d.ClientFullName = strings.TrimSpace(d.ClientFullName)
	d.Date = strings.TrimSpace(d.Date)
	d.HeureDebut = strings.TrimSpace(d.HeureDebut)
	d.HeureFin = strings.TrimSpace(d.HeureFin)
	d.BankIdentifier = strings.TrimSpace(d.BankIdentifier)
	return d
}

// validateBookingDraft checks what booking submission needs. The bank
// identifier is not part of it.
func validateBookingDraft(d models.BookingDraft) *ValidationError {
	return validateStruct(trimBookingDraft(d))
}

// validatePayment checks the payment step requirements.
func validatePayment(d models.BookingDraft) *ValidationError {
	out := &ValidationError{}
	switch err := payment.Validate(d.PaymentMethod, d.BankIdentifier); {
	case errors.Is(err, payment.ErrBankIdentifierRequired):
		out.add("bankIdentifier", "is required for online payment")
	case err != nil:
		out.add("paymentMethod", "must be one of: on-site online")
	}
	return out
}

func validateRoomAdd(d models.RoomDraft) *ValidationError {
	d.RoomType = strings.TrimSpace(d.RoomType)
	d.PricePerHour = strings.TrimSpace(d.PricePerHour)
	return validateStruct(d)
}

// validateRoomEdit only checks the price format; empty fields are allowed
// and mean "unchanged".
func validateRoomEdit(d models.RoomDraft) *ValidationError {
	out := &ValidationError{}
	price := strings.TrimSpace(d.PricePerHour)
	if err := validate.Var(price, "omitempty,numeric"); err != nil {
		out.add("pricePerHour", "must be a number")
	}
	return out
}
