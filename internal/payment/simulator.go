package payment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"coworking/internal/metrics"
	"coworking/internal/models"

	"github.com/rs/zerolog"
)

var (
	ErrBankIdentifierRequired = errors.New("bank identifier is required for online payment")
	ErrUnknownMethod          = errors.New("unknown payment method")
)

// Simulator stands in for a payment gateway: it validates the method and
// succeeds after a fixed delay. No network call is made.
type Simulator struct {
	delay  time.Duration
	logger *zerolog.Logger
	now    func() time.Time
}

func NewSimulator(delay time.Duration, logger *zerolog.Logger) *Simulator {
	if delay < 0 {
		delay = models.DefaultPaymentDelay
	}
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Simulator{delay: delay, logger: logger, now: time.Now}
}

// Validate checks the method and, for online payment, the bank identifier.
func Validate(method models.PaymentMethod, bankIdentifier string) error {
	if !method.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownMethod, method)
	}
	if method == models.PaymentOnline && strings.TrimSpace(bankIdentifier) == "" {
		return ErrBankIdentifierRequired
	}
	return nil
}

// Process blocks for the configured delay unless ctx is done first.
func (s *Simulator) Process(ctx context.Context, method models.PaymentMethod, bankIdentifier string) (models.PaymentOutcome, error) {
	if err := Validate(method, bankIdentifier); err != nil {
		return models.PaymentOutcome{}, err
	}

	timer := time.NewTimer(s.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return models.PaymentOutcome{}, ctx.Err()
	case <-timer.C:
	}

	outcome := models.PaymentOutcome{
		Method:      method,
		Message:     message(method),
		ProcessedAt: s.now(),
	}
	metrics.IncPayment(string(method))
	s.logger.Info().Str("method", string(method)).Msg(outcome.Message)
	return outcome, nil
}

func message(method models.PaymentMethod) string {
	if method == models.PaymentOnline {
		return "Online payment with bank identifier succeeded"
	}
	return "On-site payment succeeded"
}
