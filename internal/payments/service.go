package payments

import (
	"context"

	"courtside/internal/bookings"
	"courtside/internal/shared/apperrors"
	"courtside/pkg/logger"
)

// VerificationOutcome pairs the gateway's answer with the booking it settled.
type VerificationOutcome struct {
	Result  *VerifyResult     `json:"result"`
	Booking *bookings.Booking `json:"booking"`
}

// Service interface defines the contract for payment verification
type Service interface {
	// VerifyAndConfirm checks the transaction with the gateway and, if it
	// was paid, moves the referenced booking from pending to confirmed. The
	// transaction reference doubles as the booking reference.
	VerifyAndConfirm(ctx context.Context, reference string) (*VerificationOutcome, error)
}

type service struct {
	gateway    Gateway
	bookingSvc bookings.Service
	log        *logger.Logger
}

// NewService creates a new payment service instance
func NewService(gateway Gateway, bookingSvc bookings.Service, log *logger.Logger) Service {
	return &service{
		gateway:    gateway,
		bookingSvc: bookingSvc,
		log:        log,
	}
}

func (s *service) VerifyAndConfirm(ctx context.Context, reference string) (*VerificationOutcome, error) {
	if reference == "" {
		return nil, apperrors.Validation("missing required fields", "reference")
	}

	result, err := s.gateway.Verify(ctx, reference)
	if err != nil {
		return nil, apperrors.Transient("payment verification failed", err)
	}
	if !result.Paid {
		return nil, apperrors.Conflict("transaction was not successful")
	}

	booking, err := s.bookingSvc.ConfirmByRef(ctx, reference)
	if err != nil {
		return nil, err
	}

	s.log.InfoWithContext(ctx, "payment verified", map[string]interface{}{
		"reference":  reference,
		"booking_id": booking.ID.String(),
		"amount":     result.Amount,
	})

	return &VerificationOutcome{Result: result, Booking: booking}, nil
}
