package calculator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmynk/sharesplit/internal/models"
)

var hundred = decimal.NewFromInt(100)

// Stored values carry at most two decimal places. Amounts have at most ten
// digits in total and percentages at most five.
const (
	decimalPlaces    = 2
	amountDigits     = 10
	percentageDigits = 5
)

// checkPrecision rejects v if it has more decimal places or more digits than allowed.
func checkPrecision(v decimal.Decimal, maxDigits int32, kind ErrorKind, subject string) error {
	if !v.Equal(v.Round(decimalPlaces)) {
		return NewValidationError(kind, fmt.Sprintf("%s must have at most %d decimal places", subject, decimalPlaces))
	}
	if v.Abs().GreaterThanOrEqual(decimal.New(1, maxDigits-decimalPlaces)) {
		return NewValidationError(kind, fmt.Sprintf("%s must have at most %d digits", subject, maxDigits))
	}
	return nil
}

// Split is the typed form of a split request. Each variant carries exactly the
// per-participant payload its method needs.
type Split interface {
	Method() models.SplitMethod
	isSplit()
}

// EqualSplit divides the total evenly across Participants.
type EqualSplit struct {
	Participants []string
}

// ExactShare is one participant's fixed amount in an ExactSplit.
type ExactShare struct {
	UserID string
	Amount decimal.Decimal
}

// ExactSplit assigns each participant the amount they supplied.
type ExactSplit struct {
	Shares []ExactShare
}

// PercentageShare is one participant's percentage in a PercentageSplit.
type PercentageShare struct {
	UserID     string
	Percentage decimal.Decimal
}

// PercentageSplit assigns each participant a percentage of the total.
type PercentageSplit struct {
	Shares []PercentageShare
}

func (EqualSplit) Method() models.SplitMethod      { return models.SplitMethodEqual }
func (ExactSplit) Method() models.SplitMethod      { return models.SplitMethodExact }
func (PercentageSplit) Method() models.SplitMethod { return models.SplitMethodPercentage }

func (EqualSplit) isSplit()      {}
func (ExactSplit) isSplit()      {}
func (PercentageSplit) isSplit() {}

// Entry is one participant as it arrives over the wire: a user ID plus whichever
// of amount or percentage the caller filled in.
type Entry struct {
	UserID     string
	Amount     *decimal.Decimal
	Percentage *decimal.Decimal
}

// Share is the calculated portion owed by one participant.
type Share struct {
	UserID     string
	Amount     decimal.Decimal
	Percentage decimal.NullDecimal
}

// ParticipantResolver resolves a raw participant identifier to a known user ID.
// Implementations return an error wrapping ErrUnknownParticipant when no such user
// exists; any other error is treated as a lookup failure, not bad input.
type ParticipantResolver interface {
	ResolveParticipant(ctx context.Context, id string) (string, error)
}

// ResolverFunc adapts a plain function to ParticipantResolver.
type ResolverFunc func(ctx context.Context, id string) (string, error)

// ResolveParticipant calls f(ctx, id).
func (f ResolverFunc) ResolveParticipant(ctx context.Context, id string) (string, error) {
	return f(ctx, id)
}

// ParseSplitMethod parses a split method name. Matching is case-insensitive and an
// empty name means EQUAL.
func ParseSplitMethod(s string) (models.SplitMethod, error) {
	switch m := models.SplitMethod(strings.ToUpper(strings.TrimSpace(s))); m {
	case "":
		return models.SplitMethodEqual, nil
	case models.SplitMethodEqual, models.SplitMethodExact, models.SplitMethodPercentage:
		return m, nil
	default:
		return "", NewValidationError(KindUnsupportedSplitMethod, fmt.Sprintf("unsupported split method %q", s))
	}
}

// BuildSplit converts a method name and loosely-typed entries into a Split variant.
// Entries missing the payload their method requires are rejected.
func BuildSplit(method string, entries []Entry) (Split, error) {
	m, err := ParseSplitMethod(method)
	if err != nil {
		return nil, err
	}

	switch m {
	case models.SplitMethodExact:
		shares := make([]ExactShare, len(entries))
		for i, e := range entries {
			if e.Amount == nil {
				return nil, NewValidationError(KindInvalidAmount, fmt.Sprintf("amount is required for participant %q", e.UserID))
			}
			shares[i] = ExactShare{UserID: e.UserID, Amount: *e.Amount}
		}
		return ExactSplit{Shares: shares}, nil

	case models.SplitMethodPercentage:
		shares := make([]PercentageShare, len(entries))
		for i, e := range entries {
			if e.Percentage == nil {
				return nil, NewValidationError(KindInvalidPercentage, fmt.Sprintf("percentage is required for participant %q", e.UserID))
			}
			shares[i] = PercentageShare{UserID: e.UserID, Percentage: *e.Percentage}
		}
		return PercentageSplit{Shares: shares}, nil

	default:
		participants := make([]string, len(entries))
		for i, e := range entries {
			participants[i] = e.UserID
		}
		return EqualSplit{Participants: participants}, nil
	}
}

// Calculate validates a split against total and computes each participant's share.
// Inputs are limited to two decimal places; computed EQUAL and PERCENTAGE shares
// keep full decimal precision. Sums are compared for exact equality. Participants are resolved only after the
// sums check out, and the result preserves input order.
func Calculate(ctx context.Context, total decimal.Decimal, split Split, resolver ParticipantResolver) ([]Share, error) {
	if total.IsNegative() {
		return nil, NewValidationError(KindInvalidAmount, "Total amount must not be negative")
	}
	if err := checkPrecision(total, amountDigits, KindInvalidAmount, "Total amount"); err != nil {
		return nil, err
	}

	var shares []Share
	switch sp := split.(type) {
	case EqualSplit:
		if len(sp.Participants) == 0 {
			return nil, NewValidationError(KindInvalidParticipantCount, "At least one participant is required")
		}
		perPerson := total.Div(decimal.NewFromInt(int64(len(sp.Participants))))
		shares = make([]Share, len(sp.Participants))
		for i, p := range sp.Participants {
			shares[i] = Share{UserID: p, Amount: perPerson}
		}

	case ExactSplit:
		sum := decimal.Zero
		for _, s := range sp.Shares {
			if s.Amount.IsNegative() {
				return nil, NewValidationError(KindInvalidAmount, fmt.Sprintf("Amount for participant %q must not be negative", s.UserID))
			}
			if err := checkPrecision(s.Amount, amountDigits, KindInvalidAmount, fmt.Sprintf("Amount for participant %q", s.UserID)); err != nil {
				return nil, err
			}
			sum = sum.Add(s.Amount)
		}
		if !sum.Equal(total) {
			return nil, NewValidationError(KindAmountMismatch, fmt.Sprintf("Total amount must equal %s", total.String()))
		}
		shares = make([]Share, len(sp.Shares))
		for i, s := range sp.Shares {
			shares[i] = Share{UserID: s.UserID, Amount: s.Amount}
		}

	case PercentageSplit:
		sum := decimal.Zero
		for _, s := range sp.Shares {
			if s.Percentage.IsNegative() || s.Percentage.GreaterThan(hundred) {
				return nil, NewValidationError(KindInvalidPercentage, fmt.Sprintf("Percentage for participant %q must be between 0 and 100", s.UserID))
			}
			if err := checkPrecision(s.Percentage, percentageDigits, KindInvalidPercentage, fmt.Sprintf("Percentage for participant %q", s.UserID)); err != nil {
				return nil, err
			}
			sum = sum.Add(s.Percentage)
		}
		if !sum.Equal(hundred) {
			return nil, NewValidationError(KindPercentageMismatch, "Total percentage must equal 100%")
		}
		shares = make([]Share, len(sp.Shares))
		for i, s := range sp.Shares {
			shares[i] = Share{
				UserID:     s.UserID,
				Amount:     total.Mul(s.Percentage).Div(hundred),
				Percentage: decimal.NewNullDecimal(s.Percentage),
			}
		}

	default:
		return nil, NewValidationError(KindUnsupportedSplitMethod, "unsupported split method")
	}

	for i := range shares {
		userID, err := resolveParticipant(ctx, resolver, shares[i].UserID)
		if err != nil {
			return nil, err
		}
		shares[i].UserID = userID
	}

	return shares, nil
}

func resolveParticipant(ctx context.Context, resolver ParticipantResolver, id string) (string, error) {
	unknown := NewValidationError(KindUnknownParticipant, fmt.Sprintf("unknown participant %q", id))
	if strings.TrimSpace(id) == "" {
		return "", unknown
	}
	if resolver == nil {
		return id, nil
	}
	userID, err := resolver.ResolveParticipant(ctx, id)
	if errors.Is(err, ErrUnknownParticipant) {
		return "", unknown
	}
	if err != nil {
		return "", fmt.Errorf("failed to resolve participant %q: %w", id, err)
	}
	if userID == "" {
		return "", unknown
	}
	return userID, nil
}
