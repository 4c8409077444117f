package calculator

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mmynk/sharesplit/internal/models"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func dp(s string) *decimal.Decimal {
	v := d(s)
	return &v
}

// knownUsers resolves only the given IDs.
func knownUsers(ids ...string) ParticipantResolver {
	known := make(map[string]bool, len(ids))
	for _, id := range ids {
		known[id] = true
	}
	return ResolverFunc(func(ctx context.Context, id string) (string, error) {
		if !known[id] {
			return "", fmt.Errorf("user %s: %w", id, ErrUnknownParticipant)
		}
		return id, nil
	})
}

func TestCalculate(t *testing.T) {
	resolver := knownUsers("alice", "bob", "carol", "dave")

	tests := []struct {
		name         string
		total        decimal.Decimal
		split        Split
		wantErr      error
		wantMessage  string
		validateFunc func(t *testing.T, shares []Share)
	}{
		{
			name:  "equal split four ways",
			total: d("100"),
			split: EqualSplit{Participants: []string{"alice", "bob", "carol", "dave"}},
			validateFunc: func(t *testing.T, shares []Share) {
				if len(shares) != 4 {
					t.Fatalf("got %d shares, want 4", len(shares))
				}
				for _, s := range shares {
					if !s.Amount.Equal(d("25.00")) {
						t.Errorf("%s amount = %s, want 25.00", s.UserID, s.Amount)
					}
					if s.Percentage.Valid {
						t.Errorf("%s percentage set on equal split", s.UserID)
					}
				}
			},
		},
		{
			name:  "equal split three ways sums within precision",
			total: d("100"),
			split: EqualSplit{Participants: []string{"alice", "bob", "carol"}},
			validateFunc: func(t *testing.T, shares []Share) {
				sum := decimal.Zero
				for _, s := range shares {
					if !s.Amount.Equal(d("100").Div(d("3"))) {
						t.Errorf("%s amount = %s, want total/3", s.UserID, s.Amount)
					}
					sum = sum.Add(s.Amount)
				}
				if sum.Sub(d("100")).Abs().GreaterThan(d("0.000001")) {
					t.Errorf("sum = %s, want ~100", sum)
				}
			},
		},
		{
			name:        "equal split with no participants",
			total:       d("100"),
			split:       EqualSplit{},
			wantErr:     ErrInvalidParticipantCount,
			wantMessage: "At least one participant is required",
		},
		{
			name:  "exact split matching total",
			total: d("90"),
			split: ExactSplit{Shares: []ExactShare{
				{UserID: "alice", Amount: d("30")},
				{UserID: "bob", Amount: d("30")},
				{UserID: "carol", Amount: d("30")},
			}},
			validateFunc: func(t *testing.T, shares []Share) {
				if len(shares) != 3 {
					t.Fatalf("got %d shares, want 3", len(shares))
				}
				for i, want := range []string{"alice", "bob", "carol"} {
					if shares[i].UserID != want {
						t.Errorf("share %d user = %s, want %s", i, shares[i].UserID, want)
					}
					if !shares[i].Amount.Equal(d("30")) {
						t.Errorf("share %d amount = %s, want 30", i, shares[i].Amount)
					}
				}
			},
		},
		{
			name:  "exact split with cents sums exactly",
			total: d("60"),
			split: ExactSplit{Shares: []ExactShare{
				{UserID: "alice", Amount: d("30.10")},
				{UserID: "bob", Amount: d("29.90")},
			}},
		},
		{
			name:  "exact split short by one",
			total: d("90"),
			split: ExactSplit{Shares: []ExactShare{
				{UserID: "alice", Amount: d("30")},
				{UserID: "bob", Amount: d("30")},
				{UserID: "carol", Amount: d("29")},
			}},
			wantErr:     ErrAmountMismatch,
			wantMessage: "Total amount must equal 90",
		},
		{
			name:  "exact split off by one cent",
			total: d("90"),
			split: ExactSplit{Shares: []ExactShare{
				{UserID: "alice", Amount: d("45")},
				{UserID: "bob", Amount: d("45.01")},
			}},
			wantErr: ErrAmountMismatch,
		},
		{
			name:  "exact split with negative amount",
			total: d("10"),
			split: ExactSplit{Shares: []ExactShare{
				{UserID: "alice", Amount: d("20")},
				{UserID: "bob", Amount: d("-10")},
			}},
			wantErr: ErrInvalidAmount,
		},
		{
			name:  "percentage split halves",
			total: d("200"),
			split: PercentageSplit{Shares: []PercentageShare{
				{UserID: "alice", Percentage: d("50")},
				{UserID: "bob", Percentage: d("50")},
			}},
			validateFunc: func(t *testing.T, shares []Share) {
				for _, s := range shares {
					if !s.Amount.Equal(d("100.00")) {
						t.Errorf("%s amount = %s, want 100.00", s.UserID, s.Amount)
					}
					if !s.Percentage.Valid || !s.Percentage.Decimal.Equal(d("50")) {
						t.Errorf("%s percentage = %v, want 50", s.UserID, s.Percentage)
					}
				}
			},
		},
		{
			name:  "percentage split uneven",
			total: d("80"),
			split: PercentageSplit{Shares: []PercentageShare{
				{UserID: "alice", Percentage: d("12.5")},
				{UserID: "bob", Percentage: d("87.5")},
			}},
			validateFunc: func(t *testing.T, shares []Share) {
				if !shares[0].Amount.Equal(d("10")) {
					t.Errorf("alice amount = %s, want 10", shares[0].Amount)
				}
				if !shares[1].Amount.Equal(d("70")) {
					t.Errorf("bob amount = %s, want 70", shares[1].Amount)
				}
			},
		},
		{
			name:  "percentage split under 100",
			total: d("200"),
			split: PercentageSplit{Shares: []PercentageShare{
				{UserID: "alice", Percentage: d("50")},
				{UserID: "bob", Percentage: d("49.99")},
			}},
			wantErr:     ErrPercentageMismatch,
			wantMessage: "Total percentage must equal 100%",
		},
		{
			name:  "percentage split over 100",
			total: d("200"),
			split: PercentageSplit{Shares: []PercentageShare{
				{UserID: "alice", Percentage: d("50")},
				{UserID: "bob", Percentage: d("50.01")},
			}},
			wantErr: ErrPercentageMismatch,
		},
		{
			name:  "percentage above 100 for one participant",
			total: d("200"),
			split: PercentageSplit{Shares: []PercentageShare{
				{UserID: "alice", Percentage: d("150")},
				{UserID: "bob", Percentage: d("-50")},
			}},
			wantErr: ErrInvalidPercentage,
		},
		{
			name:    "negative total",
			total:   d("-1"),
			split:   EqualSplit{Participants: []string{"alice"}},
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "nil split",
			total:   d("10"),
			split:   nil,
			wantErr: ErrUnsupportedSplitMethod,
		},
		{
			name:        "unknown participant",
			total:       d("10"),
			split:       EqualSplit{Participants: []string{"alice", "mallory"}},
			wantErr:     ErrUnknownParticipant,
			wantMessage: `unknown participant "mallory"`,
		},
		{
			name:    "blank participant",
			total:   d("10"),
			split:   EqualSplit{Participants: []string{"alice", " "}},
			wantErr: ErrUnknownParticipant,
		},
		{
			name:        "total with sub-cent precision",
			total:       d("10.005"),
			split:       ExactSplit{Shares: []ExactShare{{UserID: "alice", Amount: d("5.0025")}, {UserID: "bob", Amount: d("5.0025")}}},
			wantErr:     ErrInvalidAmount,
			wantMessage: "Total amount must have at most 2 decimal places",
		},
		{
			name:  "exact amount with sub-cent precision",
			total: d("10"),
			split: ExactSplit{Shares: []ExactShare{
				{UserID: "alice", Amount: d("4.995")},
				{UserID: "bob", Amount: d("5.005")},
			}},
			wantErr:     ErrInvalidAmount,
			wantMessage: `Amount for participant "alice" must have at most 2 decimal places`,
		},
		{
			name:        "total with too many digits",
			total:       d("100000000"),
			split:       EqualSplit{Participants: []string{"alice"}},
			wantErr:     ErrInvalidAmount,
			wantMessage: "Total amount must have at most 10 digits",
		},
		{
			name:  "largest total allowed",
			total: d("99999999.99"),
			split: EqualSplit{Participants: []string{"alice"}},
			validateFunc: func(t *testing.T, shares []Share) {
				if !shares[0].Amount.Equal(d("99999999.99")) {
					t.Errorf("amount = %s, want 99999999.99", shares[0].Amount)
				}
			},
		},
		{
			name:  "trailing zeros beyond cents are accepted",
			total: d("10.500"),
			split: EqualSplit{Participants: []string{"alice", "bob"}},
			validateFunc: func(t *testing.T, shares []Share) {
				if !shares[0].Amount.Equal(d("5.25")) {
					t.Errorf("amount = %s, want 5.25", shares[0].Amount)
				}
			},
		},
		{
			name:  "percentage with sub-cent precision",
			total: d("100"),
			split: PercentageSplit{Shares: []PercentageShare{
				{UserID: "alice", Percentage: d("33.335")},
				{UserID: "bob", Percentage: d("66.665")},
			}},
			wantErr:     ErrInvalidPercentage,
			wantMessage: `Percentage for participant "alice" must have at most 2 decimal places`,
		},
		{
			name:  "percentage share keeps full precision",
			total: d("0.10"),
			split: PercentageSplit{Shares: []PercentageShare{
				{UserID: "alice", Percentage: d("33.33")},
				{UserID: "bob", Percentage: d("66.67")},
			}},
			validateFunc: func(t *testing.T, shares []Share) {
				if !shares[0].Amount.Equal(d("0.03333")) {
					t.Errorf("alice amount = %s, want 0.03333", shares[0].Amount)
				}
			},
		},
		{
			name:  "zero total equal split",
			total: d("0"),
			split: EqualSplit{Participants: []string{"alice", "bob"}},
			validateFunc: func(t *testing.T, shares []Share) {
				for _, s := range shares {
					if !s.Amount.IsZero() {
						t.Errorf("%s amount = %s, want 0", s.UserID, s.Amount)
					}
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shares, err := Calculate(context.Background(), tt.total, tt.split, resolver)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Calculate() error = %v, want %v", err, tt.wantErr)
				}
				if !IsValidation(err) {
					t.Errorf("Calculate() error %T is not a ValidationError", err)
				}
				if tt.wantMessage != "" && err.Error() != tt.wantMessage {
					t.Errorf("Calculate() message = %q, want %q", err.Error(), tt.wantMessage)
				}
				if shares != nil {
					t.Errorf("Calculate() returned shares alongside error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Calculate() unexpected error = %v", err)
			}
			if tt.validateFunc != nil {
				tt.validateFunc(t, shares)
			}
		})
	}
}

func TestCalculate_EqualSharesSumToTotal(t *testing.T) {
	participants := []string{"a", "b", "c", "d", "e", "f", "g"}
	totals := []string{"0.01", "1", "10", "99.99", "100", "1234.56"}

	for _, total := range totals {
		for n := 1; n <= len(participants); n++ {
			shares, err := Calculate(context.Background(), d(total), EqualSplit{Participants: participants[:n]}, nil)
			if err != nil {
				t.Fatalf("total=%s n=%d: %v", total, n, err)
			}
			sum := decimal.Zero
			for _, s := range shares {
				sum = sum.Add(s.Amount)
			}
			if sum.Sub(d(total)).Abs().GreaterThan(d("0.0000001")) {
				t.Errorf("total=%s n=%d: sum = %s", total, n, sum)
			}
		}
	}
}

func TestCalculate_ResolverFailure(t *testing.T) {
	dbErr := errors.New("database is locked")
	resolver := ResolverFunc(func(ctx context.Context, id string) (string, error) {
		return "", dbErr
	})

	_, err := Calculate(context.Background(), d("10"), EqualSplit{Participants: []string{"alice"}}, resolver)
	if !errors.Is(err, dbErr) {
		t.Fatalf("error = %v, want wrapped %v", err, dbErr)
	}
	if IsValidation(err) {
		t.Error("lookup failure reported as validation error")
	}
}

func TestCalculate_ResolverCanonicalizesIDs(t *testing.T) {
	resolver := ResolverFunc(func(ctx context.Context, id string) (string, error) {
		return "user-" + id, nil
	})

	shares, err := Calculate(context.Background(), d("10"), EqualSplit{Participants: []string{"1", "2"}}, resolver)
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}
	if shares[0].UserID != "user-1" || shares[1].UserID != "user-2" {
		t.Errorf("user IDs = %s, %s; want user-1, user-2", shares[0].UserID, shares[1].UserID)
	}
}

func TestBuildSplit(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		entries    []Entry
		wantMethod models.SplitMethod
		wantErr    error
	}{
		{
			name:       "empty method defaults to equal",
			method:     "",
			entries:    []Entry{{UserID: "alice"}},
			wantMethod: models.SplitMethodEqual,
		},
		{
			name:       "lowercase exact",
			method:     "exact",
			entries:    []Entry{{UserID: "alice", Amount: dp("10")}},
			wantMethod: models.SplitMethodExact,
		},
		{
			name:       "percentage",
			method:     "PERCENTAGE",
			entries:    []Entry{{UserID: "alice", Percentage: dp("100")}},
			wantMethod: models.SplitMethodPercentage,
		},
		{
			name:    "unknown method",
			method:  "SHARES",
			entries: []Entry{{UserID: "alice"}},
			wantErr: ErrUnsupportedSplitMethod,
		},
		{
			name:    "exact without amount",
			method:  "EXACT",
			entries: []Entry{{UserID: "alice", Percentage: dp("100")}},
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "percentage without percentage",
			method:  "PERCENTAGE",
			entries: []Entry{{UserID: "alice", Amount: dp("10")}},
			wantErr: ErrInvalidPercentage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			split, err := BuildSplit(tt.method, tt.entries)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("BuildSplit() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("BuildSplit() unexpected error = %v", err)
			}
			if split.Method() != tt.wantMethod {
				t.Errorf("Method() = %s, want %s", split.Method(), tt.wantMethod)
			}
		})
	}
}

func TestValidationError_HTTPStatus(t *testing.T) {
	err := NewValidationError(KindAmountMismatch, "Total amount must equal 90")
	if err.HTTPStatus() != 400 {
		t.Errorf("HTTPStatus() = %d, want 400", err.HTTPStatus())
	}
	wrapped := fmt.Errorf("create expense: %w", err)
	verr, ok := AsValidation(wrapped)
	if !ok || verr.Kind != KindAmountMismatch {
		t.Errorf("AsValidation(wrapped) = %v, %v", verr, ok)
	}
}
