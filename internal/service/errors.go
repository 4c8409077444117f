package service

import (
	"errors"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/sharesplit/internal/calculator"
	"github.com/mmynk/sharesplit/internal/storage"
)

// ValidationKindHeader carries the ValidationError kind on InvalidArgument errors.
const ValidationKindHeader = "Validation-Kind"

// connectError maps a service error to a Connect error. Validation failures keep
// their message; anything unexpected is logged and hidden behind CodeInternal.
func connectError(err error) error {
	if verr, ok := calculator.AsValidation(err); ok {
		cerr := connect.NewError(connect.CodeInvalidArgument, verr)
		cerr.Meta().Set(ValidationKindHeader, string(verr.Kind))
		return cerr
	}
	if errors.Is(err, storage.ErrNotFound) {
		return connect.NewError(connect.CodeNotFound, errors.New("expense not found"))
	}

	slog.Error("Request failed", "error", err)
	return connect.NewError(connect.CodeInternal, errors.New("internal error"))
}
