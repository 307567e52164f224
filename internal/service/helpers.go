package service

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	appErrors "github.com/noah-isme/sma-clubs/pkg/errors"
)

func newValidator(validate *validator.Validate) *validator.Validate {
	if validate == nil {
		return validator.New()
	}
	return validate
}

func newLogger(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func invalid(err error, message string) error {
	return appErrors.Wrap(err, appErrors.ErrValidation.Kind, appErrors.ErrValidation.Code, message)
}

func checkID(validate *validator.Validate, id int64, name string) error {
	if err := validate.Var(id, "gt=0"); err != nil {
		return invalid(err, name+" must be a positive number")
	}
	return nil
}

// refused logs integrity refusals at info; engine failures were already logged by the table.
func refused(logger *zap.Logger, err error, msg string, fields ...zap.Field) error {
	if errors.Is(err, appErrors.ErrInUse) {
		logger.Info(msg, append(fields, zap.String("reason", err.Error()))...)
	}
	return err
}
