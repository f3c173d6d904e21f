package settings

import (
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/huynhanx03/go-observe/pkg/common/apperr"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// ErrInvalidConfig is the cause of every error returned by Validate.
var ErrInvalidConfig = errors.New("invalid configuration")

// Validate checks cfg (any section of Config, or Config itself) against its validate tags.
func Validate(cfg any) error {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})

	if err := validate.Struct(cfg); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			first := fieldErrs[0]
			return errors.Wrapf(ErrInvalidConfig, "%s failed on %q", first.Namespace(), first.Tag())
		}
		return apperr.Wrap(ErrInvalidConfig, err)
	}
	return nil
}
