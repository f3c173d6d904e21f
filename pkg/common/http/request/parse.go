package request

import (
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/huynhanx03/go-observe/pkg/common/apperr"
)

var (
	// ErrBindFailed reports a body that is not valid JSON for the target type.
	ErrBindFailed = errors.New("request: bind failed")
	// ErrValidationFailed reports a body that violates binding tags.
	ErrValidationFailed = errors.New("request: validation failed")
)

// ParseRequest binds the JSON body into a new T and runs its binding tags.
func ParseRequest[T any](c *gin.Context) (*T, error) {
	var req T
	if err := c.ShouldBindJSON(&req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return nil, errors.Wrapf(ErrValidationFailed, "%s failed on %q", fe.Namespace(), fe.Tag())
		}
		return nil, apperr.Wrap(ErrBindFailed, err)
	}
	return &req, nil
}
