package usecase_test

import (
	"errors"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/timeshift/pkg/usecase"
)

func TestErrors_ErrorsAreDistinct(t *testing.T) {
	errs := []error{
		usecase.ErrUserNotFound,
		usecase.ErrActivityNotFound,
		usecase.ErrUploadFailed,
		usecase.ErrUploadTimeout,
		usecase.ErrInsufficientScope,
		usecase.ErrInvalidState,
		usecase.ErrSubscriptionMismatch,
		usecase.ErrServiceNotConfigured,
	}

	for i, a := range errs {
		for j, b := range errs {
			gt.Value(t, errors.Is(a, b)).Equal(i == j)
		}
	}
}

func TestErrors_WrappedSentinel(t *testing.T) {
	err := goerr.Wrap(usecase.ErrUploadTimeout, "poll gave up", goerr.V(usecase.UploadIDKey, 9))
	gt.Bool(t, errors.Is(err, usecase.ErrUploadTimeout)).True()
	gt.Bool(t, errors.Is(err, usecase.ErrUploadFailed)).False()
}
