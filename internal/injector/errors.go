package injector

import (
	"errors"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
)

var (
	// ErrServiceDisabled indicates canonical tags are disabled by configuration.
	ErrServiceDisabled = errors.New("injector: service disabled")
	// ErrVerificationFailed is returned by Verify when any page has issues.
	ErrVerificationFailed = errors.New("injector: verification failed")
	errFilesRequired      = errors.New("injector: output filesystem is required")
)

const (
	pageReadFailed      = "INJECTOR_PAGE_READ_FAILED"
	pageWriteFailed     = "INJECTOR_PAGE_WRITE_FAILED"
	pageParseFailed     = "INJECTOR_PAGE_PARSE_FAILED"
	discoveryFailed     = "INJECTOR_DISCOVERY_FAILED"
	verificationFailure = "INJECTOR_VERIFICATION_FAILED"
)

func wrapPageError(err error, code, rel string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, fmt.Sprintf("injector: %s", rel)).
		WithTextCode(code)
}

func wrapDiscoveryError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, "injector: discover pages").
		WithTextCode(discoveryFailed)
}

func verificationError(issues int) error {
	return goerrors.Wrap(fmt.Errorf("%w: %d issue(s)", ErrVerificationFailed, issues), goerrors.CategoryValidation, "injector: verification failed").
		WithTextCode(verificationFailure)
}
