package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Third-Party Collaborator Errors
var (
	ErrEmailDelivery      = errors.New("email delivery failed")
	ErrStorageUnavailable = errors.New("object storage unavailable")
	ErrIdentityProvider   = errors.New("identity provider error")
	ErrLLMUnavailable     = errors.New("language model unavailable")
	ErrServiceUnavailable = errors.New("service unavailable")
)

func NewEmailDeliveryError(cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadGateway,
		err:        ErrEmailDelivery,
		Cause:      cause,
	}
}

func NewStorageError(operation string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadGateway,
		err:        ErrStorageUnavailable,
		Details:    fmt.Sprintf("Failed to %s", operation),
		Cause:      cause,
	}
}

func NewIdentityProviderError(cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadGateway,
		err:        ErrIdentityProvider,
		Cause:      cause,
	}
}
