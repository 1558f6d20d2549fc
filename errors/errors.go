package errors

import (
	"errors"
	"fmt"
)

var (
	ErrMissingAPIKey          = errors.New("api key is missing")
	ErrInvalidInvocation      = errors.New("the Pinecone model function cannot be called on a provider that was not created with New")
	ErrUnknownEntryPoint      = errors.New("unknown provider entry point")
	ErrMissingAssistantName   = errors.New("assistant name is required when no base URL is configured")
	ErrTooManyEmbeddingValues = errors.New("too many values for a single embedding call")
	ErrEmptyResponse          = errors.New("empty response from model")
	ErrStructuredOutput       = errors.New("structured output required but invalid")
)

// LoadAPIKeyError reports that no credential could be found, neither passed
// explicitly nor present in the environment.
type LoadAPIKeyError struct {
	Description         string // human readable provider name, e.g. "Pinecone"
	EnvironmentVariable string
}

func (e *LoadAPIKeyError) Error() string {
	return fmt.Sprintf("%s API key is missing. Pass it using the 'apiKey' parameter or the %s environment variable.",
		e.Description, e.EnvironmentVariable)
}

func (e *LoadAPIKeyError) Is(target error) bool {
	return target == ErrMissingAPIKey
}

// TooManyEmbeddingValuesError carries the limits that were exceeded.
type TooManyEmbeddingValuesError struct {
	Provider string
	ModelID  string
	Max      int
	Got      int
}

func (e *TooManyEmbeddingValuesError) Error() string {
	return fmt.Sprintf("too many values for a single embedding call. The %s model %q can only embed up to %d values per call, but %d values were provided",
		e.Provider, e.ModelID, e.Max, e.Got)
}

func (e *TooManyEmbeddingValuesError) Unwrap() error { return ErrTooManyEmbeddingValues }
