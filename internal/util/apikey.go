package util

import (
	"os"
	"strings"

	moderr "github.com/lizzyg/pinecone/errors"
)

// LoadAPIKey returns apiKey when set, otherwise the value of the named
// environment variable. The environment is read on every call.
func LoadAPIKey(apiKey, environmentVariableName, description string) (string, error) {
	if apiKey != "" {
		return apiKey, nil
	}
	if v, ok := os.LookupEnv(environmentVariableName); ok && strings.TrimSpace(v) != "" {
		return v, nil
	}
	return "", &moderr.LoadAPIKeyError{
		Description:         description,
		EnvironmentVariable: environmentVariableName,
	}
}

// WithoutTrailingSlash strips every trailing "/" from url.
func WithoutTrailingSlash(url string) string {
	return strings.TrimRight(strings.TrimSpace(url), "/")
}
