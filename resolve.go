package pinecone

import (
	"maps"
	"strings"

	"github.com/lizzyg/pinecone/internal/core"
	"github.com/lizzyg/pinecone/internal/util"
)

// ResolvedConfig is the immutable connection configuration shared by model handles.
type ResolvedConfig = core.ResolvedConfig

// Resolve turns settings into a ResolvedConfig. It performs no I/O and never
// fails: the credential is looked up each time the returned Headers function
// runs, so a PINECONE_API_KEY set after Resolve is still honored.
func Resolve(settings ProviderSettings, providerID, defaultBaseURL string) *ResolvedConfig {
	return &ResolvedConfig{
		ProviderID: providerID,
		BaseURL:    resolveBaseURL(settings, defaultBaseURL),
		Headers:    headerFunc(settings.APIKey, maps.Clone(settings.Headers)),
		HTTPClient: settings.HTTPClient,
	}
}

func resolveBaseURL(settings ProviderSettings, defaultBaseURL string) string {
	for _, candidate := range []string{settings.BaseURL, settings.BaseUrl, defaultBaseURL} {
		if u := util.WithoutTrailingSlash(candidate); u != "" {
			return u
		}
	}
	return ""
}

func headerFunc(apiKey string, custom map[string]string) core.HeaderFunc {
	return func() (map[string]string, error) {
		key, err := util.LoadAPIKey(apiKey, APIKeyEnv, providerDescription)
		if err != nil {
			return nil, err
		}
		return mergeHeaders(map[string]string{"Authorization": "Bearer " + key}, custom), nil
	}
}

// mergeHeaders overlays custom on base into a new map. Keys are matched
// case-insensitively so a custom "authorization" replaces "Authorization".
func mergeHeaders(base, custom map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(custom))
	maps.Copy(out, base)
	for k, v := range custom {
		for existing := range out {
			if existing != k && strings.EqualFold(existing, k) {
				delete(out, existing)
			}
		}
		out[k] = v
	}
	return out
}
