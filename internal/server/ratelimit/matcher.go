package ratelimit

import (
	"slices"
	"strings"
)

// MatchEndpoint returns the endpoint tier for a request, or nil when the
// default limit applies. Unlimited paths match a tier with Limit 0.
// A config path ending in "/" matches by prefix ("/ai/" matches "/ai/match").
func MatchEndpoint(path string, method string, config *Config) *EndpointConfig {
	if method == "GET" && slices.Contains(config.Unlimited, path) {
		return &EndpointConfig{Path: path, Method: method}
	}

	for i := range config.EndpointConfigs {
		endpoint := &config.EndpointConfigs[i]
		if endpoint.Path == path && endpoint.Method == method {
			return endpoint
		}
	}

	for i := range config.EndpointConfigs {
		endpoint := &config.EndpointConfigs[i]
		if endpoint.Method == method && strings.HasSuffix(endpoint.Path, "/") && strings.HasPrefix(path, endpoint.Path) {
			return endpoint
		}
	}

	return nil
}
