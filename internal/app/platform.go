package app

import (
	"fmt"
	"runtime"
	"strings"
)

// validPlatforms are the accepted --platform overrides.
var validPlatforms = []string{"windows", "linux", "darwin"}

func resolvePlatform(override string) (string, error) {
	override = strings.ToLower(strings.TrimSpace(override))
	if override == "" {
		return runtime.GOOS, nil
	}
	for _, p := range validPlatforms {
		if p == override {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown platform %q (want one of %s)", override, strings.Join(validPlatforms, ", "))
}
