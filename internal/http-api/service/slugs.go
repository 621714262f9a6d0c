package service

import (
	"reviewhub/internal/http-api/apierr"

	"github.com/gosimple/slug"
)

const maxSlugLen = 50

// resolveSlug validates a client-supplied slug or derives one from name.
func resolveSlug(name, given string) (string, error) {
	if given == "" {
		s := slug.Make(name)
		if len(s) > maxSlugLen {
			s = s[:maxSlugLen]
		}
		return s, nil
	}
	if !slug.IsSlug(given) {
		return "", apierr.Validation("slug", "slug may contain only lowercase letters, digits and hyphens")
	}
	if len(given) > maxSlugLen {
		return "", apierr.Validationf("slug", "slug must be at most %d characters", maxSlugLen)
	}
	return given, nil
}
