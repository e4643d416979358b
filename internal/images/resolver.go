// Package images maps opaque image references to displayable URLs.
package images

import "strings"

// Image is a resolved image: the URL to try first and the placeholder to
// fall back to when that URL fails to load at render time.
type Image struct {
	URL      string
	Fallback string
}

// Resolver resolves opaque image references against a configured hosting
// base path, with a placeholder asset for missing or broken references.
type Resolver struct {
	placeholder string
	basePath    string
}

// NewResolver creates a resolver. basePath is the image-hosting prefix
// composed with bare references; placeholder is used for absent or "N/A"
// references and as the load-failure fallback.
func NewResolver(placeholder, basePath string) *Resolver {
	return &Resolver{
		placeholder: placeholder,
		basePath:    basePath,
	}
}

// Resolve maps an image reference to a displayable image. Priority order:
// absent/empty/"N/A" gets the placeholder; an absolute URL is used as-is;
// anything else is composed with the base path.
func (r *Resolver) Resolve(ref string) Image {
	ref = strings.TrimSpace(ref)

	if ref == "" || strings.EqualFold(ref, "N/A") {
		return Image{URL: r.placeholder, Fallback: r.placeholder}
	}

	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return Image{URL: ref, Fallback: r.placeholder}
	}

	return Image{URL: r.basePath + ref, Fallback: r.placeholder}
}
