package resolver

import (
	"fmt"
	"net/url"
	"strings"
)

// Paths builds resource URLs for a gallery deployed under a base URL and sub-path
type Paths struct {
	base   *url.URL
	images *url.URL
}

// NewPaths resolves the deployment root (baseURL + basePath) and the images directory under it
func NewPaths(baseURL, basePath, imagesPath string) (Paths, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return Paths{}, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}

	if basePath == "" {
		basePath = "/"
	}
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	if !strings.HasSuffix(basePath, "/") {
		basePath += "/"
	}
	base := u.ResolveReference(&url.URL{Path: basePath})

	if imagesPath != "" && !strings.HasSuffix(imagesPath, "/") {
		imagesPath += "/"
	}
	images := base.ResolveReference(&url.URL{Path: imagesPath})

	return Paths{base: base, images: images}, nil
}

// Base returns the deployment root URL
func (p Paths) Base() string {
	return p.base.String()
}

// Listing resolves the listing endpoint. An absolute path is taken from the
// domain root; a relative one from the deployment root.
func (p Paths) Listing(endpoint string) string {
	ref, err := url.Parse(endpoint)
	if err != nil {
		ref = &url.URL{Path: endpoint}
	}
	return p.base.ResolveReference(ref).String()
}

// Image returns the URL of the image with the given identifier
func (p Paths) Image(id string) string {
	return p.images.JoinPath(id).String()
}
