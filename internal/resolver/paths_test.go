package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathsDomainRoot(t *testing.T) {
	p, err := NewPaths("http://localhost:8000", "/", "images/")
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000/", p.Base())
	assert.Equal(t, "http://localhost:8000/api/images", p.Listing("/api/images"))
	assert.Equal(t, "http://localhost:8000/images/a.jpg", p.Image("a.jpg"))
}

func TestPathsSubPath(t *testing.T) {
	p, err := NewPaths("https://example.github.io", "portfolio", "images")
	require.NoError(t, err)

	assert.Equal(t, "https://example.github.io/portfolio/", p.Base())
	assert.Equal(t, "https://example.github.io/portfolio/images/IMG_01.jpg", p.Image("IMG_01.jpg"))
	assert.Equal(t, "https://example.github.io/api/images", p.Listing("/api/images"), "absolute endpoint stays on the domain root")
	assert.Equal(t, "https://example.github.io/portfolio/api/images", p.Listing("api/images"))
}

func TestPathsEscapesNames(t *testing.T) {
	p, err := NewPaths("http://localhost:8000", "", "images/")
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000/images/my%20photo.jpg", p.Image("my photo.jpg"))
}

func TestPathsInvalidBase(t *testing.T) {
	_, err := NewPaths("http://[::1", "/", "images/")
	assert.Error(t, err)
}
