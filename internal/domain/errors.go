package domain

import "errors"

// Sentinel errors for gallery operations
var (
	// ErrNoImages indicates neither the listing endpoint nor probing found any image
	ErrNoImages = errors.New("no images found")

	// ErrListingUnavailable indicates the listing endpoint could not be used
	ErrListingUnavailable = errors.New("image listing unavailable")

	// ErrProbeTimeout indicates a candidate did not load before the probe deadline
	ErrProbeTimeout = errors.New("image probe timed out")

	// ErrNotAnImage indicates a resource was fetched but does not decode as an image
	ErrNotAnImage = errors.New("resource is not a decodable image")

	// ErrIndexOutOfRange indicates a gallery index outside [0, len-1]
	ErrIndexOutOfRange = errors.New("gallery index out of range")
)
