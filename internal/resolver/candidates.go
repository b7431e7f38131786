package resolver

import "fmt"

// Candidate generation inputs. These mirror common camera and export naming.
var (
	CandidatePrefixes   = []string{"", "photo", "image", "img", "DSC", "IMG_", "P"}
	CandidateExtensions = []string{"jpg", "jpeg", "png", "gif", "webp"}
	CandidateMaxNumber  = 50
)

// Candidates returns the default guessed filenames in probe order
func Candidates() []string {
	return GenerateCandidates(CandidatePrefixes, CandidateMaxNumber, CandidateExtensions)
}

// GenerateCandidates builds prefix x number x extension filenames.
// An empty prefix yields "7.jpg" before "07.jpg"; other prefixes yield the
// zero-padded form first. Duplicates keep their first position.
func GenerateCandidates(prefixes []string, maxNumber int, extensions []string) []string {
	seen := make(map[string]struct{})
	var out []string
	add := func(name string) {
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}

	for _, prefix := range prefixes {
		for n := 1; n <= maxNumber; n++ {
			for _, ext := range extensions {
				padded := fmt.Sprintf("%s%02d.%s", prefix, n, ext)
				plain := fmt.Sprintf("%s%d.%s", prefix, n, ext)
				if prefix == "" {
					add(plain)
					add(padded)
				} else {
					add(padded)
					add(plain)
				}
			}
		}
	}
	return out
}
