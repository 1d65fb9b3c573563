package viewlines

import (
	"log/slog"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"go.jacobcolvin.com/viewlines/position"
)

// Normalizer transforms strings for comparison (e.g., removing diacritics).
// See [StandardNormalizer] for an implementation.
type Normalizer interface {
	Normalize(in string) string
}

// StandardNormalizer removes diacritics and lowercases strings for
// case-insensitive matching. For example, "Ö" becomes "o".
// Note that [unicode.Mn] is the unicode key for nonspacing marks.
// Create instances with [NewStandardNormalizer].
type StandardNormalizer struct{}

// NewStandardNormalizer creates a new [StandardNormalizer].
func NewStandardNormalizer() StandardNormalizer {
	return StandardNormalizer{}
}

// Normalize implements [Normalizer].
func (StandardNormalizer) Normalize(in string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC, cases.Lower(language.Und))
	out, _, err := transform.String(t, in)
	if err != nil {
		slog.Debug("normalize string", slog.Any("error", err))

		return in
	}

	return out
}

// Finder searches the output lines of a [Collection], so matches land on
// the rows a renderer actually draws: a match on a wrapped continuation row
// reports that row's line number and columns past the hanging indent.
//
// Create instances with [NewFinder].
type Finder struct {
	normalizer Normalizer
}

// FinderOption configures a [Finder].
type FinderOption func(*Finder)

// WithNormalizer sets the [Normalizer] used for matching
// (default: [StandardNormalizer]).
func WithNormalizer(n Normalizer) FinderOption {
	return func(f *Finder) {
		f.normalizer = n
	}
}

// NewFinder creates a new [Finder].
func NewFinder(opts ...FinderOption) *Finder {
	f := &Finder{
		normalizer: NewStandardNormalizer(),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Find returns the output-space ranges of every occurrence of search,
// compared under the configured [Normalizer]. Matches never span output
// lines. Returns nil when search is empty or absent.
func (f *Finder) Find(c *Collection, search string) ([]position.Range, error) {
	needle := []rune(f.normalizer.Normalize(search))
	if len(needle) == 0 {
		return nil, nil
	}

	count, err := c.OutputLineCount()
	if err != nil {
		return nil, err
	}

	var results []position.Range

	for lineNumber := 1; lineNumber <= count; lineNumber++ {
		content, err := c.OutputLineContent(lineNumber)
		if err != nil {
			return nil, err
		}

		for _, span := range f.findInLine(content, needle) {
			results = append(results, position.NewRange(
				position.New(lineNumber, span[0]+1),
				position.New(lineNumber, span[1]+1),
			))
		}
	}

	return results, nil
}

// findInLine returns the 0-indexed [start, end) rune spans of every match
// in content. Each content rune is normalized independently, so reported
// spans index the original runes even when normalization changes lengths.
func (f *Finder) findInLine(content string, needle []rune) [][2]int {
	contentRunes := []rune(content)

	// normalized holds the folded expansion of each content rune;
	// originIndex maps a folded rune back to its source rune.
	var (
		normalized  []rune
		originIndex []int
	)

	for i, r := range contentRunes {
		for _, n := range f.normalizer.Normalize(string(r)) {
			normalized = append(normalized, n)
			originIndex = append(originIndex, i)
		}
	}

	var spans [][2]int

	for i := 0; i+len(needle) <= len(normalized); i++ {
		match := true

		for j, n := range needle {
			if normalized[i+j] != n {
				match = false

				break
			}
		}

		if match {
			start := originIndex[i]
			end := originIndex[i+len(needle)-1] + 1
			spans = append(spans, [2]int{start, end})
		}
	}

	return spans
}
