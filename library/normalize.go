package library

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// "Title (2020)" or "Title [2020]"
	bracketYearRegex = regexp.MustCompile(`^(.+?)\s*[\(\[](\d{4})[\)\]]`)
	// "Title.Name.2020.1080p"
	dottedYearRegex = regexp.MustCompile(`^(.+?)\.(\d{4})\.`)
	// "Title Name 2020"
	spacedYearRegex = regexp.MustCompile(`^(.+?)\s+(\d{4})(?:\s|$)`)

	separatorRegex = regexp.MustCompile(`[._]`)
)

// Normalize folds a title for comparison: lowercase, accents removed,
// punctuation deleted and whitespace collapsed.
func Normalize(title string) string {
	s := removeAccents(strings.ToLower(title))

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

func removeAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return result
}

// ExtractTitleAndYear pulls a title and release year out of a file name.
// Year is 0 when the name carries none.
func ExtractTitleAndYear(filename string) (string, int) {
	name := strings.TrimSuffix(filename, filepath.Ext(filename))

	if m := bracketYearRegex.FindStringSubmatch(name); m != nil {
		return strings.TrimSpace(m[1]), atoiYear(m[2])
	}

	if m := dottedYearRegex.FindStringSubmatch(name); m != nil {
		return strings.TrimSpace(strings.ReplaceAll(m[1], ".", " ")), atoiYear(m[2])
	}

	if m := spacedYearRegex.FindStringSubmatch(name); m != nil {
		return strings.TrimSpace(m[1]), atoiYear(m[2])
	}

	title := separatorRegex.ReplaceAllString(name, " ")
	return strings.Join(strings.Fields(title), " "), 0
}

func atoiYear(s string) int {
	year, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return year
}
