package textclean

import (
	"context"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/revclean/revclean/pkg/pipeline"
	"github.com/revclean/revclean/pkg/table"
)

var (
	htmlTags  = regexp.MustCompile(`<[^>]+>`)
	urlTokens = regexp.MustCompile(`http\S+|www\S+`)
	nonAlnum  = regexp.MustCompile(`[^a-z0-9\s]`)
)

var accentFold = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Standardize reduces text to a canonical lowercase alphanumeric form:
// lowercase, fold accents, strip HTML-tag-like and URL-like tokens,
// replace every remaining non [a-z0-9 space] character with a space,
// collapse whitespace and trim.
func Standardize(text string) string {
	text = strings.ToLower(text)
	if folded, _, err := transform.String(accentFold, text); err == nil {
		text = folded
	}
	text = htmlTags.ReplaceAllString(text, " ")
	text = urlTokens.ReplaceAllString(text, " ")
	text = nonAlnum.ReplaceAllString(text, " ")
	text = spaceRuns.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// StandardizeColumns rewrites each listed text column into a
// `<col>_clean` column and drops the raw one. A listed column that is
// absent is skipped; one that is present but not textual violates the
// stage's type contract.
type StandardizeColumns struct {
	Columns []string
}

func (t *StandardizeColumns) Name() string { return "standardize" }

func (t *StandardizeColumns) Apply(ctx context.Context, f *table.Frame) (*table.Frame, pipeline.Diag, error) {
	for _, name := range t.Columns {
		if !f.Has(name) {
			continue
		}
		col, ok := f.String(name)
		if !ok {
			return nil, nil, &pipeline.TypeContractError{Stage: t.Name(), Column: name, Want: "string column"}
		}
		out := table.NewStringColumn(name+"_clean", f.Rows())
		for i := 0; i < col.Len(); i++ {
			v, present := col.Get(i)
			if !present {
				continue
			}
			out.Set(i, Standardize(v))
		}
		if err := f.AddColumn(out); err != nil {
			return nil, nil, err
		}
		f.DropColumn(name)
	}
	return f, nil, nil
}
