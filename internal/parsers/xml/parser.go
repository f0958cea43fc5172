// Package xml parses tag-based product markup into canonical catalog rows.
//
// The grammar is a fixed, well-known tag set (repeated <Product> blocks with
// scalar child tags plus Categories/Images/Attributes containers), so
// extraction is regular-expression based rather than a full tree decode.
package xml

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/cncmarket/catalog-service/internal/types"
	"github.com/rs/zerolog/log"
)

var (
	productBlockRe = regexp.MustCompile(`(?is)<Product>(.*?)</Product>`)
	attributeRe    = regexp.MustCompile(`(?is)<Attribute\s+name="([^"]*)"[^>]*>(.*?)</Attribute>`)
	cdataOpenRe    = regexp.MustCompile(`<!\[CDATA\[`)
	cdataCloseRe   = regexp.MustCompile(`\]\]>`)
)

// scalarTags are the simple single-value tags extracted from each block.
var scalarTags = []string{
	"SKU", "Name", "Price", "CompareAtPrice", "Weight", "StockCount",
	"Brand", "Description", "ShortDescription", "Currency",
	"IsActive", "IsFeatured",
}

var scalarTagRes = func() map[string]*regexp.Regexp {
	res := make(map[string]*regexp.Regexp, len(scalarTags))
	for _, tag := range scalarTags {
		res[tag] = regexp.MustCompile(fmt.Sprintf(`(?is)<%s>(.*?)</%s>`, tag, tag))
	}
	return res
}()

var listTagRes = map[string][2]*regexp.Regexp{
	// parent container, then repeated child tags in document order
	"Categories": {
		regexp.MustCompile(`(?is)<Categories>(.*?)</Categories>`),
		regexp.MustCompile(`(?is)<Category>(.*?)</Category>`),
	},
	"Images": {
		regexp.MustCompile(`(?is)<Images>(.*?)</Images>`),
		regexp.MustCompile(`(?is)<Image>(.*?)</Image>`),
	},
}

var attributesBlockRe = regexp.MustCompile(`(?is)<Attributes>(.*?)</Attributes>`)

// Parse parses product markup into canonical rows. Blocks lacking a
// non-empty SKU or Name are skipped; malformed markup yields fewer rows, not
// an error.
func Parse(content []byte) []types.CanonicalRow {
	blocks := productBlockRe.FindAllStringSubmatch(string(content), -1)
	rows := make([]types.CanonicalRow, 0, len(blocks))

	for _, block := range blocks {
		fields := extractFields(block[1])
		row, ok := types.RowFromFields(fields)
		if !ok {
			log.Debug().Msg("Dropping product block without SKU or Name")
			continue
		}
		rows = append(rows, row)
	}

	return rows
}

// extractFields pulls all known tags out of one product block into the
// header-name → value shape shared with the delimited parser.
func extractFields(block string) map[string]string {
	fields := make(map[string]string)

	for tag, re := range scalarTagRes {
		if m := re.FindStringSubmatch(block); m != nil {
			fields[tag] = cleanText(m[1])
		}
	}

	for tag, res := range listTagRes {
		parent := res[0].FindStringSubmatch(block)
		if parent == nil {
			continue
		}
		values := make([]string, 0)
		for _, child := range res[1].FindAllStringSubmatch(parent[1], -1) {
			if v := cleanText(child[1]); v != "" {
				values = append(values, v)
			}
		}
		if len(values) > 0 {
			fields[tag] = strings.Join(values, ",")
		}
	}

	if parent := attributesBlockRe.FindStringSubmatch(block); parent != nil {
		pairs := make([]string, 0)
		for _, attr := range attributeRe.FindAllStringSubmatch(parent[1], -1) {
			name := cleanText(attr[1])
			value := cleanText(attr[2])
			if name != "" {
				pairs = append(pairs, name+":"+value)
			}
		}
		if len(pairs) > 0 {
			fields["Attributes"] = strings.Join(pairs, "|")
		}
	}

	return fields
}

// cleanText strips CDATA markers and trims the captured tag text
func cleanText(s string) string {
	s = cdataOpenRe.ReplaceAllString(s, "")
	s = cdataCloseRe.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}
