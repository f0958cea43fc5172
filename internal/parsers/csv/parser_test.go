package csv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectDelimiter(t *testing.T) {
	tests := []struct {
		name     string
		header   string
		expected Delimiter
	}{
		{"comma only", "sku,name,price", DelimiterComma},
		{"semicolon only", "sku;name;price", DelimiterSemicolon},
		{"tab only", "sku\tname\tprice", DelimiterTab},
		{"tab beats semicolon and comma", "sku\tname;price,brand", DelimiterTab},
		{"semicolon beats comma", "sku;name,price", DelimiterSemicolon},
		{"no delimiter falls back to comma", "sku", DelimiterComma},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectDelimiter(tt.header))
		})
	}
}

func TestSplitLine(t *testing.T) {
	tests := []struct {
		name      string
		line      string
		delimiter Delimiter
		expected  []string
	}{
		{
			name:      "plain comma split",
			line:      "a,b,c",
			delimiter: DelimiterComma,
			expected:  []string{"a", "b", "c"},
		},
		{
			name:      "quoted cell keeps embedded delimiter",
			line:      `CNC-1001,"Sigma Profil,Bağlantı Parçaları",250.00`,
			delimiter: DelimiterComma,
			expected:  []string{"CNC-1001", "Sigma Profil,Bağlantı Parçaları", "250.00"},
		},
		{
			name:      "doubled quote decodes to literal quote",
			line:      `a,"say ""hi""",c`,
			delimiter: DelimiterComma,
			expected:  []string{"a", `say "hi"`, "c"},
		},
		{
			name:      "empty trailing field",
			line:      "a,b,",
			delimiter: DelimiterComma,
			expected:  []string{"a", "b", ""},
		},
		{
			name:      "tab split ignores commas",
			line:      "a\tb,c\td",
			delimiter: DelimiterTab,
			expected:  []string{"a", "b,c", "d"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SplitLine(tt.line, tt.delimiter))
		})
	}
}

func TestTrimCell(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"  plain  ", "plain"},
		{`"quoted"`, "quoted"},
		{`'single'`, "single"},
		{` "padded" `, "padded"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, TrimCell(tt.input))
		})
	}
}

func TestParse(t *testing.T) {
	content := []byte("sku,name,price,brand\nCNC-1001,Sigma Profil 40x40,250.00,Sigma\nCNC-1002,Step Motor,890.50,Nema\n")

	rows := Parse(content)
	require.Len(t, rows, 2)

	assert.Equal(t, "CNC-1001", rows[0].SKU)
	assert.Equal(t, "Sigma Profil 40x40", rows[0].Name)
	assert.Equal(t, "250.00", rows[0].Price)
	assert.Equal(t, "Sigma", rows[0].BrandName)
	assert.Equal(t, "CNC-1002", rows[1].SKU)
}

func TestParseSemicolonDelimited(t *testing.T) {
	content := []byte("sku;name;price\nCNC-2001;Lineer Ray;1.250,00\n")

	rows := Parse(content)
	require.Len(t, rows, 1)
	assert.Equal(t, "CNC-2001", rows[0].SKU)
	assert.Equal(t, "1.250,00", rows[0].Price)
}

func TestParseTabDelimited(t *testing.T) {
	content := []byte("sku\tname\tcategories\nCNC-3001\tKaplin\tMekanik, Aktarma\n")

	rows := Parse(content)
	require.Len(t, rows, 1)
	// tab header wins, so the comma inside the category cell survives intact
	assert.Equal(t, "Mekanik, Aktarma", rows[0].CategoryNames)
}

func TestParseQuotedCellWithDelimiter(t *testing.T) {
	content := []byte("sku,name,categories\nCNC-4001,Profil,\"Sigma Profil,Bağlantı Parçaları\"\n")

	rows := Parse(content)
	require.Len(t, rows, 1)
	assert.Equal(t, "Sigma Profil,Bağlantı Parçaları", rows[0].CategoryNames)
}

func TestParseDropsRowsWithoutSKUOrName(t *testing.T) {
	content := []byte("sku,name\nCNC-5001,Valid\n,Missing SKU\nCNC-5002,\n")

	rows := Parse(content)
	require.Len(t, rows, 1)
	assert.Equal(t, "CNC-5001", rows[0].SKU)
}

func TestParseHandlesCRLFAndBlankLines(t *testing.T) {
	content := []byte("sku,name\r\nCNC-6001,First\r\n\r\nCNC-6002,Second\r\n")

	rows := Parse(content)
	require.Len(t, rows, 2)
	assert.Equal(t, "CNC-6001", rows[0].SKU)
	assert.Equal(t, "CNC-6002", rows[1].SKU)
}

func TestParseShortDataLine(t *testing.T) {
	// data line with fewer cells than the header zips as far as it can
	content := []byte("sku,name,price\nCNC-7001,Partial\n")

	rows := Parse(content)
	require.Len(t, rows, 1)
	assert.Equal(t, "", rows[0].Price)
}

func TestParseEmptyContent(t *testing.T) {
	assert.Empty(t, Parse(nil))
	assert.Empty(t, Parse([]byte("\n\n")))
}

func TestParseHeaderOnly(t *testing.T) {
	assert.Empty(t, Parse([]byte("sku,name,price\n")))
}
