package importer

import "strings"

// Attribute is one decoded key/value product attribute
type Attribute struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// DecodeAttributes decodes a pipe-joined attribute field ("key:value|key:value")
// into attribute pairs. Each pair splits on the first colon only, so values
// may themselves contain colons. Pairs without a key or without any colon
// are discarded.
func DecodeAttributes(raw string) []Attribute {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	attrs := make([]Attribute, 0)
	for _, pair := range strings.Split(raw, "|") {
		pair = strings.TrimSpace(pair)
		parts := strings.SplitN(pair, ":", 2)
		if len(parts) < 2 {
			continue
		}
		name := strings.TrimSpace(parts[0])
		if name == "" {
			continue
		}
		attrs = append(attrs, Attribute{Name: name, Value: strings.TrimSpace(parts[1])})
	}
	return attrs
}

// SplitList decodes a comma-joined list field (image URLs, category names)
// into trimmed, non-empty entries.
func SplitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	values := make([]string, 0)
	for _, value := range strings.Split(raw, ",") {
		value = strings.TrimSpace(value)
		if value != "" {
			values = append(values, value)
		}
	}
	return values
}
