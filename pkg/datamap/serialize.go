package datamap

import "strings"

const indent = "  "

var valueEscaper = strings.NewReplacer(`\'`, `'`, `\"`, `"`)

// escapeValue drops escaping the recorder already applied to quotes, then
// escapes double quotes for the JSON string.
func escapeValue(v string) string {
	return strings.ReplaceAll(valueEscaper.Replace(v), `"`, `\"`)
}

// MarshalRecords renders records as the data-file JSON: an array of objects,
// two-space indentation, one field per line, no trailing commas and no final
// newline. Downstream consumers compare this layout byte for byte.
func MarshalRecords(records ...*Ordered) []byte {
	var b strings.Builder
	b.WriteString("[")
	for i, rec := range records {
		b.WriteString("\n" + indent + "{")
		entries := rec.Entries()
		for j, e := range entries {
			b.WriteString("\n" + indent + indent + `"` + e.Key + `": "` + escapeValue(e.Value) + `"`)
			if j < len(entries)-1 {
				b.WriteString(",")
			}
		}
		b.WriteString("\n" + indent + "}")
		if i < len(records)-1 {
			b.WriteString(",")
		}
	}
	b.WriteString("\n]")
	return []byte(b.String())
}
