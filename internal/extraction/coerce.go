package extraction

import (
	"encoding/json"
	"strconv"
	"strings"

	"docextract/internal/domain"
)

// asString renders a schema-validated scalar as text. null becomes "".
func asString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	}
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// stringList converts a list of scalars, dropping nulls. A missing or null
// list yields an empty, non-nil slice.
func stringList(v any) []string {
	items, _ := v.([]any)
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		out = append(out, asString(item))
	}
	return out
}

// cells converts a row of scalars keeping positions; null cells become "".
func cells(v any) []string {
	items, _ := v.([]any)
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = asString(item)
	}
	return out
}

func toTable(v any) domain.Table {
	m, _ := v.(map[string]any)
	rows, _ := m["rows"].([]any)
	t := domain.Table{
		Headers: cells(m["headers"]),
		Rows:    make([][]string, 0, len(rows)),
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, cells(r))
	}
	return t
}

func toTables(v any) domain.Tables {
	items, _ := v.([]any)
	out := make(domain.Tables, 0, len(items))
	for _, item := range items {
		out = append(out, toTable(item))
	}
	return out
}

func toEntities(v any) domain.Entities {
	m, _ := v.(map[string]any)
	return domain.Entities{
		Names:         stringList(m["names"]),
		Dates:         stringList(m["dates"]),
		Addresses:     stringList(m["addresses"]),
		Emails:        stringList(m["emails"]),
		PhoneNumbers:  stringList(m["phone_numbers"]),
		Organizations: stringList(m["organizations"]),
		Amounts:       stringList(m["amounts"]),
	}
}

func toFormFields(v any) domain.FormFields {
	m, _ := v.(map[string]any)
	out := make(domain.FormFields, len(m))
	for k, val := range m {
		out[k] = asString(val)
	}
	return out
}

func toStructure(v any) domain.Structure {
	m, _ := v.(map[string]any)
	s := domain.Structure{Sections: []domain.Section{}, Lists: [][]string{}}

	sections, _ := m["sections"].([]any)
	for _, raw := range sections {
		sec, _ := raw.(map[string]any)
		section := domain.Section{
			Heading: asString(sec["heading"]),
			Content: asString(sec["content"]),
		}
		if tbl, ok := sec["table"].(map[string]any); ok {
			t := toTable(tbl)
			section.Table = &t
		}
		s.Sections = append(s.Sections, section)
	}

	lists, _ := m["lists"].([]any)
	for _, raw := range lists {
		if item, ok := raw.(string); ok {
			s.Lists = append(s.Lists, []string{item})
			continue
		}
		s.Lists = append(s.Lists, stringList(raw))
	}

	info, _ := m["page_info"].(map[string]any)
	s.PageInfo = domain.PageInfo{
		PageNumber: pageNumber(info["page_number"]),
		Header:     asString(info["header"]),
		Footer:     asString(info["footer"]),
	}
	return s
}

func pageNumber(v any) int {
	switch t := v.(type) {
	case float64:
		return int(t)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(t))
		if err == nil {
			return n
		}
	}
	return 0
}
