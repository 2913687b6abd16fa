package reconcile

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/quickcut-dev/quickcut/internal/config"
)

// Field identifies the project attribute a recognized board column maps to.
type Field string

const (
	FieldName       Field = "name"
	FieldStatus     Field = "status"
	FieldPriority   Field = "priority"
	FieldFile       Field = "file"
	FieldDueDate    Field = "due_date"
	FieldVisibility Field = "visibility"
	FieldFeedback   Field = "feedback"
)

const defaultFileName = "Uploaded file"

var columnMap map[string]Field

// Configure builds the column dispatch table once at startup. Column ids come
// from configuration, not from code, so a misconfigured or missing id must
// stop the process before any event is accepted.
func Configure(cols config.MondayColumns) error {
	entries := []struct {
		id    string
		field Field
	}{
		{cols.Name, FieldName},
		{cols.Status, FieldStatus},
		{cols.Priority, FieldPriority},
		{cols.File, FieldFile},
		{cols.DueDate, FieldDueDate},
		{cols.Visibility, FieldVisibility},
		{cols.Feedback, FieldFeedback},
	}

	m := make(map[string]Field, len(entries))

	for _, entry := range entries {
		if entry.id == "" {
			return fmt.Errorf("no column id configured for %s", entry.field)
		}

		if existing, ok := m[entry.id]; ok {
			return fmt.Errorf("column id %q configured for both %s and %s", entry.id, existing, entry.field)
		}

		m[entry.id] = entry.field
	}

	columnMap = m
	return nil
}

// Resolution is the outcome of dispatching a single column-change event.
type Resolution struct {
	Known bool

	// Updates holds the project column assignments the event resolved to,
	// keyed by database column name. Empty when the value payload lacked the
	// expected shape.
	Updates map[string]interface{}

	// Feedback text is acknowledged but never persisted by the reconciler.
	Feedback string
}

// Resolve maps one column-change event onto project updates. Unknown column
// ids resolve to nothing; they are a normal consequence of the board carrying
// more columns than the portal tracks.
func Resolve(columnID string, value interface{}) Resolution {
	field, ok := columnMap[columnID]

	if !ok {
		return Resolution{}
	}

	res := Resolution{Known: true, Updates: make(map[string]interface{})}
	obj, raw := normalizeValue(value)

	switch field {
	case FieldName:
		if text := stringField(obj, "text"); text != "" {
			res.Updates["name"] = text
		}
	case FieldStatus:
		if text, ok := labelText(obj); ok {
			res.Updates["status"] = text
		}
	case FieldPriority:
		if text, ok := labelText(obj); ok {
			res.Updates["priority"] = StripLabelDecorations(text)
		}
	case FieldFile:
		url := stringField(obj, "url")
		if url == "" {
			url = stringField(obj, "text")
		}
		if url == "" {
			url = raw
		}

		if url != "" {
			name := stringField(obj, "text")
			if name == "" {
				name = defaultFileName
			}

			res.Updates["file_url"] = url
			res.Updates["file_name"] = name
		}
	case FieldDueDate:
		if date := stringField(obj, "date"); date != "" {
			if parsed, err := time.Parse("2006-01-02", date); err == nil {
				res.Updates["due_date"] = parsed
			}
		}
	case FieldVisibility:
		// The only field with no absent-means-skip branch: anything other
		// than an explicit true reads as hidden.
		res.Updates["file_visible"] = checkedTrue(obj)
	case FieldFeedback:
		res.Feedback = stringField(obj, "text")
	}

	return res
}

// normalizeValue returns the structured form of an event value plus, when the
// value arrived as a serialized string, its raw text. The board delivers both
// shapes depending on the column type and delivery path.
func normalizeValue(value interface{}) (map[string]interface{}, string) {
	switch v := value.(type) {
	case map[string]interface{}:
		return v, ""
	case string:
		var obj map[string]interface{}

		if err := json.Unmarshal([]byte(v), &obj); err == nil {
			return obj, v
		}

		return nil, v
	default:
		return nil, ""
	}
}

func stringField(obj map[string]interface{}, key string) string {
	if obj == nil {
		return ""
	}

	s, _ := obj[key].(string)
	return s
}

func labelText(obj map[string]interface{}) (string, bool) {
	if obj == nil {
		return "", false
	}

	label, ok := obj["label"].(map[string]interface{})

	if !ok {
		return "", false
	}

	text, ok := label["text"].(string)
	return text, ok
}

func checkedTrue(obj map[string]interface{}) bool {
	if obj == nil {
		return false
	}

	switch v := obj["checked"].(type) {
	case bool:
		return v
	case string:
		return v == "true"
	default:
		return false
	}
}

// StripLabelDecorations removes the emoji prefix and surrounding whitespace
// from a board label, e.g. "🔴 Urgent" becomes "Urgent". Board admins decorate
// priority labels freely; the portal stores the bare word.
func StripLabelDecorations(label string) string {
	trimmed := strings.TrimSpace(label)

	trimmed = strings.TrimLeftFunc(trimmed, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})

	return strings.TrimSpace(trimmed)
}
