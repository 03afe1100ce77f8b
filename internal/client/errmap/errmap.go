package errmap

import (
	"bytes"
	"encoding/json"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// GenericMessage is returned when no better text can be derived.
const GenericMessage = "Something went wrong"

// DefaultMessages maps backend error codes to user-facing text.
var DefaultMessages = map[string]string{
	"Email already exists":      "Email already exists",
	"Student already exists":    "This student has already registered",
	"Invalid email or password": "Invalid email or password",
}

type Mapper struct {
	devMode  bool
	messages map[string]string
}

type Option func(*Mapper)

// WithDevMode makes Map return raw backend codes instead of the generic
// fallback for codes missing from the table.
func WithDevMode(on bool) Option {
	return func(m *Mapper) { m.devMode = on }
}

// WithMessages adds or overrides entries of the message table.
func WithMessages(messages map[string]string) Option {
	return func(m *Mapper) {
		for k, v := range messages {
			m.messages[k] = v
		}
	}
}

func New(opts ...Option) *Mapper {
	m := &Mapper{messages: make(map[string]string, len(DefaultMessages))}
	for k, v := range DefaultMessages {
		m.messages[k] = v
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Map returns the user-facing message for an error response.
func (m *Mapper) Map(status int, body []byte) string {
	code := Code(body)
	if code == "" {
		return GenericMessage
	}
	if m.devMode {
		return code
	}
	if msg, ok := m.messages[code]; ok {
		return msg
	}
	return GenericMessage
}

// Code extracts the backend error code from body. It returns "" when
// nothing usable is found.
func Code(body []byte) string {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return ""
	}

	if trimmed[0] == '{' {
		var payload struct {
			Message string `json:"message"`
			Error   string `json:"error"`
		}
		if err := json.Unmarshal(trimmed, &payload); err == nil {
			if payload.Message != "" {
				return strings.TrimSpace(payload.Message)
			}
			return strings.TrimSpace(payload.Error)
		}
	}

	return preCode(trimmed)
}

// preCode reads the first <pre> element, turning <br> into newlines, and
// keeps the first line without its "Error: " prefix.
func preCode(body []byte) string {
	z := html.NewTokenizer(bytes.NewReader(body))

	var (
		inPre bool
		found bool
		sb    strings.Builder
	)

loop:
	for {
		switch z.Next() {
		case html.ErrorToken:
			break loop
		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			switch tok.DataAtom {
			case atom.Pre:
				inPre, found = true, true
			case atom.Br:
				if inPre {
					sb.WriteByte('\n')
				}
			}
		case html.EndTagToken:
			if z.Token().DataAtom == atom.Pre && inPre {
				break loop
			}
		case html.TextToken:
			if inPre {
				sb.Write(z.Text())
			}
		}
	}

	if !found {
		return ""
	}

	// the tokenizer decodes &nbsp; to U+00A0
	text := strings.ReplaceAll(sb.String(), "\u00a0", " ")
	text = strings.TrimSpace(text)
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[:i]
	}
	text = strings.Replace(text, "Error: ", "", 1)
	return strings.TrimSpace(text)
}
