package errmap

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

const expressPage = `<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>Error</title></head>
<body>
<pre>Error: Student already exists<br> &nbsp; &nbsp;at /app/controllers/student.js:42:11<br> &nbsp; &nbsp;at Layer.handle</pre>
</body>
</html>`

func TestCode(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"empty", "", ""},
		{"whitespace", "  \n", ""},
		{"json message", `{"message":"Email already exists"}`, "Email already exists"},
		{"json error", `{"error":" Invalid email or password "}`, "Invalid email or password"},
		{"json without fields", `{"status":400}`, ""},
		{"express page", expressPage, "Student already exists"},
		{"pre only", `<pre>Error: Boom</pre>`, "Boom"},
		{"pre without prefix", `<pre>Plain failure<br>stack</pre>`, "Plain failure"},
		{"nbsp inside code", `<pre>Error: Not&nbsp;found</pre>`, "Not found"},
		{"html without pre", `<html><body><h1>Bad Gateway</h1></body></html>`, ""},
		{"plain text", `Bad Gateway`, ""},
		{"broken json falls through", `{"message":`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Code([]byte(tt.body)))
		})
	}
}

func TestMapper_Map(t *testing.T) {
	prod := New()
	dev := New(WithDevMode(true))
	custom := New(WithMessages(map[string]string{"Quota exceeded": "You have reached your upload limit"}))

	tests := []struct {
		name string
		m    *Mapper
		body string
		want string
	}{
		{"known code", prod, expressPage, "This student has already registered"},
		{"known json code", prod, `{"message":"Invalid email or password"}`, "Invalid email or password"},
		{"unknown code prod", prod, `<pre>Error: Cast to ObjectId failed</pre>`, GenericMessage},
		{"unknown code dev", dev, `<pre>Error: Cast to ObjectId failed</pre>`, "Cast to ObjectId failed"},
		{"known code dev returns raw", dev, expressPage, "Student already exists"},
		{"empty body", prod, "", GenericMessage},
		{"empty body dev", dev, "", GenericMessage},
		{"custom table", custom, `{"message":"Quota exceeded"}`, "You have reached your upload limit"},
		{"custom keeps defaults", custom, `{"message":"Email already exists"}`, "Email already exists"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.m.Map(http.StatusBadRequest, []byte(tt.body)))
		})
	}
}

func TestWithMessages_DoesNotLeakIntoDefaults(t *testing.T) {
	_ = New(WithMessages(map[string]string{"Email already exists": "changed"}))
	assert.Equal(t, "Email already exists", DefaultMessages["Email already exists"])
	assert.Equal(t, "Email already exists", New().Map(http.StatusConflict, []byte(`{"message":"Email already exists"}`)))
}
