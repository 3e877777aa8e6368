package forms

import (
	"fmt"
	"html/template"
	"net/url"
	"strings"

	goerrors "github.com/goliatone/go-errors"

	"github.com/ift-institute/ift-site/internal/collection"
)

// Renderer turns a field schema plus a record into the edit-modal form
// markup. It knows nothing about what the fields mean; the schema alone
// decides which control each field gets.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer compiles the form template set.
func NewRenderer() *Renderer {
	return &Renderer{tmpl: formTemplate}
}

type formData struct {
	Title  string
	Action string
	Fields []fieldData
}

type fieldData struct {
	Key     string
	Label   string
	Type    collection.FieldType
	Options []string
	Value   string
}

// Form renders one modal form for the given schema and record. Fields render
// in schema order; missing record values render empty.
func (r *Renderer) Form(schema collection.Schema, record collection.Item, action, title string) (template.HTML, error) {
	if err := schema.Validate(); err != nil {
		return "", goerrors.Wrap(err, goerrors.CategoryValidation, "invalid form schema")
	}

	data := formData{Title: title, Action: action}
	for _, field := range schema {
		data.Fields = append(data.Fields, fieldData{
			Key:     field.Key,
			Label:   field.Label,
			Type:    field.Type,
			Options: field.Options,
			Value:   stringValue(record[field.Key]),
		})
	}

	var out strings.Builder
	if err := r.tmpl.ExecuteTemplate(&out, "form", data); err != nil {
		return "", goerrors.Wrap(err, goerrors.CategoryInternal, "render form")
	}
	return template.HTML(out.String()), nil
}

// Decode merges submitted values over the base record, keyed by the schema.
// Fields absent from the submission keep the base value, so a partial post
// (an upload-only change, say) does not wipe the rest of the record. The id
// is never taken from the form.
func Decode(schema collection.Schema, values url.Values, base collection.Item) collection.Item {
	out := make(collection.Item, len(base)+len(schema))
	for k, v := range base {
		out[k] = v
	}
	for _, field := range schema {
		if field.Key == collection.IDKey {
			continue
		}
		if !values.Has(field.Key) {
			continue
		}
		out[field.Key] = values.Get(field.Key)
	}
	return out
}

func stringValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprintf("%v", t)
	}
}

var formTemplate = template.Must(template.New("form").Parse(`{{define "form" -}}
<form class="cms-modal" method="post" action="{{.Action}}">
  <h2 class="cms-modal-title">{{.Title}}</h2>
  {{- range .Fields}}
  <label class="cms-field cms-field-{{.Type}}">
    <span class="cms-field-label">{{.Label}}</span>
    {{- if eq .Type "textarea"}}
    <textarea name="{{.Key}}" rows="4">{{.Value}}</textarea>
    {{- else if eq .Type "select"}}
    <select name="{{.Key}}">
      <option value=""></option>
      {{- $current := .Value}}
      {{- range .Options}}
      <option value="{{.}}"{{if eq . $current}} selected{{end}}>{{.}}</option>
      {{- end}}
    </select>
    {{- else if eq .Type "image"}}
    <input type="hidden" name="{{.Key}}" value="{{.Value}}">
    <input type="file" name="{{.Key}}_upload" accept="image/*" data-target="{{.Key}}">
    {{- else if eq .Type "video"}}
    <input type="hidden" name="{{.Key}}" value="{{.Value}}">
    <input type="file" name="{{.Key}}_upload" accept="video/*" data-target="{{.Key}}">
    {{- else}}
    <input type="text" name="{{.Key}}" value="{{.Value}}">
    {{- end}}
  </label>
  {{- end}}
  <div class="cms-modal-actions">
    <button type="submit" class="cms-save">Save</button>
    <button type="button" class="cms-cancel" data-dismiss>Cancel</button>
  </div>
</form>
{{- end}}`))
