package render

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	formPolicyOnce sync.Once
	formPolicy     *bluemonday.Policy
)

// Sanitize strips everything but form controls and their presentational and
// constraint attributes. Event handlers, scripts and styles are removed.
// The policy re-serialises attributes with double quotes.
func Sanitize(markup string) string {
	trimmed := strings.TrimSpace(markup)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(formSanitizer().Sanitize(trimmed))
}

func formSanitizer() *bluemonday.Policy {
	formPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		elements := []string{
			"form", "input", "textarea", "select", "option", "optgroup",
			"button", "label", "fieldset", "legend", "datalist",
		}
		policy.AllowElements(elements...)

		policy.AllowAttrs(
			"name", "id", "class", "title", "value", "type", "placeholder",
			"required", "disabled", "readonly", "autofocus", "autocomplete",
			"minlength", "maxlength", "min", "max", "step", "pattern",
			"inputmode", "multiple", "checked", "selected", "size",
			"rows", "cols", "wrap", "list", "form", "for", "label",
			"aria-label", "aria-describedby", "aria-invalid", "aria-required",
		).OnElements(elements...)

		policy.AllowAttrs("method", "enctype", "novalidate", "accept-charset").OnElements("form")
		policy.AllowAttrs("action").OnElements("form")
		policy.AllowRelativeURLs(true)
		policy.AllowURLSchemes("http", "https")

		policy.AllowDataAttributes()

		formPolicy = policy
	})
	return formPolicy
}
