package htmlsanitize_test

import (
	"html/template"
	"strings"
	"testing"

	"github.com/dalemusser/campushub/internal/app/system/htmlsanitize"
)

func TestSanitize_Empty(t *testing.T) {
	result := htmlsanitize.Sanitize("")
	if result != "" {
		t.Errorf("expected empty string, got %q", result)
	}
}

func TestSanitize_PlainText(t *testing.T) {
	result := htmlsanitize.Sanitize("Walk-in drive on Monday, 9 AM.")
	if result != "Walk-in drive on Monday, 9 AM." {
		t.Errorf("expected plain text unchanged, got %q", result)
	}
}

func TestSanitize_SafeHTML(t *testing.T) {
	input := "<p><strong>Eligibility:</strong> CGPA above <em>7.0</em></p>"
	result := htmlsanitize.Sanitize(input)
	if result != input {
		t.Errorf("expected safe HTML preserved, got %q", result)
	}
}

func TestSanitize_RemovesScript(t *testing.T) {
	input := "<p>Hello</p><script>alert('xss')</script>"
	result := htmlsanitize.Sanitize(input)
	if result != "<p>Hello</p>" {
		t.Errorf("expected script removed, got %q", result)
	}
}

func TestSanitize_RemovesOnclick(t *testing.T) {
	input := `<button onclick="alert('xss')">Apply</button>`
	result := htmlsanitize.Sanitize(input)
	if strings.Contains(result, "onclick") {
		t.Errorf("expected onclick attribute removed, got %q", result)
	}
}

func TestSanitize_RemovesJavascriptHref(t *testing.T) {
	input := `<a href="javascript:alert('xss')">Apply here</a>`
	result := htmlsanitize.Sanitize(input)
	if strings.Contains(result, "javascript:") {
		t.Errorf("expected javascript: href removed, got %q", result)
	}
}

func TestSanitizeHTML_ReturnsTemplateHTML(t *testing.T) {
	var got template.HTML = htmlsanitize.SanitizeHTML("<p>ok</p>")
	if got != template.HTML("<p>ok</p>") {
		t.Errorf("unexpected result %q", got)
	}
}
