package template_test

import (
	"embed"
	"fmt"
	htmltemplate "html/template"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-certgen/pkg/render/template/gotemplate"
	"github.com/goliatone/go-certgen/pkg/testsupport"
)

//go:embed testdata/templates/*.tpl
var embeddedTemplates embed.FS

func TestGoTemplateEngine_RenderTemplate(t *testing.T) {
	engine := newEngine(t)

	result, written := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("hello", map[string]any{"name": "Ada"}, w)
	})

	want := "Hello Ada!"
	if result != want {
		t.Fatalf("render template mismatch result\nwant: %q\n got: %q", want, result)
	}
	if written != want {
		t.Fatalf("render template mismatch writer\nwant: %q\n got: %q", want, written)
	}
}

func TestGoTemplateEngine_GlobalContext(t *testing.T) {
	engine := newEngine(t)
	if err := engine.GlobalContext(map[string]any{
		"settings": map[string]any{"env": "staging"},
	}); err != nil {
		t.Fatalf("global context: %v", err)
	}

	result, _ := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("use-global", nil, w)
	})

	if want := "env=staging"; result != want {
		t.Fatalf("render template mismatch\nwant: %q\n got: %q", want, result)
	}
}

func TestGoTemplateEngine_RegisterFilter(t *testing.T) {
	engine := newEngine(t)
	err := engine.RegisterFilter("shout", func(input any, _ any) (any, error) {
		if input == nil {
			return "", nil
		}
		return fmt.Sprintf("%s!", strings.ToUpper(fmt.Sprint(input))), nil
	})
	if err != nil {
		t.Fatalf("register filter: %v", err)
	}

	result, _ := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("use-filter", map[string]any{"name": "Ada"}, w)
	})

	if want := "ADA!"; result != want {
		t.Fatalf("render template mismatch\nwant: %q\n got: %q", want, result)
	}

	if err := engine.RegisterFilter("shout", func(any, any) (any, error) { return nil, nil }); err == nil {
		t.Fatal("expected duplicate filter registration to fail")
	}
}

func TestGoTemplateEngine_SafeHTMLSkipsEscaping(t *testing.T) {
	engine := newEngine(t)

	result, _ := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("safe", map[string]any{
			"body": htmltemplate.HTML("<strong>Ada</strong>"),
			"raw":  "<em>x</em>",
		}, w)
	})

	if want := "<strong>Ada</strong>|&lt;em&gt;x&lt;/em&gt;"; result != want {
		t.Fatalf("render template mismatch\nwant: %q\n got: %q", want, result)
	}
}

func TestGoTemplateEngine_LinesFilter(t *testing.T) {
	engine := newEngine(t)

	result, _ := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("lines", map[string]any{
			"address": "1 Esplanade des Particules\r\n\n  1211 Geneva  \n",
		}, w)
	})

	if want := "[1 Esplanade des Particules][1211 Geneva]"; result != want {
		t.Fatalf("render template mismatch\nwant: %q\n got: %q", want, result)
	}
}

func TestGoTemplateEngine_RenderString(t *testing.T) {
	engine := newEngine(t)

	result, err := engine.Render("{{ a }}-{{ b }}", map[string]any{"a": "one", "b": "two"})
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if want := "one-two"; result != want {
		t.Fatalf("render string mismatch\nwant: %q\n got: %q", want, result)
	}
}

func TestGoTemplateEngine_RequiresTemplateSource(t *testing.T) {
	if _, err := gotemplate.New(); err == nil {
		t.Fatal("expected error without base dir or fs")
	}
}

func TestGoTemplateEngine_BaseDir(t *testing.T) {
	engine, err := gotemplate.New(gotemplate.WithBaseDir("testdata/templates"))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	result, err := engine.RenderTemplate("hello", map[string]any{"name": "Grace"})
	if err != nil {
		t.Fatalf("render template: %v", err)
	}
	if want := "Hello Grace!"; result != want {
		t.Fatalf("render template mismatch\nwant: %q\n got: %q", want, result)
	}
}

func TestGoTemplateEngine_BaseDirShadowsFS(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "hello.tpl"), []byte("Howdy {{ name }}"), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}
	templatesFS, err := fs.Sub(embeddedTemplates, "testdata/templates")
	if err != nil {
		t.Fatalf("sub fs: %v", err)
	}

	engine, err := gotemplate.New(gotemplate.WithBaseDir(dir), gotemplate.WithFS(templatesFS))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	result, err := engine.RenderTemplate("hello", map[string]any{"name": "Ada"})
	if err != nil {
		t.Fatalf("render hello: %v", err)
	}
	if want := "Howdy Ada"; result != want {
		t.Fatalf("base dir template mismatch\nwant: %q\n got: %q", want, result)
	}

	// Templates missing from the directory still come from the fs.
	result, err = engine.RenderTemplate("lines", map[string]any{"address": "a\nb"})
	if err != nil {
		t.Fatalf("render lines: %v", err)
	}
	if want := "[a][b]"; result != want {
		t.Fatalf("fs fallback mismatch\nwant: %q\n got: %q", want, result)
	}
}

func TestGoTemplateEngine_WithGlobalData(t *testing.T) {
	templatesFS, err := fs.Sub(embeddedTemplates, "testdata/templates")
	if err != nil {
		t.Fatalf("sub fs: %v", err)
	}
	engine, err := gotemplate.New(
		gotemplate.WithFS(templatesFS),
		gotemplate.WithGlobalData(map[string]any{
			"settings": map[string]any{"env": "production"},
		}),
	)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	result, err := engine.RenderTemplate("use-global", nil)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}
	if want := "env=production"; result != want {
		t.Fatalf("global data mismatch\nwant: %q\n got: %q", want, result)
	}

	result, err = engine.RenderTemplate("use-global", map[string]any{
		"settings": map[string]any{"env": "local"},
	})
	if err != nil {
		t.Fatalf("render template: %v", err)
	}
	if want := "env=local"; result != want {
		t.Fatalf("render data should win over globals\nwant: %q\n got: %q", want, result)
	}
}

func newEngine(t *testing.T) *gotemplate.Engine {
	t.Helper()

	templatesFS, err := fs.Sub(embeddedTemplates, "testdata/templates")
	if err != nil {
		t.Fatalf("sub fs: %v", err)
	}

	engine, err := gotemplate.New(gotemplate.WithFS(templatesFS))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}
