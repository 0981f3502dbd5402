package render

import (
	"bytes"
	"context"
	"testing"

	"github.com/ccollicutt/pxlog/pkg/parser"
)

func TestJSONFormatter_Format(t *testing.T) {
	f := NewJSONFormatter()
	var buf bytes.Buffer

	line := `Jan 02 10:00:00 node1 portworx[9]: level=info msg="up now" error=<nil>`
	if err := f.Format(context.Background(), parser.Parse(line), &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	want := `{"orig":"Jan 02 10:00:00 node1 portworx[9]: level=info msg=\"up now\" error=<nil>",` +
		`"time":"Jan 02 10:00:00","host":"node1","unit":"portworx","level":"info","msg":"up now","error":"<nil>"}` + "\n"
	if got := buf.String(); got != want {
		t.Errorf("Format() = %s, want %s", got, want)
	}
	if f.Name() != "json" {
		t.Errorf("Name() = %q", f.Name())
	}
}
