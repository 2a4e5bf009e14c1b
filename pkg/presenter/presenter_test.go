package presenter

import (
	"bytes"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func newTestPresenter() (*TerminalPresenter, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return NewWithOptions(&out, &errOut, ColorNever), &out, &errOut
}

func TestErrorOutput(t *testing.T) {
	p, out, errOut := newTestPresenter()

	p.Error(errors.New("boom"), "loading config")
	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "[ERROR] loading config: boom")

	errOut.Reset()
	p.Error(nil, "ignored")
	assert.Empty(t, errOut.String())
}

func TestQuietModeSuppressesInfo(t *testing.T) {
	p, out, errOut := newTestPresenter()
	p.SetQuiet(true)

	p.Info("hello")
	p.Success("done")
	p.Warning("careful")
	p.Section("Skills")
	p.Separator()
	assert.Empty(t, out.String())

	// errors always go through
	p.Error(errors.New("boom"), "")
	assert.Contains(t, errOut.String(), "boom")
	assert.True(t, p.IsQuiet())
}

func TestSectionFormatting(t *testing.T) {
	p, out, _ := newTestPresenter()

	p.Section("Discovered Skills")
	assert.Contains(t, out.String(), "Discovered Skills")
	assert.Contains(t, out.String(), "=================")
}

func TestWarningPrefix(t *testing.T) {
	p, out, _ := newTestPresenter()

	p.Warning("skill skipped")
	assert.Contains(t, out.String(), "[WARNING] skill skipped")
}
