// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/pdiddy/icd-engine/pkg/types"
)

const pdftotextBin = "pdftotext"

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	RunSilent(name string, args ...string) error
	Run(ctx context.Context, name string, args ...string) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) RunSilent(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

func (o *osExecutor) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%v: %s", err, msg)
		}
		return err
	}
	return nil
}

var defaultExec executor = &osExecutor{}

// Pdftotext runs the host pdftotext binary from poppler-utils.
type Pdftotext struct {
	exec executor
}

// NewPdftotext returns the host-tool backend. It verifies the binary is on
// PATH before returning, so a missing install fails up front rather than
// per book.
func NewPdftotext() (*Pdftotext, error) {
	return newPdftotext(defaultExec)
}

func newPdftotext(exec executor) (*Pdftotext, error) {
	if _, err := exec.LookPath(pdftotextBin); err != nil {
		return nil, fmt.Errorf("%s not found on PATH: install poppler-utils", pdftotextBin)
	}
	return &Pdftotext{exec: exec}, nil
}

// Convert extracts the text layer of pdfPath into textPath. Layout mode
// preserves the column positions the line classifier keys on, and -nopgbrk
// drops the form feeds that would otherwise break wrapped descriptions.
func (p *Pdftotext) Convert(ctx context.Context, pdfPath, textPath string) error {
	if err := p.exec.Run(ctx, pdftotextBin, "-layout", "-nopgbrk", pdfPath, textPath); err != nil {
		return fmt.Errorf("extracting %s: %w", filepath.Base(pdfPath), err)
	}
	return nil
}

// Name implements Converter.
func (p *Pdftotext) Name() string { return pdftotextBin }

// DetectTool resolves the configured backend to a concrete Converter.
// BackendAuto prefers the host tool and falls back to a container image.
func DetectTool(backend types.ConversionBackend) (Converter, error) {
	return detectTool(backend, defaultExec)
}

func detectTool(backend types.ConversionBackend, exec executor) (Converter, error) {
	switch backend {
	case types.BackendPdftotext:
		return newPdftotext(exec)
	case types.BackendContainer:
		return newContainer(exec)
	case types.BackendAuto, "":
		if conv, err := newPdftotext(exec); err == nil {
			return conv, nil
		}
		if conv, err := newContainer(exec); err == nil {
			return conv, nil
		}
		return nil, fmt.Errorf(
			"no conversion tool available: install poppler-utils, or pull %s into docker or podman",
			imagePoppler,
		)
	default:
		return nil, fmt.Errorf("unknown conversion backend %q (want auto, pdftotext, or container)", backend)
	}
}
