// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"fmt"
	"path/filepath"
)

const (
	binDocker = "docker"
	binPodman = "podman"

	// imagePoppler bundles pdftotext for hosts without poppler installed.
	imagePoppler = "minidocks/poppler:latest"
)

// Container runs pdftotext inside a poppler container image, bind-mounting
// the PDF and output directories. Docker and Podman share the invocation;
// they differ only in binary name and the subcommand used to check image
// existence.
type Container struct {
	bin           string
	imageCheckCmd []string // e.g. ["image", "inspect"] for docker
	exec          executor
}

func newDockerContainer(exec executor) *Container {
	return &Container{
		bin:           binDocker,
		imageCheckCmd: []string{"image", "inspect"},
		exec:          exec,
	}
}

func newPodmanContainer(exec executor) *Container {
	return &Container{
		bin:           binPodman,
		imageCheckCmd: []string{"image", "exists"},
		exec:          exec,
	}
}

// NewContainer detects a container runtime, docker first with podman as the
// fallback, and verifies the poppler image exists locally before returning.
func NewContainer() (*Container, error) {
	return newContainer(defaultExec)
}

func newContainer(exec executor) (*Container, error) {
	for _, c := range []*Container{newDockerContainer(exec), newPodmanContainer(exec)} {
		if !c.available() {
			continue
		}
		if err := c.imageExists(imagePoppler); err != nil {
			return nil, err
		}
		return c, nil
	}
	return nil, fmt.Errorf(
		"no container runtime available: neither %s nor %s found or operational",
		binDocker, binPodman,
	)
}

// available reports whether the runtime binary exists on PATH and responds
// to an info command.
func (c *Container) available() bool {
	if _, err := c.exec.LookPath(c.bin); err != nil {
		return false
	}
	return c.exec.RunSilent(c.bin, "info") == nil
}

// imageExists checks whether the poppler image is present locally.
func (c *Container) imageExists(image string) error {
	args := make([]string, 0, len(c.imageCheckCmd)+1)
	args = append(args, c.imageCheckCmd...)
	args = append(args, image)

	if err := c.exec.RunSilent(c.bin, args...); err != nil {
		return fmt.Errorf("image %s not found in %s (pull it first): %w", image, c.bin, err)
	}
	return nil
}

// Convert bind-mounts the PDF and output directories into the container and
// runs pdftotext there. Paths are made absolute because the runtime
// resolves volume sources against its own working directory.
func (c *Container) Convert(ctx context.Context, pdfPath, textPath string) error {
	absPDF, err := filepath.Abs(pdfPath)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", pdfPath, err)
	}
	absText, err := filepath.Abs(textPath)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", textPath, err)
	}

	args := []string{
		"run", "--rm",
		"-v", filepath.Dir(absPDF) + ":/in:ro",
		"-v", filepath.Dir(absText) + ":/out",
		imagePoppler,
		pdftotextBin, "-layout", "-nopgbrk",
		"/in/" + filepath.Base(absPDF),
		"/out/" + filepath.Base(absText),
	}
	if err := c.exec.Run(ctx, c.bin, args...); err != nil {
		return fmt.Errorf("running %s in %s: %w", pdftotextBin, c.bin, err)
	}
	return nil
}

// Name implements Converter.
func (c *Container) Name() string { return c.bin + " (" + imagePoppler + ")" }
