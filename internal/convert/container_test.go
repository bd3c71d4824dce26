// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"strings"
	"testing"
)

func TestNewContainer(t *testing.T) {
	dockerImageCheck := "docker image inspect " + imagePoppler
	podmanImageCheck := "podman image exists " + imagePoppler

	tests := []struct {
		name    string
		exec    *mockExecutor
		wantBin string
		wantErr string
	}{
		{
			name: "docker available",
			exec: &mockExecutor{
				availableBins: map[string]bool{"docker": true},
				runnableCmds: map[string]bool{
					"docker info":    true,
					dockerImageCheck: true,
				},
			},
			wantBin: "docker",
		},
		{
			name: "podman fallback when docker missing",
			exec: &mockExecutor{
				availableBins: map[string]bool{"podman": true},
				runnableCmds: map[string]bool{
					"podman info":    true,
					podmanImageCheck: true,
				},
			},
			wantBin: "podman",
		},
		{
			name: "docker on PATH but info fails, podman works",
			exec: &mockExecutor{
				availableBins: map[string]bool{"docker": true, "podman": true},
				runnableCmds: map[string]bool{
					"podman info":    true,
					podmanImageCheck: true,
				},
			},
			wantBin: "podman",
		},
		{
			name: "both available, docker preferred",
			exec: &mockExecutor{
				availableBins: map[string]bool{"docker": true, "podman": true},
				runnableCmds: map[string]bool{
					"docker info":    true,
					dockerImageCheck: true,
					"podman info":    true,
					podmanImageCheck: true,
				},
			},
			wantBin: "docker",
		},
		{
			name: "runtime present but image missing",
			exec: &mockExecutor{
				availableBins: map[string]bool{"docker": true},
				runnableCmds:  map[string]bool{"docker info": true},
			},
			wantErr: imagePoppler,
		},
		{
			name:    "neither available",
			exec:    &mockExecutor{availableBins: map[string]bool{}},
			wantErr: "no container runtime available",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := newContainer(tt.exec)
			if tt.wantErr != "" {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("error %v does not contain %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if c.bin != tt.wantBin {
				t.Errorf("got runtime %q, want %q", c.bin, tt.wantBin)
			}
		})
	}
}

func TestContainerConvertArgs(t *testing.T) {
	exec := &mockExecutor{}
	c := newDockerContainer(exec)

	if err := c.Convert(context.Background(), "/data/raw/icd9.pdf", "/data/text/icd9.txt"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(exec.runCalls) != 1 {
		t.Fatalf("run calls = %v, want exactly one", exec.runCalls)
	}
	call := exec.runCalls[0]

	for _, want := range []string{
		"docker run --rm",
		"-v /data/raw:/in:ro",
		"-v /data/text:/out",
		imagePoppler,
		"pdftotext -layout -nopgbrk /in/icd9.pdf /out/icd9.txt",
	} {
		if !strings.Contains(call, want) {
			t.Errorf("run call %q does not contain %q", call, want)
		}
	}
}

func TestContainerName(t *testing.T) {
	exec := &mockExecutor{}
	if got := newDockerContainer(exec).Name(); !strings.Contains(got, "docker") {
		t.Errorf("docker container name = %q", got)
	}
	if got := newPodmanContainer(exec).Name(); !strings.Contains(got, "podman") {
		t.Errorf("podman container name = %q", got)
	}
}
