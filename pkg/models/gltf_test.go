package models

import "testing"

func TestLoadGLBMissingFile(t *testing.T) {
	if _, err := LoadGLB("/nonexistent/path.glb"); err == nil {
		t.Error("LoadGLB on a missing file should return an error")
	}
}

func TestLoadGLBWithTextureMissingFile(t *testing.T) {
	if _, _, err := LoadGLBWithTexture("/nonexistent/path.glb"); err == nil {
		t.Error("LoadGLBWithTexture on a missing file should return an error")
	}
}
