package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestApplyCommand(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "target.json")
	source := filepath.Join(dir, "source.json")
	clip := filepath.Join(dir, "clip.json")
	policy := filepath.Join(dir, "policy.yaml")
	out := filepath.Join(dir, "out.json")

	writeFile(t, target, `{"joints": [
		{"name": "DEF-spine", "translation": [0, 0, 0]},
		{"name": "DEF-spine.001", "parent": "DEF-spine", "translation": [0, 1, 0]}
	]}`)
	// CMU-style rig; the diagnostic LowerBack joint carries no track in the
	// clip, so the format must be read off the rest skeleton.
	writeFile(t, source, `{"joints": [
		{"name": "Hips", "translation": [0, 0, 0]},
		{"name": "LowerBack", "parent": "Hips", "translation": [0, 0.2, 0]},
		{"name": "Spine", "parent": "LowerBack", "translation": [0, 0.8, 0]}
	]}`)
	writeFile(t, clip, `{"name": "walk", "tracks": [
		{"joint": "Hips", "times": [0, 0.033],
		 "rotations": [[0, 0, 0, 1], [0, 0, 0, 1]]}
	]}`)
	writeFile(t, policy, "root_fallback: first-mapped-child\n")

	cmd := newRootCmd()
	cmd.SetArgs([]string{"apply", clip,
		"--target", target, "--source", source, "--policy", policy, "-o", out})
	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	var doc clipJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatal(err)
	}
	if len(doc.Tracks) != 1 || doc.Tracks[0].Joint != "DEF-spine" {
		t.Error("tracks: ", doc.Tracks)
	}
	if len(doc.Tracks[0].Rotations) != 2 {
		t.Error("frames: ", len(doc.Tracks[0].Rotations))
	}
}

func TestApplyCommandBadFormat(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "target.json")
	source := filepath.Join(dir, "source.json")
	clip := filepath.Join(dir, "clip.json")
	writeFile(t, target, `{"joints": [{"name": "DEF-spine"}]}`)
	writeFile(t, source, `{"joints": [{"name": "hip"}]}`)
	writeFile(t, clip, `{"tracks": []}`)

	cmd := newRootCmd()
	cmd.SetArgs([]string{"apply", clip,
		"--target", target, "--source", source, "--format", "bogus"})
	if err := cmd.Execute(); err == nil {
		t.Error("expected error")
	}
}
