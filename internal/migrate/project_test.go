package migrate

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestDiscoverFilesExcludesGeneratedAndOutputDirs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Account.cs"), "public class Account {}")
	writeFile(t, filepath.Join(root, "Account.g.cs"), "// generated")
	writeFile(t, filepath.Join(root, "Widget.Designer.cs"), "// designer")
	writeFile(t, filepath.Join(root, "obj", "Debug.cs"), "// build output")
	writeFile(t, filepath.Join(root, "bin", "Release.cs"), "// build output")

	files, err := DiscoverFiles(root)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 {
		t.Fatalf("DiscoverFiles found %d files, want 1: %v", len(files), files)
	}
}

func TestRunProjectIsolatesPerFileFailure(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Good.cs"), `public int Add(int a, int b) {
    return a + b;
}`)
	writeFile(t, filepath.Join(root, "Bad.cs"), `
public class Shape {
    public double Area(Shape s) => s switch {
        Circle c => 3.14,
        _ => 0,
    };
}
`)

	report, err := RunProject(context.Background(), root, Options{Convert: ConvertOptions{FailOnUnsupported: true}})
	if err != nil {
		t.Fatalf("RunProject returned an error (should isolate per-file failures): %v", err)
	}
	if len(report.Files) != 2 {
		t.Fatalf("expected 2 file results, got %d", len(report.Files))
	}
	if !report.AnyFailed() {
		t.Error("expected the bad file to register a project-level failure")
	}
	if report.Successful == 0 {
		t.Error("expected the good file to still succeed despite the other file's failure")
	}
}
