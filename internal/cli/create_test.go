package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/glexercises/newex/internal/patch"
	"github.com/go-git/go-git/v5"
	"github.com/google/go-cmp/cmp"
)

const cmakeWithMarker = "project(LearnOpenGL)\n" + patch.DefaultPlaceholder + "\n"

// runResult captures one CLI invocation.
type runResult struct {
	code   int
	stdout string
	stderr string
}

// setupProject creates an isolated project dir with a CMakeLists.txt.
func setupProject(t *testing.T, cmake string) string {
	t.Helper()
	t.Setenv("NEWEX_HOME", t.TempDir())
	dir := t.TempDir()
	if cmake != "" {
		writeTestFile(t, filepath.Join(dir, "CMakeLists.txt"), cmake)
	}
	return dir
}

func runCLI(t *testing.T, stdin string, args ...string) runResult {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := Run(args, strings.NewReader(stdin), &stdout, &stderr)
	return runResult{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func TestCreateInteractiveWithShaders(t *testing.T) {
	dir := setupProject(t, cmakeWithMarker)

	res := runCLI(t, "foo\n\n", "-C", dir)
	if res.code != 0 {
		t.Fatalf("exit code = %d, stderr:\n%s", res.code, res.stderr)
	}

	assertTree(t, filepath.Join(dir, "src", "foo"), []string{"foo.cpp", "foo.fs", "foo.vs"})
	assertContains(t, res.stdout, "Exercise name: ")
	assertContains(t, res.stdout, "Add shaders? [Y/n]: ")
	assertContains(t, res.stdout, "Exercise foo created successfully!")
	assertContains(t, res.stdout, "Your CMakeLists.txt has been updated.")

	want := "project(LearnOpenGL)\n\t\"foo\"\n" + patch.DefaultPlaceholder + "\n"
	if got := readTestFile(t, filepath.Join(dir, "CMakeLists.txt")); got != want {
		t.Errorf("CMakeLists.txt = %q, want %q", got, want)
	}
}

func TestCreateInteractiveDeclineShaders(t *testing.T) {
	dir := setupProject(t, cmakeWithMarker)

	res := runCLI(t, "foo\nn\n", "-C", dir)
	if res.code != 0 {
		t.Fatalf("exit code = %d, stderr:\n%s", res.code, res.stderr)
	}
	assertTree(t, filepath.Join(dir, "src", "foo"), []string{"foo.cpp"})
}

func TestCreateSubcommandWithArgs(t *testing.T) {
	dir := setupProject(t, cmakeWithMarker)

	res := runCLI(t, "", "create", "bar", "--no-shaders", "-C", dir)
	if res.code != 0 {
		t.Fatalf("exit code = %d, stderr:\n%s", res.code, res.stderr)
	}
	assertTree(t, filepath.Join(dir, "src", "bar"), []string{"bar.cpp"})
	if strings.Contains(res.stdout, "Exercise name:") || strings.Contains(res.stdout, "Add shaders?") {
		t.Errorf("no prompts expected when name and shader flags are given, got:\n%s", res.stdout)
	}
}

func TestCreateAlias(t *testing.T) {
	dir := setupProject(t, cmakeWithMarker)

	res := runCLI(t, "", "new", "baz", "--shaders", "-C", dir)
	if res.code != 0 {
		t.Fatalf("exit code = %d, stderr:\n%s", res.code, res.stderr)
	}
	assertTree(t, filepath.Join(dir, "src", "baz"), []string{"baz.cpp", "baz.fs", "baz.vs"})
}

func TestCreateTwiceFails(t *testing.T) {
	dir := setupProject(t, cmakeWithMarker)

	if res := runCLI(t, "", "foo", "--no-shaders", "-C", dir); res.code != 0 {
		t.Fatalf("first run exit code = %d, stderr:\n%s", res.code, res.stderr)
	}
	afterFirst := readTestFile(t, filepath.Join(dir, "CMakeLists.txt"))

	res := runCLI(t, "", "foo", "--shaders", "-C", dir)
	if res.code != 1 {
		t.Fatalf("second run exit code = %d, want 1", res.code)
	}
	assertContains(t, res.stderr, "ERROR! Exercise foo already exists")

	// No new files and no new build entry.
	assertTree(t, filepath.Join(dir, "src", "foo"), []string{"foo.cpp"})
	if got := readTestFile(t, filepath.Join(dir, "CMakeLists.txt")); got != afterFirst {
		t.Errorf("CMakeLists.txt changed on failed run:\n%s", got)
	}
}

func TestCreateTwoExercisesAccumulate(t *testing.T) {
	dir := setupProject(t, patch.DefaultPlaceholder+"\n")

	for _, name := range []string{"first", "second"} {
		if res := runCLI(t, "", name, "--no-shaders", "-C", dir); res.code != 0 {
			t.Fatalf("create %s exit code = %d, stderr:\n%s", name, res.code, res.stderr)
		}
	}

	want := "\t\"first\"\n\t\"second\"\n" + patch.DefaultPlaceholder + "\n"
	if got := readTestFile(t, filepath.Join(dir, "CMakeLists.txt")); got != want {
		t.Errorf("CMakeLists.txt = %q, want %q", got, want)
	}
}

func TestCreateMissingBuildFileKeepsDirectory(t *testing.T) {
	dir := setupProject(t, "")

	res := runCLI(t, "", "foo", "--no-shaders", "-C", dir)
	if res.code != 1 {
		t.Fatalf("exit code = %d, want 1", res.code)
	}
	assertContains(t, res.stderr, "Error: updating CMakeLists.txt")
	assertTree(t, filepath.Join(dir, "src", "foo"), []string{"foo.cpp"})
}

func TestCreateMissingMarker(t *testing.T) {
	dir := setupProject(t, "project(LearnOpenGL)\n")

	res := runCLI(t, "", "foo", "--no-shaders", "-C", dir)
	if res.code != 1 {
		t.Fatalf("exit code = %d, want 1", res.code)
	}
	assertContains(t, res.stderr, "placeholder not found")
	if got := readTestFile(t, filepath.Join(dir, "CMakeLists.txt")); got != "project(LearnOpenGL)\n" {
		t.Errorf("CMakeLists.txt changed: %q", got)
	}
}

func TestCreateMultipleMarkersWarns(t *testing.T) {
	dir := setupProject(t, patch.DefaultPlaceholder+"\n"+patch.DefaultPlaceholder+"\n")

	res := runCLI(t, "", "foo", "--no-shaders", "-C", dir)
	if res.code != 0 {
		t.Fatalf("exit code = %d, stderr:\n%s", res.code, res.stderr)
	}
	assertContains(t, res.stderr, "contains 2 placeholder lines")
}

func TestCreateEmptyName(t *testing.T) {
	dir := setupProject(t, cmakeWithMarker)

	res := runCLI(t, "\n\n", "-C", dir)
	if res.code != 1 {
		t.Fatalf("exit code = %d, want 1", res.code)
	}
	assertContains(t, res.stderr, "exercise name is empty")
}

func TestCreateNoInput(t *testing.T) {
	dir := setupProject(t, cmakeWithMarker)

	res := runCLI(t, "", "-C", dir)
	if res.code != 1 {
		t.Fatalf("exit code = %d, want 1", res.code)
	}
	assertContains(t, res.stderr, "no exercise name given")
}

func TestCreateFlagOverrides(t *testing.T) {
	dir := setupProject(t, "")
	writeTestFile(t, filepath.Join(dir, "build", "exercises.cmake"), "@@MARK@@\n")

	res := runCLI(t, "", "foo", "--no-shaders", "-C", dir,
		"--src-dir", "exercises", "--build-file", filepath.Join("build", "exercises.cmake"), "--placeholder", "@@MARK@@")
	if res.code != 0 {
		t.Fatalf("exit code = %d, stderr:\n%s", res.code, res.stderr)
	}
	assertTree(t, filepath.Join(dir, "exercises", "foo"), []string{"foo.cpp"})
	if got := readTestFile(t, filepath.Join(dir, "build", "exercises.cmake")); got != "\t\"foo\"\n@@MARK@@\n" {
		t.Errorf("build file = %q", got)
	}
}

func TestCreateProjectConfig(t *testing.T) {
	dir := setupProject(t, cmakeWithMarker)
	writeTestFile(t, filepath.Join(dir, ".newex.yaml"), "source_ext: cc\nshader:\n  enabled: false\n  vertex_ext: vert\n  fragment_ext: frag\n")

	// Empty reply takes the configured default, which is now "no".
	res := runCLI(t, "\n", "foo", "-C", dir)
	if res.code != 0 {
		t.Fatalf("exit code = %d, stderr:\n%s", res.code, res.stderr)
	}
	assertContains(t, res.stdout, "Add shaders? [y/N]: ")
	assertTree(t, filepath.Join(dir, "src", "foo"), []string{"foo.cc"})

	res = runCLI(t, "y\n", "bar", "-C", dir)
	if res.code != 0 {
		t.Fatalf("exit code = %d, stderr:\n%s", res.code, res.stderr)
	}
	assertTree(t, filepath.Join(dir, "src", "bar"), []string{"bar.cc", "bar.frag", "bar.vert"})
}

func TestCreateInvalidConfig(t *testing.T) {
	dir := setupProject(t, cmakeWithMarker)
	writeTestFile(t, filepath.Join(dir, ".newex.yaml"), "source_ext: .cpp\n")

	res := runCLI(t, "", "foo", "--no-shaders", "-C", dir)
	if res.code != 1 {
		t.Fatalf("exit code = %d, want 1", res.code)
	}
	assertContains(t, res.stderr, "/source_ext")
	if _, err := os.Stat(filepath.Join(dir, "src")); !os.IsNotExist(err) {
		t.Errorf("nothing should be created with invalid settings")
	}
}

func TestCreateShaderFlagsExclusive(t *testing.T) {
	dir := setupProject(t, cmakeWithMarker)

	res := runCLI(t, "", "foo", "--shaders", "--no-shaders", "-C", dir)
	if res.code != 1 {
		t.Fatalf("exit code = %d, want 1", res.code)
	}
}

func TestCreateStage(t *testing.T) {
	dir := setupProject(t, cmakeWithMarker)
	repo, err := git.PlainInit(dir, false)
	if err != nil {
		t.Fatal(err)
	}

	res := runCLI(t, "", "foo", "--shaders", "--stage", "-C", dir)
	if res.code != 0 {
		t.Fatalf("exit code = %d, stderr:\n%s", res.code, res.stderr)
	}

	wt, err := repo.Worktree()
	if err != nil {
		t.Fatal(err)
	}
	status, err := wt.Status()
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range []string{"src/foo/foo.cpp", "src/foo/foo.vs", "src/foo/foo.fs", "CMakeLists.txt"} {
		if got := status.File(p).Staging; got != git.Added {
			t.Errorf("staging status of %s = %q, want %q", p, got, git.Added)
		}
	}
}

func TestCreateStageRelativeDir(t *testing.T) {
	parent := setupProject(t, "")
	dir := filepath.Join(parent, "proj")
	writeTestFile(t, filepath.Join(dir, "CMakeLists.txt"), cmakeWithMarker)
	repo, err := git.PlainInit(dir, false)
	if err != nil {
		t.Fatal(err)
	}
	t.Chdir(parent)

	res := runCLI(t, "", "foo", "--no-shaders", "--stage", "-C", "proj")
	if res.code != 0 {
		t.Fatalf("exit code = %d, stderr:\n%s", res.code, res.stderr)
	}
	assertContains(t, res.stdout, "Exercise foo created successfully!")

	wt, err := repo.Worktree()
	if err != nil {
		t.Fatal(err)
	}
	status, err := wt.Status()
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range []string{"src/foo/foo.cpp", "CMakeLists.txt"} {
		if got := status.File(p).Staging; got != git.Added {
			t.Errorf("staging status of %s = %q, want %q", p, got, git.Added)
		}
	}
}

func TestCreateStageOutsideRepositoryWarns(t *testing.T) {
	dir := setupProject(t, cmakeWithMarker)

	res := runCLI(t, "", "foo", "--no-shaders", "--stage", "-C", dir)
	if res.code != 0 {
		t.Fatalf("exit code = %d, stderr:\n%s", res.code, res.stderr)
	}
	assertContains(t, res.stderr, "not staging files")
}

// ─── Test Helpers ──────────────────────────────────────────────────

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func readTestFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

func assertTree(t *testing.T, dir string, want []string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("reading %s: %v", dir, err)
	}
	var got []string
	for _, e := range entries {
		got = append(got, e.Name())
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("contents of %s mismatch (-want +got):\n%s", dir, diff)
	}
}

func assertContains(t *testing.T, content, substr string) {
	t.Helper()
	if !strings.Contains(content, substr) {
		t.Errorf("output does not contain %q\n--- output ---\n%s", substr, content)
	}
}
