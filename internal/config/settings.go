package config

import (
	"github.com/glexercises/newex/internal/patch"
	"github.com/glexercises/newex/internal/scaffold"
)

// Setting keys. Nested keys use viper's dot notation.
const (
	KeySourceDir   = "source_dir"
	KeySourceExt   = "source_ext"
	KeyVertexExt   = "shader.vertex_ext"
	KeyFragmentExt = "shader.fragment_ext"
	KeyShaders     = "shader.enabled"
	KeyBuildFile   = "build_file"
	KeyPlaceholder = "placeholder"
	KeyGitStage    = "git.stage"
)

// Keys lists every known setting in display order.
var Keys = []string{
	KeySourceDir,
	KeySourceExt,
	KeyVertexExt,
	KeyFragmentExt,
	KeyShaders,
	KeyBuildFile,
	KeyPlaceholder,
	KeyGitStage,
}

var boolKeys = map[string]bool{
	KeyShaders:  true,
	KeyGitStage: true,
}

// IsKnownKey reports whether key names a setting.
func IsKnownKey(key string) bool {
	for _, k := range Keys {
		if k == key {
			return true
		}
	}
	return false
}

// Settings is the resolved configuration for one run.
type Settings struct {
	SourceDir   string         `json:"source_dir"`
	SourceExt   string         `json:"source_ext"`
	Shader      ShaderSettings `json:"shader"`
	BuildFile   string         `json:"build_file"`
	Placeholder string         `json:"placeholder"`
	Git         GitSettings    `json:"git"`
}

// ShaderSettings controls the optional shader pair.
type ShaderSettings struct {
	Enabled     bool   `json:"enabled"` // default answer to the shader prompt
	VertexExt   string `json:"vertex_ext"`
	FragmentExt string `json:"fragment_ext"`
}

// GitSettings controls staging of generated files.
type GitSettings struct {
	Stage bool `json:"stage"`
}

// Defaults returns the settings used when nothing is configured.
func Defaults() Settings {
	l := scaffold.DefaultLayout("")
	return Settings{
		SourceDir: l.SourceDir,
		SourceExt: l.SourceExt,
		Shader: ShaderSettings{
			Enabled:     true,
			VertexExt:   l.VertexExt,
			FragmentExt: l.FragmentExt,
		},
		BuildFile:   "CMakeLists.txt",
		Placeholder: patch.DefaultPlaceholder,
	}
}

// Layout returns the scaffold layout rooted at projectDir.
func (s *Settings) Layout(projectDir string) scaffold.Layout {
	return scaffold.Layout{
		Root:        projectDir,
		SourceDir:   s.SourceDir,
		SourceExt:   s.SourceExt,
		VertexExt:   s.Shader.VertexExt,
		FragmentExt: s.Shader.FragmentExt,
	}
}
