package recipe

// API version and kind constants for recipe versioning.
const (
	// APIVersionV1 is the current API version for kiln documents.
	APIVersionV1 = "kiln.dev/v1"

	// KindProfile identifies a variable Profile document.
	KindProfile = "Profile"

	// KindManifest identifies a package Manifest document.
	KindManifest = "Manifest"
)

// SupportedAPIVersions lists all API versions that can be loaded.
var SupportedAPIVersions = []string{APIVersionV1}

// SupportedKinds lists all valid document kinds.
var SupportedKinds = []string{KindProfile, KindManifest}

// Variables are the template inputs resolved at recipe-generation time.
type Variables struct {
	// Unstable adds the extra package-repository channels.
	Unstable bool `yaml:"unstable"`

	// Qt6 selects the Qt6 package set; false selects Qt5.
	Qt6 bool `yaml:"qt6"`

	// WebEngine selects the WebEngine bindings; false pins the historical
	// Qt5/WebKit snapshot (only valid together with qt6: false).
	WebEngine bool `yaml:"webengine"`

	// Python is the interpreter binary name used for the test command.
	Python string `yaml:"python"`
}

// Profile is a named cell of the variable matrix, loaded from YAML.
type Profile struct {
	// APIVersion identifies the schema version (e.g., "kiln.dev/v1").
	APIVersion string `yaml:"apiVersion,omitempty"`

	// Kind identifies the document type (e.g., "Profile").
	Kind string `yaml:"kind,omitempty"`

	// Name is the profile name, used for output paths and image tags.
	Name string `yaml:"name"`

	// Variables are the recipe template inputs.
	Variables Variables `yaml:"variables"`

	// ToxEnv is the tox environment invoked at container start.
	ToxEnv string `yaml:"toxEnv,omitempty"`
}

// Repo is an extra package-repository channel enabled on unstable profiles.
type Repo struct {
	// Name is the repository section name (e.g., "kde-unstable").
	Name string

	// Include is the mirrorlist include path written into pacman.conf.
	Include string
}

// Pin is a historical package snapshot installed by direct download.
type Pin struct {
	// Name is the package name.
	Name string

	// URL is the archived package URL.
	URL string
}

// InterpreterBuild describes a pinned from-source interpreter build.
type InterpreterBuild struct {
	// Version is the interpreter version to build.
	Version string

	// URL is the source tarball URL.
	URL string
}

// Selection is the resolved package set for one variable combination.
// Field ordering is significant: templates iterate slices in order, which
// keeps rendering byte-deterministic.
type Selection struct {
	// Packages is the ordered list of distribution packages to install.
	Packages []string

	// Repos are extra repository channels (empty unless unstable).
	Repos []Repo

	// Pins are historical snapshot downloads (Qt5/WebKit branch only).
	Pins []Pin

	// Interpreter is non-nil when the branch builds Python from source.
	Interpreter *InterpreterBuild
}
