package manifest

// DefaultTestTools is the test-tooling manifest scaffolded by 'kiln init'.
// It mirrors the tooling the rendered test containers invoke through tox.
var DefaultTestTools = []string{
	"tox",
	"pytest",
	"pytest-bdd",
	"pytest-benchmark",
	"pytest-cov",
	"pytest-instafail",
	"pytest-mock",
	"pytest-qt",
	"pytest-repeat",
	"pytest-rerunfailures",
	"pytest-xdist",
	"pytest-xvfb",
	"hypothesis",
	"coverage",
	"flaky",
	"beautifulsoup4",
	"cheroot",
	"vulture",
}

// DefaultTestToolsManifest returns the scaffolded manifest document.
func DefaultTestToolsManifest() *Manifest {
	packages := make([]string, len(DefaultTestTools))
	copy(packages, DefaultTestTools)
	return &Manifest{Name: "test-tools", Packages: packages}
}
