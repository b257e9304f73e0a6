package recipe

// Static selection tables. Ordering inside each slice is load-bearing:
// it fixes the install order in the rendered recipe, which keeps output
// byte-identical across renders.

// basePackages are installed on every branch of the matrix.
var basePackages = []string{
	"git",
	"gcc",
	"libyaml",
	"xorg-server-xvfb",
	"xorg-xinit",
	"xorg-xdpyinfo",
	"herbstluftwm",
	"ttf-bitstream-vera",
	"python-tox",
	"python-distlib",
}

// qt6WebEnginePackages is the Qt6 + WebEngine branch.
var qt6WebEnginePackages = []string{
	"qt6-base",
	"qt6-declarative",
	"qt6-webengine",
	"python-pyqt6",
	"python-pyqt6-webengine",
}

// qt5WebEnginePackages is the Qt5 + WebEngine branch. Qt5 builds still
// link against the legacy OpenSSL line.
var qt5WebEnginePackages = []string{
	"qt5-base",
	"qt5-declarative",
	"qt5-webengine",
	"python-pyqt5",
	"python-pyqtwebengine",
	"openssl-1.1",
}

// qt5WebKitPackages is the Qt5 + WebKit branch; the WebKit bits themselves
// come from pinned archive downloads, not the live repositories.
var qt5WebKitPackages = []string{
	"qt5-base",
	"qt5-declarative",
	"openssl-1.1",
}

// unstableRepos are the extra channels enabled by the unstable variable.
var unstableRepos = []Repo{
	{Name: "kde-unstable", Include: "/etc/pacman.d/mirrorlist"},
	{Name: "testing", Include: "/etc/pacman.d/mirrorlist"},
}

// webKitPins is the historical Qt5/WebKit package snapshot. These packages
// were dropped from the live repositories, so they are installed from the
// package archive by direct download.
var webKitPins = []Pin{
	{
		Name: "qt5-webkit",
		URL:  "https://archive.archlinux.org/packages/q/qt5-webkit/qt5-webkit-5.212.0alpha4-18-x86_64.pkg.tar.zst",
	},
	{
		Name: "python-pyqt5",
		URL:  "https://archive.archlinux.org/packages/p/python-pyqt5/python-pyqt5-5.15.7-2-x86_64.pkg.tar.zst",
	},
}

// webKitInterpreter is the pinned from-source interpreter build used on the
// WebKit branch, matching the interpreter the archived bindings were built
// against.
var webKitInterpreter = InterpreterBuild{
	Version: "3.9.18",
	URL:     "https://www.python.org/ftp/python/3.9.18/Python-3.9.18.tar.xz",
}

// Select resolves a variable combination into its package selection.
// Exactly one branch executes per variable; the qt6-without-webengine cell
// returns ErrUnsupportedCombination.
func Select(v Variables) (*Selection, error) {
	if err := ValidateVariables(v); err != nil {
		return nil, err
	}

	sel := &Selection{}
	sel.Packages = append(sel.Packages, basePackages...)

	switch {
	case v.Qt6:
		sel.Packages = append(sel.Packages, qt6WebEnginePackages...)
	case v.WebEngine:
		sel.Packages = append(sel.Packages, qt5WebEnginePackages...)
	default:
		sel.Packages = append(sel.Packages, qt5WebKitPackages...)
		sel.Pins = append(sel.Pins, webKitPins...)
		interp := webKitInterpreter
		sel.Interpreter = &interp
	}

	if v.Unstable {
		sel.Repos = append(sel.Repos, unstableRepos...)
	}

	return sel, nil
}
