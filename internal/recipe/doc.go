// Package recipe implements the build-recipe engine for generating
// container test-environment Dockerfiles from variable profiles.
//
// A profile selects one cell of the variable matrix:
//
//	apiVersion: kiln.dev/v1
//	kind: Profile
//	name: qt6-webengine
//	variables:
//	  unstable: false
//	  qt6: true
//	  webengine: true
//	  python: python3
//	toxEnv: py313-pyqt6
//
// The rendering pipeline is:
//
//   - Variable validation (qt6 without webengine is rejected)
//   - Package selection (static lookup, fixed ordering)
//   - Template execution (text/template + sprig)
//
// Rendering is deterministic: identical profiles always produce
// byte-identical Dockerfiles. All template data is carried in slices so
// no map iteration order can leak into the output.
package recipe
