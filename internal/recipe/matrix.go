package recipe

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Combination is one cell of the {unstable, qt6, webengine} matrix.
type Combination struct {
	Unstable  bool
	Qt6       bool
	WebEngine bool
}

// Valid reports whether the cell has a package set. The qt6-without-webengine
// cell is the deliberate guard from the selection table.
func (c Combination) Valid() bool {
	return !c.Qt6 || c.WebEngine
}

// Name returns the canonical profile name for the cell
// (e.g., "qt6-webengine", "qt5-webkit-unstable").
func (c Combination) Name() string {
	name := "qt5"
	if c.Qt6 {
		name = "qt6"
	}
	if c.WebEngine {
		name += "-webengine"
	} else {
		name += "-webkit"
	}
	if c.Unstable {
		name += "-unstable"
	}
	return name
}

// Profile expands the cell into a renderable profile with the given
// interpreter.
func (c Combination) Profile(python string) *Profile {
	return &Profile{
		APIVersion: APIVersionV1,
		Kind:       KindProfile,
		Name:       c.Name(),
		Variables: Variables{
			Unstable:  c.Unstable,
			Qt6:       c.Qt6,
			WebEngine: c.WebEngine,
			Python:    python,
		},
	}
}

// AllCombinations enumerates every cell of the matrix in a fixed order.
func AllCombinations() []Combination {
	var combos []Combination
	for _, unstable := range []bool{false, true} {
		for _, qt6 := range []bool{false, true} {
			for _, webengine := range []bool{false, true} {
				combos = append(combos, Combination{
					Unstable:  unstable,
					Qt6:       qt6,
					WebEngine: webengine,
				})
			}
		}
	}
	return combos
}

// MatrixResult is the verification outcome for one cell.
type MatrixResult struct {
	// Name is the canonical cell name.
	Name string

	// Combination is the cell's variable assignment.
	Combination Combination

	// Hash is the sha256 of the rendered recipe; empty for guarded cells.
	Hash string

	// Err is non-nil when the cell misbehaved: a valid cell failed to
	// render, rendered nondeterministically, or a guarded cell rendered.
	Err error
}

// VerifyMatrix renders every cell of the matrix concurrently and checks that
// valid cells render deterministically while the guarded cell always fails.
func VerifyMatrix(ctx context.Context, python, templatesDir string, workers int) ([]MatrixResult, error) {
	combos := AllCombinations()
	results := make([]MatrixResult, len(combos))

	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}

	for i, combo := range combos {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = verifyCell(combo, python, templatesDir)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// verifyCell checks one matrix cell. Valid cells are rendered twice to prove
// determinism; guarded cells must fail with ErrUnsupportedCombination.
func verifyCell(combo Combination, python, templatesDir string) MatrixResult {
	result := MatrixResult{Name: combo.Name(), Combination: combo}
	profile := combo.Profile(python)

	if !combo.Valid() {
		if _, err := Render(profile, templatesDir); err == nil {
			result.Err = fmt.Errorf("guard did not trigger for %s", combo.Name())
		}
		return result
	}

	first, err := Render(profile, templatesDir)
	if err != nil {
		result.Err = err
		return result
	}

	second, err := Render(profile, templatesDir)
	if err != nil {
		result.Err = err
		return result
	}

	firstHash, secondHash := Hash(first), Hash(second)
	if firstHash != secondHash {
		result.Err = fmt.Errorf("nondeterministic render for %s: %s != %s",
			combo.Name(), firstHash[:12], secondHash[:12])
		return result
	}

	result.Hash = firstHash
	return result
}
