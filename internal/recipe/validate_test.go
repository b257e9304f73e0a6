package recipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateVariables_ValidCombinations(t *testing.T) {
	tests := []struct {
		name string
		vars Variables
	}{
		{"qt6 webengine", Variables{Qt6: true, WebEngine: true, Python: "python3"}},
		{"qt5 webengine", Variables{Qt6: false, WebEngine: true, Python: "python3"}},
		{"qt5 webkit", Variables{Qt6: false, WebEngine: false, Python: "python3"}},
		{"unstable qt6 webengine", Variables{Unstable: true, Qt6: true, WebEngine: true, Python: "python3"}},
		{"versioned interpreter", Variables{WebEngine: true, Python: "python3.11"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NoError(t, ValidateVariables(tt.vars))
		})
	}
}

func TestValidateVariables_Qt6WithoutWebEngine(t *testing.T) {
	err := ValidateVariables(Variables{Qt6: true, WebEngine: false, Python: "python3"})
	assert.ErrorIs(t, err, ErrUnsupportedCombination)

	// The guard holds on the unstable channel too.
	err = ValidateVariables(Variables{Unstable: true, Qt6: true, WebEngine: false, Python: "python3"})
	assert.ErrorIs(t, err, ErrUnsupportedCombination)
}

func TestValidateVariables_InvalidInterpreter(t *testing.T) {
	tests := []struct {
		name   string
		python string
	}{
		{"empty", ""},
		{"path", "/usr/bin/python3"},
		{"shell metachars", "python3; rm -rf /"},
		{"leading digit", "3python"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateVariables(Variables{WebEngine: true, Python: tt.python})
			assert.ErrorIs(t, err, ErrInvalidInterpreter)
		})
	}
}

func TestValidateAPIVersion(t *testing.T) {
	assert.NoError(t, ValidateAPIVersion(""))
	assert.NoError(t, ValidateAPIVersion(APIVersionV1))
	assert.ErrorIs(t, ValidateAPIVersion("kiln.dev/v2"), ErrUnsupportedAPIVersion)
}

func TestValidateKind(t *testing.T) {
	assert.NoError(t, ValidateKind("", KindProfile))
	assert.NoError(t, ValidateKind(KindProfile, KindProfile))
	assert.ErrorIs(t, ValidateKind("Recipe", KindProfile), ErrInvalidKind)
	assert.ErrorIs(t, ValidateKind(KindManifest, KindProfile), ErrKindMismatch)
}

func TestValidateDocument(t *testing.T) {
	data := []byte("apiVersion: kiln.dev/v1\nkind: Profile\nname: x\n")
	meta, err := ValidateDocument(data, KindProfile)
	require.NoError(t, err)
	assert.Equal(t, APIVersionV1, meta.APIVersion)
	assert.Equal(t, KindProfile, meta.Kind)

	_, err = ValidateDocument([]byte("apiVersion: other/v9\n"), KindProfile)
	assert.ErrorIs(t, err, ErrUnsupportedAPIVersion)
}

func TestProfileValidate(t *testing.T) {
	p := &Profile{
		APIVersion: APIVersionV1,
		Kind:       KindProfile,
		Name:       "qt6-webengine",
		Variables:  Variables{Qt6: true, WebEngine: true, Python: "python3"},
	}
	assert.NoError(t, p.Validate())

	p.Name = ""
	assert.ErrorIs(t, p.Validate(), ErrMissingName)
}
