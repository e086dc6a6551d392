package categories

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	r, err := Load("")
	require.NoError(t, err)
	assert.True(t, r.Exists("doxing"))
	assert.True(t, r.Exists("other"))
	assert.False(t, r.Exists("reason-category-dummy"))
	assert.Len(t, r.All(), len(Defaults))
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "categories.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"categories":[{"id":"spam","label":"Spam"},{"id":"abuse","label":"Abuse"}]}`), 0o600))

	r, err := Load(path)
	require.NoError(t, err)
	assert.True(t, r.Exists("spam"))
	assert.False(t, r.Exists("doxing"))

	all := r.All()
	require.Len(t, all, 2)
	assert.Equal(t, ReasonCategory{ID: "abuse", Label: "Abuse"}, all[0])
	assert.Equal(t, ReasonCategory{ID: "spam", Label: "Spam"}, all[1])
}

func TestLoad_Invalid(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"categories":`), 0o600))
	_, err = Load(bad)
	assert.Error(t, err)

	_, err = NewRegistry(nil)
	assert.Error(t, err)

	_, err = NewRegistry([]ReasonCategory{{ID: "a"}, {ID: "a"}})
	assert.Error(t, err)

	_, err = NewRegistry([]ReasonCategory{{ID: ""}})
	assert.Error(t, err)
}
