package labels

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/foodlens-ai/foodlens/internal/apperr"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.Disabled)
	os.Exit(m.Run())
}

func writeNames(t *testing.T, names []string) string {
	t.Helper()
	data, err := json.Marshal(names)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "class_names.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func testNames(count int) []string {
	names := make([]string, count)
	for i := range names {
		names[i] = fmt.Sprintf("dish_%d", i)
	}
	return names
}

func TestLoad_FullList(t *testing.T) {
	registry, err := Load(writeNames(t, testNames(ExpectedCount)))
	require.NoError(t, err)
	assert.Equal(t, ExpectedCount, registry.Count())
	assert.False(t, registry.CountMismatch())
}

func TestLoad_MissingFile(t *testing.T) {
	registry, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	assert.Nil(t, registry)
	assert.True(t, apperr.IsCode(err, apperr.CodeNotFound))
}

func TestLoad_MalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "class_names.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	registry, err := Load(path)
	assert.Nil(t, registry)
	assert.True(t, apperr.IsCode(err, apperr.CodeParseError))
}

func TestLoad_CountMismatchIsNonFatal(t *testing.T) {
	registry, err := Load(writeNames(t, testNames(50)))
	require.NoError(t, err)
	assert.Equal(t, 50, registry.Count())
	assert.True(t, registry.CountMismatch())
}

func TestName_InRange(t *testing.T) {
	registry, err := Load(writeNames(t, []string{"apple_pie", "pizza"}))
	require.NoError(t, err)

	name, err := registry.Name(1)
	require.NoError(t, err)
	assert.Equal(t, "pizza", name)
}

func TestName_OutOfRange(t *testing.T) {
	registry, err := Load(writeNames(t, testNames(50)))
	require.NoError(t, err)

	_, err = registry.Name(72)
	assert.True(t, apperr.IsCode(err, apperr.CodeIndexRange))

	_, err = registry.Name(-1)
	assert.True(t, apperr.IsCode(err, apperr.CodeIndexRange))
}

func TestPretty(t *testing.T) {
	assert.Equal(t, "Apple Pie", Pretty("apple_pie"))
	assert.Equal(t, "Pizza", Pretty("pizza"))
	assert.Equal(t, "Shish Kebab", Pretty("shish_kebab"))
}
