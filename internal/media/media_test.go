package media

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	assert.Equal(t, "ur-psa-01", Slugify("  UR PSA_01 "))
	assert.Equal(t, "", Slugify("---"))
}

func TestAirplaneImagePath(t *testing.T) {
	path, err := AirplaneImagePath("UR-PSA", "photo.JPG")
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^uploads/airplanes/ur-psa-[0-9a-f-]{36}\.jpg$`), path)

	other, err := AirplaneImagePath("UR-PSA", "photo.jpg")
	require.NoError(t, err)
	assert.NotEqual(t, path, other)

	_, err = AirplaneImagePath("UR-PSA", "script.sh")
	assert.Error(t, err)
}

func TestStore_SaveRemove(t *testing.T) {
	store := NewStore(t.TempDir())

	require.NoError(t, store.Save("uploads/airplanes/a.png", strings.NewReader("img")))
	data, err := os.ReadFile(filepath.Join(store.Root(), "uploads", "airplanes", "a.png"))
	require.NoError(t, err)
	assert.Equal(t, "img", string(data))

	require.NoError(t, store.Remove("uploads/airplanes/a.png"))
	require.NoError(t, store.Remove("uploads/airplanes/a.png"))
}
