package progress

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/example/coniugatore/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "nope.json"))
	data := store.Load()
	assert.Empty(t, data.RepeatQueue)
	assert.Empty(t, data.ErrorLog)
}

func TestLoadCorruptFileYieldsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	data := NewStore(path).Load()
	assert.Empty(t, data.RepeatQueue)
	assert.Empty(t, data.ErrorLog)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	// The parent directory does not exist yet; Save must create it.
	path := filepath.Join(t.TempDir(), "nested", "progress.json")
	store := NewStore(path)

	data := Data{
		RepeatQueue: []models.RepeatItem{{
			Modo:        "Indicativo",
			Tiempo:      "Presente",
			Nombre:      "Presente",
			Pronombre:   "Io",
			Genere:      "M",
			Verb:        "essere",
			Correct:     "sono",
			ScheduledAt: 3,
			Attempts:    1,
		}},
		ErrorLog: []models.Attempt{{
			Verb:      "essere",
			Modo:      "Indicativo",
			Tiempo:    "Presente",
			Nombre:    "Presente",
			Pronombre: "Io",
			Provided:  "sei",
			Correct:   "sono",
		}},
	}
	require.NoError(t, store.Save(data))

	loaded := store.Load()
	assert.Equal(t, data, loaded)
}

func TestSaveOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.json")
	store := NewStore(path)

	require.NoError(t, store.Save(Data{RepeatQueue: []models.RepeatItem{{Verb: "essere"}}}))
	require.NoError(t, store.Save(Data{}))
	assert.Empty(t, store.Load().RepeatQueue)
}
