package migrations

import (
	"io"
	"io/fs"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrationsArePaired(t *testing.T) {
	entries, err := fs.ReadDir(files, "sql")
	require.NoError(t, err)

	ups, downs := map[string]bool{}, map[string]bool{}
	for _, e := range entries {
		name := e.Name()
		switch {
		case strings.HasSuffix(name, ".up.sql"):
			ups[strings.TrimSuffix(name, ".up.sql")] = true
		case strings.HasSuffix(name, ".down.sql"):
			downs[strings.TrimSuffix(name, ".down.sql")] = true
		}
	}
	require.NotEmpty(t, ups)
	assert.Equal(t, ups, downs)
}

func TestApplicationsSchemaRestrictsPosition(t *testing.T) {
	data, err := fs.ReadFile(files, "sql/000001_applications.up.sql")
	require.NoError(t, err)
	assert.Contains(t, string(data), "CHECK (position IN ('COO', 'CM'))")
}

func TestNew_RequiresDatabaseURL(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	_, err := New("", logger)
	assert.Error(t, err)
}
