package yaml

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hengadev/treeconf"
)

const sampleDoc = `# Bind address
host: example.com
port: 8080
debug: true
ratio: 0.5
tags:
    - edge
    - beta
limits:
    requests: 10
empty:
`

func TestLoad(t *testing.T) {
	root, err := Load([]byte(sampleDoc), nil)
	require.NoError(t, err)

	t.Run("scalars keep their YAML types", func(t *testing.T) {
		assert.Equal(t, "example.com", root.Child("host").Value())
		assert.Equal(t, 8080, root.Child("port").Value())
		assert.Equal(t, true, root.Child("debug").Value())
		assert.Equal(t, 0.5, root.Child("ratio").Value())
	})

	t.Run("mapping order is the document order", func(t *testing.T) {
		var keys []string
		for _, entry := range root.MapChildren() {
			keys = append(keys, entry.Key)
		}
		assert.Equal(t, []string{"host", "port", "debug", "ratio", "tags", "limits", "empty"}, keys)
	})

	t.Run("sequences become list children", func(t *testing.T) {
		tags := root.Child("tags")
		require.True(t, tags.HasListChildren())
		children := tags.ListChildren()
		require.Len(t, children, 2)
		assert.Equal(t, "edge", children[0].Value())
		assert.Equal(t, "beta", children[1].Value())
	})

	t.Run("head comments attach to the keyed node", func(t *testing.T) {
		cn, ok := root.Child("host").(treeconf.CommentedNode)
		require.True(t, ok)
		assert.Equal(t, "Bind address", cn.Comment())
	})

	t.Run("an empty value is an explicit null", func(t *testing.T) {
		empty := root.Child("empty")
		assert.False(t, empty.IsVirtual())
		assert.Nil(t, empty.Value())
	})

	t.Run("an empty document yields a virtual root", func(t *testing.T) {
		root, err := Load(nil, nil)
		require.NoError(t, err)
		assert.True(t, root.IsVirtual())
	})

	t.Run("malformed documents fail", func(t *testing.T) {
		_, err := Load([]byte("a: [unclosed"), nil)
		assert.Error(t, err)
	})
}

func TestLoadAliases(t *testing.T) {
	doc := `
defaults: &d
    retries: 3
prod: *d
`
	root, err := Load([]byte(doc), nil)
	require.NoError(t, err)
	assert.Equal(t, 3, root.Child("prod").Child("retries").Value())
}

func TestSave(t *testing.T) {
	t.Run("a virtual root renders nothing", func(t *testing.T) {
		out, err := Save(treeconf.NewNode(nil))
		require.NoError(t, err)
		assert.Empty(t, out)
	})

	t.Run("round trip keeps structure, order and comments", func(t *testing.T) {
		root, err := Load([]byte(sampleDoc), nil)
		require.NoError(t, err)

		out, err := Save(root)
		require.NoError(t, err)
		assert.Contains(t, string(out), "# Bind address")

		again, err := Load(out, nil)
		require.NoError(t, err)
		assert.Equal(t, root.Value(), again.Value())

		var keys []string
		for _, entry := range again.MapChildren() {
			keys = append(keys, entry.Key)
		}
		assert.Equal(t, []string{"host", "port", "debug", "ratio", "tags", "limits", "empty"}, keys)
		assert.Equal(t, 8080, again.Child("port").Value())
	})

	t.Run("explicit nulls survive", func(t *testing.T) {
		root := treeconf.NewNode(nil)
		root.Child("gone").SetValue(nil)
		out, err := Save(root)
		require.NoError(t, err)
		assert.Contains(t, string(out), "gone: null")
	})
}

func TestLoadFile(t *testing.T) {
	t.Run("missing files yield a virtual root", func(t *testing.T) {
		root, err := LoadFile(filepath.Join(t.TempDir(), "absent.yml"), nil)
		require.NoError(t, err)
		assert.True(t, root.IsVirtual())
	})

	t.Run("existing files are parsed", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yml")
		require.NoError(t, os.WriteFile(path, []byte(sampleDoc), 0o600))

		root, err := LoadFile(path, nil)
		require.NoError(t, err)
		assert.Equal(t, "example.com", root.Child("host").Value())
	})
}

func TestSaveFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")

	root := treeconf.NewNode(nil)
	root.Child("host").SetValue("example.com")
	require.NoError(t, SaveFile(path, root))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "host: example.com\n", string(data))

	t.Run("no temporary files are left behind", func(t *testing.T) {
		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "config.yml", entries[0].Name())
	})

	t.Run("replacing an existing file keeps the last write", func(t *testing.T) {
		root.Child("host").SetValue("other.example.com")
		require.NoError(t, SaveFile(path, root))
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "other.example.com")
	})
}

func TestMappedRoundTrip(t *testing.T) {
	type endpoint struct {
		Host string `conf:"host"`
		Port int    `conf:"port"`
	}

	root, err := Load([]byte("host: example.com\nport: 8080\n"), nil)
	require.NoError(t, err)

	cfg := &endpoint{}
	bound, err := treeconf.Bind(cfg)
	require.NoError(t, err)
	require.NoError(t, bound.Populate(root))
	assert.Equal(t, &endpoint{Host: "example.com", Port: 8080}, cfg)

	cfg.Port = 9090
	require.NoError(t, bound.Serialize(root))

	out, err := Save(root)
	require.NoError(t, err)
	assert.Contains(t, string(out), "port: 9090")
}
