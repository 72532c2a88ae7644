// Package yaml loads and saves treeconf trees as YAML documents, keeping
// map ordering and node comments intact in both directions.
package yaml

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	goyaml "gopkg.in/yaml.v3"

	"github.com/hengadev/treeconf"
)

// Load parses a YAML document into a tree carrying the given options. An
// empty document yields a virtual root. A nil opts uses the defaults.
func Load(data []byte, opts *treeconf.Options) (treeconf.Node, error) {
	var doc goyaml.Node
	if err := goyaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML document: %w", err)
	}
	root := treeconf.NewNode(opts)
	if doc.Kind != goyaml.DocumentNode || len(doc.Content) == 0 {
		return root, nil
	}
	if err := decodeInto(root, doc.Content[0]); err != nil {
		return nil, err
	}
	return root, nil
}

// LoadFile reads and parses the YAML file at path. A missing file yields a
// virtual root rather than an error, so callers can populate defaults into
// it and save.
func LoadFile(path string, opts *treeconf.Options) (treeconf.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return treeconf.NewNode(opts), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Load(data, opts)
}

// Save renders the tree as a YAML document. A virtual root renders as an
// empty document.
func Save(n treeconf.Node) ([]byte, error) {
	if n.IsVirtual() {
		return nil, nil
	}
	doc, err := encodeNode(n)
	if err != nil {
		return nil, err
	}
	out, err := goyaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to render YAML document: %w", err)
	}
	return out, nil
}

// SaveFile writes the tree to path atomically: the document lands in a
// temporary file in the same directory and replaces the target with a
// rename, so readers never observe a partial write.
func SaveFile(path string, n treeconf.Node) error {
	data, err := Save(n)
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".treeconf-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write temporary file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temporary file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

func decodeInto(n treeconf.Node, y *goyaml.Node) error {
	if y.Kind == goyaml.AliasNode {
		y = y.Alias
	}
	switch y.Kind {
	case goyaml.MappingNode:
		if len(y.Content) == 0 {
			n.SetValue(map[string]any{})
			return nil
		}
		for i := 0; i+1 < len(y.Content); i += 2 {
			key, value := y.Content[i], y.Content[i+1]
			child := n.Child(key.Value)
			if err := decodeInto(child, value); err != nil {
				return err
			}
			if comment := commentText(key.HeadComment); comment != "" {
				if cn, ok := child.(treeconf.CommentedNode); ok {
					cn.SetComment(comment)
				}
			}
		}
		return nil
	case goyaml.SequenceNode:
		if len(y.Content) == 0 {
			n.SetValue([]any{})
			return nil
		}
		for _, item := range y.Content {
			if err := decodeInto(n.AppendChild(), item); err != nil {
				return err
			}
		}
		return nil
	case goyaml.ScalarNode:
		var v any
		if err := y.Decode(&v); err != nil {
			return fmt.Errorf("failed to decode scalar at line %d: %w", y.Line, err)
		}
		n.SetValue(v)
		return nil
	default:
		return fmt.Errorf("unsupported YAML node kind %d at line %d", y.Kind, y.Line)
	}
}

func encodeNode(n treeconf.Node) (*goyaml.Node, error) {
	switch {
	case n.HasMapChildren():
		out := &goyaml.Node{Kind: goyaml.MappingNode, Tag: "!!map"}
		for _, entry := range n.MapChildren() {
			key := &goyaml.Node{Kind: goyaml.ScalarNode, Tag: "!!str", Value: entry.Key}
			if cn, ok := entry.Node.(treeconf.CommentedNode); ok {
				key.HeadComment = cn.Comment()
			}
			value, err := encodeNode(entry.Node)
			if err != nil {
				return nil, err
			}
			out.Content = append(out.Content, key, value)
		}
		return out, nil
	case n.HasListChildren():
		out := &goyaml.Node{Kind: goyaml.SequenceNode, Tag: "!!seq"}
		for _, child := range n.ListChildren() {
			value, err := encodeNode(child)
			if err != nil {
				return nil, err
			}
			out.Content = append(out.Content, value)
		}
		return out, nil
	default:
		if n.Value() == nil {
			return &goyaml.Node{Kind: goyaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
		}
		out := &goyaml.Node{}
		if err := out.Encode(n.Value()); err != nil {
			return nil, fmt.Errorf("failed to encode scalar %v: %w", n.Value(), err)
		}
		return out, nil
	}
}

// commentText strips the '#' markers yaml.v3 keeps on decoded comments.
func commentText(raw string) string {
	if raw == "" {
		return ""
	}
	lines := strings.Split(raw, "\n")
	for i, line := range lines {
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, "#")
		lines[i] = strings.TrimSpace(line)
	}
	return strings.Join(lines, "\n")
}
