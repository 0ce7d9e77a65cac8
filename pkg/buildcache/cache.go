package buildcache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Cache remembers which source contents produced each output file so that
// unchanged sources are not compiled again.
type Cache struct {
	Dir string
}

func New(dir string) *Cache {
	return &Cache{Dir: dir}
}

type meta struct {
	Source       string `json:"source"`
	SourceDigest string `json:"source_digest"`
	Output       string `json:"output"`
	OutputDigest string `json:"output_digest"`
}

// Fresh reports whether output was produced from exactly src and has not
// been modified since.
func (c *Cache) Fresh(source string, src []byte, output string) bool {
	b, err := os.ReadFile(c.metaPath(source, output))
	if err != nil {
		return false
	}
	var m meta
	if err := json.Unmarshal(b, &m); err != nil {
		return false
	}
	if m.Source != source || m.Output != output || m.SourceDigest != hash(src) {
		return false
	}
	out, err := os.ReadFile(output)
	if err != nil {
		return false
	}
	return m.OutputDigest == hash(out)
}

// Record stores the digests of a completed compilation.
func (c *Cache) Record(source string, src []byte, output string, out []byte) error {
	if err := os.MkdirAll(c.Dir, 0o755); err != nil {
		return fmt.Errorf("creating cache dir: %w", err)
	}
	return writeMeta(c.metaPath(source, output), meta{
		Source:       source,
		SourceDigest: hash(src),
		Output:       output,
		OutputDigest: hash(out),
	})
}

func (c *Cache) metaPath(source, output string) string {
	return filepath.Join(c.Dir, hash([]byte(source+"\x00"+output))+".json")
}

func writeMeta(path string, m meta) error {
	b, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func hash(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}
