package secrets

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"regexp"

	kerrors "github.com/PolarWolf314/helm-secrets/internal/errors"

	"github.com/goccy/go-yaml"
)

// markerLookahead bounds how many lines after the top-level sops key the
// textual fallback searches for the version key.
const markerLookahead = 512

var (
	sopsKeyPattern     = regexp.MustCompile(`^(sops:|\s{0,4}"sops"\s*:)`)
	sopsVersionPattern = regexp.MustCompile(`^\s+("version"|version)\s*:`)
)

// sopsDocument is the part of a sops-processed file that identifies it.
type sopsDocument struct {
	Sops *struct {
		Version string `yaml:"version" json:"version"`
	} `yaml:"sops" json:"sops"`
}

// IsEncrypted reports whether the file at path carries the metadata block
// sops embeds in the files it encrypts.
//
// A file without the block is not encrypted; that is never an error. The
// caller is expected to have checked that path exists.
func IsEncrypted(path string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("%w %s: %v", kerrors.ErrReadFile, path, err)
	}
	return hasSopsMarker(data, FormatOf(path)), nil
}

func hasSopsMarker(data []byte, format Format) bool {
	if !bytes.Contains(data, []byte("sops")) {
		return false
	}

	var doc sopsDocument
	var err error
	if format == FormatJSON {
		err = json.Unmarshal(data, &doc)
	} else {
		err = yaml.Unmarshal(data, &doc)
	}
	if err == nil {
		return doc.Sops != nil && doc.Sops.Version != ""
	}

	return scanSopsMarker(data)
}

// scanSopsMarker looks for a top-level sops key followed, within
// markerLookahead lines, by a version key. Used for documents the decoders
// reject.
func scanSopsMarker(data []byte) bool {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	remaining := -1
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case remaining < 0:
			if sopsKeyPattern.MatchString(line) {
				remaining = markerLookahead
			}
		case remaining == 0:
			return false
		default:
			if sopsVersionPattern.MatchString(line) {
				return true
			}
			remaining--
		}
	}
	return false
}
