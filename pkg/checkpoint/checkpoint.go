// Package checkpoint persists the submit workflow's progress marker.
//
// The record is a single small JSON file in the invocation directory with
// one recognized key.  It is the only durable state the tool itself owns;
// everything else lives in the local git repositories and on the hosting
// platform.
package checkpoint

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/warptools/depship/dsapi"
)

// DefaultFilename is the checkpoint record's name in the invocation directory.
const DefaultFilename = ".depship_state.json"

type record struct {
	LastCompletedStage int `json:"last_completed_stage"`
}

// Store reads and writes the checkpoint record at a fixed path.
type Store struct {
	path string
}

func NewStore(path string) Store {
	return Store{path: path}
}

// Load returns the last completed stage.  An absent, unreadable, or
// malformed record degrades to zero ("no stages completed") rather than
// erroring; a corrupt checkpoint means starting over, never crashing.
func (s Store) Load() dsapi.Stage {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return 0
	}
	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return 0
	}
	if rec.LastCompletedStage < 0 {
		return 0
	}
	return dsapi.Stage(rec.LastCompletedStage)
}

// Save atomically overwrites the record with the given stage number.
// The write goes to a temp file in the same directory, then renames over
// the destination, so a crash mid-write cannot leave a truncated record.
//
// Errors:
//
//    - depship-error-io --
func (s Store) Save(stage dsapi.Stage) error {
	data, err := json.Marshal(record{LastCompletedStage: int(stage)})
	if err != nil {
		return dsapi.ErrorIo("marshaling checkpoint", s.path, err)
	}
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".depship_state.*.tmp")
	if err != nil {
		return dsapi.ErrorIo("creating checkpoint temp file", dir, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return dsapi.ErrorIo("writing checkpoint", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return dsapi.ErrorIo("closing checkpoint temp file", tmpName, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return dsapi.ErrorIo("replacing checkpoint", s.path, err)
	}
	return nil
}

// Reset deletes the record.  A record that never existed is not an error.
//
// Errors:
//
//    - depship-error-io --
func (s Store) Reset() error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return dsapi.ErrorIo("removing checkpoint", s.path, err)
	}
	return nil
}
