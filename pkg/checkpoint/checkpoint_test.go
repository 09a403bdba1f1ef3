package checkpoint

import (
	"os"
	"path/filepath"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/warptools/depship/dsapi"
)

func TestStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFilename)
	store := NewStore(path)

	t.Run("load-after-save-returns-n", func(t *testing.T) {
		for _, n := range []dsapi.Stage{0, 1, 3, 6} {
			qt.Assert(t, store.Save(n), qt.IsNil)
			qt.Check(t, store.Load(), qt.Equals, n)
		}
	})
	t.Run("survives-a-simulated-restart", func(t *testing.T) {
		qt.Assert(t, store.Save(4), qt.IsNil)
		// a fresh store value over the same path is what a new process sees
		qt.Check(t, NewStore(path).Load(), qt.Equals, dsapi.Stage(4))
	})
	t.Run("reset-deletes-the-record", func(t *testing.T) {
		qt.Assert(t, store.Save(5), qt.IsNil)
		qt.Assert(t, store.Reset(), qt.IsNil)
		qt.Check(t, store.Load(), qt.Equals, dsapi.Stage(0))
		_, err := os.Stat(path)
		qt.Check(t, os.IsNotExist(err), qt.IsTrue)
	})
	t.Run("reset-of-absent-record-is-fine", func(t *testing.T) {
		qt.Check(t, store.Reset(), qt.IsNil)
	})
}

func TestStoreDegradesToZero(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultFilename)

	t.Run("absent-record", func(t *testing.T) {
		qt.Check(t, NewStore(path).Load(), qt.Equals, dsapi.Stage(0))
	})
	t.Run("truncated-record", func(t *testing.T) {
		qt.Assert(t, os.WriteFile(path, []byte(`{"last_completed_st`), 0644), qt.IsNil)
		qt.Check(t, NewStore(path).Load(), qt.Equals, dsapi.Stage(0))
	})
	t.Run("garbage-record", func(t *testing.T) {
		qt.Assert(t, os.WriteFile(path, []byte("not json at all"), 0644), qt.IsNil)
		qt.Check(t, NewStore(path).Load(), qt.Equals, dsapi.Stage(0))
	})
	t.Run("wrong-key", func(t *testing.T) {
		qt.Assert(t, os.WriteFile(path, []byte(`{"some_other_key": 9}`), 0644), qt.IsNil)
		qt.Check(t, NewStore(path).Load(), qt.Equals, dsapi.Stage(0))
	})
	t.Run("negative-value", func(t *testing.T) {
		qt.Assert(t, os.WriteFile(path, []byte(`{"last_completed_stage": -2}`), 0644), qt.IsNil)
		qt.Check(t, NewStore(path).Load(), qt.Equals, dsapi.Stage(0))
	})
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(filepath.Join(dir, DefaultFilename))
	qt.Assert(t, store.Save(2), qt.IsNil)
	entries, err := os.ReadDir(dir)
	qt.Assert(t, err, qt.IsNil)
	qt.Check(t, len(entries), qt.Equals, 1)
	qt.Check(t, entries[0].Name(), qt.Equals, DefaultFilename)
}
