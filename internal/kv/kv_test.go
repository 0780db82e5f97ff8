package kv

import (
	"encoding/json"
	"path/filepath"
	"reflect"
	"testing"
)

type doc struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	backend, err := OpenFileBackend(filepath.Join(t.TempDir(), "store.json"))
	if err != nil {
		t.Fatalf("failed to open file backend: %v", err)
	}
	return NewStore(backend)
}

func TestStoreRoundTrip(t *testing.T) {
	store := newTestStore(t)

	in := []doc{{Name: "first", Count: 1}, {Name: "second", Count: 2}}
	if err := store.Save("docs", in); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	var out []doc
	ok, err := store.Load("docs", &out)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if !ok {
		t.Fatal("expected key to be present")
	}
	if !reflect.DeepEqual(in, out) {
		t.Errorf("round trip mismatch: want %+v, got %+v", in, out)
	}
}

func TestStoreLoadMissingKey(t *testing.T) {
	store := newTestStore(t)

	var out []doc
	ok, err := store.Load("missing", &out)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if ok {
		t.Error("expected missing key to report absence")
	}
	if out != nil {
		t.Errorf("expected untouched destination, got %+v", out)
	}
}

func TestStorePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")

	backend, err := OpenFileBackend(path)
	if err != nil {
		t.Fatalf("failed to open file backend: %v", err)
	}
	store := NewStore(backend)
	if err := store.Save("docs", []doc{{Name: "kept", Count: 7}}); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	store.Close()

	reopened, err := OpenFileBackend(path)
	if err != nil {
		t.Fatalf("failed to reopen file backend: %v", err)
	}
	var out []doc
	ok, err := NewStore(reopened).Load("docs", &out)
	if err != nil || !ok {
		t.Fatalf("load after reopen failed: ok=%v err=%v", ok, err)
	}
	if len(out) != 1 || out[0].Name != "kept" {
		t.Errorf("unexpected data after reopen: %+v", out)
	}
}

// clobberBackend роняет ключ сессии при каждой записи, имитируя
// затирание чужим обновлением.
type clobberBackend struct {
	*FileBackend
}

func (b *clobberBackend) Put(key string, docBytes []byte) error {
	if err := b.FileBackend.Put(key, docBytes); err != nil {
		return err
	}
	if key != KeySession {
		return b.FileBackend.Delete(KeySession)
	}
	return nil
}

func TestSaveRestoresSessionKey(t *testing.T) {
	inner, err := OpenFileBackend(filepath.Join(t.TempDir(), "store.json"))
	if err != nil {
		t.Fatalf("failed to open file backend: %v", err)
	}
	store := NewStore(&clobberBackend{FileBackend: inner})

	if err := store.Save(KeySession, doc{Name: "session", Count: 1}); err != nil {
		t.Fatalf("save session failed: %v", err)
	}
	if err := store.Save("docs", []doc{{Name: "other"}}); err != nil {
		t.Fatalf("save docs failed: %v", err)
	}

	var session doc
	ok, err := store.Load(KeySession, &session)
	if err != nil {
		t.Fatalf("load session failed: %v", err)
	}
	if !ok {
		t.Fatal("session key was not restored after an overwriting save")
	}
	if session.Name != "session" {
		t.Errorf("restored session mismatch: %+v", session)
	}
}

func TestFileBackendRawDocuments(t *testing.T) {
	backend, err := OpenFileBackend(filepath.Join(t.TempDir(), "store.json"))
	if err != nil {
		t.Fatalf("failed to open file backend: %v", err)
	}

	if err := backend.Put("k", json.RawMessage(`{"a":1}`)); err != nil {
		t.Fatalf("put failed: %v", err)
	}
	got, ok, err := backend.Get("k")
	if err != nil || !ok {
		t.Fatalf("get failed: ok=%v err=%v", ok, err)
	}
	if string(got) != `{"a":1}` {
		t.Errorf("unexpected document: %s", got)
	}

	if err := backend.Delete("k"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, ok, _ := backend.Get("k"); ok {
		t.Error("expected key to be gone after delete")
	}
}
