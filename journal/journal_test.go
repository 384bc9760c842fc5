package journal

import (
	"io/ioutil"
	"os"
	"path"
	"testing"
	"time"
)

func tempJournal(t *testing.T) (*Journal, func()) {
	t.Helper()
	folder, err := ioutil.TempDir("", "journal")
	if err != nil {
		t.Fatal(err)
	}
	j, err := Open(path.Join(folder, "journal.db"))
	if err != nil {
		_ = os.RemoveAll(folder)
		t.Fatal(err)
	}
	return j, func() {
		_ = j.Close()
		_ = os.RemoveAll(folder)
	}
}

func TestJournalRoundTrip(t *testing.T) {
	j, cleanup := tempJournal(t)
	defer cleanup()
	key := "001:004:0"
	base := time.Now()
	kinds := []string{Attach, Switch, Detach}
	for i, kind := range kinds {
		event := Event{
			Time:          base.Add(time.Duration(i) * time.Second),
			Kind:          kind,
			Attributes:    0x0d,
			DetachTimeout: 255,
			TransferSize:  1024,
		}
		if err := j.Record(key, event); err != nil {
			t.Fatal(err)
		}
	}
	events, err := j.Events(key)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 3 {
		t.Fatal("unexpected event count:", len(events))
	}
	for i, event := range events {
		if event.Kind != kinds[i] {
			t.Fatalf("event %d out of order: %s", i, event.Kind)
		}
		if event.Attributes != 0x0d || event.TransferSize != 1024 {
			t.Fatalf("event fields lost: %+v", event)
		}
	}
	keys, err := j.Keys()
	if err != nil {
		t.Fatal(err)
	}
	if len(keys) != 1 || keys[0] != key {
		t.Fatal("unexpected keys:", keys)
	}
}

func TestJournalUnknownKey(t *testing.T) {
	j, cleanup := tempJournal(t)
	defer cleanup()
	events, err := j.Events("missing")
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 0 {
		t.Fatal("events for an unknown key")
	}
}

func TestJournalFillsTime(t *testing.T) {
	j, cleanup := tempJournal(t)
	defer cleanup()
	if err := j.Record("001:004:0", Event{Kind: Attach}); err != nil {
		t.Fatal(err)
	}
	events, err := j.Events("001:004:0")
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 1 || events[0].Time.IsZero() {
		t.Fatal("record did not stamp the event time")
	}
}
