package journal

import (
	"bytes"
	"encoding/gob"
	"path"
	"time"

	"github.com/fernandosanchezjr/gousbdfu/utils"
	"go.etcd.io/bbolt"
)

const JournalPath = "journal"

const (
	Attach = "attach"
	Detach = "detach"
	Switch = "switch"
)

// Event is one device lifecycle entry. Kind is one of Attach, Detach or
// Switch; the descriptor fields are captured as seen at prepare time.
type Event struct {
	Time          time.Time
	Kind          string
	Attributes    uint8
	DetachTimeout uint16
	TransferSize  uint16
	Detail        string
}

type Journal struct {
	db *bbolt.DB
}

func GetJournalPath() string {
	return path.Join(utils.GetSubFolder(JournalPath), "journal.db")
}

func Open(dbPath string) (*Journal, error) {
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, err
	}
	return &Journal{db: db}, nil
}

func (j *Journal) Record(key string, event Event) error {
	if event.Time.IsZero() {
		event.Time = time.Now()
	}
	var encoded bytes.Buffer
	if err := gob.NewEncoder(&encoded).Encode(event); err != nil {
		return err
	}
	return j.db.Update(func(tx *bbolt.Tx) error {
		deviceBucket, err := tx.CreateBucketIfNotExists([]byte(key))
		if err != nil {
			return err
		}
		return deviceBucket.Put(utils.TimeToBytes(event.Time), encoded.Bytes())
	})
}

// Events returns the recorded history for a device key in time order.
func (j *Journal) Events(key string) (events []Event, err error) {
	err = j.db.View(func(tx *bbolt.Tx) error {
		deviceBucket := tx.Bucket([]byte(key))
		if deviceBucket == nil {
			return nil
		}
		return deviceBucket.ForEach(func(_, value []byte) error {
			var event Event
			if err := gob.NewDecoder(bytes.NewReader(value)).Decode(&event); err != nil {
				return err
			}
			events = append(events, event)
			return nil
		})
	})
	return
}

func (j *Journal) Keys() (keys []string, err error) {
	err = j.db.View(func(tx *bbolt.Tx) error {
		return tx.ForEach(func(name []byte, _ *bbolt.Bucket) error {
			keys = append(keys, string(name))
			return nil
		})
	})
	return
}

func (j *Journal) Close() error {
	return j.db.Close()
}
