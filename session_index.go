package recorder

import (
	"encoding/json"
	"time"

	"go.etcd.io/bbolt"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var ErrSessionRecordNotFound = errors.New("recorder: session record not found")

var sessionsBucketName = []byte("sessions")

// SessionRecord describes one written archive in the session index.
type SessionRecord struct {
	UUID    uuid.UUID
	Path    string
	Driver  string
	Track   string
	Vehicle string
	Laps    int
	Created time.Time
}

// SessionIndex keeps a record of every archive the recorder has written,
// so other tools can list and locate past sessions.
type SessionIndex struct {
	db *bbolt.DB
}

func NewSessionIndex(db *bbolt.DB) *SessionIndex {
	return &SessionIndex{db: db}
}

func (i *SessionIndex) sessionsBucket(tx *bbolt.Tx) (*bbolt.Bucket, error) {
	if !tx.Writable() {
		bkt := tx.Bucket(sessionsBucketName)

		if bkt == nil {
			return nil, bbolt.ErrBucketNotFound
		}

		return bkt, nil
	}

	return tx.CreateBucketIfNotExists(sessionsBucketName)
}

func (i *SessionIndex) encode(data interface{}) ([]byte, error) {
	return json.Marshal(data)
}

func (i *SessionIndex) decode(data []byte, out interface{}) error {
	return json.Unmarshal(data, out)
}

// Add stores a record, assigning it a UUID if it doesn't have one.
func (i *SessionIndex) Add(record *SessionRecord) error {
	return i.db.Update(func(tx *bbolt.Tx) error {
		bkt, err := i.sessionsBucket(tx)

		if err != nil {
			return err
		}

		if record.UUID == uuid.Nil {
			record.UUID = uuid.New()
		}

		encoded, err := i.encode(record)

		if err != nil {
			return err
		}

		return bkt.Put([]byte(record.UUID.String()), encoded)
	})
}

func (i *SessionIndex) FindByID(id string) (*SessionRecord, error) {
	var record *SessionRecord

	err := i.db.View(func(tx *bbolt.Tx) error {
		bkt, err := i.sessionsBucket(tx)

		if err != nil {
			return err
		}

		data := bkt.Get([]byte(id))

		if data == nil {
			return ErrSessionRecordNotFound
		}

		return i.decode(data, &record)
	})

	return record, err
}

func (i *SessionIndex) List() ([]*SessionRecord, error) {
	var records []*SessionRecord

	err := i.db.View(func(tx *bbolt.Tx) error {
		bkt, err := i.sessionsBucket(tx)

		if err == bbolt.ErrBucketNotFound {
			return nil
		} else if err != nil {
			return err
		}

		return bkt.ForEach(func(k, v []byte) error {
			var record *SessionRecord

			if err := i.decode(v, &record); err != nil {
				return err
			}

			records = append(records, record)

			return nil
		})
	})

	return records, err
}
