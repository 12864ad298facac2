package session

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// WaitHook is called each time a save has to wait for another console.
type WaitHook func(waited time.Duration)

const (
	lockStep     = 120 * time.Millisecond
	lockPatience = 2 * time.Second
	lockStale    = 10 * time.Minute
	ownerFile    = "owner"
)

// lockOwner is recorded inside the lock directory so a stuck lock can be
// traced to the console and the snapshot it was writing.
type lockOwner struct {
	PID      int       `msgpack:"pid"`
	Snapshot string    `msgpack:"snapshot"`
	Acquired time.Time `msgpack:"acquired"`
}

// snapshotLock guards writes to one snapshot file with a lock directory next
// to it.
type snapshotLock struct {
	dir      string
	snapshot string
	wait     WaitHook
}

func newSnapshotLock(snapshot string, wait WaitHook) snapshotLock {
	return snapshotLock{dir: snapshot + ".lock", snapshot: snapshot, wait: wait}
}

// acquire blocks until the lock directory could be created. A lock whose
// owner acquired it more than lockStale ago is broken once the caller has
// waited lockPatience.
func (l snapshotLock) acquire(ctx context.Context) (func() error, error) {
	waited := time.Duration(0)
	for {
		err := os.Mkdir(l.dir, 0o755)
		if err == nil {
			l.writeOwner()
			return func() error { return os.RemoveAll(l.dir) }, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return nil, err
		}

		if l.wait != nil {
			l.wait(waited)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(lockStep):
			if waited < lockPatience {
				waited += lockStep
			}
		}

		if waited >= lockPatience && l.stale() {
			_ = os.RemoveAll(l.dir)
		}
	}
}

func (l snapshotLock) writeOwner() {
	meta, err := msgpack.Marshal(&lockOwner{PID: os.Getpid(), Snapshot: l.snapshot, Acquired: time.Now().UTC()})
	if err == nil {
		_ = os.WriteFile(filepath.Join(l.dir, ownerFile), meta, 0o644)
	}
}

// owner reads the recorded holder of the lock.
func (l snapshotLock) owner() (lockOwner, error) {
	var o lockOwner
	data, err := os.ReadFile(filepath.Join(l.dir, ownerFile))
	if err != nil {
		return o, err
	}
	err = msgpack.Unmarshal(data, &o)
	return o, err
}

// stale prefers the owner's acquisition time and falls back to the lock
// directory's mtime when the owner record is missing or unreadable.
func (l snapshotLock) stale() bool {
	if o, err := l.owner(); err == nil && !o.Acquired.IsZero() {
		return time.Since(o.Acquired) > lockStale
	}
	info, err := os.Stat(l.dir)
	return err == nil && time.Since(info.ModTime()) > lockStale
}
