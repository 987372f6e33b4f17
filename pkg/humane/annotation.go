package humane

import (
	"reflect"
	"runtime"
	"sync"
	"unsafe"
)

// DataKey is the side-storage key under which an Annotation is kept.
const DataKey = "humane-errors/humane.Annotation"

// unknown is used for capture-site fields the runtime cannot resolve.
const unknown = "<unknown>"

// Storage is implemented by errors that carry a per-instance key/value bag.
// Data must return the same non-nil map for the lifetime of the error.
type Storage interface {
	Data() map[string]any
}

// Location is the capture site of an annotation call.
type Location struct {
	Member string
	File   string
	Line   int
}

// Annotation describes a failure mode and how to fix it. It is immutable once
// attached.
type Annotation struct {
	failureMode string
	suggestions []string
	location    Location
}

// FailureMode describes what failed, from the perspective of the user.
func (a Annotation) FailureMode() string { return a.failureMode }

// Suggestions returns a copy of the remediation hints, most actionable first.
func (a Annotation) Suggestions() []string {
	out := make([]string, len(a.suggestions))
	copy(out, a.suggestions)
	return out
}

// Location returns where the annotation was attached.
func (a Annotation) Location() Location { return a.location }

// Attach annotates err with a failure mode and suggestions and returns err
// itself. The caller's function, file and line are recorded. Attaching again
// replaces the previous annotation. A nil err is returned unchanged.
//
// Errors without Storage are annotated only when they are pointers; value
// errors such as syscall.Errno compare equal across unrelated failures and
// are returned unannotated.
func Attach[E error](err E, failureMode string, suggestions ...string) E {
	return AttachAt(err, callerLocation(1), failureMode, suggestions...)
}

// AttachAt is Attach with an explicit capture site.
func AttachAt[E error](err E, loc Location, failureMode string, suggestions ...string) E {
	var e error = err
	if isNil(e) {
		return err
	}
	s := make([]string, len(suggestions))
	copy(s, suggestions)
	store(e, Annotation{failureMode: failureMode, suggestions: s, location: loc})
	return err
}

// Lookup returns the annotation attached to err itself. Causes are not
// searched.
func Lookup(err error) (Annotation, bool) {
	if isNil(err) {
		return Annotation{}, false
	}
	var v any
	if st, ok := err.(Storage); ok {
		data := st.Data()
		if data == nil {
			return Annotation{}, false
		}
		v = data[DataKey]
	} else {
		v = fallback.get(err)
	}
	a, ok := v.(Annotation)
	return a, ok
}

func store(err error, a Annotation) {
	if st, ok := err.(Storage); ok {
		if data := st.Data(); data != nil {
			data[DataKey] = a
		}
		return
	}
	fallback.set(err, a)
}

// fallback holds annotations for pointer errors without their own storage.
// Entries are keyed by the pointer's address and removed by a runtime cleanup
// once the error is collected. Non-pointer errors are not tracked: equal
// values would share one annotation.
var fallback = &fallbackTable{m: make(map[uintptr]fallbackEntry)}

type fallbackTable struct {
	mu     sync.RWMutex
	m      map[uintptr]fallbackEntry
	nextID uint64
}

// typ keeps an error of another type that reuses a freed address, before the
// old entry's cleanup has run, from inheriting the old annotation.
type fallbackEntry struct {
	id  uint64
	typ reflect.Type
	a   Annotation
}

// cleanupKey must not start with the tracked address: AddCleanup rejects an
// arg equal to the pointer it watches.
type cleanupKey struct {
	id   uint64
	addr uintptr
}

// pointerOf returns the address of a pointer error with a non-empty pointee.
// Pointers to zero-size values share one address and are not tracked.
func pointerOf(err error) (unsafe.Pointer, reflect.Type, bool) {
	v := reflect.ValueOf(err)
	if v.Kind() != reflect.Pointer || v.IsNil() || v.Type().Elem().Size() == 0 {
		return nil, nil, false
	}
	return v.UnsafePointer(), v.Type(), true
}

func (t *fallbackTable) get(err error) any {
	p, typ, ok := pointerOf(err)
	if !ok {
		return nil
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	e, ok := t.m[uintptr(p)]
	if !ok || e.typ != typ {
		return nil
	}
	return e.a
}

func (t *fallbackTable) set(err error, a Annotation) {
	p, typ, ok := pointerOf(err)
	if !ok {
		return
	}
	addr := uintptr(p)

	t.mu.Lock()
	defer t.mu.Unlock()
	// Every write gets a fresh id and cleanup, so a cleanup left over from a
	// collected error at the same address cannot remove this entry.
	t.nextID++
	key := cleanupKey{id: t.nextID, addr: addr}
	t.m[addr] = fallbackEntry{id: key.id, typ: typ, a: a}
	runtime.AddCleanup((*byte)(p), t.remove, key)
}

// remove drops the entry for key unless the address was reused since.
func (t *fallbackTable) remove(key cleanupKey) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if e, ok := t.m[key.addr]; ok && e.id == key.id {
		delete(t.m, key.addr)
	}
}

func (t *fallbackTable) len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.m)
}

func callerLocation(skip int) Location {
	pc, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return Location{Member: unknown, File: unknown}
	}
	member := unknown
	if fn := runtime.FuncForPC(pc); fn != nil {
		member = fn.Name()
	}
	return Location{Member: member, File: file, Line: line}
}

// isNil reports whether err is nil or a typed nil pointer.
func isNil(err error) bool {
	if err == nil {
		return true
	}
	v := reflect.ValueOf(err)
	switch v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return v.IsNil()
	}
	return false
}
