package extract

// An Observer is notified of the progress of an extraction.  All methods are
// called synchronously from the extracting goroutine.
type Observer interface {
	// CollectionStart is called when the target key and the start of its
	// object have been found.
	CollectionStart(targetKey string)

	// RecordStart is called before the value of the record is read.
	RecordStart(key string)

	// RecordEnd is called after the record has been written.  size is the
	// length of the line written, 0 if the record was filtered out.
	RecordEnd(key string, size int)

	// CollectionEnd is called at the end of the target object.
	CollectionEnd(records int)
}

// ObserverFuncs implements Observer with optional functions.
type ObserverFuncs struct {
	OnCollectionStart func(targetKey string)
	OnRecordStart     func(key string)
	OnRecordEnd       func(key string, size int)
	OnCollectionEnd   func(records int)
}

var _ Observer = ObserverFuncs{}

func (f ObserverFuncs) CollectionStart(targetKey string) {
	if f.OnCollectionStart != nil {
		f.OnCollectionStart(targetKey)
	}
}

func (f ObserverFuncs) RecordStart(key string) {
	if f.OnRecordStart != nil {
		f.OnRecordStart(key)
	}
}

func (f ObserverFuncs) RecordEnd(key string, size int) {
	if f.OnRecordEnd != nil {
		f.OnRecordEnd(key, size)
	}
}

func (f ObserverFuncs) CollectionEnd(records int) {
	if f.OnCollectionEnd != nil {
		f.OnCollectionEnd(records)
	}
}

type nopObserver struct{}

func (nopObserver) CollectionStart(string) {}
func (nopObserver) RecordStart(string) {}
func (nopObserver) RecordEnd(string, int) {}
func (nopObserver) CollectionEnd(int) {}
