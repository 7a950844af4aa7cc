package interfaces

type SnapshotterInterface interface {
	Restore() error
	Persist() error
}
