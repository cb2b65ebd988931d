package services

type OutcomeKind string

const (
	KindNoFiles       OutcomeKind = "no_files"
	KindMd5sumDeleted OutcomeKind = "md5sum_deleted"
	KindFilesPresent  OutcomeKind = "files_present"
	KindError         OutcomeKind = "error"
)

// TargetRef identifiziert das geprüfte Verzeichnis eines Ergebnisses
type TargetRef struct {
	Hostname   string
	RemotePath string
}

// Outcome ist das Ergebnis genau eines Scans. Die Implementierungen sind
// abschließend: NoFiles, Md5sumDeleted, FilesPresent und ScanError.
type Outcome interface {
	Ref() TargetRef
	Kind() OutcomeKind
	// Clean meldet, ob kein Eingriff eines Operators nötig ist
	Clean() bool

	outcome()
}

type NoFiles struct {
	TargetRef
}

type Md5sumDeleted struct {
	TargetRef
	File string
}

type FilesPresent struct {
	TargetRef
	Files []string
}

type ScanError struct {
	TargetRef
	Message string
}

func (r TargetRef) Ref() TargetRef { return r }

func (NoFiles) Kind() OutcomeKind       { return KindNoFiles }
func (Md5sumDeleted) Kind() OutcomeKind { return KindMd5sumDeleted }
func (FilesPresent) Kind() OutcomeKind  { return KindFilesPresent }
func (ScanError) Kind() OutcomeKind     { return KindError }

func (NoFiles) Clean() bool       { return true }
func (Md5sumDeleted) Clean() bool { return true }
func (FilesPresent) Clean() bool  { return false }
func (ScanError) Clean() bool     { return false }

func (NoFiles) outcome()       {}
func (Md5sumDeleted) outcome() {}
func (FilesPresent) outcome()  {}
func (ScanError) outcome()     {}
