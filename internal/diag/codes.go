package diag

import "fmt"

type Code uint16

const (
	UnknownCode Code = 0

	// Build driver conditions.
	BuildInfo          Code = 1000
	BuildFatal         Code = 1001
	BuildSourceMissing Code = 1002
	BuildStepFailed    Code = 1003

	// Annotation index conditions.
	AnnInfo       Code = 2000
	AnnUnresolved Code = 2001
	AnnUnanchored Code = 2002

	// IO and manifest conditions.
	IOReadFailed      Code = 3000
	IOManifestInvalid Code = 3001
	IOCacheCorrupt    Code = 3002

	// Internal defects. Anything here is a bug in the compiler itself.
	InternalError Code = 9000
)

var codeDescription = map[Code]string{
	UnknownCode:        "unknown condition",
	BuildInfo:          "build progress",
	BuildFatal:         "fatal build error",
	BuildSourceMissing: "source text unavailable",
	BuildStepFailed:    "build step did not complete",
	AnnInfo:            "annotation index",
	AnnUnresolved:      "unresolved annotation",
	AnnUnanchored:      "annotation without source anchor",
	IOReadFailed:       "failed to read source file",
	IOManifestInvalid:  "invalid build manifest",
	IOCacheCorrupt:     "discarded corrupt cache entry",
	InternalError:      "internal compiler error",
}

// ID returns a stable short identifier suitable for grep and golden files.
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("BLD%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("ANN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 9000 && ic < 10000:
		return fmt.Sprintf("INT%04d", ic)
	}
	return "E0000"
}

// Title returns the human-readable description of the code.
func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
