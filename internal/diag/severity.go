package diag

// Severity defines the importance of a diagnostic. The same scale doubles
// as the log level of the build logger.
type Severity uint8

const (
	// SevFine is for verbose progress detail.
	SevFine Severity = iota
	// SevInfo is for notices worth surfacing in normal output.
	SevInfo
	// SevWarning is for conditions that degrade output but do not stop a build.
	SevWarning
	// SevSevere is for fatal conditions that terminate the current build step.
	SevSevere
)

func (s Severity) String() string {
	switch s {
	case SevFine:
		return "FINE"
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevSevere:
		return "SEVERE"
	}
	return "UNKNOWN"
}

// ParseSeverity converts a manifest/flag string to a Severity.
func ParseSeverity(s string) (Severity, bool) {
	switch s {
	case "fine", "FINE":
		return SevFine, true
	case "info", "INFO", "notice":
		return SevInfo, true
	case "warning", "WARNING", "warn":
		return SevWarning, true
	case "severe", "SEVERE", "error":
		return SevSevere, true
	}
	return SevInfo, false
}
