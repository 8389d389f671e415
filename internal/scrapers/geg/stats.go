package geg

// Statistics summarizes the records of one run.
type Statistics struct {
	Total              int
	ByLicenseStatus    map[string]int
	ByRole             map[string]int
	ByEmploymentStatus map[string]int
	ByOperationSite    map[string]int
}

const unknownLabel = "N/A"

func countLabel(counts map[string]int, label string) {
	if label == "" {
		label = unknownLabel
	}
	counts[label]++
}

// Summarize counts records by license status, role, employment status and
// operation site. Empty values are counted as "N/A".
func Summarize(records []EmployeeRecord) Statistics {
	stats := Statistics{
		Total:              len(records),
		ByLicenseStatus:    map[string]int{},
		ByRole:             map[string]int{},
		ByEmploymentStatus: map[string]int{},
		ByOperationSite:    map[string]int{},
	}
	for _, record := range records {
		countLabel(stats.ByLicenseStatus, record.LicenseStatus)
		countLabel(stats.ByRole, record.Role)
		countLabel(stats.ByEmploymentStatus, record.EmploymentStatus)
		countLabel(stats.ByOperationSite, record.OperationSite)
	}
	return stats
}
