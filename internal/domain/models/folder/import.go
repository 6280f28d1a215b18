package folder

// ZipImportResult reports what a zip import created
type ZipImportResult struct {
	Root    *View            `json:"root"`
	Views   []*View          `json:"views"`
	Summary ZipImportSummary `json:"summary"`
	Errors  []ZipImportError `json:"errors"`
}

// ZipImportSummary counts the archive entries by outcome
type ZipImportSummary struct {
	Created    int `json:"created"`
	Skipped    int `json:"skipped"`
	Failed     int `json:"failed"`
	TotalFiles int `json:"total_files"`
}

// ZipImportError is an archive entry that could not be imported
type ZipImportError struct {
	File  string `json:"file"`
	Error string `json:"error"`
}
