package settings

type Flag struct {
	Name  string
	Short string
}

type flagNames struct {
	ProjectRoot         Flag
	CliEnvFile          Flag
	Verbose             Flag
	Name                Flag
	Functions           Flag
	URL                 Flag
	TemplatesDir        Flag
	DownloadConcurrency Flag
}

var Flags = flagNames{
	ProjectRoot:         Flag{"project-root", "R"},
	CliEnvFile:          Flag{"env", "e"},
	Verbose:             Flag{"verbose", "v"},
	Name:                Flag{"name", "n"},
	Functions:           Flag{"functions", "f"},
	URL:                 Flag{"url", "u"},
	TemplatesDir:        Flag{"templates-dir", ""},
	DownloadConcurrency: Flag{"download-concurrency", ""},
}
