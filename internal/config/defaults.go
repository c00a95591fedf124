package config

const (
	defaultConfigPath               = "~/.config/parentwork/config.toml"
	defaultLibraryDB                = "~/.local/share/parentwork/library.db"
	defaultLogDir                   = "~/.local/share/parentwork/logs"
	defaultCurationPath             = "~/.local/share/parentwork/curation.json"
	defaultMusicBrainzBaseURL       = "https://musicbrainz.org/ws/2"
	defaultMusicBrainzUserAgent     = "parentwork/dev ( https://github.com/parentwork/parentwork )"
	defaultMusicBrainzRate          = 1.0
	defaultMusicBrainzTimeout       = 10
	defaultLogFormat                = "console"
	defaultLogLevel                 = "info"
	defaultParentWorkAuto           = true
	defaultParentWorkForce          = false
	maxMusicBrainzRequestsPerSecond = 50.0
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LibraryDB:    defaultLibraryDB,
			LogDir:       defaultLogDir,
			CurationPath: defaultCurationPath,
		},
		MusicBrainz: MusicBrainz{
			BaseURL:           defaultMusicBrainzBaseURL,
			UserAgent:         defaultMusicBrainzUserAgent,
			RequestsPerSecond: defaultMusicBrainzRate,
			TimeoutSeconds:    defaultMusicBrainzTimeout,
		},
		ParentWork: ParentWork{
			Auto:  defaultParentWorkAuto,
			Force: defaultParentWorkForce,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
